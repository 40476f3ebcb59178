package cmd

import (
	"context"
	"time"

	"polka/core"
	"polka/handler/rest"
	"polka/service/currency"
	"polka/service/dispatch"
	"polka/service/multisig"
	"polka/service/oracle"
	"polka/service/purchase"
	"polka/service/quote"
	"polka/service/reserve"
	"polka/store/bank"
	multisigstore "polka/store/multisig"
	"polka/store/pool"
	"polka/store/sale"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

// ---------------store-----------------------------------------

func providePoolStore(db *db.DB) core.PoolStore {
	return pool.Cache(pool.New(db), 10*time.Second)
}

func provideSaleStore(db *db.DB) core.SaleStore {
	return sale.New(db)
}

func provideTransactionStore(db *db.DB) core.TransactionStore {
	return multisigstore.New(db)
}

func provideBank() core.Bank {
	return bank.New()
}

// ------------------service------------------------------------

func provideReserveFeed() core.ReserveFeed {
	return reserve.New(cfg.PriceOracle.EndPoint)
}

func provideQuoteService() core.QuoteService {
	return quote.New(cfg.QuoteService)
}

// provideCurrencyService registry owned by the multisig, seeded with the
// configured currencies. Cover ledgers are whitelisted as oracle consumers
func provideCurrencyService(ctx context.Context) core.CurrencyService {
	owner := common.HexToAddress(cfg.MultiSig.Address)
	registry := currency.New(common.HexToAddress(cfg.Registry.Address), owner)

	for _, c := range cfg.Registry.Currencies {
		var pinned common.Address
		if c.Pool != "" {
			pinned = common.HexToAddress(c.Pool)
		}

		if err := registry.Register(ctx, owner, common.HexToAddress(c.Asset), pinned); err != nil {
			panic(err)
		}
	}

	for _, l := range cfg.Ledgers {
		if l.Kind != core.ProductKindCover {
			continue
		}

		if err := registry.WhitelistConsumer(ctx, owner, common.HexToAddress(l.Address)); err != nil {
			panic(err)
		}
	}

	return registry
}

func providePriceOracle(pools core.PoolStore, currencies core.CurrencyService) core.PriceOracle {
	return oracle.New(oracle.Config{
		NativeAsset:    common.HexToAddress(cfg.App.NativeAsset),
		StableAsset:    common.HexToAddress(cfg.App.StableAsset),
		StableDecimals: cfg.App.StableDecimals,
		MaxAge:         cfg.App.PoolMaxAge,
	}, pools, currencies)
}

// provideLedgers one purchase ledger per configured product, sale logs
// restored from the store
func provideLedgers(
	ctx context.Context,
	oracle core.PriceOracle,
	currencies core.CurrencyService,
	bank core.Bank,
	sales core.SaleStore,
) rest.Ledgers {
	log := logger.FromContext(ctx)
	ledgers := rest.Ledgers{}

	for _, l := range cfg.Ledgers {
		ledger := purchase.New(purchase.Config{
			Address:       common.HexToAddress(l.Address),
			Kind:          l.Kind,
			TrustedSigner: common.HexToAddress(l.TrustedSigner),
			Payout:        common.HexToAddress(l.Payout),
			QuoteReuse:    cfg.App.QuoteReuse,
		}, oracle, currencies, bank, sales)

		if err := purchase.Restore(ctx, ledger); err != nil {
			log.WithError(err).Panicln("restore ledger", l.Name)
		}

		log.Infof("ledger %s (%s) restored with %d sales", l.Name, l.Kind, ledger.SaleCount())
		ledgers[l.Name] = ledger
	}

	return ledgers
}

func provideDispatcher(currencies core.CurrencyService, ledgers rest.Ledgers) *dispatch.Router {
	router, err := dispatch.New(currencies)
	if err != nil {
		panic(err)
	}

	for _, name := range ledgers.Names() {
		if err := router.Register(ledgers[name]); err != nil {
			panic(err)
		}
	}

	return router
}

// provideMultiSigService wallet restored from the store. Executed registry
// calls are replayed since the registry only persists through them
func provideMultiSigService(
	ctx context.Context,
	dispatcher core.Dispatcher,
	txs core.TransactionStore,
	currencies core.CurrencyService,
) core.MultiSigService {
	wallet, err := multisig.New(multisig.Config{
		Address:   common.HexToAddress(cfg.MultiSig.Address),
		Owners:    cfg.MultiSig.OwnerAddresses(),
		Threshold: cfg.MultiSig.Threshold,
	}, dispatcher, txs)
	if err != nil {
		panic(err)
	}

	if err := multisig.Restore(ctx, wallet, currencies.Address()); err != nil {
		logger.FromContext(ctx).WithError(err).Panicln("restore multisig")
	}

	return wallet
}
