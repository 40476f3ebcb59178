// Package purchase purchase ledgers selling signed product quotes
package purchase

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"sync"
	"time"

	"polka/core"
	"polka/pkg/id"
	"polka/service/signer"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/logger"
)

// Config ledger config
type Config struct {
	Address       common.Address
	Kind          core.ProductKind
	TrustedSigner common.Address
	Payout        common.Address
	// QuoteReuse accept a signed quote more than once
	QuoteReuse bool
}

type ledger struct {
	cfg        Config
	verifier   *signer.Verifier
	oracle     core.PriceOracle
	currencies core.CurrencyService
	bank       core.Bank
	store      core.SaleStore
	listeners  []core.SaleListener
	now        func() time.Time

	// mu serializes purchases, a sale is final before funds move
	mu       sync.Mutex
	sales    []*core.Sale
	consumed map[common.Hash]bool
}

// New new purchase ledger. store is an optional durable sale log
func New(
	cfg Config,
	oracle core.PriceOracle,
	currencies core.CurrencyService,
	bank core.Bank,
	store core.SaleStore,
	listeners ...core.SaleListener,
) core.PurchaseService {
	return &ledger{
		cfg:        cfg,
		verifier:   signer.New(cfg.TrustedSigner),
		oracle:     oracle,
		currencies: currencies,
		bank:       bank,
		store:      store,
		listeners:  listeners,
		now:        time.Now,
		consumed:   map[common.Hash]bool{},
	}
}

func (l *ledger) Address() common.Address {
	return l.cfg.Address
}

func (l *ledger) Kind() core.ProductKind {
	return l.cfg.Kind
}

func (l *ledger) SaleCount() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	return int64(len(l.sales))
}

// Sales list sales with id >= fromID
func (l *ledger) Sales(ctx context.Context, fromID int64, limit int) ([]*core.Sale, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if fromID < 0 {
		fromID = 0
	}

	var sales []*core.Sale
	for i := fromID; i < int64(len(l.sales)) && (limit <= 0 || len(sales) < limit); i++ {
		sale := *l.sales[i]
		sales = append(sales, &sale)
	}

	return sales, nil
}

// BuyWithNative buy product with the native value attached by buyer. Only the
// computed amount is collected, the excess stays with the buyer
func (l *ledger) BuyWithNative(ctx context.Context, buyer common.Address, value *big.Int, product core.Product, sig []byte) (*core.Sale, error) {
	log := logger.FromContext(ctx).WithFields(map[string]interface{}{
		"ledger": l.cfg.Address.Hex(),
		"buyer":  buyer.Hex(),
	})
	ctx = logger.WithContext(ctx, log)

	sale, err := l.buyWithNative(ctx, buyer, value, product, sig)
	if err != nil {
		return nil, err
	}

	l.emit(ctx, sale)
	return sale, nil
}

func (l *ledger) buyWithNative(ctx context.Context, buyer common.Address, value *big.Int, product core.Product, sig []byte) (*core.Sale, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	digest, err := l.verify(ctx, product, sig)
	if err != nil {
		return nil, l.reject(ctx, "native", err)
	}

	charge := product.Charge()
	amount := charge.Native
	if !charge.IsNative() {
		if amount, err = l.oracle.NativeAmountForUSD(ctx, charge.TotalUSD()); err != nil {
			return nil, l.reject(ctx, "native", err)
		}
	}

	native := l.oracle.NativeAsset()
	if err := l.requirePayment(ctx, native, buyer, value, amount); err != nil {
		return nil, l.reject(ctx, "native", err)
	}

	sale := l.record(ctx, product, digest, buyer, native, amount)
	if err := l.bank.Transfer(ctx, native, buyer, l.cfg.Payout, amount); err != nil {
		l.rollback(sale)
		return nil, l.reject(ctx, "native", err)
	}

	l.commit(ctx, sale)
	return sale, nil
}

// BuyWithToken buy product with a registered asset pulled from payer, who
// approved the ledger beforehand. caller is not involved in the payment
func (l *ledger) BuyWithToken(ctx context.Context, caller common.Address, product core.Product, asset, payer common.Address, sig []byte) (*core.Sale, error) {
	log := logger.FromContext(ctx).WithFields(map[string]interface{}{
		"ledger": l.cfg.Address.Hex(),
		"caller": caller.Hex(),
		"payer":  payer.Hex(),
	})
	ctx = logger.WithContext(ctx, log)

	sale, err := l.buyWithToken(ctx, product, asset, payer, sig)
	if err != nil {
		return nil, err
	}

	l.emit(ctx, sale)
	return sale, nil
}

func (l *ledger) buyWithToken(ctx context.Context, product core.Product, asset, payer common.Address, sig []byte) (*core.Sale, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	digest, err := l.verify(ctx, product, sig)
	if err != nil {
		return nil, l.reject(ctx, "token", err)
	}

	amount, err := l.tokenAmount(ctx, product, asset)
	if err != nil {
		return nil, l.reject(ctx, "token", err)
	}

	if err := l.requireAllowance(ctx, asset, payer, amount); err != nil {
		return nil, l.reject(ctx, "token", err)
	}

	sale := l.record(ctx, product, digest, payer, asset, amount)
	if err := l.bank.TransferFrom(ctx, asset, l.cfg.Address, payer, l.cfg.Payout, amount); err != nil {
		l.rollback(sale)
		return nil, l.reject(ctx, "token", err)
	}

	l.commit(ctx, sale)
	return sale, nil
}

// ProductPrice amount of asset owed for product, the native asset or the
// zero address price in native units
func (l *ledger) ProductPrice(ctx context.Context, product core.Product, asset common.Address) (*big.Int, error) {
	if product.Kind() != l.cfg.Kind {
		return nil, fmt.Errorf("%w: %s product sent to %s ledger", core.ErrInvalidPayload, product.Kind(), l.cfg.Kind)
	}

	if asset == (common.Address{}) || asset == l.oracle.NativeAsset() {
		charge := product.Charge()
		if charge.IsNative() {
			return new(big.Int).Set(charge.Native), nil
		}

		return l.oracle.NativeAmountForUSD(ctx, charge.TotalUSD())
	}

	return l.tokenAmount(ctx, product, asset)
}

func (l *ledger) tokenAmount(ctx context.Context, product core.Product, asset common.Address) (*big.Int, error) {
	if _, ok := l.currencies.Currency(asset); !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedAsset, asset.Hex())
	}

	charge := product.Charge()
	if charge.IsNative() {
		return l.oracle.TokenAmountForNative(ctx, l.cfg.Address, asset, charge.Native)
	}

	return l.oracle.TokenAmountForUSD(ctx, asset, charge.TotalUSD())
}

// verify product checks and signature, returns the quote digest
func (l *ledger) verify(ctx context.Context, product core.Product, sig []byte) (common.Hash, error) {
	if product.Kind() != l.cfg.Kind {
		return common.Hash{}, fmt.Errorf("%w: %s product sent to %s ledger", core.ErrInvalidPayload, product.Kind(), l.cfg.Kind)
	}

	if err := product.Validate(l.now()); err != nil {
		if core.ErrorCodeOf(err) == core.ErrUnknown {
			return common.Hash{}, fmt.Errorf("%w: %v", core.ErrInvalidPayload, err)
		}

		return common.Hash{}, err
	}

	digest := product.Digest()
	if err := l.verifier.Verify(digest, sig); err != nil {
		return common.Hash{}, fmt.Errorf("%w: %w", core.ErrInvalidSignature, err)
	}

	if l.consumed[digest] && !l.cfg.QuoteReuse {
		return common.Hash{}, fmt.Errorf("%w: %s", core.ErrQuoteReplayed, digest.Hex())
	}

	return digest, nil
}

func (l *ledger) requirePayment(ctx context.Context, asset, buyer common.Address, value, amount *big.Int) error {
	if value == nil || value.Cmp(amount) < 0 {
		return fmt.Errorf("%w: paid %v, need %s", core.ErrInsufficientPayment, value, amount)
	}

	balance, err := l.bank.Balance(ctx, asset, buyer)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("bank.Balance")
		return err
	}

	if balance.Cmp(amount) < 0 {
		return fmt.Errorf("%w: balance %s, need %s", core.ErrInsufficientPayment, balance, amount)
	}

	return nil
}

func (l *ledger) requireAllowance(ctx context.Context, asset, payer common.Address, amount *big.Int) error {
	allowance, err := l.bank.Allowance(ctx, asset, payer, l.cfg.Address)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("bank.Allowance")
		return err
	}

	if allowance.Cmp(amount) < 0 {
		return fmt.Errorf("%w: allowance %s, need %s", core.ErrInsufficientAllowance, allowance, amount)
	}

	balance, err := l.bank.Balance(ctx, asset, payer)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("bank.Balance")
		return err
	}

	if balance.Cmp(amount) < 0 {
		return fmt.Errorf("%w: balance %s, need %s", core.ErrInsufficientBalance, balance, amount)
	}

	return nil
}

// record append the sale and consume the quote
func (l *ledger) record(ctx context.Context, product core.Product, digest common.Hash, buyer, asset common.Address, amount *big.Int) *core.Sale {
	charge := product.Charge()
	saleID := int64(len(l.sales))

	sale := &core.Sale{
		ID:          saleID,
		TraceID:     id.SaleTraceID(l.cfg.Address.Hex(), saleID),
		Ledger:      l.cfg.Address,
		Kind:        product.Kind(),
		Buyer:       buyer,
		Asset:       asset,
		Amount:      new(big.Int).Set(amount),
		PriceUSD:    valueOrZero(charge.PriceUSD),
		ExtraFeeUSD: valueOrZero(charge.ExtraFeeUSD),
		PriceNative: charge.Native,
		Digest:      digest,
		CreatedAt:   l.now(),
	}

	if data, err := json.Marshal(product); err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("json.Marshal product")
	} else {
		sale.Product = data
	}

	l.sales = append(l.sales, sale)
	l.consumed[digest] = true
	return sale
}

// rollback undo the latest record
func (l *ledger) rollback(sale *core.Sale) {
	l.sales = l.sales[:sale.ID]
	delete(l.consumed, sale.Digest)

	for _, s := range l.sales {
		if s.Digest == sale.Digest {
			l.consumed[sale.Digest] = true
			break
		}
	}
}

// commit mirror the sale to the store
func (l *ledger) commit(ctx context.Context, sale *core.Sale) {
	log := logger.FromContext(ctx).WithField("sale", sale.ID)

	if l.store != nil {
		if err := l.store.Create(ctx, sale); err != nil {
			log.WithError(err).Errorln("sales.Create")
		}
	}

	saleCounter.WithLabelValues(l.cfg.Kind.String(), assetLabel(l.oracle, sale.Asset)).Inc()
	log.Infof("sold %s for %s of %s", sale.Kind, sale.Amount, sale.Asset.Hex())
}

// emit the purchase event, called without holding mu so listeners may read
// the ledger
func (l *ledger) emit(ctx context.Context, sale *core.Sale) {
	event := sale.Event()
	for _, listener := range l.listeners {
		listener.OnSale(ctx, event)
	}
}

func (l *ledger) reject(ctx context.Context, path string, err error) error {
	code := core.ErrorCodeOf(err)
	rejectCounter.WithLabelValues(l.cfg.Kind.String(), path, code.Name()).Inc()

	logger.FromContext(ctx).WithError(err).Infof("purchase rejected, %s", code.Kind())
	return err
}

func valueOrZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}

	return new(big.Int).Set(v)
}
