package rest

import (
	"errors"
	"net/http"
	"sort"

	"polka/core"
	"polka/handler/render"
	"polka/handler/request"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi"
	"github.com/twitchtv/twirp"
)

// Ledgers purchase ledgers by name
type Ledgers map[string]core.PurchaseService

// Find ledger at address
func (l Ledgers) Find(address common.Address) (string, core.PurchaseService, bool) {
	for name, ledger := range l {
		if ledger.Address() == address {
			return name, ledger, true
		}
	}

	return "", nil, false
}

// Names ledger names in order
func (l Ledgers) Names() []string {
	names := make([]string, 0, len(l))
	for name := range l {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// callerOf the caller authenticated by a signed request
func callerOf(w http.ResponseWriter, r *http.Request) (common.Address, bool) {
	caller, ok := request.NewContext(r.Context()).GetCaller()
	if !ok {
		render.Error(w, twirp.NewError(twirp.Unauthenticated, "signed request required"))
		return common.Address{}, false
	}

	return caller, true
}

// Handle handle rest api request. Writes act as the caller recovered from
// the request signature
func Handle(
	currencies core.CurrencyService,
	pools core.PoolStore,
	oracle core.PriceOracle,
	multisig core.MultiSigService,
	bank core.Bank,
	ledgers Ledgers,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/currencies", currenciesHandler(currencies))
	router.Get("/pools", poolsHandler(pools))
	router.Get("/price", priceHandler(oracle))

	router.Route("/ledgers", func(r chi.Router) {
		r.Get("/", ledgersHandler(ledgers))
		r.Get("/{address}/sales", salesHandler(ledgers))
		r.Get("/{address}/price", productPriceHandler(ledgers))
		r.Post("/{address}/buy", buyHandler(ledgers))
	})

	router.Route("/multisig", func(r chi.Router) {
		r.Get("/", multisigHandler(multisig))
		r.Get("/transactions", transactionsHandler(multisig))
		r.Get("/transactions/{id}", transactionHandler(multisig))
		r.Post("/transactions", submitHandler(multisig))
		r.Post("/transactions/{id}/confirm", confirmHandler(multisig))
		r.Post("/transactions/{id}/revoke", revokeHandler(multisig))
		r.Post("/transactions/{id}/execute", executeHandler(multisig))
	})

	router.Route("/bank", func(r chi.Router) {
		r.Get("/balance", balanceHandler(bank))
		r.Post("/approve", approveHandler(bank))
		r.Post("/deposit", depositHandler(bank, multisig))
	})

	return router
}
