package rest

import (
	"errors"
	"net/http"

	"polka/core"
	"polka/core/product"
	"polka/handler/param"
	"polka/handler/render"
	"polka/handler/views"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi"
)

func ledgerOf(w http.ResponseWriter, r *http.Request, ledgers Ledgers) (core.PurchaseService, bool) {
	address := chi.URLParam(r, "address")
	if !common.IsHexAddress(address) {
		render.BadRequest(w, errors.New("invalid ledger address"))
		return nil, false
	}

	_, ledger, ok := ledgers.Find(common.HexToAddress(address))
	if !ok {
		render.NotFoundRequest(w, errors.New("ledger not found"))
		return nil, false
	}

	return ledger, true
}

func ledgersHandler(ledgers Ledgers) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := make([]views.Ledger, 0, len(ledgers))
		for _, name := range ledgers.Names() {
			items = append(items, views.LedgerView(name, ledgers[name]))
		}

		render.JSON(w, items)
	}
}

func salesHandler(ledgers Ledgers) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ledger, ok := ledgerOf(w, r, ledgers)
		if !ok {
			return
		}

		var page param.Page
		if err := param.Binding(r, &page); err != nil {
			render.BadRequest(w, err)
			return
		}
		page.Normalize()

		sales, err := ledger.Sales(r.Context(), page.From, page.Limit)
		if err != nil {
			render.Error(w, err)
			return
		}

		items := make([]views.Sale, 0, len(sales))
		for _, s := range sales {
			items = append(items, views.SaleView(s))
		}

		render.JSON(w, items)
	}
}

// buyHandler buy a signed product as the caller. Without asset the native
// value is paid, otherwise the caller pays with an approved registered asset
func buyHandler(ledgers Ledgers) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerOf(w, r)
		if !ok {
			return
		}

		ledger, ok := ledgerOf(w, r, ledgers)
		if !ok {
			return
		}

		var body struct {
			Product   string `json:"product"`
			Signature string `json:"signature"`
			Value     string `json:"value"`
			Asset     string `json:"asset"`
		}

		if err := param.Binding(r, &body); err != nil {
			render.BadRequest(w, err)
			return
		}

		data, err := param.Bytes("product", body.Product)
		if err != nil {
			render.Error(w, err)
			return
		}

		p, err := product.Decode(ledger.Kind(), data)
		if err != nil {
			render.Error(w, err)
			return
		}

		sig, err := param.Bytes("signature", body.Signature)
		if err != nil {
			render.Error(w, err)
			return
		}

		ctx := r.Context()

		var sale *core.Sale
		if body.Asset == "" {
			value, err := param.Amount("value", body.Value)
			if err != nil {
				render.Error(w, err)
				return
			}

			sale, err = ledger.BuyWithNative(ctx, caller, value, p, sig)
			if err != nil {
				render.Error(w, err)
				return
			}
		} else {
			asset, err := param.Address("asset", body.Asset)
			if err != nil {
				render.Error(w, err)
				return
			}

			sale, err = ledger.BuyWithToken(ctx, caller, p, asset, caller, sig)
			if err != nil {
				render.Error(w, err)
				return
			}
		}

		render.JSON(w, views.SaleView(sale))
	}
}
