package rest

import (
	"net/http"

	"polka/core"
	"polka/handler/render"
	"polka/handler/views"
)

func currenciesHandler(currencies core.CurrencyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list := currencies.Currencies()

		items := make([]views.Currency, 0, len(list))
		for _, c := range list {
			items = append(items, views.CurrencyView(c))
		}

		render.JSON(w, items)
	}
}

func poolsHandler(pools core.PoolStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := pools.All(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		items := make([]views.Pool, 0, len(list))
		for _, p := range list {
			items = append(items, views.PoolView(p))
		}

		render.JSON(w, items)
	}
}
