package rest

import (
	"errors"
	"math/big"
	"net/http"

	"polka/core"
	"polka/core/product"
	"polka/handler/param"
	"polka/handler/render"
	"polka/handler/views"
	"polka/pkg/number"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"
)

func priceHandler(oracle core.PriceOracle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			USD   string `json:"usd"`
			Asset string `json:"asset"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		usd, err := decimal.NewFromString(params.USD)
		if err != nil || usd.IsNegative() {
			render.BadRequest(w, errors.New("usd must be a non negative integer"))
			return
		}

		asset := oracle.NativeAsset()
		if params.Asset != "" {
			if !common.IsHexAddress(params.Asset) {
				render.BadRequest(w, errors.New("invalid asset address"))
				return
			}
			asset = common.HexToAddress(params.Asset)
		}

		usdUnits := number.ToUnits(usd, 0)

		var owed *big.Int
		if asset == oracle.NativeAsset() {
			owed, err = oracle.NativeAmountForUSD(r.Context(), usdUnits)
		} else {
			owed, err = oracle.TokenAmountForUSD(r.Context(), asset, usdUnits)
		}

		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.PriceView(asset, usdUnits, owed))
	}
}

func productPriceHandler(ledgers Ledgers) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ledger, ok := ledgerOf(w, r, ledgers)
		if !ok {
			return
		}

		var params struct {
			Product string `json:"product"`
			Asset   string `json:"asset"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		data, err := hexutil.Decode(params.Product)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		p, err := product.Decode(ledger.Kind(), data)
		if err != nil {
			render.Error(w, err)
			return
		}

		var asset common.Address
		if params.Asset != "" {
			if !common.IsHexAddress(params.Asset) {
				render.BadRequest(w, errors.New("invalid asset address"))
				return
			}
			asset = common.HexToAddress(params.Asset)
		}

		owed, err := ledger.ProductPrice(r.Context(), p, asset)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.PriceView(asset, p.Charge().TotalUSD(), owed))
	}
}
