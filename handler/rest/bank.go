package rest

import (
	"fmt"
	"net/http"

	"polka/core"
	"polka/handler/param"
	"polka/handler/render"
	"polka/handler/views"

	"github.com/ethereum/go-ethereum/common"
)

func balanceHandler(bank core.Bank) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Asset   string `json:"asset"`
			Owner   string `json:"owner"`
			Spender string `json:"spender"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		asset, err := param.Address("asset", params.Asset)
		if err != nil {
			render.Error(w, err)
			return
		}

		owner, err := param.Address("owner", params.Owner)
		if err != nil {
			render.Error(w, err)
			return
		}

		var spender common.Address
		if params.Spender != "" {
			if spender, err = param.Address("spender", params.Spender); err != nil {
				render.Error(w, err)
				return
			}
		}

		renderBalance(w, r, bank, asset, owner, spender)
	}
}

// approveHandler set the allowance spender may pull from the caller
func approveHandler(bank core.Bank) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerOf(w, r)
		if !ok {
			return
		}

		var body struct {
			Asset   string `json:"asset"`
			Spender string `json:"spender"`
			Amount  string `json:"amount"`
		}

		if err := param.Binding(r, &body); err != nil {
			render.BadRequest(w, err)
			return
		}

		asset, err := param.Address("asset", body.Asset)
		if err != nil {
			render.Error(w, err)
			return
		}

		spender, err := param.Address("spender", body.Spender)
		if err != nil {
			render.Error(w, err)
			return
		}

		amount, err := param.Amount("amount", body.Amount)
		if err != nil {
			render.Error(w, err)
			return
		}

		if err := bank.Approve(r.Context(), asset, caller, spender, amount); err != nil {
			render.Error(w, err)
			return
		}

		renderBalance(w, r, bank, asset, caller, spender)
	}
}

// depositHandler credit funds received outside the node, multisig owners only
func depositHandler(bank core.Bank, multisig core.MultiSigService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerOf(w, r)
		if !ok {
			return
		}

		if !multisig.IsOwner(caller) {
			render.Error(w, fmt.Errorf("%w: %s", core.ErrNotOwner, caller.Hex()))
			return
		}

		var body struct {
			Asset  string `json:"asset"`
			Owner  string `json:"owner"`
			Amount string `json:"amount"`
		}

		if err := param.Binding(r, &body); err != nil {
			render.BadRequest(w, err)
			return
		}

		asset, err := param.Address("asset", body.Asset)
		if err != nil {
			render.Error(w, err)
			return
		}

		owner, err := param.Address("owner", body.Owner)
		if err != nil {
			render.Error(w, err)
			return
		}

		amount, err := param.Amount("amount", body.Amount)
		if err != nil {
			render.Error(w, err)
			return
		}

		if err := bank.Deposit(r.Context(), asset, owner, amount); err != nil {
			render.Error(w, err)
			return
		}

		renderBalance(w, r, bank, asset, owner, common.Address{})
	}
}

func renderBalance(w http.ResponseWriter, r *http.Request, bank core.Bank, asset, owner, spender common.Address) {
	ctx := r.Context()

	balance, err := bank.Balance(ctx, asset, owner)
	if err != nil {
		render.Error(w, err)
		return
	}

	view := views.BalanceView(asset, owner, balance)
	if spender != (common.Address{}) {
		allowance, err := bank.Allowance(ctx, asset, owner, spender)
		if err != nil {
			render.Error(w, err)
			return
		}

		view = view.WithAllowance(spender, allowance)
	}

	render.JSON(w, view)
}
