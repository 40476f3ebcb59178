package rest

import (
	"net/http"

	"polka/core"
	"polka/handler/param"
	"polka/handler/render"
	"polka/handler/views"

	"github.com/ethereum/go-ethereum/common"
)

func multisigHandler(multisig core.MultiSigService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, views.MultiSigView(multisig))
	}
}

func transactionsHandler(multisig core.MultiSigService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var page param.Page
		if err := param.Binding(r, &page); err != nil {
			render.BadRequest(w, err)
			return
		}
		page.Normalize()

		txs, err := multisig.Transactions(r.Context(), page.From, page.Limit)
		if err != nil {
			render.Error(w, err)
			return
		}

		items := make([]views.Transaction, 0, len(txs))
		for _, t := range txs {
			items = append(items, views.TransactionView(t))
		}

		render.JSON(w, items)
	}
}

func transactionHandler(multisig core.MultiSigService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := param.Int64(r, "id")
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		tx, err := multisig.Transaction(r.Context(), id)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.TransactionView(tx))
	}
}

func submitHandler(multisig core.MultiSigService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerOf(w, r)
		if !ok {
			return
		}

		var body struct {
			Target  string `json:"target"`
			Value   string `json:"value"`
			Payload string `json:"payload"`
		}

		if err := param.Binding(r, &body); err != nil {
			render.BadRequest(w, err)
			return
		}

		target, err := param.Address("target", body.Target)
		if err != nil {
			render.Error(w, err)
			return
		}

		value, err := param.Amount("value", body.Value)
		if err != nil {
			render.Error(w, err)
			return
		}

		payload, err := param.Bytes("payload", body.Payload)
		if err != nil {
			render.Error(w, err)
			return
		}

		ctx := r.Context()
		id, err := multisig.Submit(ctx, caller, target, value, payload)
		if err != nil {
			render.Error(w, err)
			return
		}

		renderTransaction(w, r, multisig, id)
	}
}

// transactionActionHandler run action on the transaction in the url as the
// authenticated caller and render its state afterwards
func transactionActionHandler(
	multisig core.MultiSigService,
	action func(r *http.Request, caller common.Address, id int64) error,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := callerOf(w, r)
		if !ok {
			return
		}

		id, err := param.Int64(r, "id")
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := action(r, caller, id); err != nil {
			render.Error(w, err)
			return
		}

		renderTransaction(w, r, multisig, id)
	}
}

func confirmHandler(multisig core.MultiSigService) http.HandlerFunc {
	return transactionActionHandler(multisig, func(r *http.Request, caller common.Address, id int64) error {
		var body struct {
			RevokeOthers bool `json:"revoke_others"`
		}

		if err := param.Binding(r, &body); err != nil {
			return err
		}

		return multisig.Confirm(r.Context(), caller, id, body.RevokeOthers)
	})
}

func revokeHandler(multisig core.MultiSigService) http.HandlerFunc {
	return transactionActionHandler(multisig, func(r *http.Request, caller common.Address, id int64) error {
		return multisig.Revoke(r.Context(), caller, id)
	})
}

func executeHandler(multisig core.MultiSigService) http.HandlerFunc {
	return transactionActionHandler(multisig, func(r *http.Request, caller common.Address, id int64) error {
		return multisig.Execute(r.Context(), caller, id)
	})
}

func renderTransaction(w http.ResponseWriter, r *http.Request, multisig core.MultiSigService, id int64) {
	tx, err := multisig.Transaction(r.Context(), id)
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, views.TransactionView(tx))
}
