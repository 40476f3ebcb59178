package purchase

import (
	"context"
	"fmt"
	"math/big"

	"polka/core"
	"polka/core/product"
	"polka/core/proposal"

	"github.com/ethereum/go-ethereum/common"
)

// Invoke handle buy calls, value is forwarded to the native purchase path
func (l *ledger) Invoke(ctx context.Context, from common.Address, value *big.Int, payload []byte) error {
	action, body, err := proposal.DecodeCall(payload)
	if err != nil {
		return err
	}

	switch action {
	case core.ActionTypeBuyByNative:
		var req proposal.BuyByNativeReq
		if err := req.UnmarshalBinary(body); err != nil {
			return fmt.Errorf("%w: %v", core.ErrInvalidPayload, err)
		}

		p, err := product.Decode(l.cfg.Kind, req.Product)
		if err != nil {
			return err
		}

		_, err = l.BuyWithNative(ctx, from, value, p, req.Signature)
		return err
	case core.ActionTypeBuyByToken:
		if value != nil && value.Sign() > 0 {
			return core.ErrNotPayable
		}

		var req proposal.BuyByTokenReq
		if err := req.UnmarshalBinary(body); err != nil {
			return fmt.Errorf("%w: %v", core.ErrInvalidPayload, err)
		}

		p, err := product.Decode(l.cfg.Kind, req.Product)
		if err != nil {
			return err
		}

		_, err = l.BuyWithToken(ctx, from, p, req.Asset, req.Payer, req.Signature)
		return err
	default:
		return fmt.Errorf("%w: %s", core.ErrUnknownAction, action)
	}
}
