package core

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// PriceOracle converts usd amounts into asset amounts from pool reserves
type PriceOracle interface {
	NativeAsset() common.Address
	StableAsset() common.Address
	NativeAmountForUSD(ctx context.Context, usd *big.Int) (*big.Int, error)
	TokenAmountForUSD(ctx context.Context, asset common.Address, usd *big.Int) (*big.Int, error)
	// TokenAmountForNative restricted to whitelisted consumers
	TokenAmountForNative(ctx context.Context, caller, asset common.Address, amount *big.Int) (*big.Int, error)
}
