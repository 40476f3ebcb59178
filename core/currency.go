package core

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

type (
	// Currency asset accepted as payment
	Currency struct {
		Asset common.Address `json:"asset"`
		// Pool optional liquidity pool used to price the asset
		Pool common.Address `json:"pool,omitempty"`
	}

	// CurrencyService accepted asset set and oracle consumer whitelist,
	// mutated by the owner only
	CurrencyService interface {
		CallTarget
		Owner() common.Address
		Register(ctx context.Context, caller, asset, pool common.Address) error
		Remove(ctx context.Context, caller, asset common.Address) error
		WhitelistConsumer(ctx context.Context, caller, consumer common.Address) error
		RemoveConsumer(ctx context.Context, caller, consumer common.Address) error
		Currency(asset common.Address) (*Currency, bool)
		Currencies() []*Currency
		IsWhitelisted(consumer common.Address) bool
	}
)

// HasPool check if a pool is pinned to the currency
func (c *Currency) HasPool() bool {
	return c.Pool != (common.Address{})
}
