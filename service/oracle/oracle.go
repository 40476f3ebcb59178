// Package oracle prices usd amounts in native and registered assets from pool
// reserves
package oracle

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"polka/core"
	"polka/pkg/number"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/logger"
)

type (
	// Config oracle config
	Config struct {
		NativeAsset    common.Address
		StableAsset    common.Address
		StableDecimals int32
		// MaxAge pools updated earlier are rejected as stale, 0 disables the check
		MaxAge time.Duration
	}

	oracle struct {
		cfg        Config
		pools      core.PoolStore
		currencies core.CurrencyService
		now        func() time.Time
	}
)

// New new reserve based price oracle
func New(cfg Config, pools core.PoolStore, currencies core.CurrencyService) core.PriceOracle {
	return &oracle{
		cfg:        cfg,
		pools:      pools,
		currencies: currencies,
		now:        time.Now,
	}
}

func (o *oracle) NativeAsset() common.Address {
	return o.cfg.NativeAsset
}

func (o *oracle) StableAsset() common.Address {
	return o.cfg.StableAsset
}

// NativeAmountForUSD floor(usd * 10^decimals * reserveNative / reserveStable)
func (o *oracle) NativeAmountForUSD(ctx context.Context, usd *big.Int) (*big.Int, error) {
	if err := validAmount(usd); err != nil {
		return nil, err
	}

	if usd.Sign() == 0 {
		return new(big.Int), nil
	}

	pool, err := o.pools.FindPair(ctx, o.cfg.NativeAsset, o.cfg.StableAsset)
	if err != nil {
		return nil, err
	}

	return o.quote(ctx, pool, o.cfg.StableAsset, o.stableUnits(usd))
}

func (o *oracle) TokenAmountForUSD(ctx context.Context, asset common.Address, usd *big.Int) (*big.Int, error) {
	if err := validAmount(usd); err != nil {
		return nil, err
	}

	currency, ok := o.currencies.Currency(asset)
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedAsset, asset.Hex())
	}

	if usd.Sign() == 0 {
		return new(big.Int), nil
	}

	switch asset {
	case o.cfg.StableAsset:
		return o.stableUnits(usd), nil
	case o.cfg.NativeAsset:
		return o.NativeAmountForUSD(ctx, usd)
	}

	pool, err := o.route(ctx, currency, o.cfg.StableAsset)
	if err != nil {
		return nil, err
	}

	if pool.Has(o.cfg.StableAsset) {
		return o.quote(ctx, pool, o.cfg.StableAsset, o.stableUnits(usd))
	}

	// two hops: usd to native, then native to asset
	native, err := o.NativeAmountForUSD(ctx, usd)
	if err != nil {
		return nil, err
	}

	return o.quote(ctx, pool, o.cfg.NativeAsset, native)
}

func (o *oracle) TokenAmountForNative(ctx context.Context, caller, asset common.Address, amount *big.Int) (*big.Int, error) {
	if !o.currencies.IsWhitelisted(caller) {
		return nil, fmt.Errorf("%w: %s", core.ErrNotWhitelisted, caller.Hex())
	}

	if err := validAmount(amount); err != nil {
		return nil, err
	}

	currency, ok := o.currencies.Currency(asset)
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedAsset, asset.Hex())
	}

	if amount.Sign() == 0 || asset == o.cfg.NativeAsset {
		return new(big.Int).Set(amount), nil
	}

	pool, err := o.route(ctx, currency, o.cfg.NativeAsset)
	if err != nil {
		return nil, err
	}

	if !pool.Has(o.cfg.NativeAsset) {
		return nil, fmt.Errorf("%w: %s has no native pair", core.ErrPoolNotFound, pool.Address.Hex())
	}

	return o.quote(ctx, pool, o.cfg.NativeAsset, amount)
}

// route pool pricing the currency, preferring quote as the paired asset.
// A pinned pool wins, then a direct pair, then the native pair
func (o *oracle) route(ctx context.Context, currency *core.Currency, quote common.Address) (*core.Pool, error) {
	if currency.HasPool() {
		pool, err := o.pools.Find(ctx, currency.Pool)
		if err != nil {
			return nil, err
		}

		if !pool.Has(currency.Asset) || !(pool.Has(quote) || pool.Has(o.cfg.NativeAsset)) {
			return nil, fmt.Errorf("%w: pool %s does not price %s", core.ErrPoolNotFound, pool.Address.Hex(), currency.Asset.Hex())
		}

		return pool, nil
	}

	pool, err := o.pools.FindPair(ctx, currency.Asset, quote)
	if err == nil || !errors.Is(err, core.ErrPoolNotFound) || quote == o.cfg.NativeAsset {
		return pool, err
	}

	return o.pools.FindPair(ctx, currency.Asset, o.cfg.NativeAsset)
}

// quote floor(amount * reserveOut / reserveIn), in the other token of the pool
func (o *oracle) quote(ctx context.Context, pool *core.Pool, in common.Address, amount *big.Int) (*big.Int, error) {
	log := logger.FromContext(ctx).WithField("pool", pool.Address.Hex())

	if age := o.cfg.MaxAge; age > 0 && o.now().Sub(pool.UpdatedAt) > age {
		log.Infof("pool updated at %s, stale", pool.UpdatedAt)
		return nil, fmt.Errorf("%w: %s", core.ErrStalePool, pool.Address.Hex())
	}

	reserveIn, reserveOut, ok := pool.ReservesOf(in)
	if !ok {
		return nil, fmt.Errorf("%w: %s not in pool %s", core.ErrPoolNotFound, in.Hex(), pool.Address.Hex())
	}

	if reserveIn == nil || reserveOut == nil || reserveIn.Sign() <= 0 || reserveOut.Sign() <= 0 {
		return nil, fmt.Errorf("%w: %s", core.ErrNoLiquidity, pool.Address.Hex())
	}

	return number.MulDiv(amount, reserveOut, reserveIn), nil
}

func (o *oracle) stableUnits(usd *big.Int) *big.Int {
	return new(big.Int).Mul(usd, number.Pow10(o.cfg.StableDecimals))
}

func validAmount(v *big.Int) error {
	if v == nil || v.Sign() < 0 {
		return fmt.Errorf("%w: negative amount", core.ErrInvalidPayload)
	}

	return nil
}
