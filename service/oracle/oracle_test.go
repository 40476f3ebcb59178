package oracle

import (
	"context"
	"math/big"
	"testing"
	"time"

	"polka/core"
	"polka/service/currency"
	"polka/store/pool"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	weth = common.HexToAddress("0x0000000000000000000000000000000000000001")
	usdc = common.HexToAddress("0x0000000000000000000000000000000000000002")
	cvr  = common.HexToAddress("0x0000000000000000000000000000000000000003")
	dai  = common.HexToAddress("0x0000000000000000000000000000000000000004")
	dry  = common.HexToAddress("0x0000000000000000000000000000000000000005")

	wethUsdcPool = common.HexToAddress("0x00000000000000000000000000000000000000f1")
	cvrWethPool  = common.HexToAddress("0x00000000000000000000000000000000000000f2")
	daiUsdcPool  = common.HexToAddress("0x00000000000000000000000000000000000000f3")
	dryWethPool  = common.HexToAddress("0x00000000000000000000000000000000000000f4")

	owner  = common.HexToAddress("0x00000000000000000000000000000000000000b1")
	ledger = common.HexToAddress("0x00000000000000000000000000000000000000e1")
)

func bigString(t *testing.T, s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok, s)
	return v
}

type fixture struct {
	oracle     *oracle
	pools      core.PoolStore
	currencies core.CurrencyService
	now        time.Time
}

func newFixture(t *testing.T, decimals int32) *fixture {
	ctx := context.Background()
	now := time.Unix(1700000000, 0)

	pools := pool.Memory()
	currencies := currency.New(common.HexToAddress("0xa1"), owner)

	for _, p := range []*core.Pool{
		{Address: wethUsdcPool, Token0: weth, Token1: usdc, Reserve0: bigString(t, "1000000000000000000000"), Reserve1: bigString(t, "3000000000000"), UpdatedAt: now},
		{Address: cvrWethPool, Token0: cvr, Token1: weth, Reserve0: bigString(t, "5000000000000000000000000"), Reserve1: bigString(t, "1000000000000000000000"), UpdatedAt: now},
		{Address: daiUsdcPool, Token0: usdc, Token1: dai, Reserve0: bigString(t, "2000000000000"), Reserve1: bigString(t, "2000000000000000000000000"), UpdatedAt: now},
		{Address: dryWethPool, Token0: dry, Token1: weth, Reserve0: new(big.Int), Reserve1: bigString(t, "1000"), UpdatedAt: now},
	} {
		require.Nil(t, pools.Save(ctx, p))
	}

	require.Nil(t, currencies.Register(ctx, owner, cvr, common.Address{}))
	require.Nil(t, currencies.Register(ctx, owner, dai, common.Address{}))
	require.Nil(t, currencies.Register(ctx, owner, dry, dryWethPool))
	require.Nil(t, currencies.Register(ctx, owner, usdc, common.Address{}))

	o := New(Config{
		NativeAsset:    weth,
		StableAsset:    usdc,
		StableDecimals: decimals,
		MaxAge:         time.Hour,
	}, pools, currencies).(*oracle)
	o.now = func() time.Time { return now }

	return &fixture{oracle: o, pools: pools, currencies: currencies, now: now}
}

func TestNativeAmountForUSD(t *testing.T) {
	ctx := context.Background()

	t.Run("floor of usd times reserve ratio", func(t *testing.T) {
		f := newFixture(t, 0)

		x := bigString(t, "1000000000000000000000")
		y := bigString(t, "3000000000000")
		expect := new(big.Int).Mul(big.NewInt(50), x)
		expect.Quo(expect, y)

		amount, err := f.oracle.NativeAmountForUSD(ctx, big.NewInt(50))
		require.Nil(t, err)
		assert.Equal(t, expect.String(), amount.String())
	})

	t.Run("stable decimals scaling", func(t *testing.T) {
		f := newFixture(t, 6)

		amount, err := f.oracle.NativeAmountForUSD(ctx, big.NewInt(50))
		require.Nil(t, err)
		// 50 usd at 3000 usd per native unit, 18 decimals
		assert.Equal(t, "16666666666666666", amount.String())
	})

	t.Run("zero without reserves", func(t *testing.T) {
		o := New(Config{NativeAsset: weth, StableAsset: usdc}, pool.Memory(), currency.New(common.Address{}, owner))

		amount, err := o.NativeAmountForUSD(ctx, new(big.Int))
		require.Nil(t, err)
		assert.Equal(t, 0, amount.Sign())

		_, err = o.NativeAmountForUSD(ctx, big.NewInt(1))
		assert.ErrorIs(t, err, core.ErrPoolNotFound)
	})

	t.Run("monotonic", func(t *testing.T) {
		f := newFixture(t, 6)

		last := new(big.Int)
		for usd := int64(0); usd < 200; usd++ {
			amount, err := f.oracle.NativeAmountForUSD(ctx, big.NewInt(usd))
			require.Nil(t, err)
			assert.True(t, amount.Cmp(last) >= 0, "usd %d", usd)
			last = amount
		}
	})

	t.Run("stale pool", func(t *testing.T) {
		f := newFixture(t, 6)
		f.oracle.now = func() time.Time { return f.now.Add(2 * time.Hour) }

		_, err := f.oracle.NativeAmountForUSD(ctx, big.NewInt(50))
		assert.ErrorIs(t, err, core.ErrStalePool)

		f.oracle.cfg.MaxAge = 0
		_, err = f.oracle.NativeAmountForUSD(ctx, big.NewInt(50))
		assert.Nil(t, err)
	})

	t.Run("negative", func(t *testing.T) {
		f := newFixture(t, 6)
		_, err := f.oracle.NativeAmountForUSD(ctx, big.NewInt(-1))
		assert.ErrorIs(t, err, core.ErrInvalidPayload)
	})
}

func TestTokenAmountForUSD(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 6)

	t.Run("two hops through native", func(t *testing.T) {
		native, err := f.oracle.NativeAmountForUSD(ctx, big.NewInt(50))
		require.Nil(t, err)

		amount, err := f.oracle.TokenAmountForUSD(ctx, cvr, big.NewInt(50))
		require.Nil(t, err)
		assert.Equal(t, new(big.Int).Mul(native, big.NewInt(5000)).String(), amount.String())
	})

	t.Run("direct stable pair", func(t *testing.T) {
		amount, err := f.oracle.TokenAmountForUSD(ctx, dai, big.NewInt(50))
		require.Nil(t, err)
		// 50 * 10^6 * 2e24 / 2e12
		assert.Equal(t, "50000000000000000000", amount.String())
	})

	t.Run("stable asset", func(t *testing.T) {
		amount, err := f.oracle.TokenAmountForUSD(ctx, usdc, big.NewInt(50))
		require.Nil(t, err)
		assert.Equal(t, "50000000", amount.String())
	})

	t.Run("unsupported asset", func(t *testing.T) {
		_, err := f.oracle.TokenAmountForUSD(ctx, common.HexToAddress("0x99"), big.NewInt(50))
		assert.ErrorIs(t, err, core.ErrUnsupportedAsset)

		_, err = f.oracle.TokenAmountForUSD(ctx, weth, new(big.Int))
		assert.ErrorIs(t, err, core.ErrUnsupportedAsset)
	})

	t.Run("zero", func(t *testing.T) {
		amount, err := f.oracle.TokenAmountForUSD(ctx, cvr, new(big.Int))
		require.Nil(t, err)
		assert.Equal(t, 0, amount.Sign())
	})

	t.Run("no liquidity on pinned pool", func(t *testing.T) {
		_, err := f.oracle.TokenAmountForUSD(ctx, dry, big.NewInt(50))
		assert.ErrorIs(t, err, core.ErrNoLiquidity)
	})

	t.Run("pinned pool must price the asset", func(t *testing.T) {
		require.Nil(t, f.currencies.Register(ctx, owner, cvr, daiUsdcPool))
		defer func() {
			require.Nil(t, f.currencies.Register(ctx, owner, cvr, common.Address{}))
		}()

		_, err := f.oracle.TokenAmountForUSD(ctx, cvr, big.NewInt(50))
		assert.ErrorIs(t, err, core.ErrPoolNotFound)
	})
}

func TestTokenAmountForNative(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 6)

	_, err := f.oracle.TokenAmountForNative(ctx, ledger, cvr, big.NewInt(1000))
	assert.ErrorIs(t, err, core.ErrNotWhitelisted)

	require.Nil(t, f.currencies.WhitelistConsumer(ctx, owner, ledger))

	amount, err := f.oracle.TokenAmountForNative(ctx, ledger, cvr, big.NewInt(1000))
	require.Nil(t, err)
	assert.Equal(t, "5000000", amount.String())

	_, err = f.oracle.TokenAmountForNative(ctx, ledger, common.HexToAddress("0x99"), big.NewInt(1000))
	assert.ErrorIs(t, err, core.ErrUnsupportedAsset)

	_, err = f.oracle.TokenAmountForNative(ctx, ledger, dai, big.NewInt(1000))
	assert.ErrorIs(t, err, core.ErrPoolNotFound)
}
