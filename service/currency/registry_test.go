package currency

import (
	"context"
	"math/big"
	"testing"

	"polka/core"
	"polka/core/proposal"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	registryAddr = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	owner        = common.HexToAddress("0x00000000000000000000000000000000000000b1")
	stranger     = common.HexToAddress("0x00000000000000000000000000000000000000b2")
	cvr          = common.HexToAddress("0x00000000000000000000000000000000000000c1")
	dai          = common.HexToAddress("0x00000000000000000000000000000000000000c2")
	pool         = common.HexToAddress("0x00000000000000000000000000000000000000d1")
	ledger       = common.HexToAddress("0x00000000000000000000000000000000000000e1")
)

func TestRegister(t *testing.T) {
	ctx := context.Background()
	r := New(registryAddr, owner)

	assert.ErrorIs(t, r.Register(ctx, stranger, cvr, pool), core.ErrNotOwner)
	_, ok := r.Currency(cvr)
	assert.False(t, ok)

	require.Nil(t, r.Register(ctx, owner, cvr, pool))
	require.Nil(t, r.Register(ctx, owner, cvr, pool))
	require.Nil(t, r.Register(ctx, owner, dai, common.Address{}))

	c, ok := r.Currency(cvr)
	require.True(t, ok)
	assert.True(t, c.HasPool())
	assert.Equal(t, pool, c.Pool)

	currencies := r.Currencies()
	require.Len(t, currencies, 2)
	assert.Equal(t, cvr, currencies[0].Asset)
	assert.Equal(t, dai, currencies[1].Asset)

	assert.ErrorIs(t, r.Remove(ctx, stranger, cvr), core.ErrNotOwner)
	require.Nil(t, r.Remove(ctx, owner, cvr))
	require.Nil(t, r.Remove(ctx, owner, cvr))
	_, ok = r.Currency(cvr)
	assert.False(t, ok)

	assert.ErrorIs(t, r.Register(ctx, owner, common.Address{}, pool), core.ErrInvalidPayload)
}

func TestWhitelist(t *testing.T) {
	ctx := context.Background()
	r := New(registryAddr, owner)

	assert.ErrorIs(t, r.WhitelistConsumer(ctx, stranger, ledger), core.ErrNotOwner)
	assert.False(t, r.IsWhitelisted(ledger))

	require.Nil(t, r.WhitelistConsumer(ctx, owner, ledger))
	assert.True(t, r.IsWhitelisted(ledger))

	require.Nil(t, r.RemoveConsumer(ctx, owner, ledger))
	assert.False(t, r.IsWhitelisted(ledger))
}

func TestInvoke(t *testing.T) {
	ctx := context.Background()
	r := New(registryAddr, owner)

	add, err := proposal.EncodeCall(core.ActionTypeAddCurrency, proposal.AddCurrencyReq{Asset: cvr, Pool: pool})
	require.Nil(t, err)

	assert.ErrorIs(t, r.Invoke(ctx, stranger, nil, add), core.ErrNotOwner)
	assert.ErrorIs(t, r.Invoke(ctx, owner, big.NewInt(1), add), core.ErrNotPayable)

	require.Nil(t, r.Invoke(ctx, owner, new(big.Int), add))
	_, ok := r.Currency(cvr)
	assert.True(t, ok)

	white, err := proposal.EncodeCall(core.ActionTypeAddWhiteList, proposal.WhiteListReq{Consumer: ledger})
	require.Nil(t, err)
	require.Nil(t, r.Invoke(ctx, owner, nil, white))
	assert.True(t, r.IsWhitelisted(ledger))

	remove, err := proposal.EncodeCall(core.ActionTypeRemoveCurrency, proposal.RemoveCurrencyReq{Asset: cvr})
	require.Nil(t, err)
	require.Nil(t, r.Invoke(ctx, owner, nil, remove))
	_, ok = r.Currency(cvr)
	assert.False(t, ok)

	buy, err := proposal.EncodeCall(core.ActionTypeBuyByNative, proposal.BuyByNativeReq{})
	require.Nil(t, err)
	assert.ErrorIs(t, r.Invoke(ctx, owner, nil, buy), core.ErrUnknownAction)

	assert.ErrorIs(t, r.Invoke(ctx, owner, nil, []byte{1, 2}), core.ErrInvalidPayload)
}
