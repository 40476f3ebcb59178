package dispatch

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"polka/core"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	addr  common.Address
	calls int
	from  common.Address
	value *big.Int
	err   error
}

func (r *recorder) Address() common.Address {
	return r.addr
}

func (r *recorder) Invoke(ctx context.Context, from common.Address, value *big.Int, payload []byte) error {
	r.calls++
	r.from = from
	r.value = value
	return r.err
}

func TestRouter(t *testing.T) {
	ctx := context.Background()
	a := &recorder{addr: common.HexToAddress("0x0a")}
	b := &recorder{addr: common.HexToAddress("0x0b"), err: errors.New("boom")}

	r, err := New(a, b)
	require.Nil(t, err)

	assert.NotNil(t, r.Register(&recorder{addr: a.addr}))
	assert.NotNil(t, r.Register(&recorder{}))

	from := common.HexToAddress("0x01")
	require.Nil(t, r.Call(ctx, from, a.addr, nil, nil))
	assert.Equal(t, 1, a.calls)
	assert.Equal(t, from, a.from)
	assert.Equal(t, 0, a.value.Sign())

	assert.EqualError(t, r.Call(ctx, from, b.addr, big.NewInt(1), nil), "boom")

	err = r.Call(ctx, from, common.HexToAddress("0x0c"), nil, nil)
	assert.ErrorIs(t, err, core.ErrUnknownTarget)
}
