package core

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func TestSortTokens(t *testing.T) {
	a := common.HexToAddress("0x0000000000000000000000000000000000000001")
	b := common.HexToAddress("0xff00000000000000000000000000000000000000")

	x, y := SortTokens(a, b)
	assert.Equal(t, a, x)
	assert.Equal(t, b, y)

	x, y = SortTokens(b, a)
	assert.Equal(t, a, x)
	assert.Equal(t, b, y)
}

func TestPoolReserves(t *testing.T) {
	a := common.HexToAddress("0x01")
	b := common.HexToAddress("0x02")

	p := &Pool{Token0: a, Token1: b, Reserve0: big.NewInt(10), Reserve1: big.NewInt(20)}
	assert.True(t, p.Has(a))
	assert.Equal(t, b, p.Other(a))
	assert.Equal(t, a, p.Other(b))
}
