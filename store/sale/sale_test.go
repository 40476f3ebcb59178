package sale

import (
	"math/big"
	"testing"
	"time"

	"polka/core"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func TestRowConversion(t *testing.T) {
	amount, _ := new(big.Int).SetString("115792089237316195423570985008687907853269984665640564039457584007913129639935", 10)

	in := &core.Sale{
		ID:          3,
		TraceID:     "2b9e8f1b-7a3c-3b52-8f5e-0d4b1a9c6e21",
		Ledger:      common.HexToAddress("0xe1"),
		Kind:        core.ProductKindMSO,
		Buyer:       common.HexToAddress("0xc1"),
		Asset:       common.HexToAddress("0x01"),
		Amount:      amount,
		PriceUSD:    big.NewInt(30),
		ExtraFeeUSD: big.NewInt(20),
		Digest:      common.HexToHash("0x1234"),
		CreatedAt:   time.Unix(1700000000, 0),
	}

	out := fromCore(in).toCore()
	assert.Equal(t, in.ID, out.ID)
	assert.Equal(t, in.Ledger, out.Ledger)
	assert.Equal(t, amount.String(), out.Amount.String())
	assert.Equal(t, in.Digest, out.Digest)
	assert.Nil(t, out.PriceNative)

	in.PriceNative = big.NewInt(66026290216319654)
	out = fromCore(in).toCore()
	assert.Equal(t, "66026290216319654", out.PriceNative.String())
}
