package multisig

import (
	"math/big"
	"testing"
	"time"

	"polka/core"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowConversion(t *testing.T) {
	wallet := common.HexToAddress("0xa0")

	in := &core.Transaction{
		ID:            2,
		Submitter:     common.HexToAddress("0xb1"),
		Target:        common.HexToAddress("0xe1"),
		Value:         big.NewInt(7),
		Payload:       []byte{0, 1, 2, 3},
		Confirmations: []common.Address{common.HexToAddress("0xb1"), common.HexToAddress("0xb2")},
		CreatedAt:     time.Unix(1700000000, 0),
	}

	row := fromCore(wallet, in)
	assert.Equal(t, "0x00010203", row.Payload)
	assert.False(t, row.ExecutedAt.Valid)

	out := row.toCore()
	assert.Equal(t, in.Payload, out.Payload)
	assert.Equal(t, in.Confirmations, out.Confirmations)
	assert.Equal(t, "7", out.Value.String())
	assert.True(t, out.ExecutedAt.IsZero())

	in.Executed = true
	in.ExecutedAt = time.Unix(1700000100, 0)
	in.Value = nil
	out = fromCore(wallet, in).toCore()
	require.True(t, out.Executed)
	assert.Equal(t, in.ExecutedAt, out.ExecutedAt)
	assert.Equal(t, 0, out.Value.Sign())
}
