package proposal

import (
	"testing"

	"polka/core"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeCall(t *testing.T) {
	req := AddCurrencyReq{
		Asset: common.HexToAddress("0x0000000000000000000000000000000000000003"),
		Pool:  common.HexToAddress("0x00000000000000000000000000000000000000f2"),
	}

	payload, err := EncodeCall(core.ActionTypeAddCurrency, req)
	require.Nil(t, err)

	action, body, err := DecodeCall(payload)
	require.Nil(t, err)
	assert.Equal(t, core.ActionTypeAddCurrency, action)
	assert.True(t, action.IsAdminAction())

	var decoded AddCurrencyReq
	require.Nil(t, decoded.UnmarshalBinary(body))
	assert.Equal(t, req, decoded)
}

func TestEncodeBuyByToken(t *testing.T) {
	req := BuyByTokenReq{
		Product:   []byte{1, 2, 3},
		Asset:     common.HexToAddress("0x03"),
		Payer:     common.HexToAddress("0xc2"),
		Signature: make([]byte, 65),
	}

	payload, err := EncodeCall(core.ActionTypeBuyByToken, req)
	require.Nil(t, err)

	action, body, err := DecodeCall(payload)
	require.Nil(t, err)
	assert.Equal(t, core.ActionTypeBuyByToken, action)
	assert.False(t, action.IsAdminAction())

	var decoded BuyByTokenReq
	require.Nil(t, decoded.UnmarshalBinary(body))
	assert.Equal(t, req, decoded)
}

func TestDecodeCallInvalid(t *testing.T) {
	_, _, err := DecodeCall([]byte{1, 2})
	assert.ErrorIs(t, err, core.ErrInvalidPayload)
}

func TestParseActionType(t *testing.T) {
	assert.Equal(t, core.ActionTypeBuyByNative, core.ParseActionType("buyProductByNative"))
	assert.Equal(t, core.ActionTypeDefault, core.ParseActionType("nope"))
	assert.Equal(t, "addWhiteList", core.ActionTypeAddWhiteList.String())
}
