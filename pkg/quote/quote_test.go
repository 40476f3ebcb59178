package quote

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackerLayout(t *testing.T) {
	packed := NewPacker().
		String("hello").
		Uint64(30).
		Uint64(5).
		Uint(big.NewInt(20)).
		Bytes()

	require.Len(t, packed, 5+32*3)
	assert.Equal(t, "68656c6c6f", hex.EncodeToString(packed[:5]))
	assert.Equal(t, byte(30), packed[5+31])
	assert.Equal(t, byte(5), packed[5+63])
	assert.Equal(t, byte(20), packed[5+95])

	digest := crypto.Keccak256Hash(packed)
	assert.Equal(t, digest, NewPacker().String("hello").Uint64(30).Uint64(5).Uint64(20).Digest())
}

func TestPackerAddress(t *testing.T) {
	addr := common.HexToAddress("0x0000000000000000000000000000000000000005")
	packed := NewPacker().Address(addr).Uint(nil).Bytes()
	require.Len(t, packed, 20+32)
	assert.Equal(t, byte(5), packed[19])
}

func TestSignRecover(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.Nil(t, err)

	digest := NewPacker().String("My Device").String("My Brand").Uint64(50).Digest()
	sig, err := Sign(digest, key)
	require.Nil(t, err)
	require.Len(t, sig, SignatureLength)
	assert.Contains(t, []byte{27, 28}, sig[64])

	v, r, s, err := SplitSignature(sig)
	require.Nil(t, err)
	assert.Equal(t, sig, JoinSignature(v, r, s))

	raw := append([]byte(nil), sig...)
	raw[64] -= 27
	pub, err := crypto.SigToPub(MessageHash(digest), raw)
	require.Nil(t, err)
	assert.Equal(t, crypto.PubkeyToAddress(key.PublicKey), crypto.PubkeyToAddress(*pub))
}

func TestSplitSignatureLength(t *testing.T) {
	_, _, _, err := SplitSignature(make([]byte, 64))
	assert.ErrorIs(t, err, ErrInvalidSignatureLength)
}
