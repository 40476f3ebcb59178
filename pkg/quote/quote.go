// Package quote canonical byte layout of signed product quotes.
//
// Strings are written as raw bytes, numbers as 32 byte big endian unsigned
// integers and addresses as their 20 raw bytes, concatenated in field order.
// The keccak256 of the layout is the quote digest; signers sign the digest as
// an EIP-191 personal message.
package quote

import (
	"crypto/ecdsa"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
)

// SignatureLength r || s || v
const SignatureLength = crypto.SignatureLength

// ErrInvalidSignatureLength signature is not 65 bytes
var ErrInvalidSignatureLength = errors.New("quote: invalid signature length")

// Packer packs quote fields
type Packer struct {
	buf []byte
}

// NewPacker new packer
func NewPacker() *Packer {
	return &Packer{}
}

// String raw bytes of s
func (p *Packer) String(s string) *Packer {
	p.buf = append(p.buf, s...)
	return p
}

// Uint 32 byte big endian, nil packs as zero
func (p *Packer) Uint(v *big.Int) *Packer {
	if v == nil {
		v = new(big.Int)
	}

	p.buf = append(p.buf, math.U256Bytes(new(big.Int).Set(v))...)
	return p
}

// Uint64 32 byte big endian
func (p *Packer) Uint64(v uint64) *Packer {
	return p.Uint(new(big.Int).SetUint64(v))
}

// Address 20 raw bytes
func (p *Packer) Address(a common.Address) *Packer {
	p.buf = append(p.buf, a.Bytes()...)
	return p
}

// Bytes packed layout
func (p *Packer) Bytes() []byte {
	return append([]byte(nil), p.buf...)
}

// Digest keccak256 of the packed layout
func (p *Packer) Digest() common.Hash {
	return crypto.Keccak256Hash(p.buf)
}

// MessageHash EIP-191 hash of the digest, what signers actually sign
func MessageHash(digest common.Hash) []byte {
	return accounts.TextHash(digest.Bytes())
}

// Sign sign the digest as a personal message, v is 27 or 28
func Sign(digest common.Hash, key *ecdsa.PrivateKey) ([]byte, error) {
	sig, err := crypto.Sign(MessageHash(digest), key)
	if err != nil {
		return nil, err
	}

	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}

// JoinSignature build a flat signature from its components
func JoinSignature(v uint8, r, s common.Hash) []byte {
	sig := make([]byte, 0, SignatureLength)
	sig = append(sig, r.Bytes()...)
	sig = append(sig, s.Bytes()...)
	return append(sig, v)
}

// SplitSignature split a flat signature into v, r, s
func SplitSignature(sig []byte) (uint8, common.Hash, common.Hash, error) {
	if len(sig) != SignatureLength {
		return 0, common.Hash{}, common.Hash{}, ErrInvalidSignatureLength
	}

	return sig[64], common.BytesToHash(sig[:32]), common.BytesToHash(sig[32:64]), nil
}
