// Package signer verifies signed product quotes
package signer

import (
	"fmt"

	"polka/core"
	"polka/pkg/quote"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Verifier recovers quote signers and compares them to a trusted signer
type Verifier struct {
	trusted common.Address
}

// New new verifier bound to the trusted signer
func New(trusted common.Address) *Verifier {
	return &Verifier{trusted: trusted}
}

// Signer trusted signer
func (v *Verifier) Signer() common.Address {
	return v.trusted
}

// Recover signer of the digest. The signature is r || s || v with v in
// {0, 1} or {27, 28}
func Recover(digest common.Hash, sig []byte) (common.Address, error) {
	if len(sig) != quote.SignatureLength {
		return common.Address{}, quote.ErrInvalidSignatureLength
	}

	sig = append([]byte(nil), sig...)
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}

	if sig[crypto.RecoveryIDOffset] > 1 {
		return common.Address{}, fmt.Errorf("invalid recovery id %d", sig[crypto.RecoveryIDOffset])
	}

	pub, err := crypto.SigToPub(quote.MessageHash(digest), sig)
	if err != nil {
		return common.Address{}, err
	}

	return crypto.PubkeyToAddress(*pub), nil
}

// Verify check digest was signed by expected. Malformed signatures,
// recovery failures and foreign signers all fail with ErrSignatureMismatch
func Verify(digest common.Hash, sig []byte, expected common.Address) error {
	signer, err := Recover(digest, sig)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrSignatureMismatch, err)
	}

	if signer != expected {
		return fmt.Errorf("%w: recovered %s", core.ErrSignatureMismatch, signer.Hex())
	}

	return nil
}

// Verify check digest was signed by the trusted signer
func (v *Verifier) Verify(digest common.Hash, sig []byte) error {
	return Verify(digest, sig, v.trusted)
}
