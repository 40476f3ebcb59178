package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCodeKind(t *testing.T) {
	cases := map[ErrorCode]ErrorKind{
		ErrNotOwner:              KindAuthorization,
		ErrNotWhitelisted:        KindAuthorization,
		ErrQuorumNotReached:      KindAuthorization,
		ErrInvalidSignature:      KindVerification,
		ErrQuoteExpired:          KindVerification,
		ErrInsufficientPayment:   KindEconomic,
		ErrInsufficientAllowance: KindEconomic,
		ErrStalePool:             KindEconomic,
		ErrExecutionFailed:       KindExecution,
		ErrNotPayable:            KindExecution,
		ErrUnknown:               KindUnknown,
	}

	for code, kind := range cases {
		assert.Equal(t, kind, code.Kind(), code.Name())
	}
}

func TestErrorCodeName(t *testing.T) {
	for code, name := range errorNames {
		assert.Equal(t, name, code.Name())
	}

	assert.Equal(t, "Unknown", ErrorCode(1).Name())
	assert.Equal(t, "NotOwner(100100)", ErrNotOwner.Error())
	assert.Equal(t, "EconomicError", KindEconomic.String())
}

func TestErrorCodeOf(t *testing.T) {
	err := fmt.Errorf("%w: %w", ErrExecutionFailed, ErrInsufficientPayment)
	assert.Equal(t, ErrExecutionFailed, ErrorCodeOf(err))
	assert.True(t, errors.Is(err, ErrInsufficientPayment))

	assert.Equal(t, ErrUnknown, ErrorCodeOf(errors.New("boom")))
	assert.Equal(t, ErrUnknown, ErrorCodeOf(nil))
}
