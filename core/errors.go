package core

import (
	"errors"
	"strconv"
)

// ErrorCode int
type ErrorCode int

// ErrorKind groups error codes by the guard that raised them
type ErrorKind int

const (
	// KindUnknown unknown
	KindUnknown ErrorKind = iota
	// KindAuthorization caller is not allowed to do it
	KindAuthorization
	// KindVerification quote attestation rejected
	KindVerification
	// KindEconomic payment, asset or liquidity guard
	KindEconomic
	// KindExecution queued call failed
	KindExecution
)

const (
	// ErrUnknown unkown
	ErrUnknown ErrorCode = 100000

	// ErrNotOwner caller not in owner set
	ErrNotOwner ErrorCode = 100100
	// ErrUnknownTransaction no pending transaction with the id
	ErrUnknownTransaction ErrorCode = 100101
	// ErrAlreadyExecuted transaction executed
	ErrAlreadyExecuted ErrorCode = 100102
	// ErrNotWhitelisted caller is not a whitelisted consumer
	ErrNotWhitelisted ErrorCode = 100103
	// ErrQuorumNotReached fewer confirmations than the threshold
	ErrQuorumNotReached ErrorCode = 100104

	// ErrInvalidSignature quote not signed by the trusted signer
	ErrInvalidSignature ErrorCode = 100200
	// ErrSignatureMismatch recovered signer differs from the expected one
	ErrSignatureMismatch ErrorCode = 100201
	// ErrQuoteReplayed quote digest consumed already
	ErrQuoteReplayed ErrorCode = 100202
	// ErrQuoteExpired quote expired
	ErrQuoteExpired ErrorCode = 100203

	// ErrInsufficientPayment attached payment lower than the amount owed
	ErrInsufficientPayment ErrorCode = 100300
	// ErrInsufficientAllowance payer allowance lower than the amount owed
	ErrInsufficientAllowance ErrorCode = 100301
	// ErrUnsupportedAsset asset not registered
	ErrUnsupportedAsset ErrorCode = 100302
	// ErrNoLiquidity pool reserve is zero
	ErrNoLiquidity ErrorCode = 100303
	// ErrStalePool pool reserves too old
	ErrStalePool ErrorCode = 100304
	// ErrPoolNotFound no pool for the pair
	ErrPoolNotFound ErrorCode = 100305
	// ErrInsufficientBalance balance lower than transfer amount
	ErrInsufficientBalance ErrorCode = 100306

	// ErrExecutionFailed target call failed during quorum execution
	ErrExecutionFailed ErrorCode = 100400
	// ErrUnknownTarget no call target at the address
	ErrUnknownTarget ErrorCode = 100401
	// ErrUnknownAction target does not handle the action
	ErrUnknownAction ErrorCode = 100402
	// ErrInvalidPayload payload can not be decoded
	ErrInvalidPayload ErrorCode = 100403
	// ErrNotPayable value attached to a non payable call
	ErrNotPayable ErrorCode = 100404
)

var errorNames = map[ErrorCode]string{
	ErrUnknown:               "Unknown",
	ErrNotOwner:              "NotOwner",
	ErrUnknownTransaction:    "UnknownTransaction",
	ErrAlreadyExecuted:       "AlreadyExecuted",
	ErrNotWhitelisted:        "NotWhitelisted",
	ErrQuorumNotReached:      "QuorumNotReached",
	ErrInvalidSignature:      "InvalidSignature",
	ErrSignatureMismatch:     "SignatureMismatch",
	ErrQuoteReplayed:         "QuoteReplayed",
	ErrQuoteExpired:          "QuoteExpired",
	ErrInsufficientPayment:   "InsufficientPayment",
	ErrInsufficientAllowance: "InsufficientAllowance",
	ErrUnsupportedAsset:      "UnsupportedAsset",
	ErrNoLiquidity:           "NoLiquidity",
	ErrStalePool:             "StalePool",
	ErrPoolNotFound:          "PoolNotFound",
	ErrInsufficientBalance:   "InsufficientBalance",
	ErrExecutionFailed:       "ExecutionFailed",
	ErrUnknownTarget:         "UnknownTarget",
	ErrUnknownAction:         "UnknownAction",
	ErrInvalidPayload:        "InvalidPayload",
	ErrNotPayable:            "NotPayable",
}

// Name readable error name
func (e ErrorCode) Name() string {
	if name, ok := errorNames[e]; ok {
		return name
	}

	return "Unknown"
}

// Kind error category, derived from the code range
func (e ErrorCode) Kind() ErrorKind {
	switch int(e) / 100 {
	case 1001:
		return KindAuthorization
	case 1002:
		return KindVerification
	case 1003:
		return KindEconomic
	case 1004:
		return KindExecution
	default:
		return KindUnknown
	}
}

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.Name() + "(" + e.String() + ")"
}

func (k ErrorKind) String() string {
	switch k {
	case KindAuthorization:
		return "AuthorizationError"
	case KindVerification:
		return "VerificationError"
	case KindEconomic:
		return "EconomicError"
	case KindExecution:
		return "ExecutionError"
	default:
		return "UnknownError"
	}
}

// ErrorCodeOf extract the error code from a wrapped error, ErrUnknown if none
func ErrorCodeOf(err error) ErrorCode {
	var code ErrorCode
	if errors.As(err, &code) {
		return code
	}

	return ErrUnknown
}
