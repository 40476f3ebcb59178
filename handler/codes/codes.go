package codes

import (
	"errors"
	"strconv"

	"polka/core"

	"github.com/twitchtv/twirp"
)

const (
	// CustomCodeKey code key
	CustomCodeKey = "custom_code"

	// InvalidArguments invalid arguments
	InvalidArguments = 100001
)

// With with specified error
func With(err error, code int) error {
	twerr, ok := err.(twirp.Error)
	if !ok {
		twerr = twirp.InternalErrorWith(err)
	}

	return twerr.WithMeta(CustomCodeKey, strconv.Itoa(code))
}

// Get get error code
func Get(code twirp.ErrorCode) int {
	switch code {
	case twirp.InvalidArgument:
		return InvalidArguments
	default:
		return twirp.ServerHTTPStatusFromErrorCode(code)
	}
}

// Of the custom code carried by a twirp error, derived from the twirp code if unset
func Of(twerr twirp.Error) int {
	if v := twerr.Meta(CustomCodeKey); v != "" {
		if code, err := strconv.Atoi(v); err == nil {
			return code
		}
	}

	return Get(twerr.Code())
}

// Translate convert domain errors into twirp errors with the domain code attached
func Translate(err error) twirp.Error {
	var twerr twirp.Error
	if errors.As(err, &twerr) {
		return twerr
	}

	code := core.ErrorCodeOf(err)
	if code == core.ErrUnknown {
		return twirp.InternalErrorWith(err)
	}

	twerr = twirp.NewError(twirpCode(code), err.Error())
	return twerr.WithMeta(CustomCodeKey, code.String())
}

func twirpCode(code core.ErrorCode) twirp.ErrorCode {
	switch code {
	case core.ErrUnknownTransaction, core.ErrPoolNotFound, core.ErrUnknownTarget:
		return twirp.NotFound
	case core.ErrUnsupportedAsset, core.ErrInvalidPayload:
		return twirp.InvalidArgument
	case core.ErrNoLiquidity, core.ErrStalePool:
		return twirp.Unavailable
	}

	switch code.Kind() {
	case core.KindAuthorization:
		return twirp.PermissionDenied
	case core.KindVerification:
		return twirp.InvalidArgument
	case core.KindEconomic:
		return twirp.FailedPrecondition
	case core.KindExecution:
		return twirp.Aborted
	default:
		return twirp.Internal
	}
}
