package codes

import (
	"errors"
	"fmt"
	"testing"

	"polka/core"

	"github.com/stretchr/testify/assert"
	"github.com/twitchtv/twirp"
)

func TestTranslate(t *testing.T) {
	cases := []struct {
		err  error
		code twirp.ErrorCode
	}{
		{core.ErrNotOwner, twirp.PermissionDenied},
		{fmt.Errorf("%w: bad", core.ErrInvalidSignature), twirp.InvalidArgument},
		{core.ErrInsufficientPayment, twirp.FailedPrecondition},
		{core.ErrStalePool, twirp.Unavailable},
		{core.ErrUnknownTransaction, twirp.NotFound},
		{core.ErrExecutionFailed, twirp.Aborted},
		{errors.New("boom"), twirp.Internal},
	}

	for _, c := range cases {
		twerr := Translate(c.err)
		assert.Equal(t, c.code, twerr.Code(), c.err.Error())
	}

	twerr := Translate(fmt.Errorf("%w: 3", core.ErrUnknownTransaction))
	assert.Equal(t, int(core.ErrUnknownTransaction), Of(twerr))
}

func TestWith(t *testing.T) {
	err := With(twirp.InvalidArgumentError("usd", "required"), InvalidArguments)
	twerr := Translate(err)
	assert.Equal(t, twirp.InvalidArgument, twerr.Code())
	assert.Equal(t, InvalidArguments, Of(twerr))

	assert.Equal(t, 404, Of(twirp.NotFoundError("x")))
}
