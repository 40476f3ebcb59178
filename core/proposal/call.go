package proposal

import (
	"encoding"
	"fmt"

	"polka/core"
	"polka/pkg/mtg"
)

// EncodeCall payload of a call: action followed by the marshalled request
func EncodeCall(action core.ActionType, req encoding.BinaryMarshaler) ([]byte, error) {
	return mtg.Encode(int(action), req)
}

// DecodeCall split a payload into its action and request body
func DecodeCall(payload []byte) (core.ActionType, []byte, error) {
	var (
		action int
		body   mtg.RawMessage
	)

	if _, err := mtg.Scan(payload, &action, &body); err != nil {
		return core.ActionTypeDefault, nil, fmt.Errorf("%w: %v", core.ErrInvalidPayload, err)
	}

	return core.ActionType(action), body, nil
}
