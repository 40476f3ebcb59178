// Package mtg positional binary codec for call payloads.
//
// Fixed width values are written big endian: int, int64 and uint64 take 8
// bytes, int8, uint8 and bool take 1 byte, uuids 16, addresses 20 and hashes 32.
// Variable width values (string, []byte, RawMessage, *big.Int magnitude and
// binary marshalers) are prefixed with a 2 byte length.
package mtg

import (
	"encoding"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofrs/uuid"
)

// RawMessage raw bytes
type RawMessage []byte

var (
	// ErrShortBuffer data exhausted before all values were scanned
	ErrShortBuffer = errors.New("mtg: short buffer")
	// ErrTooLarge variable value exceeds the length prefix
	ErrTooLarge = errors.New("mtg: value too large")
	// ErrNegative negative big int
	ErrNegative = errors.New("mtg: negative big int")
)

// Encode encode values in order
func Encode(values ...interface{}) ([]byte, error) {
	var out []byte
	for idx, v := range values {
		b, err := encodeValue(v)
		if err != nil {
			return nil, fmt.Errorf("mtg: encode value %d: %w", idx, err)
		}
		out = append(out, b...)
	}

	return out, nil
}

func encodeValue(v interface{}) ([]byte, error) {
	switch val := v.(type) {
	case int:
		return uint64Bytes(uint64(val)), nil
	case int64:
		return uint64Bytes(uint64(val)), nil
	case uint64:
		return uint64Bytes(val), nil
	case int8:
		return []byte{byte(val)}, nil
	case uint8:
		return []byte{val}, nil
	case bool:
		if val {
			return []byte{1}, nil
		}
		return []byte{0}, nil
	case string:
		return withLength([]byte(val))
	case []byte:
		return withLength(val)
	case RawMessage:
		return withLength(val)
	case uuid.UUID:
		return val.Bytes(), nil
	case common.Address:
		return val.Bytes(), nil
	case common.Hash:
		return val.Bytes(), nil
	case *big.Int:
		if val == nil {
			return withLength(nil)
		}
		if val.Sign() < 0 {
			return nil, ErrNegative
		}
		return withLength(val.Bytes())
	case encoding.BinaryMarshaler:
		data, err := val.MarshalBinary()
		if err != nil {
			return nil, err
		}
		return withLength(data)
	default:
		return nil, fmt.Errorf("unsupported type %T", v)
	}
}

// Scan decode values in order into dest, returns the remaining bytes
func Scan(data []byte, dest ...interface{}) ([]byte, error) {
	for idx, d := range dest {
		var err error
		if data, err = scanValue(data, d); err != nil {
			return nil, fmt.Errorf("mtg: scan value %d: %w", idx, err)
		}
	}

	return data, nil
}

func scanValue(data []byte, dest interface{}) ([]byte, error) {
	switch d := dest.(type) {
	case *int:
		v, remain, err := readUint64(data)
		*d = int(v)
		return remain, err
	case *int64:
		v, remain, err := readUint64(data)
		*d = int64(v)
		return remain, err
	case *uint64:
		v, remain, err := readUint64(data)
		*d = v
		return remain, err
	case *int8:
		b, remain, err := readFixed(data, 1)
		if err == nil {
			*d = int8(b[0])
		}
		return remain, err
	case *uint8:
		b, remain, err := readFixed(data, 1)
		if err == nil {
			*d = b[0]
		}
		return remain, err
	case *bool:
		b, remain, err := readFixed(data, 1)
		if err == nil {
			*d = b[0] != 0
		}
		return remain, err
	case *string:
		b, remain, err := readVariable(data)
		*d = string(b)
		return remain, err
	case *[]byte:
		b, remain, err := readVariable(data)
		*d = append([]byte(nil), b...)
		return remain, err
	case *RawMessage:
		b, remain, err := readVariable(data)
		*d = append(RawMessage(nil), b...)
		return remain, err
	case *uuid.UUID:
		b, remain, err := readFixed(data, uuid.Size)
		if err == nil {
			copy(d[:], b)
		}
		return remain, err
	case *common.Address:
		b, remain, err := readFixed(data, common.AddressLength)
		if err == nil {
			*d = common.BytesToAddress(b)
		}
		return remain, err
	case *common.Hash:
		b, remain, err := readFixed(data, common.HashLength)
		if err == nil {
			*d = common.BytesToHash(b)
		}
		return remain, err
	case **big.Int:
		b, remain, err := readVariable(data)
		if err == nil {
			*d = new(big.Int).SetBytes(b)
		}
		return remain, err
	case encoding.BinaryUnmarshaler:
		b, remain, err := readVariable(data)
		if err != nil {
			return nil, err
		}
		return remain, d.UnmarshalBinary(b)
	default:
		return nil, fmt.Errorf("unsupported type %T", dest)
	}
}

func uint64Bytes(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func withLength(b []byte) ([]byte, error) {
	if len(b) > math.MaxUint16 {
		return nil, ErrTooLarge
	}

	out := make([]byte, 2, 2+len(b))
	binary.BigEndian.PutUint16(out, uint16(len(b)))
	return append(out, b...), nil
}

func readFixed(data []byte, size int) ([]byte, []byte, error) {
	if len(data) < size {
		return nil, nil, ErrShortBuffer
	}

	return data[:size], data[size:], nil
}

func readUint64(data []byte) (uint64, []byte, error) {
	b, remain, err := readFixed(data, 8)
	if err != nil {
		return 0, nil, err
	}

	return binary.BigEndian.Uint64(b), remain, nil
}

func readVariable(data []byte) ([]byte, []byte, error) {
	l, remain, err := readFixed(data, 2)
	if err != nil {
		return nil, nil, err
	}

	return readFixed(remain, int(binary.BigEndian.Uint16(l)))
}
