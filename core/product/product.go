// Package product signed product quotes sold by purchase ledgers
package product

import (
	"fmt"
	"math/big"

	"polka/core"
)

// New empty product of kind
func New(kind core.ProductKind) (core.Product, error) {
	switch kind {
	case core.ProductKindMSO:
		return &MSO{}, nil
	case core.ProductKindP4L:
		return &P4L{}, nil
	case core.ProductKindCover:
		return &Cover{}, nil
	default:
		return nil, fmt.Errorf("unknown product kind %q", kind)
	}
}

// Decode decode the binary encoding of a product of kind
func Decode(kind core.ProductKind, data []byte) (core.Product, error) {
	p, err := New(kind)
	if err != nil {
		return nil, err
	}

	if err := p.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidPayload, err)
	}

	return p, nil
}

func validUint(name string, v *big.Int) error {
	if v == nil || v.Sign() < 0 || v.BitLen() > 256 {
		return fmt.Errorf("%w: %s out of range", core.ErrInvalidPayload, name)
	}

	return nil
}
