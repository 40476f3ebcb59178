package core

import (
	"encoding"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// ProductKind product type sold by a purchase ledger
type ProductKind string

const (
	// ProductKindMSO medical second opinion plan
	ProductKindMSO ProductKind = "mso"
	// ProductKindP4L device protection plan
	ProductKindP4L ProductKind = "p4l"
	// ProductKindCover smart contract cover priced by the cover quote service
	ProductKindCover ProductKind = "cover"
)

func (k ProductKind) String() string {
	return string(k)
}

// Charge what a product costs. Usd priced products leave Native nil,
// cover products are priced in native units directly
type Charge struct {
	PriceUSD    *big.Int
	ExtraFeeUSD *big.Int
	Native      *big.Int
}

// TotalUSD price plus extra fee
func (c Charge) TotalUSD() *big.Int {
	total := new(big.Int)
	if c.PriceUSD != nil {
		total.Add(total, c.PriceUSD)
	}
	if c.ExtraFeeUSD != nil {
		total.Add(total, c.ExtraFeeUSD)
	}
	return total
}

// IsNative check if the charge is denominated in native units
func (c Charge) IsNative() bool {
	return c.Native != nil
}

// Product signed product quote
type Product interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler

	Kind() ProductKind
	// Digest keccak256 of the canonical field layout the quote signer signs
	Digest() common.Hash
	Charge() Charge
	// Validate reject quotes that can not be bought at now
	Validate(now time.Time) error
}
