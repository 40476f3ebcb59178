package product

import (
	"math/big"
	"time"

	"polka/core"
	"polka/pkg/mtg"
	"polka/pkg/quote"

	"github.com/ethereum/go-ethereum/common"
)

// P4L device protection plan
type P4L struct {
	Device     string   `json:"device"`
	Brand      string   `json:"brand"`
	Value      *big.Int `json:"value"`
	PurchMonth *big.Int `json:"purch_month"`
	DurPlan    *big.Int `json:"dur_plan"`
}

// Kind product kind
func (p *P4L) Kind() core.ProductKind {
	return core.ProductKindP4L
}

// Digest device || brand || value || purchase month || plan duration
func (p *P4L) Digest() common.Hash {
	return quote.NewPacker().
		String(p.Device).
		String(p.Brand).
		Uint(p.Value).
		Uint(p.PurchMonth).
		Uint(p.DurPlan).
		Digest()
}

// Charge the plan value, no extra fee
func (p *P4L) Charge() core.Charge {
	return core.Charge{
		PriceUSD:    p.Value,
		ExtraFeeUSD: new(big.Int),
	}
}

// Validate validate fields
func (p *P4L) Validate(time.Time) error {
	for name, v := range map[string]*big.Int{
		"value":       p.Value,
		"purch_month": p.PurchMonth,
		"dur_plan":    p.DurPlan,
	} {
		if err := validUint(name, v); err != nil {
			return err
		}
	}

	return nil
}

// MarshalBinary marshal product to binary
func (p *P4L) MarshalBinary() ([]byte, error) {
	return mtg.Encode(p.Device, p.Brand, p.Value, p.PurchMonth, p.DurPlan)
}

// UnmarshalBinary unmarshal bytes
func (p *P4L) UnmarshalBinary(data []byte) error {
	_, err := mtg.Scan(data, &p.Device, &p.Brand, &p.Value, &p.PurchMonth, &p.DurPlan)
	return err
}
