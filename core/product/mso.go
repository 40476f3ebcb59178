package product

import (
	"math/big"
	"time"

	"polka/core"
	"polka/pkg/mtg"
	"polka/pkg/quote"

	"github.com/ethereum/go-ethereum/common"
)

// MSO medical second opinion plan
type MSO struct {
	Name           string   `json:"name"`
	PriceUSD       *big.Int `json:"price_usd"`
	Period         *big.Int `json:"period"`
	ConciergePrice *big.Int `json:"concierge_price"`
}

// Kind product kind
func (p *MSO) Kind() core.ProductKind {
	return core.ProductKindMSO
}

// Digest name || price || period || concierge price
func (p *MSO) Digest() common.Hash {
	return quote.NewPacker().
		String(p.Name).
		Uint(p.PriceUSD).
		Uint(p.Period).
		Uint(p.ConciergePrice).
		Digest()
}

// Charge the concierge price is charged as extra fee
func (p *MSO) Charge() core.Charge {
	return core.Charge{
		PriceUSD:    p.PriceUSD,
		ExtraFeeUSD: p.ConciergePrice,
	}
}

// Validate validate fields
func (p *MSO) Validate(time.Time) error {
	for name, v := range map[string]*big.Int{
		"price_usd":       p.PriceUSD,
		"period":          p.Period,
		"concierge_price": p.ConciergePrice,
	} {
		if err := validUint(name, v); err != nil {
			return err
		}
	}

	return nil
}

// MarshalBinary marshal product to binary
func (p *MSO) MarshalBinary() ([]byte, error) {
	return mtg.Encode(p.Name, p.PriceUSD, p.Period, p.ConciergePrice)
}

// UnmarshalBinary unmarshal bytes
func (p *MSO) UnmarshalBinary(data []byte) error {
	_, err := mtg.Scan(data, &p.Name, &p.PriceUSD, &p.Period, &p.ConciergePrice)
	return err
}
