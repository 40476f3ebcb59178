package product

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"polka/core"
	"polka/pkg/mtg"
	"polka/pkg/quote"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Cover smart contract cover, priced in native units by the cover quote service
type Cover struct {
	ContractAddress common.Address `json:"contract_address"`
	CoverAsset      common.Address `json:"cover_asset"`
	SumAssured      *big.Int       `json:"sum_assured"`
	CoverPeriod     *big.Int       `json:"cover_period"`
	CoverType       uint8          `json:"cover_type"`
	Price           *big.Int       `json:"price"`
	PriceInNXM      *big.Int       `json:"price_in_nxm"`
	// ExpiresAt unix seconds
	ExpiresAt int64 `json:"expires_at"`
	// GeneratedAt unix milliseconds
	GeneratedAt int64 `json:"generated_at"`
}

// Kind product kind
func (p *Cover) Kind() core.ProductKind {
	return core.ProductKindCover
}

// Digest contract || asset || sum assured || period || type || price ||
// price in nxm || expires at || generated at
func (p *Cover) Digest() common.Hash {
	return quote.NewPacker().
		Address(p.ContractAddress).
		Address(p.CoverAsset).
		Uint(p.SumAssured).
		Uint(p.CoverPeriod).
		Uint64(uint64(p.CoverType)).
		Uint(p.Price).
		Uint(p.PriceInNXM).
		Uint64(uint64(p.ExpiresAt)).
		Uint64(uint64(p.GeneratedAt)).
		Digest()
}

// Charge cover price is already in native units
func (p *Cover) Charge() core.Charge {
	return core.Charge{
		PriceUSD:    new(big.Int),
		ExtraFeeUSD: new(big.Int),
		Native:      p.Price,
	}
}

// Validate reject expired quotes
func (p *Cover) Validate(now time.Time) error {
	for name, v := range map[string]*big.Int{
		"sum_assured":  p.SumAssured,
		"cover_period": p.CoverPeriod,
		"price":        p.Price,
		"price_in_nxm": p.PriceInNXM,
	} {
		if err := validUint(name, v); err != nil {
			return err
		}
	}

	if p.ExpiresAt <= 0 {
		return errors.New("missing quote expiry")
	}

	if now.Unix() > p.ExpiresAt {
		return core.ErrQuoteExpired
	}

	return nil
}

// MarshalBinary marshal product to binary
func (p *Cover) MarshalBinary() ([]byte, error) {
	return mtg.Encode(
		p.ContractAddress,
		p.CoverAsset,
		p.SumAssured,
		p.CoverPeriod,
		p.CoverType,
		p.Price,
		p.PriceInNXM,
		p.ExpiresAt,
		p.GeneratedAt,
	)
}

// UnmarshalBinary unmarshal bytes
func (p *Cover) UnmarshalBinary(data []byte) error {
	_, err := mtg.Scan(data,
		&p.ContractAddress,
		&p.CoverAsset,
		&p.SumAssured,
		&p.CoverPeriod,
		&p.CoverType,
		&p.Price,
		&p.PriceInNXM,
		&p.ExpiresAt,
		&p.GeneratedAt,
	)
	return err
}

// CoverFromQuote build the cover product and its flat signature from a quote
// service response
func CoverFromQuote(q *core.CoverQuote, asset common.Address, sumAssured *big.Int, coverType uint8) (*Cover, []byte, error) {
	price, ok := new(big.Int).SetString(q.Price, 10)
	if !ok {
		return nil, nil, fmt.Errorf("invalid quote price %q", q.Price)
	}

	priceInNXM, ok := new(big.Int).SetString(q.PriceInNXM, 10)
	if !ok {
		return nil, nil, fmt.Errorf("invalid quote price in nxm %q", q.PriceInNXM)
	}

	period, ok := new(big.Int).SetString(q.Period, 10)
	if !ok {
		return nil, nil, fmt.Errorf("invalid quote period %q", q.Period)
	}

	if !common.IsHexAddress(q.Contract) {
		return nil, nil, fmt.Errorf("invalid quote contract %q", q.Contract)
	}

	r, err := hexutil.Decode(q.R)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid quote r: %w", err)
	}

	s, err := hexutil.Decode(q.S)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid quote s: %w", err)
	}

	cover := &Cover{
		ContractAddress: common.HexToAddress(q.Contract),
		CoverAsset:      asset,
		SumAssured:      sumAssured,
		CoverPeriod:     period,
		CoverType:       coverType,
		Price:           price,
		PriceInNXM:      priceInNXM,
		ExpiresAt:       q.ExpiresAt,
		GeneratedAt:     q.GeneratedAt,
	}

	sig := quote.JoinSignature(q.V, common.BytesToHash(r), common.BytesToHash(s))
	return cover, sig, nil
}
