package core

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jmoiron/sqlx/types"
)

type (
	// Sale append only sale record
	Sale struct {
		ID          int64          `json:"id"`
		TraceID     string         `json:"trace_id"`
		Ledger      common.Address `json:"ledger"`
		Kind        ProductKind    `json:"kind"`
		Buyer       common.Address `json:"buyer"`
		Asset       common.Address `json:"asset"`
		Amount      *big.Int       `json:"amount"`
		PriceUSD    *big.Int       `json:"price_usd"`
		ExtraFeeUSD *big.Int       `json:"extra_fee_usd"`
		PriceNative *big.Int       `json:"price_native,omitempty"`
		Digest      common.Hash    `json:"digest"`
		Product     types.JSONText `json:"product,omitempty"`
		CreatedAt   time.Time      `json:"created_at"`
	}

	// SaleEvent purchase event emitted by a ledger on each successful sale
	SaleEvent struct {
		SaleID      int64
		Buyer       common.Address
		AssetUsed   common.Address
		AmountPaid  *big.Int
		PriceUSD    *big.Int
		ExtraFeeUSD *big.Int
	}

	// SaleListener receives the purchase event of every sale
	SaleListener interface {
		OnSale(ctx context.Context, event SaleEvent)
	}

	// SaleStore durable sale log. Find reports true if the sale is not found
	SaleStore interface {
		Create(ctx context.Context, sale *Sale) error
		Find(ctx context.Context, ledger common.Address, id int64) (*Sale, bool, error)
		List(ctx context.Context, ledger common.Address, fromID int64, limit int) ([]*Sale, error)
	}

	// PurchaseService purchase flow controller of one product kind
	PurchaseService interface {
		CallTarget
		Kind() ProductKind
		BuyWithNative(ctx context.Context, buyer common.Address, value *big.Int, product Product, sig []byte) (*Sale, error)
		BuyWithToken(ctx context.Context, caller common.Address, product Product, asset, payer common.Address, sig []byte) (*Sale, error)
		ProductPrice(ctx context.Context, product Product, asset common.Address) (*big.Int, error)
		Sales(ctx context.Context, fromID int64, limit int) ([]*Sale, error)
		SaleCount() int64
	}
)

// Event the purchase event of the sale
func (s *Sale) Event() SaleEvent {
	return SaleEvent{
		SaleID:      s.ID,
		Buyer:       s.Buyer,
		AssetUsed:   s.Asset,
		AmountPaid:  s.Amount,
		PriceUSD:    s.PriceUSD,
		ExtraFeeUSD: s.ExtraFeeUSD,
	}
}
