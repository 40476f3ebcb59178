package core

import (
	"context"

	"github.com/shopspring/decimal"
)

type (
	// CoverQuoteRequest cover quote query
	CoverQuoteRequest struct {
		CoverAmount     decimal.Decimal
		Currency        string
		Period          int64
		ContractAddress string
	}

	// CoverQuote signed quote returned by the cover quote service
	CoverQuote struct {
		Currency    string `json:"currency"`
		Period      string `json:"period"`
		Amount      string `json:"amount"`
		Price       string `json:"price"`
		PriceInNXM  string `json:"priceInNXM"`
		ExpiresAt   int64  `json:"expiresAt"`
		GeneratedAt int64  `json:"generatedAt"`
		Contract    string `json:"contract"`
		V           uint8  `json:"v"`
		R           string `json:"r"`
		S           string `json:"s"`
	}

	// QuoteService cover quote service client
	QuoteService interface {
		FetchCoverQuote(ctx context.Context, req CoverQuoteRequest) (*CoverQuote, error)
	}
)
