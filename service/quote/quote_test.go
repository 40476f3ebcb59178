package quote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"polka/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchCoverQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/quote", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("coverAmount"))
		assert.Equal(t, "ETH", r.URL.Query().Get("currency"))
		assert.Equal(t, "111", r.URL.Query().Get("period"))
		assert.Equal(t, "http://localhost:3000", r.Header.Get("Origin"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"currency": "ETH",
			"period": "111",
			"amount": "1",
			"price": "66026290216319654",
			"priceInNXM": "1726147109619947834",
			"expiresAt": 1641910780,
			"generatedAt": 1636726779229,
			"contract": "0x0000000000000000000000000000000000000005",
			"v": 27,
			"r": "0xd8876b4e4edcf6a8504f94d4ddd373343954a3727713ee09d04e7fea3ffad1b2",
			"s": "0x4048ec8fde7226cdd60c1911c0e1bd0eb8013a50f67b517201c29e2150aa4c7b"
		}`))
	}))
	defer srv.Close()

	s := New(core.QuoteConfig{EndPoint: srv.URL + "/", Origin: "http://localhost:3000"})
	q, err := s.FetchCoverQuote(context.Background(), core.CoverQuoteRequest{
		CoverAmount:     decimal.NewFromInt(1),
		Currency:        "ETH",
		Period:          111,
		ContractAddress: "0x0000000000000000000000000000000000000005",
	})
	require.Nil(t, err)
	assert.Equal(t, "66026290216319654", q.Price)
	assert.Equal(t, int64(1641910780), q.ExpiresAt)
	assert.Equal(t, uint8(27), q.V)
}

func TestFetchCoverQuoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"unsupported currency"}`))
	}))
	defer srv.Close()

	s := New(core.QuoteConfig{EndPoint: srv.URL})
	_, err := s.FetchCoverQuote(context.Background(), core.CoverQuoteRequest{Currency: "XYZ"})
	assert.NotNil(t, err)
}
