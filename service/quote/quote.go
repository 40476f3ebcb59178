// Package quote cover quote service client
package quote

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"polka/core"
	"polka/pkg/resthttp"

	"github.com/fox-one/pkg/logger"
)

type quoteService struct {
	endpoint string
	origin   string
}

// New new cover quote client
func New(cfg core.QuoteConfig) core.QuoteService {
	return &quoteService{
		endpoint: strings.TrimSuffix(cfg.EndPoint, "/"),
		origin:   cfg.Origin,
	}
}

// FetchCoverQuote GET /v1/quote, the signature is checked by the ledger, not here
func (s *quoteService) FetchCoverQuote(ctx context.Context, req core.CoverQuoteRequest) (*core.CoverQuote, error) {
	url := fmt.Sprintf("%s/v1/quote", s.endpoint)
	logger.FromContext(ctx).Infoln("fetch cover quote:", url)

	r := resthttp.Request(ctx).SetQueryParams(map[string]string{
		"coverAmount":     req.CoverAmount.String(),
		"currency":        req.Currency,
		"period":          strconv.FormatInt(req.Period, 10),
		"contractAddress": req.ContractAddress,
	})

	if s.origin != "" {
		r = r.SetHeader("Origin", s.origin)
	}

	resp, err := r.Get(url)
	if err != nil {
		return nil, err
	}

	var quote core.CoverQuote
	if err := resthttp.ParseResponse(resp, &quote); err != nil {
		return nil, err
	}

	return &quote, nil
}
