// Package reserve pool reserve feed client
package reserve

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"polka/core"
	"polka/pkg/id"
	"polka/pkg/resthttp"

	"github.com/avast/retry-go"
	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/logger"
)

type (
	// Pool pool reserves as served by the feed
	Pool struct {
		Address   string `json:"address"`
		Token0    string `json:"token0"`
		Token1    string `json:"token1"`
		Reserve0  string `json:"reserve0"`
		Reserve1  string `json:"reserve1"`
		UpdatedAt int64  `json:"updated_at"`
	}

	feed struct {
		endpoint string
		attempts uint
	}
)

// New new reserve feed client
func New(endpoint string) core.ReserveFeed {
	return &feed{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		attempts: 3,
	}
}

// PullReserves GET /api/pools, malformed entries are skipped
func (f *feed) PullReserves(ctx context.Context) ([]*core.Pool, error) {
	log := logger.FromContext(ctx)
	url := fmt.Sprintf("%s/api/pools", f.endpoint)

	var views []*Pool
	err := retry.Do(func() error {
		resp, err := resthttp.WithRequestID(ctx, id.GenTraceID()).Get(url)
		if err != nil {
			return err
		}

		return resthttp.ParseResponse(resp, &views)
	},
		retry.Context(ctx),
		retry.Attempts(f.attempts),
		retry.Delay(100*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		log.WithError(err).Errorln("pull reserves")
		return nil, err
	}

	pools := make([]*core.Pool, 0, len(views))
	for _, v := range views {
		p, err := v.toCore()
		if err != nil {
			log.WithError(err).Infoln("skip pool", v.Address)
			continue
		}

		pools = append(pools, p)
	}

	return pools, nil
}

func (v *Pool) toCore() (*core.Pool, error) {
	for _, addr := range []string{v.Address, v.Token0, v.Token1} {
		if !common.IsHexAddress(addr) {
			return nil, fmt.Errorf("invalid address %q", addr)
		}
	}

	reserve0, ok := new(big.Int).SetString(v.Reserve0, 10)
	if !ok || reserve0.Sign() < 0 {
		return nil, fmt.Errorf("invalid reserve0 %q", v.Reserve0)
	}

	reserve1, ok := new(big.Int).SetString(v.Reserve1, 10)
	if !ok || reserve1.Sign() < 0 {
		return nil, fmt.Errorf("invalid reserve1 %q", v.Reserve1)
	}

	return &core.Pool{
		Address:   common.HexToAddress(v.Address),
		Token0:    common.HexToAddress(v.Token0),
		Token1:    common.HexToAddress(v.Token1),
		Reserve0:  reserve0,
		Reserve1:  reserve1,
		UpdatedAt: time.Unix(v.UpdatedAt, 0),
	}, nil
}
