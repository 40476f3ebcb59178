package core

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

type (
	// Pool two asset liquidity pool reserves
	Pool struct {
		Address   common.Address `json:"address"`
		Token0    common.Address `json:"token0"`
		Token1    common.Address `json:"token1"`
		Reserve0  *big.Int       `json:"reserve0"`
		Reserve1  *big.Int       `json:"reserve1"`
		UpdatedAt time.Time      `json:"updated_at"`
	}

	// PoolStore pool reserves store
	PoolStore interface {
		Save(ctx context.Context, pool *Pool) error
		// Find returns ErrPoolNotFound if the pool is unknown
		Find(ctx context.Context, address common.Address) (*Pool, error)
		// FindPair returns ErrPoolNotFound if no pool holds both tokens
		FindPair(ctx context.Context, tokenA, tokenB common.Address) (*Pool, error)
		All(ctx context.Context) ([]*Pool, error)
	}

	// ReserveFeed source of fresh pool reserves
	ReserveFeed interface {
		PullReserves(ctx context.Context) ([]*Pool, error)
	}
)

// Has check if the pool holds token
func (p *Pool) Has(token common.Address) bool {
	return p.Token0 == token || p.Token1 == token
}

// Other the token paired with token
func (p *Pool) Other(token common.Address) common.Address {
	if p.Token0 == token {
		return p.Token1
	}

	return p.Token0
}

// ReservesOf reserve of token and reserve of the paired token
func (p *Pool) ReservesOf(token common.Address) (*big.Int, *big.Int, bool) {
	switch token {
	case p.Token0:
		return p.Reserve0, p.Reserve1, true
	case p.Token1:
		return p.Reserve1, p.Reserve0, true
	default:
		return nil, nil, false
	}
}

// SortTokens order a pair the way pools identify it
func SortTokens(a, b common.Address) (common.Address, common.Address) {
	if a.Cmp(b) < 0 {
		return a, b
	}

	return b, a
}
