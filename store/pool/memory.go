package pool

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"polka/core"

	"github.com/ethereum/go-ethereum/common"
)

// Memory in process pool store
func Memory() core.PoolStore {
	return &memoryPoolStore{
		pools: map[common.Address]*core.Pool{},
	}
}

type memoryPoolStore struct {
	mu    sync.RWMutex
	order []common.Address
	pools map[common.Address]*core.Pool
}

func (s *memoryPoolStore) Save(ctx context.Context, p *core.Pool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.pools[p.Address]
	if !ok {
		s.order = append(s.order, p.Address)
	} else if !p.UpdatedAt.After(existing.UpdatedAt) {
		return nil
	}

	s.pools[p.Address] = clone(p)
	return nil
}

func (s *memoryPoolStore) Find(ctx context.Context, address common.Address) (*core.Pool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.pools[address]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrPoolNotFound, address.Hex())
	}

	return clone(p), nil
}

func (s *memoryPoolStore) FindPair(ctx context.Context, tokenA, tokenB common.Address) (*core.Pool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *core.Pool
	for _, addr := range s.order {
		p := s.pools[addr]
		if p.Has(tokenA) && p.Has(tokenB) && p.Token0 != p.Token1 {
			if found == nil || p.UpdatedAt.After(found.UpdatedAt) {
				found = p
			}
		}
	}

	if found == nil {
		return nil, fmt.Errorf("%w: %s/%s", core.ErrPoolNotFound, tokenA.Hex(), tokenB.Hex())
	}

	return clone(found), nil
}

func (s *memoryPoolStore) All(ctx context.Context) ([]*core.Pool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pools := make([]*core.Pool, 0, len(s.order))
	for _, addr := range s.order {
		pools = append(pools, clone(s.pools[addr]))
	}

	return pools, nil
}

func clone(p *core.Pool) *core.Pool {
	c := *p
	if p.Reserve0 != nil {
		c.Reserve0 = new(big.Int).Set(p.Reserve0)
	}
	if p.Reserve1 != nil {
		c.Reserve1 = new(big.Int).Set(p.Reserve1)
	}
	return &c
}
