package pool

import (
	"context"
	"fmt"
	"time"

	"polka/core"

	"github.com/bluele/gcache"
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/singleflight"
)

// Cache read through cache of pool reserves
func Cache(store core.PoolStore, exp time.Duration) core.PoolStore {
	return &cachePoolStore{
		PoolStore: store,
		exp:       exp,
		cache:     gcache.New(512).LRU().Build(),
		sf:        &singleflight.Group{},
	}
}

type cachePoolStore struct {
	core.PoolStore
	exp   time.Duration
	cache gcache.Cache
	sf    *singleflight.Group
}

func (s *cachePoolStore) Save(ctx context.Context, p *core.Pool) error {
	if err := s.PoolStore.Save(ctx, p); err != nil {
		return err
	}

	// the stored row may be newer than p, drop instead of overwrite
	s.cache.Remove(s.addressKey(p.Address))
	s.cache.Remove(s.pairKey(p.Token0, p.Token1))
	return nil
}

func (s *cachePoolStore) Find(ctx context.Context, address common.Address) (*core.Pool, error) {
	return s.load(s.addressKey(address), func() (*core.Pool, error) {
		return s.PoolStore.Find(ctx, address)
	})
}

func (s *cachePoolStore) FindPair(ctx context.Context, tokenA, tokenB common.Address) (*core.Pool, error) {
	return s.load(s.pairKey(tokenA, tokenB), func() (*core.Pool, error) {
		return s.PoolStore.FindPair(ctx, tokenA, tokenB)
	})
}

func (s *cachePoolStore) load(key string, fn func() (*core.Pool, error)) (*core.Pool, error) {
	if v, err := s.cache.Get(key); err == nil {
		if p, ok := v.(*core.Pool); ok {
			return clone(p), nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		p, err := fn()
		if err != nil {
			return nil, err
		}

		if s.exp > 0 {
			_ = s.cache.SetWithExpire(key, p, s.exp)
		} else {
			_ = s.cache.Set(key, p)
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}

	return clone(v.(*core.Pool)), nil
}

func (s *cachePoolStore) addressKey(address common.Address) string {
	return fmt.Sprintf("pool:address:%s", address.Hex())
}

func (s *cachePoolStore) pairKey(tokenA, tokenB common.Address) string {
	token0, token1 := core.SortTokens(tokenA, tokenB)
	return fmt.Sprintf("pool:pair:%s:%s", token0.Hex(), token1.Hex())
}
