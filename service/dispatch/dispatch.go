// Package dispatch routes calls to targets by address
package dispatch

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"polka/core"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/logger"
)

// Router address book of call targets
type Router struct {
	mu      sync.RWMutex
	targets map[common.Address]core.CallTarget
}

// New new router
func New(targets ...core.CallTarget) (*Router, error) {
	r := &Router{targets: map[common.Address]core.CallTarget{}}
	for _, t := range targets {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Register add target, addresses are unique
func (r *Router) Register(target core.CallTarget) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	addr := target.Address()
	if addr == (common.Address{}) {
		return fmt.Errorf("call target %T without address", target)
	}

	if _, ok := r.targets[addr]; ok {
		return fmt.Errorf("call target %s registered already", addr.Hex())
	}

	r.targets[addr] = target
	return nil
}

// Target find target by address
func (r *Router) Target(addr common.Address) (core.CallTarget, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.targets[addr]
	return t, ok
}

// Call invoke the target at to
func (r *Router) Call(ctx context.Context, from, to common.Address, value *big.Int, payload []byte) error {
	target, ok := r.Target(to)
	if !ok {
		return fmt.Errorf("%w: %s", core.ErrUnknownTarget, to.Hex())
	}

	if value == nil {
		value = new(big.Int)
	}

	logger.FromContext(ctx).WithField("target", to.Hex()).
		Debugf("call from %s, value %s, %d bytes", from.Hex(), value, len(payload))
	return target.Invoke(ctx, from, value, payload)
}
