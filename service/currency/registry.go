// Package currency registry of payment currencies and oracle consumers
package currency

import (
	"bytes"
	"context"
	"fmt"
	"math/big"
	"sort"
	"sync"

	"polka/core"
	"polka/core/proposal"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/logger"
)

type registry struct {
	address common.Address
	owner   common.Address

	mu         sync.RWMutex
	currencies map[common.Address]core.Currency
	consumers  map[common.Address]bool
}

// New new currency registry owned by owner, usually the multisig wallet
func New(address, owner common.Address) core.CurrencyService {
	return &registry{
		address:    address,
		owner:      owner,
		currencies: map[common.Address]core.Currency{},
		consumers:  map[common.Address]bool{},
	}
}

func (r *registry) Address() common.Address {
	return r.address
}

func (r *registry) Owner() common.Address {
	return r.owner
}

func (r *registry) requireOwner(caller common.Address) error {
	if caller != r.owner {
		return fmt.Errorf("%w: %s", core.ErrNotOwner, caller.Hex())
	}

	return nil
}

// Register add asset, or update its pinned pool
func (r *registry) Register(ctx context.Context, caller, asset, pool common.Address) error {
	if err := r.requireOwner(caller); err != nil {
		return err
	}

	if asset == (common.Address{}) {
		return fmt.Errorf("%w: empty asset", core.ErrInvalidPayload)
	}

	r.mu.Lock()
	r.currencies[asset] = core.Currency{Asset: asset, Pool: pool}
	r.mu.Unlock()

	logger.FromContext(ctx).WithField("registry", r.address.Hex()).
		Infof("currency %s registered, pool %s", asset.Hex(), pool.Hex())
	return nil
}

func (r *registry) Remove(ctx context.Context, caller, asset common.Address) error {
	if err := r.requireOwner(caller); err != nil {
		return err
	}

	r.mu.Lock()
	delete(r.currencies, asset)
	r.mu.Unlock()

	logger.FromContext(ctx).WithField("registry", r.address.Hex()).
		Infof("currency %s removed", asset.Hex())
	return nil
}

func (r *registry) WhitelistConsumer(ctx context.Context, caller, consumer common.Address) error {
	if err := r.requireOwner(caller); err != nil {
		return err
	}

	r.mu.Lock()
	r.consumers[consumer] = true
	r.mu.Unlock()

	logger.FromContext(ctx).WithField("registry", r.address.Hex()).
		Infof("consumer %s whitelisted", consumer.Hex())
	return nil
}

func (r *registry) RemoveConsumer(ctx context.Context, caller, consumer common.Address) error {
	if err := r.requireOwner(caller); err != nil {
		return err
	}

	r.mu.Lock()
	delete(r.consumers, consumer)
	r.mu.Unlock()

	logger.FromContext(ctx).WithField("registry", r.address.Hex()).
		Infof("consumer %s removed", consumer.Hex())
	return nil
}

func (r *registry) Currency(asset common.Address) (*core.Currency, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.currencies[asset]
	if !ok {
		return nil, false
	}

	return &c, true
}

func (r *registry) Currencies() []*core.Currency {
	r.mu.RLock()
	defer r.mu.RUnlock()

	currencies := make([]*core.Currency, 0, len(r.currencies))
	for _, c := range r.currencies {
		c := c
		currencies = append(currencies, &c)
	}

	sort.Slice(currencies, func(i, j int) bool {
		return bytes.Compare(currencies[i].Asset.Bytes(), currencies[j].Asset.Bytes()) < 0
	})

	return currencies
}

func (r *registry) IsWhitelisted(consumer common.Address) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.consumers[consumer]
}

// Invoke handle admin calls queued by the owner
func (r *registry) Invoke(ctx context.Context, from common.Address, value *big.Int, payload []byte) error {
	if value != nil && value.Sign() > 0 {
		return core.ErrNotPayable
	}

	action, body, err := proposal.DecodeCall(payload)
	if err != nil {
		return err
	}

	switch action {
	case core.ActionTypeAddCurrency:
		var req proposal.AddCurrencyReq
		if err := req.UnmarshalBinary(body); err != nil {
			return fmt.Errorf("%w: %v", core.ErrInvalidPayload, err)
		}
		return r.Register(ctx, from, req.Asset, req.Pool)
	case core.ActionTypeRemoveCurrency:
		var req proposal.RemoveCurrencyReq
		if err := req.UnmarshalBinary(body); err != nil {
			return fmt.Errorf("%w: %v", core.ErrInvalidPayload, err)
		}
		return r.Remove(ctx, from, req.Asset)
	case core.ActionTypeAddWhiteList, core.ActionTypeRemoveWhiteList:
		var req proposal.WhiteListReq
		if err := req.UnmarshalBinary(body); err != nil {
			return fmt.Errorf("%w: %v", core.ErrInvalidPayload, err)
		}
		if action == core.ActionTypeAddWhiteList {
			return r.WhitelistConsumer(ctx, from, req.Consumer)
		}
		return r.RemoveConsumer(ctx, from, req.Consumer)
	default:
		return fmt.Errorf("%w: %s", core.ErrUnknownAction, action)
	}
}
