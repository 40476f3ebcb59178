// Package bank in process asset book of balances and allowances
package bank

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"polka/core"

	"github.com/ethereum/go-ethereum/common"
)

type allowanceKey struct {
	asset   common.Address
	owner   common.Address
	spender common.Address
}

type balanceKey struct {
	asset common.Address
	owner common.Address
}

type bank struct {
	mu         sync.Mutex
	balances   map[balanceKey]*big.Int
	allowances map[allowanceKey]*big.Int
}

// New new empty bank
func New() core.Bank {
	return &bank{
		balances:   map[balanceKey]*big.Int{},
		allowances: map[allowanceKey]*big.Int{},
	}
}

func (b *bank) Balance(ctx context.Context, asset, owner common.Address) (*big.Int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.balanceOf(asset, owner), nil
}

func (b *bank) Allowance(ctx context.Context, asset, owner, spender common.Address) (*big.Int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.allowanceOf(asset, owner, spender), nil
}

func (b *bank) Approve(ctx context.Context, asset, owner, spender common.Address, amount *big.Int) error {
	if err := validAmount(amount); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.allowances[allowanceKey{asset, owner, spender}] = new(big.Int).Set(amount)
	return nil
}

func (b *bank) Deposit(ctx context.Context, asset, owner common.Address, amount *big.Int) error {
	if err := validAmount(amount); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	key := balanceKey{asset, owner}
	b.balances[key] = new(big.Int).Add(b.balanceOf(asset, owner), amount)
	return nil
}

func (b *bank) Transfer(ctx context.Context, asset, from, to common.Address, amount *big.Int) error {
	if err := validAmount(amount); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	return b.move(asset, from, to, amount)
}

func (b *bank) TransferFrom(ctx context.Context, asset, spender, owner, to common.Address, amount *big.Int) error {
	if err := validAmount(amount); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	allowance := b.allowanceOf(asset, owner, spender)
	if allowance.Cmp(amount) < 0 {
		return fmt.Errorf("%w: allowance %s, need %s", core.ErrInsufficientAllowance, allowance, amount)
	}

	if err := b.move(asset, owner, to, amount); err != nil {
		return err
	}

	b.allowances[allowanceKey{asset, owner, spender}] = allowance.Sub(allowance, amount)
	return nil
}

func (b *bank) move(asset, from, to common.Address, amount *big.Int) error {
	balance := b.balanceOf(asset, from)
	if balance.Cmp(amount) < 0 {
		return fmt.Errorf("%w: balance %s, need %s", core.ErrInsufficientBalance, balance, amount)
	}

	b.balances[balanceKey{asset, from}] = balance.Sub(balance, amount)
	b.balances[balanceKey{asset, to}] = new(big.Int).Add(b.balanceOf(asset, to), amount)
	return nil
}

func (b *bank) balanceOf(asset, owner common.Address) *big.Int {
	if v, ok := b.balances[balanceKey{asset, owner}]; ok {
		return new(big.Int).Set(v)
	}

	return new(big.Int)
}

func (b *bank) allowanceOf(asset, owner, spender common.Address) *big.Int {
	if v, ok := b.allowances[allowanceKey{asset, owner, spender}]; ok {
		return new(big.Int).Set(v)
	}

	return new(big.Int)
}

func validAmount(amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return fmt.Errorf("%w: negative amount", core.ErrInvalidPayload)
	}

	return nil
}
