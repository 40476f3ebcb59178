package core

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Bank asset balances and allowances. The native asset is addressed by the
// configured native asset address
type Bank interface {
	Balance(ctx context.Context, asset, owner common.Address) (*big.Int, error)
	Allowance(ctx context.Context, asset, owner, spender common.Address) (*big.Int, error)
	Approve(ctx context.Context, asset, owner, spender common.Address, amount *big.Int) error
	Deposit(ctx context.Context, asset, owner common.Address, amount *big.Int) error
	Transfer(ctx context.Context, asset, from, to common.Address, amount *big.Int) error
	// TransferFrom move amount from owner to to, spending the allowance of spender
	TransferFrom(ctx context.Context, asset, spender, owner, to common.Address, amount *big.Int) error
}
