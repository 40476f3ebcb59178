package core

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

type (
	// Transaction pending multisig transaction
	Transaction struct {
		ID            int64            `json:"id"`
		Submitter     common.Address   `json:"submitter"`
		Target        common.Address   `json:"target"`
		Value         *big.Int         `json:"value"`
		Payload       []byte           `json:"payload"`
		Executed      bool             `json:"executed"`
		Confirmations []common.Address `json:"confirmations"`
		LastError     string           `json:"last_error,omitempty"`
		CreatedAt     time.Time        `json:"created_at"`
		ExecutedAt    time.Time        `json:"executed_at,omitempty"`
	}

	// TransactionStore audit mirror of multisig transactions. Find reports
	// true if the transaction is not found, List returns ids >= fromID
	TransactionStore interface {
		Save(ctx context.Context, wallet common.Address, tx *Transaction) error
		Find(ctx context.Context, wallet common.Address, id int64) (*Transaction, bool, error)
		List(ctx context.Context, wallet common.Address, fromID int64, limit int) ([]*Transaction, error)
	}

	// MultiSigService quorum gated call executor
	MultiSigService interface {
		Address() common.Address
		Owners() []common.Address
		Threshold() int
		IsOwner(addr common.Address) bool
		Submit(ctx context.Context, caller, target common.Address, value *big.Int, payload []byte) (int64, error)
		Confirm(ctx context.Context, caller common.Address, id int64, revokeOthers bool) error
		Revoke(ctx context.Context, caller common.Address, id int64) error
		Execute(ctx context.Context, caller common.Address, id int64) error
		Transaction(ctx context.Context, id int64) (*Transaction, error)
		Transactions(ctx context.Context, fromID int64, limit int) ([]*Transaction, error)
	}
)

// IsConfirmedBy check if owner confirmed the transaction
func (t *Transaction) IsConfirmedBy(owner common.Address) bool {
	for _, c := range t.Confirmations {
		if c == owner {
			return true
		}
	}

	return false
}

// Clone deep copy, so callers never share state with the executor
func (t *Transaction) Clone() *Transaction {
	c := *t
	if t.Value != nil {
		c.Value = new(big.Int).Set(t.Value)
	}
	c.Payload = append([]byte(nil), t.Payload...)
	c.Confirmations = append([]common.Address(nil), t.Confirmations...)
	return &c
}
