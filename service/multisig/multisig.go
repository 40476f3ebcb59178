// Package multisig quorum gated executor of queued calls
package multisig

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"polka/core"

	"github.com/asaskevich/govalidator"
	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/logger"
)

// Config wallet config
type Config struct {
	Address   common.Address
	Owners    []common.Address
	Threshold int
}

// Validate owner set and threshold, |owners| >= threshold >= 1
func (c Config) Validate() error {
	if c.Threshold < 1 {
		return fmt.Errorf("threshold %d must be at least 1", c.Threshold)
	}

	if len(c.Owners) < c.Threshold {
		return fmt.Errorf("threshold %d exceeds %d owners", c.Threshold, len(c.Owners))
	}

	seen := make(map[common.Address]bool, len(c.Owners))
	for _, o := range c.Owners {
		if o == (common.Address{}) {
			return errors.New("empty owner address")
		}

		if seen[o] {
			return fmt.Errorf("duplicated owner %s", o.Hex())
		}
		seen[o] = true
	}

	return nil
}

type wallet struct {
	address    common.Address
	owners     []common.Address
	ownerHexes []string
	threshold  int
	dispatcher core.Dispatcher
	store      core.TransactionStore
	now        func() time.Time

	// mu serializes every state change, including target execution
	mu  sync.Mutex
	txs []*core.Transaction
}

// New new multisig wallet. store is an optional audit mirror
func New(cfg Config, dispatcher core.Dispatcher, store core.TransactionStore) (core.MultiSigService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	w := &wallet{
		address:    cfg.Address,
		owners:     append([]common.Address(nil), cfg.Owners...),
		threshold:  cfg.Threshold,
		dispatcher: dispatcher,
		store:      store,
		now:        time.Now,
	}

	for _, o := range w.owners {
		w.ownerHexes = append(w.ownerHexes, o.Hex())
	}

	return w, nil
}

func (w *wallet) Address() common.Address {
	return w.address
}

func (w *wallet) Owners() []common.Address {
	return append([]common.Address(nil), w.owners...)
}

func (w *wallet) Threshold() int {
	return w.threshold
}

func (w *wallet) IsOwner(addr common.Address) bool {
	return govalidator.IsIn(addr.Hex(), w.ownerHexes...)
}

func (w *wallet) Submit(ctx context.Context, caller, target common.Address, value *big.Int, payload []byte) (int64, error) {
	if !w.IsOwner(caller) {
		return 0, fmt.Errorf("%w: %s", core.ErrNotOwner, caller.Hex())
	}

	if value == nil {
		value = new(big.Int)
	}

	if value.Sign() < 0 {
		return 0, fmt.Errorf("%w: negative value", core.ErrInvalidPayload)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	tx := &core.Transaction{
		ID:        int64(len(w.txs)),
		Submitter: caller,
		Target:    target,
		Value:     new(big.Int).Set(value),
		Payload:   append([]byte(nil), payload...),
		CreatedAt: w.now(),
	}
	w.txs = append(w.txs, tx)
	w.mirror(ctx, tx)

	logger.FromContext(ctx).WithField("tx", tx.ID).
		Infof("transaction submitted by %s to %s", caller.Hex(), target.Hex())
	return tx.ID, nil
}

// Confirm add the caller's confirmation and execute once quorum is reached.
// With revokeOthers the caller's confirmations on every other pending
// transaction are withdrawn first. Confirming twice adds nothing but retries a
// quorum-reached transaction whose execution failed before
func (w *wallet) Confirm(ctx context.Context, caller common.Address, id int64, revokeOthers bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	tx, err := w.pending(caller, id)
	if err != nil {
		return err
	}

	if revokeOthers {
		for _, other := range w.txs {
			if other.ID != id && !other.Executed && removeConfirmation(other, caller) {
				w.mirror(ctx, other)
			}
		}
	}

	if !tx.IsConfirmedBy(caller) {
		tx.Confirmations = append(tx.Confirmations, caller)
	}

	logger.FromContext(ctx).WithField("tx", id).
		Infof("confirmed by %s, %d/%d", caller.Hex(), len(tx.Confirmations), w.threshold)

	if len(tx.Confirmations) < w.threshold {
		w.mirror(ctx, tx)
		return nil
	}

	return w.execute(ctx, tx)
}

func (w *wallet) Revoke(ctx context.Context, caller common.Address, id int64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	tx, err := w.pending(caller, id)
	if err != nil {
		return err
	}

	if removeConfirmation(tx, caller) {
		w.mirror(ctx, tx)
		logger.FromContext(ctx).WithField("tx", id).Infof("revoked by %s", caller.Hex())
	}

	return nil
}

// Execute retry a quorum-reached transaction
func (w *wallet) Execute(ctx context.Context, caller common.Address, id int64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	tx, err := w.pending(caller, id)
	if err != nil {
		return err
	}

	if len(tx.Confirmations) < w.threshold {
		return fmt.Errorf("%w: %d/%d", core.ErrQuorumNotReached, len(tx.Confirmations), w.threshold)
	}

	return w.execute(ctx, tx)
}

func (w *wallet) Transaction(ctx context.Context, id int64) (*core.Transaction, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	tx, ok := w.find(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", core.ErrUnknownTransaction, id)
	}

	return tx.Clone(), nil
}

// Transactions list transactions with id >= fromID
func (w *wallet) Transactions(ctx context.Context, fromID int64, limit int) ([]*core.Transaction, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if fromID < 0 {
		fromID = 0
	}

	var txs []*core.Transaction
	for i := fromID; i < int64(len(w.txs)) && (limit <= 0 || len(txs) < limit); i++ {
		txs = append(txs, w.txs[i].Clone())
	}

	return txs, nil
}

// execute mark executed and invoke the target. A failed invocation reverts
// the executed flag and keeps the confirmations
func (w *wallet) execute(ctx context.Context, tx *core.Transaction) error {
	log := logger.FromContext(ctx).WithField("tx", tx.ID)

	tx.Executed = true
	tx.ExecutedAt = w.now()

	if err := w.dispatcher.Call(ctx, w.address, tx.Target, tx.Value, tx.Payload); err != nil {
		tx.Executed = false
		tx.ExecutedAt = time.Time{}
		tx.LastError = err.Error()
		w.mirror(ctx, tx)
		executionCounter.WithLabelValues("failed").Inc()

		log.WithError(err).Infoln("execution failed")
		return fmt.Errorf("%w: %w", core.ErrExecutionFailed, err)
	}

	tx.LastError = ""
	w.mirror(ctx, tx)
	executionCounter.WithLabelValues("executed").Inc()

	log.Infof("executed on %s", tx.Target.Hex())
	return nil
}

func (w *wallet) pending(caller common.Address, id int64) (*core.Transaction, error) {
	if !w.IsOwner(caller) {
		return nil, fmt.Errorf("%w: %s", core.ErrNotOwner, caller.Hex())
	}

	tx, ok := w.find(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", core.ErrUnknownTransaction, id)
	}

	if tx.Executed {
		return nil, fmt.Errorf("%w: %d", core.ErrAlreadyExecuted, id)
	}

	return tx, nil
}

func (w *wallet) find(id int64) (*core.Transaction, bool) {
	if id < 0 || id >= int64(len(w.txs)) {
		return nil, false
	}

	return w.txs[id], true
}

// mirror copy tx to the audit store, failures are logged only
func (w *wallet) mirror(ctx context.Context, tx *core.Transaction) {
	if w.store == nil {
		return
	}

	if err := w.store.Save(ctx, w.address, tx.Clone()); err != nil {
		logger.FromContext(ctx).WithError(err).WithField("tx", tx.ID).Errorln("transactions.Save")
	}
}

func removeConfirmation(tx *core.Transaction, owner common.Address) bool {
	for idx, c := range tx.Confirmations {
		if c == owner {
			tx.Confirmations = append(tx.Confirmations[:idx:idx], tx.Confirmations[idx+1:]...)
			return true
		}
	}

	return false
}
