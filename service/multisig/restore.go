package multisig

import (
	"context"
	"fmt"

	"polka/core"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/logger"
)

// Restore reload transactions from the audit store into a fresh wallet.
// Executed transactions on the replay targets are dispatched again in id
// order, rebuilding targets that keep no durable state of their own
func Restore(ctx context.Context, service core.MultiSigService, replay ...common.Address) error {
	w, ok := service.(*wallet)
	if !ok || w.store == nil {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.txs) > 0 {
		return fmt.Errorf("wallet %s has %d transactions already", w.address.Hex(), len(w.txs))
	}

	const limit = 500
	for {
		txs, err := w.store.List(ctx, w.address, int64(len(w.txs)), limit)
		if err != nil {
			return err
		}

		for _, tx := range txs {
			if tx.ID != int64(len(w.txs)) {
				return fmt.Errorf("transaction %d missing in store", len(w.txs))
			}

			w.txs = append(w.txs, tx)
		}

		if len(txs) < limit {
			break
		}
	}

	log := logger.FromContext(ctx).WithField("wallet", w.address.Hex())
	log.Infof("%d transactions restored", len(w.txs))

	targets := make(map[common.Address]bool, len(replay))
	for _, addr := range replay {
		targets[addr] = true
	}

	var replayed int
	for _, tx := range w.txs {
		if !tx.Executed || !targets[tx.Target] {
			continue
		}

		if err := w.dispatcher.Call(ctx, w.address, tx.Target, tx.Value, tx.Payload); err != nil {
			return fmt.Errorf("replay transaction %d: %w", tx.ID, err)
		}
		replayed++
	}

	if replayed > 0 {
		log.Infof("%d executed transactions replayed", replayed)
	}

	return nil
}
