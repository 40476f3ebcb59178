package purchase

import (
	"context"
	"fmt"

	"polka/core"

	"github.com/fox-one/pkg/logger"
)

// Restore reload the sale log and consumed quotes of a fresh ledger
func Restore(ctx context.Context, service core.PurchaseService) error {
	l, ok := service.(*ledger)
	if !ok || l.store == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.sales) > 0 {
		return fmt.Errorf("ledger %s has %d sales already", l.cfg.Address.Hex(), len(l.sales))
	}

	const limit = 500
	for {
		sales, err := l.store.List(ctx, l.cfg.Address, int64(len(l.sales)), limit)
		if err != nil {
			return err
		}

		for _, sale := range sales {
			if sale.ID != int64(len(l.sales)) {
				return fmt.Errorf("sale %d missing in store", len(l.sales))
			}

			l.sales = append(l.sales, sale)
			l.consumed[sale.Digest] = true
		}

		if len(sales) < limit {
			break
		}
	}

	logger.FromContext(ctx).WithField("ledger", l.cfg.Address.Hex()).
		Infof("%d sales restored", len(l.sales))
	return nil
}
