package poolsync

import (
	"context"
	"time"

	"polka/core"
	"polka/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/sourcegraph/conc/pool"
)

// Worker keeps pool reserves fresh from the reserve feed
type Worker struct {
	feed     core.ReserveFeed
	pools    core.PoolStore
	interval time.Duration
}

// New new pool sync worker
func New(feed core.ReserveFeed, pools core.PoolStore, interval time.Duration) *Worker {
	if interval <= 0 {
		interval = 10 * time.Second
	}

	return &Worker{
		feed:     feed,
		pools:    pools,
		interval: interval,
	}
}

// Run worker run
func (w *Worker) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "poolsync")
	ctx = logger.WithContext(ctx, log)

	return worker.Tick(ctx, w.interval, w.run)
}

func (w *Worker) run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	pools, err := w.feed.PullReserves(ctx)
	if err != nil {
		log.WithError(err).Errorln("feed.PullReserves")
		return err
	}

	p := pool.New().WithErrors().WithMaxGoroutines(8)
	for _, item := range pools {
		item := item
		p.Go(func() error {
			if err := w.pools.Save(ctx, item); err != nil {
				log.WithError(err).WithField("pool", item.Address.Hex()).Errorln("pools.Save")
				return err
			}

			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return err
	}

	log.Debugf("%d pools synced", len(pools))
	return nil
}
