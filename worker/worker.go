package worker

import (
	"context"
	"time"
)

// Worker long running job
type Worker interface {
	Run(ctx context.Context) error
}

// Tick run fn every interval until ctx is done. The first run starts right away
func Tick(ctx context.Context, interval time.Duration, fn func(ctx context.Context) error) error {
	dur := time.Millisecond

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(dur):
			_ = fn(ctx)
			dur = interval
		}
	}
}
