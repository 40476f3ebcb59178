package cmd

import (
	"context"
	"errors"

	"polka/worker"
	"polka/worker/poolsync"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "polka job worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := signal.WithContext(cmd.Context())
		log := logger.FromContext(ctx).WithField("cmd", "worker")
		ctx = logger.WithContext(ctx, log)

		database := provideDatabase()
		defer database.Close()

		workers := []worker.Worker{
			poolsync.New(provideReserveFeed(), providePoolStore(database), cfg.PriceOracle.Interval),
		}

		g, ctx := errgroup.WithContext(ctx)
		for idx := range workers {
			w := workers[idx]
			g.Go(func() error {
				return w.Run(ctx)
			})
		}

		if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
