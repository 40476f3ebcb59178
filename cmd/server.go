package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"polka/handler"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "run polka api server",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx).WithField("cmd", "server")
		ctx = logger.WithContext(ctx, log)

		database := provideDatabase()
		defer database.Close()

		pools := providePoolStore(database)
		currencies := provideCurrencyService(ctx)
		oracle := providePriceOracle(pools, currencies)
		bank := provideBank()
		ledgers := provideLedgers(ctx, oracle, currencies, bank, provideSaleStore(database))
		dispatcher := provideDispatcher(currencies, ledgers)
		wallet := provideMultiSigService(ctx, dispatcher, provideTransactionStore(database), currencies)

		svr := handler.New(rootCmd.Version, currencies, pools, oracle, wallet, bank, ledgers)

		port, _ := cmd.Flags().GetInt("port")
		addr := fmt.Sprintf(":%d", port)

		server := &http.Server{
			Addr:    addr,
			Handler: svr.Handler(),
		}

		done := make(chan struct{}, 1)
		signal.WithContextFunc(ctx, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				logrus.WithError(err).Error("graceful shutdown server failed")
			}

			close(done)
		})

		logrus.Infoln("serve at", addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server aborted")
		}

		<-done
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().IntP("port", "p", 9000, "server port")
}
