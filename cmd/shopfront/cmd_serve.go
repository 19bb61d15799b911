package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"shopfront/internal/api"
	"shopfront/internal/httpapi"
	"shopfront/internal/notify"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the local cart facade and notification poller",
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := httpapi.NewCartHandler(a.manager, a.catalog, a.checkout, a.log)
			router := httpapi.NewRouter(handler, a.cfg.RequestTimeout)

			srv := &http.Server{
				Addr:         ":" + a.cfg.HTTPPort,
				Handler:      router,
				ReadTimeout:  10 * time.Second,
				WriteTimeout: 10 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			pollCtx, cancelPoll := context.WithCancel(context.Background())
			defer cancelPoll()

			poller := notify.NewPoller(a.notifications, a.cfg.PollInterval,
				func(count int, _ []api.Notification) {
					a.log.Info("unread notifications", zap.Int("count", count))
				}, a.log)
			go poller.Run(pollCtx)

			go func() {
				a.log.Info("cart facade listening", zap.String("port", a.cfg.HTTPPort))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					a.log.Fatal("server error", zap.Error(err))
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			a.log.Info("shutting down")
			cancelPoll()

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("server forced to shutdown: %w", err)
			}
			return nil
		},
	}
}
