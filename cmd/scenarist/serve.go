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

	"github.com/aretw0/scenarist"
	httpAdapter "github.com/aretw0/scenarist/pkg/adapters/http"
	"github.com/aretw0/scenarist/pkg/notify"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the authoring HTTP API",
	Long: `Starts the HTTP API used by the scenario admin page: templates, JSON formatting,
next order allocation, the step index and the notification event stream.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("listen") {
			cfg.Listen, _ = cmd.Flags().GetString("listen")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		index, closeIndex, err := stepIndex(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := closeIndex(); err != nil {
				logger.Warn("step index close failed", "error", err)
			}
		}()

		metrics, reg := newMetrics(cfg)
		board := notify.NewBoard(
			notify.WithDuration(cfg.Notifications.TTL, cfg.Notifications.Fade),
			notify.WithMetrics(metrics),
			notify.WithLogger(logger),
		)
		presenter := notify.Multi(board, notify.Logger{Log: logger})

		auth, err := scenarist.New(authoringOptions(cfg, stepLister(cfg, index), metrics, presenter)...)
		if err != nil {
			return fmt.Errorf("error initializing scenarist: %w", err)
		}

		handlerOpts := []httpAdapter.Option{
			httpAdapter.WithStepIndex(index),
			httpAdapter.WithBoard(board),
			httpAdapter.WithLogger(logger),
		}
		if reg != nil {
			handlerOpts = append(handlerOpts, httpAdapter.WithGatherer(reg))
		}

		srv := &http.Server{
			Addr:              cfg.Listen,
			Handler:           httpAdapter.NewHandler(auth, handlerOpts...),
			ReadHeaderTimeout: 10 * time.Second,
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("Starting Scenarist Server", "address", srv.Addr,
				"steps_endpoint", cfg.StepsEndpoint, "redis", cfg.Redis.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case <-ctx.Done():
			logger.Info("Start shutdown")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("Graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			logger.Info("Scenarist Server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("listen", "l", ":8080", "Address to listen on")
}
