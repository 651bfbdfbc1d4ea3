package cmd

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

	"github.com/robdan25/gofundme-reimagined-relief-sub000/internal/cache"
	"github.com/robdan25/gofundme-reimagined-relief-sub000/internal/logger"
	"github.com/robdan25/gofundme-reimagined-relief-sub000/internal/observability"
	"github.com/robdan25/gofundme-reimagined-relief-sub000/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the news API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	metrics := observability.NewMetrics()
	p, err := buildPipeline(metrics)
	if err != nil {
		return err
	}
	defer logger.Sync()

	store, closeStore, err := openStore(p.cfg)
	if err != nil {
		return fmt.Errorf("opening cache store: %w", err)
	}
	defer closeStore()

	source := cache.NewSource(p.hybrid, store, p.cfg.RefreshTTL(), nil, metrics)
	handler := server.NewHandler(source, p.claude, p.cfg.Topic(), p.cfg.Limit(0))
	srv := server.New(p.cfg.Server.Addr, handler)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", p.cfg.Server.Addr,
			"cache_backend", p.cfg.Cache.Backend, "ai_enabled", p.cfg.AIEnabled())
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}
	return nil
}
