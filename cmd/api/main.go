package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resuralph/internal/bootstrap"
	"resuralph/internal/shared/config"
	"resuralph/internal/shared/storage/db"
	"resuralph/internal/shared/telemetry"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	app, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		telemetry.Error("api.build_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer app.Close()

	// Dev convenience: apply pending migrations on boot when a database is
	// wired. Production deploys run cmd/migrate explicitly.
	if app.DB != nil && cfg.IsDevLike() {
		if err := db.RunMigrations(ctx, app.DB); err != nil {
			telemetry.Error("api.migrate_failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		telemetry.Info("api.listening", map[string]any{"port": cfg.Port, "env": cfg.Env})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		telemetry.Info("api.shutting_down", nil)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			telemetry.Error("api.serve_failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		telemetry.Error("api.shutdown_failed", map[string]any{"error": err.Error()})
	}
}
