package main

import (
	"context"
	"os"

	"resuralph/internal/shared/config"
	"resuralph/internal/shared/storage/db"
	"resuralph/internal/shared/telemetry"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	if cfg.DatabaseURL == "" {
		telemetry.Error("migrate.missing_database_url", nil)
		os.Exit(1)
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	if err != nil {
		telemetry.Error("migrate.connect_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer database.Close()

	if err := db.RunMigrations(ctx, database); err != nil {
		telemetry.Error("migrate.failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	telemetry.Info("migrate.complete", nil)
}
