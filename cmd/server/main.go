// Package main implements the entry point for the task manager API server,
// which handles users' tasks and dispatches due-soon reminders through an
// ntfy-compatible notification broker.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/cfarrell/taskman-api/internal/config"
	"github.com/cfarrell/taskman-api/internal/platform/logger"
)

// main is the entry point for the taskman-api server.
// It initializes configuration, logging and the database connection,
// wires the application components, and starts the HTTP server alongside
// the reminder scheduler.
func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	if err := runMigrations(db, appLogger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
