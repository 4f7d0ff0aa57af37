package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/cfarrell/taskman-api/internal/config"
	"github.com/cfarrell/taskman-api/internal/platform/ntfy"
	"github.com/cfarrell/taskman-api/internal/platform/postgres"
	"github.com/cfarrell/taskman-api/internal/reminder"
	"github.com/cfarrell/taskman-api/internal/service"
	"github.com/cfarrell/taskman-api/internal/service/auth"
	"github.com/cfarrell/taskman-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore store.UserStore
	taskStore store.TaskStore

	// Notification integration
	ntfySettings *ntfy.Settings
	ntfyResolver *ntfy.TopicResolver
	ntfyClient   *ntfy.Client

	// Service interfaces
	jwtService          auth.JWTService
	passwordVerifier    *auth.BcryptVerifier
	notificationService *service.NotificationSettingsService
	taskService         *service.TaskService

	// Background processing
	reminderScheduler *reminder.Scheduler
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize JWT service
	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	// Initialize password verifier/hasher
	app.passwordVerifier = auth.NewBcryptVerifier()

	// Initialize stores
	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)

	// Initialize the ntfy integration
	app.ntfySettings = ntfy.NewSettings(cfg.Ntfy)
	app.ntfyResolver = ntfy.NewTopicResolver()
	app.ntfyClient = ntfy.NewClient(
		app.ntfySettings,
		app.ntfyResolver,
		cfg.Reminder.ClickBaseURL,
		logger,
	)

	// Initialize notification settings service
	app.notificationService, err = service.NewNotificationSettingsService(
		app.userStore,
		app.ntfyClient,
		app.ntfySettings,
		app.ntfyResolver,
		cfg.Reminder.MinutesBeforeDue,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification settings service: %w", err)
	}

	// Initialize task service
	app.taskService, err = service.NewTaskService(app.taskStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	// Initialize reminder scheduler
	app.reminderScheduler, err = reminder.NewScheduler(
		app.taskStore,
		app.userStore,
		app.notificationService,
		app.ntfyClient,
		reminder.SchedulerConfig{
			PollInterval: time.Duration(cfg.Reminder.PollIntervalMS) * time.Millisecond,
			Window:       time.Duration(cfg.Reminder.MinutesBeforeDue) * time.Minute,
		},
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create reminder scheduler: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the reminder scheduler and the HTTP server, handling lifecycle
// and cleanup. It returns an error if the server fails to start or
// encounters problems.
func (app *application) Run(ctx context.Context) error {
	app.reminderScheduler.Start()

	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	// Stop the reminder scheduler, waiting for any in-flight tick
	if app.reminderScheduler != nil {
		app.reminderScheduler.Stop()
	}

	// Close database connection
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
