package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/cfarrell/taskman-api/internal/domain"
	"github.com/cfarrell/taskman-api/internal/platform/logger"
	"github.com/cfarrell/taskman-api/internal/store"
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the
// UserStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
func NewPostgresUserStore(db store.DBTX, log *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: log.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// Create implements store.UserStore.Create
// Returns store.ErrEmailExists if the email is already taken.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO users (email, hashed_password, ntfy_enabled, ntfy_topic, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		user.Email,
		user.HashedPassword,
		user.NtfyEnabled,
		user.NtfyTopic,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("email already exists", "email", user.Email)
			return store.ErrEmailExists
		}
		log.Error("failed to create user", "error", err)
		return MapError(err)
	}

	log.Info("user created", "user_id", user.ID)
	return nil
}

// GetByID implements store.UserStore.GetByID
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, email, hashed_password, ntfy_enabled, ntfy_topic, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return s.scanUser(log, s.db.QueryRowContext(ctx, query, id))
}

// GetByEmail implements store.UserStore.GetByEmail
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, email, hashed_password, ntfy_enabled, ntfy_topic, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	return s.scanUser(log, s.db.QueryRowContext(ctx, query, email))
}

// UpdateNotificationProfile implements store.UserStore.UpdateNotificationProfile
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) UpdateNotificationProfile(
	ctx context.Context,
	id int64,
	profile store.NotificationProfile,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE users
		SET ntfy_enabled = $1, ntfy_topic = $2, updated_at = $3
		WHERE id = $4
	`
	result, err := s.db.ExecContext(ctx, query, profile.Enabled, profile.Topic, time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to update notification profile", "error", err, "user_id", id)
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrUserNotFound)
}

// UpdatePassword implements store.UserStore.UpdatePassword
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) UpdatePassword(ctx context.Context, id int64, hashedPassword string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE users
		SET hashed_password = $1, updated_at = $2
		WHERE id = $3
	`
	result, err := s.db.ExecContext(ctx, query, hashedPassword, time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to update password", "error", err, "user_id", id)
		return MapError(err)
	}

	return CheckRowsAffected(result, store.ErrUserNotFound)
}

func (s *PostgresUserStore) scanUser(log *slog.Logger, row *sql.Row) (*domain.User, error) {
	var user domain.User
	var ntfyTopic sql.NullString

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.HashedPassword,
		&user.NtfyEnabled,
		&ntfyTopic,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to scan user row", "error", err)
		return nil, MapError(err)
	}

	if ntfyTopic.Valid {
		user.NtfyTopic = &ntfyTopic.String
	}

	return &user, nil
}
