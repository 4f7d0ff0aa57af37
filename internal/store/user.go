package store

import (
	"context"

	"github.com/cfarrell/taskman-api/internal/domain"
)

// NotificationProfile holds the user fields the notification settings
// update operation is allowed to mutate. Topic is nil when the user has
// no topic configured.
type NotificationProfile struct {
	Enabled bool
	Topic   *string
}

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store and assigns its ID.
	// The caller must provide a HashedPassword; plaintext passwords are
	// never persisted.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdateNotificationProfile persists the user's notification opt-in flag
	// and topic choice. These are the only user fields the notification
	// settings service writes.
	// Returns ErrUserNotFound if the user does not exist.
	UpdateNotificationProfile(ctx context.Context, id int64, profile NotificationProfile) error

	// UpdatePassword replaces the user's hashed password.
	// Returns ErrUserNotFound if the user does not exist.
	UpdatePassword(ctx context.Context, id int64, hashedPassword string) error
}
