package store

import (
	"context"
	"time"

	"github.com/cfarrell/taskman-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store and assigns its ID.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// ListByUser retrieves all tasks owned by the given user,
	// most recently created first.
	ListByUser(ctx context.Context, userID int64) ([]*domain.Task, error)

	// Update modifies an existing task's details.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from the store by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// ListDueForReminder returns tasks whose due date falls inside
	// [windowStart, windowEnd], that have not yet been reminded
	// (reminder_sent_at IS NULL) and are not completed.
	ListDueForReminder(ctx context.Context, windowStart, windowEnd time.Time) ([]*domain.Task, error)

	// MarkReminderSent records that a reminder was dispatched for the task.
	// The write is a single UPDATE scoped to the task ID so that overlapping
	// callers cannot double-mark.
	// Returns ErrTaskNotFound if the task does not exist.
	MarkReminderSent(ctx context.Context, id int64, sentAt time.Time) error
}
