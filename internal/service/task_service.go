package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cfarrell/taskman-api/internal/domain"
	"github.com/cfarrell/taskman-api/internal/store"
)

// CreateTaskParams carries a task creation request.
type CreateTaskParams struct {
	Title       string
	Description string
	Priority    domain.TaskPriority
	DueDate     *time.Time
}

// UpdateTaskParams carries a task update request. All fields are applied;
// a nil DueDate clears the due date.
type UpdateTaskParams struct {
	Title       string
	Description string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
	DueDate     *time.Time
}

// TaskService manages task CRUD on behalf of an authenticated user.
// It owns the two reminder reset rules: changing a task's due date or
// reopening a completed task clears ReminderSentAt, making the task
// reminder-eligible again.
type TaskService struct {
	tasks  store.TaskStore
	logger *slog.Logger
}

// NewTaskService creates a TaskService.
// Returns an error if the task store is nil.
func NewTaskService(tasks store.TaskStore, log *slog.Logger) (*TaskService, error) {
	if tasks == nil {
		return nil, fmt.Errorf("tasks store cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &TaskService{
		tasks:  tasks,
		logger: log.With(slog.String("component", "task_service")),
	}, nil
}

// Create creates a new pending task owned by the user.
func (s *TaskService) Create(ctx context.Context, userID int64, params CreateTaskParams) (*domain.Task, error) {
	task, err := domain.NewTask(userID, params.Title, params.Description, params.Priority, params.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info("task created", "task_id", task.ID, "user_id", userID)
	return task, nil
}

// List returns all tasks owned by the user.
func (s *TaskService) List(ctx context.Context, userID int64) ([]*domain.Task, error) {
	return s.tasks.ListByUser(ctx, userID)
}

// Get returns the task with the given ID.
// Returns store.ErrTaskNotFound if it does not exist and ErrNotOwned if it
// belongs to another user.
func (s *TaskService) Get(ctx context.Context, userID, taskID int64) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, ErrNotOwned
	}
	return task, nil
}

// Update applies the given fields to the task. When the due date changes,
// or a completed task leaves the COMPLETED status, the reminder marker is
// cleared so the scheduler treats the task as not yet reminded.
func (s *TaskService) Update(ctx context.Context, userID, taskID int64, params UpdateTaskParams) (*domain.Task, error) {
	task, err := s.Get(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	reopened := task.Status == domain.TaskStatusCompleted && params.Status != domain.TaskStatusCompleted
	dueDateChanged := !equalTimePtr(task.DueDate, params.DueDate)

	task.Title = params.Title
	task.Description = params.Description
	task.Status = params.Status
	task.Priority = params.Priority
	task.DueDate = params.DueDate
	task.UpdatedAt = time.Now().UTC()

	if reopened || dueDateChanged {
		task.ReminderSentAt = nil
	}

	if err := task.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// Delete removes the task.
// Returns store.ErrTaskNotFound if it does not exist and ErrNotOwned if it
// belongs to another user.
func (s *TaskService) Delete(ctx context.Context, userID, taskID int64) error {
	if _, err := s.Get(ctx, userID, taskID); err != nil {
		return err
	}
	return s.tasks.Delete(ctx, taskID)
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
