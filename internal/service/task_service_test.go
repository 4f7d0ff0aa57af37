package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfarrell/taskman-api/internal/domain"
	"github.com/cfarrell/taskman-api/internal/store"
)

// mockTaskStore implements store.TaskStore with injectable functions.
type mockTaskStore struct {
	createFn             func(ctx context.Context, task *domain.Task) error
	getByIDFn            func(ctx context.Context, id int64) (*domain.Task, error)
	listByUserFn         func(ctx context.Context, userID int64) ([]*domain.Task, error)
	updateFn             func(ctx context.Context, task *domain.Task) error
	deleteFn             func(ctx context.Context, id int64) error
	listDueForReminderFn func(ctx context.Context, windowStart, windowEnd time.Time) ([]*domain.Task, error)
	markReminderSentFn   func(ctx context.Context, id int64, sentAt time.Time) error
}

func (m *mockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.createFn != nil {
		return m.createFn(ctx, task)
	}
	task.ID = 1
	return nil
}

func (m *mockTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrTaskNotFound
}

func (m *mockTaskStore) ListByUser(ctx context.Context, userID int64) ([]*domain.Task, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, task)
	}
	return nil
}

func (m *mockTaskStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockTaskStore) ListDueForReminder(ctx context.Context, windowStart, windowEnd time.Time) ([]*domain.Task, error) {
	if m.listDueForReminderFn != nil {
		return m.listDueForReminderFn(ctx, windowStart, windowEnd)
	}
	return nil, nil
}

func (m *mockTaskStore) MarkReminderSent(ctx context.Context, id int64, sentAt time.Time) error {
	if m.markReminderSentFn != nil {
		return m.markReminderSentFn(ctx, id, sentAt)
	}
	return nil
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func newTaskService(t *testing.T, tasks store.TaskStore) *TaskService {
	t.Helper()

	svc, err := NewTaskService(tasks, slog.Default())
	require.NoError(t, err)
	return svc
}

func storedTask() *domain.Task {
	due := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	sent := time.Date(2026, 9, 1, 11, 30, 0, 0, time.UTC)
	return &domain.Task{
		ID:             10,
		UserID:         5,
		Title:          "Write report",
		Description:    "Quarterly numbers",
		Status:         domain.TaskStatusPending,
		Priority:       domain.TaskPriorityMedium,
		DueDate:        timePtr(due),
		ReminderSentAt: timePtr(sent),
	}
}

func taskStoreWith(task *domain.Task) *mockTaskStore {
	return &mockTaskStore{
		getByIDFn: func(_ context.Context, id int64) (*domain.Task, error) {
			if task != nil && id == task.ID {
				copied := *task
				return &copied, nil
			}
			return nil, store.ErrTaskNotFound
		},
	}
}

func TestTaskServiceCreate(t *testing.T) {
	t.Parallel()

	t.Run("creates a pending task with defaults", func(t *testing.T) {
		t.Parallel()

		var created *domain.Task
		tasks := &mockTaskStore{
			createFn: func(_ context.Context, task *domain.Task) error {
				task.ID = 10
				created = task
				return nil
			},
		}
		svc := newTaskService(t, tasks)

		task, err := svc.Create(context.Background(), 5, CreateTaskParams{
			Title: "Write report",
		})
		require.NoError(t, err)

		require.NotNil(t, created)
		assert.Equal(t, int64(10), task.ID)
		assert.Equal(t, int64(5), task.UserID)
		assert.Equal(t, domain.TaskStatusPending, task.Status)
		assert.Equal(t, domain.TaskPriorityMedium, task.Priority)
		assert.Nil(t, task.ReminderSentAt)
	})

	t.Run("rejects an empty title", func(t *testing.T) {
		t.Parallel()

		svc := newTaskService(t, &mockTaskStore{})

		_, err := svc.Create(context.Background(), 5, CreateTaskParams{})
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
		assert.ErrorIs(t, err, domain.ErrEmptyTaskTitle)
	})
}

func TestTaskServiceGet(t *testing.T) {
	t.Parallel()

	t.Run("returns the owner's task", func(t *testing.T) {
		t.Parallel()

		svc := newTaskService(t, taskStoreWith(storedTask()))

		task, err := svc.Get(context.Background(), 5, 10)
		require.NoError(t, err)
		assert.Equal(t, "Write report", task.Title)
	})

	t.Run("hides other users' tasks behind ErrNotOwned", func(t *testing.T) {
		t.Parallel()

		svc := newTaskService(t, taskStoreWith(storedTask()))

		_, err := svc.Get(context.Background(), 6, 10)
		assert.ErrorIs(t, err, ErrNotOwned)
	})

	t.Run("propagates not found", func(t *testing.T) {
		t.Parallel()

		svc := newTaskService(t, taskStoreWith(nil))

		_, err := svc.Get(context.Background(), 5, 99)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestTaskServiceUpdateReminderReset(t *testing.T) {
	t.Parallel()

	baseParams := func(task *domain.Task) UpdateTaskParams {
		return UpdateTaskParams{
			Title:       task.Title,
			Description: task.Description,
			Status:      task.Status,
			Priority:    task.Priority,
			DueDate:     task.DueDate,
		}
	}

	t.Run("unchanged due date keeps the reminder marker", func(t *testing.T) {
		t.Parallel()

		stored := storedTask()
		tasks := taskStoreWith(stored)
		var updated *domain.Task
		tasks.updateFn = func(_ context.Context, task *domain.Task) error {
			updated = task
			return nil
		}
		svc := newTaskService(t, tasks)

		params := baseParams(stored)
		params.Title = "Write the report"

		task, err := svc.Update(context.Background(), 5, 10, params)
		require.NoError(t, err)

		assert.Equal(t, "Write the report", updated.Title)
		assert.NotNil(t, task.ReminderSentAt)
	})

	t.Run("changing the due date clears the reminder marker", func(t *testing.T) {
		t.Parallel()

		stored := storedTask()
		svc := newTaskService(t, taskStoreWith(stored))

		params := baseParams(stored)
		params.DueDate = timePtr(stored.DueDate.Add(24 * time.Hour))

		task, err := svc.Update(context.Background(), 5, 10, params)
		require.NoError(t, err)
		assert.Nil(t, task.ReminderSentAt)
	})

	t.Run("clearing the due date clears the reminder marker", func(t *testing.T) {
		t.Parallel()

		stored := storedTask()
		svc := newTaskService(t, taskStoreWith(stored))

		params := baseParams(stored)
		params.DueDate = nil

		task, err := svc.Update(context.Background(), 5, 10, params)
		require.NoError(t, err)
		assert.Nil(t, task.ReminderSentAt)
	})

	t.Run("reopening a completed task clears the reminder marker", func(t *testing.T) {
		t.Parallel()

		stored := storedTask()
		stored.Status = domain.TaskStatusCompleted
		svc := newTaskService(t, taskStoreWith(stored))

		params := baseParams(stored)
		params.Status = domain.TaskStatusInProgress

		task, err := svc.Update(context.Background(), 5, 10, params)
		require.NoError(t, err)
		assert.Nil(t, task.ReminderSentAt)
	})

	t.Run("completing a task keeps the reminder marker", func(t *testing.T) {
		t.Parallel()

		stored := storedTask()
		svc := newTaskService(t, taskStoreWith(stored))

		params := baseParams(stored)
		params.Status = domain.TaskStatusCompleted

		task, err := svc.Update(context.Background(), 5, 10, params)
		require.NoError(t, err)
		assert.NotNil(t, task.ReminderSentAt)
	})

	t.Run("rejects updates from a non-owner", func(t *testing.T) {
		t.Parallel()

		stored := storedTask()
		svc := newTaskService(t, taskStoreWith(stored))

		_, err := svc.Update(context.Background(), 6, 10, baseParams(stored))
		assert.ErrorIs(t, err, ErrNotOwned)
	})

	t.Run("rejects an invalid status", func(t *testing.T) {
		t.Parallel()

		stored := storedTask()
		svc := newTaskService(t, taskStoreWith(stored))

		params := baseParams(stored)
		params.Status = domain.TaskStatus("ARCHIVED")

		_, err := svc.Update(context.Background(), 5, 10, params)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})
}

func TestTaskServiceDelete(t *testing.T) {
	t.Parallel()

	t.Run("deletes the owner's task", func(t *testing.T) {
		t.Parallel()

		stored := storedTask()
		tasks := taskStoreWith(stored)
		var deletedID int64
		tasks.deleteFn = func(_ context.Context, id int64) error {
			deletedID = id
			return nil
		}
		svc := newTaskService(t, tasks)

		require.NoError(t, svc.Delete(context.Background(), 5, 10))
		assert.Equal(t, int64(10), deletedID)
	})

	t.Run("refuses to delete another user's task", func(t *testing.T) {
		t.Parallel()

		stored := storedTask()
		tasks := taskStoreWith(stored)
		tasks.deleteFn = func(context.Context, int64) error {
			t.Fatal("delete must not be reached for a non-owner")
			return nil
		}
		svc := newTaskService(t, tasks)

		err := svc.Delete(context.Background(), 6, 10)
		assert.ErrorIs(t, err, ErrNotOwned)
	})
}
