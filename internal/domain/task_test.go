package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	t.Run("creates a pending task with defaults", func(t *testing.T) {
		t.Parallel()

		due := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
		task, err := NewTask(5, "Write report", "Quarterly numbers", "", &due)
		require.NoError(t, err)

		assert.Equal(t, int64(5), task.UserID)
		assert.Equal(t, TaskStatusPending, task.Status)
		assert.Equal(t, TaskPriorityMedium, task.Priority)
		assert.Equal(t, &due, task.DueDate)
		assert.Nil(t, task.ReminderSentAt)
		assert.False(t, task.CreatedAt.IsZero())
	})

	t.Run("keeps an explicit priority", func(t *testing.T) {
		t.Parallel()

		task, err := NewTask(5, "Write report", "", TaskPriorityHigh, nil)
		require.NoError(t, err)
		assert.Equal(t, TaskPriorityHigh, task.Priority)
	})

	t.Run("rejects an empty title", func(t *testing.T) {
		t.Parallel()

		_, err := NewTask(5, "", "", TaskPriorityLow, nil)
		assert.ErrorIs(t, err, ErrEmptyTaskTitle)
	})

	t.Run("rejects a missing owner", func(t *testing.T) {
		t.Parallel()

		_, err := NewTask(0, "Write report", "", TaskPriorityLow, nil)
		assert.ErrorIs(t, err, ErrEmptyTaskOwner)
	})
}

func TestTaskValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Task {
		return &Task{
			UserID:   5,
			Title:    "Write report",
			Status:   TaskStatusInProgress,
			Priority: TaskPriorityLow,
		}
	}

	t.Run("accepts a valid task", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, valid().Validate())
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		t.Parallel()

		task := valid()
		task.Status = TaskStatus("ARCHIVED")
		assert.ErrorIs(t, task.Validate(), ErrInvalidTaskStatus)
	})

	t.Run("rejects an unknown priority", func(t *testing.T) {
		t.Parallel()

		task := valid()
		task.Priority = TaskPriority("URGENT")
		assert.ErrorIs(t, task.Validate(), ErrInvalidTaskPriority)
	})
}

func TestTaskJSONKeys(t *testing.T) {
	t.Parallel()

	due := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	task := &Task{
		ID:       1,
		UserID:   5,
		Title:    "Write report",
		Status:   TaskStatusPending,
		Priority: TaskPriorityMedium,
		DueDate:  &due,
	}

	data, err := json.Marshal(task)
	require.NoError(t, err)

	var keys map[string]any
	require.NoError(t, json.Unmarshal(data, &keys))

	// All keys are camelCase; the owner ID never serializes.
	for _, key := range []string{"title", "status", "priority", "dueDate", "createdAt", "updatedAt"} {
		assert.Contains(t, keys, key)
	}
	assert.NotContains(t, keys, "created_at")
	assert.NotContains(t, keys, "updated_at")
	assert.NotContains(t, keys, "userID")
}

func TestTaskStatusIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, TaskStatusPending.IsValid())
	assert.True(t, TaskStatusInProgress.IsValid())
	assert.True(t, TaskStatusCompleted.IsValid())
	assert.False(t, TaskStatus("DONE").IsValid())
	assert.False(t, TaskStatus("").IsValid())
}

func TestTaskPriorityIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, TaskPriorityLow.IsValid())
	assert.True(t, TaskPriorityMedium.IsValid())
	assert.True(t, TaskPriorityHigh.IsValid())
	assert.False(t, TaskPriority("CRITICAL").IsValid())
}
