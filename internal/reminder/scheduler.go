// Package reminder implements the task reminder polling loop: on a fixed
// interval it scans tasks approaching their due time, checks per-user
// eligibility, dispatches a notification, and marks each task so it is
// reminded at most once per due date.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cfarrell/taskman-api/internal/domain"
	"github.com/cfarrell/taskman-api/internal/store"
)

// EligibilityGate decides whether a user may currently receive reminders.
// Implemented by the notification settings service; must be side-effect-free
// since it is consulted once per due task per tick.
type EligibilityGate interface {
	CanSendReminder(user *domain.User) bool
}

// Dispatcher publishes a task reminder to the user's notification topic.
// Implemented by the ntfy client.
type Dispatcher interface {
	SendTaskReminder(ctx context.Context, user *domain.User, task *domain.Task) error
}

// SchedulerConfig holds configuration for the reminder scheduler.
type SchedulerConfig struct {
	// PollInterval is the fixed delay between the end of one tick and the
	// start of the next.
	PollInterval time.Duration

	// Window is how far ahead of now a due date makes a task
	// reminder-eligible.
	Window time.Duration
}

// DefaultSchedulerConfig returns a SchedulerConfig with reasonable defaults.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		PollInterval: time.Minute,
		Window:       30 * time.Minute,
	}
}

// Scheduler runs the recurring reminder poll. It keeps no state of its own;
// all state lives in the task store's reminder_sent_at column, which the
// scheduler is the sole writer of.
type Scheduler struct {
	tasks      store.TaskStore
	users      store.UserStore
	gate       EligibilityGate
	dispatcher Dispatcher
	config     SchedulerConfig
	logger     *slog.Logger
	timeFunc   func() time.Time // Injectable for testing

	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewScheduler creates a Scheduler with the given collaborators.
// Returns an error if any required dependency is nil or the config is invalid.
func NewScheduler(
	tasks store.TaskStore,
	users store.UserStore,
	gate EligibilityGate,
	dispatcher Dispatcher,
	config SchedulerConfig,
	log *slog.Logger,
) (*Scheduler, error) {
	if tasks == nil {
		return nil, fmt.Errorf("tasks store cannot be nil")
	}
	if users == nil {
		return nil, fmt.Errorf("users store cannot be nil")
	}
	if gate == nil {
		return nil, fmt.Errorf("gate cannot be nil")
	}
	if dispatcher == nil {
		return nil, fmt.Errorf("dispatcher cannot be nil")
	}
	if config.PollInterval <= 0 || config.Window <= 0 {
		return nil, fmt.Errorf("poll interval and window must be positive")
	}
	if log == nil {
		log = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		tasks:      tasks,
		users:      users,
		gate:       gate,
		dispatcher: dispatcher,
		config:     config,
		logger:     log.With(slog.String("component", "reminder_scheduler")),
		timeFunc:   time.Now,
		ctx:        ctx,
		cancelFunc: cancel,
	}, nil
}

// Start launches the polling loop in a background goroutine.
// Ticks run with fixed-delay semantics: the timer is re-armed only after a
// tick completes, so tick N+1 can never start before tick N finishes.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.run()

	s.logger.Info("reminder scheduler started",
		"poll_interval", s.config.PollInterval,
		"window", s.config.Window)
}

// Stop cancels the polling loop and waits for any in-flight tick to finish.
func (s *Scheduler) Stop() {
	s.cancelFunc()
	s.wg.Wait()
	s.logger.Info("reminder scheduler stopped")
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	timer := time.NewTimer(s.config.PollInterval)
	defer timer.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-timer.C:
			s.Tick(s.ctx)
			timer.Reset(s.config.PollInterval)
		}
	}
}

// Tick performs one reminder pass: query tasks whose due date falls inside
// the look-ahead window and have not yet been reminded, then process each
// independently. One task's failure never aborts the batch; a failed send
// leaves the task unmarked and eligible for retry on the next tick.
func (s *Scheduler) Tick(ctx context.Context) {
	now := s.timeFunc().UTC()
	windowEnd := now.Add(s.config.Window)

	tasksDueSoon, err := s.tasks.ListDueForReminder(ctx, now, windowEnd)
	if err != nil {
		s.logger.Error("failed to query tasks due for reminder", "error", err)
		return
	}

	for _, task := range tasksDueSoon {
		if ctx.Err() != nil {
			return
		}
		s.remind(ctx, task)
	}
}

func (s *Scheduler) remind(ctx context.Context, task *domain.Task) {
	user, err := s.users.GetByID(ctx, task.UserID)
	if err != nil {
		s.logger.Warn("failed to load task owner for reminder",
			"task_id", task.ID,
			"user_id", task.UserID,
			"error", err)
		return
	}

	// Most users have notifications off; skipping silently is the expected
	// steady state, not an error.
	if !s.gate.CanSendReminder(user) {
		return
	}

	if err := s.dispatcher.SendTaskReminder(ctx, user, task); err != nil {
		s.logger.Warn("failed to send reminder",
			"task_id", task.ID,
			"error", err)
		return
	}

	if err := s.tasks.MarkReminderSent(ctx, task.ID, s.timeFunc().UTC()); err != nil {
		s.logger.Warn("failed to mark reminder as sent",
			"task_id", task.ID,
			"error", err)
		return
	}

	s.logger.Info("reminder sent", "task_id", task.ID, "user_id", user.ID)
}
