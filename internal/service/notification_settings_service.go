package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/cfarrell/taskman-api/internal/domain"
	"github.com/cfarrell/taskman-api/internal/platform/ntfy"
	"github.com/cfarrell/taskman-api/internal/store"
)

// topicPattern is the allowed shape of a user-chosen topic suffix.
var topicPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

const (
	topicSuggestionAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"
	topicSuggestionLength   = 10
)

// TestNotificationSender publishes a test message to a user's topic.
// Implemented by the ntfy client.
type TestNotificationSender interface {
	SendTestNotification(ctx context.Context, user *domain.User) error
}

// NotificationSettings is the read view of a user's notification
// configuration returned to API callers. Topic is the raw user-chosen
// suffix; the fully-qualified publish topic is never exposed.
type NotificationSettings struct {
	Enabled                  bool   `json:"enabled"`
	PublicURL                string `json:"publicUrl"`
	TopicPrefix              string `json:"topicPrefix"`
	Topic                    string `json:"topic"`
	ReminderMinutesBeforeDue int    `json:"reminderMinutesBeforeDue"`
}

// UpdateNotificationSettingsParams carries a settings update request.
// Topic is nil when the caller wants to clear the topic.
type UpdateNotificationSettingsParams struct {
	Enabled bool
	Topic   *string
}

// NotificationSettingsService validates and persists users' notification
// opt-in and topic choices, and computes whether a user is currently
// eligible to receive reminders.
type NotificationSettingsService struct {
	users                    store.UserStore
	sender                   TestNotificationSender
	settings                 *ntfy.Settings
	resolver                 *ntfy.TopicResolver
	reminderMinutesBeforeDue int
	logger                   *slog.Logger
}

// NewNotificationSettingsService creates a NotificationSettingsService with
// the given collaborators. Returns an error if any required dependency is nil.
func NewNotificationSettingsService(
	users store.UserStore,
	sender TestNotificationSender,
	settings *ntfy.Settings,
	resolver *ntfy.TopicResolver,
	reminderMinutesBeforeDue int,
	log *slog.Logger,
) (*NotificationSettingsService, error) {
	if users == nil {
		return nil, fmt.Errorf("users store cannot be nil")
	}
	if sender == nil {
		return nil, fmt.Errorf("sender cannot be nil")
	}
	if settings == nil {
		return nil, fmt.Errorf("settings cannot be nil")
	}
	if resolver == nil {
		return nil, fmt.Errorf("resolver cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &NotificationSettingsService{
		users:                    users,
		sender:                   sender,
		settings:                 settings,
		resolver:                 resolver,
		reminderMinutesBeforeDue: reminderMinutesBeforeDue,
		logger:                   log.With(slog.String("component", "notification_settings_service")),
	}, nil
}

// GetSettings returns the notification settings view for the user.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *NotificationSettingsService) GetSettings(ctx context.Context, userID int64) (*NotificationSettings, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.mapToSettings(user), nil
}

// UpdateSettings validates and persists the user's opt-in flag and topic
// choice. Every violation is collected into a field-keyed *ValidationError
// before failing; on any violation nothing is persisted.
func (s *NotificationSettingsService) UpdateSettings(
	ctx context.Context,
	userID int64,
	params UpdateNotificationSettingsParams,
) (*NotificationSettings, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	normalizedTopic := trimToNil(params.Topic)

	verr := NewValidationError()
	if params.Enabled && normalizedTopic == nil {
		verr.Add("topic", "Topic is required when notifications are enabled")
	}
	if params.Enabled && !s.settings.IsPublishAuthConfigured() {
		verr.Add("configuration", "ntfy publish authentication is not configured; set ntfy.access_token")
	}
	if normalizedTopic != nil && !topicPattern.MatchString(*normalizedTopic) {
		verr.Add("topic", "Topic can only contain letters, numbers, _ and -")
	}
	if verr.HasErrors() {
		return nil, verr
	}

	profile := store.NotificationProfile{
		Enabled: params.Enabled,
		Topic:   normalizedTopic,
	}
	if err := s.users.UpdateNotificationProfile(ctx, userID, profile); err != nil {
		return nil, err
	}

	user.NtfyEnabled = params.Enabled
	user.NtfyTopic = normalizedTopic

	s.logger.Info("notification settings updated",
		"user_id", userID,
		"enabled", params.Enabled)

	return s.mapToSettings(user), nil
}

// SendTestNotification re-validates that the server URL, a resolvable topic,
// and publish authentication are all present, then publishes a test message
// to the user's topic. A broker credential rejection is re-wrapped as a
// *ValidationError so interactive callers see a correctable configuration
// problem rather than a server failure.
func (s *NotificationSettingsService) SendTestNotification(ctx context.Context, userID int64) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	verr := NewValidationError()
	if s.settings.ServerURL() == "" {
		verr.Add("serverUrl", "Configure ntfy.server_url before sending a test notification")
	}
	if s.resolver.ResolvePublishTopic(user) == "" {
		verr.Add("topic", "Configure a topic before sending a test notification")
	}
	if !s.settings.IsPublishAuthConfigured() {
		verr.Add("configuration", "ntfy publish authentication is not configured; set ntfy.access_token")
	}
	if verr.HasErrors() {
		return verr
	}

	if err := s.sender.SendTestNotification(ctx, user); err != nil {
		if errors.Is(err, ntfy.ErrAuthenticationFailed) {
			authErr := NewValidationError()
			authErr.Add("configuration", "ntfy rejected the configured access token")
			return authErr
		}
		return err
	}

	return nil
}

// CanSendReminder reports whether the user is currently eligible to receive
// task reminders: opted in, broker server configured, publish authentication
// configured, and a resolvable topic. Side-effect-free; the reminder
// scheduler calls this once per due task per tick.
func (s *NotificationSettingsService) CanSendReminder(user *domain.User) bool {
	return user != nil &&
		user.NtfyEnabled &&
		s.settings.ServerURL() != "" &&
		s.settings.IsPublishAuthConfigured() &&
		s.resolver.ResolvePublishTopic(user) != ""
}

// GenerateTopicSuggestion returns a random 10-character topic drawn from a
// 64-character alphabet using a cryptographically secure source. Used only
// to pre-fill a UI field; never persisted automatically.
func (s *NotificationSettingsService) GenerateTopicSuggestion() (string, error) {
	buf := make([]byte, topicSuggestionLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate topic suggestion: %w", err)
	}

	// 64 divides 256, so the modulo keeps the draw uniform.
	suggestion := make([]byte, topicSuggestionLength)
	for i, b := range buf {
		suggestion[i] = topicSuggestionAlphabet[int(b)%len(topicSuggestionAlphabet)]
	}

	return string(suggestion), nil
}

func (s *NotificationSettingsService) mapToSettings(user *domain.User) *NotificationSettings {
	topic := ""
	if user.NtfyTopic != nil {
		topic = *user.NtfyTopic
	}

	return &NotificationSettings{
		Enabled:                  user.NtfyEnabled,
		PublicURL:                s.settings.PublicURLOrServer(),
		TopicPrefix:              s.resolver.TopicPrefix(user),
		Topic:                    topic,
		ReminderMinutesBeforeDue: s.reminderMinutesBeforeDue,
	}
}

func trimToNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
