package ntfy

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/cfarrell/taskman-api/internal/domain"
	"github.com/cfarrell/taskman-api/internal/platform/logger"
)

// dueDateFormat is the layout used for due dates in reminder bodies.
const dueDateFormat = "2006-01-02 15:04"

// schemePattern matches URLs that already carry a scheme ("https://", ...).
var schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)

// Client publishes notifications to an ntfy-compatible broker.
// It builds the publish headers (title, tags, priority, optional click
// action, optional bearer token), POSTs the message body, and classifies
// the outcome into success, ErrAuthenticationFailed, or ErrDeliveryFailed.
type Client struct {
	httpClient   *http.Client
	settings     *Settings
	resolver     *TopicResolver
	clickBaseURL string
	logger       *slog.Logger
}

// NewClient creates a new broker client. clickBaseURL is the base for
// "open task" click actions and may be empty, in which case reminders carry
// no click action. If log is nil, the default logger is used.
func NewClient(settings *Settings, resolver *TopicResolver, clickBaseURL string, log *slog.Logger) *Client {
	if settings == nil {
		panic("settings cannot be nil")
	}
	if resolver == nil {
		panic("resolver cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &Client{
		httpClient:   &http.Client{Timeout: settings.Timeout()},
		settings:     settings,
		resolver:     resolver,
		clickBaseURL: clickBaseURL,
		logger:       log.With(slog.String("component", "ntfy_client")),
	}
}

// SendTaskReminder publishes a "due soon" reminder for the task to the
// owning user's topic. The message carries the task title and formatted due
// date, a priority tag mapped from the task priority, and an optional click
// action opening the task.
func (c *Client) SendTaskReminder(ctx context.Context, user *domain.User, task *domain.Task) error {
	body := task.Title
	if task.DueDate != nil {
		body = fmt.Sprintf("%s\nDue: %s", task.Title, task.DueDate.Format(dueDateFormat))
	}

	return c.publish(ctx, publishRequest{
		user:     user,
		title:    "Task due soon",
		body:     body,
		tags:     "alarm_clock",
		priority: mapTaskPriority(task.Priority),
		clickURL: BuildTaskClickURL(c.clickBaseURL, task.ID),
	})
}

// SendTestNotification publishes a fixed test message to the user's topic
// so they can verify their settings end to end.
func (c *Client) SendTestNotification(ctx context.Context, user *domain.User) error {
	return c.publish(ctx, publishRequest{
		user:     user,
		title:    "Task Manager notification test",
		body:     "ntfy is configured and working.",
		tags:     "white_check_mark",
		priority: "default",
	})
}

// publishRequest carries one outbound message.
type publishRequest struct {
	user     *domain.User
	title    string
	body     string
	tags     string
	priority string
	clickURL string
}

func (c *Client) publish(ctx context.Context, req publishRequest) error {
	log := logger.FromContextOrDefault(ctx, c.logger)

	topic := c.resolver.ResolvePublishTopic(req.user)
	serverURL := c.settings.ServerURL()

	// Callers pre-check via CanSendReminder or explicit validation, but the
	// client must not assume they did.
	if !c.settings.IsPublishAuthConfigured() {
		return fmt.Errorf("%w: publish authentication is required; set ntfy.access_token", ErrNotConfigured)
	}
	if topic == "" || serverURL == "" {
		return fmt.Errorf("%w: topic and server URL are required", ErrNotConfigured)
	}

	publishURL := serverURL + "/" + url.PathEscape(topic)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, publishURL, strings.NewReader(req.body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	httpReq.Header.Set("Title", req.title)
	httpReq.Header.Set("Tags", req.tags)
	httpReq.Header.Set("Priority", req.priority)
	if token := c.settings.AccessToken(); token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	if action := buildTaskViewAction(req.clickURL); action != "" {
		httpReq.Header.Set("Actions", action)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// Cancellation is propagated, not reclassified as a delivery failure.
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Warn("failed to send ntfy notification", "error", err)
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			log.Warn("ntfy rejected publish credentials", "status", resp.StatusCode)
			return fmt.Errorf("%w: status %d", ErrAuthenticationFailed, resp.StatusCode)
		}
		log.Warn("ntfy request failed", "status", resp.StatusCode)
		return fmt.Errorf("%w: status %d", ErrDeliveryFailed, resp.StatusCode)
	}

	return nil
}

// mapTaskPriority maps a task priority to the broker's priority header value.
func mapTaskPriority(priority domain.TaskPriority) string {
	switch priority {
	case domain.TaskPriorityHigh:
		return "high"
	case domain.TaskPriorityLow:
		return "low"
	default:
		return "default"
	}
}

// BuildTaskClickURL constructs the "open task" URL for a reminder:
// the trimmed base URL (defaulted to https:// when no scheme is present,
// stripped of trailing slashes) followed by /tasks/{id}.
// Returns "" when the base URL is blank or the task ID is invalid.
func BuildTaskClickURL(clickBaseURL string, taskID int64) string {
	if taskID <= 0 {
		return ""
	}

	base := strings.TrimSpace(clickBaseURL)
	if base == "" {
		return ""
	}

	if !schemePattern.MatchString(base) {
		base = "https://" + base
	}
	for strings.HasSuffix(base, "/") {
		base = strings.TrimSuffix(base, "/")
	}

	return fmt.Sprintf("%s/tasks/%d", base, taskID)
}

func buildTaskViewAction(clickURL string) string {
	clickURL = strings.TrimSpace(clickURL)
	if clickURL == "" {
		return ""
	}
	return "view, Open task, " + clickURL
}
