package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/cfarrell/taskman-api/internal/api/shared"
	"github.com/cfarrell/taskman-api/internal/service"
)

// NotificationSettingsService defines the settings operations the handler
// depends on. Implemented by service.NotificationSettingsService.
type NotificationSettingsService interface {
	GetSettings(ctx context.Context, userID int64) (*service.NotificationSettings, error)
	UpdateSettings(ctx context.Context, userID int64, params service.UpdateNotificationSettingsParams) (*service.NotificationSettings, error)
	SendTestNotification(ctx context.Context, userID int64) error
	GenerateTopicSuggestion() (string, error)
}

// NotificationHandler handles notification settings API requests.
type NotificationHandler struct {
	settings NotificationSettingsService
	logger   *slog.Logger
}

// NewNotificationHandler creates a new NotificationHandler with the given dependencies.
func NewNotificationHandler(settings NotificationSettingsService, log *slog.Logger) *NotificationHandler {
	if log == nil {
		log = slog.Default()
	}
	return &NotificationHandler{
		settings: settings,
		logger:   log.With(slog.String("component", "notification_handler")),
	}
}

// GetSettings handles GET /api/notifications/settings.
func (h *NotificationHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	settings, err := h.settings.GetSettings(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, settings)
}

// UpdateSettings handles PUT /api/notifications/settings.
// Validation failures return the full field-error map in one response.
func (h *NotificationHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	var req UpdateNotificationSettingsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	settings, err := h.settings.UpdateSettings(r.Context(), userID, service.UpdateNotificationSettingsParams{
		Enabled: req.Enabled,
		Topic:   req.Topic,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, settings)
}

// SendTest handles POST /api/notifications/test.
func (h *NotificationHandler) SendTest(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	if err := h.settings.SendTestNotification(r.Context(), userID); err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Test notification sent"})
}

// TopicSuggestion handles GET /api/notifications/topic-suggestion.
func (h *NotificationHandler) TopicSuggestion(w http.ResponseWriter, r *http.Request) {
	suggestion, err := h.settings.GenerateTopicSuggestion()
	if err != nil {
		h.logger.Error("failed to generate topic suggestion", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate topic suggestion")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TopicSuggestionResponse{Topic: suggestion})
}
