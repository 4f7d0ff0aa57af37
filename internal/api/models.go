package api

import "time"

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID int64 `json:"user_id"`

	// Token is the JWT token used for API authorization
	Token string `json:"token"`
}

// ChangePasswordRequest defines the payload for the password change endpoint.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// UpdateNotificationSettingsRequest defines the payload for the settings
// update endpoint. Topic may be null to clear the configured topic.
type UpdateNotificationSettingsRequest struct {
	Enabled bool    `json:"enabled"`
	Topic   *string `json:"topic"`
}

// TopicSuggestionResponse defines the response for the topic suggestion endpoint.
type TopicSuggestionResponse struct {
	Topic string `json:"topic"`
}

// MessageResponse defines a simple confirmation response.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreateTaskRequest defines the payload for the task creation endpoint.
type CreateTaskRequest struct {
	Title       string     `json:"title"       validate:"required,max=255"`
	Description string     `json:"description" validate:"max=4000"`
	Priority    string     `json:"priority"    validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     *time.Time `json:"dueDate"`
}

// UpdateTaskRequest defines the payload for the task update endpoint.
type UpdateTaskRequest struct {
	Title       string     `json:"title"       validate:"required,max=255"`
	Description string     `json:"description" validate:"max=4000"`
	Status      string     `json:"status"      validate:"required,oneof=PENDING IN_PROGRESS COMPLETED"`
	Priority    string     `json:"priority"    validate:"required,oneof=LOW MEDIUM HIGH"`
	DueDate     *time.Time `json:"dueDate"`
}
