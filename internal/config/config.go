package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Ntfy     NtfyConfig     `mapstructure:"ntfy"`
	Reminder ReminderConfig `mapstructure:"reminder"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// NtfyConfig contains the settings for the outbound ntfy publish integration.
// ServerURL and AccessToken may be left empty; the notification settings
// service reports the resulting misconfiguration through field-keyed
// validation errors rather than refusing to start.
type NtfyConfig struct {
	ServerURL          string `mapstructure:"server_url"`
	PublicURL          string `mapstructure:"public_url"`
	TimeoutSeconds     int    `mapstructure:"timeout_seconds" validate:"gte=1"`
	AccessToken        string `mapstructure:"access_token"`
	RequireAccessToken bool   `mapstructure:"require_access_token"`
}

// ReminderConfig contains the task reminder scheduler settings.
type ReminderConfig struct {
	MinutesBeforeDue int    `mapstructure:"minutes_before_due" validate:"gte=1"`
	PollIntervalMS   int    `mapstructure:"poll_interval_ms"   validate:"gte=100"`
	ClickBaseURL     string `mapstructure:"click_base_url"`
}
