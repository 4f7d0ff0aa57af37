package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables use the
// TASKMAN_ prefix with underscores for nesting (e.g. TASKMAN_DATABASE_URL,
// TASKMAN_NTFY_SERVER_URL) and take precedence over file values.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("TASKMAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; the environment is the usual source.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	// Keys without defaults are invisible to AutomaticEnv during Unmarshal,
	// so required settings still get an empty default here and rely on
	// validation to reject the zero value.
	v.SetDefault("database.url", "")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_lifetime_minutes", 60)

	v.SetDefault("ntfy.server_url", "")
	v.SetDefault("ntfy.public_url", "")
	v.SetDefault("ntfy.timeout_seconds", 10)
	v.SetDefault("ntfy.access_token", "")
	v.SetDefault("ntfy.require_access_token", true)

	v.SetDefault("reminder.minutes_before_due", 30)
	v.SetDefault("reminder.poll_interval_ms", 60000)
	v.SetDefault("reminder.click_base_url", "")
}
