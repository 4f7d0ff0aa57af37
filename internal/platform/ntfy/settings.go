package ntfy

import (
	"strings"
	"time"

	"github.com/cfarrell/taskman-api/internal/config"
)

// Settings holds the broker publish configuration: server URL, optional
// public-facing URL, request timeout, access token, and whether a token is
// mandatory. It is a pure value holder; construction normalizes the inputs
// so the rest of the package can treat "" as absent.
type Settings struct {
	serverURL          string
	publicURL          string
	timeout            time.Duration
	accessToken        string
	requireAccessToken bool
}

// NewSettings builds Settings from configuration. URLs are trimmed and
// stripped of trailing slashes; blank strings become absent.
func NewSettings(cfg config.NtfyConfig) *Settings {
	return &Settings{
		serverURL:          normalizeURL(cfg.ServerURL),
		publicURL:          normalizeURL(cfg.PublicURL),
		timeout:            time.Duration(cfg.TimeoutSeconds) * time.Second,
		accessToken:        strings.TrimSpace(cfg.AccessToken),
		requireAccessToken: cfg.RequireAccessToken,
	}
}

// ServerURL returns the normalized broker server URL, or "" if not configured.
func (s *Settings) ServerURL() string {
	return s.serverURL
}

// PublicURLOrServer returns the display-facing broker URL: the public URL
// if one is configured, otherwise the server URL.
func (s *Settings) PublicURLOrServer() string {
	if s.publicURL != "" {
		return s.publicURL
	}
	return s.serverURL
}

// Timeout returns the per-request publish timeout.
func (s *Settings) Timeout() time.Duration {
	return s.timeout
}

// AccessToken returns the bearer token for publishing, or "" if none is set.
func (s *Settings) AccessToken() string {
	return s.accessToken
}

// IsPublishAuthConfigured reports whether publishing can authenticate:
// either a token is present, or the configuration does not require one.
// This gates both reminder eligibility and test-sends.
func (s *Settings) IsPublishAuthConfigured() bool {
	return !s.requireAccessToken || s.accessToken != ""
}

func normalizeURL(rawURL string) string {
	normalized := strings.TrimSpace(rawURL)
	for strings.HasSuffix(normalized, "/") {
		normalized = strings.TrimSuffix(normalized, "/")
	}
	return normalized
}
