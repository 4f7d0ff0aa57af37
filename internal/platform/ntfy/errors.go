package ntfy

import "errors"

// Common publish errors. Callers distinguish them with errors.Is; the closed
// set keeps the reminder scheduler's retry decision and the settings API's
// error reporting from depending on broker-specific details.
var (
	// ErrNotConfigured indicates a publish was attempted without a server
	// URL, a resolvable topic, or required credentials. Callers normally
	// pre-check with their own validation, but the client never assumes so.
	ErrNotConfigured = errors.New("ntfy publish is not configured")

	// ErrAuthenticationFailed indicates the broker rejected the publish
	// credentials (HTTP 401 or 403).
	ErrAuthenticationFailed = errors.New("ntfy rejected publish credentials")

	// ErrDeliveryFailed indicates a network error, timeout, or non-auth
	// HTTP error from the broker. Always recoverable by a later retry.
	ErrDeliveryFailed = errors.New("ntfy delivery failed")
)
