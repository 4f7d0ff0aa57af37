// Package ntfy integrates with an ntfy-compatible pub/sub broker for
// pushing task notifications. It holds the publish configuration, derives
// per-user publish topics, and performs the outbound HTTP publish calls.
package ntfy
