package ntfy

import (
	"fmt"
	"strings"

	"github.com/cfarrell/taskman-api/internal/domain"
)

// topicPrefix namespaces every published topic per user so users sharing
// one broker cannot collide with (or subscribe to) each other's topics.
const topicPrefix = "tm"

// TopicResolver deterministically derives per-user publish topics from the
// user's ID and chosen topic suffix. It is stateless.
type TopicResolver struct{}

// NewTopicResolver creates a new TopicResolver.
func NewTopicResolver() *TopicResolver {
	return &TopicResolver{}
}

// TopicPrefix returns the namespace prefix for the given user,
// e.g. "tm-5-", or "" when the user has no valid ID.
func (r *TopicResolver) TopicPrefix(user *domain.User) string {
	if user == nil || user.ID <= 0 {
		return ""
	}
	return fmt.Sprintf("%s-%d-", topicPrefix, user.ID)
}

// ResolvePublishTopic returns the fully-qualified topic for the user:
// the namespace prefix followed by the trimmed user-chosen suffix.
// Returns "" unless both a valid prefix and a non-blank suffix exist.
func (r *TopicResolver) ResolvePublishTopic(user *domain.User) string {
	prefix := r.TopicPrefix(user)
	if prefix == "" || user.NtfyTopic == nil {
		return ""
	}

	rawTopic := strings.TrimSpace(*user.NtfyTopic)
	if rawTopic == "" {
		return ""
	}

	return prefix + rawTopic
}
