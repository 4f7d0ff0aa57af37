package ntfy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cfarrell/taskman-api/internal/domain"
)

func strPtr(s string) *string {
	return &s
}

func TestTopicResolverTopicPrefix(t *testing.T) {
	t.Parallel()

	resolver := NewTopicResolver()

	t.Run("derives the prefix from the user ID", func(t *testing.T) {
		t.Parallel()

		user := &domain.User{ID: 5}
		assert.Equal(t, "tm-5-", resolver.TopicPrefix(user))
	})

	t.Run("nil user yields no prefix", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, resolver.TopicPrefix(nil))
	})

	t.Run("unsaved user yields no prefix", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, resolver.TopicPrefix(&domain.User{ID: 0}))
	})
}

func TestTopicResolverResolvePublishTopic(t *testing.T) {
	t.Parallel()

	resolver := NewTopicResolver()

	tests := []struct {
		name     string
		user     *domain.User
		expected string
	}{
		{
			name:     "prefix plus suffix",
			user:     &domain.User{ID: 5, NtfyTopic: strPtr("my-topic")},
			expected: "tm-5-my-topic",
		},
		{
			name:     "suffix is trimmed",
			user:     &domain.User{ID: 7, NtfyTopic: strPtr("  alerts  ")},
			expected: "tm-7-alerts",
		},
		{
			name:     "nil topic yields nothing",
			user:     &domain.User{ID: 5},
			expected: "",
		},
		{
			name:     "blank topic yields nothing",
			user:     &domain.User{ID: 5, NtfyTopic: strPtr("   ")},
			expected: "",
		},
		{
			name:     "invalid user ID yields nothing",
			user:     &domain.User{ID: 0, NtfyTopic: strPtr("my-topic")},
			expected: "",
		},
		{
			name:     "nil user yields nothing",
			user:     nil,
			expected: "",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, resolver.ResolvePublishTopic(tc.user))
		})
	}
}
