package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfarrell/taskman-api/internal/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            strings.Repeat("s", 32),
		TokenLifetimeMinutes: 60,
	}
}

func newTestJWTService(t *testing.T, now time.Time) *hmacJWTService {
	t.Helper()

	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	impl, ok := svc.(*hmacJWTService)
	require.True(t, ok)
	impl.timeFunc = func() time.Time { return now }
	return impl
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	t.Run("rejects a short secret", func(t *testing.T) {
		t.Parallel()

		_, err := NewJWTService(config.AuthConfig{
			JWTSecret:            "too-short",
			TokenLifetimeMinutes: 60,
		})
		assert.Error(t, err)
	})
}

func TestJWTServiceRoundTrip(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestJWTService(t, now)
	ctx := context.Background()

	token, err := svc.GenerateToken(ctx, 5)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)

	assert.Equal(t, int64(5), claims.UserID)
	assert.Equal(t, "5", claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, now.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, now.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestJWTServiceValidateToken(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("rejects an expired token", func(t *testing.T) {
		t.Parallel()

		svc := newTestJWTService(t, now)
		token, err := svc.GenerateToken(ctx, 5)
		require.NoError(t, err)

		// Advance past lifetime plus clock skew.
		svc.timeFunc = func() time.Time { return now.Add(time.Hour + 3*time.Minute) }

		_, err = svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("allows expiry within clock skew", func(t *testing.T) {
		t.Parallel()

		svc := newTestJWTService(t, now)
		token, err := svc.GenerateToken(ctx, 5)
		require.NoError(t, err)

		svc.timeFunc = func() time.Time { return now.Add(time.Hour + time.Minute) }

		_, err = svc.ValidateToken(ctx, token)
		assert.NoError(t, err)
	})

	t.Run("rejects a token signed with a different secret", func(t *testing.T) {
		t.Parallel()

		svc := newTestJWTService(t, now)
		token, err := svc.GenerateToken(ctx, 5)
		require.NoError(t, err)

		other, err := NewJWTService(config.AuthConfig{
			JWTSecret:            strings.Repeat("x", 32),
			TokenLifetimeMinutes: 60,
		})
		require.NoError(t, err)

		_, err = other.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects garbage input", func(t *testing.T) {
		t.Parallel()

		svc := newTestJWTService(t, now)

		_, err := svc.ValidateToken(ctx, "not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects the empty string", func(t *testing.T) {
		t.Parallel()

		svc := newTestJWTService(t, now)

		_, err := svc.ValidateToken(ctx, "")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestBcryptVerifier(t *testing.T) {
	t.Parallel()

	verifier := NewBcryptVerifier()

	hash, err := verifier.Hash("password123")
	require.NoError(t, err)
	require.NotEqual(t, "password123", hash)

	assert.NoError(t, verifier.Compare(hash, "password123"))
	assert.Error(t, verifier.Compare(hash, "wrong-password"))
}
