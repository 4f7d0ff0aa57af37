package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfarrell/taskman-api/internal/api/shared"
	"github.com/cfarrell/taskman-api/internal/service/auth"
)

// mockJWTService implements auth.JWTService with injectable functions.
type mockJWTService struct {
	validateFn func(ctx context.Context, tokenString string) (*auth.Claims, error)
}

func (m *mockJWTService) GenerateToken(ctx context.Context, userID int64) (string, error) {
	return "", nil
}

func (m *mockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	return m.validateFn(ctx, tokenString)
}

func TestAuthMiddlewareAuthenticate(t *testing.T) {
	t.Parallel()

	t.Run("passes the user ID to the next handler", func(t *testing.T) {
		t.Parallel()

		jwtService := &mockJWTService{
			validateFn: func(_ context.Context, tokenString string) (*auth.Claims, error) {
				assert.Equal(t, "valid-token", tokenString)
				return &auth.Claims{UserID: 5}, nil
			},
		}

		var gotUserID int64
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := shared.UserIDFromContext(r.Context())
			require.True(t, ok)
			gotUserID = userID
			w.WriteHeader(http.StatusOK)
		})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		req.Header.Set("Authorization", "Bearer valid-token")

		NewAuthMiddleware(jwtService).Authenticate(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(5), gotUserID)
	})

	tests := []struct {
		name       string
		authHeader string
		validateFn func(ctx context.Context, tokenString string) (*auth.Claims, error)
		wantStatus int
	}{
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			authHeader: "NotBearer token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired token",
			authHeader: "Bearer expired",
			validateFn: func(context.Context, string) (*auth.Claims, error) {
				return nil, auth.ErrExpiredToken
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer garbage",
			validateFn: func(context.Context, string) (*auth.Claims, error) {
				return nil, auth.ErrInvalidToken
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			jwtService := &mockJWTService{validateFn: tc.validateFn}
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("next handler must not be reached")
			})

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}

			NewAuthMiddleware(jwtService).Authenticate(next).ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}
