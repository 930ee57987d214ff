package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charan23k2004/Reminder-Agent/handlers"
	"github.com/charan23k2004/Reminder-Agent/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTAuthMiddleware(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	userID := uuid.New()
	token, err := utils.GenerateToken(userID, "user@example.com")
	require.NoError(t, err)

	var gotID uuid.UUID
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		gotID, _ = handlers.UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantNext   bool
	}{
		{
			name:       "Valid bearer token passes through",
			authHeader: "Bearer " + token,
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "Missing header is rejected",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Missing Bearer prefix is rejected",
			authHeader: token,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Garbage token is rejected",
			authHeader: "Bearer not-a-token",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called = false
			req := httptest.NewRequest(http.MethodGet, "/reminders", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			handlers.JWTAuthMiddleware(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantNext, called)
			if tt.wantNext {
				assert.Equal(t, userID, gotID)
			}
		})
	}
}

func TestUserIDFromContextMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := handlers.UserIDFromContext(req.Context())
	assert.False(t, ok)
}
