package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/charan23k2004/Reminder-Agent/logging"
	"github.com/charan23k2004/Reminder-Agent/utils"
	"github.com/google/uuid"
)

type contextKey string

const userIDKey contextKey = "userID"

// JWTAuthMiddleware rejects requests without a valid bearer token and stores
// the token's user id in the request context.
func JWTAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header missing", http.StatusUnauthorized)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			http.Error(w, "Invalid auth header (expected 'Bearer <token>')", http.StatusUnauthorized)
			return
		}

		userID, _, err := utils.ValidateToken(tokenStr)
		if err != nil {
			logging.Logger.Warnf("Invalid token for %s %s: %v", r.Method, r.URL.Path, err)
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext returns the authenticated user id set by the middleware.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs every request with its status and duration.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logging.Logger.Infof("%s %s %s %d %v", r.Method, r.URL.Path, r.RemoteAddr, rec.status, time.Since(start))
	})
}
