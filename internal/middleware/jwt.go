package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/advcompro/songvault/internal/auth"
)

type key string

const userIDKey key = "user_id"

// GetUserID returns the authenticated user id placed in the context by RequireAuth.
func GetUserID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok
}

// WithUserID returns a context carrying the given user id. Exposed for tests.
func WithUserID(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// RequireAuth resolves the bearer token into an authenticated principal.
// Every failure — missing header, malformed token, bad signature, expired,
// missing subject — gets the same 401 body, so callers cannot distinguish
// them; the specific reason only goes to the log. The token payload is
// trusted once the signature verifies; no store lookup happens here.
func RequireAuth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				unauthorized(w)
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			userID, err := auth.VerifyToken(tokenStr, secret)
			if err != nil {
				slog.Debug("token rejected", "path", r.URL.Path, "error", err)
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"detail": "Could not validate credentials"})
}
