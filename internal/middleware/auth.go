package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/projectdesk/projectdesk/internal/auth"
	"github.com/projectdesk/projectdesk/internal/model"
)

// UserResolver resolves a token subject to a current user record.
// *repository.Repository satisfies it.
type UserResolver interface {
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger *slog.Logger
	Tokens *auth.Tokens
	Users  UserResolver
}

// Auth returns a middleware that authenticates requests via a bearer token.
// It verifies the token, re-resolves the subject to a live user record (so a
// deleted account is rejected even while its token is unexpired), and injects
// the user into the request context. Every failure mode maps to the same 401
// so callers cannot probe which check failed.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := extractBearerToken(r)
			if !ok {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "missing_or_malformed_header"),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			claims, err := cfg.Tokens.Verify(tokenString)
			if err != nil {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "invalid_token"),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			user, err := cfg.Users.GetUserByID(r.Context(), claims.Subject)
			if err != nil {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "unknown_subject"),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			ctx := auth.ContextWithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken pulls the token out of the Authorization header.
// The header must be exactly two space-separated fields with a Bearer scheme.
func extractBearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	return parts[1], true
}

// writeAuthError writes a 401 Unauthorized response.
// Uses the same message for all auth failures to prevent enumeration.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"message":"Invalid or missing token"}`))
}
