package auth

import (
	"context"

	"github.com/projectdesk/projectdesk/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const userContextKey contextKey = "current_user"

// ContextWithUser adds the authenticated user to the context.
func ContextWithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext retrieves the authenticated user from the context.
// Returns nil if the request is not authenticated.
func UserFromContext(ctx context.Context) *model.User {
	user, ok := ctx.Value(userContextKey).(*model.User)
	if !ok {
		return nil
	}
	return user
}

// MustUserFromContext retrieves the authenticated user from the context.
// Panics if not present (use only behind the auth middleware).
func MustUserFromContext(ctx context.Context) *model.User {
	user := UserFromContext(ctx)
	if user == nil {
		panic("user not found in context - ensure auth middleware is applied")
	}
	return user
}
