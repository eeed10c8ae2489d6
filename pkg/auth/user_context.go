package auth

import (
	"context"

	pkgerrors "keepsake-backend/pkg/errors"
)

// Role is the caller's role inside their family unit
type Role string

const (
	RoleAdult Role = "adult"
	RoleChild Role = "child"
)

// UserContext is the validated identity attached to every request. The core
// never authenticates; it trusts this triple as supplied by the auth
// collaborator (API Gateway authorizer or the JWT middleware).
type UserContext struct {
	UserID       string
	FamilyUnitID string
	Role         Role
}

// IsAdult reports whether the caller holds the adult capability within their
// family unit.
func (u *UserContext) IsAdult() bool {
	return u.Role == RoleAdult
}

type contextKey string

const userContextKey contextKey = "auth.user"

// SetUserInContext attaches the user context to the request context
func SetUserInContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext extracts the user context set by the auth middleware
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	if !ok || user == nil {
		return nil, pkgerrors.NewUnauthorizedError("missing user context")
	}
	return user, nil
}
