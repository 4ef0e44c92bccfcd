package context

import (
	"context"

	"stockdash/internal/core/role"
)

type roleContextKey struct{}

// WithRole adds the caller's role to context.
func WithRole(ctx context.Context, r role.Role) context.Context {
	return context.WithValue(ctx, roleContextKey{}, r)
}

// RoleFromContext returns the caller's role from context.
func RoleFromContext(ctx context.Context) (role.Role, bool) {
	if v, ok := ctx.Value(roleContextKey{}).(role.Role); ok {
		return v, true
	}
	return "", false
}

// GetRole returns the caller's role or the read-only default.
func GetRole(ctx context.Context) role.Role {
	if r, ok := RoleFromContext(ctx); ok {
		return r
	}
	return role.User
}
