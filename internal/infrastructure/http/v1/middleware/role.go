package middleware

import (
	"github.com/gin-gonic/gin"

	"stockdash/internal/core/apperror"
	appctx "stockdash/internal/core/context"
	"stockdash/internal/core/role"
)

// CallerRole middleware resolves the current role from the store and adds
// it to the request context, so handlers and logs see a consistent value
// for the whole request even if the store is toggled mid-flight.
func CallerRole(store *role.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		r := store.Current()
		ctx := appctx.WithRole(c.Request.Context(), r)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireMutator is the role gate's call site: it rejects mutating requests
// before they reach the reconciler unless the current role may mutate.
func RequireMutator() gin.HandlerFunc {
	return func(c *gin.Context) {
		r := appctx.GetRole(c.Request.Context())
		if !role.CanMutate(r) {
			_ = c.Error(
				apperror.NewForbidden("read-only role cannot modify inventory").
					WithDetail("role", string(r)),
			)
			c.Abort()
			return
		}
		c.Next()
	}
}
