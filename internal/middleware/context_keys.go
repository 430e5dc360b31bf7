package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// contextKey is the type of all keys this package stores in a context.
// Using a custom type prevents collisions.
type contextKey string

const (
	userIDKey      = contextKey("userID")
	userRoleKey    = contextKey("userRole")
	craftsmanIDKey = contextKey("craftsmanID")
	loggerCtxKey   = contextKey("logger")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	return stringFromContext(c, userIDKey)
}

// GetUserRoleFromContext retrieves the role claim of the authenticated user.
func GetUserRoleFromContext(c *gin.Context) (string, bool) {
	return stringFromContext(c, userRoleKey)
}

// GetCraftsmanIDFromContext retrieves the craftsman_id claim of the authenticated user.
// Users without a craftsman profile (e.g. admins) have none.
func GetCraftsmanIDFromContext(c *gin.Context) (string, bool) {
	id, ok := stringFromContext(c, craftsmanIDKey)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

func stringFromContext(c *gin.Context, key contextKey) (string, bool) {
	if val, exists := c.Get(string(key)); exists {
		s, ok := val.(string)
		return s, ok
	}
	// check in the request context as well
	s, ok := c.Request.Context().Value(key).(string)
	return s, ok
}

// withAuth stores the authenticated identity in ctx.
func withAuth(ctx context.Context, userID, role, craftsmanID string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	ctx = context.WithValue(ctx, userRoleKey, role)
	return context.WithValue(ctx, craftsmanIDKey, craftsmanID)
}
