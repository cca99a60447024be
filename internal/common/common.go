package common

import (
	"errors"

	"github.com/gin-gonic/gin"
)

const (
	// Context keys
	ContextAccountIDKey = "accountID" // Key to store the authenticated account id in context
	ContextRoleKey      = "accountRole"
)

// GetAccountIDFromContext retrieves the authenticated account's id from the Gin context.
func GetAccountIDFromContext(c *gin.Context) (string, error) {
	idInterface, exists := c.Get(ContextAccountIDKey)
	if !exists {
		return "", errors.New("account ID not found in context")
	}
	id, ok := idInterface.(string)
	if !ok {
		return "", errors.New("account ID in context is not of type string")
	}
	return id, nil
}

// GetRoleFromContext retrieves the authenticated account's role from the Gin
// context. Kept as a plain string so middleware never has to import the
// account package.
func GetRoleFromContext(c *gin.Context) string {
	roleInterface, exists := c.Get(ContextRoleKey)
	if !exists {
		return ""
	}
	role, _ := roleInterface.(string)
	return role
}

// IsAdmin reports whether the authenticated caller carries the admin role.
func IsAdmin(c *gin.Context) bool {
	return GetRoleFromContext(c) == "ADMIN"
}
