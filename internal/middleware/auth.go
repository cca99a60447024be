package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/elite-fire/ledger/internal/common"
	"github.com/elite-fire/ledger/pkg/responses"
	"github.com/elite-fire/ledger/pkg/token"
)

type accountRow struct {
	ID        string
	Role      string
	IsBlocked bool
	IsDeleted bool
}

// AuthMiddleware validates the Bearer session token and loads the caller's
// identity into the context. The accounts table stays the source of truth:
// a token for a since-blocked or since-deleted account is rejected even if
// the signature is still valid.
func AuthMiddleware(jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			responses.SendError(c, http.StatusUnauthorized, "Authorization header is required")
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || strings.ToLower(bearerToken[0]) != "bearer" {
			responses.SendError(c, http.StatusUnauthorized, "Invalid Authorization header format. Expected: Bearer <token>")
			return
		}

		claims, err := token.ValidateJWT(bearerToken[1], jwtSecret)
		if err != nil {
			responses.SendError(c, http.StatusUnauthorized, "Invalid or expired token: "+err.Error())
			return
		}

		var row accountRow
		err = db.Table("accounts").
			Select("id, role, is_blocked, is_deleted").
			Where("id = ?", claims.AccountID).
			Take(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.SendError(c, http.StatusUnauthorized, "Account not found")
			return
		}
		if err != nil {
			responses.SendError(c, http.StatusInternalServerError, "Could not verify account")
			return
		}
		if row.IsDeleted {
			responses.SendError(c, http.StatusUnauthorized, "This account has been deactivated")
			return
		}
		if row.IsBlocked {
			responses.SendError(c, http.StatusUnauthorized, "This account is blocked")
			return
		}

		c.Set(common.ContextAccountIDKey, row.ID)
		c.Set(common.ContextRoleKey, row.Role)
		c.Next()
	}
}

// OptionalAuth loads the caller's identity into the context when a valid
// Bearer token is presented, and lets the request through anonymously
// otherwise. Used on public routes whose behavior widens for admins, such
// as role assignment during registration.
func OptionalAuth(jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || strings.ToLower(bearerToken[0]) != "bearer" {
			c.Next()
			return
		}

		claims, err := token.ValidateJWT(bearerToken[1], jwtSecret)
		if err != nil {
			c.Next()
			return
		}

		var row accountRow
		err = db.Table("accounts").
			Select("id, role, is_blocked, is_deleted").
			Where("id = ?", claims.AccountID).
			Take(&row).Error
		if err != nil || row.IsDeleted || row.IsBlocked {
			c.Next()
			return
		}

		c.Set(common.ContextAccountIDKey, row.ID)
		c.Set(common.ContextRoleKey, row.Role)
		c.Next()
	}
}

// RequireAdmin gates admin-only routes. It must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !common.IsAdmin(c) {
			responses.SendError(c, http.StatusForbidden, "Administrator role required")
			return
		}
		c.Next()
	}
}
