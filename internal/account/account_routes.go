package account

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/elite-fire/ledger/config"
	mw "github.com/elite-fire/ledger/internal/middleware"
)

// AccountRoutes sets up all account-related routes
func AccountRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewAccountRepository(db)
	controller := NewAccountController(repo, appConfig)

	// Public routes: login and self-registration, plus the roster listing
	// the dashboard reads before a session exists.
	router.POST("/login", controller.Login)
	router.GET("/users", controller.ListAccounts)
	// Registration stays public, but an admin presenting a valid token may
	// assign the new account's role.
	router.POST("/users", mw.OptionalAuth(appConfig.JWT.Secret, db), controller.CreateAccount)

	// Admin account management
	adminRoutes := router.Group("/")
	adminRoutes.Use(mw.AuthMiddleware(appConfig.JWT.Secret, db))
	adminRoutes.Use(mw.RequireAdmin())
	{
		adminRoutes.PATCH("/users/:id", controller.UpdateAccount)
	}
}
