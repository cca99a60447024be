package ledger

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/elite-fire/ledger/config"
	mw "github.com/elite-fire/ledger/internal/middleware"
)

// LedgerRoutes sets up the transaction history routes
func LedgerRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewLedgerRepository(db)
	controller := NewLedgerController(repo, appConfig)

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(appConfig.JWT.Secret, db))
	{
		authRoutes.GET("/transactions/:userId", controller.GetTransactions)
	}

	adminRoutes := router.Group("/")
	adminRoutes.Use(mw.AuthMiddleware(appConfig.JWT.Secret, db))
	adminRoutes.Use(mw.RequireAdmin())
	{
		adminRoutes.GET("/transactions", controller.GetAllTransactions)
	}
}
