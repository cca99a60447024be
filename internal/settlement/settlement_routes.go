package settlement

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/elite-fire/ledger/config"
	mw "github.com/elite-fire/ledger/internal/middleware"
)

// SettlementRoutes sets up the admin-only settlement routes: match
// settlement, debt clearing, and balance adjustment.
func SettlementRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	engine := NewEngine(db)
	controller := NewSettlementController(engine, appConfig)

	adminRoutes := router.Group("/")
	adminRoutes.Use(mw.AuthMiddleware(appConfig.JWT.Secret, db))
	adminRoutes.Use(mw.RequireAdmin())
	{
		adminRoutes.PATCH("/matches/:id/settle", controller.SettleMatch)
		adminRoutes.POST("/matches/:id/pay/:userId", controller.MarkPaid)
		adminRoutes.POST("/users/:id/adjust", controller.AdjustBalance)
	}
}
