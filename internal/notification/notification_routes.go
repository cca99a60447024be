package notification

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/elite-fire/ledger/config"
	mw "github.com/elite-fire/ledger/internal/middleware"
)

// NotificationRoutes sets up the outbox routes
func NotificationRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewNotificationRepository(db)
	controller := NewNotificationController(repo, appConfig)

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(appConfig.JWT.Secret, db))
	{
		authRoutes.GET("/notifications/:userId", controller.GetNotifications)
		authRoutes.POST("/notifications/:userId/read", controller.MarkAllRead)
	}
}
