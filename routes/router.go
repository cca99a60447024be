package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/elite-fire/ledger/config"
	"github.com/elite-fire/ledger/internal/account"
	"github.com/elite-fire/ledger/internal/ledger"
	"github.com/elite-fire/ledger/internal/match"
	"github.com/elite-fire/ledger/internal/notification"
	"github.com/elite-fire/ledger/internal/settlement"
)

func SetupRoutes(db *gorm.DB, appConfig *config.Config) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default()) // the dashboard is served from another origin

	// Liveness page
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": "elite-fire-ledger", "status": "ok"})
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := r.Group("/api")
	account.AccountRoutes(api, db, appConfig)
	match.MatchRoutes(api, db, appConfig)
	settlement.SettlementRoutes(api, db, appConfig)
	ledger.LedgerRoutes(api, db, appConfig)
	notification.NotificationRoutes(api, db, appConfig)

	return r
}
