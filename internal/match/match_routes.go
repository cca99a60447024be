package match

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/elite-fire/ledger/config"
	"github.com/elite-fire/ledger/internal/account"
	mw "github.com/elite-fire/ledger/internal/middleware"
)

// MatchRoutes sets up all match-related routes. Settlement routes live in
// the settlement package; this covers creation and read access.
func MatchRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewMatchRepository(db)
	accountRepo := account.NewAccountRepository(db)
	controller := NewMatchController(repo, accountRepo, appConfig)

	router.GET("/matches", controller.GetMatches)
	router.GET("/matches/:id", controller.GetMatch)

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(appConfig.JWT.Secret, db))
	{
		authRoutes.POST("/matches", controller.CreateMatch)
	}
}
