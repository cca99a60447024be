package main

import (
	"log"

	"github.com/elite-fire/ledger/config"
	_ "github.com/elite-fire/ledger/docs"
	"github.com/elite-fire/ledger/internal/account"
	"github.com/elite-fire/ledger/internal/ledger"
	"github.com/elite-fire/ledger/internal/match"
	"github.com/elite-fire/ledger/internal/notification"
	"github.com/elite-fire/ledger/routes"
)

// @title Elite Fire Ledger API
// @version 1.0
// @description Wager settlement and balance-ledger accounting service for the Elite Fire dashboard.
// @host localhost:8090
// @BasePath /api
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	cfg := config.GetConfig()

	err := config.DB.AutoMigrate(
		&account.Account{},
		&match.Match{}, &match.Stake{},
		&ledger.Transaction{},
		&notification.Notification{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("AutoMigrate successful")

	if err := account.SeedAdmin(config.DB, cfg); err != nil {
		log.Fatalf("Admin seed failed: %v", err)
	}

	r := routes.SetupRoutes(config.DB, cfg)

	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
