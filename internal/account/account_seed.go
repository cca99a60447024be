package account

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/elite-fire/ledger/config"
	"github.com/elite-fire/ledger/utils"
)

// SeedAdmin ensures one administrator account exists, created from the
// configured seed credentials. Without it a fresh deployment has no way
// to settle matches or manage players.
func SeedAdmin(db *gorm.DB, cfg *config.Config) error {
	var count int64
	if err := db.Model(&Account{}).Where("role = ?", RoleAdmin).Count(&count).Error; err != nil {
		return fmt.Errorf("admin lookup failed: %w", err)
	}
	if count > 0 {
		return nil
	}

	pinHash, err := utils.HashPin(cfg.Admin.Pin)
	if err != nil {
		return fmt.Errorf("could not hash admin PIN: %w", err)
	}

	admin := &Account{
		Username:       cfg.Admin.Username,
		Email:          cfg.Admin.Email,
		PinHash:        pinHash,
		Role:           RoleAdmin,
		Balance:        decimal.Zero,
		CanCreateMatch: true,
	}
	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("could not create admin account: %w", err)
	}
	log.Printf("Seeded admin account %s (%s)", admin.Username, admin.Email)
	return nil
}
