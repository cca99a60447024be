package account

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// The dashboard client reads balances and amounts as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RolePlayer Role = "PLAYER"
)

// Account is a registered identity with a balance and a role. Balance is a
// cache of the transaction ledger sum; it is only ever written in the same
// database transaction as a ledger append.
type Account struct {
	ID               string          `gorm:"primaryKey;size:36" json:"id"`
	Username         string          `gorm:"uniqueIndex;not null" json:"username"`
	Email            string          `gorm:"uniqueIndex;not null" json:"email"`
	PinHash          string          `gorm:"not null" json:"-"`
	Role             Role            `gorm:"size:10;not null;default:PLAYER" json:"role"`
	Balance          decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"balance"`
	IsBlocked        bool            `gorm:"not null;default:false" json:"isBlocked"`
	IsDeleted        bool            `gorm:"not null;default:false" json:"isDeleted"`
	CanCreateMatch   bool            `gorm:"not null;default:false" json:"canCreateMatch"`
	TotalMatchesPaid int             `gorm:"not null;default:0" json:"totalMatchesPaid"`
	CreatedAt        int64           `gorm:"autoCreateTime:milli" json:"createdAt"`
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}
