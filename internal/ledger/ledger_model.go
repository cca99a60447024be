package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionType string

const (
	TypeWin          TransactionType = "WIN"
	TypeLoss         TransactionType = "LOSS"
	TypeDeposit      TransactionType = "DEPOSIT"
	TypeWithdrawal   TransactionType = "WITHDRAWAL"
	TypeReversal     TransactionType = "REVERSAL"
	TypePaymentClear TransactionType = "PAYMENT_CLEAR"
	TypeAdminAdjust  TransactionType = "ADMIN_ADJUST"
)

// Transaction is one append-only ledger entry. Rows are never mutated or
// deleted; an account's balance is the algebraic sum of its rows.
type Transaction struct {
	ID          string          `gorm:"primaryKey;size:36" json:"id"`
	UserID      string          `gorm:"index;not null" json:"userId"`
	Amount      decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"amount"`
	Type        TransactionType `gorm:"size:16;not null" json:"type"`
	Description string          `json:"description"`
	Timestamp   int64           `gorm:"autoCreateTime:milli" json:"timestamp"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
