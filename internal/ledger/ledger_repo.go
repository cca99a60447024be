package ledger

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Append writes one ledger entry on the given handle. Callers mutating a
// balance pass their open transaction so the entry and the balance change
// commit or roll back together.
func Append(db *gorm.DB, userID string, amount decimal.Decimal, txType TransactionType, description string) error {
	entry := &Transaction{
		UserID:      userID,
		Amount:      amount,
		Type:        txType,
		Description: description,
	}
	return db.Create(entry).Error
}

// LedgerRepository defines the interface for transaction history reads.
type LedgerRepository interface {
	ListByUser(userID string) ([]Transaction, error)
	ListAll() ([]Transaction, error)
	// SumByUser recomputes a balance from first principles; used to audit
	// the cached balance column.
	SumByUser(userID string) (decimal.Decimal, error)
}

type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new instance of LedgerRepository
func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) ListByUser(userID string) ([]Transaction, error) {
	var transactions []Transaction
	if err := r.db.Where("user_id = ?", userID).Order("timestamp DESC").Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

func (r *ledgerRepository) ListAll() ([]Transaction, error) {
	var transactions []Transaction
	if err := r.db.Order("timestamp DESC").Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

func (r *ledgerRepository) SumByUser(userID string) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	err := r.db.Model(&Transaction{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ?", userID).
		Scan(&result).Error
	return result.Total, err
}
