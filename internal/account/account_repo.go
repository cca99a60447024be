package account

import (
	"errors"

	"gorm.io/gorm"
)

// AccountRepository defines the interface for account data operations
type AccountRepository interface {
	Create(account *Account) error
	GetByID(id string) (*Account, error)
	GetByEmail(email string) (*Account, error)
	GetByUsername(username string) (*Account, error)
	List() ([]Account, error)
	Save(account *Account) error
	UpdateFields(id string, fields map[string]interface{}) error
	// CountUnpaidDebts counts settled losing stakes of the account that
	// have not been marked paid. Raw table join keeps this package free
	// of a match package import.
	CountUnpaidDebts(id string) (int64, error)
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new instance of AccountRepository
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(account *Account) error {
	return r.db.Create(account).Error
}

func (r *accountRepository) GetByID(id string) (*Account, error) {
	var account Account
	if err := r.db.First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// GetByEmail matches soft-deleted rows too, so a retired identity can
// never be re-registered.
func (r *accountRepository) GetByEmail(email string) (*Account, error) {
	var account Account
	if err := r.db.First(&account, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) GetByUsername(username string) (*Account, error) {
	var account Account
	if err := r.db.First(&account, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// List returns every account, soft-deleted ones included; the client
// filters them out of aggregate views itself.
func (r *accountRepository) List() ([]Account, error) {
	var accounts []Account
	if err := r.db.Order("created_at ASC").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *accountRepository) Save(account *Account) error {
	return r.db.Save(account).Error
}

func (r *accountRepository) UpdateFields(id string, fields map[string]interface{}) error {
	return r.db.Model(&Account{}).Where("id = ?", id).Updates(fields).Error
}

func (r *accountRepository) CountUnpaidDebts(id string) (int64, error) {
	var count int64
	err := r.db.Table("stakes").
		Joins("JOIN matches ON matches.id = stakes.match_id").
		Where("stakes.user_id = ? AND stakes.paid = ? AND matches.status = ? AND stakes.team <> matches.winning_team",
			id, false, "SETTLED").
		Count(&count).Error
	return count, err
}
