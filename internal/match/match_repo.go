package match

import (
	"errors"

	"gorm.io/gorm"
)

// MatchRepository defines the interface for match data operations
type MatchRepository interface {
	Create(match *Match) error
	GetByID(id string) (*Match, error)
	List() ([]Match, error)
}

type matchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a new instance of MatchRepository
func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

// Create persists the match and its stake rows in one transaction via
// the association.
func (r *matchRepository) Create(match *Match) error {
	if err := r.db.Create(match).Error; err != nil {
		return err
	}
	match.SplitRosters()
	return nil
}

func (r *matchRepository) GetByID(id string) (*Match, error) {
	var m Match
	if err := r.db.Preload("Stakes").First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

// List returns all matches, newest first.
func (r *matchRepository) List() ([]Match, error) {
	var matches []Match
	if err := r.db.Preload("Stakes").Order("created_at DESC").Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}
