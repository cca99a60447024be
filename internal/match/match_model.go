package match

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Team string

const (
	TeamA Team = "A"
	TeamB Team = "B"
)

type MatchStatus string

const (
	StatusUndecided MatchStatus = "UNDECIDED"
	StatusSettled   MatchStatus = "SETTLED"
)

// Stake is one player's committed bet within a match. Immutable after
// creation except for Paid, which flips once when a settled loser clears
// their debt.
type Stake struct {
	ID        string          `gorm:"primaryKey;size:36" json:"-"`
	MatchID   string          `gorm:"index;not null" json:"-"`
	Team      Team            `gorm:"size:1;not null" json:"-"`
	UserID    string          `gorm:"index;not null" json:"userId"`
	Username  string          `gorm:"not null" json:"username"`
	BetAmount decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"betAmount"`
	Paid      bool            `gorm:"not null;default:false" json:"paid"`
}

func (s *Stake) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Match is one wagering event between two rosters. WinningTeam and Status
// flip together, exactly once, from (null, UNDECIDED) to (side, SETTLED).
// Matches are never deleted; settled ones are the debt-tracking archive.
type Match struct {
	ID          string      `gorm:"primaryKey;size:36" json:"id"`
	Name        string      `gorm:"not null" json:"name"`
	Stakes      []Stake     `gorm:"foreignKey:MatchID" json:"-"`
	TeamA       []Stake     `gorm:"-" json:"teamA"`
	TeamB       []Stake     `gorm:"-" json:"teamB"`
	WinningTeam *Team       `gorm:"size:1" json:"winningTeam"`
	Status      MatchStatus `gorm:"size:12;not null;default:UNDECIDED" json:"status"`
	CreatedAt   int64       `gorm:"autoCreateTime:milli" json:"createdAt"`
}

func (m *Match) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (m *Match) AfterFind(tx *gorm.DB) error {
	m.SplitRosters()
	return nil
}

// SplitRosters projects the flat stake rows into the teamA/teamB arrays
// the client consumes.
func (m *Match) SplitRosters() {
	m.TeamA = []Stake{}
	m.TeamB = []Stake{}
	for _, s := range m.Stakes {
		if s.Team == TeamA {
			m.TeamA = append(m.TeamA, s)
		} else {
			m.TeamB = append(m.TeamB, s)
		}
	}
}

// Roster returns the stakes on the given side.
func (m *Match) Roster(team Team) []Stake {
	var roster []Stake
	for _, s := range m.Stakes {
		if s.Team == team {
			roster = append(roster, s)
		}
	}
	return roster
}
