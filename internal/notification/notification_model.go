package notification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification is one outbox message for a user. Mutated only to flip
// IsRead; never deleted in normal operation.
type Notification struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	UserID    string `gorm:"index;not null" json:"userId"`
	Message   string `gorm:"not null" json:"message"`
	Timestamp int64  `gorm:"autoCreateTime:milli" json:"timestamp"`
	IsRead    bool   `gorm:"not null;default:false" json:"isRead"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
