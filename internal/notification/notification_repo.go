package notification

import "gorm.io/gorm"

// Enqueue writes one outbox message on the given handle. Settlement passes
// its open transaction so notifications appear atomically with the ledger
// writes they describe.
func Enqueue(db *gorm.DB, userID, message string) error {
	return db.Create(&Notification{UserID: userID, Message: message}).Error
}

// NotificationRepository defines the interface for outbox reads and the
// read-flag flip.
type NotificationRepository interface {
	ListByUser(userID string) ([]Notification, error)
	MarkAllRead(userID string) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new instance of NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) ListByUser(userID string) ([]Notification, error) {
	var notifications []Notification
	if err := r.db.Where("user_id = ?", userID).Order("timestamp DESC").Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepository) MarkAllRead(userID string) error {
	return r.db.Model(&Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}
