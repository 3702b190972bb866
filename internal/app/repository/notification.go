package repository

import (
	"time"

	"schooltech/internal/app/ds"
)

// Методы для уведомлений

func (r *Repository) CreateNotification(userID uint, message string) error {
	notification := ds.Notification{
		UserID:    userID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	return r.db.Create(&notification).Error
}

func (r *Repository) GetUserNotifications(userID uint) ([]ds.Notification, error) {
	var notifications []ds.Notification
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *Repository) GetUnreadNotificationsCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&ds.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *Repository) MarkNotificationRead(id, userID uint) error {
	return r.db.Model(&ds.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true).Error
}

func (r *Repository) MarkAllNotificationsRead(userID uint) error {
	return r.db.Model(&ds.Notification{}).
		Where("user_id = ?", userID).
		Update("is_read", true).Error
}
