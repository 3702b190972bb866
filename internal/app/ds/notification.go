package ds

import "time"

// Таблица уведомлений
type Notification struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index"`
	Message   string    `gorm:"type:text;not null"`
	IsRead    bool      `gorm:"type:boolean;default:false;not null"`
	CreatedAt time.Time `gorm:"not null"`
}
