package ds

import "time"

// Таблица журнала действий (пишется best-effort, ошибки не всплывают)
type ActionLog struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    *uint     `gorm:"index"`
	Action    string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `gorm:"not null"`
}
