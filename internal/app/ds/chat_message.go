package ds

import "time"

// Таблица личных сообщений
type ChatMessage struct {
	ID         uint      `gorm:"primaryKey"`
	SenderID   uint      `gorm:"not null;index"`
	ReceiverID uint      `gorm:"not null;index"`
	Message    string    `gorm:"type:text;not null"`
	IsRead     bool      `gorm:"type:boolean;default:false;not null"`
	CreatedAt  time.Time `gorm:"not null"`

	Sender   User `gorm:"foreignKey:SenderID"`
	Receiver User `gorm:"foreignKey:ReceiverID"`
}
