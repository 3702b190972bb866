package repository

import (
	"time"

	"schooltech/internal/app/ds"

	"gorm.io/gorm"
)

// Методы для личных сообщений

func (r *Repository) CreateChatMessage(senderID, receiverID uint, message string) (*ds.ChatMessage, error) {
	msg := ds.ChatMessage{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Message:    message,
		CreatedAt:  time.Now().UTC(),
	}
	if err := r.db.Create(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// GetChatMessages возвращает переписку двух пользователей (до 100 сообщений)
// и помечает входящие прочитанными.
func (r *Repository) GetChatMessages(userID, peerID uint) ([]ds.ChatMessage, error) {
	var messages []ds.ChatMessage
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Sender").
			Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
				userID, peerID, peerID, userID).
			Order("created_at ASC").
			Limit(100).
			Find(&messages).Error; err != nil {
			return err
		}
		return tx.Model(&ds.ChatMessage{}).
			Where("receiver_id = ? AND sender_id = ? AND is_read = ?", userID, peerID, false).
			Update("is_read", true).Error
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *Repository) GetUnreadChatCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&ds.ChatMessage{}).
		Where("receiver_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}
