package repository

import (
	"time"

	"schooltech/internal/app/ds"

	"github.com/sirupsen/logrus"
)

// Журнал действий

// LogAction пишет запись в журнал best-effort: ошибка логируется и не всплывает
func (r *Repository) LogAction(userID uint, action string) {
	entry := ds.ActionLog{
		UserID:    &userID,
		Action:    action,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.db.Create(&entry).Error; err != nil {
		logrus.Warn("log action failed: ", err)
	}
}

// LogRow — запись журнала с данными пользователя
type LogRow struct {
	Action    string
	CreatedAt time.Time
	Username  string
	FirstName string
	LastName  string
}

// GetRecentLogs — последние записи журнала с логинами пользователей
func (r *Repository) GetRecentLogs(limit int) ([]LogRow, error) {
	var rows []LogRow
	err := r.db.Model(&ds.ActionLog{}).
		Select("action_logs.action, action_logs.created_at, users.username, users.first_name, users.last_name").
		Joins("LEFT JOIN users ON users.id = action_logs.user_id").
		Order("action_logs.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *Repository) ClearLogs() error {
	return r.db.Exec("DELETE FROM action_logs").Error
}
