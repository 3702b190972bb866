package ds

import "time"

// Таблица оборудования. Поле Available — счётчик свободных единиц,
// им владеет только инвентарный учёт (repository), значение не бывает отрицательным.
type Equipment struct {
	ID            uint      `gorm:"primaryKey"`
	Name          string    `gorm:"type:varchar(100);not null"`
	Description   string    `gorm:"type:text"`
	Category      string    `gorm:"type:varchar(50);not null"`
	SchoolNumber  string    `gorm:"type:varchar(20);not null;index"`
	Available     int       `gorm:"type:int;not null;default:1"`
	ImageFilename *string   `gorm:"type:varchar(255)"` // Nullable, имя файла в MinIO
	CreatedBy     *uint     `gorm:"index"`
	CreatedAt     time.Time `gorm:"not null"`

	Creator *User `gorm:"foreignKey:CreatedBy"`
}
