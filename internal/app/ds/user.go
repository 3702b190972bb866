package ds

import (
	"time"

	"schooltech/internal/app/role"
)

// Таблица пользователей
type User struct {
	ID           uint      `gorm:"primaryKey"`
	FirstName    string    `gorm:"type:varchar(100);not null"`
	LastName     string    `gorm:"type:varchar(100);not null"`
	MiddleName   string    `gorm:"type:varchar(100)"`
	SchoolNumber string    `gorm:"type:varchar(20);not null;index"`
	Class        string    `gorm:"type:varchar(20);not null"` // класс ученика, у учителя "УЧИТЕЛЬ"
	Username     string    `gorm:"type:varchar(50);unique;not null"`
	Email        string    `gorm:"type:varchar(100);unique;not null"`
	Password     string    `gorm:"type:varchar(255);not null"` // sha1-хеш
	Role         role.Role `gorm:"type:varchar(20);not null;default:'student'"`
	IsActive     bool      `gorm:"type:boolean;default:true;not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

// Avatar — инициалы для отображения в интерфейсе
func (u *User) Avatar() string {
	if u.LastName == "" || u.FirstName == "" {
		return "??"
	}
	return string([]rune(u.LastName)[:1]) + string([]rune(u.FirstName)[:1])
}

// FullName собирает ФИО в порядке фамилия-имя-отчество
func (u *User) FullName() string {
	name := u.LastName + " " + u.FirstName
	if u.MiddleName != "" {
		name += " " + u.MiddleName
	}
	return name
}
