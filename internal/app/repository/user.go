package repository

import (
	"strings"
	"time"

	"schooltech/internal/app/ds"
	"schooltech/internal/app/role"
)

// Методы для пользователей

func (r *Repository) GetUserByID(id uint) (*ds.User, error) {
	var user ds.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) GetUserByUsername(username string) (*ds.User, error) {
	var user ds.User
	err := r.db.Where("username = ?", strings.ToUpper(username)).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UserExists проверяет, заняты ли логин или email
func (r *Repository) UserExists(username, email string) (bool, error) {
	var count int64
	err := r.db.Model(&ds.User{}).
		Where("username = ? OR email = ?", strings.ToUpper(username), strings.ToLower(email)).
		Count(&count).Error
	return count > 0, err
}

func (r *Repository) CreateUser(user *ds.User) error {
	user.Username = strings.ToUpper(user.Username)
	user.Email = strings.ToLower(user.Email)
	user.CreatedAt = time.Now().UTC()
	return r.db.Create(user).Error
}

// UpdateUserProfile обновляет ФИО и email (nil — поле не меняется)
func (r *Repository) UpdateUserProfile(id uint, firstName, lastName, middleName, email *string) error {
	updates := map[string]interface{}{}
	if firstName != nil {
		updates["first_name"] = strings.ToUpper(*firstName)
	}
	if lastName != nil {
		updates["last_name"] = strings.ToUpper(*lastName)
	}
	if middleName != nil {
		updates["middle_name"] = strings.ToUpper(*middleName)
	}
	if email != nil {
		updates["email"] = strings.ToLower(*email)
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&ds.User{}).Where("id = ?", id).Updates(updates).Error
}

func (r *Repository) GetAllUsers() ([]ds.User, error) {
	var users []ds.User
	err := r.db.Order("created_at DESC").Find(&users).Error
	return users, err
}

// GetChatUsers — все пользователи кроме текущего, для списка собеседников
func (r *Repository) GetChatUsers(currentUserID uint) ([]ds.User, error) {
	var users []ds.User
	err := r.db.Where("id != ?", currentUserID).
		Order("last_name, first_name").
		Find(&users).Error
	return users, err
}

func (r *Repository) CountUsersByRole(userRole role.Role) (int64, error) {
	var count int64
	err := r.db.Model(&ds.User{}).Where("role = ?", userRole).Count(&count).Error
	return count, err
}
