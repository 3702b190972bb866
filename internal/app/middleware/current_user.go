package middleware

import (
	"schooltech/internal/app/role"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey   = "userID"
	userRoleKey = "userRole"
)

// UserIDFromContext извлекает ID текущего пользователя, установленный WithAuthCheck
func UserIDFromContext(c *gin.Context) (uint, bool) {
	v, exists := c.Get(userIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// RoleFromContext извлекает роль текущего пользователя
func RoleFromContext(c *gin.Context) (role.Role, bool) {
	v, exists := c.Get(userRoleKey)
	if !exists {
		return "", false
	}
	r, ok := v.(role.Role)
	return r, ok
}
