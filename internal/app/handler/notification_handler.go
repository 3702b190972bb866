package handler

import (
	"net/http"
	"strconv"

	"schooltech/internal/app/dto"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ ДОМЕН УВЕДОМЛЕНИЯ ============

// GetNotifications возвращает уведомления текущего пользователя
// @Summary Лента уведомлений
// @Description Все уведомления пользователя, новые первыми, плюс счётчик непрочитанных
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/notifications [get]
func (h *APIHandler) GetNotifications(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	notifications, err := h.Repository.GetUserNotifications(userID)
	if err != nil {
		logrus.Error("Error getting notifications: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения уведомлений")
		return
	}

	unread, err := h.Repository.GetUnreadNotificationsCount(userID)
	if err != nil {
		logrus.Error("Error counting unread notifications: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения уведомлений")
		return
	}

	items := make([]dto.NotificationResponse, len(notifications))
	for i, n := range notifications {
		items[i] = dto.NotificationResponse{
			ID:        n.ID,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: FormatDateTimeDisplay(n.CreatedAt),
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": items,
		"unread_count":  unread,
	})
}

// MarkNotificationRead помечает уведомление прочитанным
// @Summary Прочитать уведомление
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID уведомления"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/notifications/{id}/read [put]
func (h *APIHandler) MarkNotificationRead(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID уведомления")
		return
	}

	if err := h.Repository.MarkNotificationRead(uint(id), userID); err != nil {
		logrus.Error("Error marking notification read: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка обновления уведомления")
		return
	}

	h.successResponse(c, http.StatusOK, "Уведомление прочитано", nil)
}

// MarkAllNotificationsRead помечает все уведомления прочитанными
// @Summary Прочитать все уведомления
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/notifications/read-all [put]
func (h *APIHandler) MarkAllNotificationsRead(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	if err := h.Repository.MarkAllNotificationsRead(userID); err != nil {
		logrus.Error("Error marking all notifications read: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка обновления уведомлений")
		return
	}

	h.successResponse(c, http.StatusOK, "Все уведомления прочитаны", nil)
}
