package handler

import (
	"net/http"

	"schooltech/internal/app/dto"
	"schooltech/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ ДОМЕН АДМИНИСТРИРОВАНИЕ ============
// Административные функции доступны только учителям.

// GetAdminStats возвращает сводку по системе
// @Summary Статистика системы
// @Description Количество учеников и учителей плюс последние записи журнала действий
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.AdminStatsResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/admin/stats [get]
func (h *APIHandler) GetAdminStats(c *gin.Context) {
	studentCount, err := h.Repository.CountUsersByRole(role.Student)
	if err != nil {
		logrus.Error("Error counting students: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения статистики")
		return
	}

	teacherCount, err := h.Repository.CountUsersByRole(role.Teacher)
	if err != nil {
		logrus.Error("Error counting teachers: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения статистики")
		return
	}

	rows, err := h.Repository.GetRecentLogs(100)
	if err != nil {
		logrus.Error("Error getting logs: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения журнала")
		return
	}

	logs := make([]dto.LogResponse, len(rows))
	for i, row := range rows {
		logs[i] = dto.LogResponse{
			Action:    row.Action,
			CreatedAt: FormatDateTimeDisplay(row.CreatedAt),
			Username:  row.Username,
			FullName:  row.LastName + " " + row.FirstName,
		}
	}

	c.JSON(http.StatusOK, dto.AdminStatsResponse{
		StudentCount: studentCount,
		TeacherCount: teacherCount,
		Logs:         logs,
	})
}

// BroadcastNotification рассылает уведомление группе пользователей
// @Summary Массовая рассылка уведомлений
// @Description Отправляет уведомление всем пользователям, всем ученикам или всем учителям
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BroadcastNotificationRequest true "Текст и тип рассылки"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/admin/broadcast [post]
func (h *APIHandler) BroadcastNotification(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req dto.BroadcastNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	users, err := h.Repository.GetAllUsers()
	if err != nil {
		logrus.Error("Error getting users for broadcast: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка рассылки")
		return
	}

	sent := 0
	for _, u := range users {
		switch req.Type {
		case "students":
			if u.Role != role.Student {
				continue
			}
		case "teachers":
			if u.Role != role.Teacher {
				continue
			}
		}
		h.Notifier.Notify(u.ID, req.Message)
		sent++
	}

	h.Repository.LogAction(userID, "BROADCAST_NOTIFICATION")

	h.successResponse(c, http.StatusOK, "Рассылка выполнена", gin.H{
		"recipients": sent,
	})
}

// ClearLogs очищает журнал действий
// @Summary Очистка журнала
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/admin/logs [delete]
func (h *APIHandler) ClearLogs(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	if err := h.Repository.ClearLogs(); err != nil {
		logrus.Error("Error clearing logs: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка очистки журнала")
		return
	}

	h.Repository.LogAction(userID, "CLEAR_LOGS")

	h.successResponse(c, http.StatusOK, "Журнал очищен", nil)
}
