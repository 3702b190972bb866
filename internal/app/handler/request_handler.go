package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"schooltech/internal/app/ds"
	"schooltech/internal/app/dto"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ ДОМЕН ЗАЯВКИ ============

// SubmitRequest создает заявку ученика на оборудование
// @Summary Подача заявки на оборудование
// @Description Резервирует единицу оборудования и создает заявку в статусе pending
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubmitRequestRequest true "ID оборудования"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/requests [post]
func (h *APIHandler) SubmitRequest(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	request, err := h.Engine.SubmitRequest(userID, req.EquipmentID)
	if err != nil {
		logrus.Error("Error submitting request: ", err)
		h.lendingError(c, err)
		return
	}

	h.Repository.LogAction(userID, "REQUEST_EQUIPMENT")

	h.successResponse(c, http.StatusCreated, "Заявка создана", gin.H{
		"request_id": request.ID,
		"status":     string(request.Status),
	})
}

// SetRequestStatus меняет статус заявки (только учитель)
// @Summary Изменение статуса заявки
// @Description Переводит заявку в approved (с датой возврата), rejected или returned
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заявки"
// @Param request body dto.SetRequestStatusRequest true "Новый статус"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/requests/{id}/status [put]
func (h *APIHandler) SetRequestStatus(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID заявки")
		return
	}

	var req dto.SetRequestStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	request, err := h.Engine.SetStatus(userID, uint(id), ds.RequestStatus(req.Status), req.DueDate)
	if err != nil {
		logrus.Error("Error setting request status: ", err)
		h.lendingError(c, err)
		return
	}

	h.Repository.LogAction(userID, fmt.Sprintf("UPDATE_REQUEST %d to %s", request.ID, request.Status))

	h.successResponse(c, http.StatusOK, "Статус заявки обновлен", gin.H{
		"request_id": request.ID,
		"status":     string(request.Status),
	})
}

// GetTeacherRequests возвращает заявки школы учителя
// @Summary Заявки для учителя
// @Description Незавершенные заявки школы учителя с данными оборудования и ученика
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.RequestListResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/requests/teacher [get]
func (h *APIHandler) GetTeacherRequests(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	rows, err := h.Engine.RequestsForTeacher(userID)
	if err != nil {
		logrus.Error("Error getting teacher requests: ", err)
		h.lendingError(c, err)
		return
	}

	requests := make([]dto.TeacherRequestResponse, len(rows))
	for i, row := range rows {
		resp := dto.TeacherRequestResponse{
			ID:                 row.ID,
			Status:             string(row.Status),
			RequestDate:        FormatDateTimeDisplay(row.RequestDate),
			EquipmentID:        row.EquipmentID,
			EquipmentName:      row.EquipmentName,
			EquipmentAvailable: row.EquipmentAvailable,
			StudentID:          row.StudentID,
			StudentName:        row.StudentName,
			StudentClass:       row.StudentClass,
		}
		if row.DueDate != nil {
			resp.DueDate = FormatDateDisplay(*row.DueDate)
		}
		requests[i] = resp
	}

	c.JSON(http.StatusOK, dto.RequestListResponse{
		Requests: requests,
		Total:    len(requests),
	})
}

// GetStudentRequests возвращает заявки текущего ученика
// @Summary Заявки ученика
// @Description Все заявки текущего ученика, новые первыми
// @Tags Requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.RequestListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/requests/my [get]
func (h *APIHandler) GetStudentRequests(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	rows, err := h.Engine.RequestsForStudent(userID)
	if err != nil {
		logrus.Error("Error getting student requests: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения заявок")
		return
	}

	requests := make([]dto.StudentRequestResponse, len(rows))
	for i, row := range rows {
		resp := dto.StudentRequestResponse{
			ID:                   row.ID,
			Status:               string(row.Status),
			RequestDate:          FormatDateTimeDisplay(row.RequestDate),
			EquipmentID:          row.EquipmentID,
			EquipmentName:        row.EquipmentName,
			EquipmentDescription: row.EquipmentDescription,
		}
		if row.DueDate != nil {
			resp.DueDate = FormatDateDisplay(*row.DueDate)
		}
		requests[i] = resp
	}

	c.JSON(http.StatusOK, dto.RequestListResponse{
		Requests: requests,
		Total:    len(requests),
	})
}
