package handler

import (
	"net/http"
	"strconv"

	"schooltech/internal/app/dto"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ ДОМЕН ЧАТ ============

// GetChatUsers возвращает список собеседников
// @Summary Список пользователей для чата
// @Description Все пользователи кроме текущего, отсортированные по фамилии
// @Tags Chat
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/chat/users [get]
func (h *APIHandler) GetChatUsers(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	users, err := h.Repository.GetChatUsers(userID)
	if err != nil {
		logrus.Error("Error getting chat users: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения пользователей")
		return
	}

	items := make([]dto.ChatUserResponse, len(users))
	for i, u := range users {
		items[i] = dto.ChatUserResponse{
			ID:          u.ID,
			Username:    u.Username,
			FirstName:   u.FirstName,
			LastName:    u.LastName,
			MiddleName:  u.MiddleName,
			Role:        string(u.Role),
			RoleDisplay: u.Role.Display(),
			Avatar:      u.Avatar(),
		}
	}

	c.JSON(http.StatusOK, gin.H{"users": items})
}

// GetChatMessages возвращает переписку с пользователем
// @Summary История переписки
// @Description Сообщения с указанным пользователем; входящие помечаются прочитанными
// @Tags Chat
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID собеседника"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/chat/{id}/messages [get]
func (h *APIHandler) GetChatMessages(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	idStr := c.Param("id")
	peerID, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || peerID == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID пользователя")
		return
	}

	messages, err := h.Repository.GetChatMessages(userID, uint(peerID))
	if err != nil {
		logrus.Error("Error getting chat messages: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения сообщений")
		return
	}

	items := make([]dto.ChatMessageResponse, len(messages))
	for i, m := range messages {
		resp := dto.ChatMessageResponse{
			ID:        m.ID,
			SenderID:  m.SenderID,
			Message:   m.Message,
			IsMe:      m.SenderID == userID,
			CreatedAt: FormatDateTimeDisplay(m.CreatedAt),
		}
		if m.Sender.ID != 0 {
			resp.SenderName = m.Sender.FirstName + " " + m.Sender.LastName
		}
		items[i] = resp
	}

	c.JSON(http.StatusOK, gin.H{"messages": items})
}

// SendChatMessage отправляет личное сообщение
// @Summary Отправка сообщения
// @Description Создает сообщение и уведомляет получателя
// @Tags Chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SendMessageRequest true "Получатель и текст"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/chat/messages [post]
func (h *APIHandler) SendChatMessage(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	if req.ReceiverID == userID {
		h.errorResponse(c, http.StatusBadRequest, "Нельзя отправить сообщение самому себе")
		return
	}

	if _, err := h.Repository.GetUserByID(req.ReceiverID); err != nil {
		h.errorResponse(c, http.StatusNotFound, "Получатель не найден")
		return
	}

	sender, err := h.Repository.GetUserByID(userID)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Пользователь не найден")
		return
	}

	msg, err := h.Repository.CreateChatMessage(userID, req.ReceiverID, req.Message)
	if err != nil {
		logrus.Error("Error sending chat message: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка отправки сообщения")
		return
	}

	h.Notifier.Notify(req.ReceiverID, "Новое сообщение от "+sender.FirstName+" "+sender.LastName)

	h.successResponse(c, http.StatusCreated, "Сообщение отправлено", gin.H{
		"message_id": msg.ID,
	})
}

// GetUnreadChatCount возвращает число непрочитанных сообщений
// @Summary Счётчик непрочитанных сообщений
// @Tags Chat
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/chat/unread [get]
func (h *APIHandler) GetUnreadChatCount(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	count, err := h.Repository.GetUnreadChatCount(userID)
	if err != nil {
		logrus.Error("Error counting unread messages: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения счётчика")
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}
