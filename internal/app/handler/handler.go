package handler

import (
	"errors"
	"net/http"
	"strings"

	"schooltech/internal/app/dto"
	"schooltech/internal/app/lending"
	"schooltech/internal/app/middleware"
	"schooltech/internal/app/notify"
	"schooltech/internal/app/repository"
	"schooltech/internal/app/storage"

	"github.com/gin-gonic/gin"
)

// APIHandler содержит обработчики для REST API
type APIHandler struct {
	Repository  *repository.Repository
	Engine      *lending.Engine
	Notifier    *notify.Service
	MinIOClient *storage.MinIOClient
	AuthHandler *AuthHandler
}

func NewAPIHandler(r *repository.Repository, engine *lending.Engine, notifier *notify.Service,
	minioClient *storage.MinIOClient, authHandler *AuthHandler) *APIHandler {
	return &APIHandler{
		Repository:  r,
		Engine:      engine,
		Notifier:    notifier,
		MinIOClient: minioClient,
		AuthHandler: authHandler,
	}
}

// ============ Вспомогательные функции ============

func (h *APIHandler) errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{
		Status:  "fail",
		Message: message,
	})
}

func (h *APIHandler) successResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	response := dto.SuccessResponse{
		Status:  "success",
		Message: message,
	}
	if data != nil {
		response.Data = data
	}
	c.JSON(statusCode, response)
}

// lendingError переводит ошибки движка заявок в HTTP-ответ
func (h *APIHandler) lendingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, lending.ErrNotFound):
		h.errorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, lending.ErrForbidden):
		h.errorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, lending.ErrUnavailable):
		h.errorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, lending.ErrInvalidInput), errors.Is(err, lending.ErrInvalidTransition):
		h.errorResponse(c, http.StatusBadRequest, err.Error())
	default:
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка базы данных")
	}
}

// currentUserID достаёт ID пользователя из контекста авторизации
func (h *APIHandler) currentUserID(c *gin.Context) (uint, bool) {
	id, ok := middleware.UserIDFromContext(c)
	if !ok || id == 0 {
		h.errorResponse(c, http.StatusUnauthorized, "Ошибка авторизации")
		return 0, false
	}
	return id, true
}

func toUpperTrim(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Ping проверяет работоспособность API
// @Summary Проверка работоспособности
// @Description Возвращает простой ответ для проверки работы сервера
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (h *APIHandler) Ping(ctx *gin.Context) {
	ctx.JSON(200, gin.H{"message": "pong"})
}
