package handler

import (
	"schooltech/internal/app/middleware"
	"schooltech/internal/app/role"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterAPIRoutes регистрирует все маршруты REST API
func (h *APIHandler) RegisterAPIRoutes(router *gin.Engine, auth *middleware.AuthMiddleware) {
	router.GET("/ping", h.Ping)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		// Аутентификация: регистрация и вход без токена
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", h.AuthHandler.RegisterUser)
			authGroup.POST("/login", h.AuthHandler.LoginUser)
			authGroup.POST("/logout", auth.WithAuthCheck(), h.AuthHandler.LogoutUser)
			authGroup.GET("/profile", auth.WithAuthCheck(), h.AuthHandler.GetUserProfile)
			authGroup.PUT("/profile", auth.WithAuthCheck(), h.AuthHandler.UpdateProfile)
		}

		// Оборудование: просмотр всем авторизованным, изменение — учителям
		equipment := api.Group("/equipment")
		{
			equipment.GET("", auth.WithAuthCheck(), h.GetEquipment)
			equipment.GET("/:id", auth.WithAuthCheck(), h.GetEquipmentItem)
			equipment.POST("", auth.WithAuthCheck(role.Teacher), h.CreateEquipment)
			equipment.POST("/:id/image", auth.WithAuthCheck(role.Teacher), h.UploadEquipmentImage)
		}

		// Заявки на оборудование
		requests := api.Group("/requests")
		{
			requests.POST("", auth.WithAuthCheck(role.Student), h.SubmitRequest)
			requests.GET("/my", auth.WithAuthCheck(role.Student), h.GetStudentRequests)
			requests.GET("/teacher", auth.WithAuthCheck(role.Teacher), h.GetTeacherRequests)
			requests.PUT("/:id/status", auth.WithAuthCheck(role.Teacher), h.SetRequestStatus)
		}

		// Уведомления
		notifications := api.Group("/notifications", auth.WithAuthCheck())
		{
			notifications.GET("", h.GetNotifications)
			notifications.PUT("/:id/read", h.MarkNotificationRead)
			notifications.PUT("/read-all", h.MarkAllNotificationsRead)
		}

		// Чат
		chat := api.Group("/chat", auth.WithAuthCheck())
		{
			chat.GET("/users", h.GetChatUsers)
			chat.GET("/:id/messages", h.GetChatMessages)
			chat.POST("/messages", h.SendChatMessage)
			chat.GET("/unread", h.GetUnreadChatCount)
		}

		// Администрирование доступно учителям
		admin := api.Group("/admin", auth.WithAuthCheck(role.Teacher))
		{
			admin.GET("/stats", h.GetAdminStats)
			admin.POST("/broadcast", h.BroadcastNotification)
			admin.DELETE("/logs", h.ClearLogs)
		}
	}
}
