package route

import (
	"github.com/gin-gonic/gin"
	"github.com/sopheak-dev/agencyflow/internal/controller"
	"github.com/sopheak-dev/agencyflow/internal/middleware"
)

func V1_Notifications(r *gin.RouterGroup, notificationController *controller.NotificationController, middleware *middleware.Middleware) {
	v1 := r.Group("/v1/notifications")
	v1.Use(middleware.AuthMiddleware)
	{
		v1.GET("", notificationController.ListNotifications)
		v1.GET("/unread-count", notificationController.GetUnreadCount)
		v1.PATCH("/:notificationId/read", notificationController.MarkAsRead)
		v1.PATCH("/read-all", notificationController.MarkAllAsRead)
		v1.DELETE("/:notificationId", notificationController.DeleteNotification)
		v1.DELETE("", notificationController.DeleteAllNotifications)

		v1.POST("/send", notificationController.SendNotification)
		v1.POST("/broadcast", notificationController.BroadcastNotification)
	}
}
