package routes

import (
	"maintenance-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runNotificationRouter(secure *echo.Group, notificationCtrl *controllers.NotificationController) {
	notificationGroup := secure.Group("/notifications")
	{
		notificationGroup.GET("", notificationCtrl.List)
		notificationGroup.GET("/unread-count", notificationCtrl.UnreadCount)
		notificationGroup.PATCH("/read-all", notificationCtrl.MarkAllRead)
		notificationGroup.PATCH("/:id/read", notificationCtrl.MarkRead)
		notificationGroup.DELETE("/clear-all", notificationCtrl.DeleteAll)
		notificationGroup.DELETE("/:id", notificationCtrl.Delete)
	}
}
