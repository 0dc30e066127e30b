package routes

import (
	"maintenance-system/internal/controllers"
	"maintenance-system/internal/entities"
	"maintenance-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runUserRouter(secure *echo.Group, userCtrl *controllers.UserController, authMW *middleware.AuthMiddleware) {
	admin := authMW.Authorize(entities.RoleAdmin)

	userGroup := secure.Group("/users")
	{
		// Список техников доступен любому вошедшему: форма заявки
		// показывает исполнителей независимо от роли автора.
		userGroup.GET("/technicians", userCtrl.ListTechnicians)

		userGroup.GET("", userCtrl.List, admin)
		userGroup.GET("/:id", userCtrl.GetByID, admin)
		userGroup.POST("", userCtrl.Create, admin)
		userGroup.PUT("/:id", userCtrl.Update, admin)
		userGroup.DELETE("/:id", userCtrl.Delete, admin)
	}
}
