package routes

import (
	"maintenance-system/internal/controllers"
	"maintenance-system/internal/entities"
	"maintenance-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runWorkCenterRouter(secure *echo.Group, workCenterCtrl *controllers.WorkCenterController, authMW *middleware.AuthMiddleware) {
	admin := authMW.Authorize(entities.RoleAdmin)

	wcGroup := secure.Group("/work-centers")
	{
		wcGroup.GET("", workCenterCtrl.List)
		wcGroup.GET("/:id", workCenterCtrl.GetByID)
		wcGroup.POST("", workCenterCtrl.Create, admin)
		wcGroup.PUT("/:id", workCenterCtrl.Update, admin)
		wcGroup.DELETE("/:id", workCenterCtrl.Delete, admin)
	}
}
