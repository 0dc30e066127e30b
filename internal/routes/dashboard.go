package routes

import (
	"maintenance-system/internal/controllers"
	"maintenance-system/internal/entities"
	"maintenance-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runDashboardRouter(secure *echo.Group, dashboardCtrl *controllers.DashboardController, authMW *middleware.AuthMiddleware) {
	dashboardGroup := secure.Group("/dashboard")
	{
		dashboardGroup.GET("/stats", dashboardCtrl.Stats)
		dashboardGroup.GET("/export", dashboardCtrl.Export,
			authMW.Authorize(entities.RoleAdmin, entities.RoleManager))
	}
}
