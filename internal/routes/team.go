package routes

import (
	"maintenance-system/internal/controllers"
	"maintenance-system/internal/entities"
	"maintenance-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runTeamRouter(secure *echo.Group, teamCtrl *controllers.TeamController, authMW *middleware.AuthMiddleware) {
	admin := authMW.Authorize(entities.RoleAdmin)
	managers := authMW.Authorize(entities.RoleAdmin, entities.RoleManager)

	teamGroup := secure.Group("/teams")
	{
		teamGroup.GET("", teamCtrl.List)
		teamGroup.GET("/:id", teamCtrl.GetByID)
		teamGroup.POST("", teamCtrl.Create, admin)
		teamGroup.PUT("/:id", teamCtrl.Update, admin)
		teamGroup.DELETE("/:id", teamCtrl.Delete, admin)

		teamGroup.POST("/:id/members", teamCtrl.AllocateMember, managers)
		teamGroup.DELETE("/:id/members/:userId", teamCtrl.DeallocateMember, managers)
	}
}
