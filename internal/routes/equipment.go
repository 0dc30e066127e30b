package routes

import (
	"maintenance-system/internal/controllers"
	"maintenance-system/internal/entities"
	"maintenance-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runEquipmentRouter(secure *echo.Group, equipmentCtrl *controllers.EquipmentController, authMW *middleware.AuthMiddleware) {
	admin := authMW.Authorize(entities.RoleAdmin)
	managers := authMW.Authorize(entities.RoleAdmin, entities.RoleManager)

	equipmentGroup := secure.Group("/equipment")
	{
		equipmentGroup.GET("", equipmentCtrl.List)
		equipmentGroup.GET("/:id", equipmentCtrl.GetByID)
		equipmentGroup.GET("/:id/requests", equipmentCtrl.ListRequests)
		equipmentGroup.POST("", equipmentCtrl.Create, managers)
		equipmentGroup.PUT("/:id", equipmentCtrl.Update, managers)
		equipmentGroup.DELETE("/:id", equipmentCtrl.Delete, admin)
	}
}
