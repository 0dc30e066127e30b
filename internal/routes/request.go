package routes

import (
	"maintenance-system/internal/controllers"
	"maintenance-system/internal/entities"
	"maintenance-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runRequestRouter(secure *echo.Group, requestCtrl *controllers.RequestController, worksheetCtrl *controllers.WorksheetController, authMW *middleware.AuthMiddleware) {
	admin := authMW.Authorize(entities.RoleAdmin)
	assigners := authMW.Authorize(entities.RoleAdmin, entities.RoleManager, entities.RoleTechnician)

	requestGroup := secure.Group("/requests")
	{
		requestGroup.GET("", requestCtrl.List)
		requestGroup.GET("/kanban", requestCtrl.Kanban)
		requestGroup.GET("/calendar", requestCtrl.Calendar)
		requestGroup.GET("/:id", requestCtrl.GetByID)
		requestGroup.GET("/:id/worksheets", worksheetCtrl.ListByRequest)
		requestGroup.POST("", requestCtrl.Create)
		requestGroup.PUT("/:id", requestCtrl.Update)
		requestGroup.PATCH("/:id/status", requestCtrl.UpdateStatus)
		requestGroup.PATCH("/:id/assign", requestCtrl.AssignTechnician, assigners)
		requestGroup.DELETE("/:id", requestCtrl.Delete, admin)
	}
}
