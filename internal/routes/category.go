package routes

import (
	"maintenance-system/internal/controllers"
	"maintenance-system/internal/entities"
	"maintenance-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runCategoryRouter(secure *echo.Group, categoryCtrl *controllers.CategoryController, authMW *middleware.AuthMiddleware) {
	admin := authMW.Authorize(entities.RoleAdmin)

	categoryGroup := secure.Group("/categories")
	{
		categoryGroup.GET("", categoryCtrl.List)
		categoryGroup.GET("/:id", categoryCtrl.GetByID)
		categoryGroup.POST("", categoryCtrl.Create, admin)
		categoryGroup.PUT("/:id", categoryCtrl.Update, admin)
		categoryGroup.DELETE("/:id", categoryCtrl.Delete, admin)
	}
}
