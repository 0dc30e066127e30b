package routes

import (
	"maintenance-system/internal/controllers"

	"github.com/labstack/echo/v4"
)

// Права на изменение и удаление записи проверяет сервис: автор либо администратор.
func runWorksheetRouter(secure *echo.Group, worksheetCtrl *controllers.WorksheetController) {
	worksheetGroup := secure.Group("/worksheets")
	{
		worksheetGroup.GET("", worksheetCtrl.List)
		worksheetGroup.GET("/:id", worksheetCtrl.GetByID)
		worksheetGroup.POST("", worksheetCtrl.Create)
		worksheetGroup.PUT("/:id", worksheetCtrl.Update)
		worksheetGroup.DELETE("/:id", worksheetCtrl.Delete)
	}
}
