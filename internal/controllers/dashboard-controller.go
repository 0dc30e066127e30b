package controllers

import (
	"net/http"

	"maintenance-system/internal/entities"
	"maintenance-system/internal/services"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/middleware"
	"maintenance-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type DashboardController struct {
	dashboardService services.DashboardServiceInterface
	logger           *zap.Logger
}

func NewDashboardController(dashboardService services.DashboardServiceInterface, logger *zap.Logger) *DashboardController {
	return &DashboardController{dashboardService: dashboardService, logger: logger}
}

// Stats отдаёт сводку, соответствующую роли пользователя.
func (c *DashboardController) Stats(ctx echo.Context) error {
	user, ok := middleware.AuthUserFromEcho(ctx)
	if !ok {
		return utils.ErrorResponse(ctx, apperrors.ErrUnauthorized, c.logger)
	}

	switch user.Role {
	case entities.RoleAdmin, entities.RoleManager:
		summary, err := c.dashboardService.AdminDashboard(ctx.Request().Context())
		if err != nil {
			return utils.ErrorResponse(ctx, err, c.logger)
		}
		return utils.SuccessResponse(ctx, http.StatusOK, summary)
	case entities.RoleTechnician:
		summary, err := c.dashboardService.TechnicianDashboard(ctx.Request().Context(), user)
		if err != nil {
			return utils.ErrorResponse(ctx, err, c.logger)
		}
		return utils.SuccessResponse(ctx, http.StatusOK, summary)
	default:
		summary, err := c.dashboardService.UserDashboard(ctx.Request().Context(), user)
		if err != nil {
			return utils.ErrorResponse(ctx, err, c.logger)
		}
		return utils.SuccessResponse(ctx, http.StatusOK, summary)
	}
}

// Export выгружает административную сводку в XLSX.
func (c *DashboardController) Export(ctx echo.Context) error {
	buf, filename, err := c.dashboardService.ExportAdminReport(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return ctx.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
