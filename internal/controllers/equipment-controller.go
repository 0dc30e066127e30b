package controllers

import (
	"net/http"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/repositories"
	"maintenance-system/internal/services"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/middleware"
	"maintenance-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type EquipmentController struct {
	equipmentService services.EquipmentServiceInterface
	logger           *zap.Logger
}

func NewEquipmentController(equipmentService services.EquipmentServiceInterface, logger *zap.Logger) *EquipmentController {
	return &EquipmentController{equipmentService: equipmentService, logger: logger}
}

func (c *EquipmentController) List(ctx echo.Context) error {
	user, ok := middleware.AuthUserFromEcho(ctx)
	if !ok {
		return utils.ErrorResponse(ctx, apperrors.ErrUnauthorized, c.logger)
	}

	params := utils.ParseListParams(ctx.QueryParams())
	filter := repositories.EquipmentFilter{
		Status:     ctx.QueryParam("status"),
		CategoryID: parseUintQuery(ctx, "category_id"),
		TeamID:     parseUintQuery(ctx, "team_id"),
		Search:     params.Search,
		Limit:      params.Limit,
		Offset:     params.Offset,
	}

	items, total, err := c.equipmentService.List(ctx.Request().Context(), user, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessListResponse(ctx, items, utils.NewPagination(params.Page, params.Limit, total))
}

func (c *EquipmentController) GetByID(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	item, err := c.equipmentService.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, http.StatusOK, item)
}

// ListRequests - история заявок по единице оборудования.
func (c *EquipmentController) ListRequests(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	params := utils.ParseListParams(ctx.QueryParams())
	items, total, err := c.equipmentService.ListRequests(ctx.Request().Context(), id, params.Limit, params.Offset)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessListResponse(ctx, items, utils.NewPagination(params.Page, params.Limit, total))
}

func (c *EquipmentController) Create(ctx echo.Context) error {
	var payload dto.CreateEquipmentDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.BadRequest("некорректное тело запроса", err), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	item, err := c.equipmentService.Create(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, http.StatusCreated, item)
}

func (c *EquipmentController) Update(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateEquipmentDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.BadRequest("некорректное тело запроса", err), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	item, err := c.equipmentService.Update(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, http.StatusOK, item)
}

func (c *EquipmentController) Delete(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.equipmentService.Delete(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.DeletedResponse(ctx)
}
