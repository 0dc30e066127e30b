package controllers

import (
	"net/http"
	"time"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/repositories"
	"maintenance-system/internal/services"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/middleware"
	"maintenance-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type RequestController struct {
	requestService services.RequestServiceInterface
	logger         *zap.Logger
}

func NewRequestController(requestService services.RequestServiceInterface, logger *zap.Logger) *RequestController {
	return &RequestController{requestService: requestService, logger: logger}
}

func (c *RequestController) List(ctx echo.Context) error {
	user, ok := middleware.AuthUserFromEcho(ctx)
	if !ok {
		return utils.ErrorResponse(ctx, apperrors.ErrUnauthorized, c.logger)
	}

	params := utils.ParseListParams(ctx.QueryParams())
	filter := repositories.RequestFilter{
		Status:          ctx.QueryParam("status"),
		MaintenanceType: ctx.QueryParam("maintenance_type"),
		Priority:        parseIntQuery(ctx, "priority"),
		EquipmentID:     parseUintQuery(ctx, "equipment_id"),
		TeamID:          parseUintQuery(ctx, "team_id"),
		TechnicianID:    parseUintQuery(ctx, "technician_id"),
		Search:          params.Search,
		Limit:           params.Limit,
		Offset:          params.Offset,
	}

	items, total, err := c.requestService.List(ctx.Request().Context(), user, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessListResponse(ctx, items, utils.NewPagination(params.Page, params.Limit, total))
}

func (c *RequestController) GetByID(ctx echo.Context) error {
	user, ok := middleware.AuthUserFromEcho(ctx)
	if !ok {
		return utils.ErrorResponse(ctx, apperrors.ErrUnauthorized, c.logger)
	}
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	item, err := c.requestService.GetByID(ctx.Request().Context(), user, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, http.StatusOK, item)
}

func (c *RequestController) Create(ctx echo.Context) error {
	user, ok := middleware.AuthUserFromEcho(ctx)
	if !ok {
		return utils.ErrorResponse(ctx, apperrors.ErrUnauthorized, c.logger)
	}

	var payload dto.CreateRequestDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.BadRequest("некорректное тело запроса", err), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	item, err := c.requestService.Create(ctx.Request().Context(), user, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, http.StatusCreated, item)
}

func (c *RequestController) Update(ctx echo.Context) error {
	user, ok := middleware.AuthUserFromEcho(ctx)
	if !ok {
		return utils.ErrorResponse(ctx, apperrors.ErrUnauthorized, c.logger)
	}
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateRequestDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.BadRequest("некорректное тело запроса", err), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	item, err := c.requestService.Update(ctx.Request().Context(), user, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, http.StatusOK, item)
}

func (c *RequestController) UpdateStatus(ctx echo.Context) error {
	user, ok := middleware.AuthUserFromEcho(ctx)
	if !ok {
		return utils.ErrorResponse(ctx, apperrors.ErrUnauthorized, c.logger)
	}
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateRequestStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.BadRequest("некорректное тело запроса", err), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	item, err := c.requestService.UpdateStatus(ctx.Request().Context(), user, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, http.StatusOK, item)
}

func (c *RequestController) AssignTechnician(ctx echo.Context) error {
	user, ok := middleware.AuthUserFromEcho(ctx)
	if !ok {
		return utils.ErrorResponse(ctx, apperrors.ErrUnauthorized, c.logger)
	}
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.AssignTechnicianDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.BadRequest("некорректное тело запроса", err), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	item, err := c.requestService.AssignTechnician(ctx.Request().Context(), user, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, http.StatusOK, item)
}

func (c *RequestController) Delete(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.requestService.Delete(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.DeletedResponse(ctx)
}

func (c *RequestController) Kanban(ctx echo.Context) error {
	user, ok := middleware.AuthUserFromEcho(ctx)
	if !ok {
		return utils.ErrorResponse(ctx, apperrors.ErrUnauthorized, c.logger)
	}

	columns, err := c.requestService.Kanban(ctx.Request().Context(), user)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, http.StatusOK, columns)
}

// Calendar принимает окно ?start=YYYY-MM-DD&end=YYYY-MM-DD;
// по умолчанию отдаются ближайшие 30 дней.
func (c *RequestController) Calendar(ctx echo.Context) error {
	user, ok := middleware.AuthUserFromEcho(ctx)
	if !ok {
		return utils.ErrorResponse(ctx, apperrors.ErrUnauthorized, c.logger)
	}

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 0, 30).Add(24*time.Hour - time.Second)

	if v := ctx.QueryParam("start"); v != "" {
		parsed, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			return utils.ErrorResponse(ctx, apperrors.BadRequest("некорректная дата начала окна", err), c.logger)
		}
		start = parsed
	}
	if v := ctx.QueryParam("end"); v != "" {
		parsed, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			return utils.ErrorResponse(ctx, apperrors.BadRequest("некорректная дата конца окна", err), c.logger)
		}
		end = parsed.Add(24*time.Hour - time.Second)
	}

	events, err := c.requestService.Calendar(ctx.Request().Context(), user, start, end)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, http.StatusOK, events)
}
