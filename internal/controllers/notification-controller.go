package controllers

import (
	"net/http"

	"maintenance-system/internal/repositories"
	"maintenance-system/internal/services"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/middleware"
	"maintenance-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type NotificationController struct {
	notificationService services.NotificationServiceInterface
	logger              *zap.Logger
}

func NewNotificationController(notificationService services.NotificationServiceInterface, logger *zap.Logger) *NotificationController {
	return &NotificationController{notificationService: notificationService, logger: logger}
}

func (c *NotificationController) List(ctx echo.Context) error {
	user, ok := middleware.AuthUserFromEcho(ctx)
	if !ok {
		return utils.ErrorResponse(ctx, apperrors.ErrUnauthorized, c.logger)
	}

	params := utils.ParseListParams(ctx.QueryParams())
	filter := repositories.NotificationFilter{
		UnreadOnly: ctx.QueryParam("unread") == "true",
		Limit:      params.Limit,
		Offset:     params.Offset,
	}

	items, total, err := c.notificationService.ListMine(ctx.Request().Context(), user, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessListResponse(ctx, items, utils.NewPagination(params.Page, params.Limit, total))
}

func (c *NotificationController) UnreadCount(ctx echo.Context) error {
	user, ok := middleware.AuthUserFromEcho(ctx)
	if !ok {
		return utils.ErrorResponse(ctx, apperrors.ErrUnauthorized, c.logger)
	}

	count, err := c.notificationService.CountUnread(ctx.Request().Context(), user)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, http.StatusOK, echo.Map{"unread": count})
}

func (c *NotificationController) MarkRead(ctx echo.Context) error {
	user, ok := middleware.AuthUserFromEcho(ctx)
	if !ok {
		return utils.ErrorResponse(ctx, apperrors.ErrUnauthorized, c.logger)
	}
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.notificationService.MarkRead(ctx.Request().Context(), user, id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, http.StatusOK, echo.Map{"read": true})
}

func (c *NotificationController) MarkAllRead(ctx echo.Context) error {
	user, ok := middleware.AuthUserFromEcho(ctx)
	if !ok {
		return utils.ErrorResponse(ctx, apperrors.ErrUnauthorized, c.logger)
	}

	if err := c.notificationService.MarkAllRead(ctx.Request().Context(), user); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, http.StatusOK, echo.Map{"read": true})
}

func (c *NotificationController) Delete(ctx echo.Context) error {
	user, ok := middleware.AuthUserFromEcho(ctx)
	if !ok {
		return utils.ErrorResponse(ctx, apperrors.ErrUnauthorized, c.logger)
	}
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.notificationService.Delete(ctx.Request().Context(), user, id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.DeletedResponse(ctx)
}

func (c *NotificationController) DeleteAll(ctx echo.Context) error {
	user, ok := middleware.AuthUserFromEcho(ctx)
	if !ok {
		return utils.ErrorResponse(ctx, apperrors.ErrUnauthorized, c.logger)
	}

	if err := c.notificationService.DeleteAll(ctx.Request().Context(), user); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.DeletedResponse(ctx)
}
