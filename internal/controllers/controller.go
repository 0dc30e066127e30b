package controllers

import (
	"strconv"

	apperrors "maintenance-system/pkg/errors"

	"github.com/labstack/echo/v4"
)

// parseIDParam читает числовой path-параметр; нечисловое значение - 400.
func parseIDParam(ctx echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.BadRequest("некорректный идентификатор в пути", err)
	}
	return id, nil
}

func parseUintQuery(ctx echo.Context, name string) uint64 {
	v, err := strconv.ParseUint(ctx.QueryParam(name), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseIntQuery(ctx echo.Context, name string) int {
	v, err := strconv.Atoi(ctx.QueryParam(name))
	if err != nil {
		return 0
	}
	return v
}
