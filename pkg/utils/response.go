package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	apperrors "maintenance-system/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Контракт ответа API:
//   успех:  {"status":"success","data":{...}[,"pagination":{...}]}
//   ошибка: {"status":"fail"|"error","message":"..."} - fail для 4xx, error для 5xx.

type Pagination struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Total uint64 `json:"total"`
	Pages int    `json:"pages"`
}

type successEnvelope struct {
	Status     string      `json:"status"`
	Data       interface{} `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type errorEnvelope struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func NewPagination(page, limit int, total uint64) *Pagination {
	pages := 0
	if limit > 0 {
		pages = int((total + uint64(limit) - 1) / uint64(limit))
	}
	return &Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

func SuccessResponse(ctx echo.Context, code int, data interface{}) error {
	return ctx.JSON(code, &successEnvelope{Status: "success", Data: data})
}

func SuccessListResponse(ctx echo.Context, data interface{}, pagination *Pagination) error {
	return ctx.JSON(http.StatusOK, &successEnvelope{Status: "success", Data: data, Pagination: pagination})
}

// DeletedResponse - по контракту удаление возвращает 204 без тела.
func DeletedResponse(ctx echo.Context) error {
	return ctx.NoContent(http.StatusNoContent)
}

// sentinelCodes - соответствие базовых ошибок HTTP-статусам.
var sentinelCodes = map[error]int{
	apperrors.ErrNotFound:           http.StatusNotFound,
	apperrors.ErrConflict:           http.StatusBadRequest,
	apperrors.ErrUnauthorized:       http.StatusUnauthorized,
	apperrors.ErrInvalidCredentials: http.StatusUnauthorized,
	apperrors.ErrInvalidToken:       http.StatusUnauthorized,
	apperrors.ErrTokenExpired:       http.StatusUnauthorized,
	apperrors.ErrTokenIsNotRefresh:  http.StatusUnauthorized,
	apperrors.ErrTokenIsNotAccess:   http.StatusUnauthorized,
	apperrors.ErrForbidden:          http.StatusForbidden,
}

func statusWord(code int) string {
	if code >= http.StatusInternalServerError {
		return "error"
	}
	return "fail"
}

func ErrorResponse(ctx echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Err != nil {
			logger.Error("HTTP Error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
			)
		}
		return ctx.JSON(httpErr.Code, &errorEnvelope{
			Status:  statusWord(httpErr.Code),
			Message: httpErr.Message,
			Details: httpErr.Details,
		})
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("поле '%s' не прошло проверку '%s'", e.Field(), e.Tag()))
		}
		return ctx.JSON(http.StatusBadRequest, &errorEnvelope{
			Status:  "fail",
			Message: "Ошибка валидации: " + strings.Join(msgs, "; "),
		})
	}

	for sentinel, code := range sentinelCodes {
		if errors.Is(err, sentinel) {
			return ctx.JSON(code, &errorEnvelope{Status: statusWord(code), Message: sentinel.Error()})
		}
	}

	// Неожиданные ошибки наружу не раскрываем.
	logger.Error("Unexpected Error", zap.Error(err))
	return ctx.JSON(http.StatusInternalServerError, &errorEnvelope{
		Status:  "error",
		Message: "Внутренняя ошибка сервера",
	})
}
