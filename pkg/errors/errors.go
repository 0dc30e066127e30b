package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// JWT и токены
	ErrInvalidSigningMethod = errors.New("неверный метод подписи токена")
	ErrInvalidToken         = errors.New("недопустимый токен")
	ErrTokenExpired         = errors.New("срок действия сессии истёк, войдите заново")
	ErrTokenIsNotRefresh    = errors.New("токен не является refresh-токеном")
	ErrTokenIsNotAccess     = errors.New("токен не является access-токеном")

	// Авторизация
	ErrInvalidCredentials = errors.New("неверный email или пароль")
	ErrUnauthorized       = errors.New("вы не авторизованы")
	ErrForbidden          = errors.New("доступ запрещён")

	// Общие
	ErrNotFound = errors.New("запись не найдена")
	ErrConflict = errors.New("запись с таким значением уже существует")
)

// HttpError несёт HTTP-статус, стабильное сообщение для клиента и внутреннюю
// причину для логов. Details попадают в тело ответа, Context только в лог.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error {
	return e.Err
}

func NewHttpError(code int, message string, err error, details interface{}) *HttpError {
	return &HttpError{
		Code:    code,
		Message: message,
		Err:     err,
		Details: details,
	}
}

func BadRequest(message string, err error) *HttpError {
	return NewHttpError(http.StatusBadRequest, message, err, nil)
}

func Unauthorized(message string, err error) *HttpError {
	return NewHttpError(http.StatusUnauthorized, message, err, nil)
}

func Forbidden(message string) *HttpError {
	return NewHttpError(http.StatusForbidden, message, nil, nil)
}

func NotFound(message string) *HttpError {
	return NewHttpError(http.StatusNotFound, message, nil, nil)
}
