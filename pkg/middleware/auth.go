package middleware

import (
	"context"
	"errors"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/repositories"
	"maintenance-system/pkg/contextkeys"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/service"
	"maintenance-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const AccessTokenCookie = "accessToken"

type AuthMiddleware struct {
	jwtService service.JWTService
	userRepo   repositories.UserRepositoryInterface
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtService service.JWTService, userRepo repositories.UserRepositoryInterface, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService, userRepo: userRepo, logger: logger}
}

// Authenticate читает access-токен из cookie, проверяет его и кладёт
// *dto.AuthUser в контекст запроса. Пользователь перечитывается из БД,
// чтобы смена роли или команды действовала сразу, без перевыпуска токена.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(AccessTokenCookie)
		if err != nil || cookie.Value == "" {
			return utils.ErrorResponse(c, apperrors.ErrUnauthorized, m.logger)
		}

		claims, err := m.jwtService.ValidateAccessToken(cookie.Value)
		if err != nil {
			if errors.Is(err, apperrors.ErrTokenExpired) {
				return utils.ErrorResponse(c, apperrors.ErrTokenExpired, m.logger)
			}
			return utils.ErrorResponse(c, apperrors.ErrInvalidToken, m.logger)
		}

		user, err := m.userRepo.FindByID(c.Request().Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return utils.ErrorResponse(c, apperrors.ErrUnauthorized, m.logger)
			}
			return utils.ErrorResponse(c, err, m.logger)
		}

		authUser := &dto.AuthUser{
			ID:      user.ID,
			Name:    user.Name,
			Email:   user.Email,
			Role:    user.Role,
			Company: user.Company,
			TeamID:  user.TeamID,
		}

		ctx := context.WithValue(c.Request().Context(), contextkeys.AuthUserKey, authUser)
		c.SetRequest(c.Request().WithContext(ctx))
		c.Set(string(contextkeys.AuthUserKey), authUser)

		return next(c)
	}
}

// Authorize пропускает только перечисленные роли. Вешается после Authenticate.
func (m *AuthMiddleware) Authorize(roles ...entities.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := AuthUserFromEcho(c)
			if !ok {
				return utils.ErrorResponse(c, apperrors.ErrUnauthorized, m.logger)
			}
			for _, role := range roles {
				if user.Role == role {
					return next(c)
				}
			}
			return utils.ErrorResponse(c, apperrors.ErrForbidden, m.logger)
		}
	}
}

// AuthUserFromEcho достаёт аутентифицированного пользователя из echo.Context.
func AuthUserFromEcho(c echo.Context) (*dto.AuthUser, bool) {
	user, ok := c.Get(string(contextkeys.AuthUserKey)).(*dto.AuthUser)
	return user, ok
}

// AuthUserFromContext достаёт пользователя из context.Context запроса.
func AuthUserFromContext(ctx context.Context) (*dto.AuthUser, bool) {
	user, ok := ctx.Value(contextkeys.AuthUserKey).(*dto.AuthUser)
	return user, ok
}
