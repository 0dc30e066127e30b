package controllers

import (
	"net/http"
	"time"

	"maintenance-system/internal/services"
	"maintenance-system/pkg/config"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/middleware"
	"maintenance-system/pkg/service"
	"maintenance-system/pkg/utils"

	"maintenance-system/internal/dto"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const refreshTokenCookie = "refreshToken"

type AuthController struct {
	authService services.AuthServiceInterface
	jwtService  service.JWTService
	cookieCfg   config.CookieConfig
	logger      *zap.Logger
}

func NewAuthController(authService services.AuthServiceInterface, jwtService service.JWTService, cookieCfg config.CookieConfig, logger *zap.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		jwtService:  jwtService,
		cookieCfg:   cookieCfg,
		logger:      logger,
	}
}

func (c *AuthController) sameSite() http.SameSite {
	switch c.cookieCfg.SameSite {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

func (c *AuthController) authCookie(name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   c.cookieCfg.Secure,
		SameSite: c.sameSite(),
	}
}

func (c *AuthController) setAuthCookies(ctx echo.Context, access, refresh string) {
	ctx.SetCookie(c.authCookie(middleware.AccessTokenCookie, access, c.jwtService.GetAccessTokenTTL()))
	ctx.SetCookie(c.authCookie(refreshTokenCookie, refresh, c.jwtService.GetRefreshTokenTTL()))
}

func (c *AuthController) clearAuthCookies(ctx echo.Context) {
	ctx.SetCookie(c.authCookie(middleware.AccessTokenCookie, "", -time.Second))
	ctx.SetCookie(c.authCookie(refreshTokenCookie, "", -time.Second))
}

func (c *AuthController) Register(ctx echo.Context) error {
	var payload dto.RegisterDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.BadRequest("некорректное тело запроса", err), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	user, access, refresh, err := c.authService.Register(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	c.setAuthCookies(ctx, access, refresh)
	return utils.SuccessResponse(ctx, http.StatusCreated, user)
}

func (c *AuthController) Login(ctx echo.Context) error {
	var payload dto.LoginDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.BadRequest("некорректное тело запроса", err), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	user, access, refresh, err := c.authService.Login(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	c.setAuthCookies(ctx, access, refresh)
	return utils.SuccessResponse(ctx, http.StatusOK, user)
}

func (c *AuthController) Refresh(ctx echo.Context) error {
	cookie, err := ctx.Cookie(refreshTokenCookie)
	if err != nil || cookie.Value == "" {
		return utils.ErrorResponse(ctx, apperrors.ErrUnauthorized, c.logger)
	}

	access, refresh, err := c.authService.RefreshTokens(ctx.Request().Context(), cookie.Value)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	c.setAuthCookies(ctx, access, refresh)
	return utils.SuccessResponse(ctx, http.StatusOK, echo.Map{"refreshed": true})
}

// Logout не требует аутентификации: куки очищаются всегда, а отзыв
// refresh JTI выполняется по мере возможности.
func (c *AuthController) Logout(ctx echo.Context) error {
	if cookie, err := ctx.Cookie(middleware.AccessTokenCookie); err == nil && cookie.Value != "" {
		if claims, err := c.jwtService.ValidateAccessToken(cookie.Value); err == nil {
			if err := c.authService.Logout(ctx.Request().Context(), claims.UserID); err != nil {
				c.logger.Warn("Не удалось отозвать refresh-токен при выходе",
					zap.Uint64("userId", claims.UserID), zap.Error(err))
			}
		}
	}
	c.clearAuthCookies(ctx)
	return utils.SuccessResponse(ctx, http.StatusOK, echo.Map{"loggedOut": true})
}

// Me возвращает текущего аутентифицированного пользователя.
func (c *AuthController) Me(ctx echo.Context) error {
	user, ok := middleware.AuthUserFromEcho(ctx)
	if !ok {
		return utils.ErrorResponse(ctx, apperrors.ErrUnauthorized, c.logger)
	}
	return utils.SuccessResponse(ctx, http.StatusOK, user)
}

// ForgotPassword всегда отвечает одинаково, независимо от существования email.
func (c *AuthController) ForgotPassword(ctx echo.Context) error {
	var payload dto.ForgotPasswordDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.BadRequest("некорректное тело запроса", err), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.authService.ForgotPassword(ctx.Request().Context(), payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, http.StatusOK, echo.Map{
		"message": "Если такой email зарегистрирован, инструкция по сбросу отправлена",
	})
}
