package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"maintenance-system/internal/dto"
	"maintenance-system/pkg/config"
	"maintenance-system/pkg/middleware"
	"maintenance-system/pkg/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAuthService struct {
	logoutFn func(userID uint64) error
}

func (f *fakeAuthService) Register(ctx context.Context, payload dto.RegisterDTO) (*dto.UserPublicDTO, string, string, error) {
	return nil, "", "", errors.New("не реализовано")
}

func (f *fakeAuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.UserPublicDTO, string, string, error) {
	return nil, "", "", errors.New("не реализовано")
}

func (f *fakeAuthService) RefreshTokens(ctx context.Context, refreshToken string) (string, string, error) {
	return "", "", errors.New("не реализовано")
}

func (f *fakeAuthService) Logout(ctx context.Context, userID uint64) error {
	if f.logoutFn != nil {
		return f.logoutFn(userID)
	}
	return nil
}

func (f *fakeAuthService) ForgotPassword(ctx context.Context, payload dto.ForgotPasswordDTO) error {
	return nil
}

func newLogoutController(authSvc *fakeAuthService, jwtSvc service.JWTService) *AuthController {
	return NewAuthController(authSvc, jwtSvc, config.CookieConfig{SameSite: "lax"}, zap.NewNop())
}

func expiredAuthCookies(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	expired := map[string]bool{}
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.AccessTokenCookie || c.Name == refreshTokenCookie {
			assert.Empty(t, c.Value)
			assert.Negative(t, c.MaxAge)
			expired[c.Name] = true
		}
	}
	assert.Len(t, expired, 2)
}

// Выход без действующего токена всё равно очищает куки и отвечает 200.
func TestAuthController_Logout_WithoutToken(t *testing.T) {
	logoutCalled := false
	authSvc := &fakeAuthService{logoutFn: func(userID uint64) error {
		logoutCalled = true
		return nil
	}}
	jwtSvc := service.NewJWTService("access", "refresh", time.Minute, time.Hour)
	ctrl := newLogoutController(authSvc, jwtSvc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, ctrl.Logout(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, logoutCalled)
	expiredAuthCookies(t, rec)
}

// С действующим access-токеном выход отзывает refresh JTI владельца.
func TestAuthController_Logout_RevokesSession(t *testing.T) {
	var loggedOut uint64
	authSvc := &fakeAuthService{logoutFn: func(userID uint64) error {
		loggedOut = userID
		return nil
	}}
	jwtSvc := service.NewJWTService("access", "refresh", time.Minute, time.Hour)
	ctrl := newLogoutController(authSvc, jwtSvc)

	access, _, _, err := jwtSvc.GenerateTokens(42)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: access})
	rec := httptest.NewRecorder()

	require.NoError(t, ctrl.Logout(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(42), loggedOut)
	expiredAuthCookies(t, rec)
}

// Ошибка Redis при отзыве сессии не должна ломать выход.
func TestAuthController_Logout_RevocationFailureStillSucceeds(t *testing.T) {
	authSvc := &fakeAuthService{logoutFn: func(userID uint64) error {
		return errors.New("redis недоступен")
	}}
	jwtSvc := service.NewJWTService("access", "refresh", time.Minute, time.Hour)
	ctrl := newLogoutController(authSvc, jwtSvc)

	access, _, _, err := jwtSvc.GenerateTokens(7)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: access})
	rec := httptest.NewRecorder()

	require.NoError(t, ctrl.Logout(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "loggedOut"))
	expiredAuthCookies(t, rec)
}
