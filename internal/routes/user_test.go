package routes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"maintenance-system/internal/controllers"
	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/repositories"
	"maintenance-system/pkg/middleware"
	"maintenance-system/pkg/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubUserRepo struct {
	user *entities.User
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uint64) (*entities.User, error) {
	return s.user, nil
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return nil, errors.New("не реализовано")
}

func (s *stubUserRepo) Create(ctx context.Context, user *entities.User) (uint64, error) {
	return 0, errors.New("не реализовано")
}

func (s *stubUserRepo) Update(ctx context.Context, user *entities.User) error {
	return errors.New("не реализовано")
}

func (s *stubUserRepo) Delete(ctx context.Context, id uint64) error {
	return errors.New("не реализовано")
}

func (s *stubUserRepo) List(ctx context.Context, filter repositories.UserFilter) ([]dto.UserDTO, uint64, error) {
	return nil, 0, errors.New("не реализовано")
}

func (s *stubUserRepo) ListTechnicians(ctx context.Context) ([]dto.TechnicianDTO, error) {
	return nil, errors.New("не реализовано")
}

func (s *stubUserRepo) SetTeam(ctx context.Context, userID uint64, teamID *uint64) error {
	return errors.New("не реализовано")
}

type stubUserService struct{}

func (s *stubUserService) GetByID(ctx context.Context, id uint64) (*dto.UserPublicDTO, error) {
	return nil, errors.New("не реализовано")
}

func (s *stubUserService) Create(ctx context.Context, payload dto.CreateUserDTO) (*dto.UserPublicDTO, error) {
	return nil, errors.New("не реализовано")
}

func (s *stubUserService) Update(ctx context.Context, id uint64, payload dto.UpdateUserDTO) (*dto.UserPublicDTO, error) {
	return nil, errors.New("не реализовано")
}

func (s *stubUserService) Delete(ctx context.Context, id uint64) error {
	return errors.New("не реализовано")
}

func (s *stubUserService) List(ctx context.Context, filter repositories.UserFilter) ([]dto.UserDTO, uint64, error) {
	return nil, 0, errors.New("не реализовано")
}

func (s *stubUserService) ListTechnicians(ctx context.Context) ([]dto.TechnicianDTO, error) {
	return []dto.TechnicianDTO{{ID: 3, Name: "Сидоров Антон"}}, nil
}

func newUserTestServer(t *testing.T, role entities.Role) (*echo.Echo, string) {
	t.Helper()

	jwtSvc := service.NewJWTService("access", "refresh", time.Minute, time.Hour)
	userRepo := &stubUserRepo{user: &entities.User{ID: 5, Name: "Обычный Пользователь", Role: role}}
	authMW := middleware.NewAuthMiddleware(jwtSvc, userRepo, zap.NewNop())
	userCtrl := controllers.NewUserController(&stubUserService{}, zap.NewNop())

	e := echo.New()
	api := e.Group("/api")
	secure := api.Group("", authMW.Authenticate)
	runUserRouter(secure, userCtrl, authMW)

	access, _, _, err := jwtSvc.GenerateTokens(5)
	require.NoError(t, err)
	return e, access
}

// Справочник техников открыт любому аутентифицированному пользователю,
// он нужен форме заявки независимо от роли её автора.
func TestUserRoutes_TechniciansOpenToAnyAuthenticated(t *testing.T) {
	e, access := newUserTestServer(t, entities.RoleUser)

	req := httptest.NewRequest(http.MethodGet, "/api/users/technicians", nil)
	req.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: access})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "Сидоров Антон"))
}

func TestUserRoutes_TechniciansRequireAuth(t *testing.T) {
	e, _ := newUserTestServer(t, entities.RoleUser)

	req := httptest.NewRequest(http.MethodGet, "/api/users/technicians", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// Административный CRUD при этом остаётся закрытым для остальных ролей.
func TestUserRoutes_ListStillAdminOnly(t *testing.T) {
	e, access := newUserTestServer(t, entities.RoleUser)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: access})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
