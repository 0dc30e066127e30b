package services

import (
	"context"
	"testing"
	"time"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/service"
	"maintenance-system/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthService(userRepo *fakeUserRepo, cache *fakeCacheRepo) AuthServiceInterface {
	jwtSvc := service.NewJWTService("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
	return NewAuthService(userRepo, cache, jwtSvc, 12, 15*time.Minute, zap.NewNop())
}

func TestAuthService_Register_EmailConflict(t *testing.T) {
	userRepo := &fakeUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*entities.User, error) {
			return &entities.User{ID: 1, Email: email}, nil
		},
	}

	svc := newAuthService(userRepo, newFakeCacheRepo())

	_, _, _, err := svc.Register(context.Background(), dto.RegisterDTO{
		Name:     "Петрова Анна",
		Email:    "user@maintenance.local",
		Password: "secret123",
	})
	httpErr := requireBadRequest(t, err)
	assert.Contains(t, httpErr.Message, "уже существует")
}

// Привилегированные роли при саморегистрации понижаются до USER,
// TECHNICIAN регистрироваться может.
func TestAuthService_Register_RoleDowngrade(t *testing.T) {
	cases := []struct {
		requested string
		want      entities.Role
	}{
		{"ADMIN", entities.RoleUser},
		{"MANAGER", entities.RoleUser},
		{"TECHNICIAN", entities.RoleTechnician},
		{"USER", entities.RoleUser},
		{"", entities.RoleUser},
		{"SUPERVISOR", entities.RoleUser},
	}

	for _, tc := range cases {
		var created *entities.User
		userRepo := &fakeUserRepo{
			findByEmailFn: func(ctx context.Context, email string) (*entities.User, error) {
				return nil, apperrors.ErrNotFound
			},
			createFn: func(ctx context.Context, user *entities.User) (uint64, error) {
				created = user
				return 1, nil
			},
		}

		svc := newAuthService(userRepo, newFakeCacheRepo())

		public, _, _, err := svc.Register(context.Background(), dto.RegisterDTO{
			Name:     "Петрова Анна",
			Email:    "user@maintenance.local",
			Password: "secret123",
			Role:     tc.requested,
		})
		require.NoError(t, err, "роль %q", tc.requested)
		assert.Equalf(t, tc.want, created.Role, "роль %q", tc.requested)
		assert.Equal(t, tc.want, public.Role)
	}
}

func TestAuthService_Register_PasswordStoredHashed(t *testing.T) {
	var created *entities.User
	userRepo := &fakeUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*entities.User, error) {
			return nil, apperrors.ErrNotFound
		},
		createFn: func(ctx context.Context, user *entities.User) (uint64, error) {
			created = user
			return 1, nil
		},
	}

	svc := newAuthService(userRepo, newFakeCacheRepo())

	_, access, refresh, err := svc.Register(context.Background(), dto.RegisterDTO{
		Name:     "Петрова Анна",
		Email:    "user@maintenance.local",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)

	assert.NotEqual(t, "secret123", created.Password)
	assert.NoError(t, utils.ComparePasswords(created.Password, "secret123"))
}

// Неизвестный email и неверный пароль дают одну и ту же ошибку,
// существование аккаунта не раскрывается.
func TestAuthService_Login_IdenticalErrors(t *testing.T) {
	hash, err := utils.HashPassword("correct-password", 12)
	require.NoError(t, err)

	userRepo := &fakeUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*entities.User, error) {
			if email == "user@maintenance.local" {
				return &entities.User{ID: 1, Email: email, Password: hash}, nil
			}
			return nil, apperrors.ErrNotFound
		},
	}

	svc := newAuthService(userRepo, newFakeCacheRepo())

	_, _, _, errUnknown := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "ghost@maintenance.local",
		Password: "whatever",
	})
	_, _, _, errWrongPass := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "user@maintenance.local",
		Password: "wrong-password",
	})

	assert.ErrorIs(t, errUnknown, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPass, apperrors.ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
}

func TestAuthService_Login_Success(t *testing.T) {
	hash, err := utils.HashPassword("correct-password", 12)
	require.NoError(t, err)

	userRepo := &fakeUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*entities.User, error) {
			return &entities.User{ID: 1, Name: "Петрова Анна", Email: email, Password: hash, Role: entities.RoleUser}, nil
		},
	}
	cache := newFakeCacheRepo()

	svc := newAuthService(userRepo, cache)

	public, access, refresh, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "user@maintenance.local",
		Password: "correct-password",
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), public.ID)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)

	// JTI refresh-токена сохранён для последующей сверки.
	_, ok := cache.values["refresh_jti:1"]
	assert.True(t, ok)
}

// Refresh-токен одноразовый: после успешной ротации старый токен отвергается.
func TestAuthService_RefreshTokens_Rotation(t *testing.T) {
	hash, err := utils.HashPassword("correct-password", 12)
	require.NoError(t, err)

	userRepo := &fakeUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*entities.User, error) {
			return &entities.User{ID: 1, Email: email, Password: hash}, nil
		},
		findByIDFn: func(ctx context.Context, id uint64) (*entities.User, error) {
			return &entities.User{ID: id}, nil
		},
	}
	cache := newFakeCacheRepo()
	svc := newAuthService(userRepo, cache)

	_, _, oldRefresh, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "user@maintenance.local",
		Password: "correct-password",
	})
	require.NoError(t, err)

	newAccess, newRefresh, err := svc.RefreshTokens(context.Background(), oldRefresh)
	require.NoError(t, err)
	assert.NotEmpty(t, newAccess)
	assert.NotEmpty(t, newRefresh)

	_, _, err = svc.RefreshTokens(context.Background(), oldRefresh)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	_, _, err = svc.RefreshTokens(context.Background(), newRefresh)
	assert.NoError(t, err)
}

func TestAuthService_RefreshTokens_DeletedUser(t *testing.T) {
	hash, err := utils.HashPassword("correct-password", 12)
	require.NoError(t, err)

	userRepo := &fakeUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*entities.User, error) {
			return &entities.User{ID: 1, Email: email, Password: hash}, nil
		},
		findByIDFn: func(ctx context.Context, id uint64) (*entities.User, error) {
			return nil, apperrors.ErrNotFound
		},
	}
	svc := newAuthService(userRepo, newFakeCacheRepo())

	_, _, refresh, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "user@maintenance.local",
		Password: "correct-password",
	})
	require.NoError(t, err)

	_, _, err = svc.RefreshTokens(context.Background(), refresh)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestAuthService_Logout_InvalidatesRefresh(t *testing.T) {
	hash, err := utils.HashPassword("correct-password", 12)
	require.NoError(t, err)

	userRepo := &fakeUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*entities.User, error) {
			return &entities.User{ID: 1, Email: email, Password: hash}, nil
		},
		findByIDFn: func(ctx context.Context, id uint64) (*entities.User, error) {
			return &entities.User{ID: id}, nil
		},
	}
	cache := newFakeCacheRepo()
	svc := newAuthService(userRepo, cache)

	_, _, refresh, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "user@maintenance.local",
		Password: "correct-password",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), 1))

	_, _, err = svc.RefreshTokens(context.Background(), refresh)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

// Ответ одинаковый для существующего и несуществующего email.
func TestAuthService_ForgotPassword_NoAccountLeak(t *testing.T) {
	userRepo := &fakeUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*entities.User, error) {
			if email == "user@maintenance.local" {
				return &entities.User{ID: 1, Email: email}, nil
			}
			return nil, apperrors.ErrNotFound
		},
	}
	cache := newFakeCacheRepo()
	svc := newAuthService(userRepo, cache)

	assert.NoError(t, svc.ForgotPassword(context.Background(), dto.ForgotPasswordDTO{Email: "ghost@maintenance.local"}))
	assert.Empty(t, cache.values)

	assert.NoError(t, svc.ForgotPassword(context.Background(), dto.ForgotPasswordDTO{Email: "user@maintenance.local"}))
	assert.Len(t, cache.values, 1)
	for key := range cache.values {
		assert.Contains(t, key, "reset_token:")
	}
}
