package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/repositories"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/service"
	"maintenance-system/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	refreshJTIKeyPrefix = "refresh_jti:"
	resetTokenKeyPrefix = "reset_token:"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, payload dto.RegisterDTO) (*dto.UserPublicDTO, string, string, error)
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.UserPublicDTO, string, string, error)
	RefreshTokens(ctx context.Context, refreshToken string) (string, string, error)
	Logout(ctx context.Context, userID uint64) error
	ForgotPassword(ctx context.Context, payload dto.ForgotPasswordDTO) error
}

type AuthService struct {
	userRepo   repositories.UserRepositoryInterface
	cacheRepo  repositories.CacheRepositoryInterface
	jwtService service.JWTService
	bcryptCost int
	resetTTL   time.Duration
	logger     *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtService service.JWTService,
	bcryptCost int,
	resetTTL time.Duration,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:   userRepo,
		cacheRepo:  cacheRepo,
		jwtService: jwtService,
		bcryptCost: bcryptCost,
		resetTTL:   resetTTL,
		logger:     logger,
	}
}

func refreshJTIKey(userID uint64) string {
	return fmt.Sprintf("%s%d", refreshJTIKeyPrefix, userID)
}

// Register создаёт пользователя и сразу выдаёт пару токенов. Роли ADMIN и
// MANAGER при самостоятельной регистрации понижаются до USER.
func (s *AuthService) Register(ctx context.Context, payload dto.RegisterDTO) (*dto.UserPublicDTO, string, string, error) {
	if _, err := s.userRepo.FindByEmail(ctx, payload.Email); err == nil {
		return nil, "", "", apperrors.BadRequest("пользователь с таким email уже существует", nil)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, "", "", err
	}

	role := entities.Role(payload.Role)
	if !role.Valid() || !role.AllowedAtRegistration() {
		role = entities.RoleUser
	}

	hash, err := utils.HashPassword(payload.Password, s.bcryptCost)
	if err != nil {
		return nil, "", "", err
	}

	user := &entities.User{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: hash,
		Role:     role,
		Company:  payload.Company,
	}

	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, "", "", err
	}
	user.ID = id

	access, refresh, err := s.issueTokens(ctx, id)
	if err != nil {
		return nil, "", "", err
	}

	s.logger.Info("Зарегистрирован новый пользователь",
		zap.Uint64("userId", id),
		zap.String("role", string(role)),
	)
	return dto.NewUserPublicDTO(user), access, refresh, nil
}

// Login проверяет учётные данные. Сообщение об ошибке одинаковое и для
// несуществующего email, и для неверного пароля.
func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.UserPublicDTO, string, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", "", apperrors.ErrInvalidCredentials
		}
		return nil, "", "", err
	}

	if err := utils.ComparePasswords(user.Password, payload.Password); err != nil {
		return nil, "", "", apperrors.ErrInvalidCredentials
	}

	access, refresh, err := s.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, "", "", err
	}
	return dto.NewUserPublicDTO(user), access, refresh, nil
}

// RefreshTokens ротирует пару: refresh-токен одноразовый, его JTI сверяется
// с сохранённым и заменяется новым.
func (s *AuthService) RefreshTokens(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", "", err
	}

	storedJTI, err := s.cacheRepo.Get(ctx, refreshJTIKey(claims.UserID))
	if err != nil || storedJTI != claims.ID {
		return "", "", apperrors.ErrInvalidToken
	}

	// Пользователь мог быть удалён после выдачи токена.
	if _, err := s.userRepo.FindByID(ctx, claims.UserID); err != nil {
		return "", "", apperrors.ErrInvalidToken
	}

	return s.issueTokens(ctx, claims.UserID)
}

func (s *AuthService) Logout(ctx context.Context, userID uint64) error {
	return s.cacheRepo.Del(ctx, refreshJTIKey(userID))
}

// ForgotPassword всегда отвечает одинаково, существование email не раскрывается.
// Токен сброса кладётся в Redis; отправка письма пока не подключена.
func (s *AuthService) ForgotPassword(ctx context.Context, payload dto.ForgotPasswordDTO) error {
	user, err := s.userRepo.FindByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}

	token := uuid.New().String()
	key := fmt.Sprintf("%s%s", resetTokenKeyPrefix, token)
	if err := s.cacheRepo.Set(ctx, key, user.ID, s.resetTTL); err != nil {
		return err
	}

	s.logger.Info("Выдан токен сброса пароля",
		zap.Uint64("userId", user.ID),
		zap.String("token", token),
	)
	return nil
}

func (s *AuthService) issueTokens(ctx context.Context, userID uint64) (string, string, error) {
	access, refresh, refreshJTI, err := s.jwtService.GenerateTokens(userID)
	if err != nil {
		return "", "", err
	}
	if err := s.cacheRepo.Set(ctx, refreshJTIKey(userID), refreshJTI, s.jwtService.GetRefreshTokenTTL()); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
