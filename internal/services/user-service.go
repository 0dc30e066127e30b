package services

import (
	"context"
	"errors"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/repositories"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/utils"
)

type UserServiceInterface interface {
	GetByID(ctx context.Context, id uint64) (*dto.UserPublicDTO, error)
	Create(ctx context.Context, payload dto.CreateUserDTO) (*dto.UserPublicDTO, error)
	Update(ctx context.Context, id uint64, payload dto.UpdateUserDTO) (*dto.UserPublicDTO, error)
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context, filter repositories.UserFilter) ([]dto.UserDTO, uint64, error)
	ListTechnicians(ctx context.Context) ([]dto.TechnicianDTO, error)
}

type UserService struct {
	userRepo   repositories.UserRepositoryInterface
	teamRepo   repositories.TeamRepositoryInterface
	bcryptCost int
}

func NewUserService(userRepo repositories.UserRepositoryInterface, teamRepo repositories.TeamRepositoryInterface, bcryptCost int) UserServiceInterface {
	return &UserService{userRepo: userRepo, teamRepo: teamRepo, bcryptCost: bcryptCost}
}

func (s *UserService) GetByID(ctx context.Context, id uint64) (*dto.UserPublicDTO, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewUserPublicDTO(user), nil
}

func (s *UserService) Create(ctx context.Context, payload dto.CreateUserDTO) (*dto.UserPublicDTO, error) {
	if _, err := s.userRepo.FindByEmail(ctx, payload.Email); err == nil {
		return nil, apperrors.BadRequest("пользователь с таким email уже существует", nil)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	role := entities.Role(payload.Role)
	if payload.Role == "" {
		role = entities.RoleUser
	}

	var teamID *uint64
	if payload.TeamID.Valid {
		if _, err := s.teamRepo.FindByID(ctx, payload.TeamID.Uint64); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.BadRequest("указанная команда не найдена", nil)
			}
			return nil, err
		}
		teamID = &payload.TeamID.Uint64
	}

	hash, err := utils.HashPassword(payload.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: hash,
		Role:     role,
		Company:  payload.Company,
		TeamID:   teamID,
	}

	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id
	return dto.NewUserPublicDTO(user), nil
}

func (s *UserService) Update(ctx context.Context, id uint64, payload dto.UpdateUserDTO) (*dto.UserPublicDTO, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Email != "" && payload.Email != user.Email {
		if _, err := s.userRepo.FindByEmail(ctx, payload.Email); err == nil {
			return nil, apperrors.BadRequest("пользователь с таким email уже существует", nil)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		user.Email = payload.Email
	}
	if payload.Name != "" {
		user.Name = payload.Name
	}
	if payload.Role != "" {
		user.Role = entities.Role(payload.Role)
	}
	if payload.Company != "" {
		user.Company = payload.Company
	}
	if payload.TeamID.Valid {
		if _, err := s.teamRepo.FindByID(ctx, payload.TeamID.Uint64); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.BadRequest("указанная команда не найдена", nil)
			}
			return nil, err
		}
		user.TeamID = &payload.TeamID.Uint64
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return dto.NewUserPublicDTO(user), nil
}

func (s *UserService) Delete(ctx context.Context, id uint64) error {
	return s.userRepo.Delete(ctx, id)
}

func (s *UserService) List(ctx context.Context, filter repositories.UserFilter) ([]dto.UserDTO, uint64, error) {
	return s.userRepo.List(ctx, filter)
}

func (s *UserService) ListTechnicians(ctx context.Context) ([]dto.TechnicianDTO, error) {
	return s.userRepo.ListTechnicians(ctx)
}
