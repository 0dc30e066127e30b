package services

import (
	"context"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/repositories"
	apperrors "maintenance-system/pkg/errors"
)

type TeamServiceInterface interface {
	GetByID(ctx context.Context, id uint64) (*dto.TeamDTO, error)
	Create(ctx context.Context, payload dto.CreateTeamDTO) (*dto.TeamDTO, error)
	Update(ctx context.Context, id uint64, payload dto.UpdateTeamDTO) (*dto.TeamDTO, error)
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context, search string, limit, offset int) ([]dto.TeamDTO, uint64, error)
	AllocateMember(ctx context.Context, teamID, userID uint64) error
	DeallocateMember(ctx context.Context, teamID, userID uint64) error
}

type TeamService struct {
	teamRepo repositories.TeamRepositoryInterface
	userRepo repositories.UserRepositoryInterface
}

func NewTeamService(teamRepo repositories.TeamRepositoryInterface, userRepo repositories.UserRepositoryInterface) TeamServiceInterface {
	return &TeamService{teamRepo: teamRepo, userRepo: userRepo}
}

func (s *TeamService) GetByID(ctx context.Context, id uint64) (*dto.TeamDTO, error) {
	return s.teamRepo.FindDTO(ctx, id)
}

func (s *TeamService) Create(ctx context.Context, payload dto.CreateTeamDTO) (*dto.TeamDTO, error) {
	team := &entities.Team{
		Name:    payload.Name,
		Company: payload.Company,
	}
	id, err := s.teamRepo.Create(ctx, team)
	if err != nil {
		return nil, err
	}
	return s.teamRepo.FindDTO(ctx, id)
}

func (s *TeamService) Update(ctx context.Context, id uint64, payload dto.UpdateTeamDTO) (*dto.TeamDTO, error) {
	team, err := s.teamRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Name != "" {
		team.Name = payload.Name
	}
	if payload.Company != "" {
		team.Company = payload.Company
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, err
	}
	return s.teamRepo.FindDTO(ctx, id)
}

func (s *TeamService) Delete(ctx context.Context, id uint64) error {
	return s.teamRepo.Delete(ctx, id)
}

func (s *TeamService) List(ctx context.Context, search string, limit, offset int) ([]dto.TeamDTO, uint64, error) {
	return s.teamRepo.List(ctx, search, limit, offset)
}

// AllocateMember закрепляет пользователя за командой: членство хранится
// ссылкой users.team_id, пользователь состоит максимум в одной команде.
func (s *TeamService) AllocateMember(ctx context.Context, teamID, userID uint64) error {
	if _, err := s.teamRepo.FindByID(ctx, teamID); err != nil {
		return err
	}
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.SetTeam(ctx, userID, &teamID)
}

func (s *TeamService) DeallocateMember(ctx context.Context, teamID, userID uint64) error {
	if _, err := s.teamRepo.FindByID(ctx, teamID); err != nil {
		return err
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.TeamID == nil || *user.TeamID != teamID {
		return apperrors.BadRequest("пользователь не состоит в этой команде", nil)
	}
	return s.userRepo.SetTeam(ctx, userID, nil)
}
