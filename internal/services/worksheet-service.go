package services

import (
	"context"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/repositories"
	apperrors "maintenance-system/pkg/errors"
)

type WorksheetServiceInterface interface {
	GetByID(ctx context.Context, id uint64) (*dto.WorksheetDTO, error)
	Create(ctx context.Context, user *dto.AuthUser, payload dto.CreateWorksheetDTO) (*dto.WorksheetDTO, error)
	Update(ctx context.Context, user *dto.AuthUser, id uint64, payload dto.UpdateWorksheetDTO) (*dto.WorksheetDTO, error)
	Delete(ctx context.Context, user *dto.AuthUser, id uint64) error
	// List - общий журнал работ; requestID = 0 означает без фильтра.
	List(ctx context.Context, requestID uint64, limit, offset int) ([]dto.WorksheetDTO, uint64, error)
	ListByRequest(ctx context.Context, requestID uint64, limit, offset int) ([]dto.WorksheetDTO, uint64, error)
}

type WorksheetService struct {
	worksheetRepo repositories.WorksheetRepositoryInterface
	requestRepo   repositories.RequestRepositoryInterface
	pool          repositories.Querier
}

func NewWorksheetService(worksheetRepo repositories.WorksheetRepositoryInterface, requestRepo repositories.RequestRepositoryInterface, pool repositories.Querier) WorksheetServiceInterface {
	return &WorksheetService{worksheetRepo: worksheetRepo, requestRepo: requestRepo, pool: pool}
}

func (s *WorksheetService) GetByID(ctx context.Context, id uint64) (*dto.WorksheetDTO, error) {
	return s.worksheetRepo.FindDTO(ctx, id)
}

func (s *WorksheetService) Create(ctx context.Context, user *dto.AuthUser, payload dto.CreateWorksheetDTO) (*dto.WorksheetDTO, error) {
	if _, err := s.requestRepo.FindByID(ctx, payload.RequestID); err != nil {
		return nil, err
	}

	ws := &entities.Worksheet{
		Content:   payload.Content,
		RequestID: payload.RequestID,
		AuthorID:  user.ID,
	}
	id, err := s.worksheetRepo.Create(ctx, s.pool, ws)
	if err != nil {
		return nil, err
	}

	return &dto.WorksheetDTO{
		ID:        id,
		Content:   ws.Content,
		RequestID: ws.RequestID,
		Author:    &dto.ShortUserDTO{ID: user.ID, Name: user.Name},
	}, nil
}

// canMutate: запись журнала меняет её автор либо администратор.
func canMutateWorksheet(user *dto.AuthUser, ws *entities.Worksheet) bool {
	return user.Role == entities.RoleAdmin || ws.AuthorID == user.ID
}

func (s *WorksheetService) Update(ctx context.Context, user *dto.AuthUser, id uint64, payload dto.UpdateWorksheetDTO) (*dto.WorksheetDTO, error) {
	ws, err := s.worksheetRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canMutateWorksheet(user, ws) {
		return nil, apperrors.ErrForbidden
	}

	ws.Content = payload.Content
	if err := s.worksheetRepo.Update(ctx, ws); err != nil {
		return nil, err
	}

	return &dto.WorksheetDTO{
		ID:        ws.ID,
		Content:   ws.Content,
		RequestID: ws.RequestID,
	}, nil
}

func (s *WorksheetService) Delete(ctx context.Context, user *dto.AuthUser, id uint64) error {
	ws, err := s.worksheetRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !canMutateWorksheet(user, ws) {
		return apperrors.ErrForbidden
	}
	return s.worksheetRepo.Delete(ctx, id)
}

func (s *WorksheetService) List(ctx context.Context, requestID uint64, limit, offset int) ([]dto.WorksheetDTO, uint64, error) {
	if requestID != 0 {
		if _, err := s.requestRepo.FindByID(ctx, requestID); err != nil {
			return nil, 0, err
		}
	}
	return s.worksheetRepo.List(ctx, requestID, limit, offset)
}

func (s *WorksheetService) ListByRequest(ctx context.Context, requestID uint64, limit, offset int) ([]dto.WorksheetDTO, uint64, error) {
	if _, err := s.requestRepo.FindByID(ctx, requestID); err != nil {
		return nil, 0, err
	}
	return s.worksheetRepo.List(ctx, requestID, limit, offset)
}
