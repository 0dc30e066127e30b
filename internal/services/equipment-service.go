package services

import (
	"context"
	"errors"

	"maintenance-system/internal/authz"
	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/repositories"
	apperrors "maintenance-system/pkg/errors"
)

type EquipmentServiceInterface interface {
	GetByID(ctx context.Context, id uint64) (*dto.EquipmentDTO, error)
	Create(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error)
	Update(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error)
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context, user *dto.AuthUser, filter repositories.EquipmentFilter) ([]dto.EquipmentDTO, uint64, error)
	ListRequests(ctx context.Context, equipmentID uint64, limit, offset int) ([]dto.RequestDTO, uint64, error)
}

type EquipmentService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	requestRepo   repositories.RequestRepositoryInterface
}

func NewEquipmentService(equipmentRepo repositories.EquipmentRepositoryInterface, requestRepo repositories.RequestRepositoryInterface) EquipmentServiceInterface {
	return &EquipmentService{equipmentRepo: equipmentRepo, requestRepo: requestRepo}
}

func (s *EquipmentService) GetByID(ctx context.Context, id uint64) (*dto.EquipmentDTO, error) {
	return s.equipmentRepo.FindDTO(ctx, id)
}

func (s *EquipmentService) Create(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error) {
	eq := &entities.Equipment{
		Name:         payload.Name,
		Status:       entities.EquipmentActive,
		CategoryID:   payload.CategoryID.Ptr(),
		TeamID:       payload.TeamID.Ptr(),
		TechnicianID: payload.TechnicianID.Ptr(),
		WorkCenterID: payload.WorkCenterID.Ptr(),
		EmployeeName: payload.EmployeeName,
		Company:      payload.Company,
		Location:     payload.Location,
		Description:  payload.Description,
		AssignedDate: payload.AssignedDate.Ptr(),
	}

	id, err := s.equipmentRepo.Create(ctx, eq)
	if err != nil {
		return nil, err
	}
	return s.equipmentRepo.FindDTO(ctx, id)
}

func (s *EquipmentService) Update(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error) {
	eq, err := s.equipmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Name != "" {
		eq.Name = payload.Name
	}
	if payload.Status != "" {
		status := entities.EquipmentStatus(payload.Status)
		if status != entities.EquipmentActive && status != entities.EquipmentScrapped {
			return nil, apperrors.BadRequest("недопустимый статус оборудования", nil)
		}
		eq.Status = status
	}
	if payload.CategoryID.Valid {
		eq.CategoryID = payload.CategoryID.Ptr()
	}
	if payload.TeamID.Valid {
		eq.TeamID = payload.TeamID.Ptr()
	}
	if payload.TechnicianID.Valid {
		eq.TechnicianID = payload.TechnicianID.Ptr()
	}
	if payload.WorkCenterID.Valid {
		eq.WorkCenterID = payload.WorkCenterID.Ptr()
	}
	if payload.EmployeeName.Valid {
		eq.EmployeeName = payload.EmployeeName.String
	}
	if payload.Company.Valid {
		eq.Company = payload.Company.String
	}
	if payload.Location.Valid {
		eq.Location = payload.Location.String
	}
	if payload.Description.Valid {
		eq.Description = payload.Description.String
	}
	if payload.AssignedDate.Valid {
		eq.AssignedDate = payload.AssignedDate.Ptr()
	}
	if payload.ScrapDate.Valid {
		eq.ScrapDate = payload.ScrapDate.Ptr()
	}

	if err := s.equipmentRepo.Update(ctx, eq); err != nil {
		return nil, err
	}
	return s.equipmentRepo.FindDTO(ctx, id)
}

func (s *EquipmentService) Delete(ctx context.Context, id uint64) error {
	return s.equipmentRepo.Delete(ctx, id)
}

func (s *EquipmentService) List(ctx context.Context, user *dto.AuthUser, filter repositories.EquipmentFilter) ([]dto.EquipmentDTO, uint64, error) {
	scope := authz.Scope(user, authz.KindEquipment)
	return s.equipmentRepo.List(ctx, scope, filter)
}

// ListRequests - заявки по конкретной единице оборудования, для карточки.
func (s *EquipmentService) ListRequests(ctx context.Context, equipmentID uint64, limit, offset int) ([]dto.RequestDTO, uint64, error) {
	if _, err := s.equipmentRepo.FindByID(ctx, equipmentID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, 0, apperrors.ErrNotFound
		}
		return nil, 0, err
	}
	return s.requestRepo.ListByEquipment(ctx, equipmentID, limit, offset)
}
