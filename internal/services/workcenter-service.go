package services

import (
	"context"
	"errors"

	"maintenance-system/internal/authz"
	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/repositories"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/utils"
)

type WorkCenterServiceInterface interface {
	GetByID(ctx context.Context, id uint64) (*dto.WorkCenterDTO, error)
	Create(ctx context.Context, payload dto.CreateWorkCenterDTO) (*dto.WorkCenterDTO, error)
	Update(ctx context.Context, id uint64, payload dto.UpdateWorkCenterDTO) (*dto.WorkCenterDTO, error)
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context, user *dto.AuthUser, search string, limit, offset int) ([]dto.WorkCenterDTO, uint64, error)
}

type WorkCenterService struct {
	workCenterRepo repositories.WorkCenterRepositoryInterface
}

func NewWorkCenterService(workCenterRepo repositories.WorkCenterRepositoryInterface) WorkCenterServiceInterface {
	return &WorkCenterService{workCenterRepo: workCenterRepo}
}

func toWorkCenterDTO(wc *entities.WorkCenter) *dto.WorkCenterDTO {
	d := &dto.WorkCenterDTO{
		ID:                  wc.ID,
		Name:                wc.Name,
		Code:                wc.Code,
		Tag:                 wc.Tag,
		AlternativeCenterID: wc.AlternativeCenterID,
		CostPerHour:         wc.CostPerHour,
		Capacity:            wc.Capacity,
		TimeEfficiency:      wc.TimeEfficiency,
		OEETarget:           wc.OEETarget,
	}
	if wc.CreatedAt != nil {
		d.CreatedAt = utils.FormatTime(*wc.CreatedAt)
	}
	return d
}

func (s *WorkCenterService) GetByID(ctx context.Context, id uint64) (*dto.WorkCenterDTO, error) {
	wc, err := s.workCenterRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toWorkCenterDTO(wc), nil
}

func (s *WorkCenterService) Create(ctx context.Context, payload dto.CreateWorkCenterDTO) (*dto.WorkCenterDTO, error) {
	if _, err := s.workCenterRepo.FindByCode(ctx, payload.Code); err == nil {
		return nil, apperrors.BadRequest("рабочий центр с таким кодом уже существует", nil)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	wc := &entities.WorkCenter{
		Name:                payload.Name,
		Code:                payload.Code,
		Tag:                 payload.Tag.Ptr(),
		AlternativeCenterID: payload.AlternativeCenterID.Ptr(),
		CostPerHour:         payload.CostPerHour,
		Capacity:            payload.Capacity,
		TimeEfficiency:      payload.TimeEfficiency,
		OEETarget:           payload.OEETarget,
	}

	id, err := s.workCenterRepo.Create(ctx, wc)
	if err != nil {
		return nil, err
	}
	wc.ID = id
	return toWorkCenterDTO(wc), nil
}

func (s *WorkCenterService) Update(ctx context.Context, id uint64, payload dto.UpdateWorkCenterDTO) (*dto.WorkCenterDTO, error) {
	wc, err := s.workCenterRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Code != "" && payload.Code != wc.Code {
		if _, err := s.workCenterRepo.FindByCode(ctx, payload.Code); err == nil {
			return nil, apperrors.BadRequest("рабочий центр с таким кодом уже существует", nil)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		wc.Code = payload.Code
	}
	if payload.Name != "" {
		wc.Name = payload.Name
	}
	if payload.Tag.Valid {
		wc.Tag = payload.Tag.Ptr()
	}
	if payload.AlternativeCenterID.Valid {
		wc.AlternativeCenterID = payload.AlternativeCenterID.Ptr()
	}
	if payload.CostPerHour.Valid {
		wc.CostPerHour = payload.CostPerHour.Float64
	}
	if payload.Capacity.Valid {
		wc.Capacity = payload.Capacity.Float64
	}
	if payload.TimeEfficiency.Valid {
		wc.TimeEfficiency = payload.TimeEfficiency.Float64
	}
	if payload.OEETarget.Valid {
		wc.OEETarget = payload.OEETarget.Float64
	}

	if err := s.workCenterRepo.Update(ctx, wc); err != nil {
		return nil, err
	}
	return toWorkCenterDTO(wc), nil
}

func (s *WorkCenterService) Delete(ctx context.Context, id uint64) error {
	return s.workCenterRepo.Delete(ctx, id)
}

func (s *WorkCenterService) List(ctx context.Context, user *dto.AuthUser, search string, limit, offset int) ([]dto.WorkCenterDTO, uint64, error) {
	scope := authz.Scope(user, authz.KindWorkCenter)
	return s.workCenterRepo.List(ctx, scope, search, limit, offset)
}
