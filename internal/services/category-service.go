package services

import (
	"context"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/repositories"
	"maintenance-system/pkg/utils"
)

type CategoryServiceInterface interface {
	GetByID(ctx context.Context, id uint64) (*dto.CategoryDTO, error)
	Create(ctx context.Context, payload dto.CreateCategoryDTO) (*dto.CategoryDTO, error)
	Update(ctx context.Context, id uint64, payload dto.UpdateCategoryDTO) (*dto.CategoryDTO, error)
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context, search string, limit, offset int) ([]dto.CategoryDTO, uint64, error)
}

type CategoryService struct {
	categoryRepo repositories.CategoryRepositoryInterface
}

func NewCategoryService(categoryRepo repositories.CategoryRepositoryInterface) CategoryServiceInterface {
	return &CategoryService{categoryRepo: categoryRepo}
}

func toCategoryDTO(c *entities.Category) *dto.CategoryDTO {
	d := &dto.CategoryDTO{
		ID:          c.ID,
		Name:        c.Name,
		Responsible: c.Responsible,
		Company:     c.Company,
	}
	if c.CreatedAt != nil {
		d.CreatedAt = utils.FormatTime(*c.CreatedAt)
	}
	return d
}

func (s *CategoryService) GetByID(ctx context.Context, id uint64) (*dto.CategoryDTO, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCategoryDTO(category), nil
}

func (s *CategoryService) Create(ctx context.Context, payload dto.CreateCategoryDTO) (*dto.CategoryDTO, error) {
	category := &entities.Category{
		Name:        payload.Name,
		Responsible: payload.Responsible,
		Company:     payload.Company,
	}
	id, err := s.categoryRepo.Create(ctx, category)
	if err != nil {
		return nil, err
	}
	category.ID = id
	return toCategoryDTO(category), nil
}

func (s *CategoryService) Update(ctx context.Context, id uint64, payload dto.UpdateCategoryDTO) (*dto.CategoryDTO, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Name != "" {
		category.Name = payload.Name
	}
	if payload.Responsible != "" {
		category.Responsible = payload.Responsible
	}
	if payload.Company != "" {
		category.Company = payload.Company
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryDTO(category), nil
}

func (s *CategoryService) Delete(ctx context.Context, id uint64) error {
	return s.categoryRepo.Delete(ctx, id)
}

func (s *CategoryService) List(ctx context.Context, search string, limit, offset int) ([]dto.CategoryDTO, uint64, error) {
	return s.categoryRepo.List(ctx, search, limit, offset)
}
