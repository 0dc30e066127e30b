package services

import (
	"context"
	"testing"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/repositories"
	apperrors "maintenance-system/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorksheetService_Create_SetsAuthor(t *testing.T) {
	var created *entities.Worksheet
	worksheetRepo := &fakeWorksheetRepo{
		createFn: func(ctx context.Context, q repositories.Querier, ws *entities.Worksheet) (uint64, error) {
			created = ws
			return 7, nil
		},
	}
	requestRepo := &fakeRequestRepo{
		findByIDFn: func(ctx context.Context, id uint64) (*entities.MaintenanceRequest, error) {
			return &entities.MaintenanceRequest{ID: id}, nil
		},
	}

	svc := NewWorksheetService(worksheetRepo, requestRepo, nil)
	user := &dto.AuthUser{ID: 42, Name: "Иванов Пётр", Role: entities.RoleTechnician}

	result, err := svc.Create(context.Background(), user, dto.CreateWorksheetDTO{
		RequestID: 10,
		Content:   "Заменён подшипник",
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(42), created.AuthorID)
	assert.Equal(t, uint64(10), created.RequestID)
	assert.Equal(t, uint64(7), result.ID)
}

func TestWorksheetService_Create_UnknownRequest(t *testing.T) {
	requestRepo := &fakeRequestRepo{
		findByIDFn: func(ctx context.Context, id uint64) (*entities.MaintenanceRequest, error) {
			return nil, apperrors.ErrNotFound
		},
	}

	svc := NewWorksheetService(&fakeWorksheetRepo{}, requestRepo, nil)
	user := &dto.AuthUser{ID: 42, Role: entities.RoleTechnician}

	_, err := svc.Create(context.Background(), user, dto.CreateWorksheetDTO{RequestID: 999, Content: "..."})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// Общий список без request_id отдаёт весь журнал и не трогает заявки.
func TestWorksheetService_List_WithoutFilter(t *testing.T) {
	var gotRequestID uint64 = 999
	worksheetRepo := &fakeWorksheetRepo{
		listFn: func(ctx context.Context, requestID uint64, limit, offset int) ([]dto.WorksheetDTO, uint64, error) {
			gotRequestID = requestID
			return []dto.WorksheetDTO{{ID: 1}, {ID: 2}}, 2, nil
		},
	}
	requestRepo := &fakeRequestRepo{
		findByIDFn: func(ctx context.Context, id uint64) (*entities.MaintenanceRequest, error) {
			t.Fatal("список без фильтра не должен искать заявку")
			return nil, nil
		},
	}

	svc := NewWorksheetService(worksheetRepo, requestRepo, nil)

	items, total, err := svc.List(context.Background(), 0, 20, 0)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, uint64(2), total)
	assert.Equal(t, uint64(0), gotRequestID)
}

// Фильтр по несуществующей заявке отвечает 404, а не пустым списком.
func TestWorksheetService_List_UnknownRequestFilter(t *testing.T) {
	requestRepo := &fakeRequestRepo{
		findByIDFn: func(ctx context.Context, id uint64) (*entities.MaintenanceRequest, error) {
			return nil, apperrors.ErrNotFound
		},
	}

	svc := NewWorksheetService(&fakeWorksheetRepo{}, requestRepo, nil)

	_, _, err := svc.List(context.Background(), 777, 20, 0)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// Запись журнала меняет только её автор либо администратор.
func TestWorksheetService_MutationRights(t *testing.T) {
	worksheetRepo := &fakeWorksheetRepo{
		findByIDFn: func(ctx context.Context, id uint64) (*entities.Worksheet, error) {
			return &entities.Worksheet{ID: id, AuthorID: 42, RequestID: 10}, nil
		},
		updateFn: func(ctx context.Context, ws *entities.Worksheet) error { return nil },
		deleteFn: func(ctx context.Context, id uint64) error { return nil },
	}

	svc := NewWorksheetService(worksheetRepo, &fakeRequestRepo{}, nil)

	author := &dto.AuthUser{ID: 42, Role: entities.RoleTechnician}
	admin := &dto.AuthUser{ID: 1, Role: entities.RoleAdmin}
	stranger := &dto.AuthUser{ID: 99, Role: entities.RoleTechnician}

	_, err := svc.Update(context.Background(), author, 7, dto.UpdateWorksheetDTO{Content: "поправил"})
	assert.NoError(t, err)

	_, err = svc.Update(context.Background(), admin, 7, dto.UpdateWorksheetDTO{Content: "поправил"})
	assert.NoError(t, err)

	_, err = svc.Update(context.Background(), stranger, 7, dto.UpdateWorksheetDTO{Content: "поправил"})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	assert.ErrorIs(t, svc.Delete(context.Background(), stranger, 7), apperrors.ErrForbidden)
	assert.NoError(t, svc.Delete(context.Background(), admin, 7))
}
