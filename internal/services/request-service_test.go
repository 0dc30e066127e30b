package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/repositories"
	apperrors "maintenance-system/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func uintPtr(v uint64) *uint64 { return &v }

func adminUser() *dto.AuthUser {
	return &dto.AuthUser{ID: 1, Name: "Администратор", Role: entities.RoleAdmin}
}

func requireBadRequest(t *testing.T, err error) *apperrors.HttpError {
	t.Helper()
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusBadRequest, httpErr.Code)
	return httpErr
}

func TestRequestService_Create_InheritsFromEquipment(t *testing.T) {
	var created *entities.MaintenanceRequest

	requestRepo := &fakeRequestRepo{
		createFn: func(ctx context.Context, req *entities.MaintenanceRequest) (uint64, error) {
			created = req
			return 10, nil
		},
	}
	equipmentRepo := &fakeEquipmentRepo{
		findByIDFn: func(ctx context.Context, id uint64) (*entities.Equipment, error) {
			return &entities.Equipment{
				ID:           id,
				CategoryID:   uintPtr(2),
				TeamID:       uintPtr(3),
				WorkCenterID: uintPtr(4),
			}, nil
		},
	}

	svc := NewRequestService(requestRepo, equipmentRepo, nil, nil, nil, &fakeTxManager{}, zap.NewNop())

	result, err := svc.Create(context.Background(), adminUser(), dto.CreateRequestDTO{
		Subject:     "Вибрация шпинделя",
		EquipmentID: null.Uint64From(5),
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	require.NotNil(t, created)
	assert.Equal(t, entities.RequestNew, created.Status)
	assert.Equal(t, entities.MaintenanceCorrective, created.MaintenanceType)
	assert.Equal(t, entities.DefaultPriority, created.Priority)
	assert.Equal(t, uint64(1), created.CreatedByID)
	assert.Equal(t, uintPtr(5), created.EquipmentID)
	assert.Equal(t, uintPtr(2), created.CategoryID)
	assert.Equal(t, uintPtr(3), created.TeamID)
	assert.Equal(t, uintPtr(4), created.WorkCenterID)
}

func TestRequestService_Create_ExplicitWorkCenterWins(t *testing.T) {
	var created *entities.MaintenanceRequest

	requestRepo := &fakeRequestRepo{
		createFn: func(ctx context.Context, req *entities.MaintenanceRequest) (uint64, error) {
			created = req
			return 10, nil
		},
	}
	equipmentRepo := &fakeEquipmentRepo{
		findByIDFn: func(ctx context.Context, id uint64) (*entities.Equipment, error) {
			return &entities.Equipment{ID: id, WorkCenterID: uintPtr(4)}, nil
		},
	}

	svc := NewRequestService(requestRepo, equipmentRepo, nil, nil, nil, &fakeTxManager{}, zap.NewNop())

	_, err := svc.Create(context.Background(), adminUser(), dto.CreateRequestDTO{
		Subject:      "Плановая смазка",
		EquipmentID:  null.Uint64From(5),
		WorkCenterID: null.Uint64From(9),
	})
	require.NoError(t, err)
	assert.Equal(t, uintPtr(9), created.WorkCenterID)
}

func TestRequestService_Create_UnknownEquipment(t *testing.T) {
	equipmentRepo := &fakeEquipmentRepo{
		findByIDFn: func(ctx context.Context, id uint64) (*entities.Equipment, error) {
			return nil, apperrors.ErrNotFound
		},
	}

	svc := NewRequestService(&fakeRequestRepo{}, equipmentRepo, nil, nil, nil, &fakeTxManager{}, zap.NewNop())

	_, err := svc.Create(context.Background(), adminUser(), dto.CreateRequestDTO{
		Subject:     "Сломался пульт",
		EquipmentID: null.Uint64From(999),
	})
	requireBadRequest(t, err)
}

func TestRequestService_UpdateStatus_InvalidTransition(t *testing.T) {
	requestRepo := &fakeRequestRepo{
		findByIDFn: func(ctx context.Context, id uint64) (*entities.MaintenanceRequest, error) {
			return &entities.MaintenanceRequest{ID: id, Status: entities.RequestNew, CreatedByID: 1}, nil
		},
	}

	svc := NewRequestService(requestRepo, &fakeEquipmentRepo{}, nil, nil, nil, &fakeTxManager{}, zap.NewNop())

	// NEW -> REPAIRED запрещён, сначала IN_PROGRESS.
	_, err := svc.UpdateStatus(context.Background(), adminUser(), 10, dto.UpdateRequestStatusDTO{Status: "REPAIRED"})
	httpErr := requireBadRequest(t, err)
	assert.Contains(t, httpErr.Message, "недопустим")
}

// Перевод в SCRAP единой транзакцией меняет статус, списывает оборудование
// и оставляет запись журнала.
func TestRequestService_UpdateStatus_ScrapCascade(t *testing.T) {
	var statusSet entities.RequestStatus
	var scrappedEquipmentID uint64
	var worksheet *entities.Worksheet

	requestRepo := &fakeRequestRepo{
		findByIDFn: func(ctx context.Context, id uint64) (*entities.MaintenanceRequest, error) {
			return &entities.MaintenanceRequest{
				ID:          id,
				Status:      entities.RequestInProgress,
				CreatedByID: 1,
				EquipmentID: uintPtr(5),
			}, nil
		},
		updateStatusFn: func(ctx context.Context, q repositories.Querier, id uint64, status entities.RequestStatus) error {
			statusSet = status
			return nil
		},
	}
	equipmentRepo := &fakeEquipmentRepo{
		markScrappedFn: func(ctx context.Context, q repositories.Querier, id uint64, when time.Time) error {
			scrappedEquipmentID = id
			return nil
		},
	}
	worksheetRepo := &fakeWorksheetRepo{
		createFn: func(ctx context.Context, q repositories.Querier, ws *entities.Worksheet) (uint64, error) {
			worksheet = ws
			return 77, nil
		},
	}
	txManager := &fakeTxManager{}

	svc := NewRequestService(requestRepo, equipmentRepo, nil, worksheetRepo, &fakeNotificationRepo{}, txManager, zap.NewNop())

	_, err := svc.UpdateStatus(context.Background(), adminUser(), 10, dto.UpdateRequestStatusDTO{Status: "SCRAP"})
	require.NoError(t, err)

	assert.Equal(t, 1, txManager.calls)
	assert.Equal(t, entities.RequestScrap, statusSet)
	assert.Equal(t, uint64(5), scrappedEquipmentID)

	require.NotNil(t, worksheet)
	assert.Equal(t, uint64(10), worksheet.RequestID)
	assert.Equal(t, uint64(1), worksheet.AuthorID)
	assert.Contains(t, worksheet.Content, "SCRAP")
}

// Заявка без оборудования меняет только статус: ни каскада на equipment,
// ни записи журнала о списании.
func TestRequestService_UpdateStatus_ScrapWithoutEquipment(t *testing.T) {
	markScrappedCalled := false
	worksheetCreated := false

	requestRepo := &fakeRequestRepo{
		findByIDFn: func(ctx context.Context, id uint64) (*entities.MaintenanceRequest, error) {
			return &entities.MaintenanceRequest{ID: id, Status: entities.RequestNew, CreatedByID: 1}, nil
		},
		updateStatusFn: func(ctx context.Context, q repositories.Querier, id uint64, status entities.RequestStatus) error {
			return nil
		},
	}
	equipmentRepo := &fakeEquipmentRepo{
		markScrappedFn: func(ctx context.Context, q repositories.Querier, id uint64, when time.Time) error {
			markScrappedCalled = true
			return nil
		},
	}
	worksheetRepo := &fakeWorksheetRepo{
		createFn: func(ctx context.Context, q repositories.Querier, ws *entities.Worksheet) (uint64, error) {
			worksheetCreated = true
			return 77, nil
		},
	}

	svc := NewRequestService(requestRepo, equipmentRepo, nil, worksheetRepo, &fakeNotificationRepo{}, &fakeTxManager{}, zap.NewNop())

	_, err := svc.UpdateStatus(context.Background(), adminUser(), 10, dto.UpdateRequestStatusDTO{Status: "SCRAP"})
	require.NoError(t, err)
	assert.False(t, markScrappedCalled)
	assert.False(t, worksheetCreated)
}

func TestRequestService_UpdateStatus_RepairedNotifiesCreator(t *testing.T) {
	var notification *entities.Notification

	requestRepo := &fakeRequestRepo{
		findByIDFn: func(ctx context.Context, id uint64) (*entities.MaintenanceRequest, error) {
			return &entities.MaintenanceRequest{
				ID:          id,
				Subject:     "Вибрация шпинделя",
				Status:      entities.RequestInProgress,
				CreatedByID: 42,
			}, nil
		},
		updateStatusFn: func(ctx context.Context, q repositories.Querier, id uint64, status entities.RequestStatus) error {
			return nil
		},
	}
	notificationRepo := &fakeNotificationRepo{
		createFn: func(ctx context.Context, n *entities.Notification) (uint64, error) {
			notification = n
			return 1, nil
		},
	}

	svc := NewRequestService(requestRepo, &fakeEquipmentRepo{}, nil, &fakeWorksheetRepo{}, notificationRepo, &fakeTxManager{}, zap.NewNop())

	_, err := svc.UpdateStatus(context.Background(), adminUser(), 10, dto.UpdateRequestStatusDTO{Status: "REPAIRED"})
	require.NoError(t, err)

	require.NotNil(t, notification)
	assert.Equal(t, entities.NotificationCompleted, notification.Type)
	assert.Equal(t, uint64(42), notification.UserID)
	require.NotNil(t, notification.RequestID)
	assert.Equal(t, uint64(10), *notification.RequestID)
}

// Чужая заявка для обычного пользователя отдаётся как 404, а не 403.
func TestRequestService_GetByID_HiddenFromStranger(t *testing.T) {
	requestRepo := &fakeRequestRepo{
		findByIDFn: func(ctx context.Context, id uint64) (*entities.MaintenanceRequest, error) {
			return &entities.MaintenanceRequest{ID: id, Status: entities.RequestNew, CreatedByID: 99}, nil
		},
	}

	svc := NewRequestService(requestRepo, &fakeEquipmentRepo{}, nil, nil, nil, &fakeTxManager{}, zap.NewNop())

	stranger := &dto.AuthUser{ID: 42, Role: entities.RoleUser}
	_, err := svc.GetByID(context.Background(), stranger, 10)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRequestService_GetByID_VisibleToTeamTechnician(t *testing.T) {
	requestRepo := &fakeRequestRepo{
		findByIDFn: func(ctx context.Context, id uint64) (*entities.MaintenanceRequest, error) {
			return &entities.MaintenanceRequest{
				ID:          id,
				Status:      entities.RequestNew,
				CreatedByID: 99,
				TeamID:      uintPtr(3),
			}, nil
		},
	}

	svc := NewRequestService(requestRepo, &fakeEquipmentRepo{}, nil, nil, nil, &fakeTxManager{}, zap.NewNop())

	tech := &dto.AuthUser{ID: 7, Role: entities.RoleTechnician, TeamID: uintPtr(3)}
	result, err := svc.GetByID(context.Background(), tech, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), result.ID)
}

func TestRequestService_AssignTechnician_RejectsNonTechnician(t *testing.T) {
	requestRepo := &fakeRequestRepo{
		findByIDFn: func(ctx context.Context, id uint64) (*entities.MaintenanceRequest, error) {
			return &entities.MaintenanceRequest{ID: id, Status: entities.RequestNew, CreatedByID: 1}, nil
		},
	}
	userRepo := &fakeUserRepo{
		findByIDFn: func(ctx context.Context, id uint64) (*entities.User, error) {
			return &entities.User{ID: id, Role: entities.RoleUser}, nil
		},
	}

	svc := NewRequestService(requestRepo, &fakeEquipmentRepo{}, userRepo, nil, nil, &fakeTxManager{}, zap.NewNop())

	_, err := svc.AssignTechnician(context.Background(), adminUser(), 10, dto.AssignTechnicianDTO{TechnicianID: 5})
	httpErr := requireBadRequest(t, err)
	assert.Contains(t, httpErr.Message, "TECHNICIAN")
}

func TestRequestService_AssignTechnician_NotifiesTechnician(t *testing.T) {
	var assignedID uint64
	var notification *entities.Notification

	requestRepo := &fakeRequestRepo{
		findByIDFn: func(ctx context.Context, id uint64) (*entities.MaintenanceRequest, error) {
			return &entities.MaintenanceRequest{ID: id, Subject: "Вибрация шпинделя", Status: entities.RequestNew, CreatedByID: 1}, nil
		},
		assignTechnicianFn: func(ctx context.Context, id, technicianID uint64) error {
			assignedID = technicianID
			return nil
		},
	}
	userRepo := &fakeUserRepo{
		findByIDFn: func(ctx context.Context, id uint64) (*entities.User, error) {
			return &entities.User{ID: id, Role: entities.RoleTechnician}, nil
		},
	}
	notificationRepo := &fakeNotificationRepo{
		createFn: func(ctx context.Context, n *entities.Notification) (uint64, error) {
			notification = n
			return 1, nil
		},
	}

	svc := NewRequestService(requestRepo, &fakeEquipmentRepo{}, userRepo, nil, notificationRepo, &fakeTxManager{}, zap.NewNop())

	_, err := svc.AssignTechnician(context.Background(), adminUser(), 10, dto.AssignTechnicianDTO{TechnicianID: 5})
	require.NoError(t, err)

	assert.Equal(t, uint64(5), assignedID)
	require.NotNil(t, notification)
	assert.Equal(t, entities.NotificationRequest, notification.Type)
	assert.Equal(t, uint64(5), notification.UserID)
}

// Колонки канбана идут в фиксированном порядке, пустые отдаются пустым
// списком, а не null.
func TestRequestService_Kanban_FixedColumns(t *testing.T) {
	requestRepo := &fakeRequestRepo{
		listKanbanFn: func(ctx context.Context, scope sq.Sqlizer) ([]dto.RequestDTO, error) {
			return []dto.RequestDTO{
				{ID: 1, Status: "NEW", Priority: 5},
				{ID: 2, Status: "IN_PROGRESS", Priority: 4},
				{ID: 3, Status: "NEW", Priority: 2},
			}, nil
		},
	}

	svc := NewRequestService(requestRepo, &fakeEquipmentRepo{}, nil, nil, nil, &fakeTxManager{}, zap.NewNop())

	columns, err := svc.Kanban(context.Background(), adminUser())
	require.NoError(t, err)
	require.Len(t, columns, 4)

	assert.Equal(t, "NEW", columns[0].Status)
	assert.Equal(t, "IN_PROGRESS", columns[1].Status)
	assert.Equal(t, "REPAIRED", columns[2].Status)
	assert.Equal(t, "SCRAP", columns[3].Status)

	assert.Len(t, columns[0].Requests, 2)
	assert.Len(t, columns[1].Requests, 1)
	require.NotNil(t, columns[2].Requests)
	assert.Empty(t, columns[2].Requests)
	require.NotNil(t, columns[3].Requests)
	assert.Empty(t, columns[3].Requests)
}

func TestRequestService_Calendar_OverdueFlag(t *testing.T) {
	past := time.Now().Add(-48 * time.Hour).Format("2006-01-02 15:04:05")
	future := time.Now().Add(48 * time.Hour).Format("2006-01-02 15:04:05")

	requestRepo := &fakeRequestRepo{
		listCalendarFn: func(ctx context.Context, scope sq.Sqlizer, start, end time.Time) ([]dto.RequestDTO, error) {
			return []dto.RequestDTO{
				{ID: 1, Subject: "Просроченное ТО", Status: "NEW", ScheduledDate: &past},
				{ID: 2, Subject: "Будущее ТО", Status: "NEW", ScheduledDate: &future, Technician: &dto.ShortUserDTO{ID: 7}},
				{ID: 3, Subject: "Завершённое ТО", Status: "REPAIRED", ScheduledDate: &past},
			}, nil
		},
	}

	svc := NewRequestService(requestRepo, &fakeEquipmentRepo{}, nil, nil, nil, &fakeTxManager{}, zap.NewNop())

	events, err := svc.Calendar(context.Background(), adminUser(), time.Now().Add(-30*24*time.Hour), time.Now().Add(30*24*time.Hour))
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.True(t, events[0].Overdue)
	assert.False(t, events[0].Assigned)

	assert.False(t, events[1].Overdue)
	assert.True(t, events[1].Assigned)

	// REPAIRED не считается просроченной, работа уже выполнена.
	assert.False(t, events[2].Overdue)
}
