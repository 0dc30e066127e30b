package services

import (
	"context"
	"strconv"
	"time"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/repositories"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

// Заглушки репозиториев на функциональных полях: тест задаёт только те
// методы, которые ожидает вызвать.

type fakeRequestRepo struct {
	findByIDFn         func(ctx context.Context, id uint64) (*entities.MaintenanceRequest, error)
	findDTOFn          func(ctx context.Context, id uint64) (*dto.RequestDTO, error)
	createFn           func(ctx context.Context, req *entities.MaintenanceRequest) (uint64, error)
	updateFn           func(ctx context.Context, req *entities.MaintenanceRequest) error
	deleteFn           func(ctx context.Context, id uint64) error
	listFn             func(ctx context.Context, scope sq.Sqlizer, filter repositories.RequestFilter) ([]dto.RequestDTO, uint64, error)
	listByEquipmentFn  func(ctx context.Context, equipmentID uint64, limit, offset int) ([]dto.RequestDTO, uint64, error)
	listKanbanFn       func(ctx context.Context, scope sq.Sqlizer) ([]dto.RequestDTO, error)
	listCalendarFn     func(ctx context.Context, scope sq.Sqlizer, start, end time.Time) ([]dto.RequestDTO, error)
	updateStatusFn     func(ctx context.Context, q repositories.Querier, id uint64, status entities.RequestStatus) error
	assignTechnicianFn func(ctx context.Context, id, technicianID uint64) error
}

func (f *fakeRequestRepo) FindByID(ctx context.Context, id uint64) (*entities.MaintenanceRequest, error) {
	return f.findByIDFn(ctx, id)
}

func (f *fakeRequestRepo) FindDTO(ctx context.Context, id uint64) (*dto.RequestDTO, error) {
	if f.findDTOFn != nil {
		return f.findDTOFn(ctx, id)
	}
	return &dto.RequestDTO{ID: id}, nil
}

func (f *fakeRequestRepo) Create(ctx context.Context, req *entities.MaintenanceRequest) (uint64, error) {
	return f.createFn(ctx, req)
}

func (f *fakeRequestRepo) Update(ctx context.Context, req *entities.MaintenanceRequest) error {
	return f.updateFn(ctx, req)
}

func (f *fakeRequestRepo) Delete(ctx context.Context, id uint64) error {
	return f.deleteFn(ctx, id)
}

func (f *fakeRequestRepo) List(ctx context.Context, scope sq.Sqlizer, filter repositories.RequestFilter) ([]dto.RequestDTO, uint64, error) {
	return f.listFn(ctx, scope, filter)
}

func (f *fakeRequestRepo) ListByEquipment(ctx context.Context, equipmentID uint64, limit, offset int) ([]dto.RequestDTO, uint64, error) {
	return f.listByEquipmentFn(ctx, equipmentID, limit, offset)
}

func (f *fakeRequestRepo) ListKanban(ctx context.Context, scope sq.Sqlizer) ([]dto.RequestDTO, error) {
	return f.listKanbanFn(ctx, scope)
}

func (f *fakeRequestRepo) ListCalendar(ctx context.Context, scope sq.Sqlizer, start, end time.Time) ([]dto.RequestDTO, error) {
	return f.listCalendarFn(ctx, scope, start, end)
}

func (f *fakeRequestRepo) UpdateStatus(ctx context.Context, q repositories.Querier, id uint64, status entities.RequestStatus) error {
	return f.updateStatusFn(ctx, q, id, status)
}

func (f *fakeRequestRepo) AssignTechnician(ctx context.Context, id, technicianID uint64) error {
	return f.assignTechnicianFn(ctx, id, technicianID)
}

type fakeEquipmentRepo struct {
	findByIDFn     func(ctx context.Context, id uint64) (*entities.Equipment, error)
	findDTOFn      func(ctx context.Context, id uint64) (*dto.EquipmentDTO, error)
	createFn       func(ctx context.Context, eq *entities.Equipment) (uint64, error)
	updateFn       func(ctx context.Context, eq *entities.Equipment) error
	deleteFn       func(ctx context.Context, id uint64) error
	listFn         func(ctx context.Context, scope sq.Sqlizer, filter repositories.EquipmentFilter) ([]dto.EquipmentDTO, uint64, error)
	markScrappedFn func(ctx context.Context, q repositories.Querier, id uint64, when time.Time) error
}

func (f *fakeEquipmentRepo) FindByID(ctx context.Context, id uint64) (*entities.Equipment, error) {
	return f.findByIDFn(ctx, id)
}

func (f *fakeEquipmentRepo) FindDTO(ctx context.Context, id uint64) (*dto.EquipmentDTO, error) {
	return f.findDTOFn(ctx, id)
}

func (f *fakeEquipmentRepo) Create(ctx context.Context, eq *entities.Equipment) (uint64, error) {
	return f.createFn(ctx, eq)
}

func (f *fakeEquipmentRepo) Update(ctx context.Context, eq *entities.Equipment) error {
	return f.updateFn(ctx, eq)
}

func (f *fakeEquipmentRepo) Delete(ctx context.Context, id uint64) error {
	return f.deleteFn(ctx, id)
}

func (f *fakeEquipmentRepo) List(ctx context.Context, scope sq.Sqlizer, filter repositories.EquipmentFilter) ([]dto.EquipmentDTO, uint64, error) {
	return f.listFn(ctx, scope, filter)
}

func (f *fakeEquipmentRepo) MarkScrapped(ctx context.Context, q repositories.Querier, id uint64, when time.Time) error {
	return f.markScrappedFn(ctx, q, id, when)
}

type fakeUserRepo struct {
	findByIDFn        func(ctx context.Context, id uint64) (*entities.User, error)
	findByEmailFn     func(ctx context.Context, email string) (*entities.User, error)
	createFn          func(ctx context.Context, user *entities.User) (uint64, error)
	updateFn          func(ctx context.Context, user *entities.User) error
	deleteFn          func(ctx context.Context, id uint64) error
	listFn            func(ctx context.Context, filter repositories.UserFilter) ([]dto.UserDTO, uint64, error)
	listTechniciansFn func(ctx context.Context) ([]dto.TechnicianDTO, error)
	setTeamFn         func(ctx context.Context, userID uint64, teamID *uint64) error
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uint64) (*entities.User, error) {
	return f.findByIDFn(ctx, id)
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return f.findByEmailFn(ctx, email)
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entities.User) (uint64, error) {
	return f.createFn(ctx, user)
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entities.User) error {
	return f.updateFn(ctx, user)
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uint64) error {
	return f.deleteFn(ctx, id)
}

func (f *fakeUserRepo) List(ctx context.Context, filter repositories.UserFilter) ([]dto.UserDTO, uint64, error) {
	return f.listFn(ctx, filter)
}

func (f *fakeUserRepo) ListTechnicians(ctx context.Context) ([]dto.TechnicianDTO, error) {
	return f.listTechniciansFn(ctx)
}

func (f *fakeUserRepo) SetTeam(ctx context.Context, userID uint64, teamID *uint64) error {
	return f.setTeamFn(ctx, userID, teamID)
}

type fakeWorksheetRepo struct {
	findByIDFn      func(ctx context.Context, id uint64) (*entities.Worksheet, error)
	findDTOFn       func(ctx context.Context, id uint64) (*dto.WorksheetDTO, error)
	createFn        func(ctx context.Context, q repositories.Querier, ws *entities.Worksheet) (uint64, error)
	updateFn        func(ctx context.Context, ws *entities.Worksheet) error
	deleteFn        func(ctx context.Context, id uint64) error
	listFn          func(ctx context.Context, requestID uint64, limit, offset int) ([]dto.WorksheetDTO, uint64, error)
}

func (f *fakeWorksheetRepo) FindByID(ctx context.Context, id uint64) (*entities.Worksheet, error) {
	return f.findByIDFn(ctx, id)
}

func (f *fakeWorksheetRepo) FindDTO(ctx context.Context, id uint64) (*dto.WorksheetDTO, error) {
	return f.findDTOFn(ctx, id)
}

func (f *fakeWorksheetRepo) Create(ctx context.Context, q repositories.Querier, ws *entities.Worksheet) (uint64, error) {
	return f.createFn(ctx, q, ws)
}

func (f *fakeWorksheetRepo) Update(ctx context.Context, ws *entities.Worksheet) error {
	return f.updateFn(ctx, ws)
}

func (f *fakeWorksheetRepo) Delete(ctx context.Context, id uint64) error {
	return f.deleteFn(ctx, id)
}

func (f *fakeWorksheetRepo) List(ctx context.Context, requestID uint64, limit, offset int) ([]dto.WorksheetDTO, uint64, error) {
	return f.listFn(ctx, requestID, limit, offset)
}

type fakeNotificationRepo struct {
	findByIDFn         func(ctx context.Context, id uint64) (*entities.Notification, error)
	createFn           func(ctx context.Context, n *entities.Notification) (uint64, error)
	listByUserFn       func(ctx context.Context, userID uint64, filter repositories.NotificationFilter) ([]dto.NotificationDTO, uint64, error)
	countUnreadFn      func(ctx context.Context, userID uint64) (uint64, error)
	markReadFn         func(ctx context.Context, id uint64) error
	markAllReadFn      func(ctx context.Context, userID uint64) error
	deleteFn           func(ctx context.Context, id uint64) error
	deleteAllForUserFn func(ctx context.Context, userID uint64) error
}

func (f *fakeNotificationRepo) FindByID(ctx context.Context, id uint64) (*entities.Notification, error) {
	return f.findByIDFn(ctx, id)
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *entities.Notification) (uint64, error) {
	return f.createFn(ctx, n)
}

func (f *fakeNotificationRepo) ListByUser(ctx context.Context, userID uint64, filter repositories.NotificationFilter) ([]dto.NotificationDTO, uint64, error) {
	return f.listByUserFn(ctx, userID, filter)
}

func (f *fakeNotificationRepo) CountUnread(ctx context.Context, userID uint64) (uint64, error) {
	return f.countUnreadFn(ctx, userID)
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id uint64) error {
	return f.markReadFn(ctx, id)
}

func (f *fakeNotificationRepo) MarkAllRead(ctx context.Context, userID uint64) error {
	return f.markAllReadFn(ctx, userID)
}

func (f *fakeNotificationRepo) Delete(ctx context.Context, id uint64) error {
	return f.deleteFn(ctx, id)
}

func (f *fakeNotificationRepo) DeleteAllForUser(ctx context.Context, userID uint64) error {
	return f.deleteAllForUserFn(ctx, userID)
}

// fakeTxManager выполняет fn без реальной транзакции и считает вызовы.
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	f.calls++
	return fn(nil)
}

// fakeCacheRepo - Redis в виде map, достаточно для проверки ротации JTI.
type fakeCacheRepo struct {
	values map[string]string
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{values: make(map[string]string)}
}

func (f *fakeCacheRepo) Get(ctx context.Context, key string) (string, error) {
	value, ok := f.values[key]
	if !ok {
		return "", redisNilError{}
	}
	return value, nil
}

func (f *fakeCacheRepo) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	switch v := value.(type) {
	case string:
		f.values[key] = v
	case uint64:
		f.values[key] = strconv.FormatUint(v, 10)
	default:
		f.values[key] = ""
	}
	return nil
}

func (f *fakeCacheRepo) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

type redisNilError struct{}

func (redisNilError) Error() string { return "redis: nil" }
