package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"maintenance-system/internal/authz"
	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/repositories"
	apperrors "maintenance-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RequestServiceInterface interface {
	GetByID(ctx context.Context, user *dto.AuthUser, id uint64) (*dto.RequestDTO, error)
	Create(ctx context.Context, user *dto.AuthUser, payload dto.CreateRequestDTO) (*dto.RequestDTO, error)
	Update(ctx context.Context, user *dto.AuthUser, id uint64, payload dto.UpdateRequestDTO) (*dto.RequestDTO, error)
	UpdateStatus(ctx context.Context, user *dto.AuthUser, id uint64, payload dto.UpdateRequestStatusDTO) (*dto.RequestDTO, error)
	AssignTechnician(ctx context.Context, user *dto.AuthUser, id uint64, payload dto.AssignTechnicianDTO) (*dto.RequestDTO, error)
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context, user *dto.AuthUser, filter repositories.RequestFilter) ([]dto.RequestDTO, uint64, error)
	Kanban(ctx context.Context, user *dto.AuthUser) ([]dto.KanbanColumnDTO, error)
	Calendar(ctx context.Context, user *dto.AuthUser, start, end time.Time) ([]dto.CalendarEventDTO, error)
}

type RequestService struct {
	requestRepo      repositories.RequestRepositoryInterface
	equipmentRepo    repositories.EquipmentRepositoryInterface
	userRepo         repositories.UserRepositoryInterface
	worksheetRepo    repositories.WorksheetRepositoryInterface
	notificationRepo repositories.NotificationRepositoryInterface
	txManager        repositories.TxManagerInterface
	logger           *zap.Logger
}

func NewRequestService(
	requestRepo repositories.RequestRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	worksheetRepo repositories.WorksheetRepositoryInterface,
	notificationRepo repositories.NotificationRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) RequestServiceInterface {
	return &RequestService{
		requestRepo:      requestRepo,
		equipmentRepo:    equipmentRepo,
		userRepo:         userRepo,
		worksheetRepo:    worksheetRepo,
		notificationRepo: notificationRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// canViewRequest повторяет предикат видимости для одиночной записи.
// Чужая заявка отдаётся как 404, существование не раскрывается.
func canViewRequest(user *dto.AuthUser, req *entities.MaintenanceRequest) bool {
	switch user.Role {
	case entities.RoleAdmin, entities.RoleManager:
		return true
	case entities.RoleUser:
		return req.CreatedByID == user.ID
	case entities.RoleTechnician:
		if req.TechnicianID != nil && *req.TechnicianID == user.ID {
			return true
		}
		return user.TeamID != nil && req.TeamID != nil && *user.TeamID == *req.TeamID
	}
	return false
}

func (s *RequestService) GetByID(ctx context.Context, user *dto.AuthUser, id uint64) (*dto.RequestDTO, error) {
	req, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canViewRequest(user, req) {
		return nil, apperrors.ErrNotFound
	}
	return s.requestRepo.FindDTO(ctx, id)
}

// Create создаёт заявку в статусе NEW. Категория и команда наследуются от
// оборудования, если оно указано.
func (s *RequestService) Create(ctx context.Context, user *dto.AuthUser, payload dto.CreateRequestDTO) (*dto.RequestDTO, error) {
	req := &entities.MaintenanceRequest{
		Subject:         payload.Subject,
		MaintenanceType: entities.MaintenanceCorrective,
		Status:          entities.RequestNew,
		Priority:        entities.DefaultPriority,
		CreatedByID:     user.ID,
		WorkCenterID:    payload.WorkCenterID.Ptr(),
		RequestDate:     time.Now(),
		ScheduledDate:   payload.ScheduledDate.Ptr(),
		Company:         payload.Company,
		Notes:           payload.Notes,
		Instructions:    payload.Instructions,
	}

	if payload.MaintenanceType != "" {
		req.MaintenanceType = entities.MaintenanceType(payload.MaintenanceType)
	}
	if payload.Priority != 0 {
		req.Priority = payload.Priority
	}

	if payload.EquipmentID.Valid {
		eq, err := s.equipmentRepo.FindByID(ctx, payload.EquipmentID.Uint64)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.BadRequest("указанное оборудование не найдено", nil)
			}
			return nil, err
		}
		req.EquipmentID = &eq.ID
		req.CategoryID = eq.CategoryID
		req.TeamID = eq.TeamID
		if req.WorkCenterID == nil {
			req.WorkCenterID = eq.WorkCenterID
		}
	}

	id, err := s.requestRepo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Создана заявка на обслуживание",
		zap.Uint64("requestId", id),
		zap.Uint64("createdBy", user.ID),
	)
	return s.requestRepo.FindDTO(ctx, id)
}

func (s *RequestService) Update(ctx context.Context, user *dto.AuthUser, id uint64, payload dto.UpdateRequestDTO) (*dto.RequestDTO, error) {
	req, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canViewRequest(user, req) {
		return nil, apperrors.ErrNotFound
	}

	if payload.Subject != "" {
		req.Subject = payload.Subject
	}
	if payload.MaintenanceType != "" {
		req.MaintenanceType = entities.MaintenanceType(payload.MaintenanceType)
	}
	if payload.Priority.Valid {
		p := payload.Priority.Int
		if p < entities.MinPriority || p > entities.MaxPriority {
			return nil, apperrors.BadRequest("приоритет должен быть от 1 до 5", nil)
		}
		req.Priority = p
	}
	if payload.EquipmentID.Valid {
		req.EquipmentID = payload.EquipmentID.Ptr()
	}
	if payload.WorkCenterID.Valid {
		req.WorkCenterID = payload.WorkCenterID.Ptr()
	}
	if payload.CategoryID.Valid {
		req.CategoryID = payload.CategoryID.Ptr()
	}
	if payload.TeamID.Valid {
		req.TeamID = payload.TeamID.Ptr()
	}
	if payload.ScheduledDate.Valid {
		req.ScheduledDate = payload.ScheduledDate.Ptr()
	}
	if payload.Notes.Valid {
		req.Notes = payload.Notes.String
	}
	if payload.Instructions.Valid {
		req.Instructions = payload.Instructions.String
	}

	if err := s.requestRepo.Update(ctx, req); err != nil {
		return nil, err
	}
	return s.requestRepo.FindDTO(ctx, id)
}

// UpdateStatus проводит заявку по жизненному циклу. Перевод в SCRAP списывает
// связанное оборудование и пишет запись журнала в одной транзакции с
// изменением статуса.
func (s *RequestService) UpdateStatus(ctx context.Context, user *dto.AuthUser, id uint64, payload dto.UpdateRequestStatusDTO) (*dto.RequestDTO, error) {
	req, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canViewRequest(user, req) {
		return nil, apperrors.ErrNotFound
	}

	newStatus := entities.RequestStatus(payload.Status)
	if !entities.CanTransition(req.Status, newStatus) {
		return nil, apperrors.BadRequest(
			fmt.Sprintf("переход статуса %s -> %s недопустим", req.Status, newStatus), nil)
	}

	if newStatus == entities.RequestScrap {
		err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
			if err := s.requestRepo.UpdateStatus(ctx, tx, id, newStatus); err != nil {
				return err
			}
			// Запись журнала о списании имеет смысл только при связанном
			// оборудовании; заявка без него просто меняет статус.
			if req.EquipmentID != nil {
				if err := s.equipmentRepo.MarkScrapped(ctx, tx, *req.EquipmentID, time.Now()); err != nil {
					return err
				}
				ws := &entities.Worksheet{
					Content:   fmt.Sprintf("Заявка переведена в SCRAP пользователем %s, оборудование списано.", user.Name),
					RequestID: id,
					AuthorID:  user.ID,
				}
				if _, err := s.worksheetRepo.Create(ctx, tx, ws); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		s.logger.Info("Заявка переведена в SCRAP",
			zap.Uint64("requestId", id),
			zap.Uint64("actorId", user.ID),
			zap.Bool("equipmentScrapped", req.EquipmentID != nil),
		)
	} else {
		err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
			return s.requestRepo.UpdateStatus(ctx, tx, id, newStatus)
		})
		if err != nil {
			return nil, err
		}
	}

	if newStatus == entities.RequestRepaired {
		s.notifyCompleted(ctx, req)
	}

	return s.requestRepo.FindDTO(ctx, id)
}

// notifyCompleted уведомляет автора заявки о завершении ремонта.
// Сбой уведомления не откатывает смену статуса.
func (s *RequestService) notifyCompleted(ctx context.Context, req *entities.MaintenanceRequest) {
	requestID := req.ID
	notification := &entities.Notification{
		Type:      entities.NotificationCompleted,
		Title:     "Ремонт завершён",
		Message:   fmt.Sprintf("Заявка «%s» переведена в статус REPAIRED.", req.Subject),
		UserID:    req.CreatedByID,
		RequestID: &requestID,
	}
	if _, err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.Warn("Не удалось создать уведомление о завершении",
			zap.Uint64("requestId", req.ID),
			zap.Error(err),
		)
	}
}

// AssignTechnician назначает исполнителя. Назначить можно только
// пользователя с ролью TECHNICIAN; техник получает уведомление.
func (s *RequestService) AssignTechnician(ctx context.Context, user *dto.AuthUser, id uint64, payload dto.AssignTechnicianDTO) (*dto.RequestDTO, error) {
	req, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canViewRequest(user, req) {
		return nil, apperrors.ErrNotFound
	}

	technician, err := s.userRepo.FindByID(ctx, payload.TechnicianID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.BadRequest("указанный техник не найден", nil)
		}
		return nil, err
	}
	if technician.Role != entities.RoleTechnician {
		return nil, apperrors.BadRequest("назначить можно только пользователя с ролью TECHNICIAN", nil)
	}

	if err := s.requestRepo.AssignTechnician(ctx, id, technician.ID); err != nil {
		return nil, err
	}

	requestID := req.ID
	notification := &entities.Notification{
		Type:      entities.NotificationRequest,
		Title:     "Новая заявка",
		Message:   fmt.Sprintf("Вам назначена заявка «%s».", req.Subject),
		UserID:    technician.ID,
		RequestID: &requestID,
	}
	if _, err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.Warn("Не удалось создать уведомление о назначении",
			zap.Uint64("requestId", req.ID),
			zap.Error(err),
		)
	}

	return s.requestRepo.FindDTO(ctx, id)
}

func (s *RequestService) Delete(ctx context.Context, id uint64) error {
	return s.requestRepo.Delete(ctx, id)
}

func (s *RequestService) List(ctx context.Context, user *dto.AuthUser, filter repositories.RequestFilter) ([]dto.RequestDTO, uint64, error) {
	scope := authz.Scope(user, authz.KindRequest)
	return s.requestRepo.List(ctx, scope, filter)
}

// Kanban группирует видимые заявки по фиксированным колонкам статусов.
func (s *RequestService) Kanban(ctx context.Context, user *dto.AuthUser) ([]dto.KanbanColumnDTO, error) {
	scope := authz.Scope(user, authz.KindRequest)
	items, err := s.requestRepo.ListKanban(ctx, scope)
	if err != nil {
		return nil, err
	}

	byStatus := make(map[string][]dto.RequestDTO, len(entities.KanbanStatuses))
	for _, item := range items {
		byStatus[item.Status] = append(byStatus[item.Status], item)
	}

	columns := make([]dto.KanbanColumnDTO, 0, len(entities.KanbanStatuses))
	for _, status := range entities.KanbanStatuses {
		requests := byStatus[string(status)]
		if requests == nil {
			requests = make([]dto.RequestDTO, 0)
		}
		columns = append(columns, dto.KanbanColumnDTO{Status: string(status), Requests: requests})
	}
	return columns, nil
}

// Calendar отдаёт плановые (PREVENTIVE) заявки окна как события календаря.
func (s *RequestService) Calendar(ctx context.Context, user *dto.AuthUser, start, end time.Time) ([]dto.CalendarEventDTO, error) {
	scope := authz.Scope(user, authz.KindRequest)
	items, err := s.requestRepo.ListCalendar(ctx, scope, start, end)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	events := make([]dto.CalendarEventDTO, 0, len(items))
	for _, item := range items {
		event := dto.CalendarEventDTO{
			ID:    item.ID,
			Title: item.Subject,
			Start: item.ScheduledDate,
			End:   item.ScheduledDate,
			ExtendedProps: dto.CalendarEventProps{
				Equipment:  item.Equipment,
				Technician: item.Technician,
				Priority:   item.Priority,
				Status:     item.Status,
			},
			Assigned: item.Technician != nil,
		}
		if item.ScheduledDate != nil &&
			(item.Status == string(entities.RequestNew) || item.Status == string(entities.RequestInProgress)) {
			if scheduled, err := time.ParseInLocation("2006-01-02 15:04:05", *item.ScheduledDate, time.Local); err == nil {
				event.Overdue = scheduled.Before(now)
			}
		}
		events = append(events, event)
	}
	return events, nil
}
