package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/utils"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const requestTable = "maintenance_requests"

type RequestFilter struct {
	Status          string
	MaintenanceType string
	Priority        int
	EquipmentID     uint64
	TeamID          uint64
	TechnicianID    uint64
	Search          string
	Limit           int
	Offset          int
}

type RequestRepositoryInterface interface {
	FindByID(ctx context.Context, id uint64) (*entities.MaintenanceRequest, error)
	FindDTO(ctx context.Context, id uint64) (*dto.RequestDTO, error)
	Create(ctx context.Context, req *entities.MaintenanceRequest) (uint64, error)
	Update(ctx context.Context, req *entities.MaintenanceRequest) error
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context, scope sq.Sqlizer, filter RequestFilter) ([]dto.RequestDTO, uint64, error)
	ListByEquipment(ctx context.Context, equipmentID uint64, limit, offset int) ([]dto.RequestDTO, uint64, error)
	// ListKanban возвращает все заявки в области видимости, отсортированные
	// по приоритету; группировка по колонкам выполняется в сервисе.
	ListKanban(ctx context.Context, scope sq.Sqlizer) ([]dto.RequestDTO, error)
	// ListCalendar возвращает плановые заявки с запланированной датой в окне.
	ListCalendar(ctx context.Context, scope sq.Sqlizer, start, end time.Time) ([]dto.RequestDTO, error)
	// UpdateStatus принимает Querier и используется внутри транзакции каскада SCRAP.
	UpdateStatus(ctx context.Context, q Querier, id uint64, status entities.RequestStatus) error
	AssignTechnician(ctx context.Context, id, technicianID uint64) error
}

type RequestRepository struct {
	storage *pgxpool.Pool
}

func NewRequestRepository(storage *pgxpool.Pool) RequestRepositoryInterface {
	return &RequestRepository{storage: storage}
}

func (r *RequestRepository) FindByID(ctx context.Context, id uint64) (*entities.MaintenanceRequest, error) {
	query := `
		SELECT id, subject, maintenance_type, status, priority, created_by_id,
			equipment_id, work_center_id, category_id, team_id, technician_id,
			request_date, scheduled_date, company, notes, instructions,
			created_at, updated_at
		FROM maintenance_requests WHERE id = $1`

	var m entities.MaintenanceRequest
	var equipmentID, workCenterID, categoryID, teamID, technicianID sql.NullInt64
	var scheduledDate sql.NullTime
	var createdAt, updatedAt time.Time

	err := r.storage.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.Subject, &m.MaintenanceType, &m.Status, &m.Priority, &m.CreatedByID,
		&equipmentID, &workCenterID, &categoryID, &teamID, &technicianID,
		&m.RequestDate, &scheduledDate, &m.Company, &m.Notes, &m.Instructions,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	m.EquipmentID = utils.NullInt64ToUint64Ptr(equipmentID)
	m.WorkCenterID = utils.NullInt64ToUint64Ptr(workCenterID)
	m.CategoryID = utils.NullInt64ToUint64Ptr(categoryID)
	m.TeamID = utils.NullInt64ToUint64Ptr(teamID)
	m.TechnicianID = utils.NullInt64ToUint64Ptr(technicianID)
	m.ScheduledDate = utils.NullTimeToTimePtr(scheduledDate)
	m.CreatedAt = &createdAt
	m.UpdatedAt = &updatedAt
	return &m, nil
}

var requestListColumns = []string{
	"maintenance_requests.id", "maintenance_requests.subject", "maintenance_requests.maintenance_type", "maintenance_requests.status", "maintenance_requests.priority",
	"maintenance_requests.request_date", "maintenance_requests.scheduled_date", "maintenance_requests.company", "maintenance_requests.notes", "maintenance_requests.instructions",
	"maintenance_requests.created_at",
	"creator.id", "creator.name",
	"e.id", "e.name", "e.status",
	"wc.id", "wc.name", "wc.code",
	"c.id", "c.name",
	"t.id", "t.name",
	"tech.id", "tech.name",
	"(SELECT COUNT(*) FROM worksheets w WHERE w.request_id = maintenance_requests.id)",
}

func (r *RequestRepository) joinedBuilder() sq.SelectBuilder {
	return psql.
		Select(requestListColumns...).
		From("maintenance_requests").
		LeftJoin("users creator ON creator.id = maintenance_requests.created_by_id").
		LeftJoin("equipment e ON e.id = maintenance_requests.equipment_id").
		LeftJoin("work_centers wc ON wc.id = maintenance_requests.work_center_id").
		LeftJoin("categories c ON c.id = maintenance_requests.category_id").
		LeftJoin("teams t ON t.id = maintenance_requests.team_id").
		LeftJoin("users tech ON tech.id = maintenance_requests.technician_id")
}

func (r *RequestRepository) scanDTO(row pgx.Row) (*dto.RequestDTO, error) {
	var m dto.RequestDTO
	var requestDate, createdAt time.Time
	var scheduledDate sql.NullTime
	var creatorID, eqID, wcID, catID, teamID, techID sql.NullInt64
	var creatorName, eqName, eqStatus, wcName, wcCode, catName, teamName, techName sql.NullString

	err := row.Scan(
		&m.ID, &m.Subject, &m.MaintenanceType, &m.Status, &m.Priority,
		&requestDate, &scheduledDate, &m.Company, &m.Notes, &m.Instructions,
		&createdAt,
		&creatorID, &creatorName,
		&eqID, &eqName, &eqStatus,
		&wcID, &wcName, &wcCode,
		&catID, &catName,
		&teamID, &teamName,
		&techID, &techName,
		&m.WorksheetCount,
	)
	if err != nil {
		return nil, err
	}

	m.RequestDate = utils.FormatTime(requestDate)
	m.ScheduledDate = utils.NullTimeToString(scheduledDate)
	m.CreatedAt = utils.FormatTime(createdAt)
	if creatorID.Valid {
		m.CreatedBy = &dto.ShortUserDTO{ID: uint64(creatorID.Int64), Name: creatorName.String}
	}
	if eqID.Valid {
		m.Equipment = &dto.ShortEquipmentDTO{ID: uint64(eqID.Int64), Name: eqName.String, Status: eqStatus.String}
	}
	if wcID.Valid {
		m.WorkCenter = &dto.ShortWorkCenterDTO{ID: uint64(wcID.Int64), Name: wcName.String, Code: wcCode.String}
	}
	if catID.Valid {
		m.Category = &dto.ShortCategoryDTO{ID: uint64(catID.Int64), Name: catName.String}
	}
	if teamID.Valid {
		m.Team = &dto.ShortTeamDTO{ID: uint64(teamID.Int64), Name: teamName.String}
	}
	if techID.Valid {
		m.Technician = &dto.ShortUserDTO{ID: uint64(techID.Int64), Name: techName.String}
	}
	return &m, nil
}

func (r *RequestRepository) FindDTO(ctx context.Context, id uint64) (*dto.RequestDTO, error) {
	query, args, err := r.joinedBuilder().Where(sq.Eq{"maintenance_requests.id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	m, err := r.scanDTO(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *RequestRepository) Create(ctx context.Context, req *entities.MaintenanceRequest) (uint64, error) {
	query := `
		INSERT INTO maintenance_requests (subject, maintenance_type, status, priority,
			created_by_id, equipment_id, work_center_id, category_id, team_id, technician_id,
			request_date, scheduled_date, company, notes, instructions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id`

	var id uint64
	err := r.storage.QueryRow(ctx, query,
		req.Subject, req.MaintenanceType, req.Status, req.Priority,
		req.CreatedByID,
		utils.Uint64PtrToNullInt64(req.EquipmentID),
		utils.Uint64PtrToNullInt64(req.WorkCenterID),
		utils.Uint64PtrToNullInt64(req.CategoryID),
		utils.Uint64PtrToNullInt64(req.TeamID),
		utils.Uint64PtrToNullInt64(req.TechnicianID),
		req.RequestDate,
		utils.TimePtrToNullTime(req.ScheduledDate),
		req.Company, req.Notes, req.Instructions,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *RequestRepository) Update(ctx context.Context, req *entities.MaintenanceRequest) error {
	query := `
		UPDATE maintenance_requests
		SET subject = $1, maintenance_type = $2, priority = $3, equipment_id = $4,
			work_center_id = $5, category_id = $6, team_id = $7, scheduled_date = $8,
			notes = $9, instructions = $10, updated_at = CURRENT_TIMESTAMP
		WHERE id = $11`

	result, err := r.storage.Exec(ctx, query,
		req.Subject, req.MaintenanceType, req.Priority,
		utils.Uint64PtrToNullInt64(req.EquipmentID),
		utils.Uint64PtrToNullInt64(req.WorkCenterID),
		utils.Uint64PtrToNullInt64(req.CategoryID),
		utils.Uint64PtrToNullInt64(req.TeamID),
		utils.TimePtrToNullTime(req.ScheduledDate),
		req.Notes, req.Instructions,
		req.ID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *RequestRepository) Delete(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM maintenance_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *RequestRepository) queryDTOs(ctx context.Context, builder sq.SelectBuilder) ([]dto.RequestDTO, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]dto.RequestDTO, 0)
	for rows.Next() {
		m, err := r.scanDTO(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

func (r *RequestRepository) List(ctx context.Context, scope sq.Sqlizer, filter RequestFilter) ([]dto.RequestDTO, uint64, error) {
	builder := r.joinedBuilder().OrderBy("maintenance_requests.created_at DESC")
	countBuilder := psql.Select("COUNT(*)").From("maintenance_requests")

	conds := make([]sq.Sqlizer, 0, 7)
	if scope != nil {
		conds = append(conds, scope)
	}
	if filter.Status != "" {
		conds = append(conds, sq.Eq{"maintenance_requests.status": filter.Status})
	}
	if filter.MaintenanceType != "" {
		conds = append(conds, sq.Eq{"maintenance_requests.maintenance_type": filter.MaintenanceType})
	}
	if filter.Priority != 0 {
		conds = append(conds, sq.Eq{"maintenance_requests.priority": filter.Priority})
	}
	if filter.EquipmentID != 0 {
		conds = append(conds, sq.Eq{"maintenance_requests.equipment_id": filter.EquipmentID})
	}
	if filter.TeamID != 0 {
		conds = append(conds, sq.Eq{"maintenance_requests.team_id": filter.TeamID})
	}
	if filter.TechnicianID != 0 {
		conds = append(conds, sq.Eq{"maintenance_requests.technician_id": filter.TechnicianID})
	}
	if filter.Search != "" {
		conds = append(conds, sq.ILike{"maintenance_requests.subject": "%" + filter.Search + "%"})
	}

	for _, cond := range conds {
		builder = builder.Where(cond)
		countBuilder = countBuilder.Where(cond)
	}

	builder = builder.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))

	items, err := r.queryDTOs(ctx, builder)
	if err != nil {
		return nil, 0, err
	}

	total, err := countRows(ctx, r.storage, countBuilder)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *RequestRepository) ListByEquipment(ctx context.Context, equipmentID uint64, limit, offset int) ([]dto.RequestDTO, uint64, error) {
	cond := sq.Eq{"maintenance_requests.equipment_id": equipmentID}

	builder := r.joinedBuilder().
		Where(cond).
		OrderBy("maintenance_requests.created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	items, err := r.queryDTOs(ctx, builder)
	if err != nil {
		return nil, 0, err
	}

	total, err := countRows(ctx, r.storage, psql.Select("COUNT(*)").From("maintenance_requests").Where(cond))
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *RequestRepository) ListKanban(ctx context.Context, scope sq.Sqlizer) ([]dto.RequestDTO, error) {
	builder := r.joinedBuilder().OrderBy("maintenance_requests.priority DESC", "maintenance_requests.created_at DESC")
	if scope != nil {
		builder = builder.Where(scope)
	}
	return r.queryDTOs(ctx, builder)
}

func (r *RequestRepository) ListCalendar(ctx context.Context, scope sq.Sqlizer, start, end time.Time) ([]dto.RequestDTO, error) {
	builder := r.joinedBuilder().
		Where(sq.Eq{"maintenance_requests.maintenance_type": entities.MaintenancePreventive}).
		Where(sq.GtOrEq{"maintenance_requests.scheduled_date": start}).
		Where(sq.LtOrEq{"maintenance_requests.scheduled_date": end}).
		OrderBy("maintenance_requests.scheduled_date ASC")
	if scope != nil {
		builder = builder.Where(scope)
	}
	return r.queryDTOs(ctx, builder)
}

func (r *RequestRepository) UpdateStatus(ctx context.Context, q Querier, id uint64, status entities.RequestStatus) error {
	result, err := q.Exec(ctx,
		`UPDATE maintenance_requests SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		status, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *RequestRepository) AssignTechnician(ctx context.Context, id, technicianID uint64) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE maintenance_requests SET technician_id = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		technicianID, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
