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

const equipmentTable = "equipment"

type EquipmentFilter struct {
	Status     string
	CategoryID uint64
	TeamID     uint64
	Search     string
	Limit      int
	Offset     int
}

type EquipmentRepositoryInterface interface {
	FindByID(ctx context.Context, id uint64) (*entities.Equipment, error)
	FindDTO(ctx context.Context, id uint64) (*dto.EquipmentDTO, error)
	Create(ctx context.Context, eq *entities.Equipment) (uint64, error)
	Update(ctx context.Context, eq *entities.Equipment) error
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context, scope sq.Sqlizer, filter EquipmentFilter) ([]dto.EquipmentDTO, uint64, error)
	// MarkScrapped переводит оборудование в SCRAPPED; принимает Querier,
	// чтобы выполняться внутри транзакции каскада SCRAP.
	MarkScrapped(ctx context.Context, q Querier, id uint64, when time.Time) error
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
}

func NewEquipmentRepository(storage *pgxpool.Pool) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage}
}

func (r *EquipmentRepository) FindByID(ctx context.Context, id uint64) (*entities.Equipment, error) {
	query := `
		SELECT id, name, status, category_id, team_id, technician_id, work_center_id,
			employee_name, company, location, description, assigned_date, scrap_date,
			created_at, updated_at
		FROM equipment WHERE id = $1`

	var e entities.Equipment
	var categoryID, teamID, technicianID, workCenterID sql.NullInt64
	var assignedDate, scrapDate sql.NullTime
	var createdAt, updatedAt time.Time

	err := r.storage.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.Name, &e.Status, &categoryID, &teamID, &technicianID, &workCenterID,
		&e.EmployeeName, &e.Company, &e.Location, &e.Description, &assignedDate, &scrapDate,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	e.CategoryID = utils.NullInt64ToUint64Ptr(categoryID)
	e.TeamID = utils.NullInt64ToUint64Ptr(teamID)
	e.TechnicianID = utils.NullInt64ToUint64Ptr(technicianID)
	e.WorkCenterID = utils.NullInt64ToUint64Ptr(workCenterID)
	e.AssignedDate = utils.NullTimeToTimePtr(assignedDate)
	e.ScrapDate = utils.NullTimeToTimePtr(scrapDate)
	e.CreatedAt = &createdAt
	e.UpdatedAt = &updatedAt
	return &e, nil
}

var equipmentListColumns = []string{
	"equipment.id", "equipment.name", "equipment.status", "equipment.employee_name",
	"equipment.company", "equipment.location", "equipment.description",
	"equipment.assigned_date", "equipment.scrap_date", "equipment.created_at",
	"c.id", "c.name",
	"t.id", "t.name",
	"tech.id", "tech.name",
	"wc.id", "wc.name", "wc.code",
	"(SELECT COUNT(*) FROM maintenance_requests mr WHERE mr.equipment_id = equipment.id)",
}

func (r *EquipmentRepository) joinedBuilder() sq.SelectBuilder {
	return psql.
		Select(equipmentListColumns...).
		From(equipmentTable).
		LeftJoin("categories c ON c.id = equipment.category_id").
		LeftJoin("teams t ON t.id = equipment.team_id").
		LeftJoin("users tech ON tech.id = equipment.technician_id").
		LeftJoin("work_centers wc ON wc.id = equipment.work_center_id")
}

func (r *EquipmentRepository) scanDTO(rows pgx.Row) (*dto.EquipmentDTO, error) {
	var e dto.EquipmentDTO
	var assignedDate, scrapDate sql.NullTime
	var createdAt time.Time
	var catID, teamID, techID, wcID sql.NullInt64
	var catName, teamName, techName, wcName, wcCode sql.NullString

	err := rows.Scan(
		&e.ID, &e.Name, &e.Status, &e.EmployeeName,
		&e.Company, &e.Location, &e.Description,
		&assignedDate, &scrapDate, &createdAt,
		&catID, &catName,
		&teamID, &teamName,
		&techID, &techName,
		&wcID, &wcName, &wcCode,
		&e.RequestCount,
	)
	if err != nil {
		return nil, err
	}

	e.AssignedDate = utils.NullTimeToString(assignedDate)
	e.ScrapDate = utils.NullTimeToString(scrapDate)
	e.CreatedAt = utils.FormatTime(createdAt)
	if catID.Valid {
		e.Category = &dto.ShortCategoryDTO{ID: uint64(catID.Int64), Name: catName.String}
	}
	if teamID.Valid {
		e.Team = &dto.ShortTeamDTO{ID: uint64(teamID.Int64), Name: teamName.String}
	}
	if techID.Valid {
		e.Technician = &dto.ShortUserDTO{ID: uint64(techID.Int64), Name: techName.String}
	}
	if wcID.Valid {
		e.WorkCenter = &dto.ShortWorkCenterDTO{ID: uint64(wcID.Int64), Name: wcName.String, Code: wcCode.String}
	}
	return &e, nil
}

func (r *EquipmentRepository) FindDTO(ctx context.Context, id uint64) (*dto.EquipmentDTO, error) {
	query, args, err := r.joinedBuilder().Where(sq.Eq{"equipment.id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	e, err := r.scanDTO(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *EquipmentRepository) Create(ctx context.Context, eq *entities.Equipment) (uint64, error) {
	query := `
		INSERT INTO equipment (name, status, category_id, team_id, technician_id, work_center_id,
			employee_name, company, location, description, assigned_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	var id uint64
	err := r.storage.QueryRow(ctx, query,
		eq.Name, eq.Status,
		utils.Uint64PtrToNullInt64(eq.CategoryID),
		utils.Uint64PtrToNullInt64(eq.TeamID),
		utils.Uint64PtrToNullInt64(eq.TechnicianID),
		utils.Uint64PtrToNullInt64(eq.WorkCenterID),
		eq.EmployeeName, eq.Company, eq.Location, eq.Description,
		utils.TimePtrToNullTime(eq.AssignedDate),
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *EquipmentRepository) Update(ctx context.Context, eq *entities.Equipment) error {
	query := `
		UPDATE equipment
		SET name = $1, status = $2, category_id = $3, team_id = $4, technician_id = $5,
			work_center_id = $6, employee_name = $7, company = $8, location = $9,
			description = $10, assigned_date = $11, scrap_date = $12, updated_at = CURRENT_TIMESTAMP
		WHERE id = $13`

	result, err := r.storage.Exec(ctx, query,
		eq.Name, eq.Status,
		utils.Uint64PtrToNullInt64(eq.CategoryID),
		utils.Uint64PtrToNullInt64(eq.TeamID),
		utils.Uint64PtrToNullInt64(eq.TechnicianID),
		utils.Uint64PtrToNullInt64(eq.WorkCenterID),
		eq.EmployeeName, eq.Company, eq.Location, eq.Description,
		utils.TimePtrToNullTime(eq.AssignedDate),
		utils.TimePtrToNullTime(eq.ScrapDate),
		eq.ID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) Delete(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM equipment WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) List(ctx context.Context, scope sq.Sqlizer, filter EquipmentFilter) ([]dto.EquipmentDTO, uint64, error) {
	builder := r.joinedBuilder().OrderBy("equipment.created_at DESC")
	countBuilder := psql.Select("COUNT(*)").From(equipmentTable)

	conds := make([]sq.Sqlizer, 0, 4)
	if scope != nil {
		conds = append(conds, scope)
	}
	if filter.Status != "" {
		conds = append(conds, sq.Eq{"equipment.status": filter.Status})
	}
	if filter.CategoryID != 0 {
		conds = append(conds, sq.Eq{"equipment.category_id": filter.CategoryID})
	}
	if filter.TeamID != 0 {
		conds = append(conds, sq.Eq{"equipment.team_id": filter.TeamID})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conds = append(conds, sq.Or{
			sq.ILike{"equipment.name": pattern},
			sq.ILike{"equipment.location": pattern},
			sq.ILike{"equipment.employee_name": pattern},
		})
	}

	for _, cond := range conds {
		builder = builder.Where(cond)
		countBuilder = countBuilder.Where(cond)
	}

	builder = builder.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]dto.EquipmentDTO, 0)
	for rows.Next() {
		e, err := r.scanDTO(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	total, err := countRows(ctx, r.storage, countBuilder)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *EquipmentRepository) MarkScrapped(ctx context.Context, q Querier, id uint64, when time.Time) error {
	result, err := q.Exec(ctx,
		`UPDATE equipment SET status = $1, scrap_date = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $3`,
		entities.EquipmentScrapped, when, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
