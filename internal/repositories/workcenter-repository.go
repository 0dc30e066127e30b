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

const workCentersTable = "work_centers"

type WorkCenterRepositoryInterface interface {
	FindByID(ctx context.Context, id uint64) (*entities.WorkCenter, error)
	FindByCode(ctx context.Context, code string) (*entities.WorkCenter, error)
	Create(ctx context.Context, wc *entities.WorkCenter) (uint64, error)
	Update(ctx context.Context, wc *entities.WorkCenter) error
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context, scope sq.Sqlizer, search string, limit, offset int) ([]dto.WorkCenterDTO, uint64, error)
}

type WorkCenterRepository struct {
	storage *pgxpool.Pool
}

func NewWorkCenterRepository(storage *pgxpool.Pool) WorkCenterRepositoryInterface {
	return &WorkCenterRepository{storage: storage}
}

func (r *WorkCenterRepository) scan(row pgx.Row) (*entities.WorkCenter, error) {
	var wc entities.WorkCenter
	var tag sql.NullString
	var altID sql.NullInt64
	var createdAt, updatedAt time.Time

	err := row.Scan(&wc.ID, &wc.Name, &wc.Code, &tag, &altID,
		&wc.CostPerHour, &wc.Capacity, &wc.TimeEfficiency, &wc.OEETarget,
		&createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	wc.Tag = utils.NullStringToStrPtr(tag)
	wc.AlternativeCenterID = utils.NullInt64ToUint64Ptr(altID)
	wc.CreatedAt = &createdAt
	wc.UpdatedAt = &updatedAt
	return &wc, nil
}

const workCenterFields = `id, name, code, tag, alternative_center_id, cost_per_hour, capacity, time_efficiency, oee_target, created_at, updated_at`

func (r *WorkCenterRepository) FindByID(ctx context.Context, id uint64) (*entities.WorkCenter, error) {
	return r.scan(r.storage.QueryRow(ctx, `SELECT `+workCenterFields+` FROM work_centers WHERE id = $1`, id))
}

func (r *WorkCenterRepository) FindByCode(ctx context.Context, code string) (*entities.WorkCenter, error) {
	return r.scan(r.storage.QueryRow(ctx, `SELECT `+workCenterFields+` FROM work_centers WHERE code = $1`, code))
}

func (r *WorkCenterRepository) Create(ctx context.Context, wc *entities.WorkCenter) (uint64, error) {
	query := `
		INSERT INTO work_centers (name, code, tag, alternative_center_id, cost_per_hour, capacity, time_efficiency, oee_target)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	var id uint64
	err := r.storage.QueryRow(ctx, query,
		wc.Name, wc.Code,
		utils.StringPtrToNullString(wc.Tag),
		utils.Uint64PtrToNullInt64(wc.AlternativeCenterID),
		wc.CostPerHour, wc.Capacity, wc.TimeEfficiency, wc.OEETarget,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *WorkCenterRepository) Update(ctx context.Context, wc *entities.WorkCenter) error {
	query := `
		UPDATE work_centers
		SET name = $1, code = $2, tag = $3, alternative_center_id = $4,
			cost_per_hour = $5, capacity = $6, time_efficiency = $7, oee_target = $8,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $9`

	result, err := r.storage.Exec(ctx, query,
		wc.Name, wc.Code,
		utils.StringPtrToNullString(wc.Tag),
		utils.Uint64PtrToNullInt64(wc.AlternativeCenterID),
		wc.CostPerHour, wc.Capacity, wc.TimeEfficiency, wc.OEETarget,
		wc.ID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *WorkCenterRepository) Delete(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM work_centers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *WorkCenterRepository) List(ctx context.Context, scope sq.Sqlizer, search string, limit, offset int) ([]dto.WorkCenterDTO, uint64, error) {
	builder := psql.
		Select("work_centers.id", "work_centers.name", "work_centers.code", "work_centers.tag",
			"work_centers.alternative_center_id", "work_centers.cost_per_hour", "work_centers.capacity",
			"work_centers.time_efficiency", "work_centers.oee_target", "work_centers.created_at",
			"(SELECT COUNT(*) FROM equipment e WHERE e.work_center_id = work_centers.id)",
			"(SELECT COUNT(*) FROM maintenance_requests r WHERE r.work_center_id = work_centers.id)").
		From(workCentersTable).
		OrderBy("work_centers.name ASC")

	countBuilder := psql.Select("COUNT(*)").From(workCentersTable)

	if scope != nil {
		builder = builder.Where(scope)
		countBuilder = countBuilder.Where(scope)
	}
	if search != "" {
		cond := sq.Or{
			sq.ILike{"work_centers.name": "%" + search + "%"},
			sq.ILike{"work_centers.code": "%" + search + "%"},
		}
		builder = builder.Where(cond)
		countBuilder = countBuilder.Where(cond)
	}

	builder = builder.Limit(uint64(limit)).Offset(uint64(offset))

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	centers := make([]dto.WorkCenterDTO, 0)
	for rows.Next() {
		var wc dto.WorkCenterDTO
		var tag sql.NullString
		var altID sql.NullInt64
		var createdAt time.Time

		if err := rows.Scan(&wc.ID, &wc.Name, &wc.Code, &tag, &altID,
			&wc.CostPerHour, &wc.Capacity, &wc.TimeEfficiency, &wc.OEETarget,
			&createdAt, &wc.EquipmentCount, &wc.RequestCount); err != nil {
			return nil, 0, err
		}
		wc.Tag = utils.NullStringToStrPtr(tag)
		wc.AlternativeCenterID = utils.NullInt64ToUint64Ptr(altID)
		wc.CreatedAt = utils.FormatTime(createdAt)
		centers = append(centers, wc)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	total, err := countRows(ctx, r.storage, countBuilder)
	if err != nil {
		return nil, 0, err
	}

	return centers, total, nil
}
