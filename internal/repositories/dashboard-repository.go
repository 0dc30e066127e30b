package repositories

import (
	"context"
	"database/sql"
	"time"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/pkg/utils"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DashboardRepositoryInterface - агрегаты для сводок. Методы со scope
// принимают предикат видимости и применяют его как обычное условие.
type DashboardRepositoryInterface interface {
	CountEquipment(ctx context.Context, scope sq.Sqlizer) (uint64, error)
	CountCriticalEquipment(ctx context.Context) (uint64, error)
	EquipmentByStatus(ctx context.Context) ([]dto.StatusCountDTO, error)
	CountOpenRequests(ctx context.Context) (uint64, error)
	RequestsByStatus(ctx context.Context, scope sq.Sqlizer) ([]dto.StatusCountDTO, error)
	RequestsByType(ctx context.Context) ([]dto.TypeCountDTO, error)
	CountOverduePreventive(ctx context.Context, now time.Time) (uint64, error)
	RecentRequests(ctx context.Context, limit int) ([]dto.RecentRequestDTO, error)
	TechnicianUtilization(ctx context.Context) (dto.TechnicianUtilizationDTO, error)
	CountRequestsByTechnician(ctx context.Context, technicianID uint64) (uint64, error)
	CountRequestsByTeam(ctx context.Context, teamID uint64) (uint64, error)
	CountTeams(ctx context.Context) (uint64, error)
	CountUsers(ctx context.Context) (uint64, error)
	CountWorkCenters(ctx context.Context) (uint64, error)
}

type DashboardRepository struct {
	storage *pgxpool.Pool
}

func NewDashboardRepository(storage *pgxpool.Pool) DashboardRepositoryInterface {
	return &DashboardRepository{storage: storage}
}

func (r *DashboardRepository) CountEquipment(ctx context.Context, scope sq.Sqlizer) (uint64, error) {
	builder := psql.Select("COUNT(*)").From("equipment")
	if scope != nil {
		builder = builder.Where(scope)
	}
	return countRows(ctx, r.storage, builder)
}

// criticalEquipmentBuilder - активное оборудование с открытой заявкой
// приоритета от CriticalPriority и выше.
func criticalEquipmentBuilder() sq.SelectBuilder {
	return psql.Select("COUNT(DISTINCT equipment.id)").
		From("equipment").
		Join("maintenance_requests ON maintenance_requests.equipment_id = equipment.id").
		Where(sq.Eq{"equipment.status": entities.EquipmentActive}).
		Where(sq.GtOrEq{"maintenance_requests.priority": entities.CriticalPriority}).
		Where(sq.Eq{"maintenance_requests.status": []entities.RequestStatus{entities.RequestNew, entities.RequestInProgress}})
}

func (r *DashboardRepository) CountCriticalEquipment(ctx context.Context) (uint64, error) {
	return countRows(ctx, r.storage, criticalEquipmentBuilder())
}

func (r *DashboardRepository) EquipmentByStatus(ctx context.Context) ([]dto.StatusCountDTO, error) {
	builder := psql.Select("status", "COUNT(*)").From("equipment").GroupBy("status").OrderBy("status")
	return r.statusCounts(ctx, builder)
}

func (r *DashboardRepository) CountOpenRequests(ctx context.Context) (uint64, error) {
	builder := psql.Select("COUNT(*)").From("maintenance_requests").
		Where(sq.Eq{"status": []entities.RequestStatus{entities.RequestNew, entities.RequestInProgress}})
	return countRows(ctx, r.storage, builder)
}

func (r *DashboardRepository) RequestsByStatus(ctx context.Context, scope sq.Sqlizer) ([]dto.StatusCountDTO, error) {
	builder := psql.Select("maintenance_requests.status", "COUNT(*)").
		From("maintenance_requests").
		GroupBy("maintenance_requests.status").
		OrderBy("maintenance_requests.status")
	if scope != nil {
		builder = builder.Where(scope)
	}
	return r.statusCounts(ctx, builder)
}

func (r *DashboardRepository) statusCounts(ctx context.Context, builder sq.SelectBuilder) ([]dto.StatusCountDTO, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]dto.StatusCountDTO, 0)
	for rows.Next() {
		var s dto.StatusCountDTO
		if err := rows.Scan(&s.Status, &s.Count); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

func (r *DashboardRepository) RequestsByType(ctx context.Context) ([]dto.TypeCountDTO, error) {
	query, args, err := psql.Select("maintenance_type", "COUNT(*)").
		From("maintenance_requests").
		GroupBy("maintenance_type").
		OrderBy("maintenance_type").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]dto.TypeCountDTO, 0)
	for rows.Next() {
		var t dto.TypeCountDTO
		if err := rows.Scan(&t.MaintenanceType, &t.Count); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

func (r *DashboardRepository) CountOverduePreventive(ctx context.Context, now time.Time) (uint64, error) {
	builder := psql.Select("COUNT(*)").From("maintenance_requests").
		Where(sq.Eq{"maintenance_type": entities.MaintenancePreventive}).
		Where(sq.Eq{"status": []entities.RequestStatus{entities.RequestNew, entities.RequestInProgress}}).
		Where(sq.Lt{"scheduled_date": now})
	return countRows(ctx, r.storage, builder)
}

func (r *DashboardRepository) RecentRequests(ctx context.Context, limit int) ([]dto.RecentRequestDTO, error) {
	query, args, err := psql.
		Select("mr.id", "mr.subject", "mr.status", "mr.priority", "e.name", "u.name", "mr.created_at").
		From("maintenance_requests mr").
		LeftJoin("equipment e ON e.id = mr.equipment_id").
		LeftJoin("users u ON u.id = mr.created_by_id").
		OrderBy("mr.created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]dto.RecentRequestDTO, 0)
	for rows.Next() {
		var item dto.RecentRequestDTO
		var equipmentName, createdByName sql.NullString
		var createdAt time.Time
		if err := rows.Scan(&item.ID, &item.Subject, &item.Status, &item.Priority,
			&equipmentName, &createdByName, &createdAt); err != nil {
			return nil, err
		}
		item.EquipmentName = utils.NullStringToStrPtr(equipmentName)
		item.CreatedByName = createdByName.String
		item.CreatedAt = utils.FormatTime(createdAt)
		items = append(items, item)
	}
	return items, rows.Err()
}

// TechnicianUtilization: техник занят, если на нём есть заявка IN_PROGRESS.
func (r *DashboardRepository) TechnicianUtilization(ctx context.Context) (dto.TechnicianUtilizationDTO, error) {
	var u dto.TechnicianUtilizationDTO

	total, err := countRows(ctx, r.storage,
		psql.Select("COUNT(*)").From("users").Where(sq.Eq{"role": entities.RoleTechnician}))
	if err != nil {
		return u, err
	}

	busy, err := countRows(ctx, r.storage,
		psql.Select("COUNT(DISTINCT technician_id)").From("maintenance_requests").
			Where(sq.Eq{"status": entities.RequestInProgress}).
			Where(sq.NotEq{"technician_id": nil}))
	if err != nil {
		return u, err
	}

	u.Total = total
	u.Busy = busy
	if total > 0 {
		u.Percentage = int(busy * 100 / total)
	}
	return u, nil
}

func (r *DashboardRepository) CountRequestsByTechnician(ctx context.Context, technicianID uint64) (uint64, error) {
	return countRows(ctx, r.storage,
		psql.Select("COUNT(*)").From("maintenance_requests").Where(sq.Eq{"technician_id": technicianID}))
}

func (r *DashboardRepository) CountRequestsByTeam(ctx context.Context, teamID uint64) (uint64, error) {
	return countRows(ctx, r.storage,
		psql.Select("COUNT(*)").From("maintenance_requests").Where(sq.Eq{"team_id": teamID}))
}

func (r *DashboardRepository) CountTeams(ctx context.Context) (uint64, error) {
	return countRows(ctx, r.storage, psql.Select("COUNT(*)").From("teams"))
}

func (r *DashboardRepository) CountUsers(ctx context.Context) (uint64, error) {
	return countRows(ctx, r.storage, psql.Select("COUNT(*)").From("users"))
}

func (r *DashboardRepository) CountWorkCenters(ctx context.Context) (uint64, error) {
	return countRows(ctx, r.storage, psql.Select("COUNT(*)").From("work_centers"))
}
