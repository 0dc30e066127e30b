package repositories

import (
	"context"
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

const teamsTable = "teams"

type TeamRepositoryInterface interface {
	FindByID(ctx context.Context, id uint64) (*entities.Team, error)
	FindDTO(ctx context.Context, id uint64) (*dto.TeamDTO, error)
	Create(ctx context.Context, team *entities.Team) (uint64, error)
	Update(ctx context.Context, team *entities.Team) error
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context, search string, limit, offset int) ([]dto.TeamDTO, uint64, error)
}

type TeamRepository struct {
	storage *pgxpool.Pool
}

func NewTeamRepository(storage *pgxpool.Pool) TeamRepositoryInterface {
	return &TeamRepository{storage: storage}
}

func (r *TeamRepository) FindByID(ctx context.Context, id uint64) (*entities.Team, error) {
	var t entities.Team
	var createdAt, updatedAt time.Time

	err := r.storage.QueryRow(ctx,
		`SELECT id, name, company, created_at, updated_at FROM teams WHERE id = $1`, id).
		Scan(&t.ID, &t.Name, &t.Company, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	t.CreatedAt = &createdAt
	t.UpdatedAt = &updatedAt
	return &t, nil
}

func (r *TeamRepository) FindDTO(ctx context.Context, id uint64) (*dto.TeamDTO, error) {
	query := `
		SELECT t.id, t.name, t.company, t.created_at,
			(SELECT COUNT(*) FROM equipment e WHERE e.team_id = t.id),
			(SELECT COUNT(*) FROM maintenance_requests r WHERE r.team_id = t.id)
		FROM teams t
		WHERE t.id = $1`

	var team dto.TeamDTO
	var createdAt time.Time
	err := r.storage.QueryRow(ctx, query, id).
		Scan(&team.ID, &team.Name, &team.Company, &createdAt, &team.EquipmentCount, &team.RequestCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	team.CreatedAt = utils.FormatTime(createdAt)

	members, err := r.membersOf(ctx, []uint64{team.ID})
	if err != nil {
		return nil, err
	}
	team.Members = members[team.ID]
	if team.Members == nil {
		team.Members = make([]dto.TeamMemberDTO, 0)
	}
	return &team, nil
}

func (r *TeamRepository) Create(ctx context.Context, team *entities.Team) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx,
		`INSERT INTO teams (name, company) VALUES ($1, $2) RETURNING id`,
		team.Name, team.Company).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *TeamRepository) Update(ctx context.Context, team *entities.Team) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE teams SET name = $1, company = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $3`,
		team.Name, team.Company, team.ID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *TeamRepository) List(ctx context.Context, search string, limit, offset int) ([]dto.TeamDTO, uint64, error) {
	builder := psql.
		Select("t.id", "t.name", "t.company", "t.created_at",
			"(SELECT COUNT(*) FROM equipment e WHERE e.team_id = t.id)",
			"(SELECT COUNT(*) FROM maintenance_requests r WHERE r.team_id = t.id)").
		From(teamsTable + " t").
		OrderBy("t.name ASC")

	countBuilder := psql.Select("COUNT(*)").From(teamsTable + " t")

	if search != "" {
		cond := sq.ILike{"t.name": "%" + search + "%"}
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

	teams := make([]dto.TeamDTO, 0)
	ids := make([]uint64, 0)
	for rows.Next() {
		var t dto.TeamDTO
		var createdAt time.Time
		if err := rows.Scan(&t.ID, &t.Name, &t.Company, &createdAt, &t.EquipmentCount, &t.RequestCount); err != nil {
			return nil, 0, err
		}
		t.CreatedAt = utils.FormatTime(createdAt)
		t.Members = make([]dto.TeamMemberDTO, 0)
		teams = append(teams, t)
		ids = append(ids, t.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if len(ids) > 0 {
		members, err := r.membersOf(ctx, ids)
		if err != nil {
			return nil, 0, err
		}
		for i := range teams {
			if m, ok := members[teams[i].ID]; ok {
				teams[i].Members = m
			}
		}
	}

	total, err := countRows(ctx, r.storage, countBuilder)
	if err != nil {
		return nil, 0, err
	}

	return teams, total, nil
}

func (r *TeamRepository) membersOf(ctx context.Context, teamIDs []uint64) (map[uint64][]dto.TeamMemberDTO, error) {
	query, args, err := psql.
		Select("u.team_id", "u.id", "u.name", "u.email", "u.role").
		From(usersTable + " u").
		Where(sq.Eq{"u.team_id": teamIDs}).
		OrderBy("u.name").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[uint64][]dto.TeamMemberDTO)
	for rows.Next() {
		var teamID uint64
		var m dto.TeamMemberDTO
		if err := rows.Scan(&teamID, &m.ID, &m.Name, &m.Email, &m.Role); err != nil {
			return nil, err
		}
		result[teamID] = append(result[teamID], m)
	}
	return result, rows.Err()
}
