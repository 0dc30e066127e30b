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
	"go.uber.org/zap"
)

const usersTable = "users"

type UserFilter struct {
	Role   string
	Search string
	Limit  int
	Offset int
}

type UserRepositoryInterface interface {
	FindByID(ctx context.Context, id uint64) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	Create(ctx context.Context, user *entities.User) (uint64, error)
	Update(ctx context.Context, user *entities.User) error
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context, filter UserFilter) ([]dto.UserDTO, uint64, error)
	ListTechnicians(ctx context.Context) ([]dto.TechnicianDTO, error)
	SetTeam(ctx context.Context, userID uint64, teamID *uint64) error
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

func (r *UserRepository) scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	var teamID sql.NullInt64
	var createdAt, updatedAt time.Time

	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.Company, &teamID, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	u.TeamID = utils.NullInt64ToUint64Ptr(teamID)
	u.CreatedAt = &createdAt
	u.UpdatedAt = &updatedAt
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*entities.User, error) {
	query := `SELECT id, name, email, password, role, company, team_id, created_at, updated_at FROM users WHERE id = $1`
	return r.scanUser(r.storage.QueryRow(ctx, query, id))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := `SELECT id, name, email, password, role, company, team_id, created_at, updated_at FROM users WHERE LOWER(email) = LOWER($1)`
	return r.scanUser(r.storage.QueryRow(ctx, query, email))
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) (uint64, error) {
	query := `
		INSERT INTO users (name, email, password, role, company, team_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	var id uint64
	err := r.storage.QueryRow(ctx, query,
		user.Name,
		user.Email,
		user.Password,
		user.Role,
		user.Company,
		utils.Uint64PtrToNullInt64(user.TeamID),
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	query := `
		UPDATE users
		SET name = $1, email = $2, role = $3, company = $4, team_id = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $6`

	result, err := r.storage.Exec(ctx, query,
		user.Name,
		user.Email,
		user.Role,
		user.Company,
		utils.Uint64PtrToNullInt64(user.TeamID),
		user.ID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, filter UserFilter) ([]dto.UserDTO, uint64, error) {
	builder := psql.
		Select("u.id", "u.name", "u.email", "u.role", "u.company", "u.team_id", "t.id", "t.name", "u.created_at").
		From(usersTable + " u").
		LeftJoin("teams t ON t.id = u.team_id").
		OrderBy("u.created_at DESC")

	countBuilder := psql.Select("COUNT(*)").From(usersTable + " u")

	if filter.Role != "" {
		builder = builder.Where(sq.Eq{"u.role": filter.Role})
		countBuilder = countBuilder.Where(sq.Eq{"u.role": filter.Role})
	}
	if filter.Search != "" {
		search := sq.Or{
			sq.ILike{"u.name": "%" + filter.Search + "%"},
			sq.ILike{"u.email": "%" + filter.Search + "%"},
		}
		builder = builder.Where(search)
		countBuilder = countBuilder.Where(search)
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

	users := make([]dto.UserDTO, 0)
	for rows.Next() {
		var u dto.UserDTO
		var teamID, shortTeamID sql.NullInt64
		var shortTeamName sql.NullString
		var createdAt time.Time

		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Company, &teamID, &shortTeamID, &shortTeamName, &createdAt); err != nil {
			return nil, 0, err
		}
		u.TeamID = utils.NullInt64ToUint64Ptr(teamID)
		if shortTeamID.Valid {
			u.Team = &dto.ShortTeamDTO{ID: uint64(shortTeamID.Int64), Name: shortTeamName.String}
		}
		u.CreatedAt = utils.FormatTime(createdAt)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	total, err := countRows(ctx, r.storage, countBuilder)
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *UserRepository) ListTechnicians(ctx context.Context) ([]dto.TechnicianDTO, error) {
	query := `
		SELECT u.id, u.name, u.email, u.team_id, t.id, t.name
		FROM users u
		LEFT JOIN teams t ON t.id = u.team_id
		WHERE u.role = $1
		ORDER BY u.name`

	rows, err := r.storage.Query(ctx, query, entities.RoleTechnician)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	technicians := make([]dto.TechnicianDTO, 0)
	for rows.Next() {
		var t dto.TechnicianDTO
		var teamID, shortTeamID sql.NullInt64
		var shortTeamName sql.NullString

		if err := rows.Scan(&t.ID, &t.Name, &t.Email, &teamID, &shortTeamID, &shortTeamName); err != nil {
			return nil, err
		}
		t.TeamID = utils.NullInt64ToUint64Ptr(teamID)
		if shortTeamID.Valid {
			t.Team = &dto.ShortTeamDTO{ID: uint64(shortTeamID.Int64), Name: shortTeamName.String}
		}
		technicians = append(technicians, t)
	}
	return technicians, rows.Err()
}

func (r *UserRepository) SetTeam(ctx context.Context, userID uint64, teamID *uint64) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE users SET team_id = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		utils.Uint64PtrToNullInt64(teamID), userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
