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

type WorksheetRepositoryInterface interface {
	FindByID(ctx context.Context, id uint64) (*entities.Worksheet, error)
	FindDTO(ctx context.Context, id uint64) (*dto.WorksheetDTO, error)
	// Create принимает Querier: каскад SCRAP пишет итоговую запись журнала
	// в той же транзакции, что и перевод статусов.
	Create(ctx context.Context, q Querier, ws *entities.Worksheet) (uint64, error)
	Update(ctx context.Context, ws *entities.Worksheet) error
	Delete(ctx context.Context, id uint64) error
	// List возвращает журнал работ; requestID = 0 означает без фильтра.
	List(ctx context.Context, requestID uint64, limit, offset int) ([]dto.WorksheetDTO, uint64, error)
}

type WorksheetRepository struct {
	storage *pgxpool.Pool
}

func NewWorksheetRepository(storage *pgxpool.Pool) WorksheetRepositoryInterface {
	return &WorksheetRepository{storage: storage}
}

func (r *WorksheetRepository) FindByID(ctx context.Context, id uint64) (*entities.Worksheet, error) {
	query := `
		SELECT id, content, request_id, author_id, created_at, updated_at
		FROM worksheets WHERE id = $1`

	var w entities.Worksheet
	var createdAt, updatedAt time.Time
	err := r.storage.QueryRow(ctx, query, id).Scan(
		&w.ID, &w.Content, &w.RequestID, &w.AuthorID, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	w.CreatedAt = &createdAt
	w.UpdatedAt = &updatedAt
	return &w, nil
}

func (r *WorksheetRepository) FindDTO(ctx context.Context, id uint64) (*dto.WorksheetDTO, error) {
	query := `
		SELECT w.id, w.content, w.request_id, w.created_at, u.id, u.name
		FROM worksheets w
		LEFT JOIN users u ON u.id = w.author_id
		WHERE w.id = $1`

	var w dto.WorksheetDTO
	var createdAt time.Time
	var authorID sql.NullInt64
	var authorName sql.NullString
	err := r.storage.QueryRow(ctx, query, id).Scan(
		&w.ID, &w.Content, &w.RequestID, &createdAt, &authorID, &authorName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	w.CreatedAt = utils.FormatTime(createdAt)
	if authorID.Valid {
		w.Author = &dto.ShortUserDTO{ID: uint64(authorID.Int64), Name: authorName.String}
	}
	return &w, nil
}

func (r *WorksheetRepository) Create(ctx context.Context, q Querier, ws *entities.Worksheet) (uint64, error) {
	var id uint64
	err := q.QueryRow(ctx,
		`INSERT INTO worksheets (content, request_id, author_id) VALUES ($1, $2, $3) RETURNING id`,
		ws.Content, ws.RequestID, ws.AuthorID,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *WorksheetRepository) Update(ctx context.Context, ws *entities.Worksheet) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE worksheets SET content = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		ws.Content, ws.ID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *WorksheetRepository) Delete(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM worksheets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *WorksheetRepository) List(ctx context.Context, requestID uint64, limit, offset int) ([]dto.WorksheetDTO, uint64, error) {
	builder := psql.
		Select("w.id", "w.content", "w.request_id", "w.created_at", "u.id", "u.name").
		From("worksheets w").
		LeftJoin("users u ON u.id = w.author_id").
		OrderBy("w.created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))
	countBuilder := psql.Select("COUNT(*)").From("worksheets")
	if requestID != 0 {
		builder = builder.Where(sq.Eq{"w.request_id": requestID})
		countBuilder = countBuilder.Where(sq.Eq{"request_id": requestID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]dto.WorksheetDTO, 0)
	for rows.Next() {
		var w dto.WorksheetDTO
		var createdAt time.Time
		var authorID sql.NullInt64
		var authorName sql.NullString
		if err := rows.Scan(&w.ID, &w.Content, &w.RequestID, &createdAt, &authorID, &authorName); err != nil {
			return nil, 0, err
		}
		w.CreatedAt = utils.FormatTime(createdAt)
		if authorID.Valid {
			w.Author = &dto.ShortUserDTO{ID: uint64(authorID.Int64), Name: authorName.String}
		}
		items = append(items, w)
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
