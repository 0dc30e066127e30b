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

const categoriesTable = "categories"

type CategoryRepositoryInterface interface {
	FindByID(ctx context.Context, id uint64) (*entities.Category, error)
	Create(ctx context.Context, category *entities.Category) (uint64, error)
	Update(ctx context.Context, category *entities.Category) error
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context, search string, limit, offset int) ([]dto.CategoryDTO, uint64, error)
}

type CategoryRepository struct {
	storage *pgxpool.Pool
}

func NewCategoryRepository(storage *pgxpool.Pool) CategoryRepositoryInterface {
	return &CategoryRepository{storage: storage}
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uint64) (*entities.Category, error) {
	var c entities.Category
	var createdAt, updatedAt time.Time

	err := r.storage.QueryRow(ctx,
		`SELECT id, name, responsible, company, created_at, updated_at FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Responsible, &c.Company, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	c.CreatedAt = &createdAt
	c.UpdatedAt = &updatedAt
	return &c, nil
}

func (r *CategoryRepository) Create(ctx context.Context, category *entities.Category) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx,
		`INSERT INTO categories (name, responsible, company) VALUES ($1, $2, $3) RETURNING id`,
		category.Name, category.Responsible, category.Company).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *entities.Category) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE categories SET name = $1, responsible = $2, company = $3, updated_at = CURRENT_TIMESTAMP WHERE id = $4`,
		category.Name, category.Responsible, category.Company, category.ID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *CategoryRepository) List(ctx context.Context, search string, limit, offset int) ([]dto.CategoryDTO, uint64, error) {
	builder := psql.
		Select("id", "name", "responsible", "company", "created_at").
		From(categoriesTable).
		OrderBy("name ASC")

	countBuilder := psql.Select("COUNT(*)").From(categoriesTable)

	if search != "" {
		cond := sq.ILike{"name": "%" + search + "%"}
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

	categories := make([]dto.CategoryDTO, 0)
	for rows.Next() {
		var c dto.CategoryDTO
		var createdAt time.Time
		if err := rows.Scan(&c.ID, &c.Name, &c.Responsible, &c.Company, &createdAt); err != nil {
			return nil, 0, err
		}
		c.CreatedAt = utils.FormatTime(createdAt)
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	total, err := countRows(ctx, r.storage, countBuilder)
	if err != nil {
		return nil, 0, err
	}

	return categories, total, nil
}
