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

type NotificationFilter struct {
	UnreadOnly bool
	Limit      int
	Offset     int
}

type NotificationRepositoryInterface interface {
	FindByID(ctx context.Context, id uint64) (*entities.Notification, error)
	Create(ctx context.Context, n *entities.Notification) (uint64, error)
	ListByUser(ctx context.Context, userID uint64, filter NotificationFilter) ([]dto.NotificationDTO, uint64, error)
	CountUnread(ctx context.Context, userID uint64) (uint64, error)
	MarkRead(ctx context.Context, id uint64) error
	MarkAllRead(ctx context.Context, userID uint64) error
	Delete(ctx context.Context, id uint64) error
	DeleteAllForUser(ctx context.Context, userID uint64) error
}

type NotificationRepository struct {
	storage *pgxpool.Pool
}

func NewNotificationRepository(storage *pgxpool.Pool) NotificationRepositoryInterface {
	return &NotificationRepository{storage: storage}
}

func (r *NotificationRepository) FindByID(ctx context.Context, id uint64) (*entities.Notification, error) {
	query := `
		SELECT id, type, title, message, user_id, request_id, read, created_at, updated_at
		FROM notifications WHERE id = $1`

	var n entities.Notification
	var requestID sql.NullInt64
	var createdAt, updatedAt time.Time
	err := r.storage.QueryRow(ctx, query, id).Scan(
		&n.ID, &n.Type, &n.Title, &n.Message, &n.UserID, &requestID, &n.Read,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	n.RequestID = utils.NullInt64ToUint64Ptr(requestID)
	n.CreatedAt = &createdAt
	n.UpdatedAt = &updatedAt
	return &n, nil
}

func (r *NotificationRepository) Create(ctx context.Context, n *entities.Notification) (uint64, error) {
	var id uint64
	err := r.storage.QueryRow(ctx,
		`INSERT INTO notifications (type, title, message, user_id, request_id) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		n.Type, n.Title, n.Message, n.UserID, utils.Uint64PtrToNullInt64(n.RequestID),
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID uint64, filter NotificationFilter) ([]dto.NotificationDTO, uint64, error) {
	conds := []sq.Sqlizer{sq.Eq{"user_id": userID}}
	if filter.UnreadOnly {
		conds = append(conds, sq.Eq{"read": false})
	}

	builder := psql.
		Select("id", "type", "title", "message", "request_id", "read", "created_at").
		From("notifications").
		OrderBy("created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))
	countBuilder := psql.Select("COUNT(*)").From("notifications")

	for _, cond := range conds {
		builder = builder.Where(cond)
		countBuilder = countBuilder.Where(cond)
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

	items := make([]dto.NotificationDTO, 0)
	for rows.Next() {
		var n dto.NotificationDTO
		var requestID sql.NullInt64
		var createdAt time.Time
		if err := rows.Scan(&n.ID, &n.Type, &n.Title, &n.Message, &requestID, &n.Read, &createdAt); err != nil {
			return nil, 0, err
		}
		n.RequestID = utils.NullInt64ToUint64Ptr(requestID)
		n.CreatedAt = utils.FormatTime(createdAt)
		items = append(items, n)
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

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uint64) (uint64, error) {
	return countRows(ctx, r.storage,
		psql.Select("COUNT(*)").From("notifications").Where(sq.Eq{"user_id": userID, "read": false}))
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE notifications SET read = TRUE, updated_at = CURRENT_TIMESTAMP WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uint64) error {
	_, err := r.storage.Exec(ctx,
		`UPDATE notifications SET read = TRUE, updated_at = CURRENT_TIMESTAMP WHERE user_id = $1 AND read = FALSE`,
		userID)
	return err
}

func (r *NotificationRepository) Delete(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) DeleteAllForUser(ctx context.Context, userID uint64) error {
	_, err := r.storage.Exec(ctx, `DELETE FROM notifications WHERE user_id = $1`, userID)
	return err
}
