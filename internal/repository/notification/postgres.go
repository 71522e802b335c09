package notification

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"uchef/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const notificationColumns = `id::text, recipient_id::text, sender_id::text, restaurant_id::text, order_id::text, kind, title, message, is_read, created_at`

func (r *postgresRepo) Create(ctx context.Context, n domain.Notification) (*domain.Notification, error) {
	const q = `
INSERT INTO notifications (recipient_id, sender_id, restaurant_id, order_id, kind, title, message)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + notificationColumns
	return scanNotification(r.pool.QueryRow(
		ctx, q,
		n.RecipientID, n.SenderID, n.RestaurantID, n.OrderID, n.Kind, n.Title, n.Message,
	))
}

func (r *postgresRepo) ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]domain.Notification, error) {
	q := `
SELECT ` + notificationColumns + `
FROM notifications
WHERE recipient_id = $1
`
	if unreadOnly {
		q += `AND NOT is_read
`
	}
	q += `ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, q, recipientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) MarkRead(ctx context.Context, recipientID, id string) (*domain.Notification, error) {
	const q = `
UPDATE notifications
SET is_read = TRUE
WHERE id = $1 AND recipient_id = $2
RETURNING ` + notificationColumns
	return scanNotification(r.pool.QueryRow(ctx, q, id, recipientID))
}

func (r *postgresRepo) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `
UPDATE notifications
SET is_read = TRUE
WHERE recipient_id = $1 AND NOT is_read
`, recipientID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func scanNotification(row pgx.Row) (*domain.Notification, error) {
	var n domain.Notification
	err := row.Scan(
		&n.ID,
		&n.RecipientID,
		&n.SenderID,
		&n.RestaurantID,
		&n.OrderID,
		&n.Kind,
		&n.Title,
		&n.Message,
		&n.IsRead,
		&n.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}
