package restaurant

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"uchef/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const restaurantColumns = `id::text, owner_id::text, name, COALESCE(description, ''), address, COALESCE(phone_number, ''),
       COALESCE(opening_time, ''), COALESCE(closing_time, ''), is_active, approved, COALESCE(rejection_reason, ''), created_at`

func (r *postgresRepo) Create(ctx context.Context, in domain.Restaurant) (*domain.Restaurant, error) {
	const q = `
INSERT INTO restaurants (owner_id, name, description, address, phone_number, opening_time, closing_time, is_active)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + restaurantColumns
	return r.scanRestaurant(r.pool.QueryRow(
		ctx, q,
		in.OwnerID, in.Name, in.Description, in.Address, in.PhoneNumber,
		in.OpeningTime, in.ClosingTime, in.IsActive,
	))
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	const q = `
SELECT ` + restaurantColumns + `
FROM restaurants
WHERE id = $1
`
	return r.scanRestaurant(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) GetByOwner(ctx context.Context, ownerID string) (*domain.Restaurant, error) {
	const q = `
SELECT ` + restaurantColumns + `
FROM restaurants
WHERE owner_id = $1
LIMIT 1
`
	return r.scanRestaurant(r.pool.QueryRow(ctx, q, ownerID))
}

func (r *postgresRepo) List(ctx context.Context, approvedOnly bool) ([]domain.Restaurant, error) {
	q := `
SELECT ` + restaurantColumns + `
FROM restaurants
`
	if approvedOnly {
		q += `WHERE approved IS TRUE AND is_active
`
	}
	q += `ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Restaurant
	for rows.Next() {
		res, err := r.scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Update(ctx context.Context, in domain.Restaurant) (*domain.Restaurant, error) {
	const q = `
UPDATE restaurants
SET name = $2, description = $3, address = $4, phone_number = $5,
    opening_time = $6, closing_time = $7, is_active = $8
WHERE id = $1
RETURNING ` + restaurantColumns
	return r.scanRestaurant(r.pool.QueryRow(
		ctx, q,
		in.ID, in.Name, in.Description, in.Address, in.PhoneNumber,
		in.OpeningTime, in.ClosingTime, in.IsActive,
	))
}

func (r *postgresRepo) SetApproval(ctx context.Context, id string, approved bool, rejectionReason string) (*domain.Restaurant, error) {
	const q = `
UPDATE restaurants
SET approved = $2, rejection_reason = NULLIF($3, '')
WHERE id = $1
RETURNING ` + restaurantColumns
	return r.scanRestaurant(r.pool.QueryRow(ctx, q, id, approved, rejectionReason))
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM restaurants WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) scanRestaurant(row pgx.Row) (*domain.Restaurant, error) {
	var res domain.Restaurant
	err := row.Scan(
		&res.ID,
		&res.OwnerID,
		&res.Name,
		&res.Description,
		&res.Address,
		&res.PhoneNumber,
		&res.OpeningTime,
		&res.ClosingTime,
		&res.IsActive,
		&res.Approved,
		&res.RejectionReason,
		&res.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return &res, nil
}
