package ingredient

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

const ingredientColumns = `id::text, restaurant_id::text, name, COALESCE(description, ''), quantity, unit, price_per_unit_cents, is_available, created_at`

func (r *postgresRepo) Create(ctx context.Context, in domain.Ingredient) (*domain.Ingredient, error) {
	const q = `
INSERT INTO ingredients (restaurant_id, name, description, quantity, unit, price_per_unit_cents, is_available)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + ingredientColumns
	ing, err := scanIngredient(r.pool.QueryRow(
		ctx, q,
		in.RestaurantID, in.Name, in.Description, in.Quantity, in.Unit, in.PricePerUnitCents, in.IsAvailable,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return ing, nil
}

// Upsert inserts the ingredient or, when the restaurant already stocks one
// with the same name, replaces its stock fields. Used by bulk imports.
func (r *postgresRepo) Upsert(ctx context.Context, in domain.Ingredient) (*domain.Ingredient, error) {
	const q = `
INSERT INTO ingredients (restaurant_id, name, description, quantity, unit, price_per_unit_cents, is_available)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (restaurant_id, name) DO UPDATE
SET description = EXCLUDED.description,
    quantity = EXCLUDED.quantity,
    unit = EXCLUDED.unit,
    price_per_unit_cents = EXCLUDED.price_per_unit_cents,
    is_available = EXCLUDED.is_available
RETURNING ` + ingredientColumns
	return scanIngredient(r.pool.QueryRow(
		ctx, q,
		in.RestaurantID, in.Name, in.Description, in.Quantity, in.Unit, in.PricePerUnitCents, in.IsAvailable,
	))
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Ingredient, error) {
	const q = `
SELECT ` + ingredientColumns + `
FROM ingredients
WHERE id = $1
`
	return scanIngredient(r.pool.QueryRow(ctx, q, id))
}

func (r *postgresRepo) ListByRestaurant(ctx context.Context, restaurantID string) ([]domain.Ingredient, error) {
	const q = `
SELECT ` + ingredientColumns + `
FROM ingredients
WHERE restaurant_id = $1
ORDER BY name ASC
`
	rows, err := r.pool.Query(ctx, q, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ing)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Update(ctx context.Context, in domain.Ingredient) (*domain.Ingredient, error) {
	const q = `
UPDATE ingredients
SET name = $2, description = $3, quantity = $4, unit = $5, price_per_unit_cents = $6, is_available = $7
WHERE id = $1
RETURNING ` + ingredientColumns
	return scanIngredient(r.pool.QueryRow(
		ctx, q,
		in.ID, in.Name, in.Description, in.Quantity, in.Unit, in.PricePerUnitCents, in.IsAvailable,
	))
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM ingredients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanIngredient(row pgx.Row) (*domain.Ingredient, error) {
	var ing domain.Ingredient
	err := row.Scan(
		&ing.ID,
		&ing.RestaurantID,
		&ing.Name,
		&ing.Description,
		&ing.Quantity,
		&ing.Unit,
		&ing.PricePerUnitCents,
		&ing.IsAvailable,
		&ing.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &ing, nil
}
