package custommeal

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

const customMealColumns = `id::text, user_id::text, restaurant_id::text, base_meal_id::text, name, COALESCE(description, ''), COALESCE(cooking_instructions, ''), is_public, created_at`

func (r *postgresRepo) Create(ctx context.Context, in CreateInput) (*domain.CustomMeal, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO custom_meals (user_id, restaurant_id, base_meal_id, name, description, cooking_instructions, is_public)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id::text
`
	m := in.Meal
	var id string
	if err := tx.QueryRow(
		ctx, q,
		m.UserID, m.RestaurantID, m.BaseMealID, m.Name, m.Description, m.CookingInstructions, m.IsPublic,
	).Scan(&id); err != nil {
		return nil, err
	}

	for _, line := range in.Ingredients {
		if _, err := tx.Exec(ctx, `
INSERT INTO custom_meal_ingredients (custom_meal_id, ingredient_id, quantity)
VALUES ($1, $2, $3)
`, id, line.IngredientID, line.Quantity); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.CustomMeal, error) {
	const q = `
SELECT ` + customMealColumns + `
FROM custom_meals
WHERE id = $1
`
	m, err := scanCustomMeal(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		return nil, err
	}

	lines, err := r.fetchIngredients(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	m.Ingredients = lines
	return m, nil
}

func (r *postgresRepo) List(ctx context.Context, userID string) ([]domain.CustomMeal, error) {
	q := `
SELECT ` + customMealColumns + `
FROM custom_meals
WHERE is_public
`
	var args []interface{}
	if userID != "" {
		q = `
SELECT ` + customMealColumns + `
FROM custom_meals
WHERE is_public OR user_id = $1
`
		args = append(args, userID)
	}
	q += `ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CustomMeal
	for rows.Next() {
		m, err := scanCustomMeal(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id, userID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM custom_meals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) fetchIngredients(ctx context.Context, customMealID string) ([]domain.CustomMealIngredient, error) {
	const q = `
SELECT cmi.id::text, cmi.custom_meal_id::text, cmi.ingredient_id::text, cmi.quantity,
       i.id::text, i.restaurant_id::text, i.name, COALESCE(i.description, ''), i.quantity, i.unit, i.price_per_unit_cents, i.is_available, i.created_at
FROM custom_meal_ingredients cmi
JOIN ingredients i ON i.id = cmi.ingredient_id
WHERE cmi.custom_meal_id = $1
ORDER BY i.name ASC
`
	rows, err := r.pool.Query(ctx, q, customMealID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.CustomMealIngredient
	for rows.Next() {
		var line domain.CustomMealIngredient
		var ing domain.Ingredient
		if err := rows.Scan(
			&line.ID, &line.CustomMealID, &line.IngredientID, &line.Quantity,
			&ing.ID, &ing.RestaurantID, &ing.Name, &ing.Description, &ing.Quantity, &ing.Unit, &ing.PricePerUnitCents, &ing.IsAvailable, &ing.CreatedAt,
		); err != nil {
			return nil, err
		}
		line.Ingredient = &ing
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func scanCustomMeal(row pgx.Row) (*domain.CustomMeal, error) {
	var m domain.CustomMeal
	err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.RestaurantID,
		&m.BaseMealID,
		&m.Name,
		&m.Description,
		&m.CookingInstructions,
		&m.IsPublic,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}
