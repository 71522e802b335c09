package meal

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"uchef/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const mealColumns = `id::text, restaurant_id::text, category_id::text, name, COALESCE(description, ''), base_price_cents, COALESCE(image_url, ''), is_available, is_featured, created_at`

func (r *postgresRepo) Create(ctx context.Context, in CreateMealInput) (*domain.Meal, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO meals (restaurant_id, category_id, name, description, base_price_cents, image_url, is_available, is_featured)
VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8)
RETURNING id::text
`
	m := in.Meal
	var mealID string
	if err := tx.QueryRow(
		ctx, q,
		m.RestaurantID, m.CategoryID, m.Name, m.Description, m.BasePriceCents, m.ImageURL, m.IsAvailable, m.IsFeatured,
	).Scan(&mealID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}

	for _, line := range in.Ingredients {
		if _, err := tx.Exec(ctx, `
INSERT INTO meal_ingredients (meal_id, ingredient_id, quantity, is_optional, additional_price_cents)
VALUES ($1, $2, $3, $4, $5)
`, mealID, line.IngredientID, line.Quantity, line.IsOptional, line.AdditionalPriceCents); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, mealID)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Meal, error) {
	const q = `
SELECT ` + mealColumns + `
FROM meals
WHERE id = $1
`
	m, err := r.scanMeal(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		return nil, err
	}

	lines, err := r.fetchRecipe(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	m.Ingredients = lines
	return m, nil
}

func (r *postgresRepo) List(ctx context.Context, restaurantID string, featuredOnly bool) ([]domain.Meal, error) {
	q := `
SELECT ` + mealColumns + `
FROM meals
`
	var args []interface{}
	switch {
	case restaurantID != "" && featuredOnly:
		q += `WHERE restaurant_id = $1 AND is_featured
`
		args = append(args, restaurantID)
	case restaurantID != "":
		q += `WHERE restaurant_id = $1
`
		args = append(args, restaurantID)
	case featuredOnly:
		q += `WHERE is_featured
`
	}
	q += `ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("meal repo: list restaurant_id=%s error=%v", restaurantID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Meal
	for rows.Next() {
		m, err := r.scanMeal(rows)
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

func (r *postgresRepo) Update(ctx context.Context, m domain.Meal) (*domain.Meal, error) {
	const q = `
UPDATE meals
SET category_id = $2, name = $3, description = $4, base_price_cents = $5,
    image_url = NULLIF($6, ''), is_available = $7, is_featured = $8
WHERE id = $1
RETURNING id::text
`
	var id string
	if err := r.pool.QueryRow(
		ctx, q,
		m.ID, m.CategoryID, m.Name, m.Description, m.BasePriceCents, m.ImageURL, m.IsAvailable, m.IsFeatured,
	).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM meals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) CreateCategory(ctx context.Context, c domain.MealCategory) (*domain.MealCategory, error) {
	const q = `
INSERT INTO meal_categories (name, description)
VALUES ($1, $2)
RETURNING id::text, name, COALESCE(description, '')
`
	var out domain.MealCategory
	if err := r.pool.QueryRow(ctx, q, c.Name, c.Description).Scan(&out.ID, &out.Name, &out.Description); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) ListCategories(ctx context.Context) ([]domain.MealCategory, error) {
	const q = `
SELECT id::text, name, COALESCE(description, '')
FROM meal_categories
ORDER BY name ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.MealCategory
	for rows.Next() {
		var c domain.MealCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// fetchRecipe loads the meal's ingredient lines joined with the current
// ingredient rows so availability and pricing see live stock.
func (r *postgresRepo) fetchRecipe(ctx context.Context, mealID string) ([]domain.MealIngredient, error) {
	const q = `
SELECT mi.id::text, mi.meal_id::text, mi.ingredient_id::text, mi.quantity, mi.is_optional, mi.additional_price_cents,
       i.id::text, i.restaurant_id::text, i.name, COALESCE(i.description, ''), i.quantity, i.unit, i.price_per_unit_cents, i.is_available, i.created_at
FROM meal_ingredients mi
JOIN ingredients i ON i.id = mi.ingredient_id
WHERE mi.meal_id = $1
ORDER BY i.name ASC
`
	rows, err := r.pool.Query(ctx, q, mealID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.MealIngredient
	for rows.Next() {
		var line domain.MealIngredient
		var ing domain.Ingredient
		if err := rows.Scan(
			&line.ID, &line.MealID, &line.IngredientID, &line.Quantity, &line.IsOptional, &line.AdditionalPriceCents,
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

func (r *postgresRepo) scanMeal(row pgx.Row) (*domain.Meal, error) {
	var m domain.Meal
	err := row.Scan(
		&m.ID,
		&m.RestaurantID,
		&m.CategoryID,
		&m.Name,
		&m.Description,
		&m.BasePriceCents,
		&m.ImageURL,
		&m.IsAvailable,
		&m.IsFeatured,
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
