package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type userSeed struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
}

type ingredientSeed struct {
	Name       string
	Quantity   float64
	Unit       string
	PriceCents int64
}

type mealSeed struct {
	Name        string
	Description string
	PriceCents  int64
	Featured    bool
	Recipe      []recipeSeed
}

type recipeSeed struct {
	Ingredient string
	Quantity   float64
	Optional   bool
	ExtraCents int64
}

// Apply inserts demo data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	users := []userSeed{
		{Email: "admin@uchef.local", Password: "admin-pass-1", FirstName: "Ada", LastName: "Admin", Role: "admin"},
		{Email: "owner@uchef.local", Password: "owner-pass-1", FirstName: "Omar", LastName: "Owner", Role: "restaurant"},
		{Email: "customer@uchef.local", Password: "customer-pass-1", FirstName: "Cleo", LastName: "Customer", Role: "customer"},
	}

	ids := make(map[string]string, len(users))
	for _, u := range users {
		id, err := ensureUser(ctx, pool, u)
		if err != nil {
			return fmt.Errorf("ensure user %s: %w", u.Email, err)
		}
		ids[u.Role] = id
	}

	restaurantID, err := ensureRestaurant(ctx, pool, ids["restaurant"])
	if err != nil {
		return fmt.Errorf("ensure restaurant: %w", err)
	}

	ingredients := []ingredientSeed{
		{Name: "Basmati Rice", Quantity: 40, Unit: "kg", PriceCents: 180},
		{Name: "Chicken Breast", Quantity: 25, Unit: "kg", PriceCents: 750},
		{Name: "Salmon Fillet", Quantity: 10, Unit: "kg", PriceCents: 2100},
		{Name: "Olive Oil", Quantity: 8, Unit: "l", PriceCents: 900},
		{Name: "Cherry Tomatoes", Quantity: 12, Unit: "kg", PriceCents: 420},
	}
	ingredientIDs := make(map[string]string, len(ingredients))
	for _, in := range ingredients {
		id, err := ensureIngredient(ctx, pool, restaurantID, in)
		if err != nil {
			return fmt.Errorf("ensure ingredient %s: %w", in.Name, err)
		}
		ingredientIDs[in.Name] = id
	}

	categoryID, err := ensureCategory(ctx, pool, "Mains", "Hearty main courses")
	if err != nil {
		return fmt.Errorf("ensure category: %w", err)
	}

	meals := []mealSeed{
		{
			Name:        "Grilled Chicken Bowl",
			Description: "Char-grilled chicken over basmati rice",
			PriceCents:  1450,
			Featured:    true,
			Recipe: []recipeSeed{
				{Ingredient: "Chicken Breast", Quantity: 0.25},
				{Ingredient: "Basmati Rice", Quantity: 0.2},
				{Ingredient: "Olive Oil", Quantity: 0.02, Optional: true, ExtraCents: 50},
			},
		},
		{
			Name:        "Seared Salmon Plate",
			Description: "Salmon fillet with cherry tomatoes",
			PriceCents:  2250,
			Recipe: []recipeSeed{
				{Ingredient: "Salmon Fillet", Quantity: 0.2},
				{Ingredient: "Cherry Tomatoes", Quantity: 0.1},
			},
		},
	}

	for _, m := range meals {
		if err := ensureMeal(ctx, pool, restaurantID, categoryID, ingredientIDs, m); err != nil {
			return fmt.Errorf("ensure meal %s: %w", m.Name, err)
		}
	}

	return nil
}

func ensureUser(ctx context.Context, pool *pgxpool.Pool, u userSeed) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	const q = `
INSERT INTO users (email, password_hash, first_name, last_name, role)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (email) DO UPDATE
SET first_name = EXCLUDED.first_name,
    last_name = EXCLUDED.last_name,
    role = EXCLUDED.role
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, u.Email, string(hash), u.FirstName, u.LastName, u.Role).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func ensureRestaurant(ctx context.Context, pool *pgxpool.Pool, ownerID string) (string, error) {
	const q = `
INSERT INTO restaurants (owner_id, name, description, address, phone_number, opening_time, closing_time, approved)
VALUES ($1, 'Demo Kitchen', 'Seeded restaurant for manual testing', '1 Demo Street', '+1-555-0100', '09:00', '22:00', TRUE)
ON CONFLICT (owner_id) DO UPDATE
SET name = EXCLUDED.name,
    description = EXCLUDED.description,
    address = EXCLUDED.address,
    approved = EXCLUDED.approved
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, ownerID).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func ensureIngredient(ctx context.Context, pool *pgxpool.Pool, restaurantID string, in ingredientSeed) (string, error) {
	const q = `
INSERT INTO ingredients (restaurant_id, name, quantity, unit, price_per_unit_cents)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (restaurant_id, name) DO UPDATE
SET quantity = EXCLUDED.quantity,
    unit = EXCLUDED.unit,
    price_per_unit_cents = EXCLUDED.price_per_unit_cents
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, restaurantID, in.Name, in.Quantity, in.Unit, in.PriceCents).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func ensureCategory(ctx context.Context, pool *pgxpool.Pool, name, description string) (string, error) {
	const q = `
INSERT INTO meal_categories (name, description)
VALUES ($1, $2)
ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, name, description).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func ensureMeal(ctx context.Context, pool *pgxpool.Pool, restaurantID, categoryID string, ingredientIDs map[string]string, m mealSeed) error {
	const q = `
INSERT INTO meals (restaurant_id, category_id, name, description, base_price_cents, is_featured)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (restaurant_id, name) DO UPDATE
SET description = EXCLUDED.description,
    base_price_cents = EXCLUDED.base_price_cents,
    is_featured = EXCLUDED.is_featured
RETURNING id::text
`
	var mealID string
	if err := pool.QueryRow(ctx, q, restaurantID, categoryID, m.Name, m.Description, m.PriceCents, m.Featured).Scan(&mealID); err != nil {
		return err
	}

	const lineQ = `
INSERT INTO meal_ingredients (meal_id, ingredient_id, quantity, is_optional, additional_price_cents)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (meal_id, ingredient_id) DO UPDATE
SET quantity = EXCLUDED.quantity,
    is_optional = EXCLUDED.is_optional,
    additional_price_cents = EXCLUDED.additional_price_cents
`
	for _, r := range m.Recipe {
		ingredientID, ok := ingredientIDs[r.Ingredient]
		if !ok {
			return fmt.Errorf("unknown ingredient %q in recipe", r.Ingredient)
		}
		if _, err := pool.Exec(ctx, lineQ, mealID, ingredientID, r.Quantity, r.Optional, r.ExtraCents); err != nil {
			return err
		}
	}
	return nil
}
