package meal

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"uchef/internal/domain"
	"uchef/internal/migrate"
)

func TestPostgres_DuplicateNamesConflict(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	restaurantID := seedRestaurant(ctx, t, pool)

	repo := NewPostgres(pool, nil)
	created, err := repo.Create(ctx, CreateMealInput{Meal: domain.Meal{
		RestaurantID:   restaurantID,
		Name:           "Grilled Chicken Bowl",
		BasePriceCents: 1450,
		IsAvailable:    true,
	}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("unexpected meal %+v", created)
	}

	_, err = repo.Create(ctx, CreateMealInput{Meal: domain.Meal{
		RestaurantID: restaurantID,
		Name:         "Grilled Chicken Bowl",
	}})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("duplicate meal name: expected ErrAlreadyExists, got %v", err)
	}

	if _, err := repo.CreateCategory(ctx, domain.MealCategory{Name: "Mains"}); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	_, err = repo.CreateCategory(ctx, domain.MealCategory{Name: "Mains"})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("duplicate category name: expected ErrAlreadyExists, got %v", err)
	}
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	const q = `TRUNCATE notifications, reviews, payments, order_items, orders, custom_meal_ingredients, custom_meals,
meal_ingredients, meals, meal_categories, ingredients, restaurants, tokens, users RESTART IDENTITY CASCADE`
	if _, err := pool.Exec(ctx, q); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}

func seedRestaurant(ctx context.Context, t *testing.T, pool *pgxpool.Pool) string {
	t.Helper()
	var ownerID string
	err := pool.QueryRow(ctx, `INSERT INTO users (email, password_hash, role) VALUES ('owner@test.local', 'x', 'restaurant') RETURNING id::text`).Scan(&ownerID)
	if err != nil {
		t.Fatalf("insert owner: %v", err)
	}
	var restaurantID string
	err = pool.QueryRow(ctx, `INSERT INTO restaurants (owner_id, name, address) VALUES ($1, 'Test Kitchen', '1 Test St') RETURNING id::text`, ownerID).Scan(&restaurantID)
	if err != nil {
		t.Fatalf("insert restaurant: %v", err)
	}
	return restaurantID
}
