package ingredient

import (
	"context"

	"uchef/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, in domain.Ingredient) (*domain.Ingredient, error)
	// Upsert keys on (restaurant, name) and overwrites stock fields.
	Upsert(ctx context.Context, in domain.Ingredient) (*domain.Ingredient, error)
	GetByID(ctx context.Context, id string) (*domain.Ingredient, error)
	ListByRestaurant(ctx context.Context, restaurantID string) ([]domain.Ingredient, error)
	Update(ctx context.Context, in domain.Ingredient) (*domain.Ingredient, error)
	Delete(ctx context.Context, id string) error
}
