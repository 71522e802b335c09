package custommeal

import (
	"context"

	"uchef/internal/domain"
)

// CreateInput bundles the custom meal row with its ingredient lines.
type CreateInput struct {
	Meal        domain.CustomMeal
	Ingredients []domain.CustomMealIngredient
}

type Repository interface {
	Create(ctx context.Context, in CreateInput) (*domain.CustomMeal, error)
	GetByID(ctx context.Context, id string) (*domain.CustomMeal, error)
	// List returns public custom meals plus, when userID is non-empty, that
	// user's private ones.
	List(ctx context.Context, userID string) ([]domain.CustomMeal, error)
	Delete(ctx context.Context, id, userID string) error
}
