package meal

import (
	"context"

	"uchef/internal/domain"
)

// CreateMealInput bundles the meal row with its recipe lines.
type CreateMealInput struct {
	Meal        domain.Meal
	Ingredients []domain.MealIngredient
}

type Repository interface {
	Create(ctx context.Context, in CreateMealInput) (*domain.Meal, error)
	GetByID(ctx context.Context, id string) (*domain.Meal, error)
	List(ctx context.Context, restaurantID string, featuredOnly bool) ([]domain.Meal, error)
	Update(ctx context.Context, m domain.Meal) (*domain.Meal, error)
	Delete(ctx context.Context, id string) error

	CreateCategory(ctx context.Context, c domain.MealCategory) (*domain.MealCategory, error)
	ListCategories(ctx context.Context) ([]domain.MealCategory, error)
}
