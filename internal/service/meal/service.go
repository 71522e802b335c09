package meal

import (
	"context"
	"errors"
	"strings"

	"uchef/internal/domain"
	custommealrepo "uchef/internal/repository/custommeal"
	mealrepo "uchef/internal/repository/meal"
	restaurantrepo "uchef/internal/repository/restaurant"
)

// ErrNotOwner is returned when a mutation targets a meal of a restaurant the
// user does not own.
var ErrNotOwner = errors.New("not the restaurant owner")

// Service manages meals, categories and custom meals, and answers
// availability and pricing queries for checkout.
type Service struct {
	meals       mealrepo.Repository
	customMeals custommealrepo.Repository
	restaurants restaurantrepo.Repository
}

func New(meals mealrepo.Repository, customMeals custommealrepo.Repository, restaurants restaurantrepo.Repository) *Service {
	return &Service{meals: meals, customMeals: customMeals, restaurants: restaurants}
}

// IngredientLineInput is one recipe line in a create request.
type IngredientLineInput struct {
	IngredientID         string  `json:"ingredient"`
	Quantity             float64 `json:"quantity"`
	IsOptional           bool    `json:"isOptional"`
	AdditionalPriceCents int64   `json:"additionalPriceCents"`
}

// CreateMealInput captures meal creation fields.
type CreateMealInput struct {
	RestaurantID   string                `json:"restaurant"`
	CategoryID     *string               `json:"category"`
	Name           string                `json:"name"`
	Description    string                `json:"description"`
	BasePriceCents int64                 `json:"basePriceCents"`
	ImageURL       string                `json:"imageUrl"`
	IsAvailable    bool                  `json:"isAvailable"`
	IsFeatured     bool                  `json:"isFeatured"`
	Ingredients    []IngredientLineInput `json:"mealIngredients"`
}

// CreateMeal adds a meal to the owner's restaurant.
func (s *Service) CreateMeal(ctx context.Context, ownerID string, in CreateMealInput) (*domain.Meal, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.Invalidf("name required")
	}
	if in.BasePriceCents < 0 {
		return nil, domain.Invalidf("base price must not be negative")
	}
	if err := s.requireOwner(ctx, ownerID, in.RestaurantID); err != nil {
		return nil, err
	}

	lines := make([]domain.MealIngredient, 0, len(in.Ingredients))
	for _, line := range in.Ingredients {
		if line.Quantity <= 0 {
			return nil, domain.Invalidf("ingredient quantity must be positive")
		}
		lines = append(lines, domain.MealIngredient{
			IngredientID:         line.IngredientID,
			Quantity:             line.Quantity,
			IsOptional:           line.IsOptional,
			AdditionalPriceCents: line.AdditionalPriceCents,
		})
	}

	return s.meals.Create(ctx, mealrepo.CreateMealInput{
		Meal: domain.Meal{
			RestaurantID:   in.RestaurantID,
			CategoryID:     in.CategoryID,
			Name:           in.Name,
			Description:    in.Description,
			BasePriceCents: in.BasePriceCents,
			ImageURL:       in.ImageURL,
			IsAvailable:    in.IsAvailable,
			IsFeatured:     in.IsFeatured,
		},
		Ingredients: lines,
	})
}

func (s *Service) GetMeal(ctx context.Context, id string) (*domain.Meal, error) {
	return s.meals.GetByID(ctx, id)
}

func (s *Service) ListMeals(ctx context.Context, restaurantID string, featuredOnly bool) ([]domain.Meal, error) {
	return s.meals.List(ctx, restaurantID, featuredOnly)
}

// UpdateMeal applies owner edits to an existing meal.
func (s *Service) UpdateMeal(ctx context.Context, ownerID, mealID string, in CreateMealInput) (*domain.Meal, error) {
	current, err := s.meals.GetByID(ctx, mealID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwner(ctx, ownerID, current.RestaurantID); err != nil {
		return nil, err
	}

	current.CategoryID = in.CategoryID
	current.Name = in.Name
	current.Description = in.Description
	current.BasePriceCents = in.BasePriceCents
	current.ImageURL = in.ImageURL
	current.IsAvailable = in.IsAvailable
	current.IsFeatured = in.IsFeatured
	return s.meals.Update(ctx, *current)
}

// DeleteMeal removes a meal from the owner's menu.
func (s *Service) DeleteMeal(ctx context.Context, ownerID, mealID string) error {
	current, err := s.meals.GetByID(ctx, mealID)
	if err != nil {
		return err
	}
	if err := s.requireOwner(ctx, ownerID, current.RestaurantID); err != nil {
		return err
	}
	return s.meals.Delete(ctx, mealID)
}

func (s *Service) CreateCategory(ctx context.Context, name, description string) (*domain.MealCategory, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.Invalidf("name required")
	}
	return s.meals.CreateCategory(ctx, domain.MealCategory{Name: name, Description: description})
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.MealCategory, error) {
	return s.meals.ListCategories(ctx)
}

// CustomMealInput captures custom meal creation fields.
type CustomMealInput struct {
	RestaurantID        string  `json:"restaurant"`
	BaseMealID          *string `json:"baseMeal"`
	Name                string  `json:"name"`
	Description         string  `json:"description"`
	CookingInstructions string  `json:"cookingInstructions"`
	IsPublic            bool    `json:"isPublic"`
	Ingredients         []struct {
		IngredientID string  `json:"ingredient"`
		Quantity     float64 `json:"quantity"`
	} `json:"ingredients"`
}

// CreateCustomMeal assembles a custom meal for the user. Lines with a
// non-positive quantity are rejected rather than silently dropped.
func (s *Service) CreateCustomMeal(ctx context.Context, userID string, in CustomMealInput) (*domain.CustomMeal, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.Invalidf("name required")
	}
	if len(in.Ingredients) == 0 {
		return nil, domain.Invalidf("at least one ingredient required")
	}

	lines := make([]domain.CustomMealIngredient, 0, len(in.Ingredients))
	for _, line := range in.Ingredients {
		if line.Quantity <= 0 {
			return nil, domain.Invalidf("ingredient quantity must be positive")
		}
		lines = append(lines, domain.CustomMealIngredient{
			IngredientID: line.IngredientID,
			Quantity:     line.Quantity,
		})
	}

	return s.customMeals.Create(ctx, custommealrepo.CreateInput{
		Meal: domain.CustomMeal{
			UserID:              userID,
			RestaurantID:        in.RestaurantID,
			BaseMealID:          in.BaseMealID,
			Name:                in.Name,
			Description:         in.Description,
			CookingInstructions: in.CookingInstructions,
			IsPublic:            in.IsPublic,
		},
		Ingredients: lines,
	})
}

// GetCustomMeal returns a custom meal the user may see: their own or a
// public one.
func (s *Service) GetCustomMeal(ctx context.Context, userID, id string) (*domain.CustomMeal, error) {
	m, err := s.customMeals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !m.IsPublic && m.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

func (s *Service) ListCustomMeals(ctx context.Context, userID string) ([]domain.CustomMeal, error) {
	return s.customMeals.List(ctx, userID)
}

func (s *Service) DeleteCustomMeal(ctx context.Context, userID, id string) error {
	return s.customMeals.Delete(ctx, id, userID)
}

func (s *Service) requireOwner(ctx context.Context, ownerID, restaurantID string) error {
	r, err := s.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		return err
	}
	if r.OwnerID != ownerID {
		return ErrNotOwner
	}
	return nil
}
