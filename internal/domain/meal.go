package domain

import "time"

type MealCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Meal is a restaurant-authored menu item with a fixed base price.
type Meal struct {
	ID             string           `json:"id"`
	RestaurantID   string           `json:"restaurantId"`
	CategoryID     *string          `json:"categoryId,omitempty"`
	Name           string           `json:"name"`
	Description    string           `json:"description,omitempty"`
	BasePriceCents int64            `json:"basePriceCents"`
	ImageURL       string           `json:"imageUrl,omitempty"`
	IsAvailable    bool             `json:"isAvailable"`
	IsFeatured     bool             `json:"isFeatured"`
	Ingredients    []MealIngredient `json:"mealIngredients,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// MealIngredient is one recipe line: how much of an ingredient a single
// serving of the meal consumes.
type MealIngredient struct {
	ID                   string      `json:"id"`
	MealID               string      `json:"mealId"`
	IngredientID         string      `json:"ingredientId"`
	Quantity             float64     `json:"quantity"`
	IsOptional           bool        `json:"isOptional"`
	AdditionalPriceCents int64       `json:"additionalPriceCents"`
	Ingredient           *Ingredient `json:"ingredientDetails,omitempty"`
}

// CustomMeal is a user-assembled meal. Its price is never stored: it is
// always the sum of its ingredient lines.
type CustomMeal struct {
	ID                  string                 `json:"id"`
	UserID              string                 `json:"userId"`
	RestaurantID        string                 `json:"restaurantId"`
	BaseMealID          *string                `json:"baseMealId,omitempty"`
	Name                string                 `json:"name"`
	Description         string                 `json:"description,omitempty"`
	CookingInstructions string                 `json:"cookingInstructions,omitempty"`
	IsPublic            bool                   `json:"isPublic"`
	Ingredients         []CustomMealIngredient `json:"ingredients,omitempty"`
	CreatedAt           time.Time              `json:"createdAt"`
}

type CustomMealIngredient struct {
	ID           string      `json:"id"`
	CustomMealID string      `json:"customMealId"`
	IngredientID string      `json:"ingredientId"`
	Quantity     float64     `json:"quantity"`
	Ingredient   *Ingredient `json:"ingredientDetails,omitempty"`
}

// PriceCents returns the authoritative custom meal price: the sum of
// price-per-unit times quantity over the ingredient lines. Lines missing
// ingredient details contribute nothing.
func (m CustomMeal) PriceCents() int64 {
	var total int64
	for _, line := range m.Ingredients {
		if line.Ingredient == nil {
			continue
		}
		total += lineCents(line.Ingredient.PricePerUnitCents, line.Quantity)
	}
	return total
}

// lineCents rounds half away from zero after multiplying a cent price by a
// fractional quantity.
func lineCents(pricePerUnitCents int64, quantity float64) int64 {
	v := float64(pricePerUnitCents) * quantity
	if v >= 0 {
		return int64(v + 0.5)
	}
	return int64(v - 0.5)
}
