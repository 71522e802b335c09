package meal

import (
	"context"

	"uchef/internal/cart"
	"uchef/internal/domain"
)

// CheckAvailability reports whether enough ingredient stock exists to prepare
// the requested quantity of a meal or custom meal. The result lists every
// short ingredient, not just the first.
func (s *Service) CheckAvailability(ctx context.Context, ref cart.ItemRef, quantity int) (domain.AvailabilityResult, error) {
	if quantity < 1 {
		quantity = 1
	}

	switch ref.Kind {
	case cart.KindRegular:
		m, err := s.meals.GetByID(ctx, ref.ID)
		if err != nil {
			return domain.AvailabilityResult{}, err
		}
		if !m.IsAvailable {
			return domain.AvailabilityResult{}, nil
		}
		return checkLines(recipeLines(m.Ingredients), quantity), nil
	case cart.KindCustom:
		m, err := s.customMeals.GetByID(ctx, ref.ID)
		if err != nil {
			return domain.AvailabilityResult{}, err
		}
		return checkLines(customLines(m.Ingredients), quantity), nil
	default:
		return domain.AvailabilityResult{}, domain.Invalidf("unknown item kind %q", ref.Kind)
	}
}

// CustomMealPriceCents resolves the current price of a custom meal from the
// live price-per-unit of its ingredients.
func (s *Service) CustomMealPriceCents(ctx context.Context, customMealID string) (int64, error) {
	m, err := s.customMeals.GetByID(ctx, customMealID)
	if err != nil {
		return 0, err
	}
	return m.PriceCents(), nil
}

type stockLine struct {
	ingredient *domain.Ingredient
	perServing float64
}

// recipeLines keeps only the lines that gate availability: optional
// ingredients are add-ons and never block a meal.
func recipeLines(lines []domain.MealIngredient) []stockLine {
	out := make([]stockLine, 0, len(lines))
	for _, line := range lines {
		if line.IsOptional {
			continue
		}
		out = append(out, stockLine{ingredient: line.Ingredient, perServing: line.Quantity})
	}
	return out
}

func customLines(lines []domain.CustomMealIngredient) []stockLine {
	out := make([]stockLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, stockLine{ingredient: line.Ingredient, perServing: line.Quantity})
	}
	return out
}

func checkLines(lines []stockLine, quantity int) domain.AvailabilityResult {
	res := domain.AvailabilityResult{IsAvailable: true}
	for _, line := range lines {
		if line.ingredient == nil {
			continue
		}
		required := line.perServing * float64(quantity)
		ok := line.ingredient.IsAvailable && line.ingredient.Quantity >= required
		if !ok {
			res.IsAvailable = false
			res.Unavailable = append(res.Unavailable, domain.IngredientAvailability{
				Name:      line.ingredient.Name,
				Required:  required,
				InStock:   line.ingredient.Quantity,
				Available: false,
			})
		}
	}
	return res
}
