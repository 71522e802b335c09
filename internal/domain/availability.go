package domain

// IngredientAvailability is one ingredient's stock position for a requested
// order quantity.
type IngredientAvailability struct {
	Name      string  `json:"name"`
	Required  float64 `json:"required"`
	InStock   float64 `json:"in_stock"`
	Available bool    `json:"available"`
}

// AvailabilityResult answers whether enough stock exists to fulfil a
// requested quantity of a meal or custom meal. Unavailable holds only the
// ingredients that fall short.
type AvailabilityResult struct {
	IsAvailable bool                     `json:"is_available"`
	Unavailable []IngredientAvailability `json:"unavailable_ingredients"`
}
