package domain

import "time"

// Restaurant is owned by exactly one user with the restaurant role.
// Approval is nil while an admin decision is pending.
type Restaurant struct {
	ID              string    `json:"id"`
	OwnerID         string    `json:"ownerId"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Address         string    `json:"address"`
	PhoneNumber     string    `json:"phoneNumber,omitempty"`
	OpeningTime     string    `json:"openingTime,omitempty"`
	ClosingTime     string    `json:"closingTime,omitempty"`
	IsActive        bool      `json:"isActive"`
	Approved        *bool     `json:"approved"`
	RejectionReason string    `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Ingredient is a stocked item priced per unit. Stock quantity may be
// fractional (e.g. 0.5 kg).
type Ingredient struct {
	ID                string    `json:"id"`
	RestaurantID      string    `json:"restaurantId"`
	Name              string    `json:"name"`
	Description       string    `json:"description,omitempty"`
	Quantity          float64   `json:"quantity"`
	Unit              string    `json:"unit"`
	PricePerUnitCents int64     `json:"pricePerUnitCents"`
	IsAvailable       bool      `json:"isAvailable"`
	CreatedAt         time.Time `json:"createdAt"`
}
