package restaurant

import (
	"context"
	"errors"
	"strings"

	"uchef/internal/domain"
	ingredientrepo "uchef/internal/repository/ingredient"
	restaurantrepo "uchef/internal/repository/restaurant"
)

var (
	// ErrNotOwner is returned when a mutation targets a restaurant the user
	// does not own.
	ErrNotOwner = errors.New("not the restaurant owner")
	// ErrAlreadyRegistered is returned when an owner registers twice.
	ErrAlreadyRegistered = errors.New("owner already has a restaurant")
	// ErrReasonRequired is returned when a rejection lacks a reason.
	ErrReasonRequired = errors.New("rejection reason required")
)

// Service manages restaurants and their ingredient inventory.
type Service struct {
	repo        restaurantrepo.Repository
	ingredients ingredientrepo.Repository
}

func New(repo restaurantrepo.Repository, ingredients ingredientrepo.Repository) *Service {
	return &Service{repo: repo, ingredients: ingredients}
}

// RegisterInput captures restaurant registration fields.
type RegisterInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
	OpeningTime string `json:"openingTime"`
	ClosingTime string `json:"closingTime"`
}

// Register creates a restaurant for the owner, pending admin approval. Each
// owner may hold exactly one restaurant.
func (s *Service) Register(ctx context.Context, ownerID string, in RegisterInput) (*domain.Restaurant, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.Invalidf("name required")
	}
	if strings.TrimSpace(in.Address) == "" {
		return nil, domain.Invalidf("address required")
	}

	created, err := s.repo.Create(ctx, domain.Restaurant{
		OwnerID:     ownerID,
		Name:        in.Name,
		Description: in.Description,
		Address:     in.Address,
		PhoneNumber: in.PhoneNumber,
		OpeningTime: in.OpeningTime,
		ClosingTime: in.ClosingTime,
		IsActive:    true,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, ErrAlreadyRegistered
		}
		return nil, err
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Restaurant, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByOwner(ctx context.Context, ownerID string) (*domain.Restaurant, error) {
	return s.repo.GetByOwner(ctx, ownerID)
}

// List returns approved, active restaurants; with includeAll set (admin
// dashboards) every restaurant is returned.
func (s *Service) List(ctx context.Context, includeAll bool) ([]domain.Restaurant, error) {
	return s.repo.List(ctx, !includeAll)
}

// Update applies owner edits after verifying ownership.
func (s *Service) Update(ctx context.Context, ownerID, id string, in RegisterInput, isActive bool) (*domain.Restaurant, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.OwnerID != ownerID {
		return nil, ErrNotOwner
	}

	current.Name = in.Name
	current.Description = in.Description
	current.Address = in.Address
	current.PhoneNumber = in.PhoneNumber
	current.OpeningTime = in.OpeningTime
	current.ClosingTime = in.ClosingTime
	current.IsActive = isActive
	return s.repo.Update(ctx, *current)
}

// Approve marks the restaurant approved. Admin only; the handler gates the
// role.
func (s *Service) Approve(ctx context.Context, id string) (*domain.Restaurant, error) {
	return s.repo.SetApproval(ctx, id, true, "")
}

// Reject marks the restaurant rejected with a mandatory reason.
func (s *Service) Reject(ctx context.Context, id, reason string) (*domain.Restaurant, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrReasonRequired
	}
	return s.repo.SetApproval(ctx, id, false, reason)
}

// IngredientInput captures ingredient fields for create/update.
type IngredientInput struct {
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	Quantity          float64 `json:"quantity"`
	Unit              string  `json:"unit"`
	PricePerUnitCents int64   `json:"pricePerUnitCents"`
	IsAvailable       bool    `json:"isAvailable"`
}

// AddIngredient stocks a new ingredient for the owner's restaurant.
func (s *Service) AddIngredient(ctx context.Context, ownerID, restaurantID string, in IngredientInput) (*domain.Ingredient, error) {
	if err := s.requireOwner(ctx, ownerID, restaurantID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.Invalidf("name required")
	}
	if strings.TrimSpace(in.Unit) == "" {
		return nil, domain.Invalidf("unit required")
	}
	if in.Quantity < 0 {
		return nil, domain.Invalidf("quantity must not be negative")
	}
	return s.ingredients.Create(ctx, domain.Ingredient{
		RestaurantID:      restaurantID,
		Name:              in.Name,
		Description:       in.Description,
		Quantity:          in.Quantity,
		Unit:              in.Unit,
		PricePerUnitCents: in.PricePerUnitCents,
		IsAvailable:       in.IsAvailable && in.Quantity > 0,
	})
}

// ListIngredients returns a restaurant's inventory.
func (s *Service) ListIngredients(ctx context.Context, restaurantID string) ([]domain.Ingredient, error) {
	return s.ingredients.ListByRestaurant(ctx, restaurantID)
}

// UpdateIngredient applies owner edits to an ingredient.
func (s *Service) UpdateIngredient(ctx context.Context, ownerID, ingredientID string, in IngredientInput) (*domain.Ingredient, error) {
	current, err := s.ingredients.GetByID(ctx, ingredientID)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwner(ctx, ownerID, current.RestaurantID); err != nil {
		return nil, err
	}
	if in.Quantity < 0 {
		return nil, domain.Invalidf("quantity must not be negative")
	}

	current.Name = in.Name
	current.Description = in.Description
	current.Quantity = in.Quantity
	current.Unit = in.Unit
	current.PricePerUnitCents = in.PricePerUnitCents
	current.IsAvailable = in.IsAvailable && in.Quantity > 0
	return s.ingredients.Update(ctx, *current)
}

// DeleteIngredient removes an ingredient from the owner's inventory.
func (s *Service) DeleteIngredient(ctx context.Context, ownerID, ingredientID string) error {
	current, err := s.ingredients.GetByID(ctx, ingredientID)
	if err != nil {
		return err
	}
	if err := s.requireOwner(ctx, ownerID, current.RestaurantID); err != nil {
		return err
	}
	return s.ingredients.Delete(ctx, ingredientID)
}

func (s *Service) requireOwner(ctx context.Context, ownerID, restaurantID string) error {
	r, err := s.repo.GetByID(ctx, restaurantID)
	if err != nil {
		return err
	}
	if r.OwnerID != ownerID {
		return ErrNotOwner
	}
	return nil
}
