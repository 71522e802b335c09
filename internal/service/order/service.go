package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"uchef/internal/checkout"
	"uchef/internal/domain"
	custommealrepo "uchef/internal/repository/custommeal"
	mealrepo "uchef/internal/repository/meal"
	notificationrepo "uchef/internal/repository/notification"
	orderrepo "uchef/internal/repository/order"
	restaurantrepo "uchef/internal/repository/restaurant"
)

var (
	// ErrForbidden is returned when the actor may not see or mutate the
	// order.
	ErrForbidden = errors.New("not allowed")
	// ErrInvalidTransition rejects a status change the state machine does not
	// permit.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrReasonRequired rejects a cancellation without a reason.
	ErrReasonRequired = errors.New("cancellation reason required")
)

// Service creates orders from resolved item lists and drives the order
// status machine.
type Service struct {
	orders        orderrepo.Repository
	meals         mealrepo.Repository
	customMeals   custommealrepo.Repository
	restaurants   restaurantrepo.Repository
	notifications notificationrepo.Repository
}

func New(orders orderrepo.Repository, meals mealrepo.Repository, customMeals custommealrepo.Repository, restaurants restaurantrepo.Repository, notifications notificationrepo.Repository) *Service {
	return &Service{orders: orders, meals: meals, customMeals: customMeals, restaurants: restaurants, notifications: notifications}
}

// ItemInput references exactly one of MealID or CustomMealID.
type ItemInput struct {
	MealID              *string `json:"meal,omitempty"`
	CustomMealID        *string `json:"customMeal,omitempty"`
	Quantity            int     `json:"quantity"`
	SpecialInstructions string  `json:"specialInstructions,omitempty"`
}

// CreateInput carries the order request. Prices are never taken from the
// client: every line is re-priced from the database before the order is
// written.
type CreateInput struct {
	RestaurantID    string               `json:"restaurant"`
	Items           []ItemInput          `json:"items"`
	DeliveryAddress string               `json:"deliveryAddress"`
	DeliveryNotes   string               `json:"deliveryNotes,omitempty"`
	PaymentMethod   domain.PaymentMethod `json:"paymentMethod"`
}

// Create resolves prices and ingredient requirements for every line and
// writes the order in a single transaction. A stock shortfall on any
// ingredient aborts the whole order.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (*domain.Order, error) {
	if len(in.Items) == 0 {
		return nil, domain.Invalidf("order has no items")
	}
	if strings.TrimSpace(in.DeliveryAddress) == "" {
		return nil, domain.Invalidf("delivery address required")
	}
	if !domain.ValidPaymentMethod(in.PaymentMethod) {
		return nil, domain.Invalidf("unknown payment method %q", in.PaymentMethod)
	}
	restaurant, err := s.restaurants.GetByID(ctx, in.RestaurantID)
	if err != nil {
		return nil, err
	}

	var (
		items []domain.OrderItem
		total int64
		stock = newStockAggregate()
	)
	for i, item := range in.Items {
		if item.Quantity < 1 {
			return nil, domain.Invalidf("item %d: quantity must be at least 1", i)
		}
		if (item.MealID == nil) == (item.CustomMealID == nil) {
			return nil, domain.Invalidf("item %d: exactly one of meal or custom meal required", i)
		}

		var price int64
		switch {
		case item.MealID != nil:
			m, err := s.meals.GetByID(ctx, *item.MealID)
			if err != nil {
				return nil, fmt.Errorf("resolve meal %s: %w", *item.MealID, err)
			}
			if m.RestaurantID != in.RestaurantID {
				return nil, domain.Invalidf("meal %s belongs to another restaurant", m.ID)
			}
			if !m.IsAvailable {
				return nil, domain.Invalidf("meal %s is not available", m.ID)
			}
			price = m.BasePriceCents
			for _, line := range m.Ingredients {
				if line.IsOptional {
					continue
				}
				stock.add(line.IngredientID, line.Quantity*float64(item.Quantity))
			}
		case item.CustomMealID != nil:
			m, err := s.customMeals.GetByID(ctx, *item.CustomMealID)
			if err != nil {
				return nil, fmt.Errorf("resolve custom meal %s: %w", *item.CustomMealID, err)
			}
			if m.UserID != userID && !m.IsPublic {
				return nil, domain.ErrNotFound
			}
			if m.RestaurantID != in.RestaurantID {
				return nil, domain.Invalidf("custom meal %s belongs to another restaurant", m.ID)
			}
			price = m.PriceCents()
			for _, line := range m.Ingredients {
				stock.add(line.IngredientID, line.Quantity*float64(item.Quantity))
			}
		}

		items = append(items, domain.OrderItem{
			MealID:              item.MealID,
			CustomMealID:        item.CustomMealID,
			Quantity:            item.Quantity,
			PriceCents:          price,
			SpecialInstructions: item.SpecialInstructions,
		})
		total += price * int64(item.Quantity)
	}

	o, err := s.orders.Create(ctx, orderrepo.CreateOrderInput{
		UserID:          userID,
		RestaurantID:    in.RestaurantID,
		Items:           items,
		DeliveryAddress: in.DeliveryAddress,
		DeliveryNotes:   in.DeliveryNotes,
		TotalCents:      total,
		Payment: &orderrepo.PaymentInput{
			Method:        in.PaymentMethod,
			AmountCents:   total,
			TransactionID: uuid.NewString(),
		},
		Stock: stock.lines(),
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, domain.Notification{
		RecipientID:  restaurant.OwnerID,
		SenderID:     &userID,
		RestaurantID: &restaurant.ID,
		OrderID:      &o.ID,
		Kind:         domain.NotificationNewOrder,
		Title:        "New order",
		Message:      fmt.Sprintf("Order %s was placed with %s.", o.ID, restaurant.Name),
	})
	return o, nil
}

// Place implements the checkout order placer. Draft prices were computed
// from the same sources moments earlier; the rows written here are re-priced
// once more so the database is the only price authority.
func (s *Service) Place(ctx context.Context, draft checkout.OrderDraft) (*domain.Order, error) {
	in := CreateInput{
		RestaurantID:    draft.RestaurantID,
		DeliveryAddress: draft.DeliveryAddress,
		DeliveryNotes:   draft.DeliveryNotes,
		PaymentMethod:   draft.PaymentMethod,
	}
	for _, item := range draft.Items {
		in.Items = append(in.Items, ItemInput{
			MealID:              item.MealID,
			CustomMealID:        item.CustomMealID,
			Quantity:            item.Quantity,
			SpecialInstructions: item.SpecialInstructions,
		})
	}
	return s.Create(ctx, draft.UserID, in)
}

// Get returns the order if the actor may see it: its customer, the owner of
// the restaurant it was placed with, or an admin.
func (s *Service) Get(ctx context.Context, actor *domain.User, id string) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actor, o); err != nil {
		return nil, err
	}
	return o, nil
}

// List returns the orders visible to the actor: customers see their own,
// restaurant owners their restaurant's, admins everything.
func (s *Service) List(ctx context.Context, actor *domain.User) ([]domain.Order, error) {
	switch actor.Role {
	case domain.RoleAdmin:
		return s.orders.ListAll(ctx)
	case domain.RoleRestaurant:
		r, err := s.restaurants.GetByOwner(ctx, actor.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return []domain.Order{}, nil
			}
			return nil, err
		}
		return s.orders.ListByRestaurant(ctx, r.ID)
	default:
		return s.orders.ListByUser(ctx, actor.ID)
	}
}

// UpdateStatus applies one transition of the order status machine. The
// current status read here guards the update, so two racing transitions
// cannot both land.
func (s *Service) UpdateStatus(ctx context.Context, actor *domain.User, id string, next domain.OrderStatus, reason string) (*domain.Order, error) {
	if !domain.ValidOrderStatus(next) {
		return nil, domain.Invalidf("unknown status %q", next)
	}

	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actor, o); err != nil {
		return nil, err
	}
	// Customers may only cancel; progressing an order is the kitchen's job.
	if actor.Role == domain.RoleCustomer && next != domain.OrderCancelled {
		return nil, ErrForbidden
	}

	if !domain.CanTransition(o.Status, next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, next)
	}
	if next == domain.OrderCancelled {
		if strings.TrimSpace(reason) == "" {
			return nil, ErrReasonRequired
		}
	} else {
		reason = ""
	}

	updated, err := s.orders.UpdateStatusGuard(ctx, id, o.Status, next, reason)
	if err != nil {
		return nil, err
	}

	n := domain.Notification{
		SenderID:     &actor.ID,
		RestaurantID: &updated.RestaurantID,
		OrderID:      &updated.ID,
		Kind:         domain.NotificationStatusUpdate,
		Title:        "Order status updated",
		Message:      fmt.Sprintf("Order %s is now %s.", updated.ID, next),
	}
	if next == domain.OrderCancelled {
		n.Kind = domain.NotificationOrderCancelled
		n.Title = "Order cancelled"
		n.Message = fmt.Sprintf("Order %s was cancelled: %s", updated.ID, reason)
	}
	if actor.ID == updated.UserID {
		// The customer acted, so the restaurant owner is the one to tell.
		r, rerr := s.restaurants.GetByID(ctx, updated.RestaurantID)
		if rerr != nil {
			return updated, nil
		}
		n.RecipientID = r.OwnerID
	} else {
		n.RecipientID = updated.UserID
	}
	s.notify(ctx, n)
	return updated, nil
}

// notify writes a notification record. A failed write never fails the
// operation that produced it.
func (s *Service) notify(ctx context.Context, n domain.Notification) {
	if _, err := s.notifications.Create(ctx, n); err != nil {
		log.Printf("order: record notification: %v", err)
	}
}

func (s *Service) authorize(ctx context.Context, actor *domain.User, o *domain.Order) error {
	switch actor.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleRestaurant:
		r, err := s.restaurants.GetByOwner(ctx, actor.ID)
		if err != nil {
			return ErrForbidden
		}
		if r.ID != o.RestaurantID {
			return ErrForbidden
		}
		return nil
	default:
		if o.UserID != actor.ID {
			return ErrForbidden
		}
		return nil
	}
}

// stockAggregate sums required amounts per ingredient while keeping first-
// seen order, so the decrement statements run in a stable order.
type stockAggregate struct {
	index map[string]int
	rows  []orderrepo.StockLine
}

func newStockAggregate() *stockAggregate {
	return &stockAggregate{index: make(map[string]int)}
}

func (a *stockAggregate) add(ingredientID string, amount float64) {
	if i, ok := a.index[ingredientID]; ok {
		a.rows[i].Amount += amount
		return
	}
	a.index[ingredientID] = len(a.rows)
	a.rows = append(a.rows, orderrepo.StockLine{IngredientID: ingredientID, Amount: amount})
}

func (a *stockAggregate) lines() []orderrepo.StockLine {
	return a.rows
}
