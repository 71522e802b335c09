package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"uchef/internal/cart"
	"uchef/internal/domain"
)

var (
	// ErrEmptyCart is returned before any network or database work when the
	// cart has no lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrNoRestaurant indicates a cart without an owning restaurant, which a
	// well-formed cart can only be when empty.
	ErrNoRestaurant = errors.New("cart has no owning restaurant")
	// ErrSubmissionInFlight rejects a second concurrent submission for the
	// same user while the first is outstanding.
	ErrSubmissionInFlight = errors.New("order submission already in flight")
)

// UnavailableError aggregates every ingredient shortfall found across the
// cart lines. Submission never partially succeeds.
type UnavailableError struct {
	Ingredients []domain.IngredientAvailability
}

func (e *UnavailableError) Error() string {
	names := make([]string, 0, len(e.Ingredients))
	for _, ing := range e.Ingredients {
		names = append(names, ing.Name)
	}
	return fmt.Sprintf("insufficient stock: %s", strings.Join(names, ", "))
}

// AvailabilityChecker answers whether enough ingredient stock exists for the
// requested quantity of a meal or custom meal.
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context, ref cart.ItemRef, quantity int) (domain.AvailabilityResult, error)
}

// Pricer resolves the authoritative price of a custom meal from its
// ingredient lines.
type Pricer interface {
	CustomMealPriceCents(ctx context.Context, customMealID string) (int64, error)
}

// OrderPlacer persists a validated order draft.
type OrderPlacer interface {
	Place(ctx context.Context, draft OrderDraft) (*domain.Order, error)
}

// DeliveryInfo is the checkout form payload.
type DeliveryInfo struct {
	Address string `json:"delivery_address"`
	Notes   string `json:"delivery_notes"`
}

// DraftItem is one validated order line with its resolved price.
type DraftItem struct {
	MealID              *string
	CustomMealID        *string
	Quantity            int
	PriceCents          int64
	SpecialInstructions string
}

// OrderDraft is everything the placer needs to create the order.
type OrderDraft struct {
	UserID          string
	RestaurantID    string
	Items           []DraftItem
	DeliveryAddress string
	DeliveryNotes   string
	PaymentMethod   domain.PaymentMethod
	TotalCents      int64
}

// Reconciler bridges the cart store to order creation. Before an order is
// finalized it re-validates ingredient availability and recomputes custom
// meal prices from their ingredient lines, so a stale cart price never
// reaches an order.
type Reconciler struct {
	checker AvailabilityChecker
	pricer  Pricer
	placer  OrderPlacer

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func New(checker AvailabilityChecker, pricer Pricer, placer OrderPlacer) *Reconciler {
	return &Reconciler{
		checker:  checker,
		pricer:   pricer,
		placer:   placer,
		inFlight: make(map[string]struct{}),
	}
}

// Submit validates and places an order built from the user's cart. On
// success the cart is cleared and the created order returned. On any failure
// the cart is left untouched so the user can retry without re-entering
// items.
func (r *Reconciler) Submit(ctx context.Context, userID string, c *cart.Cart, delivery DeliveryInfo, method domain.PaymentMethod) (*domain.Order, error) {
	if err := r.acquire(userID); err != nil {
		return nil, err
	}
	defer r.release(userID)

	snap := c.Snapshot()
	if len(snap.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if snap.Restaurant == nil {
		return nil, ErrNoRestaurant
	}
	if strings.TrimSpace(delivery.Address) == "" {
		return nil, domain.Invalidf("delivery address required")
	}
	if !domain.ValidPaymentMethod(method) {
		return nil, domain.Invalidf("unknown payment method %q", method)
	}

	draft := OrderDraft{
		UserID:          userID,
		RestaurantID:    snap.Restaurant.ID,
		DeliveryAddress: delivery.Address,
		DeliveryNotes:   delivery.Notes,
		PaymentMethod:   method,
	}

	var (
		anyUnavailable bool
		shortfalls     []domain.IngredientAvailability
	)
	for _, line := range snap.Items {
		price := line.UnitPriceCents
		if line.Ref.Kind == cart.KindCustom {
			recomputed, err := r.pricer.CustomMealPriceCents(ctx, line.Ref.ID)
			if err != nil {
				return nil, fmt.Errorf("price custom meal %s: %w", line.Ref.ID, err)
			}
			price = recomputed
		}

		res, err := r.checker.CheckAvailability(ctx, line.Ref, line.Quantity)
		if err != nil {
			// A failed check blocks checkout the same way a shortfall does;
			// the user can retry once the backend recovers.
			return nil, fmt.Errorf("check availability of %s: %w", line.Ref.ID, err)
		}
		if !res.IsAvailable {
			// A result may carry no shortfall lines (a meal taken off the
			// menu); the abort must not depend on them being present.
			anyUnavailable = true
			shortfalls = append(shortfalls, res.Unavailable...)
			continue
		}

		item := DraftItem{
			Quantity:            line.Quantity,
			PriceCents:          price,
			SpecialInstructions: line.SpecialInstructions,
		}
		id := line.Ref.ID
		switch line.Ref.Kind {
		case cart.KindRegular:
			item.MealID = &id
		case cart.KindCustom:
			item.CustomMealID = &id
		default:
			return nil, domain.Invalidf("unknown item kind %q", line.Ref.Kind)
		}
		draft.Items = append(draft.Items, item)
		draft.TotalCents += price * int64(line.Quantity)
	}

	if anyUnavailable {
		return nil, &UnavailableError{Ingredients: shortfalls}
	}

	order, err := r.placer.Place(ctx, draft)
	if err != nil {
		return nil, err
	}

	c.Clear()
	return order, nil
}

func (r *Reconciler) acquire(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, busy := r.inFlight[userID]; busy {
		return ErrSubmissionInFlight
	}
	r.inFlight[userID] = struct{}{}
	return nil
}

func (r *Reconciler) release(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inFlight, userID)
}
