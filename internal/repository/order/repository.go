package order

import (
	"context"

	"uchef/internal/domain"
)

// StockLine is one ingredient decrement performed atomically with order
// creation.
type StockLine struct {
	IngredientID string
	Amount       float64
}

// PaymentInput records the payment alongside the order.
type PaymentInput struct {
	Method        domain.PaymentMethod
	AmountCents   int64
	TransactionID string
}

// CreateOrderInput is a fully resolved order: prices already computed,
// stock requirements already aggregated per ingredient.
type CreateOrderInput struct {
	UserID          string
	RestaurantID    string
	Items           []domain.OrderItem
	DeliveryAddress string
	DeliveryNotes   string
	TotalCents      int64
	Payment         *PaymentInput
	Stock           []StockLine
}

type Repository interface {
	// Create inserts the order, its items and payment, and decrements
	// ingredient stock, all in one transaction. Any stock shortfall aborts
	// the whole order with ErrInsufficientStock.
	Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListByRestaurant(ctx context.Context, restaurantID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	// UpdateStatusGuard moves id from expected to next, recording reason for
	// cancellations. It returns ErrStaleStatus when the order is no longer
	// in the expected status.
	UpdateStatusGuard(ctx context.Context, id string, expected, next domain.OrderStatus, reason string) (*domain.Order, error)
}
