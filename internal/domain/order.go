package domain

import "time"

// OrderStatus is server-authoritative. Clients only request transitions.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s is a known status value.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderPreparing, OrderReady, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// CanTransition reports whether from may move to to. Transitions are
// one-directional and no state is re-enterable once left.
func CanTransition(from, to OrderStatus) bool {
	switch from {
	case OrderPending:
		return to == OrderConfirmed || to == OrderCancelled
	case OrderConfirmed:
		return to == OrderPreparing || to == OrderCancelled
	case OrderPreparing:
		return to == OrderReady || to == OrderCancelled
	case OrderReady:
		return to == OrderDelivered
	}
	return false
}

type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentDebitCard  PaymentMethod = "debit_card"
	PaymentCash       PaymentMethod = "cash"
	PaymentWallet     PaymentMethod = "wallet"
)

// ValidPaymentMethod reports whether m is a known payment method.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentCreditCard, PaymentDebitCard, PaymentCash, PaymentWallet:
		return true
	}
	return false
}

// Order is created from a cart snapshot and owned by the server afterwards.
type Order struct {
	ID                 string      `json:"id"`
	UserID             string      `json:"userId"`
	RestaurantID       string      `json:"restaurantId"`
	Status             OrderStatus `json:"status"`
	TotalPriceCents    int64       `json:"totalPriceCents"`
	DeliveryAddress    string      `json:"deliveryAddress"`
	DeliveryNotes      string      `json:"deliveryNotes,omitempty"`
	CancellationReason string      `json:"cancellationReason,omitempty"`
	Items              []OrderItem `json:"items,omitempty"`
	Payment            *Payment    `json:"payment,omitempty"`
	CreatedAt          time.Time   `json:"createdAt"`
	UpdatedAt          time.Time   `json:"updatedAt"`
}

// OrderItem references exactly one of MealID or CustomMealID. PriceCents is
// the resolved unit price at order time.
type OrderItem struct {
	ID                  string  `json:"id"`
	OrderID             string  `json:"orderId"`
	MealID              *string `json:"meal,omitempty"`
	CustomMealID        *string `json:"customMeal,omitempty"`
	Quantity            int     `json:"quantity"`
	PriceCents          int64   `json:"priceCents"`
	SpecialInstructions string  `json:"specialInstructions,omitempty"`
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

type Payment struct {
	ID            string        `json:"id"`
	OrderID       string        `json:"orderId"`
	AmountCents   int64         `json:"amountCents"`
	Method        PaymentMethod `json:"paymentMethod"`
	Status        PaymentStatus `json:"status"`
	TransactionID string        `json:"transactionId,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}
