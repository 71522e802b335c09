package domain

import "time"

// NotificationKind classifies what an order event means to its recipient.
type NotificationKind string

const (
	NotificationNewOrder       NotificationKind = "new_order"
	NotificationOrderCancelled NotificationKind = "order_cancelled"
	NotificationStatusUpdate   NotificationKind = "order_status_update"
)

// Notification is an order-driven message for one recipient. Sender,
// restaurant and order references are optional.
type Notification struct {
	ID           string           `json:"id"`
	RecipientID  string           `json:"recipientId"`
	SenderID     *string          `json:"senderId,omitempty"`
	RestaurantID *string          `json:"restaurantId,omitempty"`
	OrderID      *string          `json:"orderId,omitempty"`
	Kind         NotificationKind `json:"kind"`
	Title        string           `json:"title"`
	Message      string           `json:"message"`
	IsRead       bool             `json:"isRead"`
	CreatedAt    time.Time        `json:"createdAt"`
}
