package notification

import (
	"context"

	"uchef/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, n domain.Notification) (*domain.Notification, error)
	// ListByRecipient returns the recipient's notifications, newest first.
	ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]domain.Notification, error)
	// MarkRead flips one notification; scoped to the recipient so nobody can
	// read someone else's mail.
	MarkRead(ctx context.Context, recipientID, id string) (*domain.Notification, error)
	// MarkAllRead flips every unread notification and reports how many.
	MarkAllRead(ctx context.Context, recipientID string) (int64, error)
}
