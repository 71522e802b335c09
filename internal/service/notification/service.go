package notification

import (
	"context"

	"uchef/internal/domain"
	notificationrepo "uchef/internal/repository/notification"
)

// Service reads a user's notification feed. Records are written by the order
// service as orders move through their lifecycle.
type Service struct {
	repo notificationrepo.Repository
}

func New(repo notificationrepo.Repository) *Service {
	return &Service{repo: repo}
}

// List returns the user's notifications, newest first; unreadOnly narrows to
// the unread ones.
func (s *Service) List(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	return s.repo.ListByRecipient(ctx, userID, unreadOnly)
}

// MarkRead flips one of the user's notifications to read.
func (s *Service) MarkRead(ctx context.Context, userID, id string) (*domain.Notification, error) {
	return s.repo.MarkRead(ctx, userID, id)
}

// MarkAllRead marks every unread notification read and returns the count.
func (s *Service) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID)
}
