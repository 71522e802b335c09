package restaurant

import (
	"context"

	"uchef/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, r domain.Restaurant) (*domain.Restaurant, error)
	GetByID(ctx context.Context, id string) (*domain.Restaurant, error)
	GetByOwner(ctx context.Context, ownerID string) (*domain.Restaurant, error)
	List(ctx context.Context, approvedOnly bool) ([]domain.Restaurant, error)
	Update(ctx context.Context, r domain.Restaurant) (*domain.Restaurant, error)
	SetApproval(ctx context.Context, id string, approved bool, rejectionReason string) (*domain.Restaurant, error)
	Delete(ctx context.Context, id string) error
}
