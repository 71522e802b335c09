package review

import (
	"context"

	"uchef/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, r domain.Review) (*domain.Review, error)
	ListBySubject(ctx context.Context, subject domain.ReviewSubject, subjectID string) ([]domain.Review, error)
	Summary(ctx context.Context, subject domain.ReviewSubject, subjectID string) (*domain.RatingSummary, error)
	Delete(ctx context.Context, id, userID string) error
}
