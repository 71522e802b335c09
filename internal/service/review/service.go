package review

import (
	"context"
	"errors"

	"uchef/internal/domain"
	reviewrepo "uchef/internal/repository/review"
)

// ErrAlreadyReviewed is returned when the user already reviewed the subject.
var ErrAlreadyReviewed = errors.New("subject already reviewed by this user")

type Service struct {
	reviews reviewrepo.Repository
}

func New(reviews reviewrepo.Repository) *Service {
	return &Service{reviews: reviews}
}

// CreateInput carries a new review.
type CreateInput struct {
	Subject   domain.ReviewSubject `json:"subject"`
	SubjectID string               `json:"subjectId"`
	Rating    int                  `json:"rating"`
	Comment   string               `json:"comment"`
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (*domain.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, domain.Invalidf("rating must be between 1 and 5, got %d", in.Rating)
	}
	switch in.Subject {
	case domain.ReviewRestaurant, domain.ReviewMeal, domain.ReviewCustomMeal:
	default:
		return nil, domain.Invalidf("unknown review subject %q", in.Subject)
	}
	if in.SubjectID == "" {
		return nil, domain.Invalidf("subject id required")
	}

	created, err := s.reviews.Create(ctx, domain.Review{
		UserID:    userID,
		Subject:   in.Subject,
		SubjectID: in.SubjectID,
		Rating:    in.Rating,
		Comment:   in.Comment,
	})
	if errors.Is(err, domain.ErrAlreadyExists) {
		return nil, ErrAlreadyReviewed
	}
	return created, err
}

func (s *Service) ListBySubject(ctx context.Context, subject domain.ReviewSubject, subjectID string) ([]domain.Review, error) {
	return s.reviews.ListBySubject(ctx, subject, subjectID)
}

func (s *Service) Summary(ctx context.Context, subject domain.ReviewSubject, subjectID string) (*domain.RatingSummary, error) {
	return s.reviews.Summary(ctx, subject, subjectID)
}

// Delete removes the user's own review.
func (s *Service) Delete(ctx context.Context, id, userID string) error {
	return s.reviews.Delete(ctx, id, userID)
}
