package review

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"uchef/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const reviewColumns = `id::text, user_id::text, subject, subject_id::text, rating, comment, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, in domain.Review) (*domain.Review, error) {
	const q = `
INSERT INTO reviews (user_id, subject, subject_id, rating, comment)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + reviewColumns
	var out domain.Review
	err := r.pool.QueryRow(ctx, q, in.UserID, in.Subject, in.SubjectID, in.Rating, in.Comment).Scan(
		&out.ID, &out.UserID, &out.Subject, &out.SubjectID, &out.Rating, &out.Comment, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) ListBySubject(ctx context.Context, subject domain.ReviewSubject, subjectID string) ([]domain.Review, error) {
	const q = `
SELECT ` + reviewColumns + `
FROM reviews
WHERE subject = $1 AND subject_id = $2
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, subject, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Review
	for rows.Next() {
		var rev domain.Review
		if err := rows.Scan(
			&rev.ID, &rev.UserID, &rev.Subject, &rev.SubjectID, &rev.Rating, &rev.Comment, &rev.CreatedAt, &rev.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Summary(ctx context.Context, subject domain.ReviewSubject, subjectID string) (*domain.RatingSummary, error) {
	const q = `
SELECT COALESCE(AVG(rating), 0), COUNT(*)
FROM reviews
WHERE subject = $1 AND subject_id = $2
`
	out := domain.RatingSummary{Subject: subject, SubjectID: subjectID}
	if err := r.pool.QueryRow(ctx, q, subject, subjectID).Scan(&out.Average, &out.Count); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &out, nil
		}
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id, userID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
