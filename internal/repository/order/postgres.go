package order

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"uchef/internal/domain"
)

var (
	// ErrInsufficientStock aborts order creation when any ingredient cannot
	// cover its required amount.
	ErrInsufficientStock = errors.New("insufficient ingredient stock")
	// ErrStaleStatus indicates the order left the expected status before the
	// transition was applied.
	ErrStaleStatus = errors.New("order status changed concurrently")
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const orderColumns = `id::text, user_id::text, restaurant_id::text, status, total_price_cents, delivery_address, COALESCE(delivery_notes, ''), COALESCE(cancellation_reason, ''), created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Guarded decrement per ingredient; a short line aborts the whole
	// transaction so partial orders never reach the table.
	for _, line := range in.Stock {
		// Stock is floating point; a residue like 1e-16 must not keep an
		// empty ingredient available.
		cmd, err := tx.Exec(ctx, `
UPDATE ingredients
SET quantity = quantity - $2,
    is_available = (quantity - $2) > 0.001
WHERE id = $1 AND quantity >= $2
`, line.IngredientID, line.Amount)
		if err != nil {
			return nil, err
		}
		if cmd.RowsAffected() == 0 {
			r.logger.Printf("order repo: stock guard failed ingredient_id=%s amount=%f", line.IngredientID, line.Amount)
			return nil, ErrInsufficientStock
		}
	}

	var orderID string
	if err := tx.QueryRow(ctx, `
INSERT INTO orders (user_id, restaurant_id, status, total_price_cents, delivery_address, delivery_notes)
VALUES ($1, $2, 'pending', $3, $4, NULLIF($5, ''))
RETURNING id::text
`, in.UserID, in.RestaurantID, in.TotalCents, in.DeliveryAddress, in.DeliveryNotes).Scan(&orderID); err != nil {
		return nil, err
	}

	for _, item := range in.Items {
		if _, err := tx.Exec(ctx, `
INSERT INTO order_items (order_id, meal_id, custom_meal_id, quantity, price_cents, special_instructions)
VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
`, orderID, item.MealID, item.CustomMealID, item.Quantity, item.PriceCents, item.SpecialInstructions); err != nil {
			return nil, err
		}
	}

	if in.Payment != nil {
		if _, err := tx.Exec(ctx, `
INSERT INTO payments (order_id, amount_cents, payment_method, status, transaction_id)
VALUES ($1, $2, $3, 'pending', NULLIF($4, ''))
`, orderID, in.Payment.AmountCents, in.Payment.Method, in.Payment.TransactionID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, orderID)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE id = $1
`
	o, err := scanOrder(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		return nil, err
	}

	if err := r.attachItems(ctx, o); err != nil {
		return nil, err
	}
	if err := r.attachPayment(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return r.list(ctx, `
SELECT `+orderColumns+`
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC
`, userID)
}

func (r *postgresRepo) ListByRestaurant(ctx context.Context, restaurantID string) ([]domain.Order, error) {
	return r.list(ctx, `
SELECT `+orderColumns+`
FROM orders
WHERE restaurant_id = $1
ORDER BY created_at DESC
`, restaurantID)
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	return r.list(ctx, `
SELECT `+orderColumns+`
FROM orders
ORDER BY created_at DESC
`)
}

func (r *postgresRepo) UpdateStatusGuard(ctx context.Context, id string, expected, next domain.OrderStatus, reason string) (*domain.Order, error) {
	const q = `
UPDATE orders
SET status = $3,
    cancellation_reason = NULLIF($4, ''),
    updated_at = now()
WHERE id = $1 AND status = $2
`
	cmd, err := r.pool.Exec(ctx, q, id, expected, next, reason)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		var exists bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&exists); err != nil {
			return nil, err
		}
		if !exists {
			return nil, domain.ErrNotFound
		}
		return nil, ErrStaleStatus
	}
	return r.GetByID(ctx, id)
}

func (r *postgresRepo) list(ctx context.Context, q string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("order repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) attachItems(ctx context.Context, o *domain.Order) error {
	const q = `
SELECT id::text, order_id::text, meal_id::text, custom_meal_id::text, quantity, price_cents, COALESCE(special_instructions, '')
FROM order_items
WHERE order_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, q, o.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.MealID, &item.CustomMealID,
			&item.Quantity, &item.PriceCents, &item.SpecialInstructions,
		); err != nil {
			return err
		}
		o.Items = append(o.Items, item)
	}
	return rows.Err()
}

func (r *postgresRepo) attachPayment(ctx context.Context, o *domain.Order) error {
	const q = `
SELECT id::text, order_id::text, amount_cents, payment_method, status, COALESCE(transaction_id, ''), created_at
FROM payments
WHERE order_id = $1
LIMIT 1
`
	var p domain.Payment
	err := r.pool.QueryRow(ctx, q, o.ID).Scan(
		&p.ID, &p.OrderID, &p.AmountCents, &p.Method, &p.Status, &p.TransactionID, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}
	o.Payment = &p
	return nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.RestaurantID,
		&o.Status,
		&o.TotalPriceCents,
		&o.DeliveryAddress,
		&o.DeliveryNotes,
		&o.CancellationReason,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}
