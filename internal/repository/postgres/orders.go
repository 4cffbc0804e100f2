package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tixgo/seatengine/internal/domain"
)

// OrderRepo persists the order record a host writes after a successful
// Reserve call.
type OrderRepo struct {
	pool *pgxpool.Pool
}

// Create inserts a new order record.
//
// Parameters:
//   - ctx: request-scoped context.
//   - o: the order to persist; o.ID must already be set by the caller.
//
// Returns:
//   - error: repository.ErrConflict if an order with the same ID exists.
func (r *OrderRepo) Create(ctx context.Context, o domain.Order) error {
	const op = "postgres.OrderRepo.Create"

	_, err := r.pool.Exec(ctx,
		`INSERT INTO orders(id, venue_id, email, seat_count, confirmation, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
		o.ID, o.VenueID, o.Email, o.SeatCount, o.Confirmation, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return nil
}

// Get retrieves an order by its ID.
//
// Parameters:
//   - ctx: request-scoped context.
//   - id: order identifier.
//
// Returns:
//   - *domain.Order: the order when found.
//   - error: repository.ErrNotFound if the order does not exist.
func (r *OrderRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	const op = "postgres.OrderRepo.Get"

	var o domain.Order
	err := r.pool.QueryRow(ctx,
		`SELECT id, venue_id, email, seat_count, confirmation, created_at
			 FROM orders WHERE id = $1`,
		id,
	).Scan(&o.ID, &o.VenueID, &o.Email, &o.SeatCount, &o.Confirmation, &o.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &o, nil
}
