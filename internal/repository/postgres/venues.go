package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tixgo/seatengine/internal/domain"
)

// VenueRepo persists the static (rows, cols) shape of venues.
type VenueRepo struct {
	pool *pgxpool.Pool
}

// Create inserts a new venue and returns its generated ID.
//
// Parameters:
//   - ctx: request-scoped context.
//   - name: human-readable venue name.
//   - rows, cols: the venue's seating grid dimensions.
//
// Returns:
//   - int64: newly created venue ID.
//   - error: repository.ErrConflict if a venue with the same name exists.
func (r *VenueRepo) Create(ctx context.Context, name string, rows, cols int) (int64, error) {
	const op = "postgres.VenueRepo.Create"

	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO venues(name, rows, cols)
			 VALUES ($1, $2, $3)
			 RETURNING id`,
		name, rows, cols,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return id, nil
}

// Get retrieves a venue by its ID.
//
// Parameters:
//   - ctx: request-scoped context.
//   - id: unique identifier of the venue to retrieve.
//
// Returns:
//   - *domain.Venue: the venue when found.
//   - error: repository.ErrNotFound if the venue does not exist.
func (r *VenueRepo) Get(ctx context.Context, id int64) (*domain.Venue, error) {
	const op = "postgres.VenueRepo.Get"

	var v domain.Venue
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, rows, cols, created_at
			 FROM venues WHERE id = $1`,
		id,
	).Scan(&v.ID, &v.Name, &v.Rows, &v.Cols, &v.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &v, nil
}
