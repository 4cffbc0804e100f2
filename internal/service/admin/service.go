// Package admin creates venues in the catalog that backs the engine's
// reconstructed-after-restart layout (spec §6).
package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/tixgo/seatengine/internal/repository"
	postgresrepo "github.com/tixgo/seatengine/internal/repository/postgres"
)

type Service struct {
	store *postgresrepo.Store
}

func New(store *postgresrepo.Store) *Service {
	return &Service{store: store}
}

// CreateVenue creates a venue record with the given seating grid shape and
// returns its ID.
//
// Parameters:
//   - ctx: request-scoped context.
//   - name: venue name.
//   - rows, cols: grid dimensions, both must be >= 1.
//
// Returns:
//   - int64: the created venue ID on success.
//   - error: admin.ErrBadArgument if rows or cols is < 1.
//   - error: admin.ErrVenueConflict if a venue with the same name exists.
func (s *Service) CreateVenue(ctx context.Context, name string, rows, cols int) (int64, error) {
	const op = "service.admin.CreateVenue"

	if rows < 1 || cols < 1 {
		return 0, fmt.Errorf("%s:%w", op, ErrBadArgument)
	}

	id, err := s.store.Venues().Create(ctx, name, rows, cols)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return 0, fmt.Errorf("%s:%w", op, ErrVenueConflict)
		}
		return 0, fmt.Errorf("%s:%w", op, err)
	}

	return id, nil
}
