// Package query exposes read-only venue and availability lookups, caching
// venue metadata the way the teacher's query.Service caches event
// summaries.
package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tixgo/seatengine/internal/domain"
	"github.com/tixgo/seatengine/internal/repository"
	postgresrepo "github.com/tixgo/seatengine/internal/repository/postgres"
	redisrepo "github.com/tixgo/seatengine/internal/repository/redis"
	"github.com/tixgo/seatengine/internal/service/reservation"
)

type Config struct {
	VenueSummaryTTL time.Duration
}

type Service struct {
	store       *postgresrepo.Store
	cache       *redisrepo.Cache
	reservation *reservation.Service
	cfg         Config
}

func New(
	store *postgresrepo.Store,
	cache *redisrepo.Cache,
	reservationSvc *reservation.Service,
	cfg Config,
) *Service {
	if cfg.VenueSummaryTTL <= 0 {
		cfg.VenueSummaryTTL = 60 * time.Second
	}

	return &Service{
		store:       store,
		cache:       cache,
		reservation: reservationSvc,
		cfg:         cfg,
	}
}

// GetVenue retrieves a venue's catalog record (its name and grid shape).
//
// Returns:
//   - *domain.Venue: the venue when found.
//   - error: query.ErrVenueNotFound if the venue does not exist.
func (s *Service) GetVenue(ctx context.Context, id int64) (*domain.Venue, error) {
	const op = "service.query.GetVenue"

	if s.cache == nil {
		v, err := s.store.Venues().Get(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%s:%w", op, ErrVenueNotFound)
			}
			return nil, fmt.Errorf("%s:%w", op, err)
		}
		return v, nil
	}

	v, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		fmt.Sprintf("seatengine:v1:venue:%d:summary", id),
		s.cfg.VenueSummaryTTL,
		func(ctx context.Context) (domain.Venue, error) {
			v, err := s.store.Venues().Get(ctx, id)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return domain.Venue{}, ErrVenueNotFound
				}
				return domain.Venue{}, err
			}
			return *v, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return &v, nil
}

// Availability returns the number of seats not currently held or reserved
// at venueID.
//
// Returns:
//   - error: query.ErrVenueNotFound if the venue does not exist.
func (s *Service) Availability(ctx context.Context, venueID int64) (int, error) {
	const op = "service.query.Availability"

	n, err := s.reservation.NumAvailable(ctx, venueID)
	if err != nil {
		if errors.Is(err, reservation.ErrVenueNotFound) {
			return 0, fmt.Errorf("%s:%w", op, ErrVenueNotFound)
		}
		return 0, fmt.Errorf("%s:%w", op, err)
	}

	return n, nil
}
