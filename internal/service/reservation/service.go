// Package reservation wires the in-memory ticket-reservation engine
// (internal/ticketservice) to the host's ambient concerns: one engine
// instance per venue, reconstructed lazily from the venue catalog, with a
// read-through availability cache, a change-notification pub/sub, and a
// sliding-window rate limiter gating hold creation — the same shape as the
// teacher's reservation.Service, retargeted from a DB-backed multi-event
// booking flow to the spec's single-venue in-memory engine.
package reservation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tixgo/seatengine/internal/allocator"
	"github.com/tixgo/seatengine/internal/domain"
	"github.com/tixgo/seatengine/internal/hold"
	redisx "github.com/tixgo/seatengine/internal/redis"
	"github.com/tixgo/seatengine/internal/repository"
	postgresrepo "github.com/tixgo/seatengine/internal/repository/postgres"
	redisrepo "github.com/tixgo/seatengine/internal/repository/redis"
	"github.com/tixgo/seatengine/internal/seatgrid"
	"github.com/tixgo/seatengine/internal/ticketservice"
)

// Strategy selects which of the two interchangeable allocator strategies
// (spec §4.2) a venue's engine is built with.
type Strategy int

const (
	// StrategyDivideConquer is the time-optimal allocator (spec §4.4),
	// amortized O(N) per allocation.
	StrategyDivideConquer Strategy = iota
	// StrategyThreePass is the space-optimal allocator (spec §4.3),
	// O(C/8) bits of state per row.
	StrategyThreePass
)

type Config struct {
	HoldTTL      time.Duration
	Strategy     Strategy
	AvailabilityCacheTTL time.Duration
}

// Service is the host-facing reservation API: one ticketservice.Service per
// venue.
type Service struct {
	store   *postgresrepo.Store
	cache   *redisrepo.Cache
	pubsub  *redisx.SeatAvailabilityPubSub
	limiter *redisrepo.SlidingWindowLimiter
	cfg     Config

	mu      sync.Mutex
	engines map[int64]*ticketservice.Service
}

func New(
	store *postgresrepo.Store,
	cache *redisrepo.Cache,
	pubsub *redisx.SeatAvailabilityPubSub,
	limiter *redisrepo.SlidingWindowLimiter,
	cfg Config,
) *Service {
	if cfg.HoldTTL <= 0 {
		cfg.HoldTTL = 60 * time.Second
	}

	if cfg.AvailabilityCacheTTL <= 0 {
		cfg.AvailabilityCacheTTL = 2 * time.Second
	}

	return &Service{
		store:   store,
		cache:   cache,
		pubsub:  pubsub,
		limiter: limiter,
		cfg:     cfg,
		engines: make(map[int64]*ticketservice.Service),
	}
}

// NudgeAll runs the lazy expiration sweep on every venue engine constructed
// so far, by calling NumAvailable on each and invalidating its cache entry.
// The engine has no background timer of its own (spec §9: "If the host
// wants tighter expiration, it calls numAvailable periodically"); a host
// that wants expiration to run close to the hold TTL rather than only on
// the next request calls this from a periodic goroutine instead.
func (s *Service) NudgeAll(ctx context.Context) {
	s.mu.Lock()
	engines := make(map[int64]*ticketservice.Service, len(s.engines))
	for id, eng := range s.engines {
		engines[id] = eng
	}
	s.mu.Unlock()

	for id, eng := range engines {
		eng.NumAvailable()
		if s.cache != nil {
			_ = s.cache.InvalidateAvailability(ctx, id)
		}
	}
}

// NumAvailable returns the number of seats not currently held or reserved
// for venueID, served from a short-TTL cache when possible.
//
// Returns:
//   - int: seats available.
//   - error: ErrVenueNotFound if venueID has no catalog entry.
func (s *Service) NumAvailable(ctx context.Context, venueID int64) (int, error) {
	const op = "service.reservation.NumAvailable"

	eng, err := s.engineFor(ctx, venueID)
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, err)
	}

	if s.cache == nil {
		return eng.NumAvailable(), nil
	}

	n, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		redisx.KeyVenueAvailability(venueID),
		s.cfg.AvailabilityCacheTTL,
		func(context.Context) (int, error) {
			return eng.NumAvailable(), nil
		},
	)
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, err)
	}

	return n, nil
}

// FindAndHold places n seats for email at venueID and returns the resulting
// hold. rlKey, when non-empty, is rate-limited against hold creation.
//
// Returns:
//   - *hold.Hold: nil if fewer than n seats are currently available — not
//     an error (spec §7 OutOfCapacity).
//   - error: ErrVenueNotFound, ErrBadArgument, ErrNullArgument, or
//     ErrRateLimited.
func (s *Service) FindAndHold(
	ctx context.Context,
	venueID int64,
	n int,
	email string,
	rlKey string,
) (*hold.Hold, error) {
	const op = "service.reservation.FindAndHold"

	if s.limiter != nil && rlKey != "" {
		ok, _, retry, err := s.limiter.Allow(ctx, rlKey)
		if err != nil {
			return nil, fmt.Errorf("%s:%w", op, err)
		}
		if !ok {
			return nil, fmt.Errorf("%s: retry in %s:%w", op, retry, ErrRateLimited)
		}
	}

	eng, err := s.engineFor(ctx, venueID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	h, err := eng.FindAndHold(n, email)
	if err != nil {
		switch {
		case errors.Is(err, ticketservice.ErrBadArgument):
			return nil, fmt.Errorf("%s:%w", op, ErrBadArgument)
		case errors.Is(err, ticketservice.ErrNullArgument):
			return nil, fmt.Errorf("%s:%w", op, ErrNullArgument)
		default:
			return nil, fmt.Errorf("%s:%w", op, err)
		}
	}

	if h != nil {
		s.afterMutate(ctx, venueID)
	}

	return h, nil
}

// Reserve commits holdID to a permanent reservation for email, writes an
// order record, and returns the order.
//
// Returns:
//   - *domain.Order: nil if the hold does not exist, belongs to another
//     email, or has expired — the reason is never disclosed (spec §7).
//   - error: ErrVenueNotFound, ErrNullArgument, or a persistence error.
func (s *Service) Reserve(
	ctx context.Context,
	venueID int64,
	holdID int32,
	email string,
) (*domain.Order, error) {
	const op = "service.reservation.Reserve"

	eng, err := s.engineFor(ctx, venueID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	seatCount := 0
	if h, ok := eng.PeekHold(holdID); ok && h.Email == email {
		seatCount = h.SeatCount()
	}

	code, err := eng.Reserve(holdID, email)
	if err != nil {
		if errors.Is(err, ticketservice.ErrNullArgument) {
			return nil, fmt.Errorf("%s:%w", op, ErrNullArgument)
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}
	if code == "" {
		return nil, nil
	}

	order := domain.Order{
		ID:           uuid.New(),
		VenueID:      venueID,
		Email:        email,
		SeatCount:    seatCount,
		Confirmation: code,
		CreatedAt:    time.Now(),
	}

	if s.store != nil {
		if err := s.store.Orders().Create(ctx, order); err != nil {
			return nil, fmt.Errorf("%s:%w", op, err)
		}
	}

	s.afterMutate(ctx, venueID)

	return &order, nil
}

// PeekHold returns a debugging snapshot of a still-live hold.
func (s *Service) PeekHold(ctx context.Context, venueID int64, holdID int32) (hold.Hold, bool, error) {
	const op = "service.reservation.PeekHold"

	eng, err := s.engineFor(ctx, venueID)
	if err != nil {
		return hold.Hold{}, false, fmt.Errorf("%s:%w", op, err)
	}

	h, ok := eng.PeekHold(holdID)
	return h, ok, nil
}

// engineFor returns the ticketservice.Service for venueID, constructing it
// from the venue catalog on first access. This is what lets a host
// reconstruct a fresh in-memory engine after a restart: only the static
// (rows, cols) shape survives, never hold state (spec §6).
func (s *Service) engineFor(ctx context.Context, venueID int64) (*ticketservice.Service, error) {
	const op = "service.reservation.engineFor"

	s.mu.Lock()
	defer s.mu.Unlock()

	if eng, ok := s.engines[venueID]; ok {
		return eng, nil
	}

	v, err := s.store.Venues().Get(ctx, venueID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrVenueNotFound)
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	layout, err := seatgrid.New(v.Rows, v.Cols)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	var alloc = s.newAllocator(layout)

	eng, err := ticketservice.New(ticketservice.Config{
		Layout:    layout,
		HoldTTL:   s.cfg.HoldTTL,
		Allocator: alloc,
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	s.engines[venueID] = eng

	return eng, nil
}

func (s *Service) newAllocator(layout seatgrid.Layout) ticketserviceAllocator {
	if s.cfg.Strategy == StrategyThreePass {
		return allocator.NewThreePass(layout)
	}
	return allocator.NewDivideConquer(layout)
}

// ticketserviceAllocator is a local alias so newAllocator's return type
// doesn't force every caller of this package to import internal/allocator
// directly.
type ticketserviceAllocator = allocator.Allocator

// afterMutate invalidates the cache and publishes a change notification for
// venueID. It runs outside the engine mutex — the engine has no transaction
// to hang an after-commit hook off of, so this is best-effort and never
// fails the caller's request.
func (s *Service) afterMutate(ctx context.Context, venueID int64) {
	if s.cache != nil {
		_ = s.cache.InvalidateAvailability(ctx, venueID)
	}
	if s.pubsub != nil {
		_ = s.pubsub.PublishVenueChanged(ctx, venueID)
	}
}
