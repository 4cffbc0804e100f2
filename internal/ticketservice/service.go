// Package ticketservice implements the hold-lifecycle engine: it drives a
// seat allocator, maintains the insertion-ordered hold registry, runs lazy
// expiration, and derives hold identifiers and confirmation codes. It is
// the single-venue seat-reservation core; everything above it (transport,
// persistence, auth) is an external collaborator per spec.
package ticketservice

import (
	"fmt"
	"sync"
	"time"

	"github.com/tixgo/seatengine/internal/allocator"
	"github.com/tixgo/seatengine/internal/hold"
	"github.com/tixgo/seatengine/internal/seatgrid"
)

// ExpirationObserver is notified, outside any blocking behavior, whenever
// the expiration sweep releases a hold. It must not call back into the
// Service: the sweep runs under the service mutex.
type ExpirationObserver func(h hold.Hold)

// Config configures a Service. Layout, HoldTTL and Allocator are required;
// Clock defaults to hold.SystemClock{} and OnExpire defaults to a no-op.
type Config struct {
	Layout    seatgrid.Layout
	HoldTTL   time.Duration
	Allocator allocator.Allocator
	Clock     hold.Clock
	OnExpire  ExpirationObserver
}

// Service is the ticket-reservation engine for a single venue. All public
// methods acquire a single mutex for their entire duration (save for the
// pure confirmation-code computation, which runs outside the lock) — see
// spec §5. It is safe for concurrent use.
type Service struct {
	mu sync.Mutex

	layout    seatgrid.Layout
	holdTTL   time.Duration
	allocator allocator.Allocator
	clock     hold.Clock
	onExpire  ExpirationObserver

	holds     *hold.Registry
	available int
	salt      int32
}

// New constructs a Service over the given layout and allocator strategy.
// Returns ErrBadArgument if cfg.Layout has no seats or cfg.HoldTTL is not
// positive.
func New(cfg Config) (*Service, error) {
	const op = "ticketservice.New"

	if cfg.Layout.Size() <= 0 {
		return nil, fmt.Errorf("%s: layout has no seats:%w", op, ErrBadArgument)
	}

	if cfg.HoldTTL <= 0 {
		return nil, fmt.Errorf("%s: hold duration must be positive:%w", op, ErrBadArgument)
	}

	if cfg.Allocator == nil {
		return nil, fmt.Errorf("%s: allocator is required", op)
	}

	clock := cfg.Clock
	if clock == nil {
		clock = hold.SystemClock{}
	}

	salt, err := randomSalt()
	if err != nil {
		return nil, fmt.Errorf("%s: generating salt:%w", op, err)
	}

	return &Service{
		layout:    cfg.Layout,
		holdTTL:   cfg.HoldTTL,
		allocator: cfg.Allocator,
		clock:     clock,
		onExpire:  cfg.OnExpire,
		holds:     hold.NewRegistry(),
		available: cfg.Layout.Size(),
		salt:      salt,
	}, nil
}

// NumAvailable runs the expiration sweep and returns the number of seats
// not currently held or reserved.
func (s *Service) NumAvailable() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expireLocked()

	return s.available
}

// FindAndHold expires stale holds, then places n seats for email and
// registers a time-limited hold on them. It returns (nil, nil) if fewer
// than n seats are currently available — this is not an error, it is the
// engine's OutOfCapacity outcome (spec §7), distinguished from
// ErrBadArgument (n greater than the venue's total capacity).
func (s *Service) FindAndHold(n int, email string) (*hold.Hold, error) {
	const op = "ticketservice.Service.FindAndHold"

	if email == "" {
		return nil, fmt.Errorf("%s:%w", op, ErrNullArgument)
	}

	if n < 1 || n > s.layout.Size() {
		return nil, fmt.Errorf("%s:%w", op, ErrBadArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.expireLocked()

	if n > s.available {
		return nil, nil
	}

	now := s.clock.Now()
	id := s.nextIdentifierLocked(email, now)

	h := &hold.Hold{ID: id}
	if !s.allocator.Allocate(n, h) {
		panic(fmt.Sprintf("%s: allocator failed to place %d seats with %d reported available", op, n, s.available))
	}
	if h.SeatCount() != n {
		panic(fmt.Sprintf("%s: allocator placed %d seats, requested %d", op, h.SeatCount(), n))
	}

	h.Email = email
	h.ExpiresAt = now.Add(s.holdTTL)

	s.holds.Insert(h)
	s.available -= n

	return snapshot(h), nil
}

// Reserve commits holdID to a permanent reservation for email and returns
// its confirmation code. It returns ("", nil) — with no error and no
// diagnostic — if the hold does not exist, belongs to a different email, or
// has already expired; spec §7 requires these three conditions be
// indistinguishable to the caller.
func (s *Service) Reserve(holdID int32, email string) (string, error) {
	const op = "ticketservice.Service.Reserve"

	if email == "" {
		return "", fmt.Errorf("%s:%w", op, ErrNullArgument)
	}

	s.mu.Lock()
	s.expireLocked()
	h, ok := s.holds.Get(holdID)
	if !ok || h.Email != email {
		s.mu.Unlock()
		return "", nil
	}
	s.holds.Remove(holdID)
	s.mu.Unlock()

	// The hold is now permanently reserved: it does not return to
	// availability and is no longer subject to release. Confirmation-code
	// derivation is pure and runs outside the mutex.
	return EncodeConfirmation(holdID), nil
}

// PeekHold returns a value snapshot of a still-live hold without mutating
// engine state, running the expiration sweep first. It exists for operator
// tooling (a debug read), not as one of the three engine operations.
func (s *Service) PeekHold(holdID int32) (hold.Hold, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expireLocked()

	h, ok := s.holds.Get(holdID)
	if !ok {
		return hold.Hold{}, false
	}

	return *snapshot(h), true
}

// expireLocked walks the registry from the insertion-ordered front while the
// front hold's expiration instant is <= now, releasing each to the
// allocator and returning its seats to availability. Insertion order
// coincides with non-decreasing expiration order (spec §3), so this stops
// at the first non-expired entry rather than scanning the whole registry.
func (s *Service) expireLocked() {
	now := s.clock.Now()

	for {
		h := s.holds.Oldest()
		if h == nil || h.ExpiresAt.After(now) {
			return
		}

		s.holds.Remove(h.ID)
		s.allocator.Release(h)
		s.available += h.SeatCount()

		if s.onExpire != nil {
			s.onExpire(*snapshot(h))
		}
	}
}

// nextIdentifierLocked derives a hold identifier unique among currently
// live holds, retrying with an incremented millisecond value on collision
// (spec §4.1: expected collision probability per attempt is ~2^-32, so the
// amortized cost is O(1)).
func (s *Service) nextIdentifierLocked(email string, now time.Time) int32 {
	millis := now.UnixMilli()
	for {
		id := deriveIdentifier(email, s.salt, millis)
		if !s.holds.Has(id) {
			return id
		}
		millis++
	}
}

// snapshot copies h so callers receive a value they cannot use to mutate
// engine-internal state (spec §5: "the returned hold is a value snapshot").
func snapshot(h *hold.Hold) *hold.Hold {
	cp := *h
	cp.Seats = append([]seatgrid.Seat(nil), h.Seats...)
	return &cp
}
