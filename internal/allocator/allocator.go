// Package allocator implements the two interchangeable seat-placement
// strategies described in the engine spec: a space-optimal three-pass
// bitmap allocator and a time-optimal divide-and-conquer allocator over
// per-run-length ordered sets.
package allocator

import (
	"github.com/tixgo/seatengine/internal/hold"
	"github.com/tixgo/seatengine/internal/seatgrid"
)

// Allocator is the capability contract every seat-placement strategy
// implements. It is not safe for concurrent use — the ticket service gates
// all access with its own mutex and never calls it re-entrantly.
type Allocator interface {
	// Allocate deterministically chooses n seats, marks them used in the
	// allocator's private state, and appends them to h via h.AddRange. It
	// returns false only if fewer than n seats are actually free — the
	// caller treats that as a contract violation, since the ticket service
	// pre-validates availability before calling Allocate.
	Allocate(n int, h *hold.Hold) bool

	// Release clears every seat in h from the allocator's private state.
	// Must tolerate seats that are already free (in practice every
	// released seat was in use).
	Release(h *hold.Hold)
}

// Layout exposes the grid dimensions both strategies are built against.
type Layout = seatgrid.Layout
