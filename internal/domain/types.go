// Package domain holds the persisted-record shapes used by the host around
// the in-memory engine: the static venue shape a TicketService is
// reconstructed from, and the order record written after a successful
// reservation. The engine's own hold state (internal/hold, internal/
// ticketservice) is never persisted here — see spec §6 "Persisted state:
// none".
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Venue is the durable (rows, cols) shape of a single venue's seating grid.
// A host reconstructs an in-memory ticketservice.Service against this shape
// on startup; it carries no hold or seat-assignment state.
type Venue struct {
	ID        int64
	Name      string
	Rows      int
	Cols      int
	CreatedAt time.Time
}

// Order is the durable record a host writes after a successful Reserve
// call: who reserved how many seats, and the confirmation code the engine
// derived for them.
type Order struct {
	ID           uuid.UUID
	VenueID      int64
	Email        string
	SeatCount    int
	Confirmation string
	CreatedAt    time.Time
}
