package reservation

import "errors"

var (
	// ErrBadArgument surfaces ticketservice.ErrBadArgument: n outside
	// [1, R*C] for FindAndHold.
	ErrBadArgument = errors.New("bad argument")

	// ErrNullArgument surfaces ticketservice.ErrNullArgument: empty email.
	ErrNullArgument = errors.New("null argument")

	// ErrVenueNotFound is returned when the venue catalog has no record
	// for the requested venue ID.
	ErrVenueNotFound = errors.New("venue not found")

	// ErrRateLimited is returned when the caller has exceeded the
	// hold-creation rate limit.
	ErrRateLimited = errors.New("rate limited")
)
