package ticketservice

import "errors"

var (
	// ErrBadArgument is returned when N is outside [1, R*C] for FindAndHold,
	// or when the engine is configured with invalid layout dimensions.
	ErrBadArgument = errors.New("bad argument")

	// ErrNullArgument is returned when email is empty on FindAndHold or
	// Reserve.
	ErrNullArgument = errors.New("null argument")
)
