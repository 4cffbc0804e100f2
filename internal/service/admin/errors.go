package admin

import "errors"

var (
	ErrVenueConflict = errors.New("venue already exists")
	ErrBadArgument   = errors.New("bad argument")
)
