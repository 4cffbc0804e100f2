package query

import "errors"

var ErrVenueNotFound = errors.New("venue not found")
