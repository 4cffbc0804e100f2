// Package repository holds the sentinel errors shared by the venue-catalog
// repositories, translated from Postgres-specific errors at the boundary
// (see postgres.translateDBErr).
package repository

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)
