// Package postgres adapts the teacher's Store/DB repository pattern to the
// venue catalog: the only state a host persists across restarts for this
// engine is the static (rows, cols) shape of each venue (spec §6 —
// "Persisted state: none" is a Non-goal for the engine's hold bookkeeping,
// not for the ambient host around it).
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the subset of *pgxpool.Pool (or a transaction) that repositories
// need.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store is the venue-catalog persistence facade.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Venues() *VenueRepo { return &VenueRepo{pool: s.pool} }
func (s *Store) Orders() *OrderRepo { return &OrderRepo{pool: s.pool} }

// Ping verifies the pool can still reach Postgres.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres.Store.Ping:%w", err)
	}
	return nil
}
