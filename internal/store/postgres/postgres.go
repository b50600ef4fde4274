// Package postgres implements the store contracts on PostgreSQL. Line items
// live in a single JSONB document per order, so a whole-document items
// replace is a single UPDATE; change notifications ride LISTEN/NOTIFY
// triggers installed by the migrations.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store bundles the pgx pool behind the store interfaces.
type Store struct {
	pool *pgxpool.Pool
}

// New connects a Store to the given pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Connect opens a pgx pool and verifies the connection.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}
