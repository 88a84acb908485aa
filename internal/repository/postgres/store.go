// Package postgres implements the repository contracts over pgx.
// Stores are written against the Querier subset satisfied by both
// *pgxpool.Pool and pgx.Tx, so the same store code serves standalone
// calls and transaction-scoped units of work.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lalith-99/docuvault/internal/repository"
)

// Querier is the intersection of *pgxpool.Pool and pgx.Tx the stores need.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store owns the pool and hands out repositories, either pool-backed or
// scoped to a single transaction.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Repositories returns pool-backed repositories for single-statement use.
func (s *Store) Repositories() repository.Repositories {
	return reposOver(s.pool)
}

// WithinTx runs fn against repositories bound to one transaction.
// fn returning nil commits; any error (domain errors included) rolls
// back and is passed through unchanged.
func (s *Store) WithinTx(ctx context.Context, fn func(repository.Repositories) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if err := fn(reposOver(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func reposOver(q Querier) repository.Repositories {
	return repository.Repositories{
		Documents:   NewDocumentStore(q),
		Tags:        NewTagStore(q),
		Permissions: NewPermissionStore(q),
		Users:       NewUserStore(q),
	}
}

// isUniqueViolation reports whether err is Postgres unique_violation
// (SQLSTATE 23505), the signal the stores translate to AlreadyExists.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
