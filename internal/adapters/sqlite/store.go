// Package sqlite implements the persistence layer on SQLite via database/sql.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/jsamuelsen/quotevault/internal/ports"
)

// querier is the subset of database/sql shared by *sql.DB and *sql.Tx,
// so the same repository code runs standalone and inside Submit.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is the SQLite-backed implementation of ports.QuoteStore.
type Store struct {
	repos

	db *sql.DB
}

var _ ports.QuoteStore = (*Store)(nil)

// Open opens (creating if necessary) the SQLite database at path and ensures
// the schema exists. Pass ":memory:" for an ephemeral store.
//
// Foreign keys are enabled per connection through the DSN so cascade deletes
// hold on every pooled connection. The pool is capped at one open connection:
// SQLite allows a single writer, and this also keeps ":memory:" databases
// from silently splitting across connections.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{repos: repos{q: db}, db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Submit runs fn inside a single transaction. All repository operations fn
// performs commit together or not at all, so a failed ingestion leaves no
// orphaned authors, quotes, or links.
func (s *Store) Submit(ctx context.Context, fn ports.SubmitFunc) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	r := repos{q: tx}
	if err := fn(r, r, r); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rolling back after %w: %w", err, rbErr)
		}

		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// Name identifies the store in health check responses.
func (s *Store) Name() string {
	return "sqlite"
}

// Check reports store health by pinging the database.
func (s *Store) Check(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// repos implements the repository interfaces over a querier.
type repos struct {
	q querier
}
