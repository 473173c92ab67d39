// Package ports defines the interfaces between the application core and its
// adapters. Services depend on these, never on concrete implementations.
package ports

import (
	"context"

	"github.com/jsamuelsen/quotevault/internal/domain"
)

// AuthorRepository persists authors.
type AuthorRepository interface {
	// EnsureAuthor resolves an author by exact name match, creating the row
	// if absent, and returns its id. The upsert is atomic: concurrent calls
	// with the same name converge on one row.
	EnsureAuthor(ctx context.Context, name string) (int64, error)

	// SearchAuthors returns up to limit author names containing q anywhere.
	// Case sensitivity follows the store's default collation.
	SearchAuthors(ctx context.Context, q string, limit int) ([]string, error)

	// DeleteAuthor removes an author. Quotes referencing it are cascaded away.
	DeleteAuthor(ctx context.Context, id int64) error
}

// CategoryRepository persists categories.
type CategoryRepository interface {
	// EnsureCategory resolves a category by exact name, creating it if
	// absent. Names are globally unique.
	EnsureCategory(ctx context.Context, name string) (int64, error)

	// SearchCategories returns up to limit category names containing q.
	SearchCategories(ctx context.Context, q string, limit int) ([]string, error)

	// DeleteCategory removes a category and its links. Quotes stay.
	DeleteCategory(ctx context.Context, id int64) error
}

// QuoteRepository persists quotes and their category links.
type QuoteRepository interface {
	// InsertQuote creates exactly one new quote row and returns its id.
	// No dedup: resubmitting identical text creates a second quote.
	InsertQuote(ctx context.Context, text string, authorID *int64, date string) (int64, error)

	// LinkCategory attaches a category to a quote. Idempotent: linking an
	// already-linked pair is a no-op, not an error.
	LinkCategory(ctx context.Context, quoteID, categoryID int64) error

	// RandomQuote returns one quote chosen uniformly at random, aggregated
	// with author name and joined categories. domain.ErrNotFound when empty.
	RandomQuote(ctx context.Context) (*domain.QuoteView, error)

	// ListQuotes returns all quotes in descending insertion order,
	// fully materialized, with the same aggregation shape as RandomQuote.
	ListQuotes(ctx context.Context) ([]domain.QuoteView, error)
}

// SubmitFunc runs repository operations within one unit of work.
type SubmitFunc func(authors AuthorRepository, categories CategoryRepository, quotes QuoteRepository) error

// QuoteStore is the full persistence surface. Submit runs fn inside a single
// transaction so a failed ingestion leaves no orphaned partial state.
type QuoteStore interface {
	AuthorRepository
	CategoryRepository
	QuoteRepository

	Submit(ctx context.Context, fn SubmitFunc) error
}
