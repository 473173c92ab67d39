package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jsamuelsen/quotevault/internal/domain"
)

// quoteViewColumns aggregates a quote with its author name and its
// categories joined into a single comma-and-space-separated string.
// LEFT JOINs keep quotes without an author or categories; those fields
// come back NULL.
const quoteViewColumns = `
	SELECT
		q.id,
		q.quote,
		q.date,
		a.name AS author,
		GROUP_CONCAT(c.category, ', ') AS categories
	FROM quotes q
	LEFT JOIN authors a ON q.author_id = a.id
	LEFT JOIN quotes_categories qc ON q.id = qc.quote_id
	LEFT JOIN categories c ON qc.category_id = c.id
	GROUP BY q.id
`

// InsertQuote creates exactly one new quote row. A nil authorID stores NULL.
func (r repos) InsertQuote(ctx context.Context, text string, authorID *int64, date string) (int64, error) {
	var id int64

	err := r.q.QueryRowContext(ctx,
		`INSERT INTO quotes (quote, author_id, date) VALUES (?, ?, ?) RETURNING id`,
		text, authorID, date,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting quote: %w", err)
	}

	return id, nil
}

// LinkCategory attaches a category to a quote. INSERT OR IGNORE makes a
// duplicate link attempt a no-op against the composite primary key.
func (r repos) LinkCategory(ctx context.Context, quoteID, categoryID int64) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT OR IGNORE INTO quotes_categories (quote_id, category_id) VALUES (?, ?)`,
		quoteID, categoryID,
	)
	if err != nil {
		return fmt.Errorf("linking quote %d to category %d: %w", quoteID, categoryID, err)
	}

	return nil
}

// RandomQuote returns one quote chosen uniformly at random, unweighted.
func (r repos) RandomQuote(ctx context.Context) (*domain.QuoteView, error) {
	row := r.q.QueryRowContext(ctx, quoteViewColumns+` ORDER BY RANDOM() LIMIT 1`)

	view, err := scanQuoteView(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("quote")
		}

		return nil, fmt.Errorf("selecting random quote: %w", err)
	}

	return view, nil
}

// ListQuotes returns every quote, most recently added first.
func (r repos) ListQuotes(ctx context.Context) ([]domain.QuoteView, error) {
	rows, err := r.q.QueryContext(ctx, quoteViewColumns+` ORDER BY q.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing quotes: %w", err)
	}
	defer rows.Close()

	views := []domain.QuoteView{}

	for rows.Next() {
		view, err := scanQuoteView(rows)
		if err != nil {
			return nil, fmt.Errorf("listing quotes: %w", err)
		}

		views = append(views, *view)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating quotes: %w", err)
	}

	return views, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuoteView(row rowScanner) (*domain.QuoteView, error) {
	var (
		view       domain.QuoteView
		author     sql.NullString
		categories sql.NullString
	)

	if err := row.Scan(&view.ID, &view.Text, &view.Date, &author, &categories); err != nil {
		return nil, err
	}

	if author.Valid {
		view.Author = &author.String
	}

	if categories.Valid {
		view.Categories = &categories.String
	}

	return &view, nil
}
