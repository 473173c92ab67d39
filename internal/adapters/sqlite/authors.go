package sqlite

import (
	"context"
	"fmt"

	"github.com/jsamuelsen/quotevault/internal/domain"
)

// EnsureAuthor resolves an author id by exact name, inserting the row if
// absent. The no-op DO UPDATE makes RETURNING yield the id on both paths,
// so concurrent identical submissions converge on one row.
func (r repos) EnsureAuthor(ctx context.Context, name string) (int64, error) {
	var id int64

	err := r.q.QueryRowContext(ctx, `
		INSERT INTO authors (name) VALUES (?)
		ON CONFLICT(name) DO UPDATE SET name = excluded.name
		RETURNING id
	`, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ensuring author %q: %w", name, err)
	}

	return id, nil
}

// SearchAuthors returns up to limit author names containing q anywhere.
// LIKE case folding is left to the store's default collation.
func (r repos) SearchAuthors(ctx context.Context, q string, limit int) ([]string, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT name FROM authors WHERE name LIKE ? LIMIT ?`,
		"%"+q+"%", limit,
	)
	if err != nil {
		return nil, fmt.Errorf("searching authors: %w", err)
	}
	defer rows.Close()

	return scanNames(rows)
}

// DeleteAuthor removes an author; the FK cascade removes its quotes and,
// transitively, their category links.
func (r repos) DeleteAuthor(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM authors WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting author %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting author %d: %w", id, err)
	}

	if affected == 0 {
		return domain.NewNotFoundError("author")
	}

	return nil
}
