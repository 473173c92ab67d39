package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jsamuelsen/quotevault/internal/domain"
)

// EnsureCategory resolves a category id by exact name, inserting if absent.
// Category names are globally unique; the upsert is atomic.
func (r repos) EnsureCategory(ctx context.Context, name string) (int64, error) {
	var id int64

	err := r.q.QueryRowContext(ctx, `
		INSERT INTO categories (category) VALUES (?)
		ON CONFLICT(category) DO UPDATE SET category = excluded.category
		RETURNING id
	`, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ensuring category %q: %w", name, err)
	}

	return id, nil
}

// SearchCategories returns up to limit category names containing q anywhere.
func (r repos) SearchCategories(ctx context.Context, q string, limit int) ([]string, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT category FROM categories WHERE category LIKE ? LIMIT ?`,
		"%"+q+"%", limit,
	)
	if err != nil {
		return nil, fmt.Errorf("searching categories: %w", err)
	}
	defer rows.Close()

	return scanNames(rows)
}

// DeleteCategory removes a category. Only its links cascade; the quotes
// that carried it remain.
func (r repos) DeleteCategory(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting category %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting category %d: %w", id, err)
	}

	if affected == 0 {
		return domain.NewNotFoundError("category")
	}

	return nil
}

// scanNames collects a single-column name result set.
func scanNames(rows *sql.Rows) ([]string, error) {
	names := []string{}

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning name: %w", err)
		}

		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating names: %w", err)
	}

	return names, nil
}
