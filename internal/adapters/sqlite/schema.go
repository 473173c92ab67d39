package sqlite

import (
	"database/sql"
	"fmt"
)

// createSchema creates all tables needed for the application.
// Safe to run against an existing store - uses IF NOT EXISTS throughout.
func createSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	return nil
}

// Authors and categories carry UNIQUE names so look-up-or-create is an
// atomic upsert instead of a racy select-then-insert. Links cascade away
// when either side is deleted; quotes cascade when their author is deleted.
const schema = `
-- Authors
CREATE TABLE IF NOT EXISTS authors (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE
);

-- Quotes
CREATE TABLE IF NOT EXISTS quotes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    quote TEXT NOT NULL,
    author_id INTEGER REFERENCES authors(id) ON DELETE CASCADE,
    date TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_quotes_author_id ON quotes(author_id);

-- Categories
CREATE TABLE IF NOT EXISTS categories (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    category TEXT NOT NULL UNIQUE
);

-- Quote/category links
CREATE TABLE IF NOT EXISTS quotes_categories (
    quote_id INTEGER NOT NULL REFERENCES quotes(id) ON DELETE CASCADE,
    category_id INTEGER NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
    PRIMARY KEY (quote_id, category_id)
);

CREATE INDEX IF NOT EXISTS idx_quotes_categories_category_id ON quotes_categories(category_id);
`
