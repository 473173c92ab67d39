// Package domain contains core business entities and rules.
package domain

import (
	"strings"
	"time"
)

// Author is a quote author. Authors are created on first use and looked up
// by exact name match before creation (upsert-by-name).
type Author struct {
	// ID is the surrogate identifier.
	ID int64

	// Name is free text, exact-matched on lookup.
	Name string
}

// Category is a named quote category. Names are globally unique; duplicate
// submissions resolve to the same row.
type Category struct {
	ID   int64
	Name string
}

// Quote is a stored quotation. Quotes are immutable after creation and are
// removed only by cascade when their author is deleted.
type Quote struct {
	ID int64

	// Text is the quote body, trimmed and non-empty.
	Text string

	// AuthorID references an existing author, or nil for an unattributed quote.
	AuthorID *int64

	// Date is a free-text date string. It is never validated at write time;
	// display formatting parses it best-effort.
	Date string
}

// QuoteView is the aggregated read shape: a quote joined with its author
// name and its categories rendered as one comma-and-space-joined string.
// Author and Categories are nil when absent so the API can emit null.
type QuoteView struct {
	ID         int64
	Text       string
	Date       string
	Author     *string
	Categories *string
}

// dateLayouts are the accepted raw date layouts, most specific first.
// The UI submits ISO dates; older rows may carry anything.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"02.01.2006",
	"2006/01/02",
}

// FormattedDate renders the raw date as day.month.year for display.
// Parsing happens only at render time; an unparseable date formats as "".
func (v QuoteView) FormattedDate() string {
	return FormatDate(v.Date)
}

// FormatDate parses a raw stored date string and renders it as 02.01.2006.
// Returns "" when the string is empty or does not parse.
func FormatDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("02.01.2006")
		}
	}

	return ""
}

// QuoteSubmission is the input to quote ingestion, as received from the
// form boundary. Fields are raw; Normalize trims them.
type QuoteSubmission struct {
	// Text is the quote body. Required after trimming.
	Text string

	// Author is an optional author name.
	Author string

	// Date is an optional free-text date. Stored as-is.
	Date string

	// Categories is an optional comma-separated category list.
	Categories string
}

// Normalize returns a copy with all fields trimmed.
func (s QuoteSubmission) Normalize() QuoteSubmission {
	return QuoteSubmission{
		Text:       strings.TrimSpace(s.Text),
		Author:     strings.TrimSpace(s.Author),
		Date:       strings.TrimSpace(s.Date),
		Categories: strings.TrimSpace(s.Categories),
	}
}

// Validate checks the submission after normalization. The boundary also
// enforces a non-empty quote, but the core cannot trust the boundary.
func (s QuoteSubmission) Validate() error {
	if strings.TrimSpace(s.Text) == "" {
		return NewValidationError("quote", "must not be empty")
	}

	return nil
}

// CategoryNames splits the Categories field on commas, trims each token and
// drops empty ones, so "Cat1, , Cat3" yields exactly two names. Duplicate
// tokens are preserved here; linking is idempotent downstream.
func (s QuoteSubmission) CategoryNames() []string {
	if strings.TrimSpace(s.Categories) == "" {
		return nil
	}

	parts := strings.Split(s.Categories, ",")

	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			names = append(names, trimmed)
		}
	}

	if len(names) == 0 {
		return nil
	}

	return names
}
