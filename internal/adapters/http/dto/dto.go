// Package dto provides Data Transfer Objects for HTTP request/response handling.
package dto

import (
	"github.com/jsamuelsen/quotevault/internal/domain"
)

// ErrorResponse is the error envelope for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewErrorResponse creates an error response with the given message.
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

// QuoteResponse is the public API shape of a quote. Author and Categories
// serialize as null when the quote has neither.
type QuoteResponse struct {
	ID         int64   `json:"id"`
	Quote      string  `json:"quote"`
	Date       string  `json:"date"`
	Author     *string `json:"author"`
	Categories *string `json:"categories"`
}

// NewQuoteResponse converts a domain view to the API response.
func NewQuoteResponse(v domain.QuoteView) QuoteResponse {
	return QuoteResponse{
		ID:         v.ID,
		Quote:      v.Text,
		Date:       v.Date,
		Author:     v.Author,
		Categories: v.Categories,
	}
}

// QuoteCard is the page-model shape of a quote for the authenticated
// listing: author placeholder applied, date display-formatted.
type QuoteCard struct {
	ID            int64  `json:"id"`
	Quote         string `json:"quote"`
	Author        string `json:"author"`
	Date          string `json:"date"`
	FormattedDate string `json:"formattedDate"`
	Categories    string `json:"categories"`
}

// NewQuoteCard converts a domain view to a listing card. A quote without an
// author shows the given placeholder; a failed date parse shows "".
func NewQuoteCard(v domain.QuoteView, unknownAuthor string) QuoteCard {
	card := QuoteCard{
		ID:            v.ID,
		Quote:         v.Text,
		Author:        unknownAuthor,
		Date:          v.Date,
		FormattedDate: v.FormattedDate(),
	}

	if v.Author != nil {
		card.Author = *v.Author
	}

	if v.Categories != nil {
		card.Categories = *v.Categories
	}

	return card
}

// PageResponse is the page model for GET / - the data the rendered page
// consumes. Logged-out sessions get only the token and any flash.
type PageResponse struct {
	Authenticated bool          `json:"authenticated"`
	Token         string        `json:"token"`
	Language      string        `json:"language"`
	Flash         *domain.Flash `json:"flash,omitempty"`
	Quotes        []QuoteCard   `json:"quotes,omitempty"`
}

// LoginForm carries the login request fields. Presence checks live in the
// auth service, which treats missing fields as ordinary failed credentials.
type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
	Token    string `form:"token"`
}

// AddQuoteForm carries the quote submission fields. The domain core owns
// validation; the form is just transport.
type AddQuoteForm struct {
	Quote      string `form:"quote"`
	Author     string `form:"author"`
	Categories string `form:"categories"`
	Date       string `form:"date"`
	Token      string `form:"token"`
}

// Submission converts the form into a domain submission.
func (f AddQuoteForm) Submission() domain.QuoteSubmission {
	return domain.QuoteSubmission{
		Text:       f.Quote,
		Author:     f.Author,
		Date:       f.Date,
		Categories: f.Categories,
	}
}
