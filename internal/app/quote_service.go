package app

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// QuoteService orchestrates quote ingestion and the two read paths.
// It depends on the store port, not a concrete implementation.
type QuoteService struct {
	store  ports.QuoteStore
	logger *slog.Logger
}

// QuoteServiceConfig contains configuration for the quote service.
type QuoteServiceConfig struct {
	Store  ports.QuoteStore
	Logger *slog.Logger
}

// NewQuoteService creates a new quote service with the provided dependencies.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteService{
		store:  cfg.Store,
		logger: logger,
	}
}

// SubmitQuote ingests one submission: resolve-or-create the author, insert
// exactly one quote row, resolve-or-create each category and link it
// idempotently. The whole sequence is one transaction, so a failure leaves
// no partial state. Returns the new quote's id.
//
// Resubmitting the same text creates a second quote; only authors and
// categories deduplicate.
func (s *QuoteService) SubmitQuote(ctx context.Context, sub domain.QuoteSubmission) (int64, error) {
	sub = sub.Normalize()

	if err := sub.Validate(); err != nil {
		return 0, err
	}

	var quoteID int64

	err := s.store.Submit(ctx, func(
		authors ports.AuthorRepository,
		categories ports.CategoryRepository,
		quotes ports.QuoteRepository,
	) error {
		var authorID *int64

		if sub.Author != "" {
			id, err := authors.EnsureAuthor(ctx, sub.Author)
			if err != nil {
				return err
			}

			authorID = &id
		}

		id, err := quotes.InsertQuote(ctx, sub.Text, authorID, sub.Date)
		if err != nil {
			return err
		}

		quoteID = id

		for _, name := range sub.CategoryNames() {
			categoryID, err := categories.EnsureCategory(ctx, name)
			if err != nil {
				return err
			}

			if err := quotes.LinkCategory(ctx, quoteID, categoryID); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "quote submission failed", slog.Any("error", err))
		return 0, err
	}

	s.logger.InfoContext(ctx, "quote added",
		slog.Int64("quote_id", quoteID),
		slog.Bool("has_author", sub.Author != ""),
		slog.Int("categories", len(sub.CategoryNames())),
	)

	return quoteID, nil
}

// RandomQuote returns one quote chosen uniformly at random with its author
// name and joined categories. domain.ErrNotFound when the store is empty.
func (s *QuoteService) RandomQuote(ctx context.Context) (*domain.QuoteView, error) {
	view, err := s.store.RandomQuote(ctx)
	if err != nil {
		if !domain.IsNotFound(err) {
			s.logger.ErrorContext(ctx, "random quote failed", slog.Any("error", err))
		}

		return nil, err
	}

	return view, nil
}

// ListQuotes returns every quote, most recently added first.
func (s *QuoteService) ListQuotes(ctx context.Context) ([]domain.QuoteView, error) {
	views, err := s.store.ListQuotes(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "listing quotes failed", slog.Any("error", err))
		return nil, err
	}

	return views, nil
}

// DeleteAuthor removes an author together with its quotes and their links.
func (s *QuoteService) DeleteAuthor(ctx context.Context, id int64) error {
	if err := s.store.DeleteAuthor(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "author deleted", slog.Int64("author_id", id))

	return nil
}

// DeleteCategory removes a category and its links; quotes are untouched.
func (s *QuoteService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.store.DeleteCategory(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "category deleted", slog.Int64("category_id", id))

	return nil
}
