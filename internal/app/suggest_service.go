package app

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen/quotevault/internal/ports"
)

// MaxSuggestions caps autocomplete result size.
const MaxSuggestions = 10

// SuggestService serves substring autocomplete for author and category
// names. Short or empty queries are allowed and simply match broadly; the
// UI's minimum-length rule is a presentation concern, not enforced here.
type SuggestService struct {
	authors    ports.AuthorRepository
	categories ports.CategoryRepository
	logger     *slog.Logger
}

// SuggestServiceConfig contains configuration for the suggest service.
type SuggestServiceConfig struct {
	Authors    ports.AuthorRepository
	Categories ports.CategoryRepository
	Logger     *slog.Logger
}

// NewSuggestService creates a new suggest service.
func NewSuggestService(cfg SuggestServiceConfig) *SuggestService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &SuggestService{
		authors:    cfg.Authors,
		categories: cfg.Categories,
		logger:     logger,
	}
}

// SearchAuthors returns up to MaxSuggestions author names containing q.
func (s *SuggestService) SearchAuthors(ctx context.Context, q string) ([]string, error) {
	names, err := s.authors.SearchAuthors(ctx, q, MaxSuggestions)
	if err != nil {
		s.logger.ErrorContext(ctx, "author search failed", slog.Any("error", err))
		return nil, err
	}

	return names, nil
}

// SearchCategories returns up to MaxSuggestions category names containing q.
func (s *SuggestService) SearchCategories(ctx context.Context, q string) ([]string, error) {
	names, err := s.categories.SearchCategories(ctx, q, MaxSuggestions)
	if err != nil {
		s.logger.ErrorContext(ctx, "category search failed", slog.Any("error", err))
		return nil, err
	}

	return names, nil
}
