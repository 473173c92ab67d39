package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotevault/internal/adapters/sqlite"
	"github.com/jsamuelsen/quotevault/internal/domain"
)

func newTestQuoteService(t *testing.T) (*QuoteService, *sqlite.Store) {
	t.Helper()

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = store.Close()
	})

	return NewQuoteService(QuoteServiceConfig{Store: store}), store
}

func TestSubmitQuote_FullSubmission(t *testing.T) {
	svc, _ := newTestQuoteService(t)
	ctx := context.Background()

	id, err := svc.SubmitQuote(ctx, domain.QuoteSubmission{
		Text:       "  The Analytical Engine weaves algebraical patterns.  ",
		Author:     " Ada Lovelace ",
		Date:       "1843-09-05",
		Categories: "science, computing",
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	views, err := svc.ListQuotes(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)

	v := views[0]
	assert.Equal(t, "The Analytical Engine weaves algebraical patterns.", v.Text)
	assert.Equal(t, "1843-09-05", v.Date)

	require.NotNil(t, v.Author)
	assert.Equal(t, "Ada Lovelace", *v.Author)

	require.NotNil(t, v.Categories)
	assert.Contains(t, *v.Categories, "science")
	assert.Contains(t, *v.Categories, "computing")
}

func TestSubmitQuote_MinimalSubmission(t *testing.T) {
	svc, _ := newTestQuoteService(t)
	ctx := context.Background()

	_, err := svc.SubmitQuote(ctx, domain.QuoteSubmission{Text: "just the text"})
	require.NoError(t, err)

	views, err := svc.ListQuotes(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)

	assert.Nil(t, views[0].Author)
	assert.Nil(t, views[0].Categories)
	assert.Empty(t, views[0].Date)
}

func TestSubmitQuote_EmptyTextRejected(t *testing.T) {
	svc, _ := newTestQuoteService(t)

	tests := []string{"", "   ", "\t\n"}
	for _, text := range tests {
		_, err := svc.SubmitQuote(context.Background(), domain.QuoteSubmission{Text: text})
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	}

	views, err := svc.ListQuotes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestSubmitQuote_DuplicateCategoriesLinkOnce(t *testing.T) {
	svc, _ := newTestQuoteService(t)
	ctx := context.Background()

	_, err := svc.SubmitQuote(ctx, domain.QuoteSubmission{
		Text:       "repeated categories",
		Categories: "Cat1, Cat1, Cat1",
	})
	require.NoError(t, err)

	views, err := svc.ListQuotes(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)

	require.NotNil(t, views[0].Categories)
	assert.Equal(t, "Cat1", *views[0].Categories)
}

func TestSubmitQuote_SharedAuthorsAndCategories(t *testing.T) {
	svc, store := newTestQuoteService(t)
	ctx := context.Background()

	_, err := svc.SubmitQuote(ctx, domain.QuoteSubmission{
		Text:       "first",
		Author:     "Ada Lovelace",
		Categories: "science, computing",
	})
	require.NoError(t, err)

	_, err = svc.SubmitQuote(ctx, domain.QuoteSubmission{
		Text:       "second",
		Author:     "Ada Lovelace",
		Categories: "science, letters",
	})
	require.NoError(t, err)

	// One author row, three category rows, two quotes
	authors, err := store.SearchAuthors(ctx, "Ada", 10)
	require.NoError(t, err)
	assert.Len(t, authors, 1)

	categories, err := store.SearchCategories(ctx, "", 10)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"science", "computing", "letters"}, categories)

	views, err := svc.ListQuotes(ctx)
	require.NoError(t, err)
	require.Len(t, views, 2)

	// The shared category joins both quotes; the others stay with the quote
	// that introduced them. Listing is newest-first.
	second, first := views[0], views[1]

	require.NotNil(t, first.Categories)
	assert.Contains(t, *first.Categories, "science")
	assert.Contains(t, *first.Categories, "computing")
	assert.NotContains(t, *first.Categories, "letters")

	require.NotNil(t, second.Categories)
	assert.Contains(t, *second.Categories, "science")
	assert.Contains(t, *second.Categories, "letters")
	assert.NotContains(t, *second.Categories, "computing")
}

func TestSubmitQuote_SameTextCreatesSecondQuote(t *testing.T) {
	svc, _ := newTestQuoteService(t)
	ctx := context.Background()

	first, err := svc.SubmitQuote(ctx, domain.QuoteSubmission{Text: "once more"})
	require.NoError(t, err)

	second, err := svc.SubmitQuote(ctx, domain.QuoteSubmission{Text: "once more"})
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestRandomQuote(t *testing.T) {
	svc, _ := newTestQuoteService(t)
	ctx := context.Background()

	_, err := svc.RandomQuote(ctx)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))

	id, err := svc.SubmitQuote(ctx, domain.QuoteSubmission{Text: "the only one"})
	require.NoError(t, err)

	view, err := svc.RandomQuote(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, view.ID)
	assert.Equal(t, "the only one", view.Text)
}

func TestDeleteAuthor_RemovesQuotes(t *testing.T) {
	svc, store := newTestQuoteService(t)
	ctx := context.Background()

	_, err := svc.SubmitQuote(ctx, domain.QuoteSubmission{Text: "goes away", Author: "Ephemeral"})
	require.NoError(t, err)

	authorID, err := store.EnsureAuthor(ctx, "Ephemeral")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAuthor(ctx, authorID))

	views, err := svc.ListQuotes(ctx)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestDeleteCategory_KeepsQuotes(t *testing.T) {
	svc, store := newTestQuoteService(t)
	ctx := context.Background()

	_, err := svc.SubmitQuote(ctx, domain.QuoteSubmission{Text: "stays", Categories: "doomed"})
	require.NoError(t, err)

	categoryID, err := store.EnsureCategory(ctx, "doomed")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCategory(ctx, categoryID))

	views, err := svc.ListQuotes(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Nil(t, views[0].Categories)
}
