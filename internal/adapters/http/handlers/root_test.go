package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotevault/internal/adapters/http/session"
	"github.com/jsamuelsen/quotevault/internal/adapters/sqlite"
	"github.com/jsamuelsen/quotevault/internal/app"
	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/platform/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const (
	testPassword = "secret"
	testAPIKey   = "api-key"
)

// testApp is a fully wired engine over a temporary store.
type testApp struct {
	engine *gin.Engine
	store  *sqlite.Store

	// cookies carries the session across requests, like a browser would.
	cookies []*http.Cookie
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = store.Close()
	})

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	apiKeyHash, err := bcrypt.GenerateFromPassword([]byte(testAPIKey), bcrypt.MinCost)
	require.NoError(t, err)

	authService, err := app.NewAuthService(app.AuthServiceConfig{
		Users:            map[string]string{"admin": string(passwordHash)},
		APIKeyHash:       string(apiKeyHash),
		FailedLoginDelay: time.Millisecond,
		Sleep:            func(time.Duration) {},
	})
	require.NoError(t, err)

	quoteService := app.NewQuoteService(app.QuoteServiceConfig{Store: store})
	suggestService := app.NewSuggestService(app.SuggestServiceConfig{
		Authors:    store,
		Categories: store,
	})

	handler := NewRootHandler(RootHandlerConfig{
		Auth:    authService,
		Quotes:  quoteService,
		Suggest: suggestService,
		Locale: config.LocaleConfig{
			Default:   "en",
			Supported: []string{"en", "de"},
		},
	})

	engine := gin.New()
	engine.Use(session.Middleware("testsession", "0123456789abcdef0123456789abcdef"))
	engine.GET("/", handler.Get)
	engine.POST("/", handler.Post)

	return &testApp{engine: engine, store: store}
}

// get performs a GET carrying the app's session cookies.
func (a *testApp) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range a.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	a.storeCookies(w)

	return w
}

// postForm performs a form POST carrying the app's session cookies.
func (a *testApp) postForm(t *testing.T, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range a.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	a.storeCookies(w)

	return w
}

func (a *testApp) storeCookies(w *httptest.ResponseRecorder) {
	if cookies := w.Result().Cookies(); len(cookies) > 0 {
		a.cookies = cookies
	}
}

// page fetches and decodes the page model.
func (a *testApp) page(t *testing.T) dto.PageResponse {
	t.Helper()

	w := a.get(t, "/")
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.PageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	return resp
}

// login walks the full flow: fetch the token, post credentials.
func (a *testApp) login(t *testing.T) {
	t.Helper()

	resp := a.page(t)
	require.NotEmpty(t, resp.Token)

	w := a.postForm(t, url.Values{
		"login":    {"1"},
		"username": {"admin"},
		"password": {testPassword},
		"token":    {resp.Token},
	})
	require.Equal(t, http.StatusFound, w.Code)
}

// token returns the current session's CSRF token.
func (a *testApp) token(t *testing.T) string {
	t.Helper()

	// Consume any pending flash so later assertions see a clean page
	return a.page(t).Token
}

func TestPage_AnonymousSession(t *testing.T) {
	a := newTestApp(t)

	resp := a.page(t)

	assert.False(t, resp.Authenticated)
	assert.Len(t, resp.Token, 64)
	assert.Equal(t, "en", resp.Language)
	assert.Nil(t, resp.Quotes)
}

func TestPage_TokenStableAcrossRequests(t *testing.T) {
	a := newTestApp(t)

	first := a.page(t).Token
	second := a.page(t).Token

	assert.Equal(t, first, second)
}

func TestLogin_HappyPath(t *testing.T) {
	a := newTestApp(t)
	a.login(t)

	resp := a.page(t)
	assert.True(t, resp.Authenticated)

	require.NotNil(t, resp.Flash)
	assert.Equal(t, "You are logged in.", resp.Flash.Message)
	assert.Equal(t, domain.SeveritySuccess, resp.Flash.Severity)
}

func TestLogin_WrongPassword(t *testing.T) {
	a := newTestApp(t)
	token := a.token(t)

	w := a.postForm(t, url.Values{
		"login":    {"1"},
		"username": {"admin"},
		"password": {"wrong"},
		"token":    {token},
	})
	require.Equal(t, http.StatusFound, w.Code)

	resp := a.page(t)
	assert.False(t, resp.Authenticated)

	require.NotNil(t, resp.Flash)
	assert.Equal(t, "Login failed. Invalid username or password.", resp.Flash.Message)
	assert.Equal(t, domain.SeverityDanger, resp.Flash.Severity)
}

func TestLogin_MissingCSRFToken(t *testing.T) {
	a := newTestApp(t)
	a.token(t)

	w := a.postForm(t, url.Values{
		"login":    {"1"},
		"username": {"admin"},
		"password": {testPassword},
	})
	require.Equal(t, http.StatusFound, w.Code)

	assert.False(t, a.page(t).Authenticated)
}

func TestFlash_ShownExactlyOnce(t *testing.T) {
	a := newTestApp(t)
	a.login(t)

	first := a.page(t)
	require.NotNil(t, first.Flash)

	second := a.page(t)
	assert.Nil(t, second.Flash)
}

func TestLogout(t *testing.T) {
	a := newTestApp(t)
	a.login(t)
	require.True(t, a.page(t).Authenticated)

	oldToken := a.token(t)

	w := a.get(t, "/?logout")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	resp := a.page(t)
	assert.False(t, resp.Authenticated)

	// Logout discards the CSRF token; a fresh one is minted
	assert.NotEqual(t, oldToken, resp.Token)
}

func TestAddQuote_HappyPath(t *testing.T) {
	a := newTestApp(t)
	a.login(t)
	token := a.token(t)

	w := a.postForm(t, url.Values{
		"add_quote":  {"1"},
		"quote":      {"The Analytical Engine weaves algebraical patterns."},
		"author":     {"Ada Lovelace"},
		"date":       {"1843-09-05"},
		"categories": {"science, computing"},
		"token":      {token},
	})
	require.Equal(t, http.StatusFound, w.Code)

	resp := a.page(t)
	require.NotNil(t, resp.Flash)
	assert.Equal(t, "Quote added successfully.", resp.Flash.Message)

	require.Len(t, resp.Quotes, 1)
	q := resp.Quotes[0]
	assert.Equal(t, "The Analytical Engine weaves algebraical patterns.", q.Quote)
	assert.Equal(t, "Ada Lovelace", q.Author)
	assert.Equal(t, "1843-09-05", q.Date)
	assert.Equal(t, "05.09.1843", q.FormattedDate)
	assert.Contains(t, q.Categories, "science")
	assert.Contains(t, q.Categories, "computing")
}

func TestAddQuote_UnknownAuthorPlaceholder(t *testing.T) {
	a := newTestApp(t)
	a.login(t)
	token := a.token(t)

	w := a.postForm(t, url.Values{
		"add_quote": {"1"},
		"quote":     {"unattributed"},
		"token":     {token},
	})
	require.Equal(t, http.StatusFound, w.Code)

	resp := a.page(t)
	require.Len(t, resp.Quotes, 1)
	assert.Equal(t, "Unknown Author", resp.Quotes[0].Author)
	assert.Empty(t, resp.Quotes[0].FormattedDate)
}

func TestAddQuote_RequiresAuthentication(t *testing.T) {
	a := newTestApp(t)
	token := a.token(t)

	w := a.postForm(t, url.Values{
		"add_quote": {"1"},
		"quote":     {"sneaky"},
		"token":     {token},
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	views, err := a.store.ListQuotes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestAddQuote_BadCSRFTokenLeavesStoreUnchanged(t *testing.T) {
	a := newTestApp(t)
	a.login(t)

	w := a.postForm(t, url.Values{
		"add_quote": {"1"},
		"quote":     {"forged"},
		"token":     {"bogus"},
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var errResp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "invalid request token", errResp.Error)

	views, err := a.store.ListQuotes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestAddQuote_EmptyTextBecomesFlash(t *testing.T) {
	a := newTestApp(t)
	a.login(t)
	token := a.token(t)

	w := a.postForm(t, url.Values{
		"add_quote": {"1"},
		"quote":     {"   "},
		"token":     {token},
	})
	require.Equal(t, http.StatusFound, w.Code)

	resp := a.page(t)
	require.NotNil(t, resp.Flash)
	assert.Equal(t, domain.SeverityDanger, resp.Flash.Severity)
	assert.Empty(t, resp.Quotes)
}

func TestPage_EmptyListingGetsInfoFlash(t *testing.T) {
	a := newTestApp(t)
	a.login(t)
	a.page(t) // consume the login flash

	resp := a.page(t)
	require.NotNil(t, resp.Flash)
	assert.Equal(t, "No quotes found. Add your first one above!", resp.Flash.Message)
	assert.Equal(t, domain.SeverityInfo, resp.Flash.Severity)
}

func TestRandomQuote_InvalidAPIKey(t *testing.T) {
	a := newTestApp(t)
	a.login(t)
	a.addQuote(t, "present but unreachable")

	tests := []struct {
		name   string
		target string
	}{
		{name: "missing key", target: "/?random_quote"},
		{name: "wrong key", target: "/?random_quote&api_key=wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := a.get(t, tt.target)
			assert.Equal(t, http.StatusUnauthorized, w.Code)

			var errResp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
			assert.Equal(t, "Invalid or missing API key.", errResp.Error)
		})
	}
}

func TestRandomQuote_ValidKey(t *testing.T) {
	a := newTestApp(t)
	a.login(t)
	a.addQuote(t, "the chosen one")

	// The API works without any session
	fresh := newTestAppShare(a)

	w := fresh.get(t, "/?random_quote&api_key="+testAPIKey)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.QuoteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Positive(t, resp.ID)
	assert.Equal(t, "the chosen one", resp.Quote)
	assert.Nil(t, resp.Author)
	assert.Nil(t, resp.Categories)
}

func TestRandomQuote_EmptyStore(t *testing.T) {
	a := newTestApp(t)

	w := a.get(t, "/?random_quote&api_key="+testAPIKey)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSuggestions_RequireSession(t *testing.T) {
	a := newTestApp(t)

	for _, target := range []string{"/?search_author=a", "/?search_category=a"} {
		w := a.get(t, target)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}
}

func TestSuggestions_ReturnNames(t *testing.T) {
	a := newTestApp(t)
	a.login(t)
	token := a.token(t)

	w := a.postForm(t, url.Values{
		"add_quote":  {"1"},
		"quote":      {"categorized"},
		"author":     {"Ada Lovelace"},
		"categories": {"science"},
		"token":      {token},
	})
	require.Equal(t, http.StatusFound, w.Code)

	w = a.get(t, "/?search_author=love")
	require.Equal(t, http.StatusOK, w.Code)

	var authors []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &authors))
	assert.Equal(t, []string{"Ada Lovelace"}, authors)

	w = a.get(t, "/?search_category=sci")
	require.Equal(t, http.StatusOK, w.Code)

	var categories []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
	assert.Equal(t, []string{"science"}, categories)

	// No matches still yields a JSON array, not null
	w = a.get(t, "/?search_author=zzz")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestLanguageSwitch(t *testing.T) {
	a := newTestApp(t)

	w := a.get(t, "/?lang=de")
	require.Equal(t, http.StatusFound, w.Code)

	// The redirect strips the lang parameter
	assert.Equal(t, "/", w.Header().Get("Location"))

	assert.Equal(t, "de", a.page(t).Language)
}

func TestLanguageSwitch_PreservesOtherParams(t *testing.T) {
	a := newTestApp(t)

	w := a.get(t, "/?lang=de&search_author=a")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/?search_author=a", w.Header().Get("Location"))
}

func TestLanguageSwitch_UnsupportedFallsBack(t *testing.T) {
	a := newTestApp(t)

	w := a.get(t, "/?lang=fr")
	require.Equal(t, http.StatusFound, w.Code)

	assert.Equal(t, "en", a.page(t).Language)
}

func TestLanguageSwitch_UnsupportedKeepsCurrent(t *testing.T) {
	a := newTestApp(t)

	w := a.get(t, "/?lang=de")
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "de", a.page(t).Language)

	// An unsupported choice still redirects but leaves the session alone
	w = a.get(t, "/?lang=fr")
	require.Equal(t, http.StatusFound, w.Code)

	assert.Equal(t, "de", a.page(t).Language)
}

func TestPost_UnknownFormAction(t *testing.T) {
	a := newTestApp(t)

	w := a.postForm(t, url.Values{"something": {"1"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// addQuote posts a minimal quote as the logged-in session.
func (a *testApp) addQuote(t *testing.T, text string) {
	t.Helper()

	w := a.postForm(t, url.Values{
		"add_quote": {"1"},
		"quote":     {text},
		"token":     {a.token(t)},
	})
	require.Equal(t, http.StatusFound, w.Code)
}

// newTestAppShare returns a sessionless view onto the same engine and store.
func newTestAppShare(a *testApp) *testApp {
	return &testApp{engine: a.engine, store: a.store}
}
