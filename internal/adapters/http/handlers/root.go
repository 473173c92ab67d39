package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotevault/internal/adapters/http/session"
	"github.com/jsamuelsen/quotevault/internal/app"
	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/platform/config"
	"github.com/jsamuelsen/quotevault/internal/platform/logging"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// User-facing messages. Translation happens client-side per the session
// language; the server always emits the English catalog keys.
const (
	msgLoggedIn      = "You are logged in."
	msgLoginFailed   = "Login failed. Invalid username or password."
	msgQuoteAdded    = "Quote added successfully."
	msgNoQuotes      = "No quotes found. Add your first one above!"
	msgInvalidAPIKey = "Invalid or missing API key."
	msgUnknownAuthor = "Unknown Author"
)

// RootHandler serves the application's single path. Every operation is
// dispatched on query or form parameters of "/", mirroring the single-page
// shape of the application.
type RootHandler struct {
	auth    *app.AuthService
	quotes  *app.QuoteService
	suggest *app.SuggestService
	locale  config.LocaleConfig
	logger  *slog.Logger
}

// RootHandlerConfig contains the root handler's dependencies.
type RootHandlerConfig struct {
	Auth    *app.AuthService
	Quotes  *app.QuoteService
	Suggest *app.SuggestService
	Locale  config.LocaleConfig
	Logger  *slog.Logger
}

// NewRootHandler creates the root dispatch handler.
func NewRootHandler(cfg RootHandlerConfig) *RootHandler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &RootHandler{
		auth:    cfg.Auth,
		quotes:  cfg.Quotes,
		suggest: cfg.Suggest,
		locale:  cfg.Locale,
		logger:  logger,
	}
}

// Get dispatches GET / on query parameters:
//   - lang=X: persist the display language, redirect with lang stripped
//   - random_quote: public API, gated by api_key
//   - logout: end the session
//   - search_author=Q / search_category=Q: autocomplete, session-gated
//   - otherwise: the page model
func (h *RootHandler) Get(c *gin.Context) {
	sess := session.Current(c)

	if lang, ok := c.GetQuery("lang"); ok {
		h.switchLanguage(c, sess, lang)
		return
	}

	if _, ok := c.GetQuery("random_quote"); ok {
		h.randomQuote(c)
		return
	}

	if _, ok := c.GetQuery("logout"); ok {
		h.logout(c, sess)
		return
	}

	if q, ok := c.GetQuery("search_author"); ok {
		h.suggestions(c, sess, q, h.suggest.SearchAuthors)
		return
	}

	if q, ok := c.GetQuery("search_category"); ok {
		h.suggestions(c, sess, q, h.suggest.SearchCategories)
		return
	}

	h.page(c, sess)
}

// Post dispatches POST / on form parameters: login or add_quote.
func (h *RootHandler) Post(c *gin.Context) {
	sess := session.Current(c)

	if _, ok := c.GetPostForm("login"); ok {
		h.login(c, sess)
		return
	}

	if _, ok := c.GetPostForm("add_quote"); ok {
		h.addQuote(c, sess)
		return
	}

	c.JSON(http.StatusBadRequest, dto.NewErrorResponse("unknown form action"))
}

// switchLanguage stores the requested language in the session and redirects
// back to the same URL with the lang parameter stripped, so a reload does
// not re-trigger the switch. Unsupported languages are not persisted; the
// session keeps whatever language it had and display falls back to the
// default.
func (h *RootHandler) switchLanguage(c *gin.Context, sess ports.Session, lang string) {
	for _, supported := range h.locale.Supported {
		if lang == supported {
			sess.SetLanguage(lang)
			h.saveSession(c, sess)

			break
		}
	}

	params := c.Request.URL.Query()
	params.Del("lang")

	target := "/"
	if encoded := params.Encode(); encoded != "" {
		target += "?" + encoded
	}

	c.Redirect(http.StatusFound, target)
}

// randomQuote is the public JSON API. It runs before any session handling:
// the only credential is the api_key query parameter.
func (h *RootHandler) randomQuote(c *gin.Context) {
	if !h.auth.VerifyAPIKey(c.Query("api_key")) {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(msgInvalidAPIKey))
		return
	}

	view, err := h.quotes.RandomQuote(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(*view))
}

// logout ends the session and redirects to the login page. Logging out also
// discards the CSRF token; the next page view mints a fresh one.
func (h *RootHandler) logout(c *gin.Context, sess ports.Session) {
	h.auth.Logout(c.Request.Context(), sess)
	h.saveSession(c, sess)

	c.Redirect(http.StatusFound, "/")
}

// suggestions serves the autocomplete endpoints. Only authenticated sessions
// may probe the author and category tables.
func (h *RootHandler) suggestions(
	c *gin.Context,
	sess ports.Session,
	q string,
	search func(ctx context.Context, q string) ([]string, error),
) {
	if !h.auth.RequireAuth(sess) {
		dto.AbortError(c, domain.ErrUnauthenticated)
		return
	}

	names, err := search(c.Request.Context(), q)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, names)
}

// page renders the page model: login data for anonymous sessions, the full
// quote listing for authenticated ones. Either way the session ends up with
// a CSRF token and any pending flash message is consumed.
func (h *RootHandler) page(c *gin.Context, sess ports.Session) {
	token, err := h.auth.EnsureToken(sess)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	flash, hasFlash := sess.PopFlash()

	authenticated := h.auth.RequireAuth(sess)
	if !authenticated {
		// A stale login flag (credential removed from config) is dropped
		sess.ClearUser()
	}

	resp := dto.PageResponse{
		Authenticated: authenticated,
		Token:         token,
		Language:      h.language(sess),
	}

	if hasFlash {
		resp.Flash = &flash
	}

	if authenticated {
		views, err := h.quotes.ListQuotes(c.Request.Context())
		if err != nil {
			dto.HandleError(c, err)
			return
		}

		if len(views) == 0 && resp.Flash == nil {
			flash := domain.NewFlash(msgNoQuotes, domain.SeverityInfo)
			resp.Flash = &flash
		}

		cards := make([]dto.QuoteCard, 0, len(views))
		for _, v := range views {
			cards = append(cards, dto.NewQuoteCard(v, msgUnknownAuthor))
		}

		resp.Quotes = cards
	}

	h.saveSession(c, sess)

	c.JSON(http.StatusOK, resp)
}

// login authenticates the session from the posted form. Success and failure
// both end in a redirect carrying a flash message; the failure message never
// says which check tripped.
func (h *RootHandler) login(c *gin.Context, sess ports.Session) {
	var form dto.LoginForm
	_ = c.ShouldBind(&form)

	err := h.auth.Login(c.Request.Context(), sess, form.Username, form.Password, form.Token)
	if err != nil {
		sess.SetFlash(domain.NewFlash(msgLoginFailed, domain.SeverityDanger))
	} else {
		sess.SetFlash(domain.NewFlash(msgLoggedIn, domain.SeveritySuccess))
	}

	h.saveSession(c, sess)

	c.Redirect(http.StatusFound, "/")
}

// addQuote ingests a submitted quote. Unauthenticated or CSRF-less requests
// are rejected outright with no state change; validation problems come back
// as a flash on the form.
func (h *RootHandler) addQuote(c *gin.Context, sess ports.Session) {
	if !h.auth.RequireAuth(sess) {
		dto.AbortError(c, domain.ErrUnauthenticated)
		return
	}

	var form dto.AddQuoteForm
	_ = c.ShouldBind(&form)

	if !h.auth.VerifyCSRF(sess, form.Token) {
		dto.AbortError(c, domain.ErrCSRF)
		return
	}

	_, err := h.quotes.SubmitQuote(c.Request.Context(), form.Submission())
	if err != nil {
		if domain.IsValidation(err) {
			sess.SetFlash(domain.NewFlash(err.Error(), domain.SeverityDanger))
			h.saveSession(c, sess)
			c.Redirect(http.StatusFound, "/")

			return
		}

		dto.HandleError(c, err)

		return
	}

	sess.SetFlash(domain.NewFlash(msgQuoteAdded, domain.SeveritySuccess))
	h.saveSession(c, sess)

	c.Redirect(http.StatusFound, "/")
}

// language returns the session's display language, defaulting when unset.
func (h *RootHandler) language(sess ports.Session) string {
	if lang := sess.Language(); lang != "" {
		return lang
	}

	return h.locale.Default
}

// saveSession persists session mutations, logging rather than failing the
// request when the cookie cannot be written.
func (h *RootHandler) saveSession(c *gin.Context, sess ports.Session) {
	if err := sess.Save(); err != nil {
		logging.FromContext(c.Request.Context()).Error("saving session", "error", err)
	}
}
