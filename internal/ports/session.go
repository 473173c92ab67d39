package ports

import "github.com/jsamuelsen/quotevault/internal/domain"

// Session is the per-request view of the caller's session. The request
// boundary owns its lifecycle (create, read, mutate, destroy); the core only
// ever sees this interface, never an ambient global.
//
// Sessions are read-modify-write safe per session; no concurrent multi-tab
// guarantee is made.
type Session interface {
	// User returns the authenticated username, or "" when not logged in.
	User() string

	// SetUser marks the session authenticated for the given username.
	SetUser(username string)

	// ClearUser removes the authentication flag.
	ClearUser()

	// Token returns the session's CSRF token, or "" when none was issued.
	Token() string

	// SetToken stores a CSRF token for the session's lifetime.
	SetToken(token string)

	// ClearToken invalidates the CSRF token.
	ClearToken()

	// Language returns the session's display language, or "" when unset.
	Language() string

	// SetLanguage persists the display language.
	SetLanguage(lang string)

	// SetFlash stores a one-shot status message for the next render.
	SetFlash(flash domain.Flash)

	// PopFlash returns the pending flash, if any, and clears it.
	PopFlash() (domain.Flash, bool)

	// Save persists pending session mutations.
	Save() error
}
