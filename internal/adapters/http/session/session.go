// Package session adapts gin-contrib/sessions to the ports.Session interface
// so the application layer never touches cookie machinery directly.
package session

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/memstore"
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// Session value keys. Kept as untyped string constants because the
// underlying store round-trips through gob.
const (
	keyUser          = "user"
	keyToken         = "token"
	keyLanguage      = "lang"
	keyFlashMessage  = "flash_message"
	keyFlashSeverity = "flash_severity"
)

// Middleware returns the session middleware backed by an in-memory store.
// The secret authenticates session cookies; cookies are HTTP-only and
// expire with the browser session.
func Middleware(name, secret string) gin.HandlerFunc {
	store := memstore.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return sessions.Sessions(name, store)
}

// Current returns the request-scoped session. The session middleware must
// be applied to the route for this to work.
func Current(c *gin.Context) ports.Session {
	return &webSession{s: sessions.Default(c)}
}

// webSession implements ports.Session over a gin-contrib session.
type webSession struct {
	s sessions.Session
}

var _ ports.Session = (*webSession)(nil)

func (w *webSession) User() string {
	return w.getString(keyUser)
}

func (w *webSession) SetUser(username string) {
	w.s.Set(keyUser, username)
}

func (w *webSession) ClearUser() {
	w.s.Delete(keyUser)
}

func (w *webSession) Token() string {
	return w.getString(keyToken)
}

func (w *webSession) SetToken(token string) {
	w.s.Set(keyToken, token)
}

func (w *webSession) ClearToken() {
	w.s.Delete(keyToken)
}

func (w *webSession) Language() string {
	return w.getString(keyLanguage)
}

func (w *webSession) SetLanguage(lang string) {
	w.s.Set(keyLanguage, lang)
}

// SetFlash stores a one-shot status message. A later SetFlash before the
// message is consumed overwrites it.
func (w *webSession) SetFlash(flash domain.Flash) {
	w.s.Set(keyFlashMessage, flash.Message)
	w.s.Set(keyFlashSeverity, string(flash.Severity))
}

// PopFlash returns the pending flash message and removes it from the
// session. The removal only persists once Save is called.
func (w *webSession) PopFlash() (domain.Flash, bool) {
	message := w.getString(keyFlashMessage)
	if message == "" {
		return domain.Flash{}, false
	}

	severity := domain.Severity(w.getString(keyFlashSeverity))

	w.s.Delete(keyFlashMessage)
	w.s.Delete(keyFlashSeverity)

	return domain.NewFlash(message, severity), true
}

func (w *webSession) Save() error {
	return w.s.Save()
}

func (w *webSession) getString(key string) string {
	if v, ok := w.s.Get(key).(string); ok {
		return v
	}

	return ""
}
