// Package app contains application services that orchestrate use cases.
package app

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// csrfTokenBytes is the CSRF token entropy; rendered as 64 hex characters.
const csrfTokenBytes = 32

// dummyPasswordHash is compared against when the username is unknown, so a
// login attempt costs one bcrypt verification either way.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService is the identity and session gate. It verifies interactive
// credentials against the configured user table, the API key against its own
// hash, and CSRF tokens against the session. All configuration is injected
// at construction; there is no ambient state.
type AuthService struct {
	users      map[string]string
	apiKeyHash string
	failDelay  time.Duration
	sleep      func(time.Duration)
	logger     *slog.Logger
}

// AuthServiceConfig contains the credential material and tuning for the gate.
type AuthServiceConfig struct {
	// Users maps usernames to bcrypt password hashes.
	Users map[string]string

	// APIKeyHash is the bcrypt hash of the single API key. Separate from
	// the user table.
	APIKeyHash string

	// FailedLoginDelay is the minimum time a failed login takes.
	FailedLoginDelay time.Duration

	// Sleep overrides the delay implementation. Tests inject a recorder;
	// nil means time.Sleep.
	Sleep func(time.Duration)

	Logger *slog.Logger
}

// NewAuthService validates the credential configuration and builds the gate.
// Unparseable hash material is a configuration error: the service must not
// start half-secured.
func NewAuthService(cfg AuthServiceConfig) (*AuthService, error) {
	if len(cfg.Users) == 0 {
		return nil, domain.NewConfigurationError("no users configured")
	}

	for username, hash := range cfg.Users {
		if !looksLikeBcrypt(hash) {
			return nil, domain.NewConfigurationError(
				fmt.Sprintf("password hash for user %q is not a bcrypt hash", username))
		}
	}

	if cfg.APIKeyHash != "" && !looksLikeBcrypt(cfg.APIKeyHash) {
		return nil, domain.NewConfigurationError("api key hash is not a bcrypt hash")
	}

	sleep := cfg.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthService{
		users:      cfg.Users,
		apiKeyHash: cfg.APIKeyHash,
		failDelay:  cfg.FailedLoginDelay,
		sleep:      sleep,
		logger:     logger,
	}, nil
}

// Login authenticates the session. It fails with a single generic error for
// an unknown user, a wrong password, or a bad CSRF token, and every failure
// observes at least the configured delay no matter which check tripped.
// On success the session is flagged for the username; the CSRF token is left
// in place for the rest of the session.
func (s *AuthService) Login(ctx context.Context, sess ports.Session, username, password, token string) error {
	start := time.Now()

	hash, known := s.users[username]
	if !known {
		hash = dummyPasswordHash
	}

	passwordOK := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	csrfOK := s.VerifyCSRF(sess, token)

	if !known || !passwordOK || !csrfOK {
		sess.ClearUser()
		s.delayUntilFloor(start)

		s.logger.WarnContext(ctx, "login failed", slog.String("username", username))

		return domain.ErrUnauthenticated
	}

	sess.SetUser(username)

	s.logger.InfoContext(ctx, "login succeeded", slog.String("username", username))

	return nil
}

// Logout clears the authentication flag and invalidates the CSRF token for
// the current session.
func (s *AuthService) Logout(ctx context.Context, sess ports.Session) {
	username := sess.User()

	sess.ClearUser()
	sess.ClearToken()

	if username != "" {
		s.logger.InfoContext(ctx, "logout", slog.String("username", username))
	}
}

// RequireAuth reports whether the session is authenticated. A session flag
// alone is not enough: the username must still exist in the credential
// table, so removing a credential retroactively ends its sessions.
func (s *AuthService) RequireAuth(sess ports.Session) bool {
	username := sess.User()
	if username == "" {
		return false
	}

	_, stillConfigured := s.users[username]

	return stillConfigured
}

// VerifyAPIKey checks a candidate against the configured API key hash.
// Mismatches are not rate limited.
func (s *AuthService) VerifyAPIKey(candidate string) bool {
	if s.apiKeyHash == "" || candidate == "" {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(s.apiKeyHash), []byte(candidate)) == nil
}

// VerifyCSRF compares a submitted token against the session's token in
// constant time. The token survives verification: it is reusable for the
// session's lifetime, not single-use.
func (s *AuthService) VerifyCSRF(sess ports.Session, token string) bool {
	stored := sess.Token()
	if stored == "" || token == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(stored), []byte(token)) == 1
}

// EnsureToken returns the session's CSRF token, generating a fresh random
// one when the session has none yet. Each new session gets its own token.
func (s *AuthService) EnsureToken(sess ports.Session) (string, error) {
	if token := sess.Token(); token != "" {
		return token, nil
	}

	buf := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating csrf token: %w", err)
	}

	token := hex.EncodeToString(buf)
	sess.SetToken(token)

	return token, nil
}

// delayUntilFloor sleeps whatever remains of the failure delay floor.
func (s *AuthService) delayUntilFloor(start time.Time) {
	if remaining := s.failDelay - time.Since(start); remaining > 0 {
		s.sleep(remaining)
	}
}

// looksLikeBcrypt recognizes the modular crypt prefixes bcrypt emits.
// PHP's password_hash produces $2y$; Go emits $2a$ and accepts both.
func looksLikeBcrypt(hash string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(hash, prefix) {
			return true
		}
	}

	return false
}
