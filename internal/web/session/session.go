// Package session issues the admin session and reads it back.
package session

import (
	"crypto/sha256"
	"encoding/base64"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/pkg/errors"

	"github.com/folio-cms/folio/internal/config"
)

const (
	// CookieName is the name of the session cookie.
	CookieName = "folio_session"

	authenticatedKey = "authenticated"
)

// Data is what a session says about its holder.
type Data struct {
	Authenticated bool
}

// Config configures a Manager.
type Config struct {
	// Storage keeps session data, nil means in memory.
	Storage    fiber.Storage
	Expiration time.Duration
	// Secure marks the cookie https-only. Off in dev mode.
	Secure bool
}

// ConfigFor builds the manager settings from cfg. The cookie is https-only
// unless dev mode is on.
func ConfigFor(cfg *config.Config, storage fiber.Storage) Config {
	return Config{
		Storage:    storage,
		Expiration: cfg.Webserver.Session.ExpiryTime.Duration,
		Secure:     !cfg.DevMode,
	}
}

// Manager wraps the fiber session store.
type Manager struct {
	store *session.Store
}

// New creates a Manager.
func New(cfg Config) *Manager {
	return &Manager{
		store: session.New(session.Config{
			Storage:        cfg.Storage,
			Expiration:     cfg.Expiration,
			KeyLookup:      "cookie:" + CookieName,
			CookieSecure:   cfg.Secure,
			CookieHTTPOnly: true,
			CookieSameSite: fiber.CookieSameSiteLaxMode,
		}),
	}
}

// Read returns the session data of the request. A request without a session
// reads as not authenticated.
func (m *Manager) Read(c *fiber.Ctx) (Data, error) {
	sess, err := m.store.Get(c)
	if err != nil {
		return Data{}, errors.Wrap(err, "failed to load session")
	}

	ok, _ := sess.Get(authenticatedKey).(bool)

	return Data{Authenticated: ok}, nil
}

// Login marks the session authenticated under a fresh session id.
func (m *Manager) Login(c *fiber.Ctx) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return errors.Wrap(err, "failed to load session")
	}

	if err = sess.Regenerate(); err != nil {
		return errors.Wrap(err, "failed to regenerate session")
	}

	sess.Set(authenticatedKey, true)

	return errors.Wrap(sess.Save(), "failed to save session")
}

// Logout drops the session.
func (m *Manager) Logout(c *fiber.Ctx) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return errors.Wrap(err, "failed to load session")
	}

	return errors.Wrap(sess.Destroy(), "failed to destroy session")
}

// CookieKey derives the 32 byte base64 key encryptcookie wants from an
// arbitrary secret.
func CookieKey(secret string) string {
	sum := sha256.Sum256([]byte(secret))

	return base64.StdEncoding.EncodeToString(sum[:])
}
