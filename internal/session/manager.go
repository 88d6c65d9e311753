// Package session implements cookie sessions: an opaque id stored server
// side in Redis, handed to the client as a signed cookie.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Options configures the session cookie.
type Options struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Manager ties the store and the cookie codec to a gin request.
type Manager struct {
	store *Store
	codec *Codec
	opts  Options
}

// NewManager returns a Manager.
func NewManager(store *Store, codec *Codec, opts Options) *Manager {
	return &Manager{store: store, codec: codec, opts: opts}
}

// CookieName returns the name of the session cookie.
func (m *Manager) CookieName() string { return m.opts.CookieName }

// Start opens a session for userID and sets the cookie on the response.
func (m *Manager) Start(c *gin.Context, userID uint) error {
	id, err := m.store.Create(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	value, err := m.codec.Encode(id)
	if err != nil {
		return fmt.Errorf("session: sign cookie: %w", err)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.opts.CookieName, value, int(m.opts.TTL.Seconds()), "/", "", m.opts.Secure, true)
	return nil
}

// Current returns the session id and user id carried by the request.
// ErrNoSession means the client is not logged in; any other error is a store fault.
func (m *Manager) Current(c *gin.Context) (string, uint, error) {
	value, err := c.Cookie(m.opts.CookieName)
	if err != nil || value == "" {
		return "", 0, ErrNoSession
	}
	id, err := m.codec.Decode(value)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %w", ErrNoSession, err)
	}
	userID, err := m.store.Lookup(c.Request.Context(), id)
	if err != nil {
		return "", 0, err
	}
	return id, userID, nil
}

// End destroys the request's session, if any, and expires the cookie.
func (m *Manager) End(c *gin.Context) error {
	id, _, err := m.Current(c)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.opts.CookieName, "", -1, "/", "", m.opts.Secure, true)
	if errors.Is(err, ErrNoSession) {
		return nil
	}
	if err != nil {
		return err
	}
	return m.store.Destroy(c.Request.Context(), id)
}
