package session

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Session binds a Store to one browser session. It is the only way handlers touch the token.
type Session struct {
	store    Store
	id       string
	lifetime time.Duration
	now      func() time.Time
	onRotate func(sid string)
}

// ID returns the session identifier carried by the browser cookie.
func (s *Session) ID() string {
	return s.id
}

// Save overwrites the session's token.
func (s *Session) Save(ctx context.Context, token string) error {
	return s.store.Save(ctx, s.id, token, tokenTTL(token, s.lifetime, s.now()))
}

// Load returns the persisted token or ErrNoToken.
func (s *Session) Load(ctx context.Context) (string, error) {
	return s.store.Load(ctx, s.id)
}

// Clear removes the token.
func (s *Session) Clear(ctx context.Context) error {
	return s.store.Clear(ctx, s.id)
}

// Rotate drops whatever the current id holds and moves the session to a fresh id.
// The old id is never valid again. A session bound to a request also reissues its cookie.
func (s *Session) Rotate(ctx context.Context) error {
	if err := s.store.Clear(ctx, s.id); err != nil {
		return err
	}
	s.id = uuid.NewString()
	if s.onRotate != nil {
		s.onRotate(s.id)
	}
	return nil
}

// tokenTTL keeps a stored token no longer than its own JWT expiry, if it has one.
// Opaque tokens get the configured lifetime.
func tokenTTL(token string, lifetime time.Duration, now time.Time) time.Duration {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil || claims.ExpiresAt == nil {
		return lifetime
	}
	ttl := claims.ExpiresAt.Sub(now)
	if ttl <= 0 {
		return time.Second
	}
	if lifetime > 0 && ttl > lifetime {
		return lifetime
	}
	return ttl
}

const localsKey = "portal_session"

// ManagerConfig configures the session cookie.
type ManagerConfig struct {
	CookieName string
	Secure     bool
	Lifetime   time.Duration
}

// Manager hands out Sessions keyed by an HttpOnly cookie.
type Manager struct {
	store Store
	cfg   ManagerConfig
	now   func() time.Time
}

// NewManager builds a Manager on top of store.
func NewManager(store Store, cfg ManagerConfig) *Manager {
	if cfg.CookieName == "" {
		cfg.CookieName = "clinic_sid"
	}
	if cfg.Lifetime <= 0 {
		cfg.Lifetime = 24 * time.Hour
	}
	return &Manager{store: store, cfg: cfg, now: time.Now}
}

// Store exposes the backing store for readiness checks.
func (m *Manager) Store() Store {
	return m.store
}

// For returns the Session of the request, issuing a new session cookie when none is present.
// Repeated calls within one request return the same Session.
func (m *Manager) For(c *fiber.Ctx) *Session {
	if sess, ok := c.Locals(localsKey).(*Session); ok {
		return sess
	}
	sid := c.Cookies(m.cfg.CookieName)
	if _, err := uuid.Parse(sid); err != nil {
		sid = uuid.NewString()
		m.setCookie(c, sid)
	}
	sess := m.Open(sid)
	sess.onRotate = func(newID string) { m.setCookie(c, newID) }
	c.Locals(localsKey, sess)
	return sess
}

// Rotate moves the request's session to a fresh id and cookie. Call it before a token is granted.
func (m *Manager) Rotate(c *fiber.Ctx) (*Session, error) {
	sess := m.For(c)
	if err := sess.Rotate(c.UserContext()); err != nil {
		return nil, err
	}
	return sess, nil
}

func (m *Manager) setCookie(c *fiber.Ctx, sid string) {
	c.Cookie(&fiber.Cookie{
		Name:     m.cfg.CookieName,
		Value:    sid,
		Path:     "/",
		Expires:  m.now().Add(m.cfg.Lifetime),
		Secure:   m.cfg.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Open returns the Session for a known id.
func (m *Manager) Open(sid string) *Session {
	return &Session{store: m.store, id: sid, lifetime: m.cfg.Lifetime, now: m.now}
}
