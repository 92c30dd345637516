package session

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// CookieName is the cookie carrying the signed session token.
const CookieName = "sid"

const lockStripes = 64

// TokenCodec turns session IDs into cookie values and back.
type TokenCodec interface {
	Generate(sessionID string) (string, error)
	Parse(token string) (string, error)
}

// Manager resolves the visitor's session from the request cookie and
// serialises updates to the same session.
type Manager struct {
	store  Store
	tokens TokenCodec
	ttl    time.Duration
	secure bool
	now    func() time.Time

	locks [lockStripes]sync.Mutex
}

type Options struct {
	TTL          time.Duration
	SecureCookie bool
}

func NewManager(store Store, tokens TokenCodec, opts Options) *Manager {
	return &Manager{
		store:  store,
		tokens: tokens,
		ttl:    opts.TTL,
		secure: opts.SecureCookie,
		now:    time.Now,
	}
}

// Resolve returns the session named by the request cookie, or a new empty
// session when the cookie is missing, forged or names an expired session.
// The cookie is (re)issued either way so the expiry slides with activity.
func (m *Manager) Resolve(w http.ResponseWriter, r *http.Request) (*Session, error) {
	ctx := r.Context()

	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		if id, err := m.tokens.Parse(c.Value); err == nil {
			s, err := m.store.Get(ctx, id)
			switch {
			case err == nil:
				return s, m.writeCookie(w, s.ID)
			case !errors.Is(err, ErrSessionNotFound):
				return nil, fmt.Errorf("load session: %w", err)
			}
		}
	}

	s := New(m.now())
	if err := m.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	log.Debug().Str("session_id", s.ID).Msg("session created")
	return s, m.writeCookie(w, s.ID)
}

// Get loads a session without modifying it.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	return m.store.Get(ctx, id)
}

// Update loads the session, applies fn and saves the result. Concurrent updates
// to the same session run one at a time. If fn fails nothing is saved.
func (m *Manager) Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error) {
	mu := &m.locks[stripe(id)]
	mu.Lock()
	defer mu.Unlock()

	s, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(s); err != nil {
		return s, err
	}
	s.UpdatedAt = m.now()
	if err := m.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return s, nil
}

func (m *Manager) writeCookie(w http.ResponseWriter, id string) error {
	tok, err := m.tokens.Generate(id)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    tok,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func stripe(id string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(id))
	return h.Sum32() % lockStripes
}

type contextKey string

const sessionIDKey = contextKey("session_id")

// WithID stores the session ID in ctx.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

// IDFromContext returns the session ID placed by the session middleware.
func IDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(sessionIDKey).(string); ok {
		return v
	}
	return ""
}

// Middleware resolves the session for every request and stores its ID in the
// request context.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := m.Resolve(w, r)
		if err != nil {
			log.Error().Err(err).Msg("resolve session")
			http.Error(w, "session unavailable", http.StatusInternalServerError)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithID(r.Context(), s.ID)))
	})
}
