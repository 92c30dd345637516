package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/acme-storefront/internal/auth"
)

func newTestManager() (*Manager, *MemoryStore) {
	st := NewMemoryStore(time.Hour)
	return NewManager(st, auth.NewSessionTokens("test-secret", time.Hour), Options{TTL: time.Hour}), st
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie set", CookieName)
	return nil
}

func TestResolve_CreatesAndReuses(t *testing.T) {
	m, st := newTestManager()

	w := httptest.NewRecorder()
	first, err := m.Resolve(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	c := sessionCookie(t, w)
	assert.True(t, c.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	w = httptest.NewRecorder()
	second, err := m.Resolve(w, req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, st.Len())
	sessionCookie(t, w)
}

func TestResolve_ForgedCookieStartsFresh(t *testing.T) {
	m, _ := newTestManager()
	other := auth.NewSessionTokens("other-secret", time.Hour)
	forged, err := other.Generate("victim")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: forged})
	s, err := m.Resolve(httptest.NewRecorder(), req)
	require.NoError(t, err)
	assert.NotEqual(t, "victim", s.ID)
}

func TestUpdate_ErrorDiscardsChanges(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()
	s, err := m.Resolve(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = m.Update(ctx, s.ID, func(s *Session) error {
		s.CarouselIndex = 5
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := m.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.CarouselIndex)
}

func TestUpdate_SerialisesPerSession(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()
	s, err := m.Resolve(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Update(ctx, s.ID, func(s *Session) error {
				s.CarouselIndex++
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := m.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, got.CarouselIndex)
}

func TestUpdate_UnknownSession(t *testing.T) {
	m, _ := newTestManager()
	_, err := m.Update(context.Background(), "missing", func(*Session) error { return nil })
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMiddleware_PutsIDInContext(t *testing.T) {
	m, _ := newTestManager()
	var seen string
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = IDFromContext(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, seen)
	sessionCookie(t, w)
}
