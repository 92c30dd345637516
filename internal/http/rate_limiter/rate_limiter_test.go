package rate_limiter

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMiddleware_LimitsPerIP(t *testing.T) {
	l := New(1, 2)
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	do := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1:1000"))
	assert.Equal(t, http.StatusOK, do("10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1:1002"))
	assert.Equal(t, http.StatusOK, do("10.0.0.2:1000"), "other clients keep their own bucket")
}

func TestForget(t *testing.T) {
	l := New(1, 1)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.GetVisitor("a")
	now = now.Add(4 * time.Minute)
	l.GetVisitor("b")
	now = now.Add(2 * time.Minute)

	assert.Equal(t, 1, l.Forget(5*time.Minute))
	l.CleanupAllVisitors()
	assert.Equal(t, 0, l.Forget(0))
}
