package handlers_test_suite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/rogerio-castellano/acme-storefront/internal/auth"
	handler "github.com/rogerio-castellano/acme-storefront/internal/http/handlers"
	"github.com/rogerio-castellano/acme-storefront/internal/repo"
	"github.com/rogerio-castellano/acme-storefront/internal/session"
	"github.com/rogerio-castellano/acme-storefront/internal/views"
)

var (
	productRepo  *repo.InMemoryProductRepository
	sessionStore *session.MemoryStore
)

func init() {
	setupTestDeps()
}

func setupTestDeps() {
	productRepo = repo.NewSeededProductRepository()
	handler.SetProductRepo(productRepo)

	sessionStore = session.NewMemoryStore(time.Hour)
	tokens := auth.NewSessionTokens("test-secret", time.Hour)
	handler.SetSessionManager(session.NewManager(sessionStore, tokens, session.Options{TTL: time.Hour}))

	tmpl, err := views.Parse()
	if err != nil {
		panic(fmt.Sprintf("error parsing templates: %v", err))
	}
	handler.SetTemplates(tmpl)
	handler.SetCarouselInterval(10 * time.Millisecond)
}

// visitor is a browser stand-in that keeps its session cookie between requests.
type visitor struct {
	r      http.Handler
	cookie *http.Cookie
}

func newVisitor(r http.Handler) *visitor {
	return &visitor{r: r}
}

func (v *visitor) serve(req *http.Request) *httptest.ResponseRecorder {
	if v.cookie != nil {
		req.AddCookie(v.cookie)
	}
	w := httptest.NewRecorder()
	v.r.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			v.cookie = c
		}
	}
	return w
}

func (v *visitor) do(method, path string, body any) *httptest.ResponseRecorder {
	return v.doCtx(context.Background(), method, path, body)
}

func (v *visitor) doCtx(ctx context.Context, method, path string, body any) *httptest.ResponseRecorder {
	var req *http.Request
	switch b := body.(type) {
	case nil:
		req = httptest.NewRequest(method, path, nil)
	case string:
		req = httptest.NewRequest(method, path, strings.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	default:
		raw, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	}
	return v.serve(req.WithContext(ctx))
}

func (v *visitor) form(path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return v.serve(req)
}

func (v *visitor) cart() (handler.CartResponse, error) {
	w := v.do(http.MethodGet, "/api/cart", nil)
	var resp handler.CartResponse
	if w.Code != http.StatusOK {
		return resp, fmt.Errorf("GET /api/cart returned %d", w.Code)
	}
	err := json.NewDecoder(w.Body).Decode(&resp)
	return resp, err
}

func (v *visitor) addToCart(productID int, size, color string) *httptest.ResponseRecorder {
	return v.do(http.MethodPost, "/api/cart/items", handler.AddToCartRequest{ProductID: &productID, Size: size, Color: color})
}

func productNames(ps []handler.ProductResponse) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func hasFieldError(errs []handler.ValidationError, field string) bool {
	for _, e := range errs {
		if strings.EqualFold(e.Field, field) {
			return true
		}
	}
	return false
}
