package handlers

import (
	"html/template"
	"net/http"
	"time"

	"github.com/rogerio-castellano/acme-storefront/internal/carousel"
	repo "github.com/rogerio-castellano/acme-storefront/internal/repo"
	"github.com/rogerio-castellano/acme-storefront/internal/session"
)

var (
	productRepo repo.ProductRepository
	sessions    *session.Manager
	pages       *template.Template

	carouselInterval = carousel.DefaultInterval
	featuredIDs      = repo.FeaturedProductIDs
	carouselIDs      = repo.CarouselProductIDs
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetSessionManager(m *session.Manager) {
	sessions = m
}

func SetTemplates(t *template.Template) {
	pages = t
}

func SetCarouselInterval(d time.Duration) {
	if d <= 0 {
		d = carousel.DefaultInterval
	}
	carouselInterval = d
}

// SessionMiddleware resolves the visitor's session before any handler runs.
func SessionMiddleware(next http.Handler) http.Handler {
	return sessions.Middleware(next)
}
