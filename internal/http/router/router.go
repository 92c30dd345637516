package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/rogerio-castellano/acme-storefront/docs"
	"github.com/rogerio-castellano/acme-storefront/internal/http/handlers"
	mw "github.com/rogerio-castellano/acme-storefront/internal/http/middleware"
	rl "github.com/rogerio-castellano/acme-storefront/internal/http/rate_limiter"
)

var limiter *rl.Limiter

// SetRateLimiter enables per-IP rate limiting on every route but /health.
func SetRateLimiter(l *rl.Limiter) {
	limiter = l
}

func NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(mw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.RequestLogger)
	r.Use(mw.Recover)

	r.Get("/health", handlers.HealthHandler)
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Group(func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter.Middleware)
		}

		// Catalog reads need no session.
		r.Get("/api/products", handlers.GetProductsHandler)
		r.Get("/api/products/{id}", handlers.GetProductByIDHandler)
		r.Get("/api/categories", handlers.GetCategoriesHandler)
		r.Get("/api/sort-options", handlers.GetSortOptionsHandler)
		r.Get("/api/home", handlers.GetHomeHandler)

		r.Group(func(r chi.Router) {
			r.Use(handlers.SessionMiddleware)

			r.Get("/", handlers.HomePageHandler)
			r.Get("/shop", handlers.ShopPageHandler)

			r.Post("/select", handlers.SelectProductFormHandler)
			r.Post("/select/size", handlers.ChooseSizeFormHandler)
			r.Post("/select/color", handlers.ChooseColorFormHandler)
			r.Post("/select/clear", handlers.ClearSelectionFormHandler)
			r.Post("/cart/add", handlers.AddToCartFormHandler)
			r.Post("/cart/update", handlers.UpdateCartFormHandler)
			r.Post("/cart/remove", handlers.RemoveCartFormHandler)
			r.Post("/carousel/{index}", handlers.SetCarouselFormHandler)

			r.Get("/api/cart", handlers.GetCartHandler)
			r.Post("/api/cart/items", handlers.AddCartItemHandler)
			r.Patch("/api/cart/items/{index}", handlers.UpdateCartItemHandler)
			r.Delete("/api/cart/items/{index}", handlers.RemoveCartItemHandler)

			r.Get("/api/selection", handlers.GetSelectionHandler)
			r.Put("/api/selection", handlers.SelectProductHandler)
			r.Delete("/api/selection", handlers.ClearSelectionHandler)
			r.Put("/api/selection/size", handlers.ChooseSizeHandler)
			r.Put("/api/selection/color", handlers.ChooseColorHandler)

			r.Get("/api/carousel", handlers.GetCarouselHandler)
			r.Put("/api/carousel", handlers.SetCarouselHandler)
			r.Post("/api/carousel/advance", handlers.AdvanceCarouselHandler)
			r.Get("/api/carousel/stream", handlers.StreamCarouselHandler)
		})
	})

	return r
}
