package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/rogerio-castellano/acme-storefront/internal/catalog"
	"github.com/rogerio-castellano/acme-storefront/internal/models"
	repo "github.com/rogerio-castellano/acme-storefront/internal/repo"
)

// GetProductsHandler godoc
// @Summary List products
// @Description Filters the catalog by category and search text, then sorts it
// @Tags products
// @Produce json
// @Param category query string false "Category slug, or all"
// @Param q query string false "Search text matched against name and category"
// @Param sort query string false "relevance, trending, latest, price-asc or price-desc"
// @Param offset query int false "Offset"
// @Param limit query int false "Limit"
// @Success 200 {object} ProductsSearchResult
// @Failure 400 {string} string "Invalid pagination"
// @Failure 500 {string} string "Internal error"
// @Router /api/products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pf := repo.ProductFilter{
		Category: catalog.NormalizeCategory(q.Get("category")),
		Search:   q.Get("q"),
		Sort:     catalog.ParseSortKey(q.Get("sort")),
	}

	for name, dst := range map[string]**int{"offset": &pf.Offset, "limit": &pf.Limit} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			http.Error(w, "invalid "+name, http.StatusBadRequest)
			return
		}
		*dst = &v
	}

	products, total, err := productRepo.Filter(pf)
	if err != nil {
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, ProductsSearchResult{
		Data: toProductResponses(products),
		Meta: Meta{TotalCount: total},
	})
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /api/products/{id} [get]
func GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := intURLParam(r, "id")
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	product, err := productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(product))
}

// GetCategoriesHandler godoc
// @Summary List shop categories
// @Tags products
// @Produce json
// @Success 200 {array} catalog.Option
// @Router /api/categories [get]
func GetCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.Categories())
}

// GetSortOptionsHandler godoc
// @Summary List sort options
// @Tags products
// @Produce json
// @Success 200 {array} catalog.Option
// @Router /api/sort-options [get]
func GetSortOptionsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.SortOptions())
}

// GetHomeHandler godoc
// @Summary Home page products
// @Description Featured grid and carousel products, in display order
// @Tags products
// @Produce json
// @Success 200 {object} HomeResponse
// @Failure 500 {string} string "Internal error"
// @Router /api/home [get]
func GetHomeHandler(w http.ResponseWriter, r *http.Request) {
	featured, carouselProducts, err := homeProducts()
	if err != nil {
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, HomeResponse{
		Featured: toProductResponses(featured),
		Carousel: toProductResponses(carouselProducts),
	})
}

func homeProducts() (featured, carouselProducts []models.Product, err error) {
	featured, err = productRepo.GetByIDs(featuredIDs)
	if err != nil {
		log.Error().Err(err).Ints("ids", featuredIDs).Msg("featured products")
		return nil, nil, err
	}
	carouselProducts, err = productRepo.GetByIDs(carouselIDs)
	if err != nil {
		log.Error().Err(err).Ints("ids", carouselIDs).Msg("carousel products")
		return nil, nil, err
	}
	return featured, carouselProducts, nil
}

// HealthHandler godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}
