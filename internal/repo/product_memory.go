package repo

import (
	"github.com/rogerio-castellano/acme-storefront/internal/catalog"
	"github.com/rogerio-castellano/acme-storefront/internal/models"
)

// InMemoryProductRepository serves a fixed catalog held in memory.
// The slice is never mutated after construction, so concurrent reads are safe.
type InMemoryProductRepository struct {
	products []models.Product
	byID     map[int]int
}

// NewInMemoryProductRepository creates a repository over the given products.
// Products are copied; later changes to the argument are not observed.
func NewInMemoryProductRepository(products []models.Product) *InMemoryProductRepository {
	r := &InMemoryProductRepository{
		products: make([]models.Product, len(products)),
		byID:     make(map[int]int, len(products)),
	}
	copy(r.products, products)
	for i, p := range r.products {
		r.byID[p.ID] = i
	}
	return r
}

// NewSeededProductRepository creates a repository holding the storefront catalog.
func NewSeededProductRepository() *InMemoryProductRepository {
	return NewInMemoryProductRepository(SeedCatalog())
}

// GetAll retrieves all products in catalog order.
func (r *InMemoryProductRepository) GetAll() ([]models.Product, error) {
	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

// GetByID retrieves a product by its ID.
func (r *InMemoryProductRepository) GetByID(id int) (models.Product, error) {
	i, ok := r.byID[id]
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	return r.products[i], nil
}

// GetByIDs retrieves products in the order of ids. Unknown ids fail the whole call.
func (r *InMemoryProductRepository) GetByIDs(ids []int) ([]models.Product, error) {
	out := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		p, err := r.GetByID(id)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Filter applies category, search and sort, then paginates the result.
// The returned count is the number of matches before pagination.
func (r *InMemoryProductRepository) Filter(pf ProductFilter) ([]models.Product, int, error) {
	filtered := catalog.FilterAndSort(r.products, pf.Category, pf.Search, pf.Sort)

	// If offset is greater than the number of filtered products, return empty slice
	if pf.Offset != nil && *pf.Offset > len(filtered) {
		return []models.Product{}, len(filtered), nil
	}

	start := 0
	if pf.Offset != nil {
		start = clamp(*pf.Offset, 0, len(filtered))
	}

	end := len(filtered)
	if pf.Limit != nil && *pf.Limit > 0 {
		end = clamp(start+*pf.Limit, start, len(filtered))
	}

	return filtered[start:end], len(filtered), nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
