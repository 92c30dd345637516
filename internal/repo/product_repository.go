package repo

import (
	"errors"

	"github.com/rogerio-castellano/acme-storefront/internal/models"
)

// ProductRepository defines read access to the storefront catalog.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id int) (models.Product, error)
	GetByIDs(ids []int) ([]models.Product, error)
	Filter(pf ProductFilter) ([]models.Product, int, error)
}

// ErrProductNotFound is returned when a product is not found in the repository.
var ErrProductNotFound = errors.New("product not found")
