package repo

import "github.com/rogerio-castellano/acme-storefront/internal/catalog"

type ProductFilter struct {
	Category string
	Search   string
	Sort     catalog.SortKey
	Offset   *int
	Limit    *int
}
