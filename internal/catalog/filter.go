package catalog

import (
	"slices"
	"strings"

	"github.com/rogerio-castellano/acme-storefront/internal/models"
)

// FilterAndSort derives the displayed product list from the catalog.
// It is a pure function: products is never modified and the result is a new slice.
//
// Filtering keeps products of the given category (everything for AllCategories),
// then, when search is not blank, products whose name or category contains it
// case-insensitively. Sorting is stable so equal keys keep catalog order.
func FilterAndSort(products []models.Product, category, search string, sort SortKey) []models.Product {
	category = NormalizeCategory(category)
	searching := strings.TrimSpace(search) != ""
	needle := strings.ToLower(search)

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if category != AllCategories && p.Category != category {
			continue
		}
		if searching && !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Category), needle) {
			continue
		}
		out = append(out, p)
	}

	slices.SortStableFunc(out, comparator(sort, searching, needle))
	return out
}

func comparator(sort SortKey, searching bool, needle string) func(a, b models.Product) int {
	switch sort {
	case SortTrending:
		return func(a, b models.Product) int {
			if a.Trending != b.Trending {
				if a.Trending {
					return -1
				}
				return 1
			}
			return compareNames(a, b)
		}
	case SortLatest:
		return func(a, b models.Product) int {
			return b.DateAdded.Compare(a.DateAdded)
		}
	case SortPriceAsc:
		return func(a, b models.Product) int {
			return a.Price.Cmp(b.Price)
		}
	case SortPriceDesc:
		return func(a, b models.Product) int {
			return b.Price.Cmp(a.Price)
		}
	default:
		return func(a, b models.Product) int {
			// only the name counts for the match bucket, category matches rank after it
			if searching {
				am := strings.Contains(strings.ToLower(a.Name), needle)
				bm := strings.Contains(strings.ToLower(b.Name), needle)
				if am != bm {
					if am {
						return -1
					}
					return 1
				}
			}
			return compareNames(a, b)
		}
	}
}

func compareNames(a, b models.Product) int {
	return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
}
