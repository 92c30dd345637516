package catalog_test

import (
	"slices"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/acme-storefront/internal/catalog"
	"github.com/rogerio-castellano/acme-storefront/internal/models"
	"github.com/rogerio-castellano/acme-storefront/internal/repo"
)

func names(ps []models.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func ids(ps []models.Product) []int {
	out := make([]int, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestFilterAndSort_StickersRelevance(t *testing.T) {
	got := catalog.FilterAndSort(repo.SeedCatalog(), "stickers", "", catalog.SortRelevance)

	assert.Equal(t, []string{"Acme Sticker", "Rainbow Sticker"}, names(got))
}

func TestFilterAndSort_CategoryOnlyKeepsThatCategory(t *testing.T) {
	products := repo.SeedCatalog()

	seen := map[int]bool{}
	for _, c := range catalog.Categories() {
		got := catalog.FilterAndSort(products, c.Value, "", catalog.SortRelevance)
		for _, p := range got {
			if c.Value != catalog.AllCategories {
				assert.Equal(t, c.Value, p.Category, "product %q leaked into %q", p.Name, c.Value)
			}
			seen[p.ID] = true
		}
	}

	assert.Len(t, seen, len(products))
}

func TestFilterAndSort_UnionOfCategoriesIsCatalog(t *testing.T) {
	products := repo.SeedCatalog()

	total := 0
	for _, c := range catalog.Categories() {
		if c.Value == catalog.AllCategories {
			continue
		}
		total += len(catalog.FilterAndSort(products, c.Value, "", catalog.SortRelevance))
	}

	assert.Equal(t, len(products), total)
	assert.Len(t, catalog.FilterAndSort(products, catalog.AllCategories, "", catalog.SortRelevance), len(products))
}

func TestFilterAndSort_EmptyCategoryMeansAll(t *testing.T) {
	products := repo.SeedCatalog()
	assert.Len(t, catalog.FilterAndSort(products, "", "", catalog.SortRelevance), len(products))
}

func TestFilterAndSort_EmptyCategoryHasNoResults(t *testing.T) {
	got := catalog.FilterAndSort(repo.SeedCatalog(), "jackets", "", catalog.SortRelevance)
	assert.Empty(t, got)
}

func TestFilterAndSort_SearchMatchesNameOrCategory(t *testing.T) {
	products := repo.SeedCatalog()

	got := catalog.FilterAndSort(products, catalog.AllCategories, "HAT", catalog.SortRelevance)
	assert.Equal(t, []string{"Acme Hat", "Cowboy Hat"}, names(got))

	got = catalog.FilterAndSort(products, catalog.AllCategories, "drink", catalog.SortRelevance)
	assert.Equal(t, []string{"Acme Cup", "Acme Mug"}, names(got))
}

func TestFilterAndSort_BlankSearchIsIgnored(t *testing.T) {
	products := repo.SeedCatalog()
	got := catalog.FilterAndSort(products, catalog.AllCategories, "   ", catalog.SortRelevance)
	assert.Len(t, got, len(products))
}

func TestFilterAndSort_RelevancePrefersNameMatches(t *testing.T) {
	// category-only matches rank after name matches
	products := []models.Product{
		{ID: 1, Name: "Zebra Tee", Category: "kids"},
		{ID: 2, Name: "Alpha Mug", Category: "kidsware"},
		{ID: 3, Name: "Kids Cap", Category: "headwear"},
	}

	got := catalog.FilterAndSort(products, catalog.AllCategories, "kids", catalog.SortRelevance)

	require.Len(t, got, 3)
	assert.Equal(t, []string{"Kids Cap", "Alpha Mug", "Zebra Tee"}, names(got))
}

func TestFilterAndSort_Trending(t *testing.T) {
	got := catalog.FilterAndSort(repo.SeedCatalog(), catalog.AllCategories, "", catalog.SortTrending)

	assert.Equal(t, []string{
		"Acme Drawstring Bag", "Acme Hoodie", "Acme Slip-On Shoes", "Acme Sticker", "Dog Sweater", "Rainbow Sticker",
		"Acme Circles T-Shirt", "Acme Cup", "Acme Hat", "Acme Keyboard", "Acme Mug", "Baby Cap", "Cowboy Hat", "Pacifier", "Spiral T-Shirt",
	}, names(got))
}

func TestFilterAndSort_Latest(t *testing.T) {
	got := catalog.FilterAndSort(repo.SeedCatalog(), catalog.AllCategories, "", catalog.SortLatest)

	require.NotEmpty(t, got)
	assert.Equal(t, "Rainbow Sticker", got[0].Name)
	assert.Equal(t, "Acme Mug", got[len(got)-1].Name)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].DateAdded.After(got[i-1].DateAdded), "%s is newer than %s", got[i].Name, got[i-1].Name)
	}
}

func TestFilterAndSort_PriceAscIsReverseOfPriceDesc(t *testing.T) {
	products := repo.SeedCatalog()

	for _, c := range []string{"headwear", "shirts", "stickers", "kids"} {
		asc := ids(catalog.FilterAndSort(products, c, "", catalog.SortPriceAsc))
		desc := ids(catalog.FilterAndSort(products, c, "", catalog.SortPriceDesc))

		slices.Reverse(desc)
		assert.Equal(t, asc, desc, "category %s", c)
	}
}

func TestFilterAndSort_StableOnTies(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	products := []models.Product{
		{ID: 1, Name: "b", Price: decimal.NewFromInt(10), DateAdded: day},
		{ID: 2, Name: "a", Price: decimal.NewFromInt(10), DateAdded: day},
		{ID: 3, Name: "c", Price: decimal.NewFromInt(5), DateAdded: day},
	}

	assert.Equal(t, []int{3, 1, 2}, ids(catalog.FilterAndSort(products, "", "", catalog.SortPriceAsc)))
	assert.Equal(t, []int{1, 2, 3}, ids(catalog.FilterAndSort(products, "", "", catalog.SortLatest)))
}

func TestFilterAndSort_DoesNotMutateInput(t *testing.T) {
	products := repo.SeedCatalog()
	before := ids(products)

	_ = catalog.FilterAndSort(products, catalog.AllCategories, "", catalog.SortPriceDesc)

	assert.Equal(t, before, ids(products))
}

func TestParseSortKey(t *testing.T) {
	tests := map[string]catalog.SortKey{
		"":           catalog.SortRelevance,
		"relevance":  catalog.SortRelevance,
		"trending":   catalog.SortTrending,
		"latest":     catalog.SortLatest,
		"price-asc":  catalog.SortPriceAsc,
		"price-desc": catalog.SortPriceDesc,
		"bogus":      catalog.SortRelevance,
	}
	for in, want := range tests {
		assert.Equal(t, want, catalog.ParseSortKey(in), "input %q", in)
	}
}
