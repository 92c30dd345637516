package catalog

// AllCategories is the category sentinel that disables category filtering.
const AllCategories = "all"

// SortKey selects the ordering applied by FilterAndSort.
type SortKey string

const (
	SortRelevance SortKey = "relevance"
	SortTrending  SortKey = "trending"
	SortLatest    SortKey = "latest"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
)

// Option is a labelled value shown in the shop sidebar and sort menu.
type Option struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

var categories = []Option{
	{Name: "All", Value: AllCategories},
	{Name: "Bags", Value: "bags"},
	{Name: "Drinkware", Value: "drinkware"},
	{Name: "Electronics", Value: "electronics"},
	{Name: "Footwear", Value: "footwear"},
	{Name: "Headwear", Value: "headwear"},
	{Name: "Hoodies", Value: "hoodies"},
	{Name: "Jackets", Value: "jackets"},
	{Name: "Kids", Value: "kids"},
	{Name: "Pets", Value: "pets"},
	{Name: "Shirts", Value: "shirts"},
	{Name: "Stickers", Value: "stickers"},
}

var sortOptions = []Option{
	{Name: "Relevance", Value: string(SortRelevance)},
	{Name: "Trending", Value: string(SortTrending)},
	{Name: "Latest arrivals", Value: string(SortLatest)},
	{Name: "Price: Low to high", Value: string(SortPriceAsc)},
	{Name: "Price: High to low", Value: string(SortPriceDesc)},
}

// Categories returns the shop's category list, starting with "All".
func Categories() []Option {
	out := make([]Option, len(categories))
	copy(out, categories)
	return out
}

// SortOptions returns the available sort keys with their labels.
func SortOptions() []Option {
	out := make([]Option, len(sortOptions))
	copy(out, sortOptions)
	return out
}

// ParseSortKey maps query input to a SortKey. Unknown or empty input is relevance.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(s); k {
	case SortTrending, SortLatest, SortPriceAsc, SortPriceDesc:
		return k
	default:
		return SortRelevance
	}
}

// NormalizeCategory maps empty input to AllCategories.
func NormalizeCategory(s string) string {
	if s == "" {
		return AllCategories
	}
	return s
}
