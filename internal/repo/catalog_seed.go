package repo

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/acme-storefront/internal/models"
)

var (
	// FeaturedProductIDs are shown in the home page grid.
	FeaturedProductIDs = []int{2, 3, 4}

	// CarouselProductIDs are cycled by the home page carousel, in display order.
	CarouselProductIDs = []int{1, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
)

var (
	oneSize    = []string{"One Size"}
	adultSizes = []string{"XS", "S", "M", "L", "XL"}
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// SeedCatalog returns a fresh copy of the storefront catalog.
func SeedCatalog() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Acme Slip-On Shoes", Price: decimal.NewFromInt(45), Image: "/shoes-1.avif", Category: "footwear", Trending: true, DateAdded: day(2024, time.January, 15), Sizes: []string{"7", "8", "9", "10", "11"}, Colors: []string{"Black", "White", "Brown"}},
		{ID: 2, Name: "Acme Circles T-Shirt", Price: decimal.NewFromInt(20), Image: "/tshirt-1.avif", Category: "shirts", DateAdded: day(2024, time.February, 10), Sizes: clone(adultSizes), Colors: []string{"Black", "White", "Navy", "Gray"}},
		{ID: 3, Name: "Acme Drawstring Bag", Price: decimal.NewFromInt(12), Image: "/bag-1-dark.avif", Category: "bags", Trending: true, DateAdded: day(2024, time.March, 5), Sizes: clone(oneSize), Colors: []string{"Black", "Navy", "Gray"}},
		{ID: 4, Name: "Acme Cup", Price: decimal.NewFromInt(15), Image: "/cup-black.avif", Category: "drinkware", DateAdded: day(2024, time.January, 20), Sizes: clone(oneSize), Colors: []string{"Black", "White", "Blue"}},
		{ID: 5, Name: "Acme Hoodie", Price: decimal.NewFromInt(55), Image: "/hoodie-1.avif", Category: "hoodies", Trending: true, DateAdded: day(2024, time.March, 12), Sizes: []string{"XS", "S", "M", "L", "XL", "XXL"}, Colors: []string{"Black", "Gray", "Navy", "Red"}},
		{ID: 6, Name: "Acme Hat", Price: decimal.NewFromInt(25), Image: "/hat-1.avif", Category: "headwear", DateAdded: day(2024, time.February, 25), Sizes: clone(oneSize), Colors: []string{"Black", "White", "Navy", "Khaki"}},
		{ID: 7, Name: "Acme Mug", Price: decimal.NewFromInt(18), Image: "/mug-1.avif", Category: "drinkware", DateAdded: day(2024, time.January, 8), Sizes: clone(oneSize), Colors: []string{"White", "Black", "Blue"}},
		{ID: 8, Name: "Acme Sticker", Price: decimal.NewFromInt(5), Image: "/sticker.avif", Category: "stickers", Trending: true, DateAdded: day(2024, time.March, 18), Sizes: clone(oneSize), Colors: []string{"Multi"}},
		{ID: 9, Name: "Acme Keyboard", Price: decimal.NewFromInt(120), Image: "/keyboard.avif", Category: "electronics", DateAdded: day(2024, time.February, 15), Sizes: clone(oneSize), Colors: []string{"Black", "White"}},
		{ID: 10, Name: "Baby Cap", Price: decimal.NewFromInt(15), Image: "/baby-cap-black.avif", Category: "kids", DateAdded: day(2024, time.January, 30), Sizes: []string{"6-12M", "12-18M", "18-24M"}, Colors: []string{"Black", "Pink", "Blue"}},
		{ID: 11, Name: "Dog Sweater", Price: decimal.NewFromInt(35), Image: "/dog-sweater-1.avif", Category: "pets", Trending: true, DateAdded: day(2024, time.March, 20), Sizes: []string{"XS", "S", "M", "L"}, Colors: []string{"Red", "Blue", "Black"}},
		{ID: 12, Name: "Pacifier", Price: decimal.NewFromInt(8), Image: "/pacifier-1.avif", Category: "kids", DateAdded: day(2024, time.February, 5), Sizes: []string{"0-6M", "6-18M"}, Colors: []string{"Pink", "Blue", "Green"}},
		{ID: 13, Name: "Spiral T-Shirt", Price: decimal.NewFromInt(22), Image: "/t-shirt-spiral-1.avif", Category: "shirts", DateAdded: day(2024, time.March, 25), Sizes: clone(adultSizes), Colors: []string{"Black", "White", "Gray"}},
		{ID: 14, Name: "Rainbow Sticker", Price: decimal.NewFromInt(6), Image: "/sticker-rainbow.avif", Category: "stickers", Trending: true, DateAdded: day(2024, time.March, 28), Sizes: clone(oneSize), Colors: []string{"Multi"}},
		{ID: 15, Name: "Cowboy Hat", Price: decimal.NewFromInt(40), Image: "/cowboy-hat-black-1.avif", Category: "headwear", DateAdded: day(2024, time.January, 12), Sizes: []string{"S", "M", "L", "XL"}, Colors: []string{"Black", "Brown", "Tan"}},
	}
}

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
