package models

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog entry in the storefront.
type Product struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Category  string          `json:"category"`
	Trending  bool            `json:"trending"`
	DateAdded time.Time       `json:"date_added"`
	Sizes     []string        `json:"sizes"`
	Colors    []string        `json:"colors"`
}

// HasSize reports whether size is one of the product's sizes.
func (p Product) HasSize(size string) bool {
	return slices.Contains(p.Sizes, size)
}

// HasColor reports whether color is one of the product's colors.
func (p Product) HasColor(color string) bool {
	return slices.Contains(p.Colors, color)
}
