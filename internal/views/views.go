// Package views holds the storefront HTML templates.
package views

import (
	"embed"
	"html/template"

	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/acme-storefront/internal/models"
)

//go:embed *.html
var FS embed.FS

// Card is the data passed to the product_card partial.
type Card struct {
	Product models.Product
	Return  string
}

// Funcs are the helpers available to every template.
var Funcs = template.FuncMap{
	"add":   func(a, b int) int { return a + b },
	"money": func(d decimal.Decimal) string { return "$" + d.StringFixed(2) },
	"card":  func(p models.Product, ret string) Card { return Card{Product: p, Return: ret} },
}

// Parse loads the embedded page and partial templates.
func Parse() (*template.Template, error) {
	return template.New("storefront").Funcs(Funcs).ParseFS(FS, "*.html")
}
