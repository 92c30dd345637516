package models

import "github.com/shopspring/decimal"

// CartLineItem is one product/size/color combination in a cart.
// Name, Price and Image are copied from the product when the line is created.
type CartLineItem struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
	Quantity  int             `json:"quantity"`
}

// Subtotal is price times quantity.
func (l CartLineItem) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
