// Package cart implements the per-session shopping cart.
package cart

import (
	"errors"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/acme-storefront/internal/models"
)

// ErrInvalidIndex is returned when a line item index is out of range.
var ErrInvalidIndex = errors.New("invalid cart line index")

// Cart is an ordered list of line items. The zero value is an empty cart.
// A line's quantity is always positive; lines reaching zero are removed.
type Cart struct {
	Items []models.CartLineItem `json:"items"`
}

// Add puts one unit of product in the chosen size and color into the cart.
// An existing (product, size, color) line is incremented, otherwise a new line
// is appended. Without a size or a color nothing happens and Add returns false.
func (c *Cart) Add(p models.Product, size, color string) bool {
	if size == "" || color == "" {
		return false
	}

	if i := c.indexOf(p.ID, size, color); i >= 0 {
		c.Items[i].Quantity++
		return true
	}

	c.Items = append(c.Items, models.CartLineItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Size:      size,
		Color:     color,
		Quantity:  1,
	})
	return true
}

// UpdateQuantity sets the quantity of the line at index.
// A quantity of zero or less removes the line.
func (c *Cart) UpdateQuantity(index, quantity int) error {
	if !c.valid(index) {
		return ErrInvalidIndex
	}
	if quantity <= 0 {
		return c.Remove(index)
	}
	c.Items[index].Quantity = quantity
	return nil
}

// Remove deletes the line at index, keeping the order of the others.
func (c *Cart) Remove(index int) error {
	if !c.valid(index) {
		return ErrInvalidIndex
	}
	c.Items = slices.Delete(c.Items, index, index+1)
	return nil
}

// TotalItems is the sum of all line quantities.
func (c *Cart) TotalItems() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// TotalPrice is the sum of price times quantity over all lines.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

func (c *Cart) valid(index int) bool {
	return index >= 0 && index < len(c.Items)
}

func (c *Cart) indexOf(productID int, size, color string) int {
	for i, it := range c.Items {
		if it.ProductID == productID && it.Size == size && it.Color == color {
			return i
		}
	}
	return -1
}
