// Package session scopes storefront state (cart, product selection, carousel
// cursor) to one visitor. Sessions live in a Store and expire after a TTL.
package session

import (
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/rogerio-castellano/acme-storefront/internal/carousel"
	"github.com/rogerio-castellano/acme-storefront/internal/cart"
	"github.com/rogerio-castellano/acme-storefront/internal/models"
)

var (
	// ErrNoSelection is returned when an option is chosen without a selected product.
	ErrNoSelection = errors.New("no product selected")
	// ErrInvalidOption is returned for a size or color the product does not offer.
	ErrInvalidOption = errors.New("option not offered by product")
)

// Selection is the product currently open in the product dialog and the
// options picked for it so far.
type Selection struct {
	ProductID *int   `json:"product_id,omitempty"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
}

// Ready reports whether both a size and a color have been chosen.
func (s Selection) Ready() bool {
	return s.ProductID != nil && s.Size != "" && s.Color != ""
}

// Is reports whether productID is the selected product.
func (s Selection) Is(productID int) bool {
	return s.ProductID != nil && *s.ProductID == productID
}

type Session struct {
	ID            string    `json:"id"`
	Cart          cart.Cart `json:"cart"`
	Selection     Selection `json:"selection"`
	CarouselIndex int       `json:"carousel_index"`
	CarouselWidth int       `json:"carousel_width,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// New creates an empty session with a random ID.
func New(now time.Time) *Session {
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SelectProduct opens p in the product dialog. Any previous size and color are cleared.
func (s *Session) SelectProduct(p models.Product) {
	id := p.ID
	s.Selection = Selection{ProductID: &id}
}

// ClearSelection closes the product dialog.
func (s *Session) ClearSelection() {
	s.Selection = Selection{}
}

// ChooseSize records size for the selected product p.
func (s *Session) ChooseSize(p models.Product, size string) error {
	if !s.Selection.Is(p.ID) {
		return ErrNoSelection
	}
	if !p.HasSize(size) {
		return ErrInvalidOption
	}
	s.Selection.Size = size
	return nil
}

// ChooseColor records color for the selected product p.
func (s *Session) ChooseColor(p models.Product, color string) error {
	if !s.Selection.Is(p.ID) {
		return ErrNoSelection
	}
	if !p.HasColor(color) {
		return ErrInvalidOption
	}
	s.Selection.Color = color
	return nil
}

// AddSelectionToCart adds the selected product p with the chosen options and
// closes the dialog. It does nothing and returns false until both options are chosen.
func (s *Session) AddSelectionToCart(p models.Product) bool {
	if !s.Selection.Is(p.ID) || !s.Selection.Ready() {
		return false
	}
	if !s.Cart.Add(p, s.Selection.Size, s.Selection.Color) {
		return false
	}
	s.ClearSelection()
	return true
}

// Carousel rebuilds the carousel cursor over total items for a viewport width.
// A cursor saved at another width is pulled back into range.
func (s *Session) Carousel(total, viewportWidth int) *carousel.Controller {
	c := carousel.NewController(total, s.CarouselWidth, s.CarouselIndex)
	if viewportWidth != s.CarouselWidth {
		c.Resize(viewportWidth)
	}
	return c
}

// SaveCarousel records the cursor and the width it was computed for.
func (s *Session) SaveCarousel(c *carousel.Controller, viewportWidth int) {
	s.CarouselIndex = c.Index()
	s.CarouselWidth = viewportWidth
}

// Clone returns a deep copy, so stores never share memory with callers.
func (s *Session) Clone() *Session {
	c := *s
	c.Cart.Items = slices.Clone(s.Cart.Items)
	if s.Selection.ProductID != nil {
		id := *s.Selection.ProductID
		c.Selection.ProductID = &id
	}
	return &c
}
