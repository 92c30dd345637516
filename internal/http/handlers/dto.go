package handlers

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rogerio-castellano/acme-storefront/internal/cart"
	"github.com/rogerio-castellano/acme-storefront/internal/models"
	"github.com/rogerio-castellano/acme-storefront/internal/session"
)

type ProductResponse struct {
	Id        int             `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price" swaggertype:"string"`
	Image     string          `json:"image"`
	Category  string          `json:"category"`
	Trending  bool            `json:"trending"`
	DateAdded string          `json:"date_added"`
	Sizes     []string        `json:"sizes"`
	Colors    []string        `json:"colors"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type ProductsSearchResult struct {
	Data []ProductResponse `json:"data"`
	Meta Meta              `json:"meta,omitempty"`
}

type HomeResponse struct {
	Featured []ProductResponse `json:"featured"`
	Carousel []ProductResponse `json:"carousel"`
}

type CartLineResponse struct {
	Index     int             `json:"index"`
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price" swaggertype:"string"`
	Image     string          `json:"image"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal" swaggertype:"string"`
}

type CartResponse struct {
	Items      []CartLineResponse `json:"items"`
	TotalItems int                `json:"total_items"`
	TotalPrice decimal.Decimal    `json:"total_price" swaggertype:"string"`
}

// AddToCartRequest fields left empty fall back to the session's current selection.
type AddToCartRequest struct {
	ProductID *int   `json:"product_id,omitempty"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
}

type QuantityUpdateRequest struct {
	Quantity *int `json:"quantity"`
}

type SelectProductRequest struct {
	ProductID int `json:"product_id"`
}

type SizeRequest struct {
	Size string `json:"size"`
}

type ColorRequest struct {
	Color string `json:"color"`
}

type SelectionResponse struct {
	ProductID *int             `json:"product_id,omitempty"`
	Product   *ProductResponse `json:"product,omitempty"`
	Size      string           `json:"size,omitempty"`
	Color     string           `json:"color,omitempty"`
	Ready     bool             `json:"ready"`
}

type CarouselResponse struct {
	Index      int               `json:"index"`
	Window     int               `json:"window"`
	Indicators int               `json:"indicators"`
	Total      int               `json:"total"`
	Visible    []ProductResponse `json:"visible"`
}

type CarouselSetRequest struct {
	Index *int `json:"index"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		Id:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Category:  p.Category,
		Trending:  p.Trending,
		DateAdded: p.DateAdded.Format(time.DateOnly),
		Sizes:     p.Sizes,
		Colors:    p.Colors,
	}
}

func toProductResponses(ps []models.Product) []ProductResponse {
	out := make([]ProductResponse, len(ps))
	for i, p := range ps {
		out[i] = toProductResponse(p)
	}
	return out
}

func toCartResponse(c cart.Cart) CartResponse {
	items := make([]CartLineResponse, len(c.Items))
	for i, it := range c.Items {
		items[i] = CartLineResponse{
			Index:     i,
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Image:     it.Image,
			Size:      it.Size,
			Color:     it.Color,
			Quantity:  it.Quantity,
			Subtotal:  it.Subtotal(),
		}
	}
	return CartResponse{Items: items, TotalItems: c.TotalItems(), TotalPrice: c.TotalPrice()}
}

func toSelectionResponse(sel session.Selection, p *models.Product) SelectionResponse {
	resp := SelectionResponse{
		ProductID: sel.ProductID,
		Size:      sel.Size,
		Color:     sel.Color,
		Ready:     sel.Ready(),
	}
	if p != nil {
		pr := toProductResponse(*p)
		resp.Product = &pr
	}
	return resp
}
