package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	handler "github.com/rogerio-castellano/acme-storefront/internal/http/handlers"
	"github.com/rogerio-castellano/acme-storefront/internal/http/router"
)

func TestAddCartItemHandler_SameOptionsIncrement(t *testing.T) {
	v := newVisitor(router.NewRouter())

	for range 2 {
		if w := v.addToCart(1, "9", "Black"); w.Code != http.StatusCreated {
			t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
		}
	}

	c, err := v.cart()
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Items) != 1 {
		t.Fatalf("expected 1 cart line, got %d", len(c.Items))
	}
	if c.Items[0].Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", c.Items[0].Quantity)
	}
	if c.TotalItems != 2 {
		t.Errorf("expected total_items 2, got %d", c.TotalItems)
	}
	if !c.TotalPrice.Equal(decimal.NewFromInt(90)) {
		t.Errorf("expected total_price 90, got %s", c.TotalPrice)
	}
}

func TestAddCartItemHandler_DistinctOptionsAreDistinctLines(t *testing.T) {
	v := newVisitor(router.NewRouter())

	v.addToCart(1, "9", "Black")
	v.addToCart(1, "10", "Black")
	v.addToCart(8, "One Size", "Multi")
	v.addToCart(1, "9", "Black")

	c, err := v.cart()
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Items) != 3 {
		t.Fatalf("expected 3 cart lines, got %d", len(c.Items))
	}
	if c.TotalItems != 4 {
		t.Errorf("expected total_items 4, got %d", c.TotalItems)
	}
	// 2*45 + 45 + 5
	if !c.TotalPrice.Equal(decimal.NewFromInt(140)) {
		t.Errorf("expected total_price 140, got %s", c.TotalPrice)
	}
}

func TestAddCartItemHandler_Invalid(t *testing.T) {
	r := router.NewRouter()
	productID := 1

	tests := []struct {
		name           string
		payload        handler.AddToCartRequest
		expectedErrors []string
	}{
		{
			name:           "No product and nothing selected",
			payload:        handler.AddToCartRequest{Size: "9", Color: "Black"},
			expectedErrors: []string{"product_id"},
		},
		{
			name:           "Missing size and color",
			payload:        handler.AddToCartRequest{ProductID: &productID},
			expectedErrors: []string{"size", "color"},
		},
		{
			name:           "Missing color",
			payload:        handler.AddToCartRequest{ProductID: &productID, Size: "9"},
			expectedErrors: []string{"color"},
		},
		{
			name:           "Size not offered",
			payload:        handler.AddToCartRequest{ProductID: &productID, Size: "42", Color: "Black"},
			expectedErrors: []string{"size"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newVisitor(r)
			w := v.do(http.MethodPost, "/api/cart/items", tt.payload)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			var resp []handler.ValidationError
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("error decoding response: %v", err)
			}
			for _, field := range tt.expectedErrors {
				if !hasFieldError(resp, field) {
					t.Errorf("expected error for field %q, but not found", field)
				}
			}

			c, err := v.cart()
			if err != nil {
				t.Fatal(err)
			}
			if len(c.Items) != 0 {
				t.Errorf("expected empty cart, got %d lines", len(c.Items))
			}
		})
	}
}

func TestAddCartItemHandler_UnknownProduct(t *testing.T) {
	w := newVisitor(router.NewRouter()).addToCart(999, "M", "Black")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestAddCartItemHandler_MalformedJSON(t *testing.T) {
	v := newVisitor(router.NewRouter())
	w := v.do(http.MethodPost, "/api/cart/items", `{"size": }`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAddCartItemHandler_UsesSelection(t *testing.T) {
	v := newVisitor(router.NewRouter())

	v.do(http.MethodPut, "/api/selection", handler.SelectProductRequest{ProductID: 4})
	v.do(http.MethodPut, "/api/selection/size", handler.SizeRequest{Size: "One Size"})
	v.do(http.MethodPut, "/api/selection/color", handler.ColorRequest{Color: "Blue"})

	w := v.do(http.MethodPost, "/api/cart/items", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}

	var c handler.CartResponse
	if err := json.NewDecoder(w.Body).Decode(&c); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if len(c.Items) != 1 || c.Items[0].Name != "Acme Cup" || c.Items[0].Color != "Blue" {
		t.Fatalf("unexpected cart: %+v", c)
	}

	w = v.do(http.MethodGet, "/api/selection", nil)
	var sel handler.SelectionResponse
	if err := json.NewDecoder(w.Body).Decode(&sel); err != nil {
		t.Fatalf("error decoding selection: %v", err)
	}
	if sel.ProductID != nil {
		t.Errorf("expected selection to be cleared after add, got %+v", sel)
	}
}

func TestUpdateCartItemHandler(t *testing.T) {
	v := newVisitor(router.NewRouter())
	v.addToCart(1, "9", "Black")
	v.addToCart(3, "One Size", "Navy")

	five := 5
	w := v.do(http.MethodPatch, "/api/cart/items/0", handler.QuantityUpdateRequest{Quantity: &five})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	c, _ := v.cart()
	if c.Items[0].Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", c.Items[0].Quantity)
	}

	zero := 0
	v.do(http.MethodPatch, "/api/cart/items/0", handler.QuantityUpdateRequest{Quantity: &zero})
	c, _ = v.cart()
	if len(c.Items) != 1 || c.Items[0].ProductID != 3 {
		t.Fatalf("expected only the bag to remain, got %+v", c.Items)
	}

	w = v.do(http.MethodPatch, "/api/cart/items/7", handler.QuantityUpdateRequest{Quantity: &five})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for invalid index, got %d", w.Code)
	}

	w = v.do(http.MethodPatch, "/api/cart/items/0", map[string]any{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing quantity, got %d", w.Code)
	}
}

func TestRemoveCartItemHandler_PreservesOrder(t *testing.T) {
	v := newVisitor(router.NewRouter())
	v.addToCart(1, "9", "Black")
	v.addToCart(3, "One Size", "Navy")
	v.addToCart(8, "One Size", "Multi")

	w := v.do(http.MethodDelete, "/api/cart/items/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	c, _ := v.cart()
	if len(c.Items) != 2 || c.Items[0].ProductID != 1 || c.Items[1].ProductID != 8 {
		t.Fatalf("unexpected cart after remove: %+v", c.Items)
	}
	if c.Items[1].Index != 1 {
		t.Errorf("expected indices to be renumbered, got %d", c.Items[1].Index)
	}

	if w := v.do(http.MethodDelete, "/api/cart/items/5", nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if w := v.do(http.MethodDelete, "/api/cart/items/x", nil); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCart_IsPerSession(t *testing.T) {
	r := router.NewRouter()
	alice, bob := newVisitor(r), newVisitor(r)

	alice.addToCart(1, "9", "Black")

	c, err := bob.cart()
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Items) != 0 {
		t.Errorf("expected another visitor to have an empty cart, got %d lines", len(c.Items))
	}
}
