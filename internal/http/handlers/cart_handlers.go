package handlers

import (
	"cmp"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/rogerio-castellano/acme-storefront/internal/cart"
	"github.com/rogerio-castellano/acme-storefront/internal/models"
	repo "github.com/rogerio-castellano/acme-storefront/internal/repo"
	"github.com/rogerio-castellano/acme-storefront/internal/session"
)

// errValidation aborts a session update whose input failed validation.
var errValidation = errors.New("validation failed")

// GetCartHandler godoc
// @Summary Get the session cart
// @Tags cart
// @Produce json
// @Success 200 {object} CartResponse
// @Failure 500 {string} string "Internal error"
// @Router /api/cart [get]
func GetCartHandler(w http.ResponseWriter, r *http.Request) {
	s, err := currentSession(r)
	if err != nil {
		http.Error(w, "could not load cart", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(s.Cart))
}

// AddCartItemHandler godoc
// @Summary Add an item to the cart
// @Description Adds one unit of a product/size/color. Omitted fields default to the current selection,
// @Description which is cleared after a successful add. Adding an existing combination increments its quantity.
// @Tags cart
// @Accept json
// @Produce json
// @Param item body AddToCartRequest false "Item to add"
// @Success 201 {object} CartResponse
// @Failure 400 {array} ValidationError
// @Failure 404 {string} string "Product not found"
// @Failure 500 {string} string "Internal error"
// @Router /api/cart/items [post]
func AddCartItemHandler(w http.ResponseWriter, r *http.Request) {
	var req AddToCartRequest
	if err := readOptionalJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	var validationErrors []ValidationError
	s, err := updateSession(r, func(s *session.Session) error {
		productID := req.ProductID
		if productID == nil {
			productID = s.Selection.ProductID
		}
		if productID == nil {
			validationErrors = []ValidationError{{Field: "product_id", Description: "Product is required"}}
			return errValidation
		}

		p, err := productRepo.GetByID(*productID)
		if err != nil {
			return err
		}

		size, color := req.Size, req.Color
		if s.Selection.Is(p.ID) {
			size = cmp.Or(size, s.Selection.Size)
			color = cmp.Or(color, s.Selection.Color)
		}
		if validationErrors = validateLineOptions(p, size, color); len(validationErrors) > 0 {
			return errValidation
		}

		s.Cart.Add(p, size, color)
		s.ClearSelection()
		return nil
	})

	switch {
	case errors.Is(err, errValidation):
		writeValidationErrors(w, validationErrors)
	case errors.Is(err, repo.ErrProductNotFound):
		http.Error(w, "product not found", http.StatusNotFound)
	case err != nil:
		log.Error().Err(err).Msg("add cart item")
		http.Error(w, "could not add item", http.StatusInternalServerError)
	default:
		writeJSON(w, http.StatusCreated, toCartResponse(s.Cart))
	}
}

// UpdateCartItemHandler godoc
// @Summary Change a cart line quantity
// @Description A quantity of zero or less removes the line
// @Tags cart
// @Accept json
// @Produce json
// @Param index path int true "Line index"
// @Param body body QuantityUpdateRequest true "New quantity"
// @Success 200 {object} CartResponse
// @Failure 400 {array} ValidationError
// @Failure 404 {string} string "Line not found"
// @Failure 500 {string} string "Internal error"
// @Router /api/cart/items/{index} [patch]
func UpdateCartItemHandler(w http.ResponseWriter, r *http.Request) {
	index, err := intURLParam(r, "index")
	if err != nil {
		http.Error(w, "invalid line index", http.StatusBadRequest)
		return
	}

	var req QuantityUpdateRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if errs := validateQuantity(req.Quantity); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	s, err := updateSession(r, func(s *session.Session) error {
		return s.Cart.UpdateQuantity(index, *req.Quantity)
	})
	writeCartResult(w, s, err)
}

// RemoveCartItemHandler godoc
// @Summary Remove a cart line
// @Tags cart
// @Produce json
// @Param index path int true "Line index"
// @Success 200 {object} CartResponse
// @Failure 400 {string} string "Invalid index"
// @Failure 404 {string} string "Line not found"
// @Failure 500 {string} string "Internal error"
// @Router /api/cart/items/{index} [delete]
func RemoveCartItemHandler(w http.ResponseWriter, r *http.Request) {
	index, err := intURLParam(r, "index")
	if err != nil {
		http.Error(w, "invalid line index", http.StatusBadRequest)
		return
	}

	s, err := updateSession(r, func(s *session.Session) error {
		return s.Cart.Remove(index)
	})
	writeCartResult(w, s, err)
}

func writeCartResult(w http.ResponseWriter, s *session.Session, err error) {
	switch {
	case errors.Is(err, cart.ErrInvalidIndex):
		http.Error(w, "cart line not found", http.StatusNotFound)
	case err != nil:
		log.Error().Err(err).Msg("update cart")
		http.Error(w, "could not update cart", http.StatusInternalServerError)
	default:
		writeJSON(w, http.StatusOK, toCartResponse(s.Cart))
	}
}

// lookupSelected returns the selected product, or nil when nothing is selected.
func lookupSelected(sel session.Selection) (*models.Product, error) {
	if sel.ProductID == nil {
		return nil, nil
	}
	p, err := productRepo.GetByID(*sel.ProductID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
