package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/rogerio-castellano/acme-storefront/internal/models"
	repo "github.com/rogerio-castellano/acme-storefront/internal/repo"
	"github.com/rogerio-castellano/acme-storefront/internal/session"
)

// GetSelectionHandler godoc
// @Summary Get the selected product and options
// @Tags selection
// @Produce json
// @Success 200 {object} SelectionResponse
// @Failure 500 {string} string "Internal error"
// @Router /api/selection [get]
func GetSelectionHandler(w http.ResponseWriter, r *http.Request) {
	s, err := currentSession(r)
	if err != nil {
		http.Error(w, "could not load selection", http.StatusInternalServerError)
		return
	}
	writeSelection(w, s.Selection)
}

// SelectProductHandler godoc
// @Summary Select a product
// @Description Opens the product dialog. Previously chosen size and color are cleared.
// @Tags selection
// @Accept json
// @Produce json
// @Param body body SelectProductRequest true "Product to select"
// @Success 200 {object} SelectionResponse
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Product not found"
// @Router /api/selection [put]
func SelectProductHandler(w http.ResponseWriter, r *http.Request) {
	var req SelectProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	s, err := updateSession(r, func(s *session.Session) error {
		p, err := productRepo.GetByID(req.ProductID)
		if err != nil {
			return err
		}
		s.SelectProduct(p)
		return nil
	})
	writeSelectionResult(w, s, err)
}

// ChooseSizeHandler godoc
// @Summary Choose a size for the selected product
// @Tags selection
// @Accept json
// @Produce json
// @Param body body SizeRequest true "Size"
// @Success 200 {object} SelectionResponse
// @Failure 400 {array} ValidationError
// @Failure 409 {string} string "No product selected"
// @Router /api/selection/size [put]
func ChooseSizeHandler(w http.ResponseWriter, r *http.Request) {
	var req SizeRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	chooseOption(w, r, "size", func(s *session.Session, p models.Product) error {
		return s.ChooseSize(p, req.Size)
	})
}

// ChooseColorHandler godoc
// @Summary Choose a color for the selected product
// @Tags selection
// @Accept json
// @Produce json
// @Param body body ColorRequest true "Color"
// @Success 200 {object} SelectionResponse
// @Failure 400 {array} ValidationError
// @Failure 409 {string} string "No product selected"
// @Router /api/selection/color [put]
func ChooseColorHandler(w http.ResponseWriter, r *http.Request) {
	var req ColorRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	chooseOption(w, r, "color", func(s *session.Session, p models.Product) error {
		return s.ChooseColor(p, req.Color)
	})
}

// ClearSelectionHandler godoc
// @Summary Close the product dialog
// @Tags selection
// @Success 204 "Cleared"
// @Router /api/selection [delete]
func ClearSelectionHandler(w http.ResponseWriter, r *http.Request) {
	_, err := updateSession(r, func(s *session.Session) error {
		s.ClearSelection()
		return nil
	})
	if err != nil {
		http.Error(w, "could not clear selection", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func chooseOption(w http.ResponseWriter, r *http.Request, field string, choose func(*session.Session, models.Product) error) {
	s, err := updateSession(r, func(s *session.Session) error {
		if s.Selection.ProductID == nil {
			return session.ErrNoSelection
		}
		p, err := productRepo.GetByID(*s.Selection.ProductID)
		if err != nil {
			return err
		}
		return choose(s, p)
	})

	if errors.Is(err, session.ErrInvalidOption) {
		writeValidationErrors(w, []ValidationError{{Field: field, Description: "Option is not offered for this product"}})
		return
	}
	writeSelectionResult(w, s, err)
}

func writeSelectionResult(w http.ResponseWriter, s *session.Session, err error) {
	switch {
	case errors.Is(err, repo.ErrProductNotFound):
		http.Error(w, "product not found", http.StatusNotFound)
	case errors.Is(err, session.ErrNoSelection):
		http.Error(w, "no product selected", http.StatusConflict)
	case err != nil:
		log.Error().Err(err).Msg("update selection")
		http.Error(w, "could not update selection", http.StatusInternalServerError)
	default:
		writeSelection(w, s.Selection)
	}
}

func writeSelection(w http.ResponseWriter, sel session.Selection) {
	p, err := lookupSelected(sel)
	if err != nil {
		http.Error(w, "could not load selection", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toSelectionResponse(sel, p))
}
