package handlers

import (
	"github.com/rogerio-castellano/acme-storefront/internal/models"
)

type ValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validateLineOptions(p models.Product, size, color string) []ValidationError {
	errs := []ValidationError{}
	switch {
	case size == "":
		errs = append(errs, ValidationError{Field: "size", Description: "Size is required"})
	case !p.HasSize(size):
		errs = append(errs, ValidationError{Field: "size", Description: "Size is not offered for this product"})
	}
	switch {
	case color == "":
		errs = append(errs, ValidationError{Field: "color", Description: "Color is required"})
	case !p.HasColor(color):
		errs = append(errs, ValidationError{Field: "color", Description: "Color is not offered for this product"})
	}
	return errs
}

func validateQuantity(q *int) []ValidationError {
	errs := []ValidationError{}
	if q == nil {
		errs = append(errs, ValidationError{Field: "quantity", Description: "Quantity is required"})
	}
	return errs
}
