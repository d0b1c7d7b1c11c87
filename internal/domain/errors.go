package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrProductNotFound indicates the requested product does not exist
	ErrProductNotFound = errors.New("product not found")

	// ErrCatalogUnavailable indicates no product source could be reached
	ErrCatalogUnavailable = errors.New("catalog source is unreachable")

	// ErrBadCatalogPayload indicates a source returned something other
	// than a product list
	ErrBadCatalogPayload = errors.New("catalog payload is not a product list")

	// ErrInvalidContact indicates a contact submission failed validation
	ErrInvalidContact = errors.New("contact message is invalid")
)
