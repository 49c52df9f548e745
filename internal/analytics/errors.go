package analytics

import (
	"fmt"
)

// NotFoundError indicates a product description or identifier that the
// directory could not resolve. It is a user-facing "unknown product"
// condition, not a fault.
type NotFoundError struct {
	Description string
	ProductID   int64
}

func (e *NotFoundError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("product %q not found", e.Description)
	}
	return fmt.Sprintf("product id %d not found", e.ProductID)
}

// InsufficientDataError indicates a sample below the minimum required for
// an analysis. Description identifies the affected product (or product
// pair) for display.
type InsufficientDataError struct {
	Description string
	Have        int
	Need        int
	Unit        string // "trades" or "days"
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data for %s: %d %s available, %d required",
		e.Description, e.Have, e.Unit, e.Need)
}
