package domain

// Product represents a negotiable energy contract listed on the venue.
// The identifier is opaque and unique; the description is the
// human-readable label users select products by.
type Product struct {
	ID          int64  `json:"id" validate:"required"`
	Description string `json:"description" validate:"required"`
}
