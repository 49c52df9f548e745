package domain

import (
	"time"
)

// Tendency is the directional tag the venue attaches to a deal.
// Wire values are the venue's own (Portuguese) labels.
type Tendency string

const (
	TendencyBuy  Tendency = "Compra"
	TendencySell Tendency = "Venda"
)

// OperationType classifies how a deal record originated. Only matched
// deals represent completed trades; the remaining types are offers and
// order-book events that never traded.
type OperationType string

const (
	OperationMatch OperationType = "Match"
)

// DealStatus is the venue's lifecycle status for a deal record.
type DealStatus string

const (
	DealStatusActive DealStatus = "Ativo"
)

// Deal represents a single trade record from the venue's all-deals report.
type Deal struct {
	ID            int64         `json:"id" validate:"min=0"`
	ProductID     int64         `json:"product_id" validate:"required"`
	CreatedAt     time.Time     `json:"created_at" validate:"required"`
	UnitPrice     float64       `json:"unit_price" validate:"min=0"`
	Quantity      float64       `json:"quantity" validate:"min=0"`
	Tendency      Tendency      `json:"tendency,omitempty"`
	OperationType OperationType `json:"operation_type"`
	Status        DealStatus    `json:"status"`
}

// IsMatched reports whether the record is a completed, still-active trade.
// Only matched active deals participate in price and volume analytics.
func (d Deal) IsMatched() bool {
	return d.OperationType == OperationMatch && d.Status == DealStatusActive
}

// Day returns the calendar day the deal belongs to, preserving the
// location already encoded in the timestamp.
func (d Deal) Day() time.Time {
	y, m, day := d.CreatedAt.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, d.CreatedAt.Location())
}
