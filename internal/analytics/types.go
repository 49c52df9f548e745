package analytics

import (
	"time"
)

// Minimum sample thresholds, below which the corresponding analysis
// fails with an InsufficientDataError.
const (
	// MinDealsForBars is the minimum number of matched deals a product
	// needs before a bar table is produced.
	MinDealsForBars = 20
	// MinSpreadDays is the minimum number of overlapping trading days a
	// product pair needs before a spread table is produced.
	MinSpreadDays = 10
)

// Rolling-statistic window lengths used across the bar, volume and
// spread tables.
const (
	ShortWindow = 10
	LongWindow  = 20
)

// OutlierZScore is the |z| cutoff above which a spread observation is
// excluded from the derived-statistics series.
const OutlierZScore = 3.0

// Bar is one calendar day of a product's price history. Indicator
// columns are nil until enough preceding bars exist to fill their
// window; they are never back-filled.
type Bar struct {
	Date  time.Time `json:"date"`
	Open  float64   `json:"open"`
	High  float64   `json:"high"`
	Low   float64   `json:"low"`
	Close float64   `json:"close"`

	MA10 *float64 `json:"ma10"`
	MA20 *float64 `json:"ma20"`

	// Bollinger bands around MA10: two-sigma and one-sigma envelopes of
	// the 10-day rolling standard deviation of close.
	BollingerUpper     *float64 `json:"bollinger_upper"`
	BollingerLower     *float64 `json:"bollinger_lower"`
	BollingerUpper1Std *float64 `json:"bollinger_upper_1std"`
	BollingerLower1Std *float64 `json:"bollinger_lower_1std"`
}

// Snapshot is the most recent bar's prices and overlays, exposed as a
// compact block for annotation and display.
type Snapshot struct {
	Date  time.Time `json:"date"`
	Open  float64   `json:"open"`
	High  float64   `json:"high"`
	Low   float64   `json:"low"`
	Close float64   `json:"close"`
	MA10  *float64  `json:"ma10"`
	MA20  *float64  `json:"ma20"`
}

// BarTable is the day-indexed OHLC and indicator table for one product.
// Days with no matched trades are absent from the index; indicator
// computation runs over trading days only.
type BarTable struct {
	ProductID   int64    `json:"product_id"`
	Description string   `json:"description"`
	Bars        []Bar    `json:"bars"`
	Latest      Snapshot `json:"latest"`
}

// Dates returns the table's day index in chronological order.
func (t *BarTable) Dates() []time.Time {
	dates := make([]time.Time, len(t.Bars))
	for i, b := range t.Bars {
		dates[i] = b.Date
	}
	return dates
}

// VolumeMode signals which shape the volume decomposition produced, so
// presentation can adapt the number of panels it renders.
type VolumeMode string

const (
	// VolumeModeDecomposed means buy/sell legs, net and cumulative net
	// series are populated.
	VolumeModeDecomposed VolumeMode = "decomposed"
	// VolumeModeTotalsOnly means only the total series is populated.
	// This is a supported degraded mode, not an error.
	VolumeModeTotalsOnly VolumeMode = "totals_only"
)

// VolumeRow is one calendar day of traded volume, aligned to the bar
// table's index. A day with no trading carries a true zero total,
// distinct from the nil used for unfilled rolling windows.
type VolumeRow struct {
	Date  time.Time `json:"date"`
	Total float64   `json:"total"`

	// Populated only in decomposed mode.
	Buy           *float64 `json:"buy,omitempty"`
	Sell          *float64 `json:"sell,omitempty"`
	Net           *float64 `json:"net,omitempty"`
	CumulativeNet *float64 `json:"cumulative_net,omitempty"`
	CumNetMA10    *float64 `json:"cumulative_net_ma10,omitempty"`
	CumNetMA20    *float64 `json:"cumulative_net_ma20,omitempty"`
}

// VolumeTable is the day-indexed volume table for one product. Its index
// is always identical to the bar table it was aligned against.
type VolumeTable struct {
	ProductID int64       `json:"product_id"`
	Mode      VolumeMode  `json:"mode"`
	Rows      []VolumeRow `json:"rows"`
}

// VWAPRow is one overlapping trading day of the raw dual-VWAP series.
// The raw series is never outlier-filtered.
type VWAPRow struct {
	Date   time.Time `json:"date"`
	First  float64   `json:"first"`
	Second float64   `json:"second"`
}

// SpreadRow is one day of the outlier-filtered spread series with its
// derived rolling statistics.
type SpreadRow struct {
	Date      time.Time `json:"date"`
	Spread    float64   `json:"spread"`
	SMA10     *float64  `json:"sma10"`
	BandUpper *float64  `json:"band_upper"`
	BandLower *float64  `json:"band_lower"`
}

// SpreadTable holds the cross-product VWAP comparison: the full joined
// dual-VWAP series and, separately, the outlier-filtered spread series
// with its moving average and two-sigma bands. The two series are kept
// distinct on purpose; filtering never touches the raw rows.
type SpreadTable struct {
	FirstDescription  string      `json:"first_description"`
	SecondDescription string      `json:"second_description"`
	FirstProductID    int64       `json:"first_product_id"`
	SecondProductID   int64       `json:"second_product_id"`
	Raw               []VWAPRow   `json:"raw"`
	Filtered          []SpreadRow `json:"filtered"`
}

// SummaryRow is one product's latest-session OHLC and day-over-day
// variation. Variation is nil when no prior trading day resolves or the
// prior close is zero; it must be rendered as "N/A", never dropped.
type SummaryRow struct {
	ProductID   int64    `json:"product_id"`
	Description string   `json:"description"`
	Open        float64  `json:"open"`
	High        float64  `json:"high"`
	Low         float64  `json:"low"`
	Close       float64  `json:"close"`
	PrevClose   *float64 `json:"prev_close,omitempty"`
	Variation   *float64 `json:"variation"`
}

// VariationPercent formats the day-over-day variation as a percentage
// string, or "N/A" when the variation is undefined.
func (r SummaryRow) VariationPercent() string {
	if r.Variation == nil {
		return "N/A"
	}
	return formatPercent(*r.Variation)
}

// DailySummary is the cross-product snapshot of the latest session
// present in the batch.
type DailySummary struct {
	Date time.Time    `json:"date"`
	Rows []SummaryRow `json:"rows"`
}
