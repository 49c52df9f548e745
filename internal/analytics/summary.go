package analytics

import (
	"errors"
	"sort"
	"time"

	"radarcli/pkg/contracts/domain"
)

// ErrEmptyBatch indicates a batch with no deals at all, for which no
// summary day can be identified.
var ErrEmptyBatch = errors.New("no deals in batch")

// BuildDailySummary aggregates the latest session in the batch into one
// OHLC row per product, with the day-over-day percentage variation
// against the nearest prior trading day.
//
// The latest calendar day is taken from the whole batch; matched active
// deals on that day are grouped per product with the same
// first/max/min/last rule as the bar table. The prior trading day is
// found by scanning backward over the distinct deal dates strictly
// before the latest day, so weekend and holiday gaps are spanned by
// search rather than a fixed day-minus-one. Products with no resolvable
// prior close, or a prior close of zero, report a nil variation.
func BuildDailySummary(deals []domain.Deal, dir *Directory) (*DailySummary, error) {
	if len(deals) == 0 {
		return nil, ErrEmptyBatch
	}

	latest := latestDay(deals)

	sorted := sortDealsChronologically(deals)

	rows := summarizeDay(sorted, latest)
	if prior, ok := priorTradingDay(sorted, latest); ok {
		prevCloses := closingPrices(sorted, prior)
		for i := range rows {
			prev, ok := prevCloses[rows[i].ProductID]
			if !ok || prev == 0 {
				continue
			}
			rows[i].PrevClose = floatPtr(prev)
			rows[i].Variation = floatPtr((rows[i].Close - prev) / prev)
		}
	}

	for i := range rows {
		if desc, ok := dir.ResolveDescription(rows[i].ProductID); ok {
			rows[i].Description = desc
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Description < rows[j].Description
	})

	return &DailySummary{Date: latest, Rows: rows}, nil
}

// latestDay returns the most recent calendar day present in the batch.
func latestDay(deals []domain.Deal) time.Time {
	var latest time.Time
	for _, d := range deals {
		if day := d.Day(); day.After(latest) {
			latest = day
		}
	}
	return latest
}

// summarizeDay aggregates one day's matched deals into per-product OHLC
// rows. Deals must already be in chronological order.
func summarizeDay(sorted []domain.Deal, day time.Time) []SummaryRow {
	byProduct := make(map[int64]*SummaryRow)
	var order []int64

	for _, d := range sorted {
		if !d.IsMatched() || !d.Day().Equal(day) {
			continue
		}

		row, ok := byProduct[d.ProductID]
		if !ok {
			byProduct[d.ProductID] = &SummaryRow{
				ProductID: d.ProductID,
				Open:      d.UnitPrice,
				High:      d.UnitPrice,
				Low:       d.UnitPrice,
				Close:     d.UnitPrice,
			}
			order = append(order, d.ProductID)
			continue
		}

		if d.UnitPrice > row.High {
			row.High = d.UnitPrice
		}
		if d.UnitPrice < row.Low {
			row.Low = d.UnitPrice
		}
		row.Close = d.UnitPrice
	}

	rows := make([]SummaryRow, 0, len(order))
	for _, id := range order {
		rows = append(rows, *byProduct[id])
	}
	return rows
}

// priorTradingDay finds the most recent day strictly before the
// reference day that has at least one matched deal.
func priorTradingDay(deals []domain.Deal, before time.Time) (time.Time, bool) {
	var prior time.Time
	var found bool
	for _, d := range deals {
		if !d.IsMatched() {
			continue
		}
		day := d.Day()
		if day.Before(before) && day.After(prior) {
			prior = day
			found = true
		}
	}
	return prior, found
}

// closingPrices returns each product's last matched trade price on the
// given day. Deals must already be in chronological order.
func closingPrices(sorted []domain.Deal, day time.Time) map[int64]float64 {
	closes := make(map[int64]float64)
	for _, d := range sorted {
		if d.IsMatched() && d.Day().Equal(day) {
			closes[d.ProductID] = d.UnitPrice
		}
	}
	return closes
}
