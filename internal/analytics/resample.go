package analytics

import (
	"time"

	"radarcli/pkg/contracts/domain"
)

// ResampleDaily converts one product's matched deal series into a daily
// OHLC bar table with moving averages and Bollinger bands.
//
// Deals are bucketed by calendar day using the event time's own
// location; per bucket open is the first trade's price, high the
// maximum, low the minimum and close the last trade's price. Days with
// no trades are dropped from the index, so indicators run over trading
// days only. Fewer than MinDealsForBars qualifying deals yields an
// InsufficientDataError carrying the product description, never a
// partial table.
func ResampleDaily(deals []domain.Deal, productID int64, description string) (*BarTable, error) {
	if len(deals) < MinDealsForBars {
		return nil, &InsufficientDataError{
			Description: description,
			Have:        len(deals),
			Need:        MinDealsForBars,
			Unit:        "trades",
		}
	}

	sorted := sortDealsChronologically(deals)

	var bars []Bar
	for _, d := range sorted {
		day := d.Day()
		if len(bars) == 0 || !bars[len(bars)-1].Date.Equal(day) {
			bars = append(bars, Bar{
				Date:  day,
				Open:  d.UnitPrice,
				High:  d.UnitPrice,
				Low:   d.UnitPrice,
				Close: d.UnitPrice,
			})
			continue
		}

		bar := &bars[len(bars)-1]
		if d.UnitPrice > bar.High {
			bar.High = d.UnitPrice
		}
		if d.UnitPrice < bar.Low {
			bar.Low = d.UnitPrice
		}
		bar.Close = d.UnitPrice
	}

	applyIndicators(bars)

	latest := bars[len(bars)-1]
	table := &BarTable{
		ProductID:   productID,
		Description: description,
		Bars:        bars,
		Latest: Snapshot{
			Date:  latest.Date,
			Open:  latest.Open,
			High:  latest.High,
			Low:   latest.Low,
			Close: latest.Close,
			MA10:  latest.MA10,
			MA20:  latest.MA20,
		},
	}
	return table, nil
}

// applyIndicators fills the indicator columns in place. Each rolling
// statistic requires a full window; earlier bars keep nil values.
func applyIndicators(bars []Bar) {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}

	ma10 := rollingMean(closes, ShortWindow)
	ma20 := rollingMean(closes, LongWindow)
	std10 := rollingStd(closes, ShortWindow)

	for i := range bars {
		bars[i].MA10 = ma10[i]
		bars[i].MA20 = ma20[i]

		if ma10[i] != nil && std10[i] != nil {
			m, s := *ma10[i], *std10[i]
			bars[i].BollingerUpper = floatPtr(m + 2*s)
			bars[i].BollingerLower = floatPtr(m - 2*s)
			bars[i].BollingerUpper1Std = floatPtr(m + s)
			bars[i].BollingerLower1Std = floatPtr(m - s)
		}
	}
}

// dayIndexOf builds a date→position lookup for a day index.
func dayIndexOf(dates []time.Time) map[time.Time]int {
	idx := make(map[time.Time]int, len(dates))
	for i, d := range dates {
		idx[d] = i
	}
	return idx
}
