package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"radarcli/pkg/contracts/domain"
)

// rollingMean computes a simple moving average over the given window.
// The result has one entry per input value; entries before the window is
// full are nil, matching the minimum-window semantics of the tables.
func rollingMean(values []float64, window int) []*float64 {
	out := make([]*float64, len(values))
	if window <= 0 || len(values) < window {
		return out
	}

	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			mean := sum / float64(window)
			out[i] = &mean
		}
	}
	return out
}

// rollingStd computes the rolling sample standard deviation over the
// given window, with the same nil-prefix convention as rollingMean.
func rollingStd(values []float64, window int) []*float64 {
	out := make([]*float64, len(values))
	if window <= 1 || len(values) < window {
		return out
	}

	for i := window - 1; i < len(values); i++ {
		slice := values[i-window+1 : i+1]
		std := sampleStd(slice)
		out[i] = &std
	}
	return out
}

// sampleStd returns the sample standard deviation (n-1 denominator) of
// the given values. Returns 0 for fewer than two values.
func sampleStd(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(n)

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(n-1))
}

// meanAndStd returns the mean and sample standard deviation of the
// values in a single pass over the data.
func meanAndStd(values []float64) (float64, float64) {
	n := len(values)
	if n == 0 {
		return 0, 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(n)

	return mean, sampleStd(values)
}

// floatPtr returns a pointer to v. Used to populate nullable columns.
func floatPtr(v float64) *float64 {
	return &v
}

// formatPercent renders a fractional variation as "x.xx%".
func formatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

// truncateDay strips the time-of-day component, keeping the location
// already encoded in the timestamp.
func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// sortDealsChronologically orders deals by event time, oldest first.
// Stable so that same-timestamp deals keep their batch order, which
// pins down the first/last trade of a day.
func sortDealsChronologically(deals []domain.Deal) []domain.Deal {
	sorted := make([]domain.Deal, len(deals))
	copy(sorted, deals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})
	return sorted
}

// MatchedActive filters the batch down to one product's matched, active
// deals. The returned slice is a copy; the batch is never mutated.
func MatchedActive(deals []domain.Deal, productID int64) []domain.Deal {
	var filtered []domain.Deal
	for _, d := range deals {
		if d.ProductID == productID && d.IsMatched() {
			filtered = append(filtered, d)
		}
	}
	return filtered
}
