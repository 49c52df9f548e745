package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"radarcli/pkg/contracts/domain"
)

// CompareVWAP builds the cross-product relative-value table for two
// products addressed by description.
//
// Per product and calendar day, VWAP = Σ(price×quantity) / Σ(quantity);
// days whose summed quantity is zero are excluded before the division so
// no non-finite value ever enters the series. The two per-day series are
// inner-joined on date, and fewer than MinSpreadDays overlapping days
// fails with an InsufficientDataError. The daily spread (first − second)
// is then cleaned by dropping rows whose z-score magnitude reaches
// OutlierZScore, and a 10-day moving average plus two-sigma rolling
// bands are computed on the cleaned series only. The raw joined VWAP
// rows are returned untouched alongside the filtered series.
func CompareVWAP(deals []domain.Deal, dir *Directory, firstDesc, secondDesc string) (*SpreadTable, error) {
	firstID, ok := dir.ResolveID(firstDesc)
	if !ok {
		return nil, &NotFoundError{Description: firstDesc}
	}
	secondID, ok := dir.ResolveID(secondDesc)
	if !ok {
		return nil, &NotFoundError{Description: secondDesc}
	}

	firstVWAP := dailyVWAP(MatchedActive(deals, firstID))
	secondVWAP := dailyVWAP(MatchedActive(deals, secondID))

	raw := joinVWAP(firstVWAP, secondVWAP)
	if len(raw) < MinSpreadDays {
		return nil, &InsufficientDataError{
			Description: fmt.Sprintf("%s vs %s", firstDesc, secondDesc),
			Have:        len(raw),
			Need:        MinSpreadDays,
			Unit:        "days",
		}
	}

	table := &SpreadTable{
		FirstDescription:  firstDesc,
		SecondDescription: secondDesc,
		FirstProductID:    firstID,
		SecondProductID:   secondID,
		Raw:               raw,
		Filtered:          filterSpread(raw),
	}
	return table, nil
}

// dailyVWAP computes the per-day volume-weighted average price for a
// deal series. Days with zero summed quantity are left out entirely.
func dailyVWAP(deals []domain.Deal) map[time.Time]float64 {
	type accum struct {
		priceVolume float64
		quantity    float64
	}
	byDay := make(map[time.Time]*accum)

	for _, d := range deals {
		day := d.Day()
		a, ok := byDay[day]
		if !ok {
			a = &accum{}
			byDay[day] = a
		}
		a.priceVolume += d.UnitPrice * d.Quantity
		a.quantity += d.Quantity
	}

	vwap := make(map[time.Time]float64, len(byDay))
	for day, a := range byDay {
		if a.quantity <= 0 {
			continue
		}
		vwap[day] = a.priceVolume / a.quantity
	}
	return vwap
}

// joinVWAP inner-joins two per-day VWAP series on date, chronologically.
func joinVWAP(first, second map[time.Time]float64) []VWAPRow {
	var rows []VWAPRow
	for day, f := range first {
		s, ok := second[day]
		if !ok {
			continue
		}
		rows = append(rows, VWAPRow{Date: day, First: f, Second: s})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Date.Before(rows[j].Date)
	})
	return rows
}

// filterSpread removes z-score outliers from the spread series and
// computes the rolling statistics on what remains. The mean and
// deviation behind the z-score are taken over the full joined series.
func filterSpread(raw []VWAPRow) []SpreadRow {
	spreads := make([]float64, len(raw))
	for i, r := range raw {
		spreads[i] = r.First - r.Second
	}

	mean, std := meanAndStd(spreads)

	var filtered []SpreadRow
	for i, r := range raw {
		if std > 0 {
			z := (spreads[i] - mean) / std
			if math.Abs(z) >= OutlierZScore {
				continue
			}
		}
		filtered = append(filtered, SpreadRow{Date: r.Date, Spread: spreads[i]})
	}

	values := make([]float64, len(filtered))
	for i, r := range filtered {
		values[i] = r.Spread
	}

	sma := rollingMean(values, ShortWindow)
	rollStd := rollingStd(values, ShortWindow)

	for i := range filtered {
		filtered[i].SMA10 = sma[i]
		if sma[i] != nil && rollStd[i] != nil {
			filtered[i].BandUpper = floatPtr(*sma[i] + 2*(*rollStd[i]))
			filtered[i].BandLower = floatPtr(*sma[i] - 2*(*rollStd[i]))
		}
	}
	return filtered
}
