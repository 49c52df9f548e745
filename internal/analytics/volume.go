package analytics

import (
	"time"

	"radarcli/pkg/contracts/domain"
)

// DecomposeVolume aligns one product's daily traded volume to the given
// bar index, optionally splitting it into buy and sell legs.
//
// The output index is exactly the bar index: days without trading carry
// a true zero, never a gap, so price and volume series stay in lockstep.
// When every deal carries a recognized buy/sell tendency the table is
// produced in decomposed mode with net, cumulative net and moving
// averages of the cumulative net; otherwise it gracefully degrades to
// totals-only and signals the mode so presentation can adapt.
func DecomposeVolume(deals []domain.Deal, productID int64, index []time.Time) *VolumeTable {
	byDay := dayIndexOf(index)

	totals := make([]float64, len(index))
	buys := make([]float64, len(index))
	sells := make([]float64, len(index))

	decomposable := len(deals) > 0
	for _, d := range deals {
		i, ok := byDay[d.Day()]
		if !ok {
			// Deal on a day outside the price index; the bar table
			// dropped it, so the volume table must too.
			continue
		}
		totals[i] += d.Quantity

		switch d.Tendency {
		case domain.TendencyBuy:
			buys[i] += d.Quantity
		case domain.TendencySell:
			sells[i] += d.Quantity
		default:
			decomposable = false
		}
	}

	table := &VolumeTable{
		ProductID: productID,
		Mode:      VolumeModeTotalsOnly,
		Rows:      make([]VolumeRow, len(index)),
	}
	for i, date := range index {
		table.Rows[i] = VolumeRow{Date: date, Total: totals[i]}
	}

	if !decomposable {
		return table
	}

	table.Mode = VolumeModeDecomposed

	nets := make([]float64, len(index))
	cumNets := make([]float64, len(index))
	var running float64
	for i := range index {
		nets[i] = buys[i] - sells[i]
		running += nets[i]
		cumNets[i] = running
	}

	ma10 := rollingMean(cumNets, ShortWindow)
	ma20 := rollingMean(cumNets, LongWindow)

	for i := range table.Rows {
		row := &table.Rows[i]
		row.Buy = floatPtr(buys[i])
		row.Sell = floatPtr(sells[i])
		row.Net = floatPtr(nets[i])
		row.CumulativeNet = floatPtr(cumNets[i])
		row.CumNetMA10 = ma10[i]
		row.CumNetMA20 = ma20[i]
	}

	return table
}
