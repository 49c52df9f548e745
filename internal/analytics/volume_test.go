package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"radarcli/pkg/contracts/domain"
)

func TestDecomposeVolume_IndexAlignment(t *testing.T) {
	// Price index includes day 2 but the product only traded on days 1
	// and 3: day 2 must appear with a true zero, not be dropped.
	index := []time.Time{tradingDay(1), tradingDay(2), tradingDay(3)}
	deals := []domain.Deal{
		matchedDeal(1, tradingDay(1), 10, 100, 5, domain.TendencyBuy),
		matchedDeal(1, tradingDay(3), 10, 100, 7, domain.TendencySell),
	}

	table := DecomposeVolume(deals, 1, index)

	require.Len(t, table.Rows, len(index))
	for i, row := range table.Rows {
		assert.Equal(t, index[i], row.Date, "row %d", i)
	}
	assert.Equal(t, 5.0, table.Rows[0].Total)
	assert.Equal(t, 0.0, table.Rows[1].Total)
	assert.Equal(t, 7.0, table.Rows[2].Total)
}

func TestDecomposeVolume_DecomposedMode(t *testing.T) {
	index := []time.Time{tradingDay(1), tradingDay(2)}
	deals := []domain.Deal{
		matchedDeal(1, tradingDay(1), 9, 100, 10, domain.TendencyBuy),
		matchedDeal(1, tradingDay(1), 11, 100, 4, domain.TendencySell),
		matchedDeal(1, tradingDay(2), 10, 100, 3, domain.TendencySell),
	}

	table := DecomposeVolume(deals, 1, index)

	assert.Equal(t, VolumeModeDecomposed, table.Mode)

	day1 := table.Rows[0]
	require.NotNil(t, day1.Buy)
	require.NotNil(t, day1.Sell)
	require.NotNil(t, day1.Net)
	assert.Equal(t, 10.0, *day1.Buy)
	assert.Equal(t, 4.0, *day1.Sell)
	assert.Equal(t, 6.0, *day1.Net)
	require.NotNil(t, day1.CumulativeNet)
	assert.Equal(t, 6.0, *day1.CumulativeNet)

	day2 := table.Rows[1]
	require.NotNil(t, day2.CumulativeNet)
	assert.Equal(t, 3.0, *day2.CumulativeNet) // 6 + (0-3)
}

func TestDecomposeVolume_TotalsOnlyFallback(t *testing.T) {
	index := []time.Time{tradingDay(1)}

	tests := []struct {
		name  string
		deals []domain.Deal
	}{
		{
			name: "unknown tendency value",
			deals: []domain.Deal{
				matchedDeal(1, tradingDay(1), 9, 100, 10, domain.TendencyBuy),
				matchedDeal(1, tradingDay(1), 10, 100, 2, domain.Tendency("Indefinido")),
			},
		},
		{
			name: "missing tendency",
			deals: []domain.Deal{
				matchedDeal(1, tradingDay(1), 9, 100, 10, ""),
			},
		},
		{
			name:  "no deals at all",
			deals: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := DecomposeVolume(tt.deals, 1, index)

			// Degraded mode is a signal, not an error: the total series
			// is still produced on the full index.
			assert.Equal(t, VolumeModeTotalsOnly, table.Mode)
			require.Len(t, table.Rows, 1)
			assert.Nil(t, table.Rows[0].Buy)
			assert.Nil(t, table.Rows[0].Net)
			assert.Nil(t, table.Rows[0].CumulativeNet)
		})
	}
}

func TestDecomposeVolume_CumulativeNetMovingAverages(t *testing.T) {
	index := make([]time.Time, 25)
	var deals []domain.Deal
	for i := range index {
		index[i] = tradingDay(1 + i)
		deals = append(deals, matchedDeal(1, index[i], 10, 100, 2, domain.TendencyBuy))
	}

	table := DecomposeVolume(deals, 1, index)
	require.Equal(t, VolumeModeDecomposed, table.Mode)

	for i := 0; i < ShortWindow-1; i++ {
		assert.Nil(t, table.Rows[i].CumNetMA10, "row %d", i)
	}
	// Cumulative net grows by 2 each day; the MA10 at row 9 averages
	// 2,4,...,20 = 11.
	require.NotNil(t, table.Rows[ShortWindow-1].CumNetMA10)
	assert.InDelta(t, 11.0, *table.Rows[ShortWindow-1].CumNetMA10, 1e-9)

	require.NotNil(t, table.Rows[LongWindow-1].CumNetMA20)
}

func TestDecomposeVolume_DealOutsidePriceIndex(t *testing.T) {
	// A trade on a day the bar table dropped must not leak into the
	// volume table.
	index := []time.Time{tradingDay(1)}
	deals := []domain.Deal{
		matchedDeal(1, tradingDay(1), 10, 100, 5, domain.TendencyBuy),
		matchedDeal(1, tradingDay(2), 10, 100, 9, domain.TendencyBuy),
	}

	table := DecomposeVolume(deals, 1, index)

	require.Len(t, table.Rows, 1)
	assert.Equal(t, 5.0, table.Rows[0].Total)
}
