package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"radarcli/pkg/contracts/domain"
)

func TestResampleDaily_InsufficientData(t *testing.T) {
	deals := dealsOverDays(1, 1, MinDealsForBars-1, 100)

	table, err := ResampleDaily(deals, 1, "SE CON MEN JAN/25 - Preço Fixo")

	assert.Nil(t, table, "no partial table on insufficient data")
	var insufficient *InsufficientDataError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "SE CON MEN JAN/25 - Preço Fixo", insufficient.Description)
	assert.Equal(t, MinDealsForBars-1, insufficient.Have)
	assert.Equal(t, MinDealsForBars, insufficient.Need)
}

func TestResampleDaily_OHLCRule(t *testing.T) {
	day := tradingDay(3)
	deals := []domain.Deal{
		matchedDeal(1, day, 9, 105, 1, domain.TendencyBuy),  // first → open
		matchedDeal(1, day, 11, 120, 1, domain.TendencySell), // max → high
		matchedDeal(1, day, 14, 95, 1, domain.TendencyBuy),  // min → low
		matchedDeal(1, day, 17, 110, 1, domain.TendencySell), // last → close
	}
	// Pad with enough prior days to clear the minimum deal count.
	deals = append(deals, dealsOverDays(1, 10, 20, 100)...)

	table, err := ResampleDaily(deals, 1, "test product")
	require.NoError(t, err)

	require.NotEmpty(t, table.Bars)
	bar := table.Bars[0]
	assert.Equal(t, day, bar.Date)
	assert.Equal(t, 105.0, bar.Open)
	assert.Equal(t, 120.0, bar.High)
	assert.Equal(t, 95.0, bar.Low)
	assert.Equal(t, 110.0, bar.Close)
}

func TestResampleDaily_BarInvariant(t *testing.T) {
	// Multiple trades per day at varying prices; every produced bar must
	// satisfy low <= open <= high and low <= close <= high.
	var deals []domain.Deal
	prices := []float64{100, 130, 80, 115, 90, 125}
	for d := 1; d <= 12; d++ {
		for h, p := range prices {
			deals = append(deals, matchedDeal(1, tradingDay(d), 8+h, p+float64(d), 1, domain.TendencyBuy))
		}
	}

	table, err := ResampleDaily(deals, 1, "test product")
	require.NoError(t, err)
	require.Len(t, table.Bars, 12)

	for _, bar := range table.Bars {
		assert.LessOrEqual(t, bar.Low, bar.Open)
		assert.LessOrEqual(t, bar.Open, bar.High)
		assert.LessOrEqual(t, bar.Low, bar.Close)
		assert.LessOrEqual(t, bar.Close, bar.High)
	}
}

func TestResampleDaily_GapDaysDropped(t *testing.T) {
	// Trades on days 1-10 and 20-29 with a gap in between: the gap days
	// must be absent from the price index, not zero-filled.
	deals := dealsOverDays(1, 1, 10, 100)
	deals = append(deals, dealsOverDays(1, 20, 10, 110)...)

	table, err := ResampleDaily(deals, 1, "test product")
	require.NoError(t, err)

	require.Len(t, table.Bars, 20)
	assert.Equal(t, tradingDay(10), table.Bars[9].Date)
	assert.Equal(t, tradingDay(20), table.Bars[10].Date)
}

func TestResampleDaily_IndicatorWindows(t *testing.T) {
	deals := dealsOverDays(1, 1, 25, 100)

	table, err := ResampleDaily(deals, 1, "test product")
	require.NoError(t, err)
	require.Len(t, table.Bars, 25)

	// First window-1 bars carry nil indicators; they are never
	// back-filled.
	for i := 0; i < ShortWindow-1; i++ {
		assert.Nil(t, table.Bars[i].MA10, "bar %d", i)
		assert.Nil(t, table.Bars[i].BollingerUpper, "bar %d", i)
	}
	for i := 0; i < LongWindow-1; i++ {
		assert.Nil(t, table.Bars[i].MA20, "bar %d", i)
	}

	// Constant closes: MA equals the price, bands collapse onto it.
	last := table.Bars[24]
	require.NotNil(t, last.MA10)
	require.NotNil(t, last.MA20)
	require.NotNil(t, last.BollingerUpper)
	assert.InDelta(t, 100.0, *last.MA10, 1e-9)
	assert.InDelta(t, 100.0, *last.MA20, 1e-9)
	assert.InDelta(t, 100.0, *last.BollingerUpper, 1e-9)
	assert.InDelta(t, 100.0, *last.BollingerLower1Std, 1e-9)
}

func TestResampleDaily_LatestSnapshot(t *testing.T) {
	deals := dealsOverDays(1, 1, 25, 100)
	deals = append(deals, matchedDeal(1, tradingDay(26), 10, 140, 1, domain.TendencyBuy))

	table, err := ResampleDaily(deals, 1, "test product")
	require.NoError(t, err)

	assert.Equal(t, tradingDay(26), table.Latest.Date)
	assert.Equal(t, 140.0, table.Latest.Close)
	require.NotNil(t, table.Latest.MA10)
	assert.Equal(t, *table.Bars[len(table.Bars)-1].MA10, *table.Latest.MA10)
}

func TestResampleDaily_Idempotent(t *testing.T) {
	deals := dealsOverDays(1, 1, 30, 100)
	deals[5].UnitPrice = 130
	deals[17].UnitPrice = 85

	first, err := ResampleDaily(deals, 1, "test product")
	require.NoError(t, err)
	second, err := ResampleDaily(deals, 1, "test product")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
