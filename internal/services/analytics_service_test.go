package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"radarcli/internal/analytics"
	"radarcli/internal/config"
	"radarcli/pkg/contracts/domain"
)

type fakeVenue struct {
	products []domain.Product
	deals    []domain.Deal

	loginErr error
	dealsErr error

	loginCalls int
	dealCalls  int
}

func (f *fakeVenue) Login(ctx context.Context) error {
	f.loginCalls++
	return f.loginErr
}

func (f *fakeVenue) WalletID(ctx context.Context) (int64, error) {
	return 42, nil
}

func (f *fakeVenue) NegotiableTickers(ctx context.Context, walletID int64) ([]domain.Product, error) {
	return f.products, nil
}

func (f *fakeVenue) AllDeals(ctx context.Context, from, to time.Time) ([]domain.Deal, error) {
	f.dealCalls++
	if f.dealsErr != nil {
		return nil, f.dealsErr
	}
	return f.deals, nil
}

func testDay(d int) time.Time {
	return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
}

func matchedDeal(productID int64, day time.Time, hour int, price, qty float64, tendency domain.Tendency) domain.Deal {
	return domain.Deal{
		ProductID:     productID,
		CreatedAt:     day.Add(time.Duration(hour) * time.Hour),
		UnitPrice:     price,
		Quantity:      qty,
		Tendency:      tendency,
		OperationType: domain.OperationMatch,
		Status:        domain.DealStatusActive,
	}
}

func sampleBatch() ([]domain.Product, []domain.Deal) {
	products := []domain.Product{
		{ID: 1, Description: "CON ENE SE Fixed 2025"},
		{ID: 2, Description: "CON ENE SE Incentivized 2025"},
	}
	var deals []domain.Deal
	for d := 1; d <= 25; d++ {
		day := testDay(d)
		deals = append(deals,
			matchedDeal(1, day, 10, 100+float64(d), 5, domain.TendencyBuy),
			matchedDeal(1, day, 14, 101+float64(d), 3, domain.TendencySell),
			matchedDeal(2, day, 11, 90+float64(d), 4, domain.TendencyBuy),
		)
	}
	return products, deals
}

func newTestService(venue VenueClient) *AnalyticsService {
	cfg := config.Default()
	cfg.Analysis.ExcludedProducts = nil
	return NewAnalyticsService(cfg, venue, nil, nil)
}

func TestAnalyticsService_NoSession(t *testing.T) {
	svc := newTestService(&fakeVenue{})

	_, err := svc.Products(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = svc.Summary(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = svc.ProductAnalysis(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = svc.Spread(context.Background(), "a", "b")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestAnalyticsService_LoadSession(t *testing.T) {
	products, deals := sampleBatch()
	venue := &fakeVenue{products: products, deals: deals}
	svc := newTestService(venue)

	err := svc.LoadSession(context.Background(), testDay(1), testDay(25))
	require.NoError(t, err)
	assert.Equal(t, 1, venue.loginCalls)
	assert.Equal(t, 1, venue.dealCalls)

	session, err := svc.CurrentSession()
	require.NoError(t, err)
	assert.Len(t, session.Deals, len(deals))
	assert.Equal(t, 2, session.Directory.Len())
	assert.False(t, session.LoadedAt.IsZero())
}

func TestAnalyticsService_LoadSessionErrors(t *testing.T) {
	t.Run("login failure", func(t *testing.T) {
		venue := &fakeVenue{loginErr: errors.New("bad credentials")}
		svc := newTestService(venue)

		err := svc.LoadSession(context.Background(), testDay(1), testDay(2))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad credentials")
		assert.Equal(t, 0, venue.dealCalls)
	})

	t.Run("deal report failure keeps no session", func(t *testing.T) {
		venue := &fakeVenue{dealsErr: errors.New("report timeout")}
		svc := newTestService(venue)

		err := svc.LoadSession(context.Background(), testDay(1), testDay(2))
		require.Error(t, err)

		_, err = svc.CurrentSession()
		assert.ErrorIs(t, err, ErrNoSession)
	})
}

func TestAnalyticsService_Products(t *testing.T) {
	products, deals := sampleBatch()
	venue := &fakeVenue{products: products, deals: deals}
	svc := newTestService(venue)
	svc.cfg.Analysis.ExcludedProducts = []string{"CON ENE SE Incentivized 2025"}

	require.NoError(t, svc.LoadSession(context.Background(), testDay(1), testDay(25)))

	listed, err := svc.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "CON ENE SE Fixed 2025", listed[0].Description)
}

func TestAnalyticsService_ProductAnalysis(t *testing.T) {
	products, deals := sampleBatch()
	svc := newTestService(&fakeVenue{products: products, deals: deals})
	require.NoError(t, svc.LoadSession(context.Background(), testDay(1), testDay(25)))

	t.Run("known product", func(t *testing.T) {
		result, err := svc.ProductAnalysis(context.Background(), "CON ENE SE Fixed 2025")
		require.NoError(t, err)
		assert.Len(t, result.Bars.Bars, 25)
		assert.Equal(t, analytics.VolumeModeDecomposed, result.Volume.Mode)
		assert.Len(t, result.Volume.Rows, 25)
	})

	t.Run("lookup is case-insensitive", func(t *testing.T) {
		_, err := svc.ProductAnalysis(context.Background(), "con ene se fixed 2025")
		require.NoError(t, err)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := svc.ProductAnalysis(context.Background(), "CON ENE NE Fixed 2030")
		var notFound *analytics.NotFoundError
		require.ErrorAs(t, err, &notFound)
	})

	t.Run("insufficient trades", func(t *testing.T) {
		thin := []domain.Deal{matchedDeal(2, testDay(1), 10, 90, 1, domain.TendencyBuy)}
		svc := newTestService(&fakeVenue{products: products, deals: thin})
		require.NoError(t, svc.LoadSession(context.Background(), testDay(1), testDay(2)))

		_, err := svc.ProductAnalysis(context.Background(), "CON ENE SE Incentivized 2025")
		var insufficient *analytics.InsufficientDataError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, 1, insufficient.Have)
	})
}

func TestAnalyticsService_Spread(t *testing.T) {
	products, deals := sampleBatch()
	svc := newTestService(&fakeVenue{products: products, deals: deals})
	require.NoError(t, svc.LoadSession(context.Background(), testDay(1), testDay(25)))

	table, err := svc.Spread(context.Background(), "CON ENE SE Fixed 2025", "CON ENE SE Incentivized 2025")
	require.NoError(t, err)
	assert.Len(t, table.Raw, 25)
	assert.NotEmpty(t, table.Filtered)
}

func TestAnalyticsService_Summary(t *testing.T) {
	products, deals := sampleBatch()
	svc := newTestService(&fakeVenue{products: products, deals: deals})
	require.NoError(t, svc.LoadSession(context.Background(), testDay(1), testDay(25)))

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testDay(25), summary.Date)
	assert.Len(t, summary.Rows, 2)
}

func TestHealthService_Check(t *testing.T) {
	products, deals := sampleBatch()
	svc := newTestService(&fakeVenue{products: products, deals: deals})
	health := NewHealthService(svc)

	status := health.Check(context.Background())
	assert.Equal(t, "healthy", status.Status)
	assert.False(t, status.SessionLoaded)

	require.NoError(t, svc.LoadSession(context.Background(), testDay(1), testDay(25)))

	status = health.Check(context.Background())
	assert.True(t, status.SessionLoaded)
	assert.Equal(t, len(deals), status.Deals)
	assert.Equal(t, 2, status.Products)
}
