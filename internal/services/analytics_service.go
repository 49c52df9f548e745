package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"radarcli/internal/analytics"
	"radarcli/internal/config"
	"radarcli/internal/infrastructure"
	"radarcli/pkg/contracts/domain"
)

// ErrNoSession indicates that no analysis session has been loaded yet.
var ErrNoSession = errors.New("no analysis session loaded")

// VenueClient is the venue API surface the service depends on.
type VenueClient interface {
	Login(ctx context.Context) error
	WalletID(ctx context.Context) (int64, error)
	NegotiableTickers(ctx context.Context, walletID int64) ([]domain.Product, error)
	AllDeals(ctx context.Context, from, to time.Time) ([]domain.Deal, error)
}

// Session is one loaded analysis batch: the immutable deal collection,
// the product directory built from the venue listing, and the range it
// covers. Analytics read it without ever mutating it.
type Session struct {
	Deals     []domain.Deal
	Directory *analytics.Directory
	From      time.Time
	To        time.Time
	LoadedAt  time.Time
}

// ProductAnalysis bundles the price and volume tables of one product,
// computed off the same filtered deal series so their day indices match.
type ProductAnalysis struct {
	Bars   *analytics.BarTable    `json:"bars"`
	Volume *analytics.VolumeTable `json:"volume"`
}

// AnalyticsService orchestrates venue data loading and the analytics
// core. The session it holds is replaced wholesale on reload; analytics
// calls read a snapshot reference, so concurrent requests are safe.
type AnalyticsService struct {
	cfg    *config.Config
	venue  VenueClient
	logger *slog.Logger
	otel   *infrastructure.OTelProviders

	mu      sync.RWMutex
	session *Session
}

// NewAnalyticsService creates an analytics service.
func NewAnalyticsService(cfg *config.Config, venue VenueClient, logger *slog.Logger, otel *infrastructure.OTelProviders) *AnalyticsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalyticsService{
		cfg:    cfg,
		venue:  venue,
		logger: logger.With(slog.String("component", "analytics_service")),
		otel:   otel,
	}
}

// LoadSession logs into the venue and loads a fresh analysis batch for
// the given range. The directory listing and the deal report are
// fetched concurrently once the session is established.
func (s *AnalyticsService) LoadSession(ctx context.Context, from, to time.Time) error {
	s.logger.InfoContext(ctx, "loading analysis session",
		slog.Time("from", from),
		slog.Time("to", to))

	if err := s.venue.Login(ctx); err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	var (
		products []domain.Product
		deals    []domain.Deal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		walletID, err := s.venue.WalletID(gctx)
		if err != nil {
			return fmt.Errorf("wallet lookup: %w", err)
		}
		products, err = s.venue.NegotiableTickers(gctx, walletID)
		if err != nil {
			return fmt.Errorf("ticker listing: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		deals, err = s.venue.AllDeals(gctx, from, to)
		if err != nil {
			return fmt.Errorf("deal report: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	session := &Session{
		Deals:     deals,
		Directory: analytics.NewDirectory(products),
		From:      from,
		To:        to,
		LoadedAt:  time.Now(),
	}

	s.mu.Lock()
	s.session = session
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "analysis session loaded",
		slog.Int("deals", len(deals)),
		slog.Int("products", len(products)))

	return nil
}

// LoadDefaultSession loads the trailing configured lookback window.
func (s *AnalyticsService) LoadDefaultSession(ctx context.Context) error {
	to := time.Now()
	from := to.AddDate(0, 0, -s.cfg.Analysis.LookbackDays)
	return s.LoadSession(ctx, from, to)
}

// CurrentSession returns the loaded session, or ErrNoSession.
func (s *AnalyticsService) CurrentSession() (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil, ErrNoSession
	}
	return s.session, nil
}

// Products returns the selectable product listing, with the configured
// exclusions filtered out.
func (s *AnalyticsService) Products(ctx context.Context) ([]domain.Product, error) {
	session, err := s.CurrentSession()
	if err != nil {
		return nil, err
	}
	return session.Directory.Selectable(s.cfg.Analysis.ExcludedProducts), nil
}

// Summary builds the latest-session daily summary across all products.
func (s *AnalyticsService) Summary(ctx context.Context) (*analytics.DailySummary, error) {
	session, err := s.CurrentSession()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	summary, err := analytics.BuildDailySummary(session.Deals, session.Directory)
	s.record(ctx, "daily_summary", start, err)
	return summary, err
}

// ProductAnalysis computes the bar and volume tables for one product
// addressed by description.
func (s *AnalyticsService) ProductAnalysis(ctx context.Context, description string) (*ProductAnalysis, error) {
	session, err := s.CurrentSession()
	if err != nil {
		return nil, err
	}

	productID, ok := session.Directory.ResolveID(description)
	if !ok {
		return nil, &analytics.NotFoundError{Description: description}
	}

	start := time.Now()
	deals := analytics.MatchedActive(session.Deals, productID)

	bars, err := analytics.ResampleDaily(deals, productID, description)
	if err != nil {
		s.record(ctx, "product_analysis", start, err)
		return nil, err
	}

	volume := analytics.DecomposeVolume(deals, productID, bars.Dates())
	s.record(ctx, "product_analysis", start, nil)

	return &ProductAnalysis{Bars: bars, Volume: volume}, nil
}

// Spread computes the VWAP spread table for two products addressed by
// description.
func (s *AnalyticsService) Spread(ctx context.Context, first, second string) (*analytics.SpreadTable, error) {
	session, err := s.CurrentSession()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	table, err := analytics.CompareVWAP(session.Deals, session.Directory, first, second)
	s.record(ctx, "vwap_spread", start, err)
	return table, err
}

// record emits analysis metrics when telemetry is wired.
func (s *AnalyticsService) record(ctx context.Context, kind string, start time.Time, err error) {
	if s.otel == nil {
		return
	}
	s.otel.RecordAnalysis(ctx, kind, time.Since(start), err)
}
