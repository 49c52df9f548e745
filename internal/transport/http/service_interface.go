package http

import (
	"context"
	"time"

	"radarcli/internal/analytics"
	"radarcli/internal/services"
	"radarcli/pkg/contracts/domain"
)

// AnalyticsServiceInterface is the service surface the handlers need.
// Defined here so tests can substitute a fake without touching the
// real venue client.
type AnalyticsServiceInterface interface {
	LoadSession(ctx context.Context, from, to time.Time) error
	LoadDefaultSession(ctx context.Context) error
	CurrentSession() (*services.Session, error)
	Products(ctx context.Context) ([]domain.Product, error)
	Summary(ctx context.Context) (*analytics.DailySummary, error)
	ProductAnalysis(ctx context.Context, description string) (*services.ProductAnalysis, error)
	Spread(ctx context.Context, first, second string) (*analytics.SpreadTable, error)
}

// HealthServiceInterface reports process and session health.
type HealthServiceInterface interface {
	Check(ctx context.Context) *services.HealthStatus
}
