package services

import (
	"context"
	"time"
)

// HealthStatus is the health endpoint payload.
type HealthStatus struct {
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	Uptime        string    `json:"uptime"`
	SessionLoaded bool      `json:"session_loaded"`
	SessionAge    string    `json:"session_age,omitempty"`
	Deals         int       `json:"deals,omitempty"`
	Products      int       `json:"products,omitempty"`
}

// HealthService reports process liveness and session freshness.
type HealthService struct {
	analytics *AnalyticsService
	startedAt time.Time
}

// NewHealthService creates a health service.
func NewHealthService(analytics *AnalyticsService) *HealthService {
	return &HealthService{
		analytics: analytics,
		startedAt: time.Now(),
	}
}

// Check assembles the current health snapshot. A missing session is
// reported, not treated as unhealthy: the process can still reload.
func (h *HealthService) Check(ctx context.Context) *HealthStatus {
	status := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now(),
		Uptime:    time.Since(h.startedAt).Round(time.Second).String(),
	}

	session, err := h.analytics.CurrentSession()
	if err != nil {
		return status
	}

	status.SessionLoaded = true
	status.SessionAge = time.Since(session.LoadedAt).Round(time.Second).String()
	status.Deals = len(session.Deals)
	status.Products = session.Directory.Len()
	return status
}
