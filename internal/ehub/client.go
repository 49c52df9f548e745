// Package ehub implements the trading-venue REST API client: session
// login, token refresh on expiry, wallet and negotiable-ticker lookup,
// and all-deals report retrieval. The analytics core never talks to the
// venue directly; it consumes the batches this client returns.
package ehub

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"radarcli/internal/config"
	"radarcli/pkg/contracts/domain"
)

const (
	loginPath    = "bus/v2/login"
	refreshPath  = "bus/v1/refresh-token"
	walletsPath  = "bus/v1/wallets"
	tickersPath  = "bus/v1/negotiable-tickers"
	allDealsPath = "bus/v1/all-deals/report"

	dateFormat = "2006-01-02"
)

// Client is a session-holding venue API client. It is safe for
// concurrent use; the bearer token is refreshed at most once per
// expired call and calls are paced by a client-side rate limiter.
type Client struct {
	http    *resty.Client
	cfg     config.VenueConfig
	logger  *slog.Logger
	limiter *rate.Limiter

	mu           sync.RWMutex
	idToken      string
	refreshToken string
}

// NewClient creates a venue client from configuration.
func NewClient(cfg config.VenueConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetHeader("Accept", "application/json").
		SetHeader("apiKey", cfg.APIKey)

	return &Client{
		http:    httpClient,
		cfg:     cfg,
		logger:  logger.With(slog.String("component", "ehub_client")),
		limiter: rate.NewLimiter(rate.Limit(cfg.RPS), 1),
	}
}

// Login authenticates against the venue and stores the session tokens.
func (c *Client) Login(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var result loginResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(loginRequest{
			CompanyExternalCode: c.cfg.CompanyCode,
			Email:               c.cfg.Email,
			Password:            c.cfg.Password,
		}).
		SetResult(&result).
		Post(loginPath)
	if err != nil {
		return fmt.Errorf("venue login: %w", err)
	}
	if resp.IsError() || result.IDToken == "" {
		return fmt.Errorf("venue login failed: status %d: %s", resp.StatusCode(), result.Message)
	}

	c.mu.Lock()
	c.idToken = result.IDToken
	c.refreshToken = result.RefreshToken
	c.mu.Unlock()

	c.logger.InfoContext(ctx, "venue session established",
		slog.Int64("user_id", result.UserID),
		slog.String("company_id", result.CompanyID))

	return nil
}

// Refresh exchanges the stored refresh token for a new bearer token.
func (c *Client) Refresh(ctx context.Context) error {
	c.mu.RLock()
	token, refresh := c.idToken, c.refreshToken
	c.mu.RUnlock()

	if refresh == "" {
		return fmt.Errorf("no refresh token; login required")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var result refreshResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(refreshRequest{RefreshToken: refresh}).
		SetResult(&result).
		Post(refreshPath)
	if err != nil {
		return fmt.Errorf("refresh token: %w", err)
	}
	if resp.IsError() || result.IDToken == "" {
		return fmt.Errorf("refresh token rejected: status %d: %s", resp.StatusCode(), result.Message)
	}

	c.mu.Lock()
	c.idToken = result.IDToken
	c.mu.Unlock()

	c.logger.InfoContext(ctx, "venue token refreshed")
	return nil
}

// WalletID returns the session's first wallet identifier.
func (c *Client) WalletID(ctx context.Context) (int64, error) {
	var wallets []walletResponse
	if err := c.get(ctx, walletsPath, nil, &wallets); err != nil {
		return 0, err
	}
	if len(wallets) == 0 {
		return 0, fmt.Errorf("venue returned no wallets")
	}
	return wallets[0].ID, nil
}

// NegotiableTickers returns the products negotiable under a wallet.
func (c *Client) NegotiableTickers(ctx context.Context, walletID int64) ([]domain.Product, error) {
	var result tickersResponse
	params := map[string]string{"walletId": fmt.Sprintf("%d", walletID)}
	if err := c.get(ctx, tickersPath, params, &result); err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(result.Tickers))
	for _, t := range result.Tickers {
		products = append(products, domain.Product{ID: t.ID, Description: t.Description})
	}
	return products, nil
}

// AllDeals returns every deal record the venue reports between the two
// dates, inclusive.
func (c *Client) AllDeals(ctx context.Context, from, to time.Time) ([]domain.Deal, error) {
	var entries []dealEntry
	params := map[string]string{
		"initialPeriod": from.Format(dateFormat),
		"finalPeriod":   to.Format(dateFormat),
	}
	if err := c.get(ctx, allDealsPath, params, &entries); err != nil {
		return nil, err
	}

	deals := make([]domain.Deal, 0, len(entries))
	for _, e := range entries {
		deals = append(deals, e.toDomain())
	}

	c.logger.InfoContext(ctx, "deal batch fetched",
		slog.Time("from", from),
		slog.Time("to", to),
		slog.Int("deals", len(deals)))

	return deals, nil
}

// get performs an authenticated GET, refreshing the bearer token and
// retrying once when the venue rejects it as expired.
func (c *Client) get(ctx context.Context, path string, params map[string]string, out interface{}) error {
	resp, err := c.doGet(ctx, path, params, out)
	if err != nil {
		return err
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		c.logger.WarnContext(ctx, "venue token expired, refreshing", slog.String("path", path))
		if err := c.Refresh(ctx); err != nil {
			return err
		}
		resp, err = c.doGet(ctx, path, params, out)
		if err != nil {
			return err
		}
	}

	if resp.IsError() {
		return fmt.Errorf("venue GET %s: status %d", path, resp.StatusCode())
	}
	return nil
}

func (c *Client) doGet(ctx context.Context, path string, params map[string]string, out interface{}) (*resty.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	c.mu.RLock()
	token := c.idToken
	c.mu.RUnlock()

	req := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(out)
	if params != nil {
		req.SetQueryParams(params)
	}

	resp, err := req.Get(path)
	if err != nil {
		return nil, fmt.Errorf("venue GET %s: %w", path, err)
	}
	return resp, nil
}
