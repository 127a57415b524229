package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/psu-oas/alumni-dashboard/apps/api/internal/platform/metrics"
	"go.uber.org/zap"
)

const (
	DefaultOrgURL      = "https://api2.oas.psu.ac.th/api/count-alumni-major"
	DefaultLocationURL = "https://api2.oas.psu.ac.th/api/count-alumni-location"
	DefaultTimeout     = 15 * time.Second

	// detailLimit caps how much of an error body is echoed back to callers.
	detailLimit = 100
)

// HTTPClient matches net/http.Client Do signature for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	detail := e.Body
	if len(detail) > detailLimit {
		detail = detail[:detailLimit]
	}
	return fmt.Sprintf("Failed to fetch data from external API: Status %d. Details: %s...", e.StatusCode, detail)
}

// Config defines the upstream endpoints.
type Config struct {
	OrgURL      string
	LocationURL string
	Timeout     time.Duration
}

// Client fetches raw statistics bodies from the external API. It makes
// exactly one attempt per call.
type Client struct {
	httpClient  HTTPClient
	orgURL      string
	locationURL string
	logger      *zap.Logger
}

// New creates a Client. A nil httpClient gets a net/http client with cfg.Timeout.
func New(httpClient HTTPClient, cfg Config, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	orgURL := cfg.OrgURL
	if orgURL == "" {
		orgURL = DefaultOrgURL
	}
	locationURL := cfg.LocationURL
	if locationURL == "" {
		locationURL = DefaultLocationURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient:  httpClient,
		orgURL:      orgURL,
		locationURL: locationURL,
		logger:      logger,
	}
}

// OrgCounts fetches the faculty/major counts body.
func (c *Client) OrgCounts(ctx context.Context) ([]byte, error) {
	return c.get(ctx, "org", c.orgURL)
}

// LocationCounts fetches the province/district/tambon counts body.
func (c *Client) LocationCounts(ctx context.Context) ([]byte, error) {
	return c.get(ctx, "location", c.locationURL)
}

func (c *Client) get(ctx context.Context, source, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	start := time.Now()
	defer func() {
		metrics.UpstreamDurationMs.WithLabelValues(source).Observe(float64(time.Since(start).Milliseconds()))
	}()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(source, metrics.OutcomeTransportError).Inc()
		c.logger.Warn("upstream request failed", zap.String("source", source), zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(source, metrics.OutcomeTransportError).Inc()
		return nil, fmt.Errorf("read response from %s: %w", url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.UpstreamRequestsTotal.WithLabelValues(source, metrics.OutcomeStatusError).Inc()
		c.logger.Warn("upstream returned error status",
			zap.String("source", source),
			zap.Int("status", resp.StatusCode),
			zap.String("details", string(body)),
		)
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode, Body: string(body)}
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(source, metrics.OutcomeSuccess).Inc()
	c.logger.Debug("upstream response", zap.String("source", source), zap.Int("bytes", len(body)), zap.Duration("took", time.Since(start)))
	return body, nil
}
