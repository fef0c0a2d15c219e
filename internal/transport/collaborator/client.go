// Package collaborator is the HTTP client for the external recommendation service.
package collaborator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/recopanel/internal/domain"
	"github.com/kailas-cloud/recopanel/internal/domain/query"
	"github.com/kailas-cloud/recopanel/internal/domain/recommendation"
	"github.com/kailas-cloud/recopanel/internal/metrics"
)

const (
	endpointRecommend = "recommend"
	endpointHealth    = "health"

	// maxErrorBody bounds how much of a failed response is kept for diagnostics.
	maxErrorBody = 4 << 10
)

// Client talks to POST /recommend and GET /health of the recommendation service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Config holds the client settings.
type Config struct {
	BaseURL    string
	Timeout    time.Duration // 0 = no timeout
	HTTPClient *http.Client  // optional, overrides Timeout
	Logger     *zap.Logger
}

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status            string `json:"status"`
	AssessmentsLoaded int    `json:"assessments_loaded"`
}

// NewClient creates a recommendation service client.
func NewClient(cfg *Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: hc,
		logger:     logger,
	}
}

// BaseURL returns the service address without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// Recommend posts the payload and returns the items verbatim, in the order received.
// Transport failures and non-2xx answers wrap domain.ErrCollaboratorUnavailable;
// a body that is not a JSON array wraps domain.ErrMalformedResponse.
func (c *Client) Recommend(ctx context.Context, p query.Payload) ([]recommendation.Item, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	data, err := c.do(ctx, http.MethodPost, endpointRecommend, body)
	if err != nil {
		return nil, err
	}

	items, err := recommendation.DecodeList(data)
	if err != nil {
		metrics.CollaboratorErrorsTotal.WithLabelValues(endpointRecommend, "decode").Inc()
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedResponse, err)
	}

	c.logger.Debug("recommendations received",
		zap.String("kind", string(p.Kind())),
		zap.Int("items", len(items)),
	)
	return items, nil
}

// Health reads the service status.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	data, err := c.do(ctx, http.MethodGet, endpointHealth, nil)
	if err != nil {
		return HealthStatus{}, err
	}

	var hs HealthStatus
	if err := json.Unmarshal(data, &hs); err != nil {
		metrics.CollaboratorErrorsTotal.WithLabelValues(endpointHealth, "decode").Inc()
		return HealthStatus{}, fmt.Errorf("%w: decode health: %w", domain.ErrMalformedResponse, err)
	}
	return hs, nil
}

// HealthCheck implements health.CollaboratorChecker.
func (c *Client) HealthCheck(ctx context.Context) error {
	hs, err := c.Health(ctx)
	if err != nil {
		return err
	}
	if hs.Status != "" && hs.Status != "ok" {
		return fmt.Errorf("%w: reported status %q", domain.ErrCollaboratorUnavailable, hs.Status)
	}
	return nil
}

// do performs one request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, method, endpoint string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.CollaboratorRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CollaboratorRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		metrics.CollaboratorErrorsTotal.WithLabelValues(endpoint, "transport").Inc()
		return nil, fmt.Errorf("%w: %s %s: %w", domain.ErrCollaboratorUnavailable, method, endpoint, err)
	}
	defer resp.Body.Close()

	metrics.CollaboratorRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.CollaboratorErrorsTotal.WithLabelValues(endpoint, "status").Inc()
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, domain.NewStatusError(resp.StatusCode, extractDetail(raw))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.CollaboratorErrorsTotal.WithLabelValues(endpoint, "transport").Inc()
		return nil, fmt.Errorf("%w: read body: %w", domain.ErrCollaboratorUnavailable, err)
	}
	return data, nil
}

// extractDetail pulls "detail" out of a FastAPI-style error body, falling back to the raw text.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && len(parsed.Detail) > 0 {
		var s string
		if json.Unmarshal(parsed.Detail, &s) == nil {
			return s
		}
		return string(parsed.Detail)
	}
	return strings.TrimSpace(string(body))
}
