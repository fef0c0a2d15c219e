package recopanel

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kailas-cloud/recopanel/internal/config"
	"github.com/kailas-cloud/recopanel/internal/domain/query"
	"github.com/kailas-cloud/recopanel/internal/domain/recommendation"
	"github.com/kailas-cloud/recopanel/internal/transport/collaborator"
	healthuc "github.com/kailas-cloud/recopanel/internal/usecase/health"
)

// Internal interfaces so tests can swap the service out.
type recommender interface {
	Recommend(ctx context.Context, p query.Payload) ([]recommendation.Item, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the SDK entry point.
type Client struct {
	baseURL   string
	rec       recommender
	healthSvc healthUseCase
	obs       *observer
}

// Recommendation is one suggested assessment.
type Recommendation struct {
	Name  string
	Score float64 // conventionally in [0,1]; NaN when the service sent none
	URL   string
}

// ScoreLabel renders the score the way the panel shows it, e.g. "87%".
func (r Recommendation) ScoreLabel() string {
	return recommendation.FormatScore(r.Score)
}

// New creates a Client. No connection is made until the first call.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{baseURL: config.DefaultBaseURL}
	for _, o := range opts {
		o.apply(cfg)
	}

	base := strings.TrimRight(cfg.baseURL, "/")
	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("recopanel: invalid base URL %q", cfg.baseURL)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	collab := collaborator.NewClient(&collaborator.Config{
		BaseURL:    base,
		Timeout:    cfg.timeout,
		HTTPClient: cfg.httpClient,
	})

	return &Client{
		baseURL:   base,
		rec:       collab,
		healthSvc: healthuc.New(collab, nil),
		obs:       obs,
	}, nil
}

// BaseURL returns the service address without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// Recommend submits raw and returns the recommendations in the order the
// service sent them. A blank query returns ErrEmptyQuery without a call.
func (c *Client) Recommend(ctx context.Context, raw string) (recs []Recommendation, err error) {
	start := time.Now()
	kind := "none"
	defer func() { c.obs.observe("recommend", start, err, "kind", kind, "results", len(recs)) }()

	if query.IsBlank(raw) {
		return nil, ErrEmptyQuery
	}
	p := query.Classify(raw)
	kind = string(p.Kind())

	items, err := c.rec.Recommend(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}

	recs = make([]Recommendation, len(items))
	for i, it := range items {
		recs[i] = Recommendation{Name: it.Name, Score: it.Score, URL: it.URL}
	}
	c.obs.results(len(recs))
	return recs, nil
}
