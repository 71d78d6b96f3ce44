package careercompass

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/careercompass/internal/app"
	domcareer "github.com/kailas-cloud/careercompass/internal/domain/career"
	"github.com/kailas-cloud/careercompass/internal/domain/prediction"
	careeruc "github.com/kailas-cloud/careercompass/internal/usecase/career"
	predictuc "github.com/kailas-cloud/careercompass/internal/usecase/predict"
	searchuc "github.com/kailas-cloud/careercompass/internal/usecase/search"
	statsuc "github.com/kailas-cloud/careercompass/internal/usecase/stats"
)

// Client is the careercompass SDK entry point.
type Client struct {
	snap    domcareer.Snapshot
	careers *careeruc.Service
	search  *searchuc.Service
	stats   *statsuc.Service
	predict *predictuc.Service
	obs     *observer
}

// New loads the dataset and creates a Client.
// The provided context bounds the load.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.dataset.Driver == "" {
		return nil, fmt.Errorf("careercompass: dataset required (use WithCSV, WithParquet or WithRedis)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	snap, err := app.LoadSnapshot(ctx, cfg.dataset, zap.NewNop())
	obs.loaded(start, snap.Source(), snap.Len(), snap.Duplicates(), err)
	if err != nil {
		return nil, fmt.Errorf("careercompass: %w", err)
	}

	return wireClient(snap, cfg, obs), nil
}

func wireClient(snap domcareer.Snapshot, cfg *clientConfig, obs *observer) *Client {
	var emb prediction.Embedder
	if cfg.embedder != nil {
		emb = adaptEmbedder(cfg.embedder)
	}

	return &Client{
		snap:    snap,
		careers: careeruc.New(snap),
		search:  searchuc.New(snap),
		stats:   statsuc.New(snap, cfg.topN),
		predict: predictuc.New(snap, nil, emb, cfg.topK),
		obs:     obs,
	}
}

// Len returns the number of loaded careers.
func (c *Client) Len() int { return c.snap.Len() }

// Source describes where the dataset was read from.
func (c *Client) Source() string { return c.snap.Source() }

// List returns every career in dataset order.
func (c *Client) List(ctx context.Context) []Career {
	return wrapCareers(c.careers.List(ctx))
}

// Fields returns the dataset columns in header order.
func (c *Client) Fields(ctx context.Context) []string {
	return c.careers.Fields(ctx)
}

// Get finds a career by role, ignoring case.
func (c *Client) Get(ctx context.Context, role string) (_ Career, err error) {
	start := time.Now()
	defer func() { c.obs.observe(opGet, start, err, slog.String("role", role)) }()

	rec, err := c.careers.Get(ctx, role)
	if err != nil {
		return Career{}, fmt.Errorf("get career: %w", err)
	}
	return Career{rec: rec}, nil
}

// Search runs the keyword query and filters.
func (c *Client) Search(ctx context.Context, q Query) (res SearchResult, err error) {
	start := time.Now()
	defer func() { c.obs.searched(start, q.Text, res.Total, err) }()

	req, err := searchuc.BuildRequest(searchuc.Params{
		Query:   q.Text,
		Domain:  q.Domain,
		Skill:   q.Skill,
		Filters: q.Filters,
	})
	if err != nil {
		return SearchResult{}, fmt.Errorf("search: %w", err)
	}

	records, err := c.search.Search(ctx, &req)
	if err != nil {
		return SearchResult{}, fmt.Errorf("search: %w", err)
	}
	return SearchResult{Items: wrapCareers(records), Total: len(records), Query: req.Query()}, nil
}

// Stats returns the dataset summary.
func (c *Client) Stats(ctx context.Context) Stats {
	return c.stats.Summary(ctx)
}

// Predict returns the role nearest to profile. Requires WithEmbedder.
func (c *Client) Predict(ctx context.Context, profile string) (_ Prediction, err error) {
	start := time.Now()
	defer func() { c.obs.observe(opPredict, start, err, slog.Int("profile_bytes", len(profile))) }()

	p, err := c.predict.Predict(ctx, profile)
	if err != nil {
		return Prediction{}, fmt.Errorf("predict: %w", err)
	}
	return p, nil
}
