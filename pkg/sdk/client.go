package dinerec

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/dinerec/internal/dataset"
	dbRedis "github.com/kailas-cloud/dinerec/internal/db/redis"
	"github.com/kailas-cloud/dinerec/internal/domain"
	"github.com/kailas-cloud/dinerec/internal/repository/artifact"
	"github.com/kailas-cloud/dinerec/internal/repository/reccache"
	healthuc "github.com/kailas-cloud/dinerec/internal/usecase/health"
	"github.com/kailas-cloud/dinerec/internal/usecase/preprocess"
	"github.com/kailas-cloud/dinerec/internal/usecase/recommend"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	cacheKeyPrefix          = "dinerec:sdk:"
)

// recommender is the internal query interface, swappable in tests.
type recommender interface {
	Recommend(ctx context.Context, q *domain.Query, topN int) ([]recommend.Result, error)
	Options(ctx context.Context) (recommend.Options, error)
	Fingerprint() string
}

// healthUseCase is the internal interface for health checks.
type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client answers recommendation queries over one loaded artifact directory.
type Client struct {
	rec       recommender
	healthSvc healthUseCase
	closeFn   func()
	obs       *observer
}

// Open loads the artifacts in dir and returns a ready Client.
// The provided context bounds the cache readiness check.
func Open(ctx context.Context, dir string, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	bundle, err := artifact.Load(dir, cfg.names())
	obs.observe("open", start, err, "dir", dir)
	if err != nil {
		return nil, fmt.Errorf("dinerec: load artifacts: %w", err)
	}

	svc := recommend.New(bundle).WithLimits(cfg.defaultTopN, cfg.maxTopN)
	c := &Client{rec: svc, closeFn: func() {}, obs: obs}

	if len(cfg.redisAddrs) == 0 {
		c.healthSvc = healthuc.New(bundle, nil)
		return c, nil
	}

	store, err := dbRedis.NewStore(dbRedis.Config{Addrs: cfg.redisAddrs, Password: cfg.redisPassword})
	if err != nil {
		return nil, fmt.Errorf("dinerec: create redis store: %w", err)
	}
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("dinerec: cache not ready: %w", err)
	}
	// Cache failures degrade to misses; the SDK reports through slog, not zap.
	c.rec = reccache.New(svc, store, cacheKeyPrefix, cfg.cacheTTL, nil, zap.NewNop())
	c.healthSvc = healthuc.New(bundle, store)
	c.closeFn = store.Close
	return c, nil
}

func (c *clientConfig) names() artifact.Names {
	return artifact.Names{Cleaned: c.cleanedName, Matrix: c.matrixName, Encoder: c.encoderName}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.closeFn != nil {
		c.closeFn()
	}
}

// Recommend returns up to q.TopN restaurants in q.City sharing a cuisine with
// q.Cuisines, best match first. No match yields an empty slice.
func (c *Client) Recommend(ctx context.Context, q Query) (_ []Restaurant, err error) {
	start := time.Now()
	defer func() { c.obs.observe("recommend", start, err, "city", q.City) }()

	if q.TopN < 0 {
		return nil, fmt.Errorf("%w: top_n must not be negative", ErrInvalidQuery)
	}
	dq, err := domain.NewQuery(q.City, q.Cuisines, q.MinRating, q.MaxCost)
	if err != nil {
		return nil, err
	}

	results, err := c.rec.Recommend(ctx, &dq, q.TopN)
	if err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}

	out := make([]Restaurant, len(results))
	for i, r := range results {
		out[i] = Restaurant{
			RowID:       r.Record.RowID,
			Name:        r.Record.Name,
			City:        r.Record.City,
			Cuisine:     r.Record.Cuisine,
			Rating:      r.Record.Rating,
			RatingCount: r.Record.RatingCount,
			Cost:        r.Record.Cost,
			Link:        r.Record.Link,
			Score:       r.Score,
		}
	}
	return out, nil
}

// Options returns the selectable cities, cuisines and cost range.
func (c *Client) Options(ctx context.Context) (_ Options, err error) {
	start := time.Now()
	defer func() { c.obs.observe("options", start, err) }()

	o, err := c.rec.Options(ctx)
	if err != nil {
		return Options{}, fmt.Errorf("options: %w", err)
	}
	return Options{
		Cities:     o.Cities,
		Cuisines:   o.Cuisines,
		CostMin:    o.CostMin,
		CostMax:    o.CostMax,
		CostMedian: o.CostMedian,
	}, nil
}

// Health checks the loaded dataset and, when configured, the cache.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status:      string(report.Status),
		Checks:      checks,
		Fingerprint: report.Fingerprint,
	}
}

// Fingerprint identifies the loaded artifacts.
func (c *Client) Fingerprint() string { return c.rec.Fingerprint() }

// Preprocess cleans and encodes the raw listing at input (.csv or .parquet) and
// writes the artifacts into dir. Nothing is written on failure.
// Only WithFileNames, WithLogger and WithPrometheus apply.
func Preprocess(ctx context.Context, input, dir string, opts ...Option) (_ Summary, err error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}
	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return Summary{}, err
	}
	start := time.Now()
	defer func() { obs.observe("preprocess", start, err, "input", input) }()

	if input == "" {
		return Summary{}, errors.New("dinerec: input path required")
	}

	sum, err := preprocess.New(dataset.Load, zap.NewNop()).Run(ctx, input, dir, cfg.names())
	if err != nil {
		return Summary{}, fmt.Errorf("dinerec: %w", err)
	}
	return Summary{
		RowsIn:      sum.Clean.RowsIn,
		Rows:        sum.Clean.RowsOut,
		Duplicates:  sum.Clean.Duplicates,
		Sentinels:   sum.Clean.Sentinels,
		Imputed:     sum.Clean.Imputed,
		Features:    sum.Width,
		CleanedPath: sum.Paths.Cleaned,
		MatrixPath:  sum.Paths.Matrix,
		EncoderPath: sum.Paths.Encoder,
	}, nil
}
