// Package reccache caches ranked recommendation results in a key-value store.
package reccache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/dinerec/internal/db"
	"github.com/kailas-cloud/dinerec/internal/domain"
	"github.com/kailas-cloud/dinerec/internal/usecase/recommend"
)

const keySuffix = "rec_cache:"

// store is the consumer interface for the result cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// recommender is the decorated service.
type recommender interface {
	Recommend(ctx context.Context, q *domain.Query, topN int) ([]recommend.Result, error)
	Options(ctx context.Context) (recommend.Options, error)
	Fingerprint() string
}

// CachedRecommender serves repeated queries from the store.
// Keys include the dataset fingerprint, so new artifacts never see stale entries.
type CachedRecommender struct {
	inner      recommender
	store      store
	prefix     string
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner recommender,
	s store,
	prefix string,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedRecommender {
	return &CachedRecommender{
		inner:      inner,
		store:      s,
		prefix:     prefix + keySuffix,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// cachedResult is the stored form of one ranked row.
type cachedResult struct {
	RowID       int               `json:"row_id"`
	Name        string            `json:"name"`
	City        string            `json:"city"`
	Cuisine     string            `json:"cuisine"`
	Rating      float64           `json:"rating"`
	RatingCount int64             `json:"rating_count"`
	Cost        float64           `json:"cost"`
	Link        string            `json:"link"`
	Extra       map[string]string `json:"extra,omitempty"`
	Score       float64           `json:"score"`
}

// Recommend returns cached results or ranks through the inner service.
// Store failures are logged and treated as misses.
func (c *CachedRecommender) Recommend(ctx context.Context, q *domain.Query, topN int) ([]recommend.Result, error) {
	fp := c.inner.Fingerprint()
	if fp == "" {
		return c.inner.Recommend(ctx, q, topN)
	}
	key := c.cacheKey(fp, q, topN)

	if results, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return results, nil
	}

	c.incCache("miss")

	results, err := c.inner.Recommend(ctx, q, topN)
	if err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}

	c.putToCache(ctx, key, results)
	return results, nil
}

// Options is not cached: the inner service already precomputes it.
func (c *CachedRecommender) Options(ctx context.Context) (recommend.Options, error) {
	return c.inner.Options(ctx)
}

// Fingerprint returns the inner dataset fingerprint.
func (c *CachedRecommender) Fingerprint() string { return c.inner.Fingerprint() }

func (c *CachedRecommender) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

// cacheKey hashes every input that influences the ranking. Cuisine order is
// kept because the joined cuisine string is part of the encoded query row.
func (c *CachedRecommender) cacheKey(fp string, q *domain.Query, topN int) string {
	parts := []string{
		fp,
		q.City(),
		q.JoinedCuisines(),
		strconv.FormatFloat(q.MinRating(), 'g', -1, 64),
		strconv.FormatFloat(q.MaxCost(), 'g', -1, 64),
		strconv.Itoa(topN),
	}
	h := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	return c.prefix + hex.EncodeToString(h[:])
}

func (c *CachedRecommender) getFromCache(ctx context.Context, key string) ([]recommend.Result, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached recommendations", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}

	var stored []cachedResult
	if err := json.Unmarshal(data, &stored); err != nil {
		c.logger.Warn("Failed to parse cached recommendations", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	out := make([]recommend.Result, len(stored))
	for i, s := range stored {
		out[i] = recommend.Result{
			Record: domain.Record{
				RowID:       s.RowID,
				Name:        s.Name,
				City:        s.City,
				Cuisine:     s.Cuisine,
				Rating:      s.Rating,
				RatingCount: s.RatingCount,
				Cost:        s.Cost,
				Link:        s.Link,
				Extra:       s.Extra,
			},
			Score: s.Score,
		}
	}
	return out, true
}

func (c *CachedRecommender) putToCache(ctx context.Context, key string, results []recommend.Result) {
	stored := make([]cachedResult, len(results))
	for i, r := range results {
		stored[i] = cachedResult{
			RowID:       r.Record.RowID,
			Name:        r.Record.Name,
			City:        r.Record.City,
			Cuisine:     r.Record.Cuisine,
			Rating:      r.Record.Rating,
			RatingCount: r.Record.RatingCount,
			Cost:        r.Record.Cost,
			Link:        r.Record.Link,
			Extra:       r.Record.Extra,
			Score:       r.Score,
		}
	}

	data, err := json.Marshal(stored)
	if err != nil {
		c.logger.Warn("Failed to encode recommendations", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache recommendations", zap.String("key", key), zap.Error(err))
	}
}
