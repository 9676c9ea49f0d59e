package recommend

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/dinerec/internal/domain"
	logpkg "github.com/kailas-cloud/dinerec/internal/logger"
	"github.com/kailas-cloud/dinerec/internal/metrics"
)

// Service answers recommendation queries over one immutable Dataset.
// It holds no mutable state and is safe for concurrent use.
type Service struct {
	data        Dataset
	options     Options
	defaultTopN int
	maxTopN     int
}

// New creates a recommendation service. data may be nil, in which case every
// call fails with domain.ErrNotLoaded.
func New(data Dataset) *Service {
	s := &Service{
		data:        data,
		defaultTopN: domain.DefaultTopN,
		maxTopN:     domain.MaxTopN,
	}
	if data != nil {
		s.options = BuildOptions(data.Records())
	}
	return s
}

// WithLimits sets the default and the maximum result size.
func (s *Service) WithLimits(defaultTopN, maxTopN int) *Service {
	if defaultTopN > 0 {
		s.defaultTopN = defaultTopN
	}
	if maxTopN > 0 {
		s.maxTopN = maxTopN
	}
	return s
}

// Recommend ranks the dataset against q. topN <= 0 selects the default size.
func (s *Service) Recommend(ctx context.Context, q *domain.Query, topN int) ([]Result, error) {
	if s.data == nil {
		return nil, domain.ErrNotLoaded
	}
	start := time.Now()
	topN = domain.ClampTopN(topN, s.defaultTopN, s.maxTopN)

	results := Recommend(q, s.data.Encoder(), s.data.Matrix(), s.data.Records(), topN)

	outcome := "match"
	if len(results) == 0 {
		outcome = "empty"
	}
	metrics.RecommendRequestsTotal.WithLabelValues(outcome).Inc()
	metrics.RecommendResults.Observe(float64(len(results)))
	metrics.RecommendDuration.Observe(time.Since(start).Seconds())

	logpkg.FromContext(ctx).Debug("recommend",
		zap.String("city", q.City()),
		zap.Strings("cuisines", q.Cuisines()),
		zap.Int("top_n", topN),
		zap.Int("results", len(results)),
	)
	return results, nil
}

// Options returns the selectable filter values of the dataset.
func (s *Service) Options(_ context.Context) (Options, error) {
	if s.data == nil {
		return Options{}, domain.ErrNotLoaded
	}
	return s.options, nil
}

// Fingerprint identifies the loaded dataset; empty when nothing is loaded.
func (s *Service) Fingerprint() string {
	if s.data == nil {
		return ""
	}
	return s.data.Fingerprint()
}
