package dinerec

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	cleanedName string
	matrixName  string
	encoderName string

	defaultTopN int
	maxTopN     int

	redisAddrs    []string
	redisPassword string
	cacheTTL      time.Duration

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithFileNames overrides the artifact file names inside the directory.
// Empty names keep the defaults (cleaned_data.csv, encoded_data.csv, encoder.json).
func WithFileNames(cleaned, matrix, encoder string) Option {
	return optionFunc(func(c *clientConfig) {
		c.cleanedName = cleaned
		c.matrixName = matrix
		c.encoderName = encoder
	})
}

// WithTopN sets the result size used when Query.TopN is zero and the upper bound
// applied to every query. Defaults: 10 and 100.
func WithTopN(defaultTopN, maxTopN int) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultTopN = defaultTopN
		c.maxTopN = maxTopN
	})
}

// WithRedisCache caches ranked results in Redis for ttl.
// Cache failures never fail a query.
func WithRedisCache(addr, password string, ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.redisAddrs = []string{addr}
		c.redisPassword = password
		c.cacheTTL = ttl
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
