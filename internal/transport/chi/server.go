package chi

import (
	"context"
	"errors"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/dinerec/internal/domain"
	logpkg "github.com/kailas-cloud/dinerec/internal/logger"
	healthuc "github.com/kailas-cloud/dinerec/internal/usecase/health"
	"github.com/kailas-cloud/dinerec/internal/usecase/recommend"
)

const (
	maxBodyBytes     = 1 << 20
	defaultMinRating = 3.5
)

// Recommender answers queries over the loaded dataset.
type Recommender interface {
	Recommend(ctx context.Context, q *domain.Query, topN int) ([]recommend.Result, error)
	Options(ctx context.Context) (recommend.Options, error)
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the recommendation API.
type Server struct {
	recommender   Recommender
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(recommender Recommender, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		recommender: recommender,
		health:      health,
		logger:      logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrNotLoaded, http.StatusServiceUnavailable, ErrorCodeNotLoaded),
	}
	return s
}

// Routes registers the API on r.
func (s *Server) Routes(r chi.Router) {
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, ErrorCodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrorCodeMethodNotAllowed, "method not allowed")
	})

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/recommendations", s.Recommend)
		r.Get("/options", s.GetOptions)
	})
}

// Recommend handles POST /api/v1/recommendations.
func (s *Server) Recommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	minRating := defaultMinRating
	if req.MinRating != nil {
		minRating = *req.MinRating
	}

	var maxCost float64
	if req.MaxCost != nil {
		maxCost = *req.MaxCost
	} else {
		opts, err := s.recommender.Options(r.Context())
		if err != nil {
			s.handleDomainError(w, err)
			return
		}
		maxCost = math.Trunc(opts.CostMedian)
	}

	q, err := domain.NewQuery(req.City, req.Cuisines, minRating, maxCost)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		return
	}

	topN := 0
	if req.TopN != nil {
		if *req.TopN <= 0 {
			writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "top_n must be positive")
			return
		}
		topN = *req.TopN
	}

	results, err := s.recommender.Recommend(r.Context(), &q, topN)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]RecommendationItem, len(results))
	for i := range results {
		items[i] = resultToItem(&results[i])
	}
	logpkg.FromContext(r.Context()).Debug("recommendations served",
		zap.String("city", q.City()),
		zap.Int("count", len(items)),
	)
	writeJSON(w, http.StatusOK, RecommendResponse{Items: items, Count: len(items)})
}

// GetOptions handles GET /api/v1/options.
func (s *Server) GetOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := s.recommender.Options(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, OptionsResponse{
		Cities:   nonNil(opts.Cities),
		Cuisines: nonNil(opts.Cuisines),
		Cost: CostRange{
			Min:    opts.CostMin,
			Max:    opts.CostMax,
			Median: opts.CostMedian,
		},
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:      string(report.Status),
		Checks:      checks,
		Fingerprint: report.Fingerprint,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func resultToItem(r *recommend.Result) RecommendationItem {
	return RecommendationItem{
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

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidQuery,
		domain.ErrNotLoaded,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
