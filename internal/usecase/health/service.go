package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the cache is down but queries are still served.
	Degraded Status = "degraded"
	// Unhealthy indicates no dataset is loaded.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status      Status
	Checks      map[string]CheckResult
	Fingerprint string
}

// Service coordinates health checks.
type Service struct {
	dataset DatasetSource
	cache   CachePinger
}

// New creates a Service. cache can be nil when caching is disabled.
func New(dataset DatasetSource, cache CachePinger) *Service {
	return &Service{dataset: dataset, cache: cache}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	status := Healthy

	fp := ""
	if s.dataset != nil {
		fp = s.dataset.Fingerprint()
	}
	if fp == "" {
		checks["artifacts"] = CheckError
		status = Unhealthy
	} else {
		checks["artifacts"] = CheckOK
	}

	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			checks["cache"] = CheckError
			if status == Healthy {
				status = Degraded
			}
		} else {
			checks["cache"] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks, Fingerprint: fp}
}
