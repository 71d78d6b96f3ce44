package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates an optional component is failing.
	Degraded Status = "degraded"
	// Unhealthy indicates the dataset is unusable.
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
	Status  Status
	Records int
	Checks  map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	dataset   DatasetInspector
	predictor PredictorChecker
}

// New creates a Service. predictor can be nil.
func New(dataset DatasetInspector, predictor PredictorChecker) *Service {
	return &Service{dataset: dataset, predictor: predictor}
}

// Check reports the dataset as failing when it holds no records
// and the predictor as failing when its provider is unreachable.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	status := Healthy

	records := s.dataset.Len()
	if records > 0 {
		checks["dataset"] = CheckOK
	} else {
		checks["dataset"] = CheckError
		status = Unhealthy
	}

	if s.predictor != nil {
		if err := s.predictor.HealthCheck(ctx); err != nil {
			checks["predictor"] = CheckError
			if status == Healthy {
				status = Degraded
			}
		} else {
			checks["predictor"] = CheckOK
		}
	}

	return Report{Status: status, Records: records, Checks: checks}
}
