package health

import "context"

// DatasetInspector reports the size of the loaded snapshot.
type DatasetInspector interface {
	Len() int
}

// PredictorChecker checks embedding provider availability.
type PredictorChecker interface {
	HealthCheck(ctx context.Context) error
}
