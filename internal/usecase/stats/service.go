package stats

import (
	"context"

	"github.com/kailas-cloud/careercompass/internal/domain/career"
	domstats "github.com/kailas-cloud/careercompass/internal/domain/stats"
)

// Service serves the dataset summary computed once at construction.
type Service struct {
	summary domstats.Summary
}

// New computes the summary of snap. topN <= 0 uses domstats.DefaultTopN.
func New(snap career.Snapshot, topN int) *Service {
	if topN <= 0 {
		topN = domstats.DefaultTopN
	}
	return &Service{summary: domstats.Compute(snap, topN)}
}

// Summary returns the precomputed summary.
func (s *Service) Summary(_ context.Context) domstats.Summary {
	return s.summary
}
