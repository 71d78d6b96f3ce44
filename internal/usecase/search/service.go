package search

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/careercompass/internal/domain"
	domcareer "github.com/kailas-cloud/careercompass/internal/domain/career"
	"github.com/kailas-cloud/careercompass/internal/domain/search/filter"
	"github.com/kailas-cloud/careercompass/internal/domain/search/match"
	"github.com/kailas-cloud/careercompass/internal/domain/search/request"
	"github.com/kailas-cloud/careercompass/internal/logger"
	"github.com/kailas-cloud/careercompass/internal/metrics"
)

// Service runs keyword search and field filters over the snapshot.
type Service struct {
	catalog Catalog
}

// New creates a search service.
func New(catalog Catalog) *Service {
	return &Service{catalog: catalog}
}

// Search applies the free-text query, then every filter condition.
// A condition on a column the dataset does not have fails the whole request.
func (s *Service) Search(ctx context.Context, req *request.Request) ([]domcareer.Record, error) {
	if err := s.validateFilters(req.Filters()); err != nil {
		return nil, err
	}

	results := match.Apply(s.catalog.Records(), req)
	metrics.SearchResults.Observe(float64(len(results)))

	logger.FromContext(ctx).Debug("Search executed",
		zap.String("query", req.Query()),
		zap.Int("filters", len(req.Filters().Conditions())),
		zap.Int("results", len(results)),
	)
	return results, nil
}

func (s *Service) validateFilters(set filter.Set) error {
	for _, c := range set.Conditions() {
		if !s.catalog.HasColumn(c.Field()) {
			return domain.NewUnknownField(c.Field())
		}
	}
	return nil
}
