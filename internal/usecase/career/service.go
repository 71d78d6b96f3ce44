package career

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/careercompass/internal/domain"
	domcareer "github.com/kailas-cloud/careercompass/internal/domain/career"
)

// Service serves listing and lookup over the snapshot.
type Service struct {
	catalog Catalog
}

// New creates a career service.
func New(catalog Catalog) *Service {
	return &Service{catalog: catalog}
}

// List returns every record in dataset order.
func (s *Service) List(_ context.Context) []domcareer.Record {
	return s.catalog.Records()
}

// Get finds a record by role, ignoring case.
func (s *Service) Get(_ context.Context, role string) (domcareer.Record, error) {
	role = strings.TrimSpace(role)
	if role == "" {
		return domcareer.Record{}, fmt.Errorf("%w: role is required", domain.ErrInvalidQuery)
	}
	r, ok := s.catalog.Lookup(role)
	if !ok {
		return domcareer.Record{}, fmt.Errorf("career %q: %w", role, domain.ErrNotFound)
	}
	return r, nil
}

// Fields returns the dataset columns in header order.
func (s *Service) Fields(_ context.Context) []string {
	return s.catalog.Columns()
}
