package search

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/careercompass/internal/domain"
	domcareer "github.com/kailas-cloud/careercompass/internal/domain/career"
	"github.com/kailas-cloud/careercompass/internal/domain/search/filter"
	"github.com/kailas-cloud/careercompass/internal/domain/search/request"
)

// Params are the raw search inputs shared by the HTTP and MCP surfaces.
// Empty values are ignored.
type Params struct {
	Query   string
	Domain  string
	Skill   string
	Filters []string // "field:substring"
}

// BuildRequest turns raw params into a validated request.
// Domain and Skill filter domain_industries and required_skills respectively.
func BuildRequest(p Params) (request.Request, error) {
	var conds []filter.Condition

	add := func(field, value string) error {
		if strings.TrimSpace(value) == "" {
			return nil
		}
		c, err := filter.NewCondition(field, value)
		if err != nil {
			return fmt.Errorf("%w: %w", domain.ErrInvalidQuery, err)
		}
		conds = append(conds, c)
		return nil
	}

	if err := add(domcareer.FieldDomainIndustries, p.Domain); err != nil {
		return request.Request{}, err
	}
	if err := add(domcareer.FieldRequiredSkills, p.Skill); err != nil {
		return request.Request{}, err
	}
	for _, expr := range p.Filters {
		field, value, ok := strings.Cut(expr, ":")
		if !ok {
			return request.Request{}, fmt.Errorf("%w: filter %q must have the form field:value",
				domain.ErrInvalidQuery, expr)
		}
		if err := add(field, value); err != nil {
			return request.Request{}, err
		}
	}

	set, err := filter.NewSet(conds...)
	if err != nil {
		return request.Request{}, fmt.Errorf("%w: %w", domain.ErrInvalidQuery, err)
	}
	req, err := request.New(p.Query, set)
	if err != nil {
		return request.Request{}, fmt.Errorf("%w: %w", domain.ErrInvalidQuery, err)
	}
	return req, nil
}
