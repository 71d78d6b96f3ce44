package careercompass

import (
	domcareer "github.com/kailas-cloud/careercompass/internal/domain/career"
	"github.com/kailas-cloud/careercompass/internal/domain/prediction"
	domstats "github.com/kailas-cloud/careercompass/internal/domain/stats"
)

// Career is one dataset record.
type Career struct {
	rec domcareer.Record
}

// Role returns the role name.
func (c Career) Role() string { return c.rec.Role() }

// Get returns a field value, or "" when the record lacks the field.
func (c Career) Get(field string) string { return c.rec.Value(field) }

// Has reports whether the record carries field.
func (c Career) Has(field string) bool { return c.rec.Has(field) }

// Fields returns a copy of every field.
func (c Career) Fields() map[string]string { return c.rec.Fields() }

// Query is a search over the dataset. Empty parts are ignored.
type Query struct {
	Text    string
	Domain  string
	Skill   string
	Filters []string // "field:substring"
}

// SearchResult holds matches in dataset order.
type SearchResult struct {
	Items []Career
	Total int
	Query string
}

// Stats is the dataset summary.
type Stats = domstats.Summary

// Prediction is the nearest role plus alternatives, best first.
type Prediction = prediction.Prediction

func wrapCareers(records []domcareer.Record) []Career {
	out := make([]Career, len(records))
	for i, r := range records {
		out[i] = Career{rec: r}
	}
	return out
}
