// Package match holds the substring search and filter predicates over career records.
// All functions are pure: they never modify their input and preserve its order.
package match

import (
	"strings"

	"github.com/kailas-cloud/careercompass/internal/domain/career"
	"github.com/kailas-cloud/careercompass/internal/domain/search/filter"
	"github.com/kailas-cloud/careercompass/internal/domain/search/request"
)

// Primary fields are tested first; secondary fields only when no primary field matched.
var (
	primaryFields   = []string{career.FieldRole, career.FieldDescription}
	secondaryFields = []string{career.FieldRequiredSkills, career.FieldDomainIndustries}
)

// Search returns the records whose role, description, required skills or
// domain industries contain query, case-insensitively.
// A blank query returns every record; otherwise the query is matched verbatim,
// surrounding whitespace included.
func Search(records []career.Record, query string) []career.Record {
	if strings.TrimSpace(query) == "" {
		return clone(records)
	}
	q := strings.ToLower(query)

	out := make([]career.Record, 0, len(records))
	for _, r := range records {
		if anyFieldContains(r, primaryFields, q) || anyFieldContains(r, secondaryFields, q) {
			out = append(out, r)
		}
	}
	return out
}

// FilterByField keeps records whose field contains substring, case-insensitively.
// Records without the field are dropped. A blank substring keeps everything.
func FilterByField(records []career.Record, field, substring string) []career.Record {
	c, err := filter.NewCondition(field, substring)
	if err != nil {
		return clone(records)
	}
	return Filter(records, filter.Set{}.With(c))
}

// Filter keeps records matching every condition of the set.
func Filter(records []career.Record, set filter.Set) []career.Record {
	if set.IsEmpty() {
		return clone(records)
	}
	out := make([]career.Record, 0, len(records))
	for _, r := range records {
		if set.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// Apply runs the request's query, then narrows by its filters.
func Apply(records []career.Record, req *request.Request) []career.Record {
	return Filter(Search(records, req.Query()), req.Filters())
}

func anyFieldContains(r career.Record, fields []string, q string) bool {
	for _, f := range fields {
		v, ok := r.Get(f)
		if ok && strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}

func clone(records []career.Record) []career.Record {
	out := make([]career.Record, len(records))
	copy(out, records)
	return out
}
