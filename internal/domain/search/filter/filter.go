package filter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kailas-cloud/careercompass/internal/domain/career"
)

// MaxConditions is the maximum number of conditions in one filter set.
const MaxConditions = 16

// Condition is a single-field substring constraint.
type Condition struct {
	field     string
	substring string
}

// NewCondition validates and creates a Condition. The substring is matched
// case-insensitively and verbatim; a blank substring is rejected.
func NewCondition(field, substring string) (Condition, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return Condition{}, fmt.Errorf("filter field is required")
	}
	if strings.TrimSpace(substring) == "" {
		return Condition{}, fmt.Errorf("filter value is required for field %q", field)
	}
	return Condition{field: field, substring: strings.ToLower(substring)}, nil
}

// Parse reads a "field:substring" expression.
func Parse(expr string) (Condition, error) {
	field, value, ok := strings.Cut(expr, ":")
	if !ok {
		return Condition{}, fmt.Errorf("filter %q must have the form field:value", expr)
	}
	return NewCondition(field, value)
}

// Field returns the field name.
func (c Condition) Field() string { return c.field }

// Substring returns the lowercased substring.
func (c Condition) Substring() string { return c.substring }

// Matches reports whether the record's field contains the substring.
// A record without the field never matches.
func (c Condition) Matches(r career.Record) bool {
	v, ok := r.Get(c.field)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(v), c.substring)
}

// Set is a conjunction of conditions.
type Set struct {
	conditions []Condition
}

// NewSet validates and creates a filter Set.
func NewSet(conditions ...Condition) (Set, error) {
	if len(conditions) > MaxConditions {
		return Set{}, fmt.Errorf("too many filters (max %d)", MaxConditions)
	}
	return Set{conditions: conditions}, nil
}

// Conditions returns the conditions in application order.
func (s Set) Conditions() []Condition { return s.conditions }

// With returns a copy of the set with c appended. It does not enforce MaxConditions.
func (s Set) With(c Condition) Set {
	return Set{conditions: append(slices.Clone(s.conditions), c)}
}

// IsEmpty reports whether the set has no conditions.
func (s Set) IsEmpty() bool { return len(s.conditions) == 0 }

// Matches reports whether the record satisfies every condition.
func (s Set) Matches(r career.Record) bool {
	for _, c := range s.conditions {
		if !c.Matches(r) {
			return false
		}
	}
	return true
}
