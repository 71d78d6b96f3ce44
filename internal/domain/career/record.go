package career

import "maps"

// Recognized career fields.
const (
	FieldRole             = "role"
	FieldDescription      = "description"
	FieldRequiredSkills   = "required_skills"
	FieldDomainIndustries = "domain_industries"
	FieldGrowthScore      = "career_growth_score"
	FieldDemandLevel      = "job_demand_level"
	FieldSalaryRange      = "average_salary_range"
)

// Record is one career entry: an immutable mapping from field name to value.
type Record struct {
	fields map[string]string
}

// NewRecord copies fields into a new Record.
func NewRecord(fields map[string]string) Record {
	return Record{fields: maps.Clone(fields)}
}

// Get returns the value of a field and whether the record has it.
func (r Record) Get(field string) (string, bool) {
	v, ok := r.fields[field]
	return v, ok
}

// Value returns the value of a field, or "" when absent.
func (r Record) Value(field string) string { return r.fields[field] }

// Has reports whether the record carries the field.
func (r Record) Has(field string) bool {
	_, ok := r.fields[field]
	return ok
}

// Role returns the role identifier.
func (r Record) Role() string { return r.fields[FieldRole] }

// Description returns the role description.
func (r Record) Description() string { return r.fields[FieldDescription] }

// RequiredSkills returns the comma-separated skills text.
func (r Record) RequiredSkills() string { return r.fields[FieldRequiredSkills] }

// DomainIndustries returns the comma-separated industries text.
func (r Record) DomainIndustries() string { return r.fields[FieldDomainIndustries] }

// Fields returns a copy of all fields.
func (r Record) Fields() map[string]string { return maps.Clone(r.fields) }

// Len returns the number of fields.
func (r Record) Len() int { return len(r.fields) }
