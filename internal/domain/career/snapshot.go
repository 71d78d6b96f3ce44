package career

import (
	"slices"
	"strings"
	"time"
)

// Snapshot is the loaded record set: ordered, deduplicated and read-only.
// Safe for concurrent reads.
type Snapshot struct {
	records    []Record
	columns    []string
	source     string
	loadedAt   time.Time
	duplicates int
	skipped    int
}

// LoadStats describes what the loader discarded while building a snapshot.
type LoadStats struct {
	Duplicates int
	Skipped    int
}

// NewSnapshot creates a snapshot. Records must already be deduplicated.
func NewSnapshot(source string, columns []string, records []Record, stats LoadStats) Snapshot {
	return Snapshot{
		records:    slices.Clone(records),
		columns:    slices.Clone(columns),
		source:     source,
		loadedAt:   time.Now().UTC(),
		duplicates: stats.Duplicates,
		skipped:    stats.Skipped,
	}
}

// Records returns the records in source order.
// The slice is a copy; records themselves are immutable.
func (s Snapshot) Records() []Record { return slices.Clone(s.records) }

// Len returns the number of records.
func (s Snapshot) Len() int { return len(s.records) }

// Columns returns the header columns in source order.
func (s Snapshot) Columns() []string { return slices.Clone(s.columns) }

// HasColumn reports whether the dataset has the given column.
func (s Snapshot) HasColumn(name string) bool { return slices.Contains(s.columns, name) }

// Source returns a human-readable description of where records came from.
func (s Snapshot) Source() string { return s.source }

// LoadedAt returns the load time.
func (s Snapshot) LoadedAt() time.Time { return s.loadedAt }

// Duplicates returns how many rows were dropped as duplicate roles.
func (s Snapshot) Duplicates() int { return s.duplicates }

// Skipped returns how many rows were dropped for an empty role.
func (s Snapshot) Skipped() int { return s.skipped }

// Lookup finds a record by role, case-insensitively.
func (s Snapshot) Lookup(role string) (Record, bool) {
	for _, r := range s.records {
		if strings.EqualFold(r.Role(), role) {
			return r, true
		}
	}
	return Record{}, false
}
