package dataset

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/careercompass/internal/domain"
	"github.com/kailas-cloud/careercompass/internal/domain/career"
	"github.com/kailas-cloud/careercompass/internal/metrics"
)

// Table is the raw tabular content read from a source.
type Table struct {
	Columns []string
	Rows    []map[string]string
}

// Source reads the raw table of a dataset.
type Source interface {
	Read(ctx context.Context) (Table, error)
	Name() string
}

// Loader turns a Source into a deduplicated career snapshot.
type Loader struct {
	source   Source
	keyField string
	logger   *zap.Logger
}

// NewLoader creates a Loader. keyField defaults to career.FieldRole.
func NewLoader(source Source, keyField string, logger *zap.Logger) *Loader {
	if keyField == "" {
		keyField = career.FieldRole
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{source: source, keyField: keyField, logger: logger}
}

// Load reads the source once and builds the snapshot.
// Rows repeating an earlier key or role are dropped (first occurrence wins);
// rows with an empty key are skipped.
func (l *Loader) Load(ctx context.Context) (career.Snapshot, error) {
	start := time.Now()

	table, err := l.source.Read(ctx)
	if err != nil {
		return career.Snapshot{}, fmt.Errorf("load %s: %w", l.source.Name(), err)
	}

	if !slices.Contains(table.Columns, l.keyField) {
		return career.Snapshot{}, fmt.Errorf("load %s: %w: key field %q not in columns %v",
			l.source.Name(), domain.ErrInvalidSchema, l.keyField, table.Columns)
	}

	// Roles stay unique whatever column keys the dataset.
	var unique []string
	if l.keyField != career.FieldRole && slices.Contains(table.Columns, career.FieldRole) {
		unique = append(unique, career.FieldRole)
	}

	records, stats := dedupe(table.Rows, l.keyField, unique...)
	snap := career.NewSnapshot(l.source.Name(), table.Columns, records, stats)

	elapsed := time.Since(start)
	metrics.DatasetRecords.Set(float64(snap.Len()))
	metrics.DatasetDuplicatesDropped.Set(float64(stats.Duplicates))
	metrics.DatasetRowsSkipped.Set(float64(stats.Skipped))
	metrics.DatasetLoadDuration.Set(elapsed.Seconds())

	l.logger.Info("Dataset loaded",
		zap.String("source", l.source.Name()),
		zap.Int("records", snap.Len()),
		zap.Int("columns", len(table.Columns)),
		zap.Int("duplicates_dropped", stats.Duplicates),
		zap.Int("rows_skipped", stats.Skipped),
		zap.Duration("elapsed", elapsed),
	)
	return snap, nil
}

// dedupe keeps the first row for each exact key value, in source order.
// A row is also dropped when a non-empty value of any unique field was seen before.
func dedupe(rows []map[string]string, keyField string, unique ...string) ([]career.Record, career.LoadStats) {
	var stats career.LoadStats
	fields := append([]string{keyField}, unique...)
	seen := make(map[string]map[string]struct{}, len(fields))
	for _, f := range fields {
		seen[f] = make(map[string]struct{}, len(rows))
	}
	out := make([]career.Record, 0, len(rows))

	for _, row := range rows {
		if row[keyField] == "" {
			stats.Skipped++
			continue
		}
		if repeats(row, fields, seen) {
			stats.Duplicates++
			continue
		}
		for _, f := range fields {
			if v := row[f]; v != "" {
				seen[f][v] = struct{}{}
			}
		}
		out = append(out, career.NewRecord(row))
	}
	return out, stats
}

func repeats(row map[string]string, fields []string, seen map[string]map[string]struct{}) bool {
	for _, f := range fields {
		v := row[f]
		if v == "" {
			continue
		}
		if _, dup := seen[f][v]; dup {
			return true
		}
	}
	return false
}
