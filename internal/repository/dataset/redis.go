package dataset

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/kailas-cloud/careercompass/internal/db"
	"github.com/kailas-cloud/careercompass/internal/domain"
)

// RecordsKey is the list holding the ordered hash keys of a dataset, relative to the key prefix.
const RecordsKey = "records"

// Reader is the slice of the store a redis source needs.
type Reader interface {
	db.ListReader
	db.HashReader
}

// RedisSource reads a dataset stored as one hash per career,
// with the hash keys listed in order under <prefix>records.
type RedisSource struct {
	store  Reader
	prefix string
}

// NewRedisSource creates a redis source.
func NewRedisSource(store Reader, prefix string) *RedisSource {
	return &RedisSource{store: store, prefix: prefix}
}

// Name returns the list key the dataset is read from.
func (s *RedisSource) Name() string { return "redis:" + s.prefix + RecordsKey }

// Read fetches the key list and then all hashes in one pipeline.
// Columns are the union of hash fields in first-seen order, sorted within each hash.
func (s *RedisSource) Read(ctx context.Context) (Table, error) {
	keys, err := s.store.LRange(ctx, s.prefix+RecordsKey, 0, -1)
	if err != nil {
		return Table{}, fmt.Errorf("%w: list records: %w", domain.ErrDataAccess, err)
	}
	if len(keys) == 0 {
		return Table{}, fmt.Errorf("%w: list %s%s is empty", domain.ErrDataAccess, s.prefix, RecordsKey)
	}

	hashes, err := s.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return Table{}, fmt.Errorf("%w: read records: %w", domain.ErrDataAccess, err)
	}

	var columns []string
	seen := make(map[string]struct{})
	rows := make([]map[string]string, 0, len(hashes))

	for i, h := range hashes {
		if len(h) == 0 {
			return Table{}, fmt.Errorf("%w: record %q listed but missing", domain.ErrDataAccess, keys[i])
		}
		for _, field := range slices.Sorted(maps.Keys(h)) {
			if _, ok := seen[field]; !ok {
				seen[field] = struct{}{}
				columns = append(columns, field)
			}
		}
		rows = append(rows, h)
	}

	return Table{Columns: columns, Rows: rows}, nil
}
