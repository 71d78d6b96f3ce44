package redis

import (
	"context"

	"github.com/kailas-cloud/careercompass/internal/db"
)

// LRange returns list elements between start and stop (inclusive, negative counts from the end).
func (s *Store) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	cmd := s.b().Lrange().Key(key).Start(start).Stop(stop).Build()
	vals, err := s.do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, &db.Error{Op: db.OpLRange, Err: err}
	}
	return vals, nil
}
