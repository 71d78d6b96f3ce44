package db

import (
	"context"
	"time"
)

// Store is the facade over the key-value backend. Datasets are read through
// HashReader and ListReader; the embedding cache uses KVStore.
type Store interface {
	Pinger
	HashReader
	ListReader
	KVStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HashReader reads hash-typed keys.
type HashReader interface {
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
}

// ListReader reads list-typed keys.
type ListReader interface {
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
}

// KVStore reads and writes plain string keys.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
