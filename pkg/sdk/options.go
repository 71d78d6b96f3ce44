package careercompass

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/careercompass/internal/config"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	dataset config.DatasetConfig

	embedder Embedder
	topK     int
	topN     int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithCSV reads the dataset from a CSV file with a header row.
func WithCSV(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.dataset.Driver = config.DriverCSV
		c.dataset.Path = path
	})
}

// WithParquet reads the dataset from a parquet file.
func WithParquet(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.dataset.Driver = config.DriverParquet
		c.dataset.Path = path
	})
}

// WithRedis reads the dataset from hashes listed under <keyPrefix>records.
func WithRedis(addr, password, keyPrefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.dataset.Driver = config.DriverRedis
		c.dataset.Redis.Addrs = []string{addr}
		c.dataset.Redis.Password = password
		c.dataset.Redis.KeyPrefix = keyPrefix
		c.dataset.Redis.ReadinessTimeout = 10
	})
}

// WithKeyField sets the column used to drop duplicate rows. Default: role.
func WithKeyField(field string) Option {
	return optionFunc(func(c *clientConfig) {
		c.dataset.KeyField = field
	})
}

// WithEmbedder enables Predict.
func WithEmbedder(e Embedder) Option {
	return optionFunc(func(c *clientConfig) {
		c.embedder = e
	})
}

// WithTopK sets how many alternative roles Predict returns. Default: 3.
func WithTopK(k int) Option {
	return optionFunc(func(c *clientConfig) {
		c.topK = k
	})
}

// WithTopSkills sets how many skills Stats keeps. Default: 15.
func WithTopSkills(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.topN = n
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
