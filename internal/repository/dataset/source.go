package dataset

import (
	"fmt"

	"github.com/kailas-cloud/careercompass/internal/config"
)

// NewSource picks the source for the configured driver.
// store is only used by the redis driver and may be nil otherwise.
func NewSource(cfg config.DatasetConfig, store Reader) (Source, error) {
	switch cfg.Driver {
	case config.DriverCSV, "":
		return NewCSVSource(cfg.Path), nil
	case config.DriverParquet:
		return NewParquetSource(cfg.Path), nil
	case config.DriverRedis:
		if store == nil {
			return nil, fmt.Errorf("dataset driver %q requires a redis store", cfg.Driver)
		}
		return NewRedisSource(store, cfg.Redis.KeyPrefix), nil
	default:
		return nil, fmt.Errorf("unknown dataset driver %q", cfg.Driver)
	}
}
