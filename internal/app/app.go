// Package app wires configuration into the dataset snapshot and use-case services
// shared by the HTTP and MCP binaries.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/careercompass/internal/config"
	"github.com/kailas-cloud/careercompass/internal/db"
	dbRedis "github.com/kailas-cloud/careercompass/internal/db/redis"
	"github.com/kailas-cloud/careercompass/internal/domain/career"
	"github.com/kailas-cloud/careercompass/internal/domain/prediction"
	"github.com/kailas-cloud/careercompass/internal/metrics"
	"github.com/kailas-cloud/careercompass/internal/repository/dataset"
	"github.com/kailas-cloud/careercompass/internal/repository/embcache"
	openaiEmb "github.com/kailas-cloud/careercompass/internal/transport/openai"
	careeruc "github.com/kailas-cloud/careercompass/internal/usecase/career"
	healthuc "github.com/kailas-cloud/careercompass/internal/usecase/health"
	predictuc "github.com/kailas-cloud/careercompass/internal/usecase/predict"
	searchuc "github.com/kailas-cloud/careercompass/internal/usecase/search"
	statsuc "github.com/kailas-cloud/careercompass/internal/usecase/stats"
)

// Services holds every use case built over one snapshot.
type Services struct {
	Careers *careeruc.Service
	Search  *searchuc.Service
	Stats   *statsuc.Service
	Predict *predictuc.Service
	Health  *healthuc.Service

	closers []func()
}

// Close releases connections opened by NewServices.
func (s *Services) Close() {
	for _, c := range s.closers {
		c()
	}
}

// LoadSnapshot reads the configured dataset once. The redis connection,
// when used, is closed before returning.
func LoadSnapshot(ctx context.Context, cfg config.DatasetConfig, logger *zap.Logger) (career.Snapshot, error) {
	var reader dataset.Reader

	if cfg.Driver == config.DriverRedis {
		store, err := openRedis(ctx, cfg.Redis)
		if err != nil {
			return career.Snapshot{}, err
		}
		defer store.Close()

		logger.Info("Connected to redis", zap.Strings("addrs", cfg.Redis.Addrs))
		reader = store
	}

	src, err := dataset.NewSource(cfg, reader)
	if err != nil {
		return career.Snapshot{}, err
	}
	return dataset.NewLoader(src, cfg.KeyField, logger).Load(ctx)
}

func openRedis(ctx context.Context, cfg config.RedisConfig) (db.Store, error) {
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Addrs,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("create redis store: %w", err)
	}

	timeout := time.Duration(cfg.ReadinessTimeout) * time.Second
	if err := store.WaitForReady(ctx, timeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("redis not ready: %w", err)
	}
	return store, nil
}

// NewServices builds the use cases. The predictor is wired only when enabled.
// An unreachable embedding cache is logged and skipped.
func NewServices(ctx context.Context, cfg config.Config, snap career.Snapshot, logger *zap.Logger) *Services {
	var (
		docs, query prediction.Embedder
		checker     healthuc.PredictorChecker
		closers     []func()
	)

	if cfg.Predictor.Enabled {
		base := openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     cfg.Predictor.APIKey,
			BaseURL:    cfg.Predictor.BaseURL,
			Model:      cfg.Predictor.Model,
			Dimensions: cfg.Predictor.Dimensions,
			Provider:   cfg.Predictor.Provider,
			Logger:     logger,
		})
		checker = base

		var emb prediction.Embedder = base
		if cfg.Predictor.Cache.Enabled {
			if store, err := openRedis(ctx, cfg.Predictor.Cache.Redis); err != nil {
				logger.Warn("Embedding cache unavailable, continuing without it", zap.Error(err))
			} else {
				closers = append(closers, store.Close)
				emb = embcache.New(base, store, embcache.Options{
					KeyPrefix: cfg.Predictor.Cache.Redis.KeyPrefix,
					Namespace: fmt.Sprintf("%s/%s/%d", cfg.Predictor.Provider, cfg.Predictor.Model, cfg.Predictor.Dimensions),
					TTL:       time.Duration(cfg.Predictor.Cache.TTLSec) * time.Second,
				}, metrics.PredictorCacheTotal, logger)
				logger.Info("Embedding cache enabled", zap.Strings("addrs", cfg.Predictor.Cache.Redis.Addrs))
			}
		}

		docs = withInstruction(emb, cfg.Predictor.DocumentInstruction)
		query = withInstruction(emb, cfg.Predictor.QueryInstruction)

		logger.Info("Predictor enabled",
			zap.String("provider", cfg.Predictor.Provider),
			zap.String("model", cfg.Predictor.Model),
			zap.Int("dimensions", cfg.Predictor.Dimensions),
		)
	}

	return &Services{
		Careers: careeruc.New(snap),
		Search:  searchuc.New(snap),
		Stats:   statsuc.New(snap, cfg.Stats.TopSkills),
		Predict: predictuc.New(snap, docs, query, cfg.Predictor.TopK),
		Health:  healthuc.New(snap, checker),
		closers: closers,
	}
}

func withInstruction(e prediction.Embedder, instruction string) prediction.Embedder {
	if instruction == "" {
		return e
	}
	return prediction.NewInstructionEmbedder(e, instruction)
}
