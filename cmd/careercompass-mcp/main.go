package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/kailas-cloud/careercompass/internal/app"
	"github.com/kailas-cloud/careercompass/internal/config"
	logpkg "github.com/kailas-cloud/careercompass/internal/logger"
	mcpTransport "github.com/kailas-cloud/careercompass/internal/transport/mcp"
	"github.com/kailas-cloud/careercompass/internal/version"
)

type options struct {
	Env     string
	Dataset string
	Driver  string
	Version bool
}

func main() {
	_ = godotenv.Load()

	opt := options{Env: config.GetEnv()}
	pflag.StringVar(&opt.Env, "env", opt.Env, "Config environment; reads config/<env>.yaml.")
	pflag.StringVar(&opt.Dataset, "dataset", "", "Dataset file path. Overrides dataset.path from the config file.")
	pflag.StringVar(&opt.Driver, "driver", "", "Dataset driver (csv, parquet, redis). Overrides dataset.driver.")
	pflag.BoolVar(&opt.Version, "version", false, "Print the version and exit.")
	pflag.Parse()

	if opt.Version {
		fmt.Printf("careercompass-mcp %s (%s)\n", version.Version, version.Commit)
		return
	}

	if err := run(opt); err != nil {
		fmt.Fprintf(os.Stderr, "careercompass-mcp: %v\n", err)
		os.Exit(1)
	}
}

func run(opt options) error {
	cfg, err := loadConfig(opt)
	if err != nil {
		return err
	}

	// zap writes to stderr; stdout carries the MCP protocol.
	logger, err := logpkg.NewLogger(opt.Env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	snap, err := app.LoadSnapshot(ctx, cfg.Dataset, logger)
	cancel()
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	svc := app.NewServices(context.Background(), cfg, snap, logger)
	defer svc.Close()
	handlers := mcpTransport.NewHandlers(svc.Careers, svc.Search, svc.Stats, svc.Predict, logger)
	s := mcpTransport.NewServer("careercompass", version.Version, handlers)

	logger.Info("Serving MCP over stdio",
		zap.String("source", snap.Source()),
		zap.Int("records", snap.Len()),
	)
	return server.ServeStdio(s)
}

// loadConfig reads config/<env>.yaml and applies flag overrides.
func loadConfig(opt options) (config.Config, error) {
	cfg, err := config.Load(opt.Env)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if opt.Driver != "" {
		cfg.Dataset.Driver = opt.Driver
	}
	if opt.Dataset != "" {
		cfg.Dataset.Path = opt.Dataset
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
