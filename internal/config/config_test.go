package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		HTTP:    HTTPConfig{Port: 8080},
		Dataset: DatasetConfig{Driver: DriverCSV, Path: "data/careers.csv"},
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Dataset.Driver = "sqlite"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
	expected := `dataset.driver must be one of csv, parquet, redis, got "sqlite"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_FileDriversRequirePath(t *testing.T) {
	for _, driver := range []string{DriverCSV, DriverParquet} {
		t.Run(driver, func(t *testing.T) {
			cfg := validConfig()
			cfg.Dataset.Driver = driver
			cfg.Dataset.Path = ""

			if err := cfg.Validate(); err == nil {
				t.Fatal("expected error for missing path")
			}
		})
	}
}

func TestValidate_RedisRequiresAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Dataset.Driver = DriverRedis

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing redis addrs")
	}

	cfg.Dataset.Redis.Addrs = []string{"localhost:6379"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_PredictorRequiresModel(t *testing.T) {
	cfg := validConfig()
	cfg.Predictor.Enabled = true

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing predictor model")
	}

	cfg.Predictor.Model = "text-embedding-3-small"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 30 {
		t.Errorf("expected WriteTimeoutSec=30, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Dataset.Driver != DriverCSV {
		t.Errorf("expected Driver=csv, got %q", cfg.Dataset.Driver)
	}
	if cfg.Dataset.KeyField != "role" {
		t.Errorf("expected KeyField=role, got %q", cfg.Dataset.KeyField)
	}
	if cfg.Dataset.Redis.KeyPrefix != "careercompass:" {
		t.Errorf("expected KeyPrefix='careercompass:', got %q", cfg.Dataset.Redis.KeyPrefix)
	}
	if cfg.Dataset.Redis.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Dataset.Redis.ReadinessTimeout)
	}
	if cfg.Stats.TopSkills != 15 {
		t.Errorf("expected TopSkills=15, got %d", cfg.Stats.TopSkills)
	}
	if cfg.Predictor.TopK != 3 {
		t.Errorf("expected TopK=3, got %d", cfg.Predictor.TopK)
	}
	if cfg.Predictor.Provider != "openai" {
		t.Errorf("expected Provider=openai, got %q", cfg.Predictor.Provider)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:    HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Dataset: DatasetConfig{Driver: DriverParquet, KeyField: "title"},
		Stats:   StatsConfig{TopSkills: 5},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Dataset.Driver != DriverParquet {
		t.Errorf("expected Driver=parquet, got %q", cfg.Dataset.Driver)
	}
	if cfg.Dataset.KeyField != "title" {
		t.Errorf("expected KeyField=title, got %q", cfg.Dataset.KeyField)
	}
	if cfg.Stats.TopSkills != 5 {
		t.Errorf("expected TopSkills=5, got %d", cfg.Stats.TopSkills)
	}
}

func TestParse_ExpandsEnvVars(t *testing.T) {
	t.Setenv("CAREERS_PATH", "/srv/careers.csv")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("UNSET_KEY", "")

	cfg, err := Parse([]byte(`
http:
  port: ${HTTP_PORT:-9090}
dataset:
  path: ${CAREERS_PATH}
predictor:
  api_key: ${UNSET_KEY}
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("expected default port 9090, got %d", cfg.HTTP.Port)
	}
	if cfg.Dataset.Path != "/srv/careers.csv" {
		t.Errorf("expected expanded path, got %q", cfg.Dataset.Path)
	}
	if cfg.Predictor.APIKey != "" {
		t.Errorf("expected empty api key, got %q", cfg.Predictor.APIKey)
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("http: [unclosed"))
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "failed to parse config") {
		t.Errorf("error = %q", err)
	}
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("http:\n  port: 8080\n"))
	if err == nil {
		t.Fatal("expected validation error for missing dataset path")
	}
	if !strings.Contains(err.Error(), "invalid config") {
		t.Errorf("error = %q", err)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("GetEnv() = %q, want local", got)
	}
	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("GetEnv() = %q, want prod", got)
	}
}

func TestValidate_CacheRequiresAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Predictor.Cache.Enabled = true

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for cache without addrs")
	}

	cfg.Predictor.Cache.Redis.Addrs = []string{"localhost:6379"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_NegativeCacheTTL(t *testing.T) {
	cfg := validConfig()
	cfg.Predictor.Cache.TTLSec = -1

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative ttl")
	}
}
