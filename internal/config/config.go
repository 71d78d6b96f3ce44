package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Dataset drivers.
const (
	DriverCSV     = "csv"
	DriverParquet = "parquet"
	DriverRedis   = "redis"
)

// Config holds the careercompass configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Dataset   DatasetConfig   `yaml:"dataset"`
	Auth      AuthConfig      `yaml:"auth"`
	Stats     StatsConfig     `yaml:"stats"`
	Predictor PredictorConfig `yaml:"predictor"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatasetConfig describes where career records are loaded from.
type DatasetConfig struct {
	Driver   string      `yaml:"driver"` // csv, parquet, redis (default: csv)
	Path     string      `yaml:"path"`
	KeyField string      `yaml:"key_field"` // default: role
	Redis    RedisConfig `yaml:"redis"`
}

// RedisConfig holds the read-only redis source settings.
type RedisConfig struct {
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	KeyPrefix        string   `yaml:"key_prefix"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// StatsConfig holds chart summary settings.
type StatsConfig struct {
	TopSkills int `yaml:"top_skills"`
}

// PredictorConfig holds role prediction settings.
type PredictorConfig struct {
	Enabled             bool        `yaml:"enabled"`
	Provider            string      `yaml:"provider"`
	APIKey              string      `yaml:"api_key"`
	BaseURL             string      `yaml:"base_url"`
	Model               string      `yaml:"model"`
	Dimensions          int         `yaml:"dimensions"`
	TopK                int         `yaml:"top_k"`
	DocumentInstruction string      `yaml:"document_instruction"`
	QueryInstruction    string      `yaml:"query_instruction"`
	Cache               CacheConfig `yaml:"cache"`
}

// CacheConfig holds the redis cache for predictor embeddings.
type CacheConfig struct {
	Enabled bool        `yaml:"enabled"`
	TTLSec  int         `yaml:"ttl_sec"` // 0 keeps entries forever
	Redis   RedisConfig `yaml:"redis"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML config data, substituting ${VAR} references, then applies defaults and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Dataset.Driver == "" {
		c.Dataset.Driver = DriverCSV
	}
	if c.Dataset.KeyField == "" {
		c.Dataset.KeyField = "role"
	}
	if c.Dataset.Redis.KeyPrefix == "" {
		c.Dataset.Redis.KeyPrefix = "careercompass:"
	}
	if c.Dataset.Redis.ReadinessTimeout <= 0 {
		c.Dataset.Redis.ReadinessTimeout = 10
	}
	if c.Stats.TopSkills <= 0 {
		c.Stats.TopSkills = 15
	}
	if c.Predictor.Provider == "" {
		c.Predictor.Provider = "openai"
	}
	if c.Predictor.TopK <= 0 {
		c.Predictor.TopK = 3
	}
	if c.Predictor.Cache.Redis.KeyPrefix == "" {
		c.Predictor.Cache.Redis.KeyPrefix = "careercompass:"
	}
	if c.Predictor.Cache.Redis.ReadinessTimeout <= 0 {
		c.Predictor.Cache.Redis.ReadinessTimeout = 5
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Dataset.Driver {
	case DriverCSV, DriverParquet:
		if c.Dataset.Path == "" {
			return fmt.Errorf("dataset.path is required for driver %q", c.Dataset.Driver)
		}
	case DriverRedis:
		if len(c.Dataset.Redis.Addrs) == 0 {
			return fmt.Errorf("dataset.redis.addrs is required for driver %q", DriverRedis)
		}
	default:
		return fmt.Errorf("dataset.driver must be one of csv, parquet, redis, got %q", c.Dataset.Driver)
	}
	if c.Predictor.Enabled && c.Predictor.Model == "" {
		return fmt.Errorf("predictor.model is required when predictor is enabled")
	}
	if c.Predictor.Cache.Enabled && len(c.Predictor.Cache.Redis.Addrs) == 0 {
		return fmt.Errorf("predictor.cache.redis.addrs is required when the cache is enabled")
	}
	if c.Predictor.Cache.TTLSec < 0 {
		return fmt.Errorf("predictor.cache.ttl_sec must not be negative, got %d", c.Predictor.Cache.TTLSec)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
