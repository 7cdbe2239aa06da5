// Package config loads and validates application configuration from YAML
// files with environment-variable overrides. It provides typed structs for
// every subsystem (Search, Corpus, Redis, Postgres, Kafka, etc.).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Search   SearchConfig   `yaml:"search"`
	Corpus   CorpusConfig   `yaml:"corpus"`
	Redis    RedisConfig    `yaml:"redis"`
	Postgres PostgresConfig `yaml:"postgres"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// SearchConfig controls query execution limits and interactive behaviour.
type SearchConfig struct {
	MaxResults     int           `yaml:"maxResults"`
	MaxSuggestions int           `yaml:"maxSuggestions"`
	MinQueryLength int           `yaml:"minQueryLength"`
	DebounceWindow time.Duration `yaml:"debounceWindow"`
}

// CorpusConfig selects and tunes the article source the engine indexes.
// Mode is one of "static", "http", or "postgres".
type CorpusConfig struct {
	Mode         string        `yaml:"mode"`
	URL          string        `yaml:"url"`
	FetchTimeout time.Duration `yaml:"fetchTimeout"`
	MaxAttempts  int           `yaml:"maxAttempts"`
	CacheTTL     time.Duration `yaml:"cacheTTL"`
}

// RedisConfig holds Redis connection and corpus-cache parameters.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"poolSize"`
}

// PostgresConfig holds PostgreSQL connection parameters for the articles
// table source.
type PostgresConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	Database        string        `yaml:"database"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	SSLMode         string        `yaml:"sslMode"`
	MaxOpenConns    int           `yaml:"maxOpenConns"`
	MaxIdleConns    int           `yaml:"maxIdleConns"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime"`
}

// DSN returns a lib/pq-compatible data source name.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// KafkaConfig holds broker settings for the article-update watcher.
type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	ConsumerGroup      string   `yaml:"consumerGroup"`
	ArticleUpdateTopic string   `yaml:"articleUpdateTopic"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus metrics server.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides. It returns a Config populated with sensible defaults for any
// missing values.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// defaultConfig returns a Config with defaults for local development. The
// search limits match the engine's documented contract: 20 results, 8
// suggestions, two-character query minimum, 300ms debounce window.
func defaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			MaxResults:     20,
			MaxSuggestions: 8,
			MinQueryLength: 2,
			DebounceWindow: 300 * time.Millisecond,
		},
		Corpus: CorpusConfig{
			Mode:         "static",
			FetchTimeout: 10 * time.Second,
			MaxAttempts:  3,
			CacheTTL:     5 * time.Minute,
		},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			Password: "",
			DB:       0,
			PoolSize: 10,
		},
		Postgres: PostgresConfig{
			Host:            "localhost",
			Port:            5432,
			Database:        "newsearch",
			User:            "newsearch",
			Password:        "localdev",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Kafka: KafkaConfig{
			Brokers:            []string{"localhost:9092"},
			ConsumerGroup:      "newsearch-group",
			ArticleUpdateTopic: "article-updates",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Port:    9090,
		},
	}
}

// applyEnvOverrides reads NS_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("NS_CORPUS_MODE"); v != "" {
		cfg.Corpus.Mode = v
	}
	if v := os.Getenv("NS_CORPUS_URL"); v != "" {
		cfg.Corpus.URL = v
	}
	if v := os.Getenv("NS_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("NS_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("NS_POSTGRES_HOST"); v != "" {
		cfg.Postgres.Host = v
	}
	if v := os.Getenv("NS_POSTGRES_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.Port = port
		}
	}
	if v := os.Getenv("NS_POSTGRES_DATABASE"); v != "" {
		cfg.Postgres.Database = v
	}
	if v := os.Getenv("NS_POSTGRES_USER"); v != "" {
		cfg.Postgres.User = v
	}
	if v := os.Getenv("NS_POSTGRES_PASSWORD"); v != "" {
		cfg.Postgres.Password = v
	}
	if v := os.Getenv("NS_POSTGRES_SSLMODE"); v != "" {
		cfg.Postgres.SSLMode = v
	}
	if v := os.Getenv("NS_KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("NS_KAFKA_TOPIC"); v != "" {
		cfg.Kafka.ArticleUpdateTopic = v
	}
	if v := os.Getenv("NS_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("NS_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("NS_METRICS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Metrics.Port = port
		}
	}
}
