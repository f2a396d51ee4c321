package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"datencheck/pkg/platform/validation"
)

// Config captures process level configuration for the CLI and batch runner.
type Config struct {
	LogLevel        string `validate:"oneof=debug info warn error"`
	DatabaseURL     string
	Redis           RedisConfig
	Kafka           KafkaConfig
	IgnoredCacheTTL time.Duration `validate:"gt=0"`
	Scan            ScanConfig
	SettingsFile    string
	// MetricsAddr serves /metrics while a command runs when set.
	MetricsAddr string
	// TraceExporter installs an OpenTelemetry SDK provider when set.
	TraceExporter string `validate:"omitempty,oneof=stdout"`
}

// RedisConfig configures the optional ignore-code cache.
type RedisConfig struct {
	URL          string
	PoolSize     int `validate:"min=1"`
	MinIdleConns int `validate:"min=0"`
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the optional audit event sink.
type KafkaConfig struct {
	Brokers    string
	AuditTopic string `validate:"required"`
}

// ScanConfig bounds batch analysis.
type ScanConfig struct {
	Workers  int `validate:"min=1,max=64"`
	PageSize int `validate:"min=1,max=10000"`
}

// DefaultAuditTopic receives ignore and unignore events.
const DefaultAuditTopic = "datencheck.ignored-issues"

// IgnoredCacheTTL is how long a cached ignore-code set stays valid.
var IgnoredCacheTTL = 5 * time.Minute

// Default returns the configuration used when no environment is set.
func Default() Config {
	return Config{
		LogLevel: "info",
		Redis: RedisConfig{
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka:           KafkaConfig{AuditTopic: DefaultAuditTopic},
		IgnoredCacheTTL: IgnoredCacheTTL,
		Scan:            ScanConfig{Workers: 4, PageSize: 200},
	}
}

// FromEnv builds a Config from environment variables so main stays lean.
// Unset variables keep their defaults; malformed ones are reported.
func FromEnv() (Config, error) {
	cfg := Default()
	if v := os.Getenv("DATENCHECK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.Redis.URL = os.Getenv("REDIS_URL")
	cfg.Kafka.Brokers = os.Getenv("KAFKA_BROKERS")
	if v := os.Getenv("DATENCHECK_AUDIT_TOPIC"); v != "" {
		cfg.Kafka.AuditTopic = v
	}
	cfg.SettingsFile = os.Getenv("DATENCHECK_SETTINGS_FILE")
	cfg.MetricsAddr = os.Getenv("DATENCHECK_METRICS_ADDR")
	cfg.TraceExporter = strings.ToLower(os.Getenv("DATENCHECK_TRACE_EXPORTER"))

	if v := os.Getenv("DATENCHECK_IGNORED_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("DATENCHECK_IGNORED_CACHE_TTL: %w", err)
		}
		cfg.IgnoredCacheTTL = d
	}
	if v := os.Getenv("DATENCHECK_SCAN_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("DATENCHECK_SCAN_WORKERS: %w", err)
		}
		cfg.Scan.Workers = n
	}
	if v := os.Getenv("DATENCHECK_SCAN_PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("DATENCHECK_SCAN_PAGE_SIZE: %w", err)
		}
		cfg.Scan.PageSize = n
	}

	if err := validation.Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadSettingsFile reads a YAML document of validation settings into the
// flat key/value form SettingsFromMap consumes. An empty path yields an
// empty map.
func LoadSettingsFile(path string) (map[string]string, error) {
	out := make(map[string]string)
	if strings.TrimSpace(path) == "" {
		return out, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings file: %w", err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse settings file: %w", err)
	}
	for k, v := range raw {
		switch v.(type) {
		case map[string]any, []any:
			return nil, fmt.Errorf("settings file: %s must be a scalar", k)
		case nil:
			continue
		}
		out[strings.TrimSpace(k)] = fmt.Sprint(v)
	}
	return out, nil
}
