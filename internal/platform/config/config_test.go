package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "datencheck/pkg/domain-errors"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"DATENCHECK_LOG_LEVEL", "DATABASE_URL", "REDIS_URL", "KAFKA_BROKERS",
		"DATENCHECK_AUDIT_TOPIC", "DATENCHECK_IGNORED_CACHE_TTL", "DATENCHECK_SCAN_WORKERS",
		"DATENCHECK_SCAN_PAGE_SIZE", "DATENCHECK_SETTINGS_FILE", "DATENCHECK_METRICS_ADDR",
		"DATENCHECK_TRACE_EXPORTER"} {
		t.Setenv(k, "")
	}
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, DefaultAuditTopic, cfg.Kafka.AuditTopic)
	assert.Equal(t, 5*time.Minute, cfg.IgnoredCacheTTL)
	assert.Equal(t, 4, cfg.Scan.Workers)
	assert.Equal(t, 200, cfg.Scan.PageSize)
	assert.Empty(t, cfg.MetricsAddr)
	assert.Empty(t, cfg.TraceExporter)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DATENCHECK_LOG_LEVEL", "DEBUG")
	t.Setenv("DATABASE_URL", "postgres://localhost/datencheck")
	t.Setenv("DATENCHECK_IGNORED_CACHE_TTL", "30s")
	t.Setenv("DATENCHECK_SCAN_WORKERS", "8")
	t.Setenv("DATENCHECK_METRICS_ADDR", ":9090")
	t.Setenv("DATENCHECK_TRACE_EXPORTER", "STDOUT")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "postgres://localhost/datencheck", cfg.DatabaseURL)
	assert.Equal(t, 30*time.Second, cfg.IgnoredCacheTTL)
	assert.Equal(t, 8, cfg.Scan.Workers)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.Equal(t, "stdout", cfg.TraceExporter)
}

func TestFromEnvRejectsInvalidValues(t *testing.T) {
	t.Run("malformed duration", func(t *testing.T) {
		t.Setenv("DATENCHECK_IGNORED_CACHE_TTL", "soon")
		_, err := FromEnv()
		require.Error(t, err)
	})

	t.Run("worker bound", func(t *testing.T) {
		t.Setenv("DATENCHECK_SCAN_WORKERS", "0")
		_, err := FromEnv()
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("unknown trace exporter", func(t *testing.T) {
		t.Setenv("DATENCHECK_TRACE_EXPORTER", "zipkin")
		_, err := FromEnv()
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("unknown log level", func(t *testing.T) {
		t.Setenv("DATENCHECK_LOG_LEVEL", "verbose")
		_, err := FromEnv()
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func TestLoadSettingsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("min_mother_age: 13\nenable_geographic_checks: false\nnote: ~\n"), 0o600))

	got, err := LoadSettingsFile(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"min_mother_age": "13", "enable_geographic_checks": "false"}, got)

	empty, err := LoadSettingsFile("")
	require.NoError(t, err)
	assert.Empty(t, empty)

	nested := filepath.Join(dir, "nested.yaml")
	require.NoError(t, os.WriteFile(nested, []byte("thresholds:\n  min: 1\n"), 0o600))
	_, err = LoadSettingsFile(nested)
	require.Error(t, err)
}
