package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"datencheck/internal/audit"
	"datencheck/internal/duplicates"
	dupmetrics "datencheck/internal/duplicates/metrics"
	"datencheck/internal/graph"
	"datencheck/internal/graph/gedcomload"
	"datencheck/internal/ignored"
	ignoredmetrics "datencheck/internal/ignored/metrics"
	"datencheck/internal/phonetic"
	"datencheck/internal/platform/config"
	"datencheck/internal/platform/database"
	"datencheck/internal/platform/kafka/producer"
	metricsexpose "datencheck/internal/platform/metrics"
	"datencheck/internal/platform/redis"
	"datencheck/internal/platform/tracer"
	"datencheck/internal/scan"
	scanmetrics "datencheck/internal/scan/metrics"
	"datencheck/internal/validation"
	valmetrics "datencheck/internal/validation/metrics"
	id "datencheck/pkg/domain"
)

// app holds the wired services of one CLI invocation.
type app struct {
	cfg    config.Config
	logger *slog.Logger

	provider   *graph.MemoryProvider
	ignored    *ignored.Service
	validation *validation.Service
	duplicates *duplicates.Service
	scanner    *scan.Runner

	pool      *database.Pool
	redis     *redis.Client
	producer  *producer.Producer
	publisher *audit.Publisher

	metricsServer *metricsexpose.Server
	traceProvider *sdktrace.TracerProvider
}

// newApp wires the ignored-issue store, the audit sink and the analysis
// services. Postgres, Redis and Kafka are optional; without them the store
// and audit log live in memory for the lifetime of the process.
func newApp(ctx context.Context, cfg config.Config, log *slog.Logger) (*app, error) {
	a := &app{
		cfg:      cfg,
		logger:   log,
		provider: graph.NewMemoryProvider(),
	}

	settingsBag, err := config.LoadSettingsFile(cfg.SettingsFile)
	if err != nil {
		return nil, err
	}
	settings, err := validation.SettingsFromMap(settingsBag)
	if err != nil {
		return nil, err
	}

	im := ignoredmetrics.New()
	store, err := a.ignoredStore(ctx, im)
	if err != nil {
		a.Close()
		return nil, err
	}
	auditStore, err := a.auditStore()
	if err != nil {
		a.Close()
		return nil, err
	}
	a.publisher = audit.NewPublisher(auditStore,
		audit.WithAsyncBuffer(256),
		audit.WithPublisherLogger(log),
	)

	trc, err := a.tracer()
	if err != nil {
		a.Close()
		return nil, err
	}
	a.ignored = ignored.New(store,
		ignored.WithLogger(log),
		ignored.WithMetrics(im),
		ignored.WithAuditor(a.publisher),
	)
	a.validation = validation.New(a.provider,
		validation.WithLogger(log),
		validation.WithMetrics(valmetrics.New()),
		validation.WithTracer(trc),
		validation.WithIgnored(a.ignored),
		validation.WithSettings(settings),
	)
	a.duplicates = duplicates.New(a.provider,
		duplicates.WithLogger(log),
		duplicates.WithMetrics(dupmetrics.New()),
		duplicates.WithPhoneticCache(phonetic.NewCache(phonetic.DefaultCacheSize)),
		duplicates.WithFuzzyDiff(settings.FuzzyDiffHighAge, settings.FuzzyDiffDefault),
	)
	a.scanner = scan.New(a.provider, a.validation,
		scan.WithWorkers(cfg.Scan.Workers),
		scan.WithPageSize(cfg.Scan.PageSize),
		scan.WithWarmer(a.ignored),
		scan.WithLogger(log),
		scan.WithMetrics(scanmetrics.New()),
		scan.WithTracer(trc),
	)

	if cfg.MetricsAddr != "" {
		srv, err := metricsexpose.Serve(cfg.MetricsAddr, prometheus.DefaultGatherer, log)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.metricsServer = srv
	}
	return a, nil
}

// tracer exports spans through the SDK when an exporter is configured and
// falls back to the global no-op provider otherwise.
func (a *app) tracer() (tracer.Tracer, error) {
	if a.cfg.TraceExporter == "" {
		return tracer.NewOTel(), nil
	}
	tp, err := tracer.NewSDKProvider(a.cfg.TraceExporter, os.Stderr)
	if err != nil {
		return nil, err
	}
	a.traceProvider = tp
	return tracer.NewOTel(tracer.WithOTelTracer(tp.Tracer(tracer.InstrumentationName))), nil
}

func (a *app) ignoredStore(ctx context.Context, m *ignoredmetrics.Metrics) (ignored.Store, error) {
	pool, err := database.New(ctx, database.DefaultConfig(a.cfg.DatabaseURL))
	if err != nil {
		return nil, err
	}
	a.pool = pool

	var store ignored.Store
	if pool != nil {
		store = ignored.NewPostgres(pool.DB())
	} else {
		a.logger.Info("DATABASE_URL not set, ignored issues are kept in memory")
		store = ignored.NewMemoryStore()
	}

	client, err := redis.New(a.cfg.Redis)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return store, nil
	}
	a.redis = client
	return ignored.NewCachedStore(store, client.Client, a.cfg.IgnoredCacheTTL,
		ignored.WithCacheLogger(a.logger),
		ignored.WithCacheMetrics(m),
	), nil
}

func (a *app) auditStore() (audit.Store, error) {
	if a.cfg.Kafka.Brokers == "" {
		return audit.NewInMemoryStore(), nil
	}
	prod, err := producer.New(producer.DefaultConfig(a.cfg.Kafka.Brokers), a.logger)
	if err != nil {
		return nil, fmt.Errorf("audit producer: %w", err)
	}
	a.producer = prod
	return audit.NewKafkaStore(prod, a.cfg.Kafka.AuditTopic), nil
}

// load reads a GEDCOM file into the provider under tree.
func (a *app) load(ctx context.Context, path string, tree id.TreeID) error {
	if path == "" {
		return errors.New("-file is required")
	}
	stats, err := gedcomload.LoadFile(ctx, path, tree, a.provider)
	if err != nil {
		return err
	}
	a.logger.InfoContext(ctx, "gedcom loaded",
		"tree_id", tree.String(),
		"persons", stats.Persons,
		"families", stats.Families,
		"sources", stats.Sources,
		"places", stats.Places,
	)
	return nil
}

// Close flushes pending audit events before the producer goes away.
func (a *app) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			a.logger.Warn("failed to stop metrics server", "error", err)
		}
	}
	if a.traceProvider != nil {
		if err := a.traceProvider.Shutdown(ctx); err != nil {
			a.logger.Warn("failed to flush traces", "error", err)
		}
	}
	if a.publisher != nil {
		a.publisher.Close()
	}
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Warn("failed to close audit producer", "error", err)
		}
	}
	if a.redis != nil {
		a.redis.RecordPoolStats()
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis", "error", err)
		}
	}
	if err := a.pool.Close(); err != nil {
		a.logger.Warn("failed to close database", "error", err)
	}
}
