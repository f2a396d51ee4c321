// Package duplicates finds probable duplicate persons, siblings, families,
// sources and repositories in a tree using phonetic, edit-distance, alias
// and name-equivalence matching.
package duplicates

import (
	"context"
	"io"
	"log/slog"
	"time"

	"datencheck/internal/duplicates/metrics"
	"datencheck/internal/graph"
	"datencheck/internal/phonetic"
	id "datencheck/pkg/domain"
	dErrors "datencheck/pkg/domain-errors"
)

const (
	// DefaultFuzzyDiffHighAge is the birth-year tolerance for people who died after 80.
	DefaultFuzzyDiffHighAge = 6
	// DefaultFuzzyDiffDefault is the birth-year tolerance otherwise.
	DefaultFuzzyDiffDefault = 2
)

const (
	kindPerson     = "person"
	kindSibling    = "sibling"
	kindFamily     = "family"
	kindSource     = "source"
	kindRepository = "repository"
	kindPairs      = "pairs"
)

// Service runs duplicate searches against a graph.Provider. It is safe for
// concurrent use.
type Service struct {
	provider  graph.Provider
	codes     *phonetic.Cache
	logger    *slog.Logger
	metrics   *metrics.Metrics
	highAge   int
	defaultDf int
}

type Option func(*Service)

// WithLogger sets the logger instance for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics sets the metrics instance for the service.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithPhoneticCache shares a code cache between services.
func WithPhoneticCache(c *phonetic.Cache) Option {
	return func(s *Service) {
		if c != nil {
			s.codes = c
		}
	}
}

// WithFuzzyDiff overrides the birth-year tolerances. Negative values are ignored.
func WithFuzzyDiff(highAge, def int) Option {
	return func(s *Service) {
		if highAge >= 0 {
			s.highAge = highAge
		}
		if def >= 0 {
			s.defaultDf = def
		}
	}
}

// New creates a Service. It panics if provider is nil.
func New(provider graph.Provider, opts ...Option) *Service {
	if provider == nil {
		panic("duplicates: provider is required")
	}
	s := &Service{
		provider:  provider,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		highAge:   DefaultFuzzyDiffHighAge,
		defaultDf: DefaultFuzzyDiffDefault,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.codes == nil {
		s.codes = phonetic.NewCache(phonetic.DefaultCacheSize)
	}
	return s
}

func (s *Service) observe(kind string, start time.Time, results int) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveSearch(kind, results, time.Since(start).Seconds())
	s.metrics.SetPhoneticCacheSize(s.codes.Len())
}

func (s *Service) providerError(ctx context.Context, op string, tree id.TreeID, err error) error {
	s.logger.ErrorContext(ctx, "graph provider failed",
		"operation", op,
		"tree_id", tree.String(),
		"error", err,
	)
	return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to read tree")
}

func requireTree(tree id.TreeID) error {
	if tree.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "tree ID is required")
	}
	return nil
}
