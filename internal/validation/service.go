// Package validation checks a person for biologically and temporally
// implausible facts. Validate is the pure rule pipeline; Service gathers its
// input from a graph.Provider and the ignored-issue store.
package validation

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"datencheck/internal/graph"
	"datencheck/internal/ignored"
	"datencheck/internal/platform/tracer"
	"datencheck/internal/validation/metrics"
	id "datencheck/pkg/domain"
	dErrors "datencheck/pkg/domain-errors"
	limits "datencheck/pkg/platform/validation"
)

// gatherTimeout bounds the graph reads of one validation.
const gatherTimeout = 10 * time.Second

const (
	modeInteractive = "interactive"
	modeStored      = "stored"
)

// IgnoredCodeSource returns the suppressed issue codes of a person.
// *ignored.Service satisfies it.
type IgnoredCodeSource interface {
	IgnoredCodes(ctx context.Context, tree id.TreeID, xref id.Xref) (ignored.Codes, error)
}

// Request describes one validation: a stored person, form overrides for a
// person being edited or created, or both.
type Request struct {
	Tree id.TreeID
	// Xref is empty for a person that does not exist yet.
	Xref      id.Xref
	Overrides Overrides
	RelType   string
}

// Interactive reports whether the request carries form values.
func (r Request) Interactive() bool {
	o := r.Overrides
	for _, v := range []string{o.Birth, o.Death, o.Burial, o.Baptism, o.Marriage, o.Given, o.Surname, o.Husband, o.Wife, o.Family} {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

// Service validates persons against a graph. It is safe for concurrent use.
type Service struct {
	provider graph.Provider
	ignored  IgnoredCodeSource
	settings Settings
	logger   *slog.Logger
	metrics  *metrics.Metrics
	tracer   tracer.Tracer
	now      func() time.Time
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

// WithTracer sets the span factory. Defaults to the no-op tracer.
func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithIgnored sets the source of ignore decisions. Without it nothing is
// filtered.
func WithIgnored(src IgnoredCodeSource) Option {
	return func(s *Service) {
		s.ignored = src
	}
}

// WithSettings replaces DefaultSettings.
func WithSettings(settings Settings) Option {
	return func(s *Service) {
		s.settings = settings
	}
}

// WithClock sets the time source used for future-date checks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a Service. It panics if provider is nil.
func New(provider graph.Provider, opts ...Option) *Service {
	if provider == nil {
		panic("validation: provider is required")
	}
	s := &Service{
		provider: provider,
		settings: DefaultSettings(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:   tracer.NewNoop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Settings returns the thresholds the service validates with.
func (s *Service) Settings() Settings {
	return s.settings
}

// Validate gathers the person's graph context and runs the rule pipeline.
//
// Failing graph reads, a failing ignored-issue store and oversized form
// fields do not fail the validation: the affected input is left out and the
// failure is logged. Errors are returned for a missing tree and for a
// cancelled context.
func (s *Service) Validate(ctx context.Context, req Request) (res Result, err error) {
	start := time.Now()
	if err := s.checkRequest(ctx, &req); err != nil {
		return Result{}, err
	}
	mode := modeStored
	if req.Interactive() {
		mode = modeInteractive
	}

	ctx, span := s.tracer.Start(ctx, tracer.SpanValidate,
		tracer.Int64(tracer.AttrTreeID, int64(req.Tree)),
		tracer.String(tracer.AttrXref, req.Xref.String()),
		tracer.Bool(tracer.AttrInteractive, mode == modeInteractive),
	)
	defer func() { span.End(err) }()

	in, err := s.gather(ctx, span, req)
	if err != nil {
		return Result{}, err
	}
	res = Validate(in, s.settings)

	span.SetAttributes(
		tracer.Int(tracer.AttrIssueCount, len(res.Issues)),
		tracer.Int(tracer.AttrIgnored, res.Debug.IgnoredCount),
	)
	if s.metrics != nil {
		s.metrics.ObserveValidation(mode, time.Since(start).Seconds(), res.Debug.IgnoredCount)
		for _, i := range res.Issues {
			s.metrics.IncIssue(i.Code, string(i.Severity))
		}
	}
	s.logger.DebugContext(ctx, "person validated",
		"tree_id", req.Tree.String(),
		"xref", req.Xref.String(),
		"mode", mode,
		"issues", len(res.Issues),
		"ignored", res.Debug.IgnoredCount,
	)
	return res, nil
}

// checkRequest normalizes req. Only a missing tree is an error; a field over
// its length limit is dropped and logged, and the rest is validated.
func (s *Service) checkRequest(ctx context.Context, req *Request) error {
	if req.Tree.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "tree ID is required")
	}
	req.Xref = id.TrimXref(req.Xref.String())
	o := &req.Overrides
	for _, f := range []struct {
		name  string
		value *string
		max   int
	}{
		{"xref", (*string)(&req.Xref), limits.MaxXrefLength},
		{"birth", &o.Birth, limits.MaxDateLength},
		{"death", &o.Death, limits.MaxDateLength},
		{"burial", &o.Burial, limits.MaxDateLength},
		{"baptism", &o.Baptism, limits.MaxDateLength},
		{"marriage", &o.Marriage, limits.MaxDateLength},
		{"given", &o.Given, limits.MaxNameLength},
		{"surname", &o.Surname, limits.MaxNameLength},
		{"husband", &o.Husband, limits.MaxXrefLength},
		{"wife", &o.Wife, limits.MaxXrefLength},
		{"family", &o.Family, limits.MaxXrefLength},
	} {
		if err := limits.CheckStringLength(f.name, *f.value, f.max); err != nil {
			s.logger.WarnContext(ctx, "request field ignored",
				"field", f.name,
				"tree_id", req.Tree.String(),
				"error", err,
			)
			*f.value = ""
		}
	}
	return nil
}

// degraded records a skipped input. It is called from gather goroutines;
// logger, metrics and span are safe for concurrent use.
func (s *Service) degraded(ctx context.Context, span tracer.Span, dependency string, tree id.TreeID, err error) {
	s.logger.WarnContext(ctx, "validation input skipped",
		"dependency", dependency,
		"tree_id", tree.String(),
		"error", err,
	)
	if s.metrics != nil {
		s.metrics.IncDegraded(dependency)
	}
	event := tracer.EventProviderDegraded
	if dependency == "ignored_store" {
		event = tracer.EventIgnoredStoreDegraded
	}
	span.AddEvent(event, tracer.String("dependency", dependency))
}
