// Package ignored records which validation findings a user has chosen to
// suppress for a person, and filters them out of later validations.
package ignored

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"datencheck/internal/audit"
	"datencheck/internal/ignored/metrics"
	id "datencheck/pkg/domain"
	dErrors "datencheck/pkg/domain-errors"
	"datencheck/pkg/platform/circuit"
	"datencheck/pkg/platform/sentinel"
	"datencheck/pkg/platform/validation"
)

// AuditEmitter receives ignore and unignore decisions.
type AuditEmitter interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Warmer is implemented by stores that can prefetch many persons at once.
type Warmer interface {
	Warm(ctx context.Context, tree id.TreeID, xrefs []id.Xref) error
}

// Service guards a Store with input checks and a circuit breaker and emits
// audit events for every successful change. It is safe for concurrent use.
type Service struct {
	store   Store
	auditor AuditEmitter
	breaker *circuit.Breaker
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
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

// WithAuditor sets where ignore decisions are reported.
func WithAuditor(a AuditEmitter) Option {
	return func(s *Service) {
		s.auditor = a
	}
}

// WithBreaker replaces the default circuit breaker.
func WithBreaker(b *circuit.Breaker) Option {
	return func(s *Service) {
		if b != nil {
			s.breaker = b
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func New(store Store, opts ...Option) *Service {
	if store == nil {
		panic("ignored: store is required")
	}
	s := &Service{
		store:   store,
		breaker: circuit.New("ignored_store"),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ignore suppresses code for the person. Saving an existing key replaces its
// user and comment. The bool is true only when the record was stored.
func (s *Service) Ignore(ctx context.Context, rec Record) (bool, error) {
	rec.Xref = id.TrimXref(rec.Xref.String())
	rec.Code = strings.TrimSpace(rec.Code)
	rec.User = strings.TrimSpace(rec.User)
	if err := checkKey(rec.TreeID, rec.Xref, rec.Code); err != nil {
		return false, err
	}
	if err := validation.CheckLengths(
		validation.Field{Name: "user", Value: rec.User, Max: validation.MaxUserLength},
		validation.Field{Name: "comment", Value: rec.Comment, Max: validation.MaxCommentLength},
	); err != nil {
		return false, err
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now()
	}

	if err := s.call(ctx, "ignore", func() error { return s.store.Ignore(ctx, rec) }); err != nil {
		s.logger.ErrorContext(ctx, "failed to ignore issue",
			"tree_id", rec.TreeID,
			"xref", rec.Xref,
			"code", rec.Code,
			"error", err,
		)
		return false, err
	}

	s.emit(ctx, audit.Event{
		Action:    audit.ActionIssueIgnored,
		Timestamp: rec.CreatedAt,
		TreeID:    rec.TreeID,
		Xref:      rec.Xref,
		Code:      rec.Code,
		User:      rec.User,
		Comment:   rec.Comment,
	})
	return true, nil
}

// Unignore removes a suppression. The bool is false when nothing matched or
// the store failed.
func (s *Service) Unignore(ctx context.Context, tree id.TreeID, xref id.Xref, code, user string) (bool, error) {
	xref = id.TrimXref(xref.String())
	code = strings.TrimSpace(code)
	if err := checkKey(tree, xref, code); err != nil {
		return false, err
	}

	var removed bool
	err := s.call(ctx, "unignore", func() error {
		var err error
		removed, err = s.store.Unignore(ctx, tree, xref, code)
		return err
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to unignore issue",
			"tree_id", tree,
			"xref", xref,
			"code", code,
			"error", err,
		)
		return false, err
	}
	if !removed {
		return false, nil
	}

	s.emit(ctx, audit.Event{
		Action: audit.ActionIssueUnignored,
		TreeID: tree,
		Xref:   xref,
		Code:   code,
		User:   strings.TrimSpace(user),
	})
	return true, nil
}

// IgnoredCodes returns the codes suppressed for the person.
func (s *Service) IgnoredCodes(ctx context.Context, tree id.TreeID, xref id.Xref) (Codes, error) {
	xref = id.TrimXref(xref.String())
	if tree.IsNil() || xref.IsNil() {
		return make(Codes), nil
	}
	var codes Codes
	err := s.call(ctx, "ignored_codes", func() error {
		var err error
		codes, err = s.store.IgnoredCodes(ctx, tree, xref)
		return err
	})
	if err != nil {
		return nil, err
	}
	if codes == nil {
		codes = make(Codes)
	}
	return codes, nil
}

// IsIgnored reports whether code is suppressed for the person. Store failures
// read as not ignored.
func (s *Service) IsIgnored(ctx context.Context, tree id.TreeID, xref id.Xref, code string) bool {
	codes, err := s.IgnoredCodes(ctx, tree, xref)
	if err != nil {
		return false
	}
	return codes.Has(code)
}

// List returns the tree's ignore decisions, newest first.
func (s *Service) List(ctx context.Context, tree id.TreeID) ([]Record, error) {
	if tree.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "tree ID required")
	}
	var records []Record
	err := s.call(ctx, "list", func() error {
		var err error
		records, err = s.store.List(ctx, tree)
		return err
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Warm prefetches code sets when the store supports it.
func (s *Service) Warm(ctx context.Context, tree id.TreeID, xrefs []id.Xref) error {
	w, ok := s.store.(Warmer)
	if !ok {
		return nil
	}
	return s.call(ctx, "warm", func() error { return w.Warm(ctx, tree, xrefs) })
}

// call runs fn through the circuit breaker and translates store errors.
func (s *Service) call(ctx context.Context, op string, fn func() error) error {
	if !s.breaker.Allow() {
		return dErrors.New(dErrors.CodeStoreUnavailable, "ignored-issue store unavailable")
	}

	start := time.Now()
	err := fn()
	if s.metrics != nil {
		s.metrics.ObserveOperation(op, time.Since(start).Seconds(), err)
	}

	if err != nil {
		if ctx.Err() == nil {
			if _, change := s.breaker.RecordFailure(); change.Opened {
				s.logger.ErrorContext(ctx, "circuit breaker opened",
					"circuit", s.breaker.Name(),
					"error", err,
				)
				s.setCircuit(true)
			}
		}
		return translate(op, err)
	}

	if _, change := s.breaker.RecordSuccess(); change.Closed {
		s.logger.InfoContext(ctx, "circuit breaker closed", "circuit", s.breaker.Name())
		s.setCircuit(false)
	}
	return nil
}

func (s *Service) setCircuit(open bool) {
	if s.metrics != nil {
		s.metrics.SetCircuitOpen(open)
	}
}

func translate(op string, err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return dErrors.Wrap(err, dErrors.CodeTimeout, op+" cancelled")
	case errors.Is(err, sentinel.ErrSchemaMissing):
		return dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "ignored-issue table missing")
	case errors.Is(err, sentinel.ErrInvalidInput):
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid ignored-issue record")
	default:
		return dErrors.Wrap(err, dErrors.CodeStoreUnavailable, "ignored-issue store "+op+" failed")
	}
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"action", event.Action,
			"tree_id", event.TreeID,
			"xref", event.Xref,
			"code", event.Code,
			"error", err,
		)
	}
}

func checkKey(tree id.TreeID, xref id.Xref, code string) error {
	if tree.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "tree ID required")
	}
	if xref.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "xref required")
	}
	if code == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "issue code required")
	}
	return validation.CheckLengths(
		validation.Field{Name: "xref", Value: xref.String(), Max: validation.MaxXrefLength},
		validation.Field{Name: "code", Value: code, Max: validation.MaxCodeLength},
	)
}
