// Package scan validates every person of a tree in pages with a bounded
// worker pool.
package scan

import (
	"context"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"datencheck/internal/platform/tracer"
	"datencheck/internal/scan/metrics"
	"datencheck/internal/validation"
	id "datencheck/pkg/domain"
	dErrors "datencheck/pkg/domain-errors"
)

const (
	defaultWorkers  = 4
	defaultPageSize = 200
)

// Lister pages through the persons of a tree in ascending xref order.
// graph.Provider satisfies it.
type Lister interface {
	PersonXrefs(ctx context.Context, tree id.TreeID, offset, limit int) ([]id.Xref, error)
}

// Validator validates one person. *validation.Service satisfies it.
type Validator interface {
	Validate(ctx context.Context, req validation.Request) (validation.Result, error)
}

// Warmer preloads ignore decisions for a page. *ignored.Service satisfies it.
type Warmer interface {
	Warm(ctx context.Context, tree id.TreeID, xrefs []id.Xref) error
}

// Finding is a person with at least one issue.
type Finding struct {
	Xref   id.Xref            `json:"xref"`
	Issues []validation.Issue `json:"issues"`
}

// Summary counts what a run did.
type Summary struct {
	Scanned    int
	WithIssues int
	Issues     int
	// Failed persons could not be validated and were skipped.
	Failed   int
	Pages    int
	Duration time.Duration
}

// Runner drives batch scans. It is safe for concurrent use.
type Runner struct {
	lister    Lister
	validator Validator
	warmer    Warmer
	workers   int
	pageSize  int
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    tracer.Tracer
}

type Option func(*Runner)

func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

func WithPageSize(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.pageSize = n
		}
	}
}

// WithWarmer preloads ignore decisions once per page instead of once per
// person.
func WithWarmer(w Warmer) Option {
	return func(r *Runner) {
		r.warmer = w
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Runner) {
		r.metrics = m
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(r *Runner) {
		if t != nil {
			r.tracer = t
		}
	}
}

// New creates a Runner. It panics if lister or validator is nil.
func New(lister Lister, validator Validator, opts ...Option) *Runner {
	if lister == nil {
		panic("scan: lister is required")
	}
	if validator == nil {
		panic("scan: validator is required")
	}
	r := &Runner{
		lister:    lister,
		validator: validator,
		workers:   defaultWorkers,
		pageSize:  defaultPageSize,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:    tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run validates every person of tree and calls fn, in xref order, for each
// person with issues. fn is never called concurrently; an error from fn
// stops the run and is returned.
//
// A person whose validation fails is logged, counted as failed and skipped.
// Listing failures and cancellation end the run with the summary so far.
func (r *Runner) Run(ctx context.Context, tree id.TreeID, fn func(Finding) error) (sum Summary, err error) {
	if tree.IsNil() {
		return Summary{}, dErrors.New(dErrors.CodeInvalidInput, "tree ID is required")
	}
	start := time.Now()
	ctx, span := r.tracer.Start(ctx, tracer.SpanScan,
		tracer.Int64(tracer.AttrTreeID, int64(tree)),
		tracer.Int(tracer.AttrPageSize, r.pageSize),
	)
	defer func() {
		sum.Duration = time.Since(start)
		span.SetAttributes(
			tracer.Int(tracer.AttrScanned, sum.Scanned),
			tracer.Int(tracer.AttrWithIssues, sum.WithIssues),
		)
		span.End(err)
	}()

	for offset := 0; ; {
		if err := ctx.Err(); err != nil {
			return sum, dErrors.Wrap(err, dErrors.CodeTimeout, "scan cancelled")
		}
		xrefs, err := r.lister.PersonXrefs(ctx, tree, offset, r.pageSize)
		if err != nil {
			return sum, dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to list persons")
		}
		if len(xrefs) == 0 {
			break
		}
		page, err := r.runPage(ctx, tree, offset, xrefs)
		sum.Pages++
		sum.Scanned += page.scanned
		sum.Failed += page.failed
		if err != nil {
			return sum, err
		}
		for _, f := range page.findings {
			if f.Xref.IsNil() {
				continue
			}
			sum.WithIssues++
			sum.Issues += len(f.Issues)
			if err := fn(f); err != nil {
				return sum, err
			}
		}
		if len(xrefs) < r.pageSize {
			break
		}
		offset += len(xrefs)
	}

	r.logger.InfoContext(ctx, "scan finished",
		"tree_id", tree.String(),
		"scanned", sum.Scanned,
		"with_issues", sum.WithIssues,
		"failed", sum.Failed,
		"pages", sum.Pages,
	)
	return sum, nil
}

// pageResult holds one page. findings is indexed like the page's xrefs and
// each worker writes only its own slot.
type pageResult struct {
	findings []Finding
	failed   int
	scanned  int
}

func (r *Runner) runPage(ctx context.Context, tree id.TreeID, offset int, xrefs []id.Xref) (pageResult, error) {
	start := time.Now()
	ctx, span := r.tracer.Start(ctx, tracer.SpanScanPage,
		tracer.Int(tracer.AttrPageOffset, offset),
		tracer.Int(tracer.AttrPageSize, len(xrefs)),
	)

	if r.warmer != nil {
		if err := r.warmer.Warm(ctx, tree, xrefs); err != nil {
			r.logger.WarnContext(ctx, "failed to warm ignored issues",
				"tree_id", tree.String(),
				"offset", offset,
				"error", err,
			)
			span.AddEvent(tracer.EventIgnoredStoreDegraded)
		}
	}

	findings := make([]Finding, len(xrefs))
	failed := make([]bool, len(xrefs))
	done := make([]bool, len(xrefs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, xref := range xrefs {
		g.Go(func() error {
			res, err := r.validator.Validate(gctx, validation.Request{Tree: tree, Xref: xref})
			if err != nil {
				if gctx.Err() != nil {
					return err
				}
				r.logger.WarnContext(gctx, "person skipped",
					"tree_id", tree.String(),
					"xref", xref.String(),
					"error", err,
				)
				failed[i] = true
				return nil
			}
			if len(res.Issues) > 0 {
				findings[i] = Finding{Xref: xref, Issues: res.Issues}
			}
			done[i] = true
			return nil
		})
	}
	err := g.Wait()

	out := pageResult{findings: findings}
	withIssues := 0
	for i := range xrefs {
		switch {
		case failed[i]:
			out.failed++
		case done[i]:
			out.scanned++
			if !findings[i].Xref.IsNil() {
				withIssues++
			}
		}
	}
	span.SetAttributes(
		tracer.Int(tracer.AttrScanned, out.scanned),
		tracer.Int(tracer.AttrWithIssues, withIssues),
	)
	span.End(err)
	if r.metrics != nil {
		r.metrics.ObservePage(time.Since(start).Seconds(), out.scanned, withIssues, out.failed)
	}
	if err != nil {
		return out, dErrors.Wrap(err, dErrors.CodeTimeout, "scan cancelled")
	}
	return out, nil
}
