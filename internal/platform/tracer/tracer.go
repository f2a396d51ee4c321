// Package tracer is a small tracing abstraction over OpenTelemetry.
//
// Services depend on Tracer rather than the OTel API so tests can pass the
// no-op implementation. NewOTel adapts the global OTel tracer provider.
package tracer

import (
	"context"
	"time"
)

// Span represents an active trace span.
type Span interface {
	// End completes the span. A non-nil err marks the span as failed.
	// End must be called exactly once.
	End(err error)

	SetAttributes(attrs ...Attribute)

	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
//
//	ctx, span := tr.Start(ctx, tracer.SpanValidate,
//	    tracer.Int64(tracer.AttrTreeID, int64(tree)),
//	)
//	defer span.End(err)
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute is a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int(key string, value int) Attribute {
	return Attribute{Key: key, Value: int64(value)}
}

// Duration records value in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// Span names.
const (
	SpanValidate      = "validation.validate"
	SpanGatherContext = "validation.gather_context"
	SpanScan          = "scan.run"
	SpanScanPage      = "scan.page"
)

// Attribute keys.
const (
	AttrTreeID      = "tree_id"
	AttrXref        = "xref"
	AttrIssueCount  = "issue_count"
	AttrIgnored     = "ignored_count"
	AttrPageOffset  = "page.offset"
	AttrPageSize    = "page.size"
	AttrScanned     = "scan.persons"
	AttrWithIssues  = "scan.persons_with_issues"
	AttrInteractive = "interactive"
)

// Event names.
const (
	EventIgnoredStoreDegraded = "ignored_store.degraded"
	EventProviderDegraded     = "graph_provider.degraded"
)
