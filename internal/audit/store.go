package audit

import "context"

// Store persists or forwards audit events.
//
// Error Contract:
//   - Append returns a wrapped transport or storage error on failure.
//     Callers treat audit failures as non-fatal.
type Store interface {
	Append(ctx context.Context, event Event) error
}
