// Package domain provides type-safe identifiers so tree ids, record xrefs and
// event ids cannot be mixed up at compile time.
package domain

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	dErrors "datencheck/pkg/domain-errors"
)

// Distinct ID types - compiler prevents passing an Xref where a TreeID is expected.
type (
	TreeID  int
	Xref    string
	EventID uuid.UUID
)

// Parse functions - use at trust boundaries (CLI flags, form input).

func ParseTreeID(s string) (TreeID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "tree ID cannot be empty")
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid tree ID")
	}
	return TreeID(n), nil
}

// ParseXref strips the GEDCOM pointer decoration ("@I12@" -> "I12") and
// surrounding whitespace.
func ParseXref(s string) (Xref, error) {
	x := TrimXref(s)
	if x == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "xref cannot be empty")
	}
	return x, nil
}

// TrimXref is ParseXref without the emptiness check.
func TrimXref(s string) Xref {
	return Xref(strings.Trim(s, "@ \t"))
}

func NewEventID() EventID {
	return EventID(uuid.New())
}

// String methods - for logging and debugging.

func (id TreeID) String() string  { return strconv.Itoa(int(id)) }
func (id Xref) String() string    { return string(id) }
func (id EventID) String() string { return uuid.UUID(id).String() }

// IsNil checks - used for service-layer validation.

func (id TreeID) IsNil() bool  { return id <= 0 }
func (id Xref) IsNil() bool    { return id == "" }
func (id EventID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// Pointer renders the xref in GEDCOM pointer form.
func (id Xref) Pointer() string {
	if id == "" {
		return ""
	}
	return "@" + string(id) + "@"
}

// MarshalText renders an EventID in canonical UUID form for JSON payloads.
func (id EventID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

func (id *EventID) UnmarshalText(b []byte) error {
	var u uuid.UUID
	if err := u.UnmarshalText(b); err != nil {
		return err
	}
	*id = EventID(u)
	return nil
}
