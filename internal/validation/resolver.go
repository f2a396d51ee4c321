package validation

import (
	"strings"

	id "datencheck/pkg/domain"
)

// Strategy derives one candidate xref from a cleaned form reference.
type Strategy struct {
	Name  string
	Apply func(ref string) (id.Xref, bool)
}

// Strategies are tried in order until the graph knows the candidate. Form
// fields carry xrefs in whatever shape the user or the host UI produced:
// bare, as a GEDCOM pointer, or with the individual prefix swapped.
var Strategies = []Strategy{
	{Name: "raw", Apply: rawRef},
	{Name: "pointer", Apply: pointerRef},
	{Name: "prefix_swap", Apply: swapPrefix},
}

// CleanRef strips GEDCOM pointer delimiters and whitespace.
func CleanRef(raw string) string {
	return strings.Trim(raw, "@ \t\r\n")
}

func rawRef(ref string) (id.Xref, bool) {
	return id.Xref(ref), ref != ""
}

func pointerRef(ref string) (id.Xref, bool) {
	if ref == "" {
		return "", false
	}
	return id.Xref("@" + ref + "@"), true
}

// swapPrefix turns "X12" into "I12" and back. Some hosts create individuals
// with an X prefix while older exports use I.
func swapPrefix(ref string) (id.Xref, bool) {
	if len(ref) < 2 {
		return "", false
	}
	switch ref[0] {
	case 'X', 'x':
		return id.Xref("I" + ref[1:]), true
	case 'I', 'i':
		return id.Xref("X" + ref[1:]), true
	}
	return "", false
}

// Candidates lists the distinct xrefs the strategies produce for raw, in
// strategy order, each paired with the strategy name.
func Candidates(raw string) []Candidate {
	ref := CleanRef(raw)
	seen := make(map[id.Xref]struct{}, len(Strategies))
	out := make([]Candidate, 0, len(Strategies))
	for _, st := range Strategies {
		x, ok := st.Apply(ref)
		if !ok {
			continue
		}
		if _, dup := seen[x]; dup {
			continue
		}
		seen[x] = struct{}{}
		out = append(out, Candidate{Strategy: st.Name, Xref: x})
	}
	return out
}

// Candidate is one lookup attempt.
type Candidate struct {
	Strategy string
	Xref     id.Xref
}
