package validation

import (
	"fmt"
	"strings"

	"datencheck/internal/dates"
	"datencheck/internal/graph"
)

// Validate runs every rule stage against in and returns the issues that are
// not ignored, in stage order, with a debug trace. It performs no I/O.
func Validate(in Input, s Settings) Result {
	r := &run{in: &in, s: s}
	r.debug = Debug{
		Person:        personLabel(in.Person),
		Tree:          in.Tree,
		ResolutionLog: append([]string(nil), in.ResolutionLog...),
		Overrides: DebugOverrides{
			Husband: in.Overrides.Husband,
			Wife:    in.Overrides.Wife,
			Family:  in.Overrides.Family,
			RelType: in.RelType,
		},
		Parents: parentLabels(in.Parents),
	}
	if y, ok := r.year(graph.TagBirth); ok {
		r.debug.BirthYear = y
	}

	var issues []Issue
	if in.RelType != RelationSpouse {
		issues = append(issues, r.biological()...)
	}
	issues = append(issues, r.temporal()...)
	issues = append(issues, r.interactiveMarriage()...)
	if in.Person != nil {
		issues = append(issues, r.storedMarriages()...)
		issues = append(issues, r.genderConsistency()...)
	}
	if s.EnableMissingDataChecks {
		issues = append(issues, r.missingData()...)
	}
	if s.EnableGeographicChecks {
		issues = append(issues, r.geographic()...)
	}
	if s.EnableNameConsistencyChecks {
		issues = append(issues, r.nameConsistency()...)
	}
	if s.EnableSourceChecks {
		issues = append(issues, r.sourceQuality()...)
	}

	kept := FilterIgnored(issues, in.Ignored)
	r.debug.IgnoredCount = len(issues) - len(kept)
	return Result{Issues: kept, Debug: r.debug}
}

// FilterIgnored drops issues whose code is in ignored. Issues without a code
// are always kept.
func FilterIgnored(issues []Issue, ignored map[string]struct{}) []Issue {
	out := make([]Issue, 0, len(issues))
	for _, i := range issues {
		if i.Code != "" {
			if _, skip := ignored[i.Code]; skip {
				continue
			}
		}
		out = append(out, i)
	}
	return out
}

// run is the state of one pipeline pass.
type run struct {
	in    *Input
	s     Settings
	debug Debug
}

// raw returns the override for tag when it is not blank, otherwise the
// stored fact's date.
func (r *run) raw(tag string) string {
	var override string
	switch tag {
	case graph.TagBirth:
		override = r.in.Overrides.Birth
	case graph.TagDeath:
		override = r.in.Overrides.Death
	case graph.TagBurial:
		override = r.in.Overrides.Burial
	case graph.TagBaptism:
		override = r.in.Overrides.Baptism
	}
	if strings.TrimSpace(override) != "" {
		return override
	}
	if f := r.in.Person.Fact(tag); f != nil {
		return f.Date
	}
	return ""
}

func (r *run) year(tag string) (int, bool) {
	return dates.ParseYear(r.raw(tag))
}

func (r *run) window(tag string) (dates.Interval, bool) {
	return dates.Window(r.raw(tag))
}

// endTag is DEAT when a death date is known, otherwise BURI.
func (r *run) endTag() string {
	if _, ok := r.window(graph.TagDeath); ok {
		return graph.TagDeath
	}
	return graph.TagBurial
}

// subjectName is the person's display name, or the given-name override for
// a record that does not exist yet.
func (r *run) subjectName() string {
	if r.in.Person != nil {
		return r.in.Person.FullName()
	}
	given, _, _ := strings.Cut(r.in.Overrides.Given, "|")
	surname, _, _ := strings.Cut(r.in.Overrides.Surname, "|")
	return strings.TrimSpace(given + " " + surname)
}

func issue(code, typ string, sev Severity, msg string) Issue {
	return Issue{Code: code, Type: typ, Severity: sev, Message: msg}
}

func (i Issue) with(details map[string]any) Issue {
	i.Details = details
	return i
}

func personLabel(p *graph.Person) string {
	if p == nil {
		return "NEW"
	}
	return p.Label()
}

func parentLabels(pairs []ParentPair) []string {
	out := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		fam := "override"
		if pair.Family != nil {
			fam = pair.Family.Xref.Pointer()
		}
		out = append(out, fmt.Sprintf("%s: father=%s mother=%s", fam, orNone(pair.Father), orNone(pair.Mother)))
	}
	return out
}

func orNone(p *graph.Person) string {
	if p == nil {
		return "-"
	}
	return p.Label()
}

// displayDate prefers the raw string and falls back to the year.
func displayDate(raw string, year int) string {
	if s := strings.TrimSpace(raw); s != "" {
		return s
	}
	return fmt.Sprint(year)
}
