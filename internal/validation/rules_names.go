package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"datencheck/internal/graph"
	"datencheck/internal/names"
	"datencheck/internal/strmatch"
)

// nameMismatchRatio is the share of edits above which two given names of
// the same person are considered different names.
const nameMismatchRatio = 0.4

var (
	controlChars   = regexp.MustCompile(`[\x00-\x1F\x7F]`)
	slashedSurname = regexp.MustCompile(`/(.*)/`)
)

// personNames lists the stored names followed by the overrides. The first
// override is a primary NAME; further ones are NAME_OVERRIDE.
func (r *run) personNames() []graph.Name {
	var all []graph.Name
	if r.in.Person != nil {
		all = append(all, r.in.Person.Names...)
	}
	if strings.TrimSpace(r.in.Overrides.Given) == "" {
		return all
	}
	surnames := strings.Split(r.in.Overrides.Surname, "|")
	for i, given := range strings.Split(r.in.Overrides.Given, "|") {
		surname := surnames[0]
		if i < len(surnames) {
			surname = surnames[i]
		}
		typ := "NAME_OVERRIDE"
		if i == 0 {
			typ = "NAME"
		}
		all = append(all, graph.Name{
			Given:   given,
			Surname: surname,
			Full:    given + " " + surname,
			Type:    typ,
		})
	}
	return all
}

func (r *run) nameConsistency() []Issue {
	all := r.personNames()
	if len(all) == 0 {
		return nil
	}
	primary := all[0]
	primaryGiven := strings.ToLower(strings.TrimSpace(primary.Given))
	surname := strings.TrimSpace(primary.Surname)

	var out []Issue
	if primaryGiven == "" && surname != "" {
		out = append(out, issue(CodeMissingGivenName, TypeMissingGivenName, SeverityWarning,
			"Person has a surname but no given name"))
	}

	for _, other := range all[1:] {
		given := strings.ToLower(strings.TrimSpace(other.Given))
		if given == "" || given == primaryGiven {
			continue
		}
		longest := max(utf8.RuneCountInString(primaryGiven), utf8.RuneCountInString(given))
		if longest == 0 {
			continue
		}
		if float64(strmatch.Distance(primaryGiven, given))/float64(longest) <= nameMismatchRatio {
			continue
		}
		kind := "alternative name"
		if t := strings.ToUpper(other.Type); t == "_MARNM" || strings.Contains(t, "MARRIED") {
			kind = "married name"
		}
		out = append(out, issue(CodeNameMismatch, TypeNameMismatch, SeverityWarning,
			fmt.Sprintf("Different given names: %q (%s) vs. %q (birth name)", other.Given, kind, primary.Given),
		).with(map[string]any{"name_type": other.Type}))
	}

	full := primary.Full
	if full == "" {
		full = primary.Given + " " + primary.Surname
	}
	if controlChars.MatchString(full) {
		out = append(out, issue(CodeNameEncoding, TypeNameEncoding, SeverityWarning,
			fmt.Sprintf("Name %q contains invalid characters", full)))
	}

	if names.HasFusedPrefix(surname) {
		out = append(out, issue(CodeSurnamePrefix, TypeSurnamePrefix, SeverityInfo,
			fmt.Sprintf("Surname %q joins a name prefix to the name; prefixes are usually separated", surname)))
	}

	if i, ok := r.parentSurnames(surname); ok {
		out = append(out, i)
	}
	return out
}

// parentSurnames reports a child surname that matches neither father. A
// match with the mother only is informational.
func (r *run) parentSurnames(surname string) (Issue, bool) {
	if surname == "" || len(r.in.Parents) == 0 {
		return Issue{}, false
	}
	conv := r.s.Conventions()
	fathers, fatherMatch, motherMatch := 0, false, false
	for _, pair := range r.in.Parents {
		if f := pair.Father; f != nil {
			fathers++
			if names.SurnamesCompatible(surname, storedSurname(f), f.Given(), conv) {
				fatherMatch = true
			}
		}
		if m := pair.Mother; m != nil {
			if names.SurnamesCompatible(surname, storedSurname(m), m.Given(), conv) {
				motherMatch = true
			}
		}
	}
	if fathers == 0 || fatherMatch {
		return Issue{}, false
	}
	if motherMatch {
		return issue(CodeSurnameMismatchMother, TypeSurnameMismatchMother, SeverityInfo,
			fmt.Sprintf("Surname %q matches the mother but differs from the father", surname)), true
	}
	return issue(CodeSurnameMismatchFather, TypeSurnameMismatchFather, SeverityWarning,
		fmt.Sprintf("Surname %q differs from the father", surname)), true
}

// storedSurname is the first NAME surname, or the slashed part of the full
// name.
func storedSurname(p *graph.Person) string {
	for _, n := range p.Names {
		if n.Type == "NAME" && strings.TrimSpace(n.Surname) != "" {
			return n.Surname
		}
	}
	for _, n := range p.Names {
		if m := slashedSurname.FindStringSubmatch(n.Full); m != nil {
			return m[1]
		}
	}
	return ""
}
