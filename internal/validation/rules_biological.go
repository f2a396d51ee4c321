package validation

import (
	"fmt"
	"math"
	"strings"

	"datencheck/internal/graph"
	id "datencheck/pkg/domain"
)

const (
	// posthumousBirthDays is how long after the father's death a child can
	// still be born.
	posthumousBirthDays = 280
	// duplicateSiblingDays is the window in which a sibling with the same
	// given name is reported as a possible duplicate.
	duplicateSiblingDays = 1825
	daysPerMonth         = 30.44
)

func (r *run) biological() []Issue {
	var out []Issue
	for _, pair := range r.in.Parents {
		motherCalculable := false
		if pair.Mother != nil {
			if _, ok := pair.Mother.Birth.Year(); ok {
				if i, ok := r.parentAge(pair.Mother, true); ok {
					out = append(out, i)
				}
				motherCalculable = true
			}
			if i, ok := r.birthAfterMotherDeath(pair.Mother); ok {
				out = append(out, i)
			}
		}
		if pair.Father != nil {
			if pair.Mother == nil || !motherCalculable {
				if i, ok := r.parentAge(pair.Father, false); ok {
					out = append(out, i)
				}
			}
			if i, ok := r.birthAfterFatherDeath(pair.Father); ok {
				out = append(out, i)
			}
		}
		if pair.Mother != nil || pair.Father != nil {
			out = append(out, r.siblings(pair.Siblings)...)
		}
	}
	return out
}

// parentAge compares the parent's age at the child's birth with the
// configured bounds. An age equal to a bound is accepted.
func (r *run) parentAge(parent *graph.Person, mother bool) (Issue, bool) {
	childYear, ok := r.year(graph.TagBirth)
	if !ok {
		return Issue{}, false
	}
	parentYear, ok := parent.Birth.Year()
	if !ok {
		return Issue{}, false
	}
	age := childYear - parentYear

	role, minAge, maxAge := "Father", r.s.MinFatherAge, r.s.MaxFatherAge
	young, old := CodeFatherTooYoung, CodeFatherTooOld
	nameKey, birthKey := "father_name", "father_birth"
	if mother {
		role, minAge, maxAge = "Mother", r.s.MinMotherAge, r.s.MaxMotherAge
		young, old = CodeMotherTooYoung, CodeMotherTooOld
		nameKey, birthKey = "mother_name", "mother_birth"
	}
	details := map[string]any{
		nameKey:          parent.FullName(),
		birthKey:         parentYear,
		"child_birth":    childYear,
		"calculated_age": age,
	}
	switch {
	case age < minAge:
		return issue(young, TypeBiologicalImplausibility, SeverityError,
			fmt.Sprintf("%s %q was only %d years old at the birth (%s); born %s",
				role, parent.FullName(), age, displayDate(r.raw(graph.TagBirth), childYear), displayDate(parent.Birth.Date, parentYear)),
		).with(details), true
	case age > maxAge:
		return issue(old, TypeBiologicalImplausibility, SeverityWarning,
			fmt.Sprintf("%s %q was %d years old at the birth (%s); born %s",
				role, parent.FullName(), age, displayDate(r.raw(graph.TagBirth), childYear), displayDate(parent.Birth.Date, parentYear)),
		).with(details), true
	}
	return Issue{}, false
}

// birthAfterMotherDeath allows one year of slack for a birth shortly after
// the mother's recorded death or burial.
func (r *run) birthAfterMotherDeath(mother *graph.Person) (Issue, bool) {
	childYear, ok := r.year(graph.TagBirth)
	if !ok {
		return Issue{}, false
	}
	end := mother.Death
	endYear, ok := end.Year()
	if !ok {
		end = mother.Burial
		if endYear, ok = end.Year(); !ok {
			return Issue{}, false
		}
	}
	if childYear-endYear <= 1 {
		return Issue{}, false
	}
	return issue(CodeBirthAfterMotherDeath, TypeBiologicalImpossibility, SeverityError,
		fmt.Sprintf("Child born (%s) %d year(s) after the death or burial (%s) of mother %q",
			displayDate(r.raw(graph.TagBirth), childYear), childYear-endYear, displayDate(end.Date, endYear), mother.FullName()),
	).with(map[string]any{
		"mother_name": mother.FullName(),
		"mother_end":  endYear,
		"child_birth": childYear,
	}), true
}

func (r *run) birthAfterFatherDeath(father *graph.Person) (Issue, bool) {
	child, ok := r.window(graph.TagBirth)
	if !ok {
		return Issue{}, false
	}
	end, ok := father.Death.Window()
	if !ok {
		if end, ok = father.Burial.Window(); !ok {
			return Issue{}, false
		}
	}
	diff := child.Min - end.Min
	if diff <= posthumousBirthDays {
		return Issue{}, false
	}
	return issue(CodeBirthAfterFatherDeath, TypeBiologicalImpossibility, SeverityError,
		fmt.Sprintf("Child born %d days after the death or burial of father %q (limit: %d days)",
			diff, father.FullName(), posthumousBirthDays),
	).with(map[string]any{
		"father_name":    father.FullName(),
		"father_end_jd":  end.Min,
		"child_birth_jd": child.Min,
		"diff_days":      diff,
	}), true
}

// siblings compares the subject's birth with each sibling's birth, or
// baptism when the birth is unknown. Every comparison lands in the trace.
func (r *run) siblings(sibs []*graph.Person) []Issue {
	subject, ok := r.window(graph.TagBirth)
	if !ok {
		return nil
	}
	thresholdDays := float64(r.s.MinSiblingSpacingWarning) * daysPerMonth
	subjectGiven := r.subjectGiven()
	subjectNorm := normalizeGiven(subjectGiven)
	subjectYear, hasSubjectYear := r.year(graph.TagBirth)
	subjectXref := "NEW"
	var self id.Xref
	if r.in.Person != nil {
		self = r.in.Person.Xref
		subjectXref = self.String()
	}

	var out []Issue
	seen := make(map[id.Xref]struct{}, len(sibs))
	for _, sib := range sibs {
		if sib == nil || sib.Xref == self {
			continue
		}
		if _, dup := seen[sib.Xref]; dup {
			continue
		}
		seen[sib.Xref] = struct{}{}

		event, label := sib.Birth, "birth"
		w, ok := event.Window()
		if !ok {
			event, label = sib.Baptism, "baptism"
			if w, ok = event.Window(); !ok {
				continue
			}
		}
		diff := subject.Min - w.Min
		if diff < 0 {
			diff = -diff
		}
		sibGiven := sib.Given()
		sibNorm := normalizeGiven(sibGiven)
		sibYear, hasSibYear := sib.Birth.Year()
		sameYear := hasSubjectYear && hasSibYear && subjectYear == sibYear
		nameMatch := subjectNorm != "" && sibNorm != "" &&
			(strings.Contains(sibNorm, subjectNorm) || strings.Contains(subjectNorm, sibNorm))

		r.debug.SiblingComparisons = append(r.debug.SiblingComparisons, SiblingComparison{
			Subject:     subjectGiven,
			SubjectNorm: subjectNorm,
			Sibling:     sibGiven,
			SiblingNorm: sibNorm,
			SubjectXref: subjectXref,
			SiblingXref: sib.Xref,
			DiffDays:    diff,
			SameYear:    sameYear,
			NameMatch:   nameMatch,
		})

		if nameMatch && (diff < duplicateSiblingDays || sameYear) {
			out = append(out, issue(CodeDuplicateSibling, TypeDuplicateCheck, SeverityWarning,
				fmt.Sprintf("Sibling %q has an identical or similar given name (%s)", sib.FullName(), event.Date),
			).with(map[string]any{"sibling": sib.Xref.String(), "diff_days": diff}))
		}
		if diff > 1 && float64(diff) < thresholdDays {
			months := math.Round(float64(diff)/daysPerMonth*10) / 10
			out = append(out, issue(CodeSiblingTooClose, TypeSiblingSpacing, SeverityWarning,
				fmt.Sprintf("Spacing to sibling %q (%s: %s) is only %.1f months", sib.FullName(), label, event.Date, months),
			).with(map[string]any{"sibling": sib.Xref.String(), "diff_days": diff, "months": months}))
		}
	}
	return out
}

// subjectGiven is the stored given name, falling back to the first
// given-name override.
func (r *run) subjectGiven() string {
	if g := r.in.Person.Given(); g != "" {
		return g
	}
	given, _, _ := strings.Cut(r.in.Overrides.Given, "|")
	return strings.TrimSpace(given)
}

var sharpS = strings.NewReplacer("ß", "ss")

func normalizeGiven(s string) string {
	return sharpS.Replace(strings.ToLower(strings.TrimSpace(s)))
}

