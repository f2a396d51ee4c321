package validation

import (
	"fmt"
	"slices"

	"datencheck/internal/dates"
	"datencheck/internal/graph"
	id "datencheck/pkg/domain"
)

// interactiveMarriage checks a marriage date entered in a form against the
// partners named by the form and against the subject's own life dates.
func (r *run) interactiveMarriage() []Issue {
	marriageYear, ok := dates.ParseYear(r.in.Overrides.Marriage)
	if !ok {
		return nil
	}
	var out []Issue
	for _, partner := range []*graph.Person{r.in.Husband, r.in.Wife} {
		if partner == nil {
			continue
		}
		out = append(out, r.partnerAtMarriage(partner, marriageYear)...)
	}
	out = append(out, r.subjectAtMarriage(marriageYear)...)

	if h := r.in.Husband; h != nil && h.Sex == id.SexFemale {
		out = append(out, issue(CodeGenderMismatchHusband, TypeGender, SeverityError,
			fmt.Sprintf("Husband %q is recorded as female", h.FullName())))
	}
	if w := r.in.Wife; w != nil && w.Sex == id.SexMale {
		out = append(out, issue(CodeGenderMismatchWife, TypeGender, SeverityError,
			fmt.Sprintf("Wife %q is recorded as male", w.FullName())))
	}
	return out
}

func (r *run) partnerAtMarriage(p *graph.Person, marriageYear int) []Issue {
	var out []Issue
	if birthYear, ok := p.Birth.Year(); ok {
		if marriageYear < birthYear {
			out = append(out, issue(CodeMarriageBeforePartnerBirth, TypeMarriageBeforeBirth, SeverityError,
				fmt.Sprintf("Marriage (%d) is before the birth of %s (%d)", marriageYear, p.FullName(), birthYear)))
		} else {
			age := marriageYear - birthYear
			switch {
			case age < r.s.MinMarriageAgeWarning:
				out = append(out, issue(CodeMarriagePartnerTooYoung, TypeMarriageEarly, SeverityWarning,
					fmt.Sprintf("Partner %q was only %d years old at the marriage", p.FullName(), age)))
			case age > r.s.MaxMarriageAgeWarning:
				out = append(out, issue(CodeMarriagePartnerTooOld, TypeMarriageLate, SeverityWarning,
					fmt.Sprintf("Partner %q was already %d years old at the marriage", p.FullName(), age)))
			}
		}
	}
	if deathYear, ok := p.Death.Year(); ok && marriageYear > deathYear {
		out = append(out, issue(CodeMarriageAfterPartnerDeath, TypeMarriageAfterDeath, SeverityError,
			fmt.Sprintf("Marriage (%d) is after the death of %s (%d)", marriageYear, p.FullName(), deathYear)))
	}
	return out
}

func (r *run) subjectAtMarriage(marriageYear int) []Issue {
	var out []Issue
	if birthYear, ok := r.year(graph.TagBirth); ok {
		if marriageYear < birthYear {
			out = append(out, issue(CodeMarriageBeforeBirth, TypeMarriageBeforeBirth, SeverityError,
				fmt.Sprintf("Marriage (%d) is before the person's own birth (%d)", marriageYear, birthYear)))
		} else {
			age := marriageYear - birthYear
			switch {
			case age < r.s.MinMarriageAgeWarning:
				out = append(out, issue(CodeMarriageTooYoung, TypeMarriageEarly, SeverityWarning,
					fmt.Sprintf("Person was only %d years old at the marriage", age)))
			case age > r.s.MaxMarriageAgeWarning:
				out = append(out, issue(CodeMarriageTooOld, TypeMarriageLate, SeverityWarning,
					fmt.Sprintf("Person was already %d years old at the marriage", age)))
			}
		}
	}
	if deathYear, ok := r.year(graph.TagDeath); ok && marriageYear > deathYear {
		out = append(out, issue(CodeMarriageAfterDeath, TypeMarriageAfterDeath, SeverityError,
			fmt.Sprintf("Marriage (%d) is after the person's own death (%d)", marriageYear, deathYear)))
	}
	return out
}

type datedMarriage struct {
	family  *graph.Family
	partner *graph.Person
	year    int
}

// storedMarriages checks the recorded spouse families: their dates against
// the person's life, their number, and whether a marriage starts while the
// previous partner was still alive.
func (r *run) storedMarriages() []Issue {
	p := r.in.Person
	var out []Issue

	birthYear, hasBirth := r.year(graph.TagBirth)
	deathYear, hasDeath := r.year(graph.TagDeath)
	var dated []datedMarriage
	for _, sf := range r.in.SpouseFamilies {
		if sf.Family == nil {
			continue
		}
		year, ok := sf.Family.Marriage.Year()
		if !ok {
			continue
		}
		dated = append(dated, datedMarriage{family: sf.Family, partner: sf.Partner, year: year})
		if hasBirth && year < birthYear {
			out = append(out, issue(CodeMarriageBeforeBirth, TypeTemporalImpossibility, SeverityError,
				fmt.Sprintf("Marriage (%s) is before the birth (%d) of %q", sf.Family.Marriage.Date, birthYear, p.FullName()),
			).with(map[string]any{"birth_date": birthYear, "marriage_date": year, "family": sf.Family.Xref.String()}))
		}
		if hasDeath && year > deathYear {
			out = append(out, issue(CodeMarriageAfterDeath, TypeTemporalImpossibility, SeverityError,
				fmt.Sprintf("Marriage (%s) is after the death (%d) of %q", sf.Family.Marriage.Date, deathYear, p.FullName()),
			).with(map[string]any{"death_date": deathYear, "marriage_date": year, "family": sf.Family.Xref.String()}))
		}
	}

	if n := len(r.in.SpouseFamilies); n > r.s.MaxMarriagesWarning {
		out = append(out, issue(CodeTooManyMarriages, TypeMarriageMany, SeverityInfo,
			fmt.Sprintf("Person %q has %d marriages", p.FullName(), n),
		).with(map[string]any{"marriage_count": n, "threshold": r.s.MaxMarriagesWarning}))
	}

	slices.SortStableFunc(dated, func(a, b datedMarriage) int { return a.year - b.year })
	for i := 1; i < len(dated); i++ {
		prev, cur := dated[i-1], dated[i]
		if prev.partner == nil {
			continue
		}
		death, ok := prev.partner.Death.Window()
		if !ok {
			out = append(out, issue(CodeMarriagePossiblyOverlap, TypeMarriagePossiblyOverlap, SeverityWarning,
				fmt.Sprintf("Marriage (%d) possibly during the marriage with %q (death date unknown)", cur.year, prev.partner.FullName()),
			).with(map[string]any{"marriage_year": cur.year, "previous_spouse": prev.partner.FullName()}))
			continue
		}
		if deathYear := death.MaxYear(); cur.year < deathYear {
			out = append(out, issue(CodeMarriageOverlapping, TypeMarriageOverlapping, SeverityError,
				fmt.Sprintf("Marriage (%d) before the death (%d) of the previous spouse %q", cur.year, deathYear, prev.partner.FullName()),
			).with(map[string]any{
				"marriage_year":         cur.year,
				"previous_spouse":       prev.partner.FullName(),
				"previous_spouse_death": deathYear,
			}))
		}
	}
	return out
}

// genderConsistency checks the person's sex against their role in each
// spouse family.
func (r *run) genderConsistency() []Issue {
	p := r.in.Person
	var out []Issue
	for _, sf := range r.in.SpouseFamilies {
		f := sf.Family
		if f == nil {
			continue
		}
		if f.Husband == p.Xref && p.Sex == id.SexFemale {
			out = append(out, issue(CodeGenderMismatchHusband, TypeGender, SeverityError,
				fmt.Sprintf("%q is recorded as husband but is female", p.FullName()),
			).with(map[string]any{"person_sex": "F", "role": "HUSB", "family": f.Xref.String()}))
		}
		if f.Wife == p.Xref && p.Sex == id.SexMale {
			out = append(out, issue(CodeGenderMismatchWife, TypeGender, SeverityError,
				fmt.Sprintf("%q is recorded as wife but is male", p.FullName()),
			).with(map[string]any{"person_sex": "M", "role": "WIFE", "family": f.Xref.String()}))
		}
	}
	return out
}
