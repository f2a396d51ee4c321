package validation

import (
	"fmt"

	"datencheck/internal/dates"
	"datencheck/internal/graph"
)

const (
	// baptismDelayMinDays and baptismDelayMaxDays bound a late infant
	// baptism; beyond ten years it is an adult baptism.
	baptismDelayMinDays = 30
	baptismDelayMaxDays = 3650
)

var futureDateTags = []string{graph.TagBirth, graph.TagBaptism, graph.TagDeath, graph.TagBurial}

func (r *run) temporal() []Issue {
	var out []Issue
	for _, check := range []func() (Issue, bool){
		r.birthAfterDeath,
		r.baptismBeforeBirth,
		r.burialBeforeDeath,
		r.lifespan,
	} {
		if i, ok := check(); ok {
			out = append(out, i)
		}
	}
	return append(out, r.futureDates()...)
}

// birthAfterDeath compares the birth window with the death window, or the
// burial window without a death date. Only precise dates prove an
// impossibility; overlapping imprecise windows are reported as info.
func (r *run) birthAfterDeath() (Issue, bool) {
	birth, ok := r.window(graph.TagBirth)
	if !ok {
		return Issue{}, false
	}
	endTag := r.endTag()
	end, ok := r.window(endTag)
	if !ok {
		return Issue{}, false
	}
	imprecise := !birth.Precise || !end.Precise
	endWord := "death"
	if endTag == graph.TagBurial {
		endWord = "burial"
	}
	details := map[string]any{
		"birth_date": r.raw(graph.TagBirth),
		"end_date":   r.raw(endTag),
		"end_type":   endTag,
	}

	switch {
	case birth.Min > end.Max:
		if imprecise && birth.MinYear() <= end.MaxYear() {
			return r.impreciseBirthDeath(endTag, details), true
		}
		return issue(CodeBirthAfterDeath, TypeTemporalImpossibility, SeverityError,
			fmt.Sprintf("Birth date (%s) is after the %s date (%s)", r.raw(graph.TagBirth), endWord, r.raw(endTag)),
		).with(details), true
	case birth.Max > end.Min && imprecise:
		return r.impreciseBirthDeath(endTag, details), true
	}
	return Issue{}, false
}

func (r *run) impreciseBirthDeath(endTag string, details map[string]any) Issue {
	return issue(CodeImpreciseBirthDeath, TypeTemporalImpossibility, SeverityInfo,
		fmt.Sprintf("Birth and %s dates are imprecise (%s - %s); exact dates are missing",
			factLabels[endTag], r.raw(graph.TagBirth), r.raw(endTag)),
	).with(details)
}

func (r *run) baptismBeforeBirth() (Issue, bool) {
	birth, ok := r.window(graph.TagBirth)
	if !ok {
		return Issue{}, false
	}
	bap, ok := r.window(graph.TagBaptism)
	if !ok {
		return Issue{}, false
	}
	switch {
	case bap.Max < birth.Min:
		return issue(CodeBaptismBeforeBirth, TypeChronological, SeverityError, "Baptism is before birth"), true
	case bap.Min < birth.Min && !(birth.Precise && bap.Precise):
		return issue(CodeImpreciseBaptism, TypeChronological, SeverityInfo,
			"Birth and baptism dates are imprecise; exact dates are missing"), true
	}
	if birth.Precise && bap.Precise {
		diff := bap.Min - birth.Min
		if diff > baptismDelayMinDays && diff < baptismDelayMaxDays {
			return issue(CodeBaptismDelayed, TypeChronological, SeverityWarning,
				fmt.Sprintf("Baptism is unusually long after birth (%d days)", diff),
			).with(map[string]any{"diff_days": diff}), true
		}
	}
	return Issue{}, false
}

func (r *run) burialBeforeDeath() (Issue, bool) {
	death, ok := r.window(graph.TagDeath)
	if !ok {
		return Issue{}, false
	}
	burial, ok := r.window(graph.TagBurial)
	if !ok {
		return Issue{}, false
	}
	switch {
	case burial.Max < death.Min:
		return issue(CodeBurialBeforeDeath, TypeChronological, SeverityError, "Burial is before death"), true
	case burial.Min < death.Min && !(death.Precise && burial.Precise):
		return issue(CodeImpreciseBurial, TypeChronological, SeverityInfo,
			"Death and burial dates are imprecise; exact dates are missing"), true
	}
	return Issue{}, false
}

func (r *run) lifespan() (Issue, bool) {
	birthYear, ok := r.year(graph.TagBirth)
	if !ok {
		return Issue{}, false
	}
	endYear, ok := r.year(graph.TagDeath)
	if !ok {
		if endYear, ok = r.year(graph.TagBurial); !ok {
			return Issue{}, false
		}
	}
	span := endYear - birthYear
	if span <= r.s.MaxLifespan {
		return Issue{}, false
	}
	who := "Person"
	if name := r.subjectName(); name != "" {
		who = fmt.Sprintf("Person %q", name)
	}
	return issue(CodeLifespanTooHigh, TypeTemporalImplausibility, SeverityWarning,
		fmt.Sprintf("%s lived %d years (born %d, died %d)", who, span, birthYear, endYear),
	).with(map[string]any{
		"birth_date": birthYear,
		"death_date": endYear,
		"lifespan":   span,
	}), true
}

// futureDates flags events dated after the evaluation time, typically a
// mistyped century.
func (r *run) futureDates() []Issue {
	if r.in.Now.IsZero() {
		return nil
	}
	today := dates.FromTime(r.in.Now)
	var out []Issue
	for _, tag := range futureDateTags {
		raw := r.raw(tag)
		if i, ok := futureDate(tag, raw, today); ok {
			out = append(out, i)
		}
	}
	raws := []string{r.in.Overrides.Marriage}
	for _, sf := range r.in.SpouseFamilies {
		if sf.Family != nil && sf.Family.Marriage != nil {
			raws = append(raws, sf.Family.Marriage.Date)
		}
	}
	for _, raw := range raws {
		if i, ok := futureDate(graph.TagMarriage, raw, today); ok {
			return append(out, i)
		}
	}
	return out
}

func futureDate(tag, raw string, today int) (Issue, bool) {
	w, ok := dates.Window(raw)
	if !ok || w.Min <= today {
		return Issue{}, false
	}
	return issue(CodeFutureDatePrefix+tag, TypeTemporalImpossibility, SeverityError,
		fmt.Sprintf("The %s date (%s) is in the future", factLabels[tag], raw),
	).with(map[string]any{"year": w.MinYear()}), true
}
