package validation

import (
	"fmt"
	"strings"

	"datencheck/internal/graph"
)

var sourcedTags = []string{graph.TagBirth, graph.TagBaptism, graph.TagDeath, graph.TagBurial}

// sourceQuality reports dated or placed events without any source evidence:
// no citation, no inline source text and no linked source record.
func (r *run) sourceQuality() []Issue {
	p := r.in.Person
	if p == nil {
		return nil
	}
	var out []Issue
	for _, tag := range sourcedTags {
		if unsourced(p.Fact(tag)) {
			out = append(out, issue(CodeMissingSourcePrefix+tag, TypeMissingSource, SeverityWarning,
				fmt.Sprintf("%s has no source citation", factLabels[tag])))
		}
	}
	for _, sf := range r.in.SpouseFamilies {
		if sf.Family == nil || !unsourced(sf.Family.Marriage) {
			continue
		}
		out = append(out, issue(CodeMissingSourcePrefix+graph.TagMarriage, TypeMissingSource, SeverityWarning,
			fmt.Sprintf("Marriage (%s) has no source citation", sf.Family.Xref.Pointer()),
		).with(map[string]any{"family": sf.Family.Xref.String()}))
	}
	return out
}

func unsourced(f *graph.DateFact) bool {
	if f == nil {
		return false
	}
	_, hasDate := f.Window()
	hasPlace := strings.TrimSpace(f.Place) != ""
	return (hasDate || hasPlace) && f.Evidence.Empty()
}
