package validation

import (
	"time"

	"datencheck/internal/graph"
	id "datencheck/pkg/domain"
)

// Severity ranks an issue for display and filtering.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue is one finding about a person. Issues are plain values; the pipeline
// never mutates an issue after creating it.
type Issue struct {
	Code     string         `json:"code"`
	Type     string         `json:"type"`
	Severity Severity       `json:"severity"`
	Message  string         `json:"message"`
	Details  map[string]any `json:"details,omitempty"`
}

// Label is the English short description of the issue code, or the code
// itself for codes without one.
func (i Issue) Label() string {
	return Label(i.Code)
}

// Overrides are the raw form values of an interactive edit. A non-blank date
// override replaces the stored fact of the same kind.
type Overrides struct {
	Birth    string `json:"birth,omitempty"`
	Death    string `json:"death,omitempty"`
	Burial   string `json:"burial,omitempty"`
	Baptism  string `json:"baptism,omitempty"`
	Marriage string `json:"marriage,omitempty"`
	// Given and Surname may hold several names separated by "|".
	Given   string `json:"given,omitempty"`
	Surname string `json:"surname,omitempty"`
	Husband string `json:"husb,omitempty"`
	Wife    string `json:"wife,omitempty"`
	Family  string `json:"fam,omitempty"`
}

// RelationSpouse is the relationship type of an "add spouse" edit. The
// biological checks do not apply to it.
const RelationSpouse = "spouse"

// ParentPair is one set of parents with the siblings born to them.
type ParentPair struct {
	// Family is nil when the pair came from husband/wife overrides alone.
	Family   *graph.Family
	Mother   *graph.Person
	Father   *graph.Person
	Siblings []*graph.Person
}

// SpouseFamily is a family the person is a spouse in, with the other spouse.
type SpouseFamily struct {
	Family  *graph.Family
	Partner *graph.Person
}

// Input is the immutable snapshot a validation runs against. The Service
// builds it from the graph; tests build it directly.
type Input struct {
	Tree id.TreeID
	// Person is nil for a record that does not exist yet.
	Person    *graph.Person
	Overrides Overrides
	RelType   string

	Parents        []ParentPair
	SpouseFamilies []SpouseFamily
	// Husband and Wife are the partners named by the marriage overrides.
	Husband *graph.Person
	Wife    *graph.Person
	// Places maps a place name to its coordinates.
	Places map[string]graph.Coordinates

	Ignored map[string]struct{}
	Now     time.Time

	// ResolutionLog records how overrides were resolved while gathering.
	ResolutionLog []string
}

// Result is the outcome of a validation.
type Result struct {
	Issues []Issue `json:"issues"`
	Debug  Debug   `json:"debug"`
}

// HasCode reports whether an issue with code is present.
func (r Result) HasCode(code string) bool {
	for _, i := range r.Issues {
		if i.Code == code {
			return true
		}
	}
	return false
}

// Codes lists the issue codes in pipeline order.
func (r Result) Codes() []string {
	out := make([]string, 0, len(r.Issues))
	for _, i := range r.Issues {
		out = append(out, i.Code)
	}
	return out
}

// Debug is the diagnostic trace returned with every result.
type Debug struct {
	Person             string              `json:"person"`
	BirthYear          int                 `json:"birth_year,omitempty"`
	Tree               id.TreeID           `json:"tree"`
	ResolutionLog      []string            `json:"res_log"`
	Overrides          DebugOverrides      `json:"overrides"`
	Parents            []string            `json:"parents"`
	SiblingComparisons []SiblingComparison `json:"sibling_comp,omitempty"`
	IgnoredCount       int                 `json:"ignored_count"`
}

// DebugOverrides are the relationship overrides echoed in the trace.
type DebugOverrides struct {
	Husband string `json:"husb"`
	Wife    string `json:"wife"`
	Family  string `json:"fam"`
	RelType string `json:"rel"`
}

// SiblingComparison records one subject/sibling comparison.
type SiblingComparison struct {
	Subject     string  `json:"subj"`
	SubjectNorm string  `json:"subj_norm"`
	Sibling     string  `json:"sib"`
	SiblingNorm string  `json:"sib_norm"`
	SubjectXref string  `json:"subj_xref"`
	SiblingXref id.Xref `json:"sib_xref"`
	DiffDays    int     `json:"diff_days"`
	SameYear    bool    `json:"same_year"`
	NameMatch   bool    `json:"name_match"`
}
