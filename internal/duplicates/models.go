package duplicates

import (
	"datencheck/internal/graph"
	id "datencheck/pkg/domain"
)

// PersonQuery describes a person that may already exist in the tree.
type PersonQuery struct {
	Tree           id.TreeID
	Given          string
	Surname        string
	MarriedSurname string
	Sex            id.Sex
	Birth          string
	Baptism        string
	Death          string
}

// SiblingQuery describes a child about to be added to a family.
type SiblingQuery struct {
	Tree    id.TreeID
	Husband string
	Wife    string
	Given   string
	Surname string
	Birth   string
}

// Candidate is a stored person matching a query.
type Candidate struct {
	ID              id.Xref   `json:"id"`
	Name            string    `json:"name"`
	Distance        int       `json:"distance"`
	PhoneticMatch   bool      `json:"phonetic_match"`
	AliasMatch      bool      `json:"alias_match"`
	EquivalentMatch bool      `json:"equivalent_match"`
	Birth           string    `json:"birth"`
	Death           string    `json:"death"`
	ChildFamilies   []id.Xref `json:"child_families,omitempty"`
	SpouseFamilies  []id.Xref `json:"spouse_families,omitempty"`
}

// Pair is one probable duplicate found by the bulk scan.
type Pair struct {
	ID1           id.Xref `json:"id1"`
	Name1         string  `json:"name1"`
	ID2           id.Xref `json:"id2"`
	Name2         string  `json:"name2"`
	Distance      int     `json:"distance"`
	PhoneticMatch bool    `json:"phonetic_match"`
}

// Match reasons for title comparisons.
const (
	ReasonExact    = "exact"
	ReasonDistance = "distance"
	ReasonTopic    = "topic"
)

// TitleMatch is a pair of sources or repositories with similar titles.
type TitleMatch struct {
	ID1      id.Xref `json:"id1"`
	Title1   string  `json:"title1"`
	ID2      id.Xref `json:"id2"`
	Title2   string  `json:"title2"`
	Distance int     `json:"distance"`
	Reason   string  `json:"reason"`
}

// FactSummary is a date and place shown next to a candidate.
type FactSummary struct {
	Date  string `json:"date"`
	Place string `json:"place"`
}

// PersonRef names a person by xref.
type PersonRef struct {
	Xref id.Xref `json:"xref"`
	Name string  `json:"name"`
}

// FamilyInfo is a family with its member names resolved.
type FamilyInfo struct {
	Xref     id.Xref     `json:"xref"`
	Husband  *PersonRef  `json:"husband,omitempty"`
	Wife     *PersonRef  `json:"wife,omitempty"`
	Children []PersonRef `json:"children,omitempty"`
}

// PersonDetails is the display projection of a stored person.
type PersonDetails struct {
	Xref     id.Xref      `json:"xref"`
	Name     string       `json:"name"`
	Sex      id.Sex       `json:"sex"`
	Birth    FactSummary  `json:"birth"`
	Death    FactSummary  `json:"death"`
	Parents  []PersonRef  `json:"parents,omitempty"`
	Families []FamilyInfo `json:"families,omitempty"`
}

func summarize(f *graph.DateFact) FactSummary {
	if f == nil {
		return FactSummary{}
	}
	return FactSummary{Date: f.Date, Place: f.Place}
}

func dateOf(f *graph.DateFact) string {
	if f == nil {
		return ""
	}
	return f.Date
}
