package graph

import (
	"fmt"
	"strings"

	"datencheck/internal/dates"
	id "datencheck/pkg/domain"
)

// Name is one NAME (or _MARNM, AKA...) structure of a person.
type Name struct {
	Given   string
	Surname string
	Full    string
	Type    string
}

// Display returns Full, or "Given Surname" when Full is empty.
func (n Name) Display() string {
	if n.Full != "" {
		return strings.TrimSpace(strings.ReplaceAll(n.Full, "/", ""))
	}
	return strings.TrimSpace(n.Given + " " + n.Surname)
}

// Evidence holds the three ways a fact can be sourced.
type Evidence struct {
	// CitationXrefs are SOUR pointers on the fact.
	CitationXrefs []id.Xref
	// InlineText is an embedded SOUR without a record (SOUR <text>).
	InlineText string
	// LinkedSources are source records attached through media or notes.
	LinkedSources []id.Xref
}

// Empty reports whether no evidence layer is present.
func (e Evidence) Empty() bool {
	return len(e.CitationXrefs) == 0 && strings.TrimSpace(e.InlineText) == "" && len(e.LinkedSources) == 0
}

// DateFact is an event with a raw date, place and source evidence.
type DateFact struct {
	Date     string
	Place    string
	Evidence Evidence
}

// HasDate reports whether a non-blank date string is present.
func (f *DateFact) HasDate() bool {
	return f != nil && strings.TrimSpace(f.Date) != ""
}

// Year is the parsed year of the fact's date.
func (f *DateFact) Year() (int, bool) {
	if f == nil {
		return 0, false
	}
	return dates.ParseYear(f.Date)
}

// Window is the Julian-day window of the fact's date.
func (f *DateFact) Window() (dates.Interval, bool) {
	if f == nil {
		return dates.Interval{}, false
	}
	return dates.Window(f.Date)
}

// Person is a read-only INDI record.
type Person struct {
	Xref           id.Xref
	Sex            id.Sex
	Names          []Name
	Birth          *DateFact
	Baptism        *DateFact
	Death          *DateFact
	Burial         *DateFact
	DeathAge       string
	ChildFamilies  []id.Xref
	SpouseFamilies []id.Xref
}

// PrimaryName is the first name structure, or the zero Name.
func (p *Person) PrimaryName() Name {
	if p == nil || len(p.Names) == 0 {
		return Name{}
	}
	return p.Names[0]
}

// Given returns the primary given name.
func (p *Person) Given() string { return p.PrimaryName().Given }

// Surname returns the primary surname.
func (p *Person) Surname() string { return p.PrimaryName().Surname }

// FullName returns the primary display name.
func (p *Person) FullName() string { return p.PrimaryName().Display() }

// Label is used in debug traces and log lines.
func (p *Person) Label() string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%s (%s)", p.FullName(), p.Xref.Pointer())
}

// Fact returns the fact for a GEDCOM event tag (BIRT, CHR, DEAT, BURI).
func (p *Person) Fact(tag string) *DateFact {
	if p == nil {
		return nil
	}
	switch tag {
	case TagBirth:
		return p.Birth
	case TagBaptism, "BAPM":
		return p.Baptism
	case TagDeath:
		return p.Death
	case TagBurial:
		return p.Burial
	}
	return nil
}

// EndFact is the death fact, or the burial fact when no death date exists.
func (p *Person) EndFact() *DateFact {
	if p == nil {
		return nil
	}
	if p.Death.HasDate() {
		return p.Death
	}
	return p.Burial
}

// GEDCOM event tags used by the validation rules.
const (
	TagBirth    = "BIRT"
	TagBaptism  = "CHR"
	TagDeath    = "DEAT"
	TagBurial   = "BURI"
	TagMarriage = "MARR"
)

// Family is a read-only FAM record.
type Family struct {
	Xref     id.Xref
	Husband  id.Xref
	Wife     id.Xref
	Marriage *DateFact
	Children []id.Xref
}

// Partner returns the other spouse of the family, or "" if x is not a spouse.
func (f *Family) Partner(x id.Xref) id.Xref {
	switch {
	case f == nil:
		return ""
	case f.Husband == x:
		return f.Wife
	case f.Wife == x:
		return f.Husband
	}
	return ""
}

// Coordinates are decimal degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Source is a SOUR record.
type Source struct {
	Xref   id.Xref
	Title  string
	Author string
}

// Repository is a REPO record.
type Repository struct {
	Xref id.Xref
	Name string
}
