package domain

import "strings"

// Sex is the GEDCOM SEX value of a person.
type Sex string

const (
	SexMale    Sex = "M"
	SexFemale  Sex = "F"
	SexUnknown Sex = "U"
)

// ParseSex maps any GEDCOM SEX payload onto M, F or U.
func ParseSex(s string) Sex {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "M", "MALE":
		return SexMale
	case "F", "FEMALE":
		return SexFemale
	default:
		return SexUnknown
	}
}

// Known reports whether the sex is M or F.
func (s Sex) Known() bool { return s == SexMale || s == SexFemale }

// Conflicts reports whether both sexes are known and differ.
func (s Sex) Conflicts(other Sex) bool { return s.Known() && other.Known() && s != other }

func (s Sex) String() string {
	if s == "" {
		return string(SexUnknown)
	}
	return string(s)
}
