// Package names decides whether two given names are spellings of the same
// name, infers a likely sex from a name and checks parent/child surname
// conventions across naming cultures.
package names

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"datencheck/pkg/domain"
)

var (
	equivalenceSplit = regexp.MustCompile(`[\s,-]+`)
	genderSplit      = regexp.MustCompile(`[\s,\-|\\/]+`)

	letters  = strings.NewReplacer("ł", "l", "ø", "o", "ß", "ss", "æ", "ae", "đ", "d")
	femaleBy = regexp.MustCompile(`(eva|ova|ina|aya)$`)
	maleBy   = regexp.MustCompile(`(ev|ov|in|iy)$`)
	balticF  = regexp.MustCompile(`(iene|yte|ate|ute)$`)
)

// groupIndex maps a normalized spelling to its group. genderIndex maps a
// normalized spelling to "M" or "F". Both are built once at init.
var (
	groupIndex  map[string]int
	genderIndex map[string]domain.Sex
)

func init() {
	groupIndex = make(map[string]int)
	for id, g := range groups {
		for _, name := range g {
			groupIndex[Normalize(name)] = id
		}
	}

	genderIndex = make(map[string]domain.Sex, len(knownGenders))
	for name, sex := range knownGenders {
		genderIndex[Normalize(name)] = domain.Sex(sex)
	}
	for token, id := range groupIndex {
		if _, ok := genderIndex[token]; ok {
			continue
		}
		for _, member := range groups[id] {
			if sex, ok := genderIndex[Normalize(member)]; ok {
				genderIndex[token] = sex
				break
			}
		}
	}
}

// Normalize lowercases name and folds diacritics ("Józef" -> "jozef").
func Normalize(name string) string {
	s := cases.Lower(language.Und).String(strings.TrimSpace(name))
	s = letters.Replace(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Group returns the id of the equivalence group containing name.
func Group(name string) (int, bool) {
	id, ok := groupIndex[Normalize(name)]
	return id, ok
}

// Variants returns every listed spelling equivalent to name, or nil.
func Variants(name string) []string {
	id, ok := Group(name)
	if !ok {
		return nil
	}
	return append([]string(nil), groups[id]...)
}

// AreEquivalent reports whether two (possibly multi-word) given names
// denote the same name. Every word of one side must match a word of the
// other, so "Johann Friedrich" matches "Jan" and "Jan Fryderyk".
func AreEquivalent(a, b string) bool {
	wa := splitWords(equivalenceSplit, a)
	wb := splitWords(equivalenceSplit, b)
	if len(wa) == 0 || len(wb) == 0 {
		return false
	}
	return covered(wa, wb) || covered(wb, wa)
}

func covered(words, in []string) bool {
	for _, w := range words {
		found := false
		for _, o := range in {
			if singleEquivalent(w, o) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func singleEquivalent(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == nb {
		return true
	}
	ga, okA := groupIndex[na]
	gb, okB := groupIndex[nb]
	return okA && okB && ga == gb
}

// InferGender guesses the sex of a person from given names and surnames.
// Lookup order: the known-name table, surname endings (Polish, Russian,
// Scandinavian, Baltic), then a trailing a/e on a given name. The last rule
// is weak: "Uwe" infers F.
func InferGender(given, surname string) domain.Sex {
	givenWords := splitWords(genderSplit, given)
	for _, w := range givenWords {
		if sex, ok := genderIndex[Normalize(w)]; ok {
			return sex
		}
	}

	for _, w := range splitWords(genderSplit, surname) {
		if sex, ok := surnameGender(Normalize(w)); ok {
			return sex
		}
	}

	for _, w := range givenWords {
		clean := cases.Lower(language.Und).String(w)
		if utf8.RuneCountInString(clean) < 3 {
			continue
		}
		last, _ := utf8.DecodeLastRuneInString(clean)
		if last == 'a' || last == 'e' {
			return domain.SexFemale
		}
	}
	return domain.SexUnknown
}

func surnameGender(s string) (domain.Sex, bool) {
	switch {
	case strings.HasSuffix(s, "ska"):
		return domain.SexFemale, true
	case strings.HasSuffix(s, "ski"):
		return domain.SexMale, true
	case femaleBy.MatchString(s):
		return domain.SexFemale, true
	case maleBy.MatchString(s):
		return domain.SexMale, true
	case strings.HasSuffix(s, "datter"), strings.HasSuffix(s, "dotter"):
		return domain.SexFemale, true
	case strings.HasSuffix(s, "sen"), strings.HasSuffix(s, "son"):
		return domain.SexMale, true
	case balticF.MatchString(s):
		return domain.SexFemale, true
	}
	return domain.SexUnknown, false
}

func splitWords(sep *regexp.Regexp, s string) []string {
	parts := sep.Split(strings.TrimSpace(s), -1)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
