package names

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Conventions toggles the cultural surname rules accepted as a legitimate
// difference between a child's and a parent's surname.
type Conventions struct {
	Scandinavian bool
	Slavic       bool
	Spanish      bool
	Dutch        bool
	Greek        bool
}

// AllConventions enables every rule.
func AllConventions() Conventions {
	return Conventions{Scandinavian: true, Slavic: true, Spanish: true, Dutch: true, Greek: true}
}

var (
	patronymicSuffixes = []string{"sson", "son", "sen", "søn", "datter", "dotter", "dottir"}
	slavicEndings      = [][2]string{
		{"ska", ""}, {"ski", ""}, {"cka", ""}, {"cki", ""},
		{"ova", "ov"}, {"eva", "ev"}, {"ina", "in"}, {"aya", "iy"},
	}
	greekEndings   = []string{"os", "ou", "is", "as", "a", "i"}
	tussenvoegsels = map[string]bool{
		"van": true, "der": true, "den": true, "de": true, "ter": true,
		"ten": true, "het": true, "'t": true, "op": true,
	}
	surnameTokens = regexp.MustCompile(`[\s\-]+`)

	camelFusion = regexp.MustCompile(`^(Von|Van|Vom|Zu|Zum|Zur|Ter|Ten)(Der|Den|De)?\p{Lu}\p{Ll}`)
	runInFusion = regexp.MustCompile(`(?i)^(vander|vanden|vonder|vonden)\p{L}{3,}$`)
)

// foldSurname lowercases and replaces ß so "Strauß" equals "Strauss".
func foldSurname(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "ß", "ss")
}

// SurnamesCompatible reports whether a child's surname is consistent with a
// parent's. Equal or contained surnames always are; the enabled conventions
// add patronymics, gendered Slavic and Greek endings, Spanish double
// surnames and Dutch tussenvoegsels.
func SurnamesCompatible(child, parentSurname, parentGiven string, c Conventions) bool {
	cs, ps := foldSurname(child), foldSurname(parentSurname)
	if cs == "" {
		return true
	}
	if ps != "" && (cs == ps || strings.Contains(cs, ps) || strings.Contains(ps, cs)) {
		return true
	}
	if c.Scandinavian && PatronymicOf(child, parentGiven) {
		return true
	}
	if ps == "" {
		return false
	}
	if c.Slavic && slavicStem(Normalize(cs)) == slavicStem(Normalize(ps)) {
		return true
	}
	if c.Spanish && spanishShared(cs, ps) {
		return true
	}
	if c.Dutch {
		if dc := stripTussenvoegsels(cs); dc != "" && dc == stripTussenvoegsels(ps) {
			return true
		}
	}
	if c.Greek {
		gc, gp := greekStem(Normalize(cs)), greekStem(Normalize(ps))
		if utf8.RuneCountInString(gc) >= 3 && gc == gp {
			return true
		}
	}
	return false
}

// PatronymicOf reports whether surname is formed from parentGiven with a
// Scandinavian patronymic suffix ("Larsson" from "Lars").
func PatronymicOf(surname, parentGiven string) bool {
	s := foldSurname(surname)
	for _, given := range splitWords(equivalenceSplit, parentGiven) {
		g := foldSurname(given)
		if g == "" || !strings.HasPrefix(s, g) {
			continue
		}
		rest := strings.TrimPrefix(s, g)
		for _, suffix := range patronymicSuffixes {
			// the genitive s is optional: Larsen, Jonsdottir
			if rest == suffix || rest == "s"+suffix {
				return true
			}
		}
	}
	return false
}

func slavicStem(s string) string {
	for _, e := range slavicEndings {
		if strings.HasSuffix(s, e[0]) {
			return strings.TrimSuffix(s, e[0]) + e[1]
		}
	}
	return s
}

func greekStem(s string) string {
	for _, e := range greekEndings {
		if strings.HasSuffix(s, e) {
			return strings.TrimSuffix(s, e)
		}
	}
	return s
}

func spanishShared(child, parent string) bool {
	ct := splitWords(surnameTokens, child)
	pt := splitWords(surnameTokens, parent)
	if len(ct) < 2 || len(pt) == 0 {
		return false
	}
	for _, t := range ct {
		if t == pt[0] {
			return true
		}
	}
	return false
}

func stripTussenvoegsels(s string) string {
	words := strings.Fields(s)
	out := make([]string, 0, len(words))
	for i, w := range words {
		if tussenvoegsels[w] {
			continue
		}
		if w == "in" && i+1 < len(words) && words[i+1] == "'t" {
			continue
		}
		out = append(out, w)
	}
	return strings.Join(out, "")
}

// HasFusedPrefix reports whether a surname runs a nobility or locative
// particle into the name, as in "VonBerg", "VanDerMeer" or "Vandermeulen".
func HasFusedPrefix(surname string) bool {
	s := strings.TrimSpace(surname)
	if s == "" || strings.ContainsAny(s, " \t") {
		return false
	}
	return camelFusion.MatchString(s) || runInFusion.MatchString(s)
}
