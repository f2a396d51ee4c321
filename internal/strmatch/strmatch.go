// Package strmatch provides the edit-distance and alias comparisons used by
// the duplicate search.
package strmatch

import (
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxFastRunes is the longest input handed to the library implementation.
const maxFastRunes = 255

var (
	aliasSeparator = regexp.MustCompile(`(?i)\s+(?:genannt|gen\.|vulgo|dictus|vel|alias|inaczej|zwany|zwana)\s+`)
	whitespace     = regexp.MustCompile(`\s+`)
)

// Distance returns the case-insensitive Levenshtein distance in runes.
func Distance(a, b string) int {
	a, b = strings.ToLower(a), strings.ToLower(b)
	ra, rb := []rune(a), []rune(b)
	if len(ra) > maxFastRunes || len(rb) > maxFastRunes {
		return distanceDP(ra, rb)
	}
	return levenshtein.ComputeDistance(a, b)
}

// distanceDP is the two-row dynamic program for arbitrarily long inputs.
func distanceDP(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// NormalizeName strips GEDCOM surname slashes and collapses whitespace.
func NormalizeName(name string) string {
	name = strings.ReplaceAll(name, "/", "")
	return strings.TrimSpace(whitespace.ReplaceAllString(name, " "))
}

// IsAliasMatch reports whether a and b name the same person once alias
// forms such as "Schmidt genannt Schulte" are split into their parts.
func IsAliasMatch(a, b string) bool {
	la := strings.ToLower(strings.TrimSpace(a))
	lb := strings.ToLower(strings.TrimSpace(b))
	if la == "" || lb == "" {
		return false
	}
	if la == lb {
		return true
	}
	for _, pa := range aliasParts(la) {
		for _, pb := range aliasParts(lb) {
			if pa != "" && pa == pb {
				return true
			}
		}
	}
	return false
}

func aliasParts(name string) []string {
	parts := aliasSeparator.Split(name, -1)
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
