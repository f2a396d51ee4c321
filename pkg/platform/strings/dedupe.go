// Package strings provides small string-slice helpers shared by the matchers.
package strings

import (
	"strings"
)

// Unique returns the distinct non-blank values after trimming and applying
// norm, in first-seen order. A nil norm only trims.
//
// Example:
//
//	Unique([]string{"  Maria ", "Anna", "Maria", "", "  "}, nil)
//	// Returns: []string{"Maria", "Anna"}
func Unique(values []string, norm func(string) string) []string {
	if len(values) == 0 {
		return values
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if norm != nil {
			v = norm(v)
		}
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// UniqueFold is Unique with lowercase folding. Surname search terms and
// title word sets compare case-insensitively.
func UniqueFold(values []string) []string {
	return Unique(values, strings.ToLower)
}
