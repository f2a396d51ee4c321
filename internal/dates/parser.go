// Package dates parses free-form genealogical date strings ("13.01.1926",
// "13 Januar 1926", "ABT 1900", "BET 1890 AND 1900") into comparable
// year/month/day values and Julian-day precision windows.
//
// Parsing never fails: unparseable parts are reported as zero values.
package dates

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

var (
	calendarEscape = regexp.MustCompile(`@#D[A-Z ]+@\s*`)
	ageComponent   = regexp.MustCompile(`(\d+)\s*([ymwd]?)`)
)

// Parsed is the normalized form of a date string. Zero fields are absent.
type Parsed struct {
	Year  int
	Month time.Month
	Day   int
}

// HasYear reports whether a year was found.
func (p Parsed) HasYear() bool { return p.Year != 0 }

// Complete reports whether day, month and year are all resolved.
func (p Parsed) Complete() bool { return p.Year != 0 && p.Month != 0 && p.Day != 0 }

// Parse extracts year, month and day from raw.
//
// The first 4-digit token is the year. Of the remaining tokens a 1-2 digit
// number in [1,31] becomes the day (first wins); otherwise a token found in
// the month table becomes the month (first wins).
//
// A date of exactly three numeric tokens led by the year is read in ISO
// order (YYYY-MM-DD) when month and day are in range; otherwise the token
// rule applies.
func Parse(raw string) Parsed {
	var p Parsed
	parts := tokens(raw)
	if len(parts) == 0 {
		return p
	}

	for _, part := range parts {
		digits := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, part)
		if len(digits) == 4 {
			p.Year, _ = strconv.Atoi(digits)
			break
		}
	}

	// ISO order: 1926-01-13
	if len(parts) == 3 && len(parts[0]) == 4 && isDigits(parts[0]) && isDigits(parts[1]) && isDigits(parts[2]) {
		m, _ := strconv.Atoi(parts[1])
		d, _ := strconv.Atoi(parts[2])
		if m >= 1 && m <= 12 && d >= 1 && d <= 31 {
			p.Month, p.Day = time.Month(m), d
			return p
		}
	}

	for _, part := range parts {
		if len(part) <= 2 && isDigits(part) {
			n, _ := strconv.Atoi(part)
			if n >= 1 && n <= 31 && p.Day == 0 {
				p.Day = n
				continue
			}
		}
		if m, ok := monthNames[strings.ToLower(part)]; ok && p.Month == 0 {
			p.Month = m
		}
	}
	return p
}

// ParseYear returns only the year component of raw.
func ParseYear(raw string) (int, bool) {
	p := Parse(raw)
	return p.Year, p.HasYear()
}

// HasNonStandardMonth reports whether raw spells a month in a form other than
// the GEDCOM three-letter code, e.g. "Januar" or "January".
func HasNonStandardMonth(raw string) bool {
	for _, part := range tokens(raw) {
		upper := strings.ToUpper(part)
		if isGedcomMonth(upper) || isQualifier(upper) {
			continue
		}
		if _, err := strconv.ParseFloat(upper, 64); err == nil {
			continue
		}
		if _, ok := monthNames[strings.ToLower(part)]; ok {
			return true
		}
	}
	return false
}

// ParseAgeToYears converts a GEDCOM AGE value ("56y 5m 3w 2d", "72") to
// fractional years. A component without unit counts as years.
func ParseAgeToYears(raw string) (float64, bool) {
	if strings.TrimSpace(raw) == "" {
		return 0, false
	}
	matches := ageComponent.FindAllStringSubmatch(raw, -1)
	if len(matches) == 0 {
		return 0, false
	}
	var total float64
	for _, m := range matches {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		switch m[2] {
		case "m":
			total += v / 12.0
		case "w":
			total += v / 52.0
		case "d":
			total += v / 365.0
		default:
			total += v
		}
	}
	return total, true
}

// IsDatePlausible reports whether two years may describe the same event.
// Records of people who died old are less reliable, so the tolerance widens
// to high when contextAge exceeds 80.
func IsDatePlausible(target, candidate int, contextAge *float64, high, def int) bool {
	maxDiff := def
	if contextAge != nil && *contextAge > 80.0 {
		maxDiff = high
	}
	return int(math.Abs(float64(target-candidate))) <= maxDiff
}

// NormalizeToGedcom rewrites an irregular date as "<QUAL> <day> <MON> <year>",
// omitting absent parts. Ranges (BET/AND, FROM/TO) are normalized on both
// sides. Returns false when no year can be found.
func NormalizeToGedcom(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	qual, rest := splitQualifier(raw)
	if from, to, sep, ok := splitRange(qual, rest); ok {
		left, lok := normalizeSimple(from)
		right, rok := normalizeSimple(to)
		switch {
		case lok && rok:
			return qual + " " + left + " " + sep + " " + right, true
		case lok:
			return qual + " " + left, true
		default:
			return "", false
		}
	}
	out, ok := normalizeSimple(rest)
	if !ok {
		return "", false
	}
	if qual != "" {
		out = qual + " " + out
	}
	return out, true
}

func normalizeSimple(raw string) (string, bool) {
	p := Parse(raw)
	if !p.HasYear() {
		return "", false
	}
	parts := make([]string, 0, 3)
	if p.Day != 0 {
		parts = append(parts, strconv.Itoa(p.Day))
	}
	if p.Month != 0 {
		parts = append(parts, MonthCode(p.Month))
	}
	parts = append(parts, strconv.Itoa(p.Year))
	return strings.Join(parts, " "), true
}

// splitQualifier separates a leading GEDCOM modifier from the date body.
func splitQualifier(raw string) (string, string) {
	upper := strings.ToUpper(raw)
	for _, q := range qualifiers {
		if strings.HasPrefix(upper, q+" ") {
			return q, strings.TrimSpace(raw[len(q):])
		}
	}
	return "", raw
}

// splitRange splits "1890 AND 1900" (after BET) or "1890 TO 1900" (after FROM).
func splitRange(qual, rest string) (from, to, sep string, ok bool) {
	switch qual {
	case "BET":
		sep = "AND"
	case "FROM":
		sep = "TO"
	default:
		return "", "", "", false
	}
	upper := strings.ToUpper(rest)
	idx := strings.Index(upper, " "+sep+" ")
	if idx < 0 {
		return rest, "", sep, true
	}
	return strings.TrimSpace(rest[:idx]), strings.TrimSpace(rest[idx+len(sep)+2:]), sep, true
}

func tokens(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	s := calendarEscape.ReplaceAllString(raw, "")
	return strings.FieldsFunc(strings.TrimSpace(s), func(r rune) bool {
		return r == '.' || r == '-' || r == '/' || unicode.IsSpace(r)
	})
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
