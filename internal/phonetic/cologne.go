// Package phonetic implements the Cologne phonetics (Kölner Phonetik)
// encoding used to match German surname spellings such as Meier, Meyer and
// Maier onto the same numeric code.
package phonetic

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var umlauts = strings.NewReplacer("Ä", "AE", "Ö", "OE", "Ü", "UE")

// Encode returns the Cologne phonetic code of text. Characters outside
// A-Z and the German umlauts are ignored; Encode("") is "".
func Encode(text string) string {
	if text == "" {
		return ""
	}
	// Casers keep state and cannot be shared across goroutines.
	s := cases.Upper(language.German).String(text)
	s = strings.Map(func(r rune) rune {
		if (r >= 'A' && r <= 'Z') || r == 'Ä' || r == 'Ö' || r == 'Ü' {
			return r
		}
		return -1
	}, s)
	if s == "" {
		return ""
	}
	s = umlauts.Replace(s)

	var code []byte
	for i := 0; i < len(s); i++ {
		var prev, next byte
		if i > 0 {
			prev = s[i-1]
		}
		if i < len(s)-1 {
			next = s[i+1]
		}
		digits := encodeChar(s[i], prev, next)
		if digits == "" {
			continue
		}
		if len(code) == 0 || len(digits) > 1 || code[len(code)-1] != digits[0] {
			code = append(code, digits...)
		}
	}

	if len(code) > 1 {
		rest := make([]byte, 0, len(code)-1)
		for _, c := range code[1:] {
			if c != '0' {
				rest = append(rest, c)
			}
		}
		code = append(code[:1], rest...)
	}
	return string(code)
}

func encodeChar(c, prev, next byte) string {
	switch c {
	case 'A', 'E', 'I', 'J', 'O', 'U', 'Y':
		return "0"
	case 'B':
		return "1"
	case 'P':
		if next == 'H' {
			return "3"
		}
		return "1"
	case 'D', 'T':
		if oneOf(next, "CSZ") {
			return "8"
		}
		return "2"
	case 'F', 'V', 'W':
		return "3"
	case 'G', 'K', 'Q':
		return "4"
	case 'C':
		if prev == 0 {
			if oneOf(next, "AHKLOQRUX") {
				return "4"
			}
			return "8"
		}
		if oneOf(prev, "SZ") {
			return "8"
		}
		if oneOf(next, "AHKOQUX") {
			return "4"
		}
		return "8"
	case 'X':
		if oneOf(prev, "CKQ") {
			return "8"
		}
		return "48"
	case 'L':
		return "5"
	case 'M', 'N':
		return "6"
	case 'R':
		return "7"
	case 'S', 'Z':
		return "8"
	default:
		return ""
	}
}

func oneOf(c byte, set string) bool {
	return c != 0 && strings.IndexByte(set, c) >= 0
}
