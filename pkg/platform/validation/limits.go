package validation

import (
	"fmt"
	"unicode/utf8"

	dErrors "datencheck/pkg/domain-errors"
)

// Text field limits
const (
	// MaxXrefLength bounds a GEDCOM cross reference including the @ delimiters.
	MaxXrefLength = 50

	// MaxCodeLength bounds an issue code such as MISSING_SOURCE_BIRT.
	MaxCodeLength = 100

	// MaxUserLength bounds the user recorded with an ignore decision.
	MaxUserLength = 100

	// MaxCommentLength bounds the free text comment on an ignore decision.
	MaxCommentLength = 1000

	// MaxNameLength bounds a given name or surname override.
	MaxNameLength = 255

	// MaxDateLength bounds a raw date override.
	MaxDateLength = 100
)

// Slice element count limits
const (
	// MaxSettingsKeys is the maximum number of entries in a settings bag.
	MaxSettingsKeys = 100
)

// CheckCount validates that a collection does not exceed the maximum count.
func CheckCount(fieldName string, count, max int) error {
	if count > max {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("too many %s: max %d allowed", fieldName, max))
	}
	return nil
}

// CheckStringLength validates that a string does not exceed max runes.
func CheckStringLength(fieldName, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s exceeds max length of %d", fieldName, max))
	}
	return nil
}

// CheckLengths applies CheckStringLength to each field and returns the first failure.
func CheckLengths(fields ...Field) error {
	for _, f := range fields {
		if err := CheckStringLength(f.Name, f.Value, f.Max); err != nil {
			return err
		}
	}
	return nil
}

// Field is a named value with its length bound.
type Field struct {
	Name  string
	Value string
	Max   int
}
