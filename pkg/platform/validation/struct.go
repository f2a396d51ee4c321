package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	dErrors "datencheck/pkg/domain-errors"
)

var structValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// Validate checks the `validate` struct tags of v. Only the first failing
// field is reported, named the way it appears in a settings file.
func Validate(v any) error {
	if err := structValidator.Struct(v); err != nil {
		return dErrors.New(dErrors.CodeValidation, message(err))
	}
	return nil
}

func message(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "invalid settings"
	}

	fe := fieldErrs[0]
	name := fe.Field()
	if name == "" {
		name = fe.StructField()
	}
	key := settingsKey(name)

	switch fe.ActualTag() {
	case "required":
		return fmt.Sprintf("%s is required", key)
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", key, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", key, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", key, fe.Param())
	case "gtfield":
		return fmt.Sprintf("%s must be greater than %s", key, settingsKey(fe.Param()))
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", key, fe.Param())
	case "notblank":
		return fmt.Sprintf("%s must not be blank", key)
	default:
		if key == "" {
			return "invalid settings"
		}
		return fmt.Sprintf("%s is invalid", key)
	}
}

// settingsKey converts a Go field name ("MinMotherAge", "DatabaseURL") to
// its snake_case key ("min_mother_age", "database_url").
func settingsKey(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 &&
			(unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
