package validation

import (
	"fmt"
	"strconv"
	"strings"

	"datencheck/internal/names"
	dErrors "datencheck/pkg/domain-errors"
	inputs "datencheck/pkg/platform/validation"
)

// Settings are the thresholds and toggles of the rule pipeline. Field names
// mirror the settings keys: MinMotherAge is min_mother_age.
type Settings struct {
	MinMotherAge int `validate:"min=0,max=100"`
	MaxMotherAge int `validate:"gtfield=MinMotherAge,max=150"`
	MinFatherAge int `validate:"min=0,max=100"`
	MaxFatherAge int `validate:"gtfield=MinFatherAge,max=150"`
	MaxLifespan  int `validate:"min=1,max=200"`

	MinMarriageAgeWarning    int `validate:"min=0,max=100"`
	MaxMarriageAgeWarning    int `validate:"gtfield=MinMarriageAgeWarning,max=150"`
	MaxMarriagesWarning      int `validate:"min=1,max=100"`
	MinSiblingSpacingWarning int `validate:"min=0,max=60"`

	FuzzyDiffHighAge int `validate:"min=0,max=50"`
	FuzzyDiffDefault int `validate:"min=0,max=50"`

	EnableMissingDataChecks     bool
	EnableGeographicChecks      bool
	EnableNameConsistencyChecks bool
	EnableSourceChecks          bool

	EnableScandinavianPatronymics bool
	EnableSlavicSurnameGender     bool
	EnableSpanishDoubleSurnames   bool
	EnableDutchTussenvoegsel      bool
	EnableGreekSurnameGender      bool
}

// DefaultSettings returns the thresholds used when nothing is configured.
// The optional checks are off; the surname conventions are on.
func DefaultSettings() Settings {
	return Settings{
		MinMotherAge:                  14,
		MaxMotherAge:                  50,
		MinFatherAge:                  14,
		MaxFatherAge:                  80,
		MaxLifespan:                   120,
		MinMarriageAgeWarning:         15,
		MaxMarriageAgeWarning:         100,
		MaxMarriagesWarning:           5,
		MinSiblingSpacingWarning:      9,
		FuzzyDiffHighAge:              6,
		FuzzyDiffDefault:              2,
		EnableScandinavianPatronymics: true,
		EnableSlavicSurnameGender:     true,
		EnableSpanishDoubleSurnames:   true,
		EnableDutchTussenvoegsel:      true,
		EnableGreekSurnameGender:      true,
	}
}

// Conventions returns the enabled surname conventions.
func (s Settings) Conventions() names.Conventions {
	return names.Conventions{
		Scandinavian: s.EnableScandinavianPatronymics,
		Slavic:       s.EnableSlavicSurnameGender,
		Spanish:      s.EnableSpanishDoubleSurnames,
		Dutch:        s.EnableDutchTussenvoegsel,
		Greek:        s.EnableGreekSurnameGender,
	}
}

// Validate checks the thresholds for consistency.
func (s Settings) Validate() error {
	return inputs.Validate(s)
}

var intSettings = map[string]func(*Settings) *int{
	"min_mother_age":              func(s *Settings) *int { return &s.MinMotherAge },
	"max_mother_age":              func(s *Settings) *int { return &s.MaxMotherAge },
	"min_father_age":              func(s *Settings) *int { return &s.MinFatherAge },
	"max_father_age":              func(s *Settings) *int { return &s.MaxFatherAge },
	"max_lifespan":                func(s *Settings) *int { return &s.MaxLifespan },
	"min_marriage_age_warning":    func(s *Settings) *int { return &s.MinMarriageAgeWarning },
	"max_marriage_age_warning":    func(s *Settings) *int { return &s.MaxMarriageAgeWarning },
	"max_marriages_warning":       func(s *Settings) *int { return &s.MaxMarriagesWarning },
	"min_sibling_spacing_warning": func(s *Settings) *int { return &s.MinSiblingSpacingWarning },
	"fuzzy_diff_high_age":         func(s *Settings) *int { return &s.FuzzyDiffHighAge },
	"fuzzy_diff_default":          func(s *Settings) *int { return &s.FuzzyDiffDefault },
}

var boolSettings = map[string]func(*Settings) *bool{
	"enable_missing_data_checks":      func(s *Settings) *bool { return &s.EnableMissingDataChecks },
	"enable_geographic_checks":        func(s *Settings) *bool { return &s.EnableGeographicChecks },
	"enable_name_consistency_checks":  func(s *Settings) *bool { return &s.EnableNameConsistencyChecks },
	"enable_source_checks":            func(s *Settings) *bool { return &s.EnableSourceChecks },
	"enable_scandinavian_patronymics": func(s *Settings) *bool { return &s.EnableScandinavianPatronymics },
	"enable_slavic_surname_gender":    func(s *Settings) *bool { return &s.EnableSlavicSurnameGender },
	"enable_spanish_double_surnames":  func(s *Settings) *bool { return &s.EnableSpanishDoubleSurnames },
	"enable_dutch_tussenvoegsel":      func(s *Settings) *bool { return &s.EnableDutchTussenvoegsel },
	"enable_greek_surname_gender":     func(s *Settings) *bool { return &s.EnableGreekSurnameGender },
}

// SettingsFromMap overlays a flat key/value bag on DefaultSettings. Blank
// values and unknown keys keep the defaults; malformed values and
// inconsistent thresholds are validation errors.
func SettingsFromMap(bag map[string]string) (Settings, error) {
	s := DefaultSettings()
	if err := inputs.CheckCount("settings", len(bag), inputs.MaxSettingsKeys); err != nil {
		return s, err
	}
	for rawKey, rawValue := range bag {
		key := strings.ToLower(strings.TrimSpace(rawKey))
		value := strings.TrimSpace(rawValue)
		if value == "" {
			continue
		}
		if field, ok := intSettings[key]; ok {
			n, err := strconv.Atoi(value)
			if err != nil {
				return s, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s must be a whole number", key))
			}
			*field(&s) = n
			continue
		}
		if field, ok := boolSettings[key]; ok {
			b, err := parseToggle(value)
			if err != nil {
				return s, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s must be a boolean", key))
			}
			*field(&s) = b
		}
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

func parseToggle(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	return strconv.ParseBool(v)
}
