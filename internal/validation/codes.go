package validation

import (
	"strings"

	"datencheck/internal/graph"
)

// Issue codes. Codes are stable identifiers; ignore decisions are stored
// against them.
const (
	CodeMotherTooYoung        = "MOTHER_TOO_YOUNG"
	CodeMotherTooOld          = "MOTHER_TOO_OLD"
	CodeFatherTooYoung        = "FATHER_TOO_YOUNG"
	CodeFatherTooOld          = "FATHER_TOO_OLD"
	CodeBirthAfterMotherDeath = "BIRTH_AFTER_MOTHER_DEATH"
	CodeBirthAfterFatherDeath = "BIRTH_AFTER_FATHER_DEATH"
	CodeDuplicateSibling      = "DUPLICATE_SIBLING"
	CodeSiblingTooClose       = "SIBLING_TOO_CLOSE"

	CodeBirthAfterDeath            = "BIRTH_AFTER_DEATH"
	CodeImpreciseBirthDeath        = "IMPRECISE_DATE_CONFLICT_BIRTH_DEATH"
	CodeBaptismBeforeBirth         = "BAPTISM_BEFORE_BIRTH"
	CodeImpreciseBaptism           = "IMPRECISE_DATE_CONFLICT_BAPTISM"
	CodeBaptismDelayed             = "BAPTISM_DELAYED"
	CodeBurialBeforeDeath          = "BURIAL_BEFORE_DEATH"
	CodeImpreciseBurial            = "IMPRECISE_DATE_CONFLICT_BURIAL"
	CodeLifespanTooHigh            = "LIFESPAN_TOO_HIGH"
	CodeFutureDatePrefix           = "FUTURE_DATE_"
	CodeMarriageBeforeBirth        = "MARRIAGE_BEFORE_BIRTH"
	CodeMarriageAfterDeath         = "MARRIAGE_AFTER_DEATH"
	CodeMarriageTooYoung           = "MARRIAGE_TOO_YOUNG"
	CodeMarriageTooOld             = "MARRIAGE_TOO_OLD"
	CodeMarriageBeforePartnerBirth = "MARRIAGE_BEFORE_PARTNER_BIRTH"
	CodeMarriagePartnerTooYoung    = "MARRIAGE_PARTNER_TOO_YOUNG"
	CodeMarriagePartnerTooOld      = "MARRIAGE_PARTNER_TOO_OLD"
	CodeMarriageAfterPartnerDeath  = "MARRIAGE_AFTER_PARTNER_DEATH"
	CodeTooManyMarriages           = "TOO_MANY_MARRIAGES"
	CodeMarriagePossiblyOverlap    = "MARRIAGE_POSSIBLY_OVERLAPPING"
	CodeMarriageOverlapping        = "MARRIAGE_OVERLAPPING"
	CodeGenderMismatchHusband      = "GENDER_MISMATCH_HUSBAND"
	CodeGenderMismatchWife         = "GENDER_MISMATCH_WIFE"

	CodeMissingBirthDate      = "MISSING_BIRTH_DATE"
	CodeDeathWithoutBirth     = "DEATH_WITHOUT_BIRTH"
	CodeLongDistance          = "LONG_DISTANCE_MIGRATION"
	CodeImpossibleTravel      = "IMPOSSIBLE_TRAVEL_SPEED"
	CodeMissingGivenName      = "MISSING_GIVEN_NAME"
	CodeNameMismatch          = "NAME_MISMATCH"
	CodeNameEncoding          = "NAME_ENCODING_ISSUE"
	CodeSurnamePrefix         = "SURNAME_PREFIX_NOT_SEPARATED"
	CodeSurnameMismatchMother = "SURNAME_MISMATCH_MOTHER"
	CodeSurnameMismatchFather = "SURNAME_MISMATCH_FATHER"
	CodeMissingSourcePrefix   = "MISSING_SOURCE_"
)

// Issue types group codes by the kind of problem they describe.
const (
	TypeBiologicalImplausibility = "biological_implausibility"
	TypeBiologicalImpossibility  = "biological_impossibility"
	TypeDuplicateCheck           = "duplicate_check"
	TypeSiblingSpacing           = "sibling_spacing"
	TypeTemporalImpossibility    = "temporal_impossibility"
	TypeTemporalImplausibility   = "temporal_implausibility"
	TypeChronological            = "chronological_inconsistency"
	TypeMarriageBeforeBirth      = "marr_before_birth"
	TypeMarriageEarly            = "marr_unusually_early"
	TypeMarriageLate             = "marr_unusually_late"
	TypeMarriageAfterDeath       = "marr_after_death"
	TypeMarriageMany             = "marriage_unusually_many"
	TypeMarriagePossiblyOverlap  = "marriage_possibly_overlapping"
	TypeMarriageOverlapping      = "marriage_overlapping"
	TypeGender                   = "gender_inconsistency"
	TypeMissingBirthDate         = "missing_birth_date"
	TypeDeathWithoutBirth        = "death_without_birth"
	TypeGeographicInfo           = "geographic_info"
	TypeGeographic               = "geographic_implausibility"
	TypeMissingGivenName         = "missing_given_name"
	TypeNameMismatch             = "name_mismatch"
	TypeNameEncoding             = "name_encoding_issue"
	TypeSurnamePrefix            = "surname_prefix"
	TypeSurnameMismatchMother    = "surname_mismatch_mother"
	TypeSurnameMismatchFather    = "surname_mismatch_father"
	TypeMissingSource            = "missing_source"
)

var labels = map[string]string{
	CodeMotherTooYoung:             "Mother too young at birth",
	CodeMotherTooOld:               "Mother too old at birth",
	CodeFatherTooYoung:             "Father too young at birth",
	CodeFatherTooOld:               "Father too old at birth",
	CodeBirthAfterMotherDeath:      "Birth after mother's death",
	CodeBirthAfterFatherDeath:      "Birth long after father's death",
	CodeBaptismBeforeBirth:         "Baptism before birth",
	CodeBurialBeforeDeath:          "Burial before death",
	CodeBirthAfterDeath:            "Birth after own death",
	CodeLifespanTooHigh:            "Lifespan unusually high",
	CodeMarriageBeforeBirth:        "Marriage before birth",
	CodeMarriageAfterDeath:         "Marriage after death",
	CodeGenderMismatchHusband:      "Husband has wrong gender",
	CodeGenderMismatchWife:         "Wife has wrong gender",
	CodeMarriageBeforePartnerBirth: "Marriage before partner's birth",
	CodeMarriagePartnerTooYoung:    "Partner too young at marriage",
	CodeMarriagePartnerTooOld:      "Partner too old at marriage",
	CodeMarriageAfterPartnerDeath:  "Marriage after partner's death",
	CodeMarriageTooYoung:           "Too young at marriage",
	CodeMarriageTooOld:             "Too old at marriage",
	CodeTooManyMarriages:           "Too many marriages",
	CodeMarriagePossiblyOverlap:    "Possibly overlapping marriages",
	CodeMarriageOverlapping:        "Overlapping marriages",
	CodeMissingBirthDate:           "Missing birth date (has children/death)",
	CodeDeathWithoutBirth:          "Death date without birth date",
	CodeMissingGivenName:           "Missing given name",
	CodeNameMismatch:               "Name mismatch",
	CodeNameEncoding:               "Name encoding issue",
	CodeSurnameMismatchMother:      "Surname mismatch with mother",
	CodeSurnameMismatchFather:      "Surname mismatch with father",
	CodeDuplicateSibling:           "Duplicate child (sibling)",
	CodeSiblingTooClose:            "Sibling spacing too small",
	CodeBaptismDelayed:             "Baptism unusually late",
	CodeImpreciseBirthDeath:        "Imprecise birth/death dates",
	CodeImpreciseBaptism:           "Imprecise birth/baptism dates",
	CodeImpreciseBurial:            "Imprecise death/burial dates",
	CodeLongDistance:               "Long distance between birth and death place",
	CodeImpossibleTravel:           "Impossible travel speed",
	CodeSurnamePrefix:              "Surname prefix not separated",
}

// factLabels names the event tags in messages and prefixed codes.
var factLabels = map[string]string{
	graph.TagBirth:    "Birth",
	graph.TagBaptism:  "Baptism",
	graph.TagDeath:    "Death",
	graph.TagBurial:   "Burial",
	graph.TagMarriage: "Marriage",
}

// Label returns the English short description of code. Prefixed codes
// (FUTURE_DATE_BIRT, MISSING_SOURCE_MARR) are described by their event.
func Label(code string) string {
	if l, ok := labels[code]; ok {
		return l
	}
	if tag, ok := strings.CutPrefix(code, CodeFutureDatePrefix); ok {
		if l, ok := factLabels[tag]; ok {
			return l + " date in the future"
		}
	}
	if tag, ok := strings.CutPrefix(code, CodeMissingSourcePrefix); ok {
		if l, ok := factLabels[tag]; ok {
			return l + " without source"
		}
	}
	return code
}
