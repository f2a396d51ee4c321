package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"datencheck/internal/graph"
	id "datencheck/pkg/domain"
)

func fact(date string) *graph.DateFact {
	return &graph.DateFact{Date: date}
}

func person(xref id.Xref, given, surname string, sex id.Sex, birth string) *graph.Person {
	p := &graph.Person{
		Xref:  xref,
		Sex:   sex,
		Names: []graph.Name{{Given: given, Surname: surname, Type: "NAME"}},
	}
	if birth != "" {
		p.Birth = fact(birth)
	}
	return p
}

func withDeath(p *graph.Person, date string) *graph.Person {
	p.Death = fact(date)
	return p
}

type PipelineSuite struct {
	suite.Suite
	settings Settings
	now      time.Time
}

func TestPipelineSuite(t *testing.T) {
	suite.Run(t, new(PipelineSuite))
}

func (s *PipelineSuite) SetupTest() {
	s.settings = DefaultSettings()
	s.now = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
}

func (s *PipelineSuite) validate(in Input) Result {
	if in.Now.IsZero() {
		in.Now = s.now
	}
	return Validate(in, s.settings)
}

func (s *PipelineSuite) find(res Result, code string) Issue {
	for _, i := range res.Issues {
		if i.Code == code {
			return i
		}
	}
	s.Failf("issue not found", "code %s not in %v", code, res.Codes())
	return Issue{}
}

// =============================================================================
// Parents
// =============================================================================

func (s *PipelineSuite) TestMotherTooYoung() {
	child := person("I1", "Karl", "Meier", id.SexMale, "1960")
	mother := person("I2", "Anna", "Meier", id.SexFemale, "1950")

	res := s.validate(Input{Tree: 1, Person: child, Parents: []ParentPair{{Mother: mother}}})

	i := s.find(res, CodeMotherTooYoung)
	s.Equal(SeverityError, i.Severity)
	s.Equal(TypeBiologicalImplausibility, i.Type)
	s.Equal(10, i.Details["calculated_age"])
}

func (s *PipelineSuite) TestParentAgeBounds() {
	cases := []struct {
		name       string
		mother     bool
		parentBorn string
		want       string
	}{
		{"mother at minimum age", true, "1946", ""},
		{"mother below minimum age", true, "1947", CodeMotherTooYoung},
		{"mother at maximum age", true, "1910", ""},
		{"mother above maximum age", true, "1909", CodeMotherTooOld},
		{"father at minimum age", false, "1946", ""},
		{"father below minimum age", false, "1947", CodeFatherTooYoung},
		{"father at maximum age", false, "1880", ""},
		{"father above maximum age", false, "1879", CodeFatherTooOld},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			child := person("I1", "Karl", "Meier", id.SexMale, "1960")
			pair := ParentPair{}
			if tc.mother {
				pair.Mother = person("I2", "Anna", "Meier", id.SexFemale, tc.parentBorn)
			} else {
				pair.Father = person("I3", "Hans", "Meier", id.SexMale, tc.parentBorn)
			}

			res := s.validate(Input{Tree: 1, Person: child, Parents: []ParentPair{pair}})

			for _, code := range []string{CodeMotherTooYoung, CodeMotherTooOld, CodeFatherTooYoung, CodeFatherTooOld} {
				s.Equal(code == tc.want, res.HasCode(code), code)
			}
		})
	}
}

func (s *PipelineSuite) TestFatherAgeOnlyWithoutCalculableMother() {
	child := person("I1", "Karl", "Meier", id.SexMale, "1960")
	father := person("I3", "Hans", "Meier", id.SexMale, "1950")

	s.Run("mother with birth year suppresses father check", func() {
		mother := person("I2", "Anna", "Meier", id.SexFemale, "1930")
		res := s.validate(Input{Tree: 1, Person: child, Parents: []ParentPair{{Mother: mother, Father: father}}})
		s.False(res.HasCode(CodeFatherTooYoung))
	})

	s.Run("mother without birth year falls back to father", func() {
		mother := person("I2", "Anna", "Meier", id.SexFemale, "")
		res := s.validate(Input{Tree: 1, Person: child, Parents: []ParentPair{{Mother: mother, Father: father}}})
		s.True(res.HasCode(CodeFatherTooYoung))
	})
}

func (s *PipelineSuite) TestBirthAfterParentDeath() {
	s.Run("one year after mother's death is tolerated", func() {
		mother := withDeath(person("I2", "Anna", "Meier", id.SexFemale, "1920"), "1959")
		res := s.validate(Input{Tree: 1, Person: person("I1", "Karl", "Meier", id.SexMale, "1960"), Parents: []ParentPair{{Mother: mother}}})
		s.False(res.HasCode(CodeBirthAfterMotherDeath))
	})

	s.Run("two years after mother's death", func() {
		mother := withDeath(person("I2", "Anna", "Meier", id.SexFemale, "1920"), "1958")
		res := s.validate(Input{Tree: 1, Person: person("I1", "Karl", "Meier", id.SexMale, "1960"), Parents: []ParentPair{{Mother: mother}}})
		s.Equal(SeverityError, s.find(res, CodeBirthAfterMotherDeath).Severity)
	})

	s.Run("mother's burial stands in for death", func() {
		mother := person("I2", "Anna", "Meier", id.SexFemale, "1920")
		mother.Burial = fact("1955")
		res := s.validate(Input{Tree: 1, Person: person("I1", "Karl", "Meier", id.SexMale, "1960"), Parents: []ParentPair{{Mother: mother}}})
		s.True(res.HasCode(CodeBirthAfterMotherDeath))
	})

	s.Run("posthumous birth within the limit", func() {
		father := withDeath(person("I3", "Hans", "Meier", id.SexMale, "1920"), "1 JAN 1960")
		res := s.validate(Input{Tree: 1, Person: person("I1", "Karl", "Meier", id.SexMale, "1 JUN 1960"), Parents: []ParentPair{{Father: father}}})
		s.False(res.HasCode(CodeBirthAfterFatherDeath))
	})

	s.Run("birth too long after father's death", func() {
		father := withDeath(person("I3", "Hans", "Meier", id.SexMale, "1920"), "1 JAN 1960")
		res := s.validate(Input{Tree: 1, Person: person("I1", "Karl", "Meier", id.SexMale, "1 DEC 1960"), Parents: []ParentPair{{Father: father}}})
		i := s.find(res, CodeBirthAfterFatherDeath)
		s.Equal(335, i.Details["diff_days"])
	})
}

func (s *PipelineSuite) TestSpouseRelationSkipsBiologicalChecks() {
	child := person("I1", "Karl", "Meier", id.SexMale, "1960")
	mother := person("I2", "Anna", "Meier", id.SexFemale, "1950")

	res := s.validate(Input{Tree: 1, Person: child, RelType: RelationSpouse, Parents: []ParentPair{{Mother: mother}}})

	s.False(res.HasCode(CodeMotherTooYoung))
}

// =============================================================================
// Siblings
// =============================================================================

func (s *PipelineSuite) TestSiblings() {
	subject := person("I1", "Johann", "Meier", id.SexMale, "1 JAN 1900")
	mother := person("I2", "Anna", "Meier", id.SexFemale, "1870")

	s.Run("same given name within five years", func() {
		sib := person("I4", "Johann Georg", "Meier", id.SexMale, "1 MAR 1901")
		res := s.validate(Input{Tree: 1, Person: subject, Parents: []ParentPair{{Mother: mother, Siblings: []*graph.Person{subject, sib}}}})

		s.True(res.HasCode(CodeDuplicateSibling))
		s.False(res.HasCode(CodeSiblingTooClose))
		s.Require().Len(res.Debug.SiblingComparisons, 1)
		s.True(res.Debug.SiblingComparisons[0].NameMatch)
		s.Equal(id.Xref("I4"), res.Debug.SiblingComparisons[0].SiblingXref)
	})

	s.Run("sharp s matches ss", func() {
		a := person("I5", "Grußel", "Meier", id.SexMale, "1 JAN 1900")
		b := person("I6", "Grussel", "Meier", id.SexMale, "1 JAN 1903")
		res := s.validate(Input{Tree: 1, Person: a, Parents: []ParentPair{{Mother: mother, Siblings: []*graph.Person{b}}}})
		s.True(res.HasCode(CodeDuplicateSibling))
	})

	s.Run("births too close together", func() {
		sib := person("I4", "Maria", "Meier", id.SexFemale, "1 MAY 1900")
		res := s.validate(Input{Tree: 1, Person: subject, Parents: []ParentPair{{Mother: mother, Siblings: []*graph.Person{sib}}}})

		i := s.find(res, CodeSiblingTooClose)
		s.Equal(SeverityWarning, i.Severity)
		s.False(res.HasCode(CodeDuplicateSibling))
	})

	s.Run("twins are not too close", func() {
		sib := person("I4", "Maria", "Meier", id.SexFemale, "1 JAN 1900")
		res := s.validate(Input{Tree: 1, Person: subject, Parents: []ParentPair{{Mother: mother, Siblings: []*graph.Person{sib}}}})
		s.False(res.HasCode(CodeSiblingTooClose))
	})

	s.Run("baptism stands in for a missing birth", func() {
		sib := person("I4", "Maria", "Meier", id.SexFemale, "")
		sib.Baptism = fact("1 APR 1900")
		res := s.validate(Input{Tree: 1, Person: subject, Parents: []ParentPair{{Mother: mother, Siblings: []*graph.Person{sib}}}})
		s.Contains(s.find(res, CodeSiblingTooClose).Message, "baptism")
	})

	s.Run("repeated siblings are compared once", func() {
		sib := person("I4", "Maria", "Meier", id.SexFemale, "1 JAN 1905")
		res := s.validate(Input{Tree: 1, Person: subject, Parents: []ParentPair{{Mother: mother, Siblings: []*graph.Person{sib, sib}}}})
		s.Len(res.Debug.SiblingComparisons, 1)
	})
}

// =============================================================================
// Temporal
// =============================================================================

func (s *PipelineSuite) TestBirthAfterDeath() {
	s.Run("precise birth after year-only death", func() {
		p := withDeath(person("I1", "Karl", "Meier", id.SexMale, "13.01.1926"), "1920")
		res := s.validate(Input{Tree: 1, Person: p})

		i := s.find(res, CodeBirthAfterDeath)
		s.Equal(SeverityError, i.Severity)
		s.False(res.HasCode(CodeImpreciseBirthDeath))
	})

	s.Run("same imprecise year is only informational", func() {
		p := withDeath(person("I1", "Karl", "Meier", id.SexMale, "1900"), "1900")
		res := s.validate(Input{Tree: 1, Person: p})

		s.Equal(SeverityInfo, s.find(res, CodeImpreciseBirthDeath).Severity)
		s.False(res.HasCode(CodeBirthAfterDeath))
	})

	s.Run("precise dates in order", func() {
		p := withDeath(person("I1", "Karl", "Meier", id.SexMale, "1 JAN 1900"), "2 JAN 1900")
		res := s.validate(Input{Tree: 1, Person: p})
		s.Empty(res.Issues)
	})

	s.Run("burial without death", func() {
		p := person("I1", "Karl", "Meier", id.SexMale, "5 MAR 1900")
		p.Burial = fact("1 MAR 1900")
		res := s.validate(Input{Tree: 1, Person: p})
		s.Equal("BURI", s.find(res, CodeBirthAfterDeath).Details["end_type"])
	})

	s.Run("override replaces stored birth", func() {
		p := withDeath(person("I1", "Karl", "Meier", id.SexMale, "1800"), "1850")
		res := s.validate(Input{Tree: 1, Person: p, Overrides: Overrides{Birth: "1860"}})
		s.True(res.HasCode(CodeBirthAfterDeath))
	})
}

func (s *PipelineSuite) TestBaptism() {
	cases := []struct {
		name    string
		birth   string
		baptism string
		want    string
	}{
		{"before birth", "5 JAN 1900", "1 JAN 1900", CodeBaptismBeforeBirth},
		{"imprecise overlap", "5 MAR 1900", "1900", CodeImpreciseBaptism},
		{"delayed", "1 JAN 1900", "1 JUN 1900", CodeBaptismDelayed},
		{"usual delay", "1 JAN 1900", "11 JAN 1900", ""},
		{"adult baptism", "1 JAN 1900", "1 JAN 1920", ""},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			p := person("I1", "Karl", "Meier", id.SexMale, tc.birth)
			p.Baptism = fact(tc.baptism)
			res := s.validate(Input{Tree: 1, Person: p})
			for _, code := range []string{CodeBaptismBeforeBirth, CodeImpreciseBaptism, CodeBaptismDelayed} {
				s.Equal(code == tc.want, res.HasCode(code), code)
			}
		})
	}
}

func (s *PipelineSuite) TestBurialBeforeDeath() {
	p := withDeath(person("I1", "Karl", "Meier", id.SexMale, "1850"), "10 MAR 1900")
	p.Burial = fact("1 MAR 1900")

	res := s.validate(Input{Tree: 1, Person: p})

	s.Equal(SeverityError, s.find(res, CodeBurialBeforeDeath).Severity)
}

func (s *PipelineSuite) TestLifespan() {
	s.Run("at the limit", func() {
		res := s.validate(Input{Tree: 1, Person: withDeath(person("I1", "Karl", "Meier", id.SexMale, "1800"), "1920")})
		s.False(res.HasCode(CodeLifespanTooHigh))
	})

	s.Run("above the limit", func() {
		res := s.validate(Input{Tree: 1, Person: withDeath(person("I1", "Karl", "Meier", id.SexMale, "1800"), "1921")})
		i := s.find(res, CodeLifespanTooHigh)
		s.Equal(121, i.Details["lifespan"])
		s.Contains(i.Message, "Karl Meier")
	})
}

func (s *PipelineSuite) TestFutureDates() {
	s.Run("future birth", func() {
		res := s.validate(Input{Tree: 1, Person: person("I1", "Karl", "Meier", id.SexMale, "2030")})
		s.Equal(SeverityError, s.find(res, CodeFutureDatePrefix+"BIRT").Severity)
	})

	s.Run("future marriage override", func() {
		res := s.validate(Input{Tree: 1, Overrides: Overrides{Marriage: "2099"}})
		s.True(res.HasCode(CodeFutureDatePrefix + "MARR"))
	})

	s.Run("one marriage issue for several future marriages", func() {
		p := person("I1", "Karl", "Meier", id.SexMale, "1990")
		res := s.validate(Input{Tree: 1, Person: p, SpouseFamilies: []SpouseFamily{
			{Family: &graph.Family{Xref: "F1", Husband: "I1", Marriage: fact("2090")}},
			{Family: &graph.Family{Xref: "F2", Husband: "I1", Marriage: fact("2091")}},
		}})
		count := 0
		for _, c := range res.Codes() {
			if c == CodeFutureDatePrefix+"MARR" {
				count++
			}
		}
		s.Equal(1, count)
	})

	s.Run("today is not in the future", func() {
		res := s.validate(Input{Tree: 1, Person: person("I1", "Karl", "Meier", id.SexMale, "1 MAR 2024")})
		s.False(res.HasCode(CodeFutureDatePrefix + "BIRT"))
	})
}

// =============================================================================
// Marriages
// =============================================================================

func (s *PipelineSuite) TestMarriageOverlap() {
	husband := person("I1", "Karl", "Meier", id.SexMale, "1870")
	first := withDeath(person("I2", "Anna", "Schulz", id.SexFemale, "1872"), "1900")
	second := person("I3", "Berta", "Vogel", id.SexFemale, "1880")

	families := func(secondMarriage string) []SpouseFamily {
		return []SpouseFamily{
			{Family: &graph.Family{Xref: "F2", Husband: "I1", Wife: "I3", Marriage: fact(secondMarriage)}, Partner: second},
			{Family: &graph.Family{Xref: "F1", Husband: "I1", Wife: "I2", Marriage: fact("1890")}, Partner: first},
		}
	}

	s.Run("remarriage after the first wife's death", func() {
		res := s.validate(Input{Tree: 1, Person: husband, SpouseFamilies: families("1905")})
		s.False(res.HasCode(CodeMarriageOverlapping))
		s.False(res.HasCode(CodeMarriagePossiblyOverlap))
	})

	s.Run("remarriage while the first wife was alive", func() {
		res := s.validate(Input{Tree: 1, Person: husband, SpouseFamilies: families("1898")})
		i := s.find(res, CodeMarriageOverlapping)
		s.Equal(SeverityError, i.Severity)
		s.Equal(1900, i.Details["previous_spouse_death"])
	})

	s.Run("previous spouse without death date", func() {
		alive := person("I2", "Anna", "Schulz", id.SexFemale, "1872")
		res := s.validate(Input{Tree: 1, Person: husband, SpouseFamilies: []SpouseFamily{
			{Family: &graph.Family{Xref: "F1", Husband: "I1", Wife: "I2", Marriage: fact("1890")}, Partner: alive},
			{Family: &graph.Family{Xref: "F2", Husband: "I1", Wife: "I3", Marriage: fact("1905")}, Partner: second},
		}})
		s.Equal(SeverityWarning, s.find(res, CodeMarriagePossiblyOverlap).Severity)
	})
}

func (s *PipelineSuite) TestStoredMarriageDates() {
	p := withDeath(person("I1", "Karl", "Meier", id.SexMale, "1870"), "1920")
	res := s.validate(Input{Tree: 1, Person: p, SpouseFamilies: []SpouseFamily{
		{Family: &graph.Family{Xref: "F1", Husband: "I1", Marriage: fact("1860")}},
		{Family: &graph.Family{Xref: "F2", Husband: "I1", Marriage: fact("1925")}},
	}})

	s.Equal("F1", s.find(res, CodeMarriageBeforeBirth).Details["family"])
	s.Equal("F2", s.find(res, CodeMarriageAfterDeath).Details["family"])
}

func (s *PipelineSuite) TestTooManyMarriages() {
	p := person("I1", "Karl", "Meier", id.SexMale, "1870")
	var fams []SpouseFamily
	for i := range 6 {
		fams = append(fams, SpouseFamily{Family: &graph.Family{Xref: id.Xref("F" + string(rune('1'+i))), Husband: "I1"}})
	}

	res := s.validate(Input{Tree: 1, Person: p, SpouseFamilies: fams})

	i := s.find(res, CodeTooManyMarriages)
	s.Equal(SeverityInfo, i.Severity)
	s.Equal(6, i.Details["marriage_count"])
}

func (s *PipelineSuite) TestInteractiveMarriage() {
	s.Run("partner checks", func() {
		husband := withDeath(person("I2", "Hans", "Meier", id.SexMale, "1890"), "1895")
		wife := person("I3", "Otto", "Schulz", id.SexMale, "1875")
		res := s.validate(Input{Tree: 1, Overrides: Overrides{Marriage: "1900"}, Husband: husband, Wife: wife})

		s.True(res.HasCode(CodeMarriagePartnerTooYoung))
		s.True(res.HasCode(CodeMarriageAfterPartnerDeath))
		s.True(res.HasCode(CodeGenderMismatchWife))
		s.False(res.HasCode(CodeGenderMismatchHusband))
	})

	s.Run("marriage before partner birth", func() {
		husband := person("I2", "Hans", "Meier", id.SexMale, "1910")
		res := s.validate(Input{Tree: 1, Overrides: Overrides{Marriage: "1900"}, Husband: husband})
		s.True(res.HasCode(CodeMarriageBeforePartnerBirth))
		s.False(res.HasCode(CodeMarriagePartnerTooYoung))
	})

	s.Run("subject's own dates", func() {
		res := s.validate(Input{Tree: 1, Overrides: Overrides{Marriage: "1900", Birth: "1790", Death: "1899"}})
		s.True(res.HasCode(CodeMarriageTooOld))
		s.True(res.HasCode(CodeMarriageAfterDeath))
	})

	s.Run("no marriage year", func() {
		husband := person("I2", "Hans", "Meier", id.SexFemale, "1890")
		res := s.validate(Input{Tree: 1, Overrides: Overrides{Marriage: "unknown"}, Husband: husband})
		s.Empty(res.Issues)
	})
}

func (s *PipelineSuite) TestGenderConsistency() {
	p := person("I1", "Anna", "Meier", id.SexFemale, "1870")
	res := s.validate(Input{Tree: 1, Person: p, SpouseFamilies: []SpouseFamily{
		{Family: &graph.Family{Xref: "F1", Husband: "I1"}},
	}})

	i := s.find(res, CodeGenderMismatchHusband)
	s.Equal("HUSB", i.Details["role"])
}

// =============================================================================
// Optional checks
// =============================================================================

func (s *PipelineSuite) TestOptionalChecksAreOffByDefault() {
	p := withDeath(person("I1", "", "VonBerg", id.SexMale, ""), "1900")

	res := s.validate(Input{Tree: 1, Person: p})

	s.Empty(res.Issues)
}

func (s *PipelineSuite) TestMissingData() {
	s.settings.EnableMissingDataChecks = true
	p := withDeath(person("I1", "Karl", "Meier", id.SexMale, ""), "1900")

	res := s.validate(Input{Tree: 1, Person: p, SpouseFamilies: []SpouseFamily{
		{Family: &graph.Family{Xref: "F1", Husband: "I1", Children: []id.Xref{"I9"}}},
	}})

	s.True(res.HasCode(CodeMissingBirthDate))
	s.True(res.HasCode(CodeDeathWithoutBirth))
}

func (s *PipelineSuite) TestGeographic() {
	s.settings.EnableGeographicChecks = true
	p := person("I1", "Karl", "Meier", id.SexMale, "")
	p.Birth = &graph.DateFact{Date: "1 JAN 1900", Place: "Berlin"}
	p.Death = &graph.DateFact{Date: "2 JAN 1900", Place: "New York"}
	places := map[string]graph.Coordinates{
		"Berlin":   {Lat: 52.52, Lon: 13.405},
		"New York": {Lat: 40.7128, Lon: -74.006},
	}

	res := s.validate(Input{Tree: 1, Person: p, Places: places})

	s.Equal(SeverityInfo, s.find(res, CodeLongDistance).Severity)
	s.Equal(SeverityError, s.find(res, CodeImpossibleTravel).Severity)
}

func TestHaversine(t *testing.T) {
	km := Haversine(graph.Coordinates{Lat: 52.52, Lon: 13.405}, graph.Coordinates{Lat: 48.1351, Lon: 11.582})
	assert.InDelta(t, 504, km, 5)
	assert.Zero(t, Haversine(graph.Coordinates{Lat: 1, Lon: 1}, graph.Coordinates{Lat: 1, Lon: 1}))
}

func (s *PipelineSuite) TestNameConsistency() {
	s.settings.EnableNameConsistencyChecks = true

	s.Run("married name with a different given name", func() {
		p := person("I1", "Maria", "Meier", id.SexFemale, "1870")
		p.Names = append(p.Names, graph.Name{Given: "Berta", Surname: "Schulz", Type: "_MARNM"})
		res := s.validate(Input{Tree: 1, Person: p})
		s.Contains(s.find(res, CodeNameMismatch).Message, "married name")
	})

	s.Run("surname without given name", func() {
		res := s.validate(Input{Tree: 1, Person: person("I1", "", "Meier", id.SexFemale, "1870")})
		s.True(res.HasCode(CodeMissingGivenName))
	})

	s.Run("fused prefix", func() {
		res := s.validate(Input{Tree: 1, Person: person("I1", "Karl", "VonBerg", id.SexMale, "1870")})
		s.True(res.HasCode(CodeSurnamePrefix))
	})

	s.Run("control characters", func() {
		res := s.validate(Input{Tree: 1, Person: person("I1", "Ka\x01rl", "Meier", id.SexMale, "1870")})
		s.True(res.HasCode(CodeNameEncoding))
	})

	s.Run("surname follows the mother", func() {
		child := person("I1", "Karl", "Meier", id.SexMale, "1900")
		father := person("I2", "Hans", "Schulz", id.SexMale, "1870")
		mother := person("I3", "Anna", "Meier", id.SexFemale, "1870")
		res := s.validate(Input{Tree: 1, Person: child, Parents: []ParentPair{{Father: father, Mother: mother}}})
		s.Equal(SeverityInfo, s.find(res, CodeSurnameMismatchMother).Severity)
	})

	s.Run("surname matches neither parent", func() {
		child := person("I1", "Karl", "Vogel", id.SexMale, "1900")
		father := person("I2", "Hans", "Schulz", id.SexMale, "1870")
		res := s.validate(Input{Tree: 1, Person: child, Parents: []ParentPair{{Father: father}}})
		s.Equal(SeverityWarning, s.find(res, CodeSurnameMismatchFather).Severity)
	})
}

func (s *PipelineSuite) TestSourceQuality() {
	s.settings.EnableSourceChecks = true
	p := person("I1", "Karl", "Meier", id.SexMale, "1870")
	p.Death = &graph.DateFact{Date: "1930", Evidence: graph.Evidence{InlineText: "parish register"}}

	res := s.validate(Input{Tree: 1, Person: p, SpouseFamilies: []SpouseFamily{
		{Family: &graph.Family{Xref: "F1", Husband: "I1", Marriage: &graph.DateFact{Place: "Berlin"}}},
	}})

	s.True(res.HasCode(CodeMissingSourcePrefix + "BIRT"))
	s.False(res.HasCode(CodeMissingSourcePrefix + "DEAT"))
	s.Equal("F1", s.find(res, CodeMissingSourcePrefix+"MARR").Details["family"])
}

// =============================================================================
// Ignored issues and trace
// =============================================================================

func (s *PipelineSuite) TestIgnoredCodesAreFiltered() {
	child := person("I1", "Karl", "Meier", id.SexMale, "1960")
	mother := withDeath(person("I2", "Anna", "Meier", id.SexFemale, "1950"), "1955")

	res := s.validate(Input{
		Tree:    1,
		Person:  child,
		Parents: []ParentPair{{Mother: mother}},
		Ignored: map[string]struct{}{CodeMotherTooYoung: {}},
	})

	s.False(res.HasCode(CodeMotherTooYoung))
	s.True(res.HasCode(CodeBirthAfterMotherDeath))
	s.Equal(1, res.Debug.IgnoredCount)
}

func TestFilterIgnoredKeepsUncodedIssues(t *testing.T) {
	issues := []Issue{{Code: "A"}, {Message: "no code"}, {Code: "B"}}

	kept := FilterIgnored(issues, map[string]struct{}{"A": {}, "": {}})

	assert.Equal(t, []Issue{{Message: "no code"}, {Code: "B"}}, kept)
}

func (s *PipelineSuite) TestDebugTrace() {
	log := []string{"Resolved husband I2 (Hans Meier)"}
	father := person("I2", "Hans", "Meier", id.SexMale, "1930")

	res := s.validate(Input{
		Tree:          4,
		Overrides:     Overrides{Birth: "1960", Husband: "I2"},
		Parents:       []ParentPair{{Father: father}},
		ResolutionLog: log,
	})

	s.Equal("NEW", res.Debug.Person)
	s.Equal(1960, res.Debug.BirthYear)
	s.Equal(id.TreeID(4), res.Debug.Tree)
	s.Equal(log, res.Debug.ResolutionLog)
	s.Equal("I2", res.Debug.Overrides.Husband)
	s.Equal([]string{"override: father=Hans Meier (@I2@) mother=-"}, res.Debug.Parents)
}
