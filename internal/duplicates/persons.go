package duplicates

import (
	"context"
	"math"
	"slices"
	"strings"
	"time"

	"datencheck/internal/dates"
	"datencheck/internal/graph"
	"datencheck/internal/names"
	"datencheck/internal/strmatch"
	id "datencheck/pkg/domain"
	dErrors "datencheck/pkg/domain-errors"
	pstrings "datencheck/pkg/platform/strings"
)

var (
	umlautExpand = strings.NewReplacer("ä", "ae", "ö", "oe", "ü", "ue", "Ä", "Ae", "Ö", "Oe", "Ü", "Ue", "ß", "ss")
	umlautStrip  = strings.NewReplacer("ä", "a", "ö", "o", "ü", "u", "Ä", "A", "Ö", "O", "Ü", "U", "ß", "s")
)

// FindPersons returns stored persons that may be the person described by q.
//
// Candidates share the surname or married surname (or a spelling variant of
// it) and must pass three gates: no sex conflict, a matching given name, and
// no contradicting birth, baptism or death year.
func (s *Service) FindPersons(ctx context.Context, q PersonQuery) ([]Candidate, error) {
	start := time.Now()
	if err := requireTree(q.Tree); err != nil {
		return nil, err
	}
	terms := surnameTerms(q.Surname, q.MarriedSurname)
	if len(terms) == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "surname is required")
	}

	pool, err := s.personsByNames(ctx, q.Tree, terms)
	if err != nil {
		return nil, err
	}

	inputFull := strmatch.NormalizeName(q.Given + " " + q.Surname)
	out := make([]Candidate, 0)
	for _, p := range pool {
		if q.Sex.Conflicts(p.Sex) {
			continue
		}
		if !s.givenNameMatches(q.Given, inputFull, p) {
			continue
		}
		if !s.datesCompatible(q, p) {
			continue
		}
		out = append(out, s.candidate(q, inputFull, p))
	}
	s.observe(kindPerson, start, len(out))
	return out, nil
}

func (s *Service) personsByNames(ctx context.Context, tree id.TreeID, terms []string) ([]*graph.Person, error) {
	seen := make(map[id.Xref]struct{})
	var pool []*graph.Person
	for _, term := range terms {
		found, err := s.provider.FindPersonsByName(ctx, tree, term)
		if err != nil {
			return nil, s.providerError(ctx, "find_persons_by_name", tree, err)
		}
		for _, p := range found {
			if p == nil {
				continue
			}
			if _, dup := seen[p.Xref]; dup {
				continue
			}
			seen[p.Xref] = struct{}{}
			pool = append(pool, p)
		}
	}
	return pool, nil
}

// surnameTerms expands each surname into its raw, umlaut-expanded and
// umlaut-stripped spellings.
func surnameTerms(surnames ...string) []string {
	var terms []string
	for _, sn := range surnames {
		sn = strings.TrimSpace(strings.ReplaceAll(sn, "/", ""))
		if sn == "" {
			continue
		}
		terms = append(terms, sn, umlautExpand.Replace(sn), umlautStrip.Replace(sn))
	}
	return pstrings.UniqueFold(terms)
}

// givenNameMatches passes when any given token matches exactly or by
// phonetic code, when the full names sound alike, or when the given names
// are known equivalents. An empty input given name passes.
func (s *Service) givenNameMatches(given, inputFull string, p *graph.Person) bool {
	inputTokens := strings.Fields(names.Normalize(given))
	if len(inputTokens) == 0 {
		return true
	}
	if s.codes.Match(inputFull, p.FullName()) {
		return true
	}
	for _, n := range p.Names {
		for _, ct := range strings.Fields(names.Normalize(n.Given)) {
			for _, it := range inputTokens {
				if it == ct || s.codes.Match(it, ct) {
					return true
				}
			}
		}
		if names.AreEquivalent(given, n.Given) {
			return true
		}
	}
	return false
}

type comparison int

const (
	incomparable comparison = iota
	overlaps
	conflicts
)

// datesCompatible rejects a candidate only when comparable evidence exists
// and none of it overlaps.
func (s *Service) datesCompatible(q PersonQuery, p *graph.Person) bool {
	age := deathAgeContext(p)
	compared := false
	for _, pair := range []struct {
		raw  string
		fact *graph.DateFact
	}{
		{q.Birth, p.Birth},
		{q.Baptism, p.Baptism},
		{q.Death, p.Death},
	} {
		switch s.compareFact(pair.raw, pair.fact, age) {
		case overlaps:
			return true
		case conflicts:
			compared = true
		}
	}
	if compared {
		return false
	}

	// birth estimated from death year and AGE
	if target, ok := dates.ParseYear(q.Birth); ok {
		if cy, ok := estimatedBirthYear(p); ok {
			return dates.IsDatePlausible(target, cy, age, s.highAge, s.defaultDf)
		}
	}
	return true
}

// compareFact compares years within tolerance. When both years are equal
// and both months are known, the months must agree too.
func (s *Service) compareFact(raw string, fact *graph.DateFact, age *float64) comparison {
	if fact == nil {
		return incomparable
	}
	in, stored := dates.Parse(raw), dates.Parse(fact.Date)
	if !in.HasYear() || !stored.HasYear() {
		return incomparable
	}
	if !dates.IsDatePlausible(in.Year, stored.Year, age, s.highAge, s.defaultDf) {
		return conflicts
	}
	if in.Year == stored.Year && in.Month != 0 && stored.Month != 0 && in.Month != stored.Month {
		return conflicts
	}
	return overlaps
}

// deathAgeContext is the explicit death AGE, or the lifespan from birth and
// death years.
func deathAgeContext(p *graph.Person) *float64 {
	if age, ok := dates.ParseAgeToYears(p.DeathAge); ok {
		return &age
	}
	b, bok := p.Birth.Year()
	d, dok := p.Death.Year()
	if bok && dok {
		age := float64(d - b)
		return &age
	}
	return nil
}

func estimatedBirthYear(p *graph.Person) (int, bool) {
	if y, ok := p.Birth.Year(); ok {
		return y, true
	}
	d, dok := p.Death.Year()
	age, aok := dates.ParseAgeToYears(p.DeathAge)
	if dok && aok {
		return d - int(math.Round(age)), true
	}
	return 0, false
}

func (s *Service) candidate(q PersonQuery, inputFull string, p *graph.Person) Candidate {
	full := p.FullName()
	return Candidate{
		ID:              p.Xref,
		Name:            full,
		Distance:        strmatch.Distance(inputFull, full),
		PhoneticMatch:   s.codes.Match(inputFull, full),
		AliasMatch:      strmatch.IsAliasMatch(q.Surname, p.Surname()),
		EquivalentMatch: q.Given != "" && names.AreEquivalent(q.Given, p.Given()),
		Birth:           dateOf(p.Birth),
		Death:           dateOf(p.Death),
		ChildFamilies:   slices.Clone(p.ChildFamilies),
		SpouseFamilies:  slices.Clone(p.SpouseFamilies),
	}
}
