package duplicates

import (
	"context"
	"slices"
	"strings"
	"time"

	"datencheck/internal/dates"
	"datencheck/internal/graph"
	"datencheck/internal/names"
	"datencheck/internal/strmatch"
	id "datencheck/pkg/domain"
)

const siblingMaxDistance = 5

// FindSiblings returns children of the families of the given parents whose
// names resemble the child described by q. Missing parents or a missing
// child name yield no candidates.
func (s *Service) FindSiblings(ctx context.Context, q SiblingQuery) ([]Candidate, error) {
	start := time.Now()
	if err := requireTree(q.Tree); err != nil {
		return nil, err
	}
	husband, wife := id.TrimXref(q.Husband), id.TrimXref(q.Wife)
	out := make([]Candidate, 0)
	if (husband == "" && wife == "") || strings.TrimSpace(q.Given+q.Surname) == "" {
		return out, nil
	}

	families, err := s.provider.FamiliesBySpouses(ctx, q.Tree, husband, wife)
	if err != nil {
		return nil, s.providerError(ctx, "families_by_spouses", q.Tree, err)
	}

	input := strmatch.NormalizeName(q.Given + " " + q.Surname)
	target, hasTarget := dates.ParseYear(q.Birth)
	seen := make(map[id.Xref]struct{})
	for _, f := range families {
		children, err := s.provider.Children(ctx, q.Tree, f)
		if err != nil {
			return nil, s.providerError(ctx, "children", q.Tree, err)
		}
		for _, child := range children {
			if child == nil {
				continue
			}
			if _, dup := seen[child.Xref]; dup {
				continue
			}
			c, ok := s.siblingCandidate(q, input, child)
			if !ok {
				continue
			}
			if hasTarget {
				if y, ok := siblingYear(child); ok && !dates.IsDatePlausible(target, y, nil, s.highAge, s.defaultDf) {
					continue
				}
			}
			seen[child.Xref] = struct{}{}
			out = append(out, c)
		}
	}
	s.observe(kindSibling, start, len(out))
	return out, nil
}

func (s *Service) siblingCandidate(q SiblingQuery, input string, child *graph.Person) (Candidate, bool) {
	full := child.FullName()
	c := Candidate{
		ID:              child.Xref,
		Name:            full,
		Distance:        strmatch.Distance(input, full),
		PhoneticMatch:   s.codes.Match(input, full),
		AliasMatch:      strmatch.IsAliasMatch(input, full),
		EquivalentMatch: q.Given != "" && names.AreEquivalent(q.Given, child.Given()),
		Birth:           dateOf(child.Birth),
		Death:           dateOf(child.Death),
		ChildFamilies:   slices.Clone(child.ChildFamilies),
		SpouseFamilies:  slices.Clone(child.SpouseFamilies),
	}
	ok := c.Distance < siblingMaxDistance || c.PhoneticMatch || c.AliasMatch || c.EquivalentMatch
	return c, ok
}

func siblingYear(p *graph.Person) (int, bool) {
	if y, ok := p.Birth.Year(); ok {
		return y, true
	}
	return p.Baptism.Year()
}

// FindFamilies returns the xrefs of families with exactly this husband and
// wife. Pointer decoration is ignored.
func (s *Service) FindFamilies(ctx context.Context, tree id.TreeID, husband, wife string) ([]id.Xref, error) {
	start := time.Now()
	if err := requireTree(tree); err != nil {
		return nil, err
	}
	h, w := id.TrimXref(husband), id.TrimXref(wife)
	out := make([]id.Xref, 0)
	if h == "" && w == "" {
		return out, nil
	}
	families, err := s.provider.FamiliesBySpouses(ctx, tree, h, w)
	if err != nil {
		return nil, s.providerError(ctx, "families_by_spouses", tree, err)
	}
	for _, f := range families {
		if f != nil && f.Husband == h && f.Wife == w {
			out = append(out, f.Xref)
		}
	}
	s.observe(kindFamily, start, len(out))
	return out, nil
}
