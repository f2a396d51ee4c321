package duplicates

import (
	"context"
	"time"
	"unicode/utf8"

	"datencheck/internal/dates"
	"datencheck/internal/graph"
	"datencheck/internal/strmatch"
	id "datencheck/pkg/domain"
)

const (
	pairsPageSize    = 500
	pairsMaxDistance = 3
	pairsMinLength   = 3
)

type pairEntry struct {
	xref     id.Xref
	name     string
	norm     string
	code     string
	birth    int
	hasBirth bool
	age      *float64
}

// FindAllPairs compares every unordered pair of persons in the tree. A pair
// matches on a small full-name edit distance or equal phonetic codes, unless
// both birth years are known and too far apart.
func (s *Service) FindAllPairs(ctx context.Context, tree id.TreeID) ([]Pair, error) {
	start := time.Now()
	if err := requireTree(tree); err != nil {
		return nil, err
	}
	entries, err := s.loadPairEntries(ctx, tree)
	if err != nil {
		return nil, err
	}

	out := make([]Pair, 0)
	for i := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		a := &entries[i]
		for j := i + 1; j < len(entries); j++ {
			b := &entries[j]
			dist := strmatch.Distance(a.norm, b.norm)
			longest := max(utf8.RuneCountInString(a.norm), utf8.RuneCountInString(b.norm))
			phoneticMatch := a.code != "" && a.code == b.code
			if !(dist <= pairsMaxDistance && longest > pairsMinLength) && !phoneticMatch {
				continue
			}
			if a.hasBirth && b.hasBirth && !dates.IsDatePlausible(a.birth, b.birth, a.age, s.highAge, s.defaultDf) {
				continue
			}
			out = append(out, Pair{
				ID1: a.xref, Name1: a.name,
				ID2: b.xref, Name2: b.name,
				Distance:      dist,
				PhoneticMatch: phoneticMatch,
			})
		}
	}
	s.logger.InfoContext(ctx, "bulk duplicate scan finished",
		"tree_id", tree.String(),
		"persons", len(entries),
		"pairs", len(out),
	)
	s.observe(kindPairs, start, len(out))
	return out, nil
}

func (s *Service) loadPairEntries(ctx context.Context, tree id.TreeID) ([]pairEntry, error) {
	var entries []pairEntry
	for offset := 0; ; offset += pairsPageSize {
		xrefs, err := s.provider.PersonXrefs(ctx, tree, offset, pairsPageSize)
		if err != nil {
			return nil, s.providerError(ctx, "person_xrefs", tree, err)
		}
		for _, x := range xrefs {
			p, err := s.provider.Person(ctx, tree, x)
			if err != nil {
				return nil, s.providerError(ctx, "person", tree, err)
			}
			if p == nil || len(p.Names) == 0 {
				continue
			}
			entries = append(entries, s.pairEntry(p))
		}
		if len(xrefs) < pairsPageSize {
			return entries, nil
		}
	}
}

func (s *Service) pairEntry(p *graph.Person) pairEntry {
	name := p.FullName()
	norm := strmatch.NormalizeName(name)
	e := pairEntry{
		xref: p.Xref,
		name: name,
		norm: norm,
		code: s.codes.Encode(norm),
		age:  deathAgeContext(p),
	}
	e.birth, e.hasBirth = estimatedBirthYear(p)
	return e
}
