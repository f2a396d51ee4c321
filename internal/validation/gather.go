package validation

import (
	"context"
	"fmt"
	"strings"

	"datencheck/internal/graph"
	"datencheck/internal/ignored"
	"datencheck/internal/platform/tracer"
	id "datencheck/pkg/domain"
	dErrors "datencheck/pkg/domain-errors"

	"golang.org/x/sync/errgroup"
)

// gatherResult holds what the concurrent reads found.
// Each goroutine writes to its own fields.
type gatherResult struct {
	ignored        ignored.Codes
	parents        []ParentPair
	spouseFamilies []SpouseFamily
	places         map[string]graph.Coordinates
	overrides      resolvedOverrides
}

// resolvedOverrides are the persons named by the husband/wife/family form
// fields.
type resolvedOverrides struct {
	// husband and wife are the directly named persons.
	husband *graph.Person
	wife    *graph.Person
	// father and mother fall back to the spouses of the family context.
	father *graph.Person
	mother *graph.Person
	log    []string
}

// gather reads the person and everything the rules need about them.
// Failed reads are skipped; only a cancelled caller context fails.
func (s *Service) gather(ctx context.Context, span tracer.Span, req Request) (Input, error) {
	ctx, gspan := s.tracer.Start(ctx, tracer.SpanGatherContext,
		tracer.Int64(tracer.AttrTreeID, int64(req.Tree)),
	)
	in, err := s.gatherInput(ctx, span, req)
	gspan.End(err)
	return in, err
}

func (s *Service) gatherInput(parent context.Context, span tracer.Span, req Request) (Input, error) {
	ctx, cancel := context.WithTimeout(parent, gatherTimeout)
	defer cancel()

	in := Input{
		Tree:      req.Tree,
		Overrides: req.Overrides,
		RelType:   req.RelType,
		Now:       s.now(),
	}

	// soft turns a read failure into a skipped input unless the caller gave up.
	soft := func(dependency string, err error) error {
		if parent.Err() != nil {
			return dErrors.Wrap(parent.Err(), dErrors.CodeTimeout, "validation cancelled")
		}
		s.degraded(parent, span, dependency, req.Tree, err)
		return nil
	}

	if !req.Xref.IsNil() {
		p, err := s.provider.Person(ctx, req.Tree, req.Xref)
		if err != nil {
			if err := soft("graph_provider", err); err != nil {
				return Input{}, err
			}
		}
		in.Person = p
	}

	g, gctx := errgroup.WithContext(ctx)
	var result gatherResult

	if in.Person != nil {
		s.launchIgnoredFetch(gctx, g, &result, req.Tree, in.Person.Xref, soft)
		s.launchParentsFetch(gctx, g, &result, req.Tree, in.Person, soft)
		s.launchSpouseFetch(gctx, g, &result, req.Tree, in.Person, soft)
		if s.settings.EnableGeographicChecks {
			s.launchPlacesFetch(gctx, g, &result, req.Tree, in.Person, soft)
		}
	}
	if hasRelationOverrides(req.Overrides) {
		s.launchOverrideResolution(gctx, g, &result, req, soft)
	}

	if err := g.Wait(); err != nil {
		return Input{}, err
	}

	in.Ignored = result.ignored
	in.Parents = result.parents
	in.SpouseFamilies = result.spouseFamilies
	in.Places = result.places
	in.Husband = result.overrides.husband
	in.Wife = result.overrides.wife
	in.ResolutionLog = result.overrides.log

	// Relationship overrides stand in for parents only when none are stored.
	o := result.overrides
	if len(in.Parents) == 0 && (o.father != nil || o.mother != nil) {
		siblings, err := s.siblings(ctx, req.Tree, nil, o.mother, o.father)
		if err != nil {
			if err := soft("graph_provider", err); err != nil {
				return Input{}, err
			}
		}
		in.Parents = []ParentPair{{Mother: o.mother, Father: o.father, Siblings: siblings}}
	}
	return in, nil
}

func hasRelationOverrides(o Overrides) bool {
	return strings.TrimSpace(o.Husband) != "" ||
		strings.TrimSpace(o.Wife) != "" ||
		strings.TrimSpace(o.Family) != ""
}

func (s *Service) launchIgnoredFetch(
	ctx context.Context,
	g *errgroup.Group,
	result *gatherResult,
	tree id.TreeID,
	xref id.Xref,
	soft func(string, error) error,
) {
	if s.ignored == nil {
		return
	}
	g.Go(func() error {
		codes, err := s.ignored.IgnoredCodes(ctx, tree, xref)
		if err != nil {
			// Without decisions every issue is shown.
			return soft("ignored_store", err)
		}
		result.ignored = codes
		return nil
	})
}

func (s *Service) launchParentsFetch(
	ctx context.Context,
	g *errgroup.Group,
	result *gatherResult,
	tree id.TreeID,
	p *graph.Person,
	soft func(string, error) error,
) {
	g.Go(func() error {
		pairs, err := s.parents(ctx, tree, p)
		if err != nil {
			return soft("graph_provider", err)
		}
		result.parents = pairs
		return nil
	})
}

func (s *Service) parents(ctx context.Context, tree id.TreeID, p *graph.Person) ([]ParentPair, error) {
	fams, err := s.provider.ParentFamilies(ctx, tree, p)
	if err != nil {
		return nil, err
	}
	pairs := make([]ParentPair, 0, len(fams))
	for _, f := range fams {
		father, err := s.person(ctx, tree, f.Husband)
		if err != nil {
			return nil, err
		}
		mother, err := s.person(ctx, tree, f.Wife)
		if err != nil {
			return nil, err
		}
		siblings, err := s.siblings(ctx, tree, f, mother, father)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, ParentPair{Family: f, Mother: mother, Father: father, Siblings: siblings})
	}
	return pairs, nil
}

// siblings collects the children of every family of the parents. With both
// parents known only their shared families count; with one parent known,
// half-siblings through that parent are included.
func (s *Service) siblings(ctx context.Context, tree id.TreeID, f *graph.Family, mother, father *graph.Person) ([]*graph.Person, error) {
	var fams []*graph.Family
	switch {
	case mother != nil:
		all, err := s.provider.SpouseFamilies(ctx, tree, mother)
		if err != nil {
			return nil, err
		}
		for _, mf := range all {
			if mf != nil && (father == nil || mf.Husband == father.Xref) {
				fams = append(fams, mf)
			}
		}
	case father != nil:
		all, err := s.provider.SpouseFamilies(ctx, tree, father)
		if err != nil {
			return nil, err
		}
		fams = all
	case f != nil:
		fams = []*graph.Family{f}
	}

	seen := make(map[id.Xref]struct{})
	var out []*graph.Person
	for _, fam := range fams {
		children, err := s.provider.Children(ctx, tree, fam)
		if err != nil {
			return nil, err
		}
		for _, c := range children {
			if c == nil {
				continue
			}
			if _, dup := seen[c.Xref]; dup {
				continue
			}
			seen[c.Xref] = struct{}{}
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Service) launchSpouseFetch(
	ctx context.Context,
	g *errgroup.Group,
	result *gatherResult,
	tree id.TreeID,
	p *graph.Person,
	soft func(string, error) error,
) {
	g.Go(func() error {
		fams, err := s.provider.SpouseFamilies(ctx, tree, p)
		if err != nil {
			return soft("graph_provider", err)
		}
		out := make([]SpouseFamily, 0, len(fams))
		for _, f := range fams {
			if f == nil {
				continue
			}
			// A failed partner read keeps the family; only partner checks are lost.
			partner, err := s.person(ctx, tree, f.Partner(p.Xref))
			if err != nil {
				if err := soft("graph_provider", err); err != nil {
					return err
				}
				partner = nil
			}
			out = append(out, SpouseFamily{Family: f, Partner: partner})
		}
		result.spouseFamilies = out
		return nil
	})
}

func (s *Service) launchPlacesFetch(
	ctx context.Context,
	g *errgroup.Group,
	result *gatherResult,
	tree id.TreeID,
	p *graph.Person,
	soft func(string, error) error,
) {
	g.Go(func() error {
		places := make(map[string]graph.Coordinates, 2)
		for _, f := range []*graph.DateFact{p.Birth, p.Death} {
			if f == nil {
				continue
			}
			name := strings.TrimSpace(f.Place)
			if name == "" {
				continue
			}
			if _, done := places[name]; done {
				continue
			}
			c, err := s.provider.PlaceCoordinates(ctx, tree, name)
			if err != nil {
				return soft("graph_provider", err)
			}
			if c != nil {
				places[name] = *c
			}
		}
		result.places = places
		return nil
	})
}

func (s *Service) launchOverrideResolution(
	ctx context.Context,
	g *errgroup.Group,
	result *gatherResult,
	req Request,
	soft func(string, error) error,
) {
	g.Go(func() error {
		res, err := s.resolveOverrides(ctx, req.Tree, req.Overrides)
		if err != nil {
			return soft("graph_provider", err)
		}
		result.overrides = res
		return nil
	})
}

// resolveOverrides looks up the husband and wife form fields. A reference
// that names a family instead of a person sets the family context, whose
// spouses fill in missing parents. Every strategy attempt is traced.
func (s *Service) resolveOverrides(ctx context.Context, tree id.TreeID, o Overrides) (resolvedOverrides, error) {
	var res resolvedOverrides
	famRef := CleanRef(o.Family)
	var fam *graph.Family

	for _, role := range []struct {
		name string
		ref  string
		dst  **graph.Person
	}{
		{"husband", o.Husband, &res.husband},
		{"wife", o.Wife, &res.wife},
	} {
		ref := CleanRef(role.ref)
		if ref == "" {
			continue
		}
		p, err := s.lookupPerson(ctx, tree, ref, &res.log)
		if err != nil {
			return res, err
		}
		if p != nil {
			*role.dst = p
			res.log = append(res.log, fmt.Sprintf("Resolved %s %s (%s)", role.name, ref, p.FullName()))
			continue
		}
		f, err := s.lookupFamily(ctx, tree, ref, &res.log)
		if err != nil {
			return res, err
		}
		if f != nil {
			res.log = append(res.log, fmt.Sprintf("Mapped %s to family context.", ref))
			famRef, fam = ref, f
			continue
		}
		res.log = append(res.log, fmt.Sprintf("Individual %s not found.", ref))
	}

	res.father, res.mother = res.husband, res.wife
	if famRef == "" {
		return res, nil
	}
	if fam == nil {
		f, err := s.lookupFamily(ctx, tree, famRef, &res.log)
		if err != nil {
			return res, err
		}
		fam = f
	}
	if fam == nil || (fam.Husband.IsNil() && fam.Wife.IsNil()) {
		res.log = append(res.log, fmt.Sprintf("Family %s not found.", famRef))
		return res, nil
	}
	res.log = append(res.log, fmt.Sprintf("Resolved family %s", famRef))
	var err error
	if res.father == nil {
		if res.father, err = s.person(ctx, tree, fam.Husband); err != nil {
			return res, err
		}
	}
	if res.mother == nil {
		if res.mother, err = s.person(ctx, tree, fam.Wife); err != nil {
			return res, err
		}
	}
	return res, nil
}

func (s *Service) lookupPerson(ctx context.Context, tree id.TreeID, ref string, trace *[]string) (*graph.Person, error) {
	return lookup(trace, "individual", ref, func(x id.Xref) (*graph.Person, error) {
		return s.provider.Person(ctx, tree, x)
	})
}

func (s *Service) lookupFamily(ctx context.Context, tree id.TreeID, ref string, trace *[]string) (*graph.Family, error) {
	return lookup(trace, "family", ref, func(x id.Xref) (*graph.Family, error) {
		return s.provider.Family(ctx, tree, x)
	})
}

// lookup tries the Candidates of ref in strategy order and stops at the
// first hit. Each attempt and the hit are appended to trace.
func lookup[T any](trace *[]string, kind, ref string, get func(id.Xref) (*T, error)) (*T, error) {
	for _, c := range Candidates(ref) {
		*trace = append(*trace, fmt.Sprintf("Trying %s %s (%s) for %s", kind, c.Xref, c.Strategy, ref))
		v, err := get(c.Xref)
		if err != nil {
			return nil, err
		}
		if v != nil {
			*trace = append(*trace, fmt.Sprintf("Found %s %s via %s", kind, c.Xref, c.Strategy))
			return v, nil
		}
	}
	return nil, nil
}

// person is Provider.Person that treats an empty xref as absent.
func (s *Service) person(ctx context.Context, tree id.TreeID, xref id.Xref) (*graph.Person, error) {
	if xref.IsNil() {
		return nil, nil
	}
	return s.provider.Person(ctx, tree, xref)
}
