package duplicates

import (
	"context"
	"strings"

	"datencheck/internal/graph"
	id "datencheck/pkg/domain"
	dErrors "datencheck/pkg/domain-errors"
)

// PersonDetails returns the display projection of a stored person: names,
// birth and death, parents and the families the person founded. A name-index
// suffix ("I12:1") is ignored.
func (s *Service) PersonDetails(ctx context.Context, tree id.TreeID, xref string) (*PersonDetails, error) {
	if err := requireTree(tree); err != nil {
		return nil, err
	}
	if i := strings.IndexByte(xref, ':'); i >= 0 {
		xref = xref[:i]
	}
	x, err := id.ParseXref(xref)
	if err != nil {
		return nil, err
	}

	p, err := s.provider.Person(ctx, tree, x)
	if err != nil {
		return nil, s.providerError(ctx, "person", tree, err)
	}
	if p == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "person not found")
	}

	details := &PersonDetails{
		Xref:  p.Xref,
		Name:  p.FullName(),
		Sex:   p.Sex,
		Birth: summarize(p.Birth),
		Death: summarize(p.Death),
	}

	parents, err := s.provider.ParentFamilies(ctx, tree, p)
	if err != nil {
		return nil, s.providerError(ctx, "parent_families", tree, err)
	}
	for _, f := range parents {
		info, err := s.familyInfo(ctx, tree, f)
		if err != nil {
			return nil, err
		}
		if info.Husband != nil {
			details.Parents = append(details.Parents, *info.Husband)
		}
		if info.Wife != nil {
			details.Parents = append(details.Parents, *info.Wife)
		}
	}

	spouseFamilies, err := s.provider.SpouseFamilies(ctx, tree, p)
	if err != nil {
		return nil, s.providerError(ctx, "spouse_families", tree, err)
	}
	for _, f := range spouseFamilies {
		info, err := s.familyInfo(ctx, tree, f)
		if err != nil {
			return nil, err
		}
		details.Families = append(details.Families, info)
	}
	return details, nil
}

func (s *Service) familyInfo(ctx context.Context, tree id.TreeID, f *graph.Family) (FamilyInfo, error) {
	info := FamilyInfo{Xref: f.Xref}
	var err error
	if info.Husband, err = s.personRef(ctx, tree, f.Husband); err != nil {
		return info, err
	}
	if info.Wife, err = s.personRef(ctx, tree, f.Wife); err != nil {
		return info, err
	}
	children, err := s.provider.Children(ctx, tree, f)
	if err != nil {
		return info, s.providerError(ctx, "children", tree, err)
	}
	for _, c := range children {
		info.Children = append(info.Children, PersonRef{Xref: c.Xref, Name: c.FullName()})
	}
	return info, nil
}

func (s *Service) personRef(ctx context.Context, tree id.TreeID, x id.Xref) (*PersonRef, error) {
	if x == "" {
		return nil, nil
	}
	p, err := s.provider.Person(ctx, tree, x)
	if err != nil {
		return nil, s.providerError(ctx, "person", tree, err)
	}
	if p == nil {
		return nil, nil
	}
	return &PersonRef{Xref: p.Xref, Name: p.FullName()}, nil
}
