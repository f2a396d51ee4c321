package graph

import (
	"context"
	"slices"
	"strings"
	"sync"

	id "datencheck/pkg/domain"
)

type treeData struct {
	persons      map[id.Xref]*Person
	families     map[id.Xref]*Family
	places       map[string]Coordinates
	sources      []*Source
	repositories []*Repository
	sorted       []id.Xref
}

func newTreeData() *treeData {
	return &treeData{
		persons:  make(map[id.Xref]*Person),
		families: make(map[id.Xref]*Family),
		places:   make(map[string]Coordinates),
	}
}

// MemoryProvider is a Provider over trees held in memory. Records are
// copied on the way in; returned records must not be modified.
type MemoryProvider struct {
	mu    sync.RWMutex
	trees map[id.TreeID]*treeData
}

// NewMemoryProvider constructs an empty provider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{trees: make(map[id.TreeID]*treeData)}
}

func (m *MemoryProvider) tree(tree id.TreeID) *treeData {
	t, ok := m.trees[tree]
	if !ok {
		t = newTreeData()
		m.trees[tree] = t
	}
	return t
}

// AddPerson stores a copy of p, replacing any person with the same xref.
func (m *MemoryProvider) AddPerson(tree id.TreeID, p Person) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.tree(tree)
	if _, exists := t.persons[p.Xref]; !exists {
		t.sorted = insertSorted(t.sorted, p.Xref)
	}
	p.ChildFamilies = slices.Clone(p.ChildFamilies)
	p.SpouseFamilies = slices.Clone(p.SpouseFamilies)
	for _, f := range t.families {
		if (f.Husband == p.Xref || f.Wife == p.Xref) && !slices.Contains(p.SpouseFamilies, f.Xref) {
			p.SpouseFamilies = append(p.SpouseFamilies, f.Xref)
		}
		if slices.Contains(f.Children, p.Xref) && !slices.Contains(p.ChildFamilies, f.Xref) {
			p.ChildFamilies = append(p.ChildFamilies, f.Xref)
		}
	}
	t.persons[p.Xref] = &p
}

// AddFamily stores a copy of f and links its members back to it.
func (m *MemoryProvider) AddFamily(tree id.TreeID, f Family) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.tree(tree)
	f.Children = slices.Clone(f.Children)
	t.families[f.Xref] = &f
	// persons already handed out stay untouched; links go into fresh copies
	for _, spouse := range []id.Xref{f.Husband, f.Wife} {
		if p, ok := t.persons[spouse]; ok && !slices.Contains(p.SpouseFamilies, f.Xref) {
			cp := *p
			cp.SpouseFamilies = append(slices.Clone(p.SpouseFamilies), f.Xref)
			t.persons[spouse] = &cp
		}
	}
	for _, child := range f.Children {
		if p, ok := t.persons[child]; ok && !slices.Contains(p.ChildFamilies, f.Xref) {
			cp := *p
			cp.ChildFamilies = append(slices.Clone(p.ChildFamilies), f.Xref)
			t.persons[child] = &cp
		}
	}
}

// AddPlace records coordinates for a place name.
func (m *MemoryProvider) AddPlace(tree id.TreeID, place string, c Coordinates) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tree(tree).places[placeKey(place)] = c
}

// AddSource stores a source record.
func (m *MemoryProvider) AddSource(tree id.TreeID, s Source) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.tree(tree)
	t.sources = append(t.sources, &s)
}

// AddRepository stores a repository record.
func (m *MemoryProvider) AddRepository(tree id.TreeID, r Repository) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.tree(tree)
	t.repositories = append(t.repositories, &r)
}

// Len returns the number of persons in tree.
func (m *MemoryProvider) Len(tree id.TreeID) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.trees[tree]; ok {
		return len(t.persons)
	}
	return 0
}

func (m *MemoryProvider) Person(_ context.Context, tree id.TreeID, xref id.Xref) (*Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.trees[tree]
	if !ok {
		return nil, nil
	}
	return t.persons[xref], nil
}

func (m *MemoryProvider) Family(_ context.Context, tree id.TreeID, xref id.Xref) (*Family, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.trees[tree]
	if !ok {
		return nil, nil
	}
	return t.families[xref], nil
}

func (m *MemoryProvider) ParentFamilies(_ context.Context, tree id.TreeID, p *Person) ([]*Family, error) {
	if p == nil {
		return nil, nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.families(tree, p.ChildFamilies), nil
}

func (m *MemoryProvider) SpouseFamilies(_ context.Context, tree id.TreeID, p *Person) ([]*Family, error) {
	if p == nil {
		return nil, nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.families(tree, p.SpouseFamilies), nil
}

func (m *MemoryProvider) families(tree id.TreeID, xrefs []id.Xref) []*Family {
	t, ok := m.trees[tree]
	if !ok {
		return nil
	}
	out := make([]*Family, 0, len(xrefs))
	for _, x := range xrefs {
		if f, ok := t.families[x]; ok {
			out = append(out, f)
		}
	}
	return out
}

func (m *MemoryProvider) Children(_ context.Context, tree id.TreeID, f *Family) ([]*Person, error) {
	if f == nil {
		return nil, nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.trees[tree]
	if !ok {
		return nil, nil
	}
	out := make([]*Person, 0, len(f.Children))
	for _, x := range f.Children {
		if p, ok := t.persons[x]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MemoryProvider) PlaceCoordinates(_ context.Context, tree id.TreeID, place string) (*Coordinates, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.trees[tree]
	if !ok {
		return nil, nil
	}
	c, ok := t.places[placeKey(place)]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *MemoryProvider) FindPersonsByName(_ context.Context, tree id.TreeID, fragment string) ([]*Person, error) {
	needle := strings.ToLower(strings.TrimSpace(fragment))
	if needle == "" {
		return nil, nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.trees[tree]
	if !ok {
		return nil, nil
	}
	var out []*Person
	for _, x := range t.sorted {
		p := t.persons[x]
		for _, n := range p.Names {
			if strings.Contains(strings.ToLower(n.Surname), needle) ||
				strings.Contains(strings.ToLower(n.Full), needle) {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (m *MemoryProvider) FamiliesBySpouses(_ context.Context, tree id.TreeID, husband, wife id.Xref) ([]*Family, error) {
	if husband == "" && wife == "" {
		return nil, nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.trees[tree]
	if !ok {
		return nil, nil
	}
	var out []*Family
	for _, f := range t.families {
		if husband != "" && f.Husband != husband {
			continue
		}
		if wife != "" && f.Wife != wife {
			continue
		}
		out = append(out, f)
	}
	slices.SortFunc(out, func(a, b *Family) int { return strings.Compare(string(a.Xref), string(b.Xref)) })
	return out, nil
}

func (m *MemoryProvider) PersonXrefs(_ context.Context, tree id.TreeID, offset, limit int) ([]id.Xref, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.trees[tree]
	if !ok || offset >= len(t.sorted) || limit <= 0 {
		return nil, nil
	}
	end := min(offset+limit, len(t.sorted))
	return slices.Clone(t.sorted[max(offset, 0):end]), nil
}

func (m *MemoryProvider) Sources(_ context.Context, tree id.TreeID) ([]*Source, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.trees[tree]; ok {
		return slices.Clone(t.sources), nil
	}
	return nil, nil
}

func (m *MemoryProvider) Repositories(_ context.Context, tree id.TreeID) ([]*Repository, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.trees[tree]; ok {
		return slices.Clone(t.repositories), nil
	}
	return nil, nil
}

func insertSorted(xs []id.Xref, x id.Xref) []id.Xref {
	i, _ := slices.BinarySearch(xs, x)
	return slices.Insert(xs, i, x)
}

func placeKey(place string) string {
	return strings.ToLower(strings.TrimSpace(place))
}
