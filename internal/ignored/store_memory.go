package ignored

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	id "datencheck/pkg/domain"
)

// MemoryStore keeps ignore decisions in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[personKey]map[string]Record
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[personKey]map[string]Record),
		now:     time.Now,
	}
}

func (s *MemoryStore) IgnoredCodes(_ context.Context, tree id.TreeID, xref id.Xref) (Codes, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.codesLocked(personKey{tree, xref}), nil
}

func (s *MemoryStore) codesLocked(k personKey) Codes {
	out := make(Codes, len(s.records[k]))
	for code := range s.records[k] {
		out[code] = struct{}{}
	}
	return out
}

func (s *MemoryStore) IgnoredCodesBatch(_ context.Context, tree id.TreeID, xrefs []id.Xref) (map[id.Xref]Codes, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[id.Xref]Codes, len(xrefs))
	for _, x := range xrefs {
		out[x] = s.codesLocked(personKey{tree, x})
	}
	return out, nil
}

func (s *MemoryStore) Ignore(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := personKey{rec.TreeID, rec.Xref}
	if s.records[k] == nil {
		s.records[k] = make(map[string]Record)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now()
	}
	s.records[k][rec.Code] = rec
	return nil
}

func (s *MemoryStore) Unignore(_ context.Context, tree id.TreeID, xref id.Xref, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := personKey{tree, xref}
	if _, ok := s.records[k][code]; !ok {
		return false, nil
	}
	delete(s.records[k], code)
	if len(s.records[k]) == 0 {
		delete(s.records, k)
	}
	return true, nil
}

func (s *MemoryStore) List(_ context.Context, tree id.TreeID) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, 0)
	for k, byCode := range s.records {
		if k.tree != tree {
			continue
		}
		for _, rec := range byCode {
			out = append(out, rec)
		}
	}
	slices.SortFunc(out, compareNewestFirst)
	return out, nil
}

// compareNewestFirst orders by CreatedAt descending, then xref and code so
// equal timestamps list deterministically.
func compareNewestFirst(a, b Record) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Xref, b.Xref); c != 0 {
		return c
	}
	return cmp.Compare(a.Code, b.Code)
}

var (
	_ Store       = (*MemoryStore)(nil)
	_ BatchReader = (*MemoryStore)(nil)
)
