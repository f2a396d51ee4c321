package ignored

import (
	"maps"
	"slices"
	"time"

	id "datencheck/pkg/domain"
)

// Record is one suppressed finding. (TreeID, Xref, Code) is the key; saving
// the same key again replaces User, Comment and CreatedAt.
type Record struct {
	TreeID    id.TreeID `json:"tree_id"`
	Xref      id.Xref   `json:"xref"`
	Code      string    `json:"code"`
	User      string    `json:"user"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// Codes is the set of ignored issue codes for one person.
type Codes map[string]struct{}

// NewCodes builds a set from a list, skipping empty entries.
func NewCodes(codes ...string) Codes {
	out := make(Codes, len(codes))
	for _, c := range codes {
		if c != "" {
			out[c] = struct{}{}
		}
	}
	return out
}

func (c Codes) Has(code string) bool {
	_, ok := c[code]
	return ok
}

// Sorted returns the codes in lexical order.
func (c Codes) Sorted() []string {
	return slices.Sorted(maps.Keys(c))
}

type personKey struct {
	tree id.TreeID
	xref id.Xref
}
