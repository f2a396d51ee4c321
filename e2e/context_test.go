package e2e

import (
	"context"
	"fmt"
	"strings"

	"datencheck/internal/duplicates"
	"datencheck/internal/graph"
	"datencheck/internal/validation"
	id "datencheck/pkg/domain"
)

const tree = id.TreeID(1)

// TestContext holds the in-memory tree and the last outcome between steps.
type TestContext struct {
	Provider   *graph.MemoryProvider
	Validation *validation.Service
	Duplicates *duplicates.Service

	LastResult     validation.Result
	LastCandidates []duplicates.Candidate
}

// NewTestContext creates a test context over an empty tree.
func NewTestContext() *TestContext {
	tc := &TestContext{}
	tc.Reset()
	return tc
}

// Reset drops the tree and rewires the services for a fresh scenario.
func (tc *TestContext) Reset() {
	tc.Provider = graph.NewMemoryProvider()
	tc.Validation = validation.New(tc.Provider)
	tc.Duplicates = duplicates.New(tc.Provider)
	tc.LastResult = validation.Result{}
	tc.LastCandidates = nil
}

// AddPerson stores a person whose display name is "Given Surname".
func (tc *TestContext) AddPerson(xref string, sex id.Sex, name, birth string) {
	given, surname := name, ""
	if i := strings.LastIndex(name, " "); i > 0 {
		given, surname = name[:i], name[i+1:]
	}
	p := graph.Person{
		Xref:  id.Xref(xref),
		Sex:   sex,
		Names: []graph.Name{{Given: given, Surname: surname, Full: given + " /" + surname + "/", Type: "NAME"}},
	}
	if birth != "" {
		p.Birth = &graph.DateFact{Date: birth}
	}
	tc.Provider.AddPerson(tree, p)
}

// SetDeath replaces a stored person with a copy that died on date.
func (tc *TestContext) SetDeath(xref, date string) error {
	p, err := tc.Provider.Person(context.Background(), tree, id.Xref(xref))
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("person %s is not in the tree", xref)
	}
	cp := *p
	cp.Death = &graph.DateFact{Date: date}
	tc.Provider.AddPerson(tree, cp)
	return nil
}

// Validate runs a validation and keeps its result.
func (tc *TestContext) Validate(ctx context.Context, req validation.Request) error {
	req.Tree = tree
	res, err := tc.Validation.Validate(ctx, req)
	if err != nil {
		return err
	}
	tc.LastResult = res
	return nil
}

// Issue returns the issue with code from the last result.
func (tc *TestContext) Issue(code string) (validation.Issue, bool) {
	for _, i := range tc.LastResult.Issues {
		if i.Code == code {
			return i, true
		}
	}
	return validation.Issue{}, false
}
