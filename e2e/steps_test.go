package e2e

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	"datencheck/internal/duplicates"
	"datencheck/internal/graph"
	"datencheck/internal/validation"
	id "datencheck/pkg/domain"
)

// RegisterSteps registers all step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Tree steps
	ctx.Step(`^a (male|female) person "([^"]*)" named "([^"]*)" born "([^"]*)"$`, tc.personBorn)
	ctx.Step(`^person "([^"]*)" died "([^"]*)"$`, tc.personDied)
	ctx.Step(`^a family "([^"]*)" with wife "([^"]*)" and child "([^"]*)"$`, tc.familyWithChild)
	ctx.Step(`^a family "([^"]*)" with husband "([^"]*)" and wife "([^"]*)" married "([^"]*)"$`, tc.marriedFamily)

	// Analysis steps
	ctx.Step(`^I validate person "([^"]*)"$`, tc.validatePerson)
	ctx.Step(`^I validate a new person born "([^"]*)" who died "([^"]*)"$`, tc.validateNewPerson)
	ctx.Step(`^I search for "([^"]*)" "([^"]*)" born "([^"]*)"$`, tc.searchPerson)

	// Assertion steps
	ctx.Step(`^the result should contain "([^"]*)" with severity "([^"]*)"$`, tc.resultShouldContain)
	ctx.Step(`^the result should not contain "([^"]*)"$`, tc.resultShouldNotContain)
	ctx.Step(`^the search should find "([^"]*)"$`, tc.searchShouldFind)
}

func (tc *TestContext) personBorn(ctx context.Context, sex, xref, name, birth string) error {
	tc.AddPerson(xref, id.ParseSex(sex), name, birth)
	return nil
}

func (tc *TestContext) personDied(ctx context.Context, xref, date string) error {
	return tc.SetDeath(xref, date)
}

func (tc *TestContext) familyWithChild(ctx context.Context, xref, wife, child string) error {
	tc.Provider.AddFamily(tree, graph.Family{
		Xref:     id.Xref(xref),
		Wife:     id.Xref(wife),
		Children: []id.Xref{id.Xref(child)},
	})
	return nil
}

func (tc *TestContext) marriedFamily(ctx context.Context, xref, husband, wife, date string) error {
	tc.Provider.AddFamily(tree, graph.Family{
		Xref:     id.Xref(xref),
		Husband:  id.Xref(husband),
		Wife:     id.Xref(wife),
		Marriage: &graph.DateFact{Date: date},
	})
	return nil
}

func (tc *TestContext) validatePerson(ctx context.Context, xref string) error {
	return tc.Validate(ctx, validation.Request{Xref: id.Xref(xref)})
}

func (tc *TestContext) validateNewPerson(ctx context.Context, birth, death string) error {
	return tc.Validate(ctx, validation.Request{
		Overrides: validation.Overrides{Given: "Karl", Surname: "Meier", Birth: birth, Death: death},
	})
}

func (tc *TestContext) searchPerson(ctx context.Context, given, surname, birth string) error {
	found, err := tc.Duplicates.FindPersons(ctx, duplicates.PersonQuery{
		Tree:    tree,
		Given:   given,
		Surname: surname,
		Birth:   birth,
	})
	if err != nil {
		return err
	}
	tc.LastCandidates = found
	return nil
}

func (tc *TestContext) resultShouldContain(ctx context.Context, code, severity string) error {
	issue, ok := tc.Issue(code)
	if !ok {
		return fmt.Errorf("expected %s in %v", code, tc.LastResult.Codes())
	}
	if string(issue.Severity) != severity {
		return fmt.Errorf("expected %s with severity %s, got %s", code, severity, issue.Severity)
	}
	return nil
}

func (tc *TestContext) resultShouldNotContain(ctx context.Context, code string) error {
	if _, ok := tc.Issue(code); ok {
		return fmt.Errorf("expected no %s in %v", code, tc.LastResult.Codes())
	}
	return nil
}

func (tc *TestContext) searchShouldFind(ctx context.Context, xref string) error {
	for _, c := range tc.LastCandidates {
		if c.ID == id.Xref(xref) {
			return nil
		}
	}
	return fmt.Errorf("expected %s among %d candidates", xref, len(tc.LastCandidates))
}
