package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"datencheck/internal/duplicates"
	"datencheck/internal/ignored"
	"datencheck/internal/platform/config"
	"datencheck/internal/platform/logger"
	"datencheck/internal/validation"
	dErrors "datencheck/pkg/domain-errors"
)

const smallGedcom = "../../internal/graph/gedcomload/testdata/small.ged"

// CommandsSuite wires one in-memory app for all tests; the metric
// collectors can only be registered once per process.
type CommandsSuite struct {
	suite.Suite
	ctx context.Context
	app *app
	out *bytes.Buffer
	err *bytes.Buffer
}

func TestCommandsSuite(t *testing.T) {
	suite.Run(t, new(CommandsSuite))
}

func (s *CommandsSuite) SetupSuite() {
	s.ctx = context.Background()
	a, err := newApp(s.ctx, config.Default(), logger.Discard())
	s.Require().NoError(err)
	s.app = a
}

func (s *CommandsSuite) TearDownSuite() {
	s.app.Close()
}

func (s *CommandsSuite) SetupTest() {
	s.out = &bytes.Buffer{}
	s.err = &bytes.Buffer{}
	stdout = s.out
	stderr = s.err
}

func (s *CommandsSuite) decode(v any) {
	s.Require().NoError(json.Unmarshal(s.out.Bytes(), v))
}

// =============================================================================
// Analysis commands
// =============================================================================

func (s *CommandsSuite) TestValidateNewPersonWithOverrides() {
	err := runValidate(s.ctx, s.app, []string{
		"-file", smallGedcom, "-json",
		"-given", "Karl", "-surname", "Meier",
		"-birth", "1 JAN 1900", "-death", "1 JAN 1850",
	})
	s.Require().NoError(err)

	var res validation.Result
	s.decode(&res)
	s.True(res.HasCode(validation.CodeBirthAfterDeath))
}

func (s *CommandsSuite) TestValidateRequiresFile() {
	err := runValidate(s.ctx, s.app, []string{"-xref", "I1"})
	s.Require().Error(err)
}

func (s *CommandsSuite) TestScanRuns() {
	err := runScan(s.ctx, s.app, []string{"-file", smallGedcom, "-tree", "7"})
	s.Require().NoError(err)
	s.Contains(s.err.String(), "scanned ")
	s.NotContains(s.err.String(), "datencheck_scan_persons_total")
}

func (s *CommandsSuite) TestScanDumpsMetrics() {
	err := runScan(s.ctx, s.app, []string{"-file", smallGedcom, "-tree", "8", "-metrics"})
	s.Require().NoError(err)
	s.Contains(s.err.String(), "# TYPE datencheck_scan_persons_total counter")
}

func (s *CommandsSuite) TestSearchFindsStoredPerson() {
	err := runSearch(s.ctx, s.app, []string{
		"-file", smallGedcom, "-json",
		"-given", "Johann", "-surname", "Meier", "-birth", "1820",
	})
	s.Require().NoError(err)

	var found []duplicates.Candidate
	s.decode(&found)
	s.Require().NotEmpty(found)
	s.Equal("I1", found[0].ID.String())
}

func (s *CommandsSuite) TestFamilies() {
	err := runFamilies(s.ctx, s.app, []string{"-file", smallGedcom, "-husb", "@I1@", "-wife", "I2"})
	s.Require().NoError(err)
	s.Equal("F1\n", s.out.String())
}

func (s *CommandsSuite) TestDetails() {
	err := runDetails(s.ctx, s.app, []string{"-file", smallGedcom, "-xref", "I3"})
	s.Require().NoError(err)

	var d duplicates.PersonDetails
	s.decode(&d)
	s.Equal("I3", d.Xref.String())
	s.Len(d.Parents, 2)
}

func (s *CommandsSuite) TestTitlesRejectsUnknownKind() {
	err := runTitles(s.ctx, s.app, []string{"-file", smallGedcom, "-kind", "notes"})
	s.ErrorContains(err, "-kind")
}

func (s *CommandsSuite) TestHelpIsNotAnError() {
	s.NoError(runPairs(s.ctx, s.app, []string{"-h"}))
}

// =============================================================================
// Ignored issues
// =============================================================================

func (s *CommandsSuite) TestIgnoreListUnignore() {
	s.Require().NoError(runIgnore(s.ctx, s.app, []string{
		"-tree", "3", "-xref", "@I1@", "-code", validation.CodeLifespanTooHigh, "-user", "anna", "-json",
	}))
	var outcome map[string]bool
	s.decode(&outcome)
	s.True(outcome["changed"])

	s.out.Reset()
	s.Require().NoError(runIgnored(s.ctx, s.app, []string{"-tree", "3", "-json"}))
	var recs []ignored.Record
	s.decode(&recs)
	s.Require().Len(recs, 1)
	s.Equal("I1", recs[0].Xref.String())
	s.Equal("anna", recs[0].User)

	s.out.Reset()
	s.Require().NoError(runUnignore(s.ctx, s.app, []string{
		"-tree", "3", "-xref", "I1", "-code", validation.CodeLifespanTooHigh, "-user", "anna",
	}))
	s.Equal("restored\n", s.out.String())
}

func (s *CommandsSuite) TestIgnoreRejectsMissingCode() {
	err := runIgnore(s.ctx, s.app, []string{"-tree", "3", "-xref", "I1"})
	s.Require().Error(err)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 2, exitCode(dErrors.New(dErrors.CodeInvalidInput, "tree ID is required")))
	assert.Equal(t, 3, exitCode(dErrors.Wrap(context.Canceled, dErrors.CodeTimeout, "scan cancelled")))
	assert.Equal(t, 1, exitCode(errors.New("boom")))
}
