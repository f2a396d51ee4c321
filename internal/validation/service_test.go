package validation_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"datencheck/internal/graph"
	graphmocks "datencheck/internal/graph/mocks"
	"datencheck/internal/ignored"
	ignoredmocks "datencheck/internal/ignored/mocks"
	"datencheck/internal/validation"
	"datencheck/internal/validation/metrics"
	id "datencheck/pkg/domain"
	dErrors "datencheck/pkg/domain-errors"
)

const tree = id.TreeID(3)

func named(xref id.Xref, given, surname string, sex id.Sex, birth string) graph.Person {
	p := graph.Person{Xref: xref, Sex: sex, Names: []graph.Name{{Given: given, Surname: surname, Type: "NAME"}}}
	if birth != "" {
		p.Birth = &graph.DateFact{Date: birth}
	}
	return p
}

type ServiceSuite struct {
	suite.Suite
	ctx      context.Context
	provider *graph.MemoryProvider
	ignored  *ignored.Service
	service  *validation.Service
	now      time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	s.provider = graph.NewMemoryProvider()
	s.provider.AddPerson(tree, named("I1", "Karl", "Meier", id.SexMale, "1 JAN 1960"))
	s.provider.AddPerson(tree, named("I2", "Hans", "Meier", id.SexMale, "1930"))
	s.provider.AddPerson(tree, named("I3", "Anna", "Meier", id.SexFemale, "1950"))
	s.provider.AddPerson(tree, named("I4", "Maria", "Meier", id.SexFemale, "1 JAN 1963"))
	s.provider.AddPerson(tree, named("I5", "Berta", "Vogel", id.SexFemale, "1900"))
	s.provider.AddFamily(tree, graph.Family{Xref: "F1", Husband: "I2", Wife: "I3", Children: []id.Xref{"I1", "I4"}})

	s.ignored = ignored.New(ignored.NewMemoryStore())
	s.service = validation.New(s.provider,
		validation.WithIgnored(s.ignored),
		validation.WithClock(func() time.Time { return s.now }),
	)
}

func (s *ServiceSuite) TestNewRequiresProvider() {
	s.Panics(func() { validation.New(nil) })
}

// =============================================================================
// Stored persons
// =============================================================================

func (s *ServiceSuite) TestStoredPerson() {
	res, err := s.service.Validate(s.ctx, validation.Request{Tree: tree, Xref: "@I1@"})
	s.Require().NoError(err)

	s.True(res.HasCode(validation.CodeMotherTooYoung))
	s.Equal("Karl Meier (@I1@)", res.Debug.Person)
	s.Equal([]string{"@F1@: father=Hans Meier (@I2@) mother=Anna Meier (@I3@)"}, res.Debug.Parents)
	s.Require().Len(res.Debug.SiblingComparisons, 1)
	s.Equal(id.Xref("I4"), res.Debug.SiblingComparisons[0].SiblingXref)
}

func (s *ServiceSuite) TestStoredParentsWinOverOverrides() {
	res, err := s.service.Validate(s.ctx, validation.Request{
		Tree:      tree,
		Xref:      "I1",
		Overrides: validation.Overrides{Wife: "I5"},
	})
	s.Require().NoError(err)

	s.True(res.HasCode(validation.CodeMotherTooYoung))
	s.False(res.HasCode(validation.CodeMotherTooOld))
	s.Contains(res.Debug.ResolutionLog, "Resolved wife I5 (Berta Vogel)")
}

func (s *ServiceSuite) TestIgnoreAndUnignore() {
	validate := func() validation.Result {
		res, err := s.service.Validate(s.ctx, validation.Request{Tree: tree, Xref: "I1"})
		s.Require().NoError(err)
		return res
	}
	s.Require().True(validate().HasCode(validation.CodeMotherTooYoung))

	for range 2 {
		ok, err := s.ignored.Ignore(s.ctx, ignored.Record{TreeID: tree, Xref: "I1", Code: validation.CodeMotherTooYoung, User: "anna"})
		s.Require().NoError(err)
		s.True(ok)

		res := validate()
		s.False(res.HasCode(validation.CodeMotherTooYoung))
		s.Equal(1, res.Debug.IgnoredCount)
	}

	removed, err := s.ignored.Unignore(s.ctx, tree, "I1", validation.CodeMotherTooYoung, "anna")
	s.Require().NoError(err)
	s.True(removed)
	s.True(validate().HasCode(validation.CodeMotherTooYoung))
}

func (s *ServiceSuite) TestMetricsCountValidationsAndIssues() {
	m := metrics.NewWith(prometheus.NewRegistry())
	svc := validation.New(s.provider, validation.WithMetrics(m), validation.WithIgnored(s.ignored))
	_, err := s.ignored.Ignore(s.ctx, ignored.Record{TreeID: tree, Xref: "I1", Code: validation.CodeMotherTooYoung, User: "anna"})
	s.Require().NoError(err)

	_, err = svc.Validate(s.ctx, validation.Request{Tree: tree, Xref: "I1"})
	s.Require().NoError(err)
	_, err = svc.Validate(s.ctx, validation.Request{Tree: tree, Overrides: validation.Overrides{Birth: "1900", Death: "1850"}})
	s.Require().NoError(err)

	s.Equal(1.0, promtest.ToFloat64(m.ValidationsTotal.WithLabelValues("stored")))
	s.Equal(1.0, promtest.ToFloat64(m.ValidationsTotal.WithLabelValues("interactive")))
	s.Zero(promtest.ToFloat64(m.IssuesTotal.WithLabelValues(validation.CodeMotherTooYoung, "error")))
	s.Equal(1.0, promtest.ToFloat64(m.IssuesTotal.WithLabelValues(validation.CodeBirthAfterDeath, "error")))
	s.Equal(1.0, promtest.ToFloat64(m.IgnoredTotal))
}

func (s *ServiceSuite) TestPlacesAreLoadedForGeographicChecks() {
	settings := validation.DefaultSettings()
	settings.EnableGeographicChecks = true
	svc := validation.New(s.provider, validation.WithSettings(settings))

	p := named("I9", "Otto", "Brandt", id.SexMale, "")
	p.Birth = &graph.DateFact{Date: "1850", Place: "Berlin"}
	p.Death = &graph.DateFact{Date: "1920", Place: "New York"}
	s.provider.AddPerson(tree, p)
	s.provider.AddPlace(tree, "Berlin", graph.Coordinates{Lat: 52.52, Lon: 13.405})
	s.provider.AddPlace(tree, "New York", graph.Coordinates{Lat: 40.7128, Lon: -74.006})

	res, err := svc.Validate(s.ctx, validation.Request{Tree: tree, Xref: "I9"})
	s.Require().NoError(err)
	s.True(res.HasCode(validation.CodeLongDistance))
}

// =============================================================================
// Overrides
// =============================================================================

func (s *ServiceSuite) TestNewPersonWithParentOverrides() {
	res, err := s.service.Validate(s.ctx, validation.Request{
		Tree:      tree,
		Overrides: validation.Overrides{Birth: "1 JUN 1963", Given: "Maria", Husband: "X2", Wife: "@I3@"},
	})
	s.Require().NoError(err)

	s.Equal("NEW", res.Debug.Person)
	s.Equal([]string{
		"Trying individual X2 (raw) for X2",
		"Trying individual @X2@ (pointer) for X2",
		"Trying individual I2 (prefix_swap) for X2",
		"Found individual I2 via prefix_swap",
		"Resolved husband X2 (Hans Meier)",
		"Trying individual I3 (raw) for I3",
		"Found individual I3 via raw",
		"Resolved wife I3 (Anna Meier)",
	}, res.Debug.ResolutionLog)
	s.Equal([]string{"override: father=Hans Meier (@I2@) mother=Anna Meier (@I3@)"}, res.Debug.Parents)
	s.True(res.HasCode(validation.CodeMotherTooYoung))
	s.True(res.HasCode(validation.CodeDuplicateSibling))
	s.True(res.HasCode(validation.CodeSiblingTooClose))
	s.Len(res.Debug.SiblingComparisons, 2)
}

func (s *ServiceSuite) TestResolutionTracesMatchingStrategy() {
	s.provider.AddPerson(tree, named("I12", "Otto", "Meier", id.SexMale, "1900"))

	res, err := s.service.Validate(s.ctx, validation.Request{
		Tree:      tree,
		Overrides: validation.Overrides{Birth: "1930", Husband: "X12"},
	})
	s.Require().NoError(err)

	log := res.Debug.ResolutionLog
	s.Contains(log, "Trying individual X12 (raw) for X12")
	s.Contains(log, "Found individual I12 via prefix_swap")
	s.NotContains(log, "Found individual X12 via raw")
	s.Equal("Resolved husband X12 (Otto Meier)", log[len(log)-1])
}

func (s *ServiceSuite) TestFamilyReferenceInSpouseField() {
	res, err := s.service.Validate(s.ctx, validation.Request{
		Tree:      tree,
		Overrides: validation.Overrides{Birth: "1960", Husband: "F1"},
	})
	s.Require().NoError(err)

	s.Equal([]string{
		"Trying individual F1 (raw) for F1",
		"Trying individual @F1@ (pointer) for F1",
		"Trying family F1 (raw) for F1",
		"Found family F1 via raw",
		"Mapped F1 to family context.",
		"Resolved family F1",
	}, res.Debug.ResolutionLog)
	s.True(res.HasCode(validation.CodeMotherTooYoung))
}

func (s *ServiceSuite) TestUnknownReferences() {
	res, err := s.service.Validate(s.ctx, validation.Request{
		Tree:      tree,
		Overrides: validation.Overrides{Birth: "1960", Husband: "I99", Family: "F9"},
	})
	s.Require().NoError(err)

	s.Equal([]string{
		"Trying individual I99 (raw) for I99",
		"Trying individual @I99@ (pointer) for I99",
		"Trying individual X99 (prefix_swap) for I99",
		"Trying family I99 (raw) for I99",
		"Trying family @I99@ (pointer) for I99",
		"Trying family X99 (prefix_swap) for I99",
		"Individual I99 not found.",
		"Trying family F9 (raw) for F9",
		"Trying family @F9@ (pointer) for F9",
		"Family F9 not found.",
	}, res.Debug.ResolutionLog)
	s.Empty(res.Debug.Parents)
}

func (s *ServiceSuite) TestMarriageOverridePartners() {
	res, err := s.service.Validate(s.ctx, validation.Request{
		Tree:      tree,
		RelType:   validation.RelationSpouse,
		Overrides: validation.Overrides{Marriage: "1944", Husband: "I2", Wife: "I3"},
	})
	s.Require().NoError(err)

	s.True(res.HasCode(validation.CodeMarriageBeforePartnerBirth))
	s.True(res.HasCode(validation.CodeMarriagePartnerTooYoung))
	s.False(res.HasCode(validation.CodeMotherTooYoung))
}

func (s *ServiceSuite) TestClockDrivesFutureDates() {
	svc := validation.New(s.provider, validation.WithClock(func() time.Time {
		return time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC)
	}))

	res, err := svc.Validate(s.ctx, validation.Request{Tree: tree, Overrides: validation.Overrides{Birth: "1960"}})
	s.Require().NoError(err)
	s.True(res.HasCode(validation.CodeFutureDatePrefix + "BIRT"))
}

// =============================================================================
// Request checks
// =============================================================================

func (s *ServiceSuite) TestRejectsInvalidRequests() {
	s.Run("missing tree", func() {
		_, err := s.service.Validate(s.ctx, validation.Request{Xref: "I1"})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

}

func (s *ServiceSuite) TestOversizedFieldsAreIgnored() {
	res, err := s.service.Validate(s.ctx, validation.Request{
		Tree: tree,
		Overrides: validation.Overrides{
			Given:   strings.Repeat("a", 10_000),
			Husband: strings.Repeat("X", 500),
			Birth:   "1900",
			Death:   "1850",
		},
	})
	s.Require().NoError(err)

	s.True(res.HasCode(validation.CodeBirthAfterDeath))
	s.Empty(res.Debug.ResolutionLog)
}

// =============================================================================
// Degraded dependencies
// =============================================================================

func TestProviderFailuresDegrade(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := graphmocks.NewMockProvider(ctrl)
	ctx := context.Background()
	p := named("I1", "Karl", "Meier", id.SexMale, "1960")

	provider.EXPECT().Person(gomock.Any(), tree, id.Xref("I1")).Return(&p, nil)
	provider.EXPECT().ParentFamilies(gomock.Any(), tree, &p).Return(nil, errors.New("connection reset"))
	provider.EXPECT().SpouseFamilies(gomock.Any(), tree, &p).Return(nil, nil)

	m := metrics.NewWith(prometheus.NewRegistry())
	res, err := validation.New(provider, validation.WithMetrics(m)).Validate(ctx, validation.Request{Tree: tree, Xref: "I1"})

	assert.NoError(t, err)
	assert.Empty(t, res.Debug.Parents)
	assert.Equal(t, "Karl Meier (@I1@)", res.Debug.Person)
	assert.Equal(t, 1.0, promtest.ToFloat64(m.DegradedTotal.WithLabelValues("graph_provider")))
}

func TestPartnerFailureKeepsOtherSpouseFamilies(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := graphmocks.NewMockProvider(ctrl)
	ctx := context.Background()
	p := named("I1", "Karl", "Meier", id.SexMale, "1900")
	first := named("I2", "Anna", "Vogel", id.SexFemale, "1902")
	first.Death = &graph.DateFact{Date: "1930"}
	f1 := &graph.Family{Xref: "F1", Husband: "I1", Wife: "I2", Marriage: &graph.DateFact{Date: "1925"}}
	f2 := &graph.Family{Xref: "F2", Husband: "I1", Wife: "I3", Marriage: &graph.DateFact{Date: "1928"}}
	f3 := &graph.Family{Xref: "F3", Husband: "I1", Wife: "I4", Marriage: &graph.DateFact{Date: "1890"}}

	provider.EXPECT().Person(gomock.Any(), tree, id.Xref("I1")).Return(&p, nil)
	provider.EXPECT().ParentFamilies(gomock.Any(), tree, &p).Return(nil, nil)
	provider.EXPECT().SpouseFamilies(gomock.Any(), tree, &p).Return([]*graph.Family{f1, nil, f2, f3}, nil)
	provider.EXPECT().Person(gomock.Any(), tree, id.Xref("I2")).Return(&first, nil)
	provider.EXPECT().Person(gomock.Any(), tree, id.Xref("I3")).Return(nil, errors.New("connection reset"))
	provider.EXPECT().Person(gomock.Any(), tree, id.Xref("I4")).Return(nil, errors.New("connection reset"))

	res, err := validation.New(provider).Validate(ctx, validation.Request{Tree: tree, Xref: "I1"})

	assert.NoError(t, err)
	assert.True(t, res.HasCode(validation.CodeMarriageOverlapping))
	assert.True(t, res.HasCode(validation.CodeMarriageBeforeBirth))
}

func TestNilChildrenAreSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := graphmocks.NewMockProvider(ctrl)
	ctx := context.Background()
	p := named("I1", "Karl", "Meier", id.SexMale, "1 JAN 1960")
	sister := named("I4", "Maria", "Meier", id.SexFemale, "1 MAR 1960")
	mother := named("I3", "Anna", "Meier", id.SexFemale, "1930")
	fam := &graph.Family{Xref: "F1", Wife: "I3", Children: []id.Xref{"I1", "I4"}}

	provider.EXPECT().Person(gomock.Any(), tree, id.Xref("I1")).Return(&p, nil)
	provider.EXPECT().ParentFamilies(gomock.Any(), tree, &p).Return([]*graph.Family{fam}, nil)
	provider.EXPECT().SpouseFamilies(gomock.Any(), tree, &p).Return(nil, nil)
	provider.EXPECT().Person(gomock.Any(), tree, id.Xref("I3")).Return(&mother, nil)
	provider.EXPECT().SpouseFamilies(gomock.Any(), tree, &mother).Return([]*graph.Family{nil, fam}, nil)
	provider.EXPECT().Children(gomock.Any(), tree, fam).Return([]*graph.Person{&p, nil, &sister}, nil)

	res, err := validation.New(provider).Validate(ctx, validation.Request{Tree: tree, Xref: "I1"})

	assert.NoError(t, err)
	assert.True(t, res.HasCode(validation.CodeSiblingTooClose))
}

func TestPersonLookupFailureValidatesOverridesOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := graphmocks.NewMockProvider(ctrl)

	provider.EXPECT().Person(gomock.Any(), tree, id.Xref("I1")).Return(nil, errors.New("timeout"))

	res, err := validation.New(provider).Validate(context.Background(), validation.Request{
		Tree:      tree,
		Xref:      "I1",
		Overrides: validation.Overrides{Birth: "1900", Death: "1850"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "NEW", res.Debug.Person)
	assert.True(t, res.HasCode(validation.CodeBirthAfterDeath))
}

func TestCancelledContextFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := graphmocks.NewMockProvider(ctrl)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	provider.EXPECT().Person(gomock.Any(), tree, id.Xref("I1")).Return(nil, context.Canceled)

	_, err := validation.New(provider).Validate(ctx, validation.Request{Tree: tree, Xref: "I1"})

	assert.True(t, dErrors.HasCode(err, dErrors.CodeTimeout))
}

func TestIgnoredStoreFailureShowsAllIssues(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := ignoredmocks.NewMockStore(ctrl)
	provider := graph.NewMemoryProvider()
	provider.AddPerson(tree, graph.Person{Xref: "I1", Birth: &graph.DateFact{Date: "1900"}, Death: &graph.DateFact{Date: "1850"}})

	store.EXPECT().IgnoredCodes(gomock.Any(), tree, id.Xref("I1")).Return(nil, errors.New("connection refused"))

	svc := validation.New(provider, validation.WithIgnored(ignored.New(store)))
	res, err := svc.Validate(context.Background(), validation.Request{Tree: tree, Xref: "I1"})

	assert.NoError(t, err)
	assert.True(t, res.HasCode(validation.CodeBirthAfterDeath))
	assert.Zero(t, res.Debug.IgnoredCount)
}
