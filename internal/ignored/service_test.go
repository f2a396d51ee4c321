package ignored_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"datencheck/internal/audit"
	"datencheck/internal/ignored"
	"datencheck/internal/ignored/mocks"
	id "datencheck/pkg/domain"
	dErrors "datencheck/pkg/domain-errors"
	"datencheck/pkg/platform/circuit"
	"datencheck/pkg/platform/sentinel"
)

const tree = id.TreeID(7)

type ServiceSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	store   *mocks.MockStore
	auditor *mocks.MockAuditEmitter
	service *ignored.Service
	now     time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = mocks.NewMockStore(s.ctrl)
	s.auditor = mocks.NewMockAuditEmitter(s.ctrl)
	s.now = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	s.service = ignored.New(s.store,
		ignored.WithAuditor(s.auditor),
		ignored.WithClock(func() time.Time { return s.now }),
		ignored.WithBreaker(circuit.New("test", circuit.WithFailureThreshold(2), circuit.WithTrialInterval(time.Hour))),
	)
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

// =============================================================================
// Ignore
// =============================================================================

func (s *ServiceSuite) TestIgnore() {
	ctx := context.Background()

	s.Run("stores normalized record and emits audit event", func() {
		want := ignored.Record{TreeID: tree, Xref: "I3", Code: "MOTHER_TOO_YOUNG", User: "anna", Comment: "age verified", CreatedAt: s.now}
		s.store.EXPECT().Ignore(ctx, want).Return(nil)
		s.auditor.EXPECT().Emit(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e audit.Event) error {
			s.Equal(audit.ActionIssueIgnored, e.Action)
			s.Equal(id.Xref("I3"), e.Xref)
			s.Equal("age verified", e.Comment)
			return nil
		})

		ok, err := s.service.Ignore(ctx, ignored.Record{TreeID: tree, Xref: "@I3@", Code: " MOTHER_TOO_YOUNG ", User: " anna ", Comment: "age verified"})
		s.Require().NoError(err)
		s.True(ok)
	})

	s.Run("rejects missing key parts without touching the store", func() {
		for _, rec := range []ignored.Record{
			{Xref: "I1", Code: "X"},
			{TreeID: tree, Code: "X"},
			{TreeID: tree, Xref: "@@", Code: "X"},
			{TreeID: tree, Xref: "I1"},
		} {
			ok, err := s.service.Ignore(ctx, rec)
			s.False(ok)
			s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput), fmt.Sprintf("%+v", rec))
		}
	})

	s.Run("rejects oversized comment", func() {
		long := make([]byte, 1001)
		for i := range long {
			long[i] = 'x'
		}
		ok, err := s.service.Ignore(ctx, ignored.Record{TreeID: tree, Xref: "I1", Code: "X", Comment: string(long)})
		s.False(ok)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("audit failure does not fail the ignore", func() {
		s.store.EXPECT().Ignore(ctx, gomock.Any()).Return(nil)
		s.auditor.EXPECT().Emit(ctx, gomock.Any()).Return(errors.New("broker down"))

		ok, err := s.service.Ignore(ctx, ignored.Record{TreeID: tree, Xref: "I1", Code: "LIFESPAN_TOO_HIGH"})
		s.NoError(err)
		s.True(ok)
	})
}

func (s *ServiceSuite) TestIgnoreStoreFailures() {
	ctx := context.Background()

	s.Run("missing table reports store unavailable", func() {
		s.store.EXPECT().Ignore(ctx, gomock.Any()).Return(fmt.Errorf("save ignored issue: %w", sentinel.ErrSchemaMissing))

		ok, err := s.service.Ignore(ctx, ignored.Record{TreeID: tree, Xref: "I1", Code: "X"})
		s.False(ok)
		s.True(dErrors.HasCode(err, dErrors.CodeStoreUnavailable))
		s.Contains(err.Error(), "table missing")
	})

	s.Run("circuit opens after consecutive failures", func() {
		s.store.EXPECT().Ignore(ctx, gomock.Any()).Return(errors.New("connection refused"))

		ok, err := s.service.Ignore(ctx, ignored.Record{TreeID: tree, Xref: "I1", Code: "X"})
		s.False(ok)
		s.True(dErrors.HasCode(err, dErrors.CodeStoreUnavailable))

		// third call: the breaker is open and the store is not called
		ok, err = s.service.Ignore(ctx, ignored.Record{TreeID: tree, Xref: "I1", Code: "X"})
		s.False(ok)
		s.True(dErrors.HasCode(err, dErrors.CodeStoreUnavailable))
		s.Contains(err.Error(), "unavailable")
	})
}

// =============================================================================
// Unignore and reads
// =============================================================================

func (s *ServiceSuite) TestUnignore() {
	ctx := context.Background()

	s.Run("emits audit event when a record was removed", func() {
		s.store.EXPECT().Unignore(ctx, tree, id.Xref("I2"), "BAPTISM_DELAYED").Return(true, nil)
		s.auditor.EXPECT().Emit(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e audit.Event) error {
			s.Equal(audit.ActionIssueUnignored, e.Action)
			s.Equal("bob", e.User)
			return nil
		})

		ok, err := s.service.Unignore(ctx, tree, "@I2@", "BAPTISM_DELAYED", "bob")
		s.NoError(err)
		s.True(ok)
	})

	s.Run("nothing matched is false without error or event", func() {
		s.store.EXPECT().Unignore(ctx, tree, id.Xref("I2"), "BAPTISM_DELAYED").Return(false, nil)

		ok, err := s.service.Unignore(ctx, tree, "I2", "BAPTISM_DELAYED", "bob")
		s.NoError(err)
		s.False(ok)
	})
}

func (s *ServiceSuite) TestReads() {
	ctx := context.Background()

	s.Run("nil code set from store becomes empty", func() {
		s.store.EXPECT().IgnoredCodes(ctx, tree, id.Xref("I1")).Return(nil, nil)
		codes, err := s.service.IgnoredCodes(ctx, tree, "I1")
		s.NoError(err)
		s.NotNil(codes)
	})

	s.Run("empty xref short-circuits", func() {
		codes, err := s.service.IgnoredCodes(ctx, tree, "")
		s.NoError(err)
		s.Empty(codes)
	})

	s.Run("IsIgnored reads failures as not ignored", func() {
		s.store.EXPECT().IgnoredCodes(ctx, tree, id.Xref("I1")).Return(nil, errors.New("timeout"))
		s.False(s.service.IsIgnored(ctx, tree, "I1", "X"))
	})

	s.Run("List requires a tree", func() {
		_, err := s.service.List(ctx, 0)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

// =============================================================================
// Memory-backed round trip
// =============================================================================

func TestIgnoreRoundTripWithMemoryStore(t *testing.T) {
	ctx := context.Background()
	events := audit.NewInMemoryStore()
	svc := ignored.New(ignored.NewMemoryStore(), ignored.WithAuditor(audit.NewPublisher(events)))

	for i := 0; i < 2; i++ {
		ok, err := svc.Ignore(ctx, ignored.Record{TreeID: tree, Xref: "I1", Code: "SIBLING_TOO_CLOSE", User: "u"})
		require.NoError(t, err)
		require.True(t, ok)
	}
	assert.True(t, svc.IsIgnored(ctx, tree, "I1", "SIBLING_TOO_CLOSE"))

	records, err := svc.List(ctx, tree)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	ok, err := svc.Unignore(ctx, tree, "I1", "SIBLING_TOO_CLOSE", "u")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, svc.IsIgnored(ctx, tree, "I1", "SIBLING_TOO_CLOSE"))

	logged, err := events.ListByTree(ctx, tree)
	require.NoError(t, err)
	assert.Len(t, logged, 3)
}
