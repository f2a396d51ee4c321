package circuit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type BreakerSuite struct {
	suite.Suite
	now time.Time
}

func TestBreakerSuite(t *testing.T) {
	suite.Run(t, new(BreakerSuite))
}

func (s *BreakerSuite) SetupTest() {
	s.now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
}

func (s *BreakerSuite) clock() time.Time { return s.now }

func (s *BreakerSuite) TestOpensAfterThreshold() {
	b := New("ignored-store", WithFailureThreshold(2), WithClock(s.clock))

	fallback, change := b.RecordFailure()
	s.False(fallback)
	s.False(change.Opened)

	fallback, change = b.RecordFailure()
	s.True(fallback)
	s.True(change.Opened)
	s.True(b.IsOpen())
	s.Equal("open", b.State().String())
}

func (s *BreakerSuite) TestAllowTrialsOncePerInterval() {
	b := New("ignored-store", WithFailureThreshold(1), WithTrialInterval(time.Minute), WithClock(s.clock))
	s.True(b.Allow())

	b.RecordFailure()
	s.False(b.Allow(), "no trial immediately after opening")

	s.now = s.now.Add(time.Minute)
	s.True(b.Allow())
	s.False(b.Allow(), "second call within the same interval is rejected")
}

func (s *BreakerSuite) TestClosesAfterSuccessfulTrials() {
	b := New("ignored-store", WithFailureThreshold(1), WithSuccessThreshold(2), WithClock(s.clock))
	b.RecordFailure()

	usePrimary, change := b.RecordSuccess()
	s.False(usePrimary)
	s.False(change.Closed)

	usePrimary, change = b.RecordSuccess()
	s.True(usePrimary)
	s.True(change.Closed)
	s.False(b.IsOpen())
	s.True(b.Allow())
}

func (s *BreakerSuite) TestFailureResetsSuccessStreak() {
	b := New("ignored-store", WithFailureThreshold(1), WithSuccessThreshold(2), WithClock(s.clock))
	b.RecordFailure()
	b.RecordSuccess()
	b.RecordFailure()
	_, change := b.RecordSuccess()
	s.False(change.Closed)
	s.True(b.IsOpen())

	b.Reset()
	s.Equal(StateClosed, b.State())
}
