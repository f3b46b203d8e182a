package change

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type TrackerTestSuite struct {
	suite.Suite
}

func TestTrackerTestSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(TrackerTestSuite))
}

func (s *TrackerTestSuite) TestAddKeepsOrder() {
	// arrange
	tracker := NewTracker()

	// act
	tracker.Add(NewEntry(Added, 1, "a"))
	tracker.Add(NewEntry(Added, 2, "b"))

	// assert
	changes := tracker.GetChanges()
	s.Require().Len(changes, 2)
	s.Equal("a", changes[0].GetItem())
	s.Equal(1, changes[0].GetItemType())
	s.Equal(Added, changes[0].GetChangeType())
	s.Equal("b", changes[1].GetItem())
	s.Equal(2, tracker.Len())
}

func (s *TrackerTestSuite) TestClear() {
	// arrange
	tracker := NewTracker()
	tracker.Add(NewEntry(Added, 1, "a"))

	// act
	tracker.Clear()

	// assert
	s.Empty(tracker.GetChanges())
	s.Equal(0, tracker.Len())
}
