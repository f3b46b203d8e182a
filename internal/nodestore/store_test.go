package nodestore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/the127/osmhistory/internal/entities"
)

func node(id int64, version int, at time.Time, visible bool, lat float64, lon float64) *entities.Node {
	return entities.NewNode(entities.NewMeta(id, version, 0, 0, "", at, visible, nil), lat, lon)
}

type StoreTestSuite struct {
	suite.Suite
	store *Store
	t0    time.Time
}

func TestStoreTestSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) SetupTest() {
	store, err := New()
	s.Require().NoError(err)
	s.store = store
	s.t0 = time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)
}

func (s *StoreTestSuite) TestUnknownNode() {
	// act
	_, ok, err := s.store.PositionAt(1, s.t0)

	// assert
	s.NoError(err)
	s.False(ok)
}

func (s *StoreTestSuite) TestLookupBeforeFirstVersion() {
	// arrange
	s.Require().NoError(s.store.Record(node(1, 1, s.t0, true, 1, 2)))

	// act
	_, ok, err := s.store.PositionAt(1, s.t0.Add(-time.Second))

	// assert
	s.NoError(err)
	s.False(ok)
}

func (s *StoreTestSuite) TestLookupReturnsVersionValidAtTime() {
	// arrange
	s.Require().NoError(s.store.Record(node(1, 1, s.t0, true, 1, 2)))
	s.Require().NoError(s.store.Record(node(1, 2, s.t0.Add(time.Hour), true, 3, 4)))

	// act
	exact, okExact, errExact := s.store.PositionAt(1, s.t0)
	between, okBetween, errBetween := s.store.PositionAt(1, s.t0.Add(30*time.Minute))
	after, okAfter, errAfter := s.store.PositionAt(1, s.t0.Add(2*time.Hour))

	// assert
	s.NoError(errExact)
	s.NoError(errBetween)
	s.NoError(errAfter)
	s.True(okExact)
	s.True(okBetween)
	s.True(okAfter)
	s.Equal(Position{Lat: 1, Lon: 2}, exact)
	s.Equal(Position{Lat: 1, Lon: 2}, between)
	s.Equal(Position{Lat: 3, Lon: 4}, after)
}

func (s *StoreTestSuite) TestLookupAfterDeletion() {
	// arrange
	s.Require().NoError(s.store.Record(node(1, 1, s.t0, true, 1, 2)))
	s.Require().NoError(s.store.Record(node(1, 2, s.t0.Add(time.Hour), false, 0, 0)))

	// act
	_, ok, err := s.store.PositionAt(1, s.t0.Add(2*time.Hour))

	// assert
	s.NoError(err)
	s.False(ok)
}

func (s *StoreTestSuite) TestLookupDoesNotLeakIntoOtherNodes() {
	// arrange
	s.Require().NoError(s.store.Record(node(1, 1, s.t0, true, 1, 2)))
	s.Require().NoError(s.store.Record(node(3, 1, s.t0.Add(time.Hour), true, 5, 6)))

	// act
	_, ok, err := s.store.PositionAt(2, s.t0.Add(2*time.Hour))

	// assert
	s.NoError(err)
	s.False(ok)
}

func (s *StoreTestSuite) TestNegativeIdsAreOrdered() {
	// arrange
	s.Require().NoError(s.store.Record(node(-5, 1, s.t0, true, 1, 1)))
	s.Require().NoError(s.store.Record(node(5, 1, s.t0, true, 2, 2)))

	// act
	negative, okNegative, _ := s.store.PositionAt(-5, s.t0)
	positive, okPositive, _ := s.store.PositionAt(5, s.t0)

	// assert
	s.True(okNegative)
	s.True(okPositive)
	s.Equal(Position{Lat: 1, Lon: 1}, negative)
	s.Equal(Position{Lat: 2, Lon: 2}, positive)
}

func (s *StoreTestSuite) TestVersions() {
	// arrange
	s.Require().NoError(s.store.Record(node(1, 1, s.t0, true, 1, 2)))
	s.Require().NoError(s.store.Record(node(1, 2, s.t0.Add(time.Hour), true, 3, 4)))
	s.Require().NoError(s.store.Record(node(2, 1, s.t0, true, 3, 4)))

	// act
	count, err := s.store.Versions(1)

	// assert
	s.NoError(err)
	s.Equal(2, count)
}

func (s *StoreTestSuite) TestCountIncludesTombstones() {
	// arrange
	s.Require().NoError(s.store.Record(node(1, 1, s.t0, true, 1, 2)))
	s.Require().NoError(s.store.Record(node(1, 2, s.t0.Add(time.Hour), false, 0, 0)))
	s.Require().NoError(s.store.Record(node(2, 1, s.t0, true, 3, 4)))

	// act
	count := s.store.Count()

	// assert
	s.Equal(3, count)
}
