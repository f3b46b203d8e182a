package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/the127/osmhistory/internal/entities"
)

type LineTestSuite struct {
	suite.Suite
}

func TestLineTestSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(LineTestSuite))
}

func square() []Coordinate {
	return []Coordinate{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}, {Lat: 1, Lon: 1}, {Lat: 0, Lon: 0}}
}

func (s *LineTestSuite) TestOpenWayIsLinestring() {
	// arrange
	way := entities.NewWay(entities.NewMeta(1, 1, 0, 0, "", time.Unix(0, 0), true, nil), []int64{1, 2})

	// act
	line := NewLine(way, []Coordinate{{Lat: 1, Lon: 2}, {Lat: 3, Lon: 4.5}}, nil)

	// assert
	s.False(line.IsArea())
	s.Equal("LINESTRING(2 1, 4.5 3)", line.GetWkt())
}

func (s *LineTestSuite) TestClosedWayIsArea() {
	// arrange
	way := entities.NewWay(entities.NewMeta(1, 1, 0, 0, "", time.Unix(0, 0), true, map[string]string{"building": "yes"}), []int64{1, 2, 3, 1})

	// act
	line := NewLine(way, square(), nil)

	// assert
	s.True(line.IsArea())
	s.Equal("POLYGON((0 0, 1 0, 1 1, 0 0))", line.GetWkt())
}

func (s *LineTestSuite) TestAreaNoKeepsLine() {
	// arrange
	way := entities.NewWay(entities.NewMeta(1, 1, 0, 0, "", time.Unix(0, 0), true, map[string]string{"area": "no"}), []int64{1, 2, 3, 1})

	// act
	line := NewLine(way, square(), nil)

	// assert
	s.False(line.IsArea())
}

func (s *LineTestSuite) TestClosedWayWithMissingNodesIsNoArea() {
	// arrange
	way := entities.NewWay(entities.NewMeta(1, 1, 0, 0, "", time.Unix(0, 0), true, nil), []int64{1, 2, 3, 1})

	// act
	line := NewLine(way, square()[:3], nil)

	// assert
	s.False(line.IsArea())
}

func (s *LineTestSuite) TestClosedWayWithMissingEndpointIsLinestring() {
	// arrange
	way := entities.NewWay(entities.NewMeta(1, 1, 0, 0, "", time.Unix(0, 0), true, nil), []int64{1, 2, 3, 4, 5, 1})
	withoutFirstNode := []Coordinate{{Lat: 1, Lon: 2}, {Lat: 1, Lon: 3}, {Lat: 2, Lon: 3}, {Lat: 2, Lon: 2}}

	// act
	line := NewLine(way, withoutFirstNode, nil)

	// assert
	s.False(line.IsArea())
	s.Equal("LINESTRING(2 1, 3 1, 3 2, 2 2)", line.GetWkt())
}

type VersionBaseTestSuite struct {
	suite.Suite
}

func TestVersionBaseTestSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(VersionBaseTestSuite))
}

func (s *VersionBaseTestSuite) TestIsValidAtIsHalfOpen() {
	// arrange
	from := time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(time.Hour)
	base := NewVersionBaseFromDB(1, 1, 0, 0, "", nil, from, &to)

	// act & assert
	s.False(base.IsValidAt(from.Add(-time.Nanosecond)))
	s.True(base.IsValidAt(from))
	s.True(base.IsValidAt(to.Add(-time.Nanosecond)))
	s.False(base.IsValidAt(to))
}

func (s *VersionBaseTestSuite) TestOpenIntervalIsValidForever() {
	// arrange
	from := time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)
	base := NewVersionBaseFromDB(1, 1, 0, 0, "", nil, from, nil)

	// act & assert
	s.Nil(base.GetValidTo())
	s.True(base.IsValidAt(from.AddDate(100, 0, 0)))
}

func (s *VersionBaseTestSuite) TestValidToIsCopied() {
	// arrange
	from := time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(time.Hour)
	base := NewVersionBaseFromDB(1, 1, 0, 0, "", nil, from, &to)

	// act
	to = to.Add(time.Hour)

	// assert
	s.Equal(from.Add(time.Hour), *base.GetValidTo())
}

func (s *VersionBaseTestSuite) TestFilterMatches() {
	// arrange
	from := time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)
	base := NewVersionBaseFromDB(1, 2, 0, 0, "", nil, from, nil)

	// act & assert
	s.True(NewVersionFilter().Matches(&base))
	s.True(NewVersionFilter().ById(1).ByVersion(2).ValidAt(from).Matches(&base))
	s.False(NewVersionFilter().ById(2).Matches(&base))
	s.False(NewVersionFilter().ByVersion(1).Matches(&base))
	s.False(NewVersionFilter().ValidAt(from.Add(-time.Second)).Matches(&base))
}
