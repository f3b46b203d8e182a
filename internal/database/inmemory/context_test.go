package inmemory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/the127/osmhistory/internal/entities"
	"github.com/the127/osmhistory/internal/repositories"
	"github.com/the127/osmhistory/internal/utils/apiError"
	"github.com/the127/osmhistory/internal/utils/pointer"
)

type ContextTestSuite struct {
	suite.Suite
	t0 time.Time
}

func TestContextTestSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ContextTestSuite))
}

func (s *ContextTestSuite) SetupTest() {
	s.t0 = time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)
}

func (s *ContextTestSuite) newContext() *Context {
	database, err := NewInMemoryDatabase()
	s.Require().NoError(err)
	dbContext, err := database.NewContext(context.Background())
	s.Require().NoError(err)
	return dbContext.(*Context)
}

func (s *ContextTestSuite) point(id int64, version int, from time.Time, to *time.Time) *repositories.Point {
	node := entities.NewNode(entities.NewMeta(id, version, 1, 1, "alice", from, true, nil), float64(version), float64(version))
	return repositories.NewPoint(node, to)
}

func (s *ContextTestSuite) TestInsertIsInvisibleUntilSaved() {
	// arrange
	ctx := context.Background()
	dbContext := s.newContext()
	dbContext.Points().Insert(s.point(1, 1, s.t0, nil))

	// act
	before, _, errBefore := dbContext.Points().List(ctx, repositories.NewVersionFilter())
	errSave := dbContext.SaveChanges(ctx)
	after, count, errAfter := dbContext.Points().List(ctx, repositories.NewVersionFilter())

	// assert
	s.NoError(errBefore)
	s.NoError(errSave)
	s.NoError(errAfter)
	s.Empty(before)
	s.Len(after, 1)
	s.Equal(1, count)
	s.Equal(0, dbContext.PendingChanges())
}

func (s *ContextTestSuite) TestListIsOrderedByIdAndVersion() {
	// arrange
	ctx := context.Background()
	dbContext := s.newContext()
	dbContext.Points().Insert(s.point(2, 1, s.t0, nil))
	dbContext.Points().Insert(s.point(1, 2, s.t0.Add(time.Hour), nil))
	dbContext.Points().Insert(s.point(1, 1, s.t0, pointer.To(s.t0.Add(time.Hour))))
	s.Require().NoError(dbContext.SaveChanges(ctx))

	// act
	points, _, err := dbContext.Points().List(ctx, repositories.NewVersionFilter())

	// assert
	s.Require().NoError(err)
	s.Require().Len(points, 3)
	s.Equal(int64(1), points[0].GetId())
	s.Equal(1, points[0].GetVersion())
	s.Equal(int64(1), points[1].GetId())
	s.Equal(2, points[1].GetVersion())
	s.Equal(int64(2), points[2].GetId())
}

func (s *ContextTestSuite) TestValidAtSelectsOneVersion() {
	// arrange
	ctx := context.Background()
	dbContext := s.newContext()
	dbContext.Points().Insert(s.point(1, 1, s.t0, pointer.To(s.t0.Add(time.Hour))))
	dbContext.Points().Insert(s.point(1, 2, s.t0.Add(time.Hour), nil))
	s.Require().NoError(dbContext.SaveChanges(ctx))
	filter := repositories.NewVersionFilter().ById(1)

	// act
	atStart, errStart := dbContext.Points().Single(ctx, filter.ValidAt(s.t0))
	atBoundary, errBoundary := dbContext.Points().Single(ctx, filter.ValidAt(s.t0.Add(time.Hour)))
	before, errBefore := dbContext.Points().First(ctx, filter.ValidAt(s.t0.Add(-time.Hour)))

	// assert
	s.NoError(errStart)
	s.NoError(errBoundary)
	s.NoError(errBefore)
	s.Equal(1, atStart.GetVersion())
	s.Equal(2, atBoundary.GetVersion())
	s.Nil(before)
}

func (s *ContextTestSuite) TestSingleNotFound() {
	// arrange
	dbContext := s.newContext()

	// act
	_, err := dbContext.Lines().Single(context.Background(), repositories.NewVersionFilter().ById(1))

	// assert
	s.ErrorIs(err, apiError.ErrApiNotFound)
}

func (s *ContextTestSuite) TestSavesAllTypesInOneTransaction() {
	// arrange
	ctx := context.Background()
	dbContext := s.newContext()
	meta := entities.NewMeta(5, 1, 1, 1, "alice", s.t0, true, nil)
	dbContext.Points().Insert(s.point(1, 1, s.t0, nil))
	dbContext.Lines().Insert(repositories.NewLine(entities.NewWay(meta, []int64{1, 2}), []repositories.Coordinate{{Lat: 1, Lon: 2}, {Lat: 3, Lon: 4}}, nil))
	dbContext.Relations().Insert(repositories.NewRelation(entities.NewRelation(meta, nil), nil))

	// act
	err := dbContext.SaveChanges(ctx)

	// assert
	s.Require().NoError(err)
	_, points, _ := dbContext.Points().List(ctx, repositories.NewVersionFilter())
	_, lines, _ := dbContext.Lines().List(ctx, repositories.NewVersionFilter())
	_, relations, _ := dbContext.Relations().List(ctx, repositories.NewVersionFilter().ById(5))
	s.Equal(1, points)
	s.Equal(1, lines)
	s.Equal(1, relations)
}
