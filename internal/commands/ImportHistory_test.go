package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/The127/ioc"
	"github.com/stretchr/testify/suite"
	"github.com/the127/osmhistory/internal/database"
	"github.com/the127/osmhistory/internal/database/inmemory"
	"github.com/the127/osmhistory/internal/middlewares"
	"github.com/the127/osmhistory/internal/repositories"
	"github.com/the127/osmhistory/internal/services/clock"
	"github.com/the127/osmhistory/internal/services/kv"
	"github.com/the127/osmhistory/internal/services/runs"
	"github.com/the127/osmhistory/internal/utils/apiError"
)

const historyXml = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="test">
  <node id="1" version="1" timestamp="2010-01-01T00:00:00Z" uid="5" user="alice" changeset="10" visible="true" lat="1" lon="2"/>
  <node id="1" version="2" timestamp="2011-01-01T00:00:00Z" uid="6" user="bob" changeset="11" visible="true" lat="1.5" lon="2.5"/>
  <node id="2" version="1" timestamp="2010-01-01T00:00:00Z" uid="5" user="alice" changeset="10" visible="true" lat="3" lon="4"/>
  <way id="7" version="1" timestamp="2012-01-01T00:00:00Z" uid="5" user="alice" changeset="12" visible="true">
    <nd ref="1"/>
    <nd ref="2"/>
    <tag k="highway" v="footway"/>
  </way>
  <relation id="9" version="1" timestamp="2013-01-01T00:00:00Z" uid="5" user="alice" changeset="13" visible="true">
    <member type="way" ref="7" role="outer"/>
  </relation>
</osm>`

type ImportHistoryTestSuite struct {
	suite.Suite
	ctx       context.Context
	scope     *ioc.DependencyProvider
	dbFactory database.Factory
	now       time.Time
}

func TestImportHistoryTestSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ImportHistoryTestSuite))
}

func (s *ImportHistoryTestSuite) SetupTest() {
	db, err := inmemory.NewInMemoryDatabase()
	s.Require().NoError(err)
	s.dbFactory = database.NewDbFactory(db)
	s.now = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	clockService := clock.NewMock(s.now)

	dc := ioc.NewDependencyCollection()
	ioc.RegisterSingleton(dc, func(_ *ioc.DependencyProvider) database.Factory {
		return s.dbFactory
	})
	ioc.RegisterSingleton(dc, func(_ *ioc.DependencyProvider) clock.Service {
		return clockService
	})
	ioc.RegisterSingleton(dc, func(_ *ioc.DependencyProvider) kv.Store {
		return kv.NewMemoryStore()
	})
	ioc.RegisterSingleton(dc, func(dp *ioc.DependencyProvider) runs.Service {
		return runs.NewService(ioc.GetDependency[kv.Store](dp))
	})

	s.scope = dc.BuildProvider().NewScope()
	s.ctx = middlewares.ContextWithScope(context.Background(), s.scope)
}

func (s *ImportHistoryTestSuite) TearDownTest() {
	s.NoError(s.scope.Close())
}

func (s *ImportHistoryTestSuite) writeHistory() string {
	path := filepath.Join(s.T().TempDir(), "history.osm")
	s.Require().NoError(os.WriteFile(path, []byte(historyXml), 0o600))
	return path
}

func (s *ImportHistoryTestSuite) latestRun() *runs.Run {
	run, err := ioc.GetDependency[runs.Service](s.scope).Latest(s.ctx)
	s.Require().NoError(err)
	return run
}

func (s *ImportHistoryTestSuite) TestImportWritesHistory() {
	// arrange
	path := s.writeHistory()

	// act
	response, err := HandleImportHistory(s.ctx, ImportHistory{
		Path:      path,
		Workers:   1,
		BatchSize: 2,
	})

	// assert
	s.Require().NoError(err)
	s.Equal(int64(3), response.Stats.Nodes.Read)
	s.Equal(int64(3), response.Stats.Nodes.Written)
	s.Equal(int64(1), response.Stats.Ways.Written)
	s.Equal(int64(1), response.Stats.Relations.Written)

	run := s.latestRun()
	s.Equal(response.RunId, run.Id)
	s.Equal(runs.StateCompleted, run.State)
	s.Equal("xml", run.Format)
	s.Require().NotNil(run.FinishedAt)
	s.True(s.now.Equal(*run.FinishedAt))
	s.Equal(response.Stats, run.Stats)

	dbContext, err := s.dbFactory.NewDbContext(s.ctx)
	s.Require().NoError(err)
	line, err := dbContext.Lines().Single(s.ctx, repositories.NewVersionFilter().ById(7))
	s.Require().NoError(err)
	s.Equal([]repositories.Coordinate{{Lat: 1.5, Lon: 2.5}, {Lat: 3, Lon: 4}}, line.GetCoordinates())
}

func (s *ImportHistoryTestSuite) TestMissingFileMarksRunFailed() {
	// act
	_, err := HandleImportHistory(s.ctx, ImportHistory{
		Path:      filepath.Join(s.T().TempDir(), "missing.osm"),
		Workers:   1,
		BatchSize: 10,
	})

	// assert
	s.Error(err)
	run := s.latestRun()
	s.Equal(runs.StateFailed, run.State)
	s.NotEmpty(run.Error)
}

func (s *ImportHistoryTestSuite) TestInvalidCommandIsRejected() {
	// act
	_, err := HandleImportHistory(s.ctx, ImportHistory{
		Path:      s.writeHistory(),
		Format:    "csv",
		Workers:   1,
		BatchSize: 10,
	})

	// assert
	s.ErrorIs(err, apiError.ErrApiBadRequest)
	_, err = ioc.GetDependency[runs.Service](s.scope).Latest(s.ctx)
	s.ErrorIs(err, apiError.ErrApiImportRunNotFound)
}

func (s *ImportHistoryTestSuite) TestBatchSizeIsRequired() {
	// act
	_, err := HandleImportHistory(s.ctx, ImportHistory{
		Path:    s.writeHistory(),
		Workers: 1,
	})

	// assert
	s.ErrorIs(err, apiError.ErrApiBadRequest)
}
