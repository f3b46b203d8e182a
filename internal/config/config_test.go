package config

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) SetupTest() {
	C = Config{}
}

func (s *ConfigTestSuite) TestDevelopmentDefaults() {
	// act
	setDefaultsOrPanic()

	// assert
	s.Equal("localhost", C.Server.Host)
	s.Equal(8080, C.Server.Port)
	s.Equal(DatabaseModeInMemory, C.Database.Mode)
	s.Equal(KvModeInMemory, C.Kv.Mode)
	s.Equal("auto", C.Import.Format)
	s.Equal(4, C.Import.Workers)
	s.Equal(1000, C.Import.BatchSize)
}

func (s *ConfigTestSuite) TestPostgresDefaults() {
	// arrange
	C.Database.Mode = DatabaseModePostgres
	C.Database.Postgres.Username = "osm"

	// act
	setDatabaseDefaultsOrPanic()

	// assert
	s.Equal("localhost", C.Database.Postgres.Host)
	s.Equal(5432, C.Database.Postgres.Port)
	s.Equal("osmhistory", C.Database.Postgres.Database)
	s.Equal("disable", C.Database.Postgres.SslMode)
}

func (s *ConfigTestSuite) TestPostgresWithoutUsernamePanics() {
	// arrange
	C.Database.Mode = DatabaseModePostgres

	// act & assert
	s.Panics(setDatabaseDefaultsOrPanic)
}

func (s *ConfigTestSuite) TestUnknownDatabaseModePanics() {
	// arrange
	C.Database.Mode = "sqlite"

	// act & assert
	s.Panics(setDatabaseDefaultsOrPanic)
}

func (s *ConfigTestSuite) TestUnknownImportFormatPanics() {
	// arrange
	C.Import.Format = "csv"

	// act & assert
	s.Panics(setImportDefaultsOrPanic)
}

func (s *ConfigTestSuite) TestRedisDefaults() {
	// arrange
	C.Kv.Mode = KvModeRedis

	// act
	setKvDefaultsOrPanic()

	// assert
	s.Equal("localhost", C.Kv.Redis.Host)
	s.Equal(6379, C.Kv.Redis.Port)
}
