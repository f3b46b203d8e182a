package pointer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ValueTestSuite struct {
	suite.Suite
}

func TestValueTestSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ValueTestSuite))
}

func (s *ValueTestSuite) TestValueReadsThroughPointer() {
	// arrange
	id := int64(42)

	// act
	actual := Value(&id)

	// assert
	s.Equal(int64(42), actual)
}

func (s *ValueTestSuite) TestValueOfNilTimeIsZero() {
	// arrange
	var validTo *time.Time

	// act
	actual := Value(validTo)

	// assert
	s.True(actual.IsZero())
}

func (s *ValueTestSuite) TestValueOrFallsBackOnNil() {
	// arrange
	var version *int

	// act
	actual := ValueOr(version, -1)

	// assert
	s.Equal(-1, actual)
}

func (s *ValueTestSuite) TestValueOrIgnoresFallbackWhenSet() {
	// arrange
	version := 0

	// act
	actual := ValueOr(&version, -1)

	// assert
	s.Equal(0, actual)
}
