package pointer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ToTestSuite struct {
	suite.Suite
}

func TestToTestSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ToTestSuite))
}

func (s *ToTestSuite) TestPointsToCopy() {
	// arrange
	at := time.Date(2012, 9, 12, 6, 55, 0, 0, time.UTC)

	// act
	actual := To(at)
	at = at.Add(time.Hour)

	// assert
	s.Equal(time.Date(2012, 9, 12, 6, 55, 0, 0, time.UTC), *actual)
}

func (s *ToTestSuite) TestEveryCallAllocates() {
	// arrange
	version := 3

	// act
	first := To(version)
	second := To(version)

	// assert
	s.NotSame(first, second)
	s.Equal(*first, *second)
}
