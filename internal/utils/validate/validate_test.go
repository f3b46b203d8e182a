package validate

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/the127/osmhistory/internal/utils/apiError"
)

type request struct {
	Path   string `validate:"required"`
	Format string `validate:"omitempty,oneof=auto xml pbf"`
}

type ValidateTestSuite struct {
	suite.Suite
}

func TestValidateTestSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ValidateTestSuite))
}

func (s *ValidateTestSuite) TestValid() {
	// act
	err := Validate(request{Path: "planet.osh.pbf", Format: "pbf"})

	// assert
	s.NoError(err)
}

func (s *ValidateTestSuite) TestInvalidIsBadRequest() {
	// act
	err := Validate(request{Format: "csv"})

	// assert
	s.ErrorIs(err, apiError.ErrApiBadRequest)
	s.Contains(err.Error(), "Path")
}
