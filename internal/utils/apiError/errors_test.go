package apiError

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsTestSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestBadRequest() {
	// arrange
	recorder := httptest.NewRecorder()

	// act
	HandleHttpError(recorder, fmt.Errorf("invalid id: %w", ErrApiBadRequest))

	// assert
	s.Equal(http.StatusBadRequest, recorder.Code)
}

func (s *ErrorsTestSuite) TestNotFoundFamily() {
	for _, err := range []error{ErrApiPointNotFound, ErrApiLineNotFound, ErrApiRelationNotFound, ErrApiImportRunNotFound} {
		// arrange
		recorder := httptest.NewRecorder()

		// act
		HandleHttpError(recorder, fmt.Errorf("query failed: %w", err))

		// assert
		s.Equal(http.StatusNotFound, recorder.Code, err.Error())
	}
}

func (s *ErrorsTestSuite) TestOtherErrorsAreInternal() {
	// arrange
	recorder := httptest.NewRecorder()

	// act
	HandleHttpError(recorder, errors.New("connection refused"))

	// assert
	s.Equal(http.StatusInternalServerError, recorder.Code)
	s.Contains(recorder.Body.String(), "connection refused")
}
