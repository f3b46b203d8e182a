package apiError

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/the127/osmhistory/internal/args"
	"github.com/the127/osmhistory/internal/logging"
)

var ErrApiBadRequest = errors.New("bad Request")

var ErrApiNotFound = errors.New("not found")
var ErrApiPointNotFound = fmt.Errorf("point not found: %w", ErrApiNotFound)
var ErrApiLineNotFound = fmt.Errorf("line not found: %w", ErrApiNotFound)
var ErrApiRelationNotFound = fmt.Errorf("relation not found: %w", ErrApiNotFound)
var ErrApiImportRunNotFound = fmt.Errorf("import run not found: %w", ErrApiNotFound)

func HandleHttpError(w http.ResponseWriter, err error) {
	var code int
	var message string

	switch {
	case errors.Is(err, ErrApiBadRequest):
		code = http.StatusBadRequest
		message = err.Error()

	case errors.Is(err, ErrApiNotFound):
		code = http.StatusNotFound
		message = err.Error()

	default:
		code = http.StatusInternalServerError
		if args.IsProduction() {
			message = "Internal Server Error"
		} else {
			message = err.Error()
		}
	}

	logging.Logger.Errorf("HTTP Error: %d %s", code, message)
	http.Error(w, message, code)
}
