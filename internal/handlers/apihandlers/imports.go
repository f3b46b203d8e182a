package apihandlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/The127/ioc"
	"github.com/The127/mediatr"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/the127/osmhistory/internal/importer"
	"github.com/the127/osmhistory/internal/middlewares"
	"github.com/the127/osmhistory/internal/queries"
	"github.com/the127/osmhistory/internal/services/runs"
	"github.com/the127/osmhistory/internal/utils/apiError"
)

type ImportRunResponse struct {
	Id         uuid.UUID      `json:"id"`
	Path       string         `json:"path"`
	Format     string         `json:"format"`
	State      string         `json:"state"`
	StartedAt  time.Time      `json:"startedAt"`
	FinishedAt *time.Time     `json:"finishedAt,omitempty"`
	Stats      importer.Stats `json:"stats"`
	Error      string         `json:"error,omitempty"`
}

func GetImportRun(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	ctx := r.Context()
	scope := middlewares.GetScope(ctx)
	mediator := ioc.GetDependency[mediatr.Mediator](scope)

	run, err := mediatr.Send[*runs.Run](ctx, mediator, queries.GetImportRun{
		Id: vars["id"],
	})
	if err != nil {
		apiError.HandleHttpError(w, err)
		return
	}

	response := ImportRunResponse{
		Id:         run.Id,
		Path:       run.Path,
		Format:     run.Format,
		State:      string(run.State),
		StartedAt:  run.StartedAt,
		FinishedAt: run.FinishedAt,
		Stats:      run.Stats,
		Error:      run.Error,
	}

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		apiError.HandleHttpError(w, err)
		return
	}
}
