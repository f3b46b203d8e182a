package queries

import (
	"context"
	"fmt"

	"github.com/The127/ioc"
	"github.com/google/uuid"
	"github.com/the127/osmhistory/internal/middlewares"
	"github.com/the127/osmhistory/internal/services/runs"
	"github.com/the127/osmhistory/internal/utils/apiError"
)

const LatestImportRun = "latest"

type GetImportRun struct {
	// Id is a run id or "latest".
	Id string
}

func HandleGetImportRun(ctx context.Context, query GetImportRun) (*runs.Run, error) {
	scope := middlewares.GetScope(ctx)
	runService := ioc.GetDependency[runs.Service](scope)

	if query.Id == LatestImportRun {
		return runService.Latest(ctx)
	}

	id, err := uuid.Parse(query.Id)
	if err != nil {
		return nil, fmt.Errorf("invalid import run id %q: %w", query.Id, apiError.ErrApiBadRequest)
	}

	return runService.Get(ctx, id)
}
