package commands

import (
	"context"
	"fmt"

	"github.com/The127/ioc"
	"github.com/google/uuid"
	"github.com/the127/osmhistory/internal/database"
	"github.com/the127/osmhistory/internal/importer"
	"github.com/the127/osmhistory/internal/logging"
	"github.com/the127/osmhistory/internal/middlewares"
	"github.com/the127/osmhistory/internal/nodestore"
	"github.com/the127/osmhistory/internal/reader"
	"github.com/the127/osmhistory/internal/services/clock"
	"github.com/the127/osmhistory/internal/services/runs"
	"github.com/the127/osmhistory/internal/utils"
	"github.com/the127/osmhistory/internal/utils/apiError"
	"github.com/the127/osmhistory/internal/utils/pointer"
	"github.com/the127/osmhistory/internal/utils/validate"
)

type ImportHistory struct {
	Path      string `validate:"required"`
	Format    string `validate:"omitempty,oneof=auto xml pbf"`
	Workers   int    `validate:"min=1"`
	BatchSize int    `validate:"min=1"`
}

type ImportHistoryResponse struct {
	RunId uuid.UUID
	Stats importer.Stats
}

func HandleImportHistory(ctx context.Context, command ImportHistory) (*ImportHistoryResponse, error) {
	err := validate.Validate(command)
	if err != nil {
		return nil, err
	}

	format, err := reader.ParseFormat(command.Format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), apiError.ErrApiBadRequest)
	}
	if format == reader.FormatAuto {
		format = reader.DetectFormat(command.Path)
	}

	scope := middlewares.GetScope(ctx)
	clockService := ioc.GetDependency[clock.Service](scope)
	runService := ioc.GetDependency[runs.Service](scope)
	dbFactory := ioc.GetDependency[database.Factory](scope)

	run := &runs.Run{
		Id:        uuid.New(),
		Path:      command.Path,
		Format:    string(format),
		State:     runs.StateRunning,
		StartedAt: clockService.Now(),
	}

	err = runService.Save(ctx, run)
	if err != nil {
		return nil, fmt.Errorf("registering import run: %w", err)
	}

	logging.Logger.Infof("Import %s started for %s", run.Id, run.Path)

	stats, err := importHistory(ctx, dbFactory, command, format, func(ctx context.Context, stats importer.Stats) {
		run.Stats = stats
		saveErr := runService.Save(ctx, run)
		if saveErr != nil {
			logging.Logger.Warnf("failed to store progress of import %s: %s", run.Id, saveErr)
		}
	})

	run.Stats = stats
	run.FinishedAt = pointer.To(clockService.Now())
	if err != nil {
		run.State = runs.StateFailed
		run.Error = err.Error()
	} else {
		run.State = runs.StateCompleted
	}

	saveErr := runService.Save(ctx, run)
	if err != nil {
		return nil, fmt.Errorf("import %s failed: %w", run.Id, err)
	}
	if saveErr != nil {
		return nil, fmt.Errorf("storing finished import run: %w", saveErr)
	}

	return &ImportHistoryResponse{
		RunId: run.Id,
		Stats: stats,
	}, nil
}

func importHistory(ctx context.Context, dbFactory database.Factory, command ImportHistory, format reader.Format, onProgress importer.ProgressFunc) (importer.Stats, error) {
	positions, err := nodestore.New()
	if err != nil {
		return importer.Stats{}, err
	}

	handler, err := importer.NewHandler(ctx, dbFactory, positions, importer.Options{
		BatchSize:  command.BatchSize,
		OnProgress: onProgress,
	})
	if err != nil {
		return importer.Stats{}, err
	}

	r, err := reader.Open(ctx, command.Path, format, command.Workers)
	if err != nil {
		return handler.Stats(), err
	}
	defer utils.IgnoreError(r.Close)

	err = r.Run(ctx, handler)
	if err != nil {
		return handler.Stats(), err
	}

	err = handler.Finish(ctx)
	if err != nil {
		return handler.Stats(), err
	}

	return handler.Stats(), nil
}
