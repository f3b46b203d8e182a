package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/The127/ioc"
	"github.com/The127/mediatr"
	"github.com/the127/osmhistory/internal/commands"
	"github.com/the127/osmhistory/internal/config"
	"github.com/the127/osmhistory/internal/logging"
	"github.com/the127/osmhistory/internal/middlewares"
	"github.com/the127/osmhistory/internal/utils"
)

type importOptions struct {
	Format    string `long:"format" choice:"auto" choice:"xml" choice:"pbf" description:"Input format, detected from the file name by default"`
	Workers   int    `long:"workers" description:"Number of pbf decoding goroutines"`
	BatchSize int    `long:"batch-size" description:"Rows written per database transaction"`
}

// command fills unset options from the config.
func (o importOptions) command(path string) commands.ImportHistory {
	command := commands.ImportHistory{
		Path:      path,
		Format:    o.Format,
		Workers:   o.Workers,
		BatchSize: o.BatchSize,
	}

	if command.Format == "" {
		command.Format = config.C.Import.Format
	}
	if command.Workers == 0 {
		command.Workers = config.C.Import.Workers
	}
	if command.BatchSize == 0 {
		command.BatchSize = config.C.Import.BatchSize
	}

	return command
}

type importCommand struct {
	importOptions

	Args struct {
		File string `positional-arg-name:"file" required:"yes"`
	} `positional-args:"yes"`
}

func (c *importCommand) Execute(_ []string) error {
	dp, db := bootstrap()
	defer utils.PanicOnError(db.Close, "closing database")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runImport(ctx, dp, c.command(c.Args.File))
}

func runImport(ctx context.Context, dp *ioc.DependencyProvider, command commands.ImportHistory) error {
	scope := dp.NewScope()
	defer utils.PanicOnError(scope.Close, "closing scope")

	ctx = middlewares.ContextWithScope(ctx, scope)
	mediator := ioc.GetDependency[mediatr.Mediator](scope)

	response, err := mediatr.Send[*commands.ImportHistoryResponse](ctx, mediator, command)
	if err != nil {
		logging.Logger.Errorf("import of %s failed: %s", command.Path, err)
		return fmt.Errorf("importing %s: %w", command.Path, err)
	}

	stats := response.Stats
	logging.Logger.Infof("import %s completed", response.RunId)
	logging.Logger.Infof("nodes: %d read, %d written, %d deleted", stats.Nodes.Read, stats.Nodes.Written, stats.Nodes.Deleted)
	logging.Logger.Infof("ways: %d read, %d written, %d deleted, %d skipped", stats.Ways.Read, stats.Ways.Written, stats.Ways.Deleted, stats.Ways.Skipped)
	logging.Logger.Infof("relations: %d read, %d written, %d deleted", stats.Relations.Read, stats.Relations.Written, stats.Relations.Deleted)

	return nil
}
