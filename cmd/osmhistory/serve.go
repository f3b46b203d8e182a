package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/the127/osmhistory/internal/config"
	"github.com/the127/osmhistory/internal/logging"
	"github.com/the127/osmhistory/internal/server"
	"github.com/the127/osmhistory/internal/utils"
)

type serveCommand struct {
	importOptions

	Args struct {
		File string `positional-arg-name:"file" description:"History file to import in the background"`
	} `positional-args:"yes"`
}

func (c *serveCommand) Execute(_ []string) error {
	dp, db := bootstrap()
	defer utils.PanicOnError(db.Close, "closing database")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := server.Serve(dp, config.C.Server)

	var importDone <-chan struct{}
	if c.Args.File != "" {
		command := c.command(c.Args.File)
		importDone = runInBackground(ctx, func(ctx context.Context) error {
			return runImport(ctx, dp, command)
		})
	}

	waitForExit()
	cancel()

	// the database is closed on return, the import must not write anymore
	if importDone != nil {
		<-importDone
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	err := srv.Shutdown(shutdownCtx)
	if err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	logging.Logger.Infof("Server stopped")
	return nil
}

func waitForExit() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
}

// runInBackground runs fn in its own goroutine. The returned channel is closed once fn returned.
// Errors are only logged, import failures are recorded in the import run.
func runInBackground(ctx context.Context, fn func(ctx context.Context) error) <-chan struct{} {
	done := make(chan struct{})

	go func() {
		defer close(done)

		err := fn(ctx)
		if err != nil {
			logging.Logger.Warnf("background import stopped: %s", err)
		}
	}()

	return done
}
