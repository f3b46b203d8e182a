package main

import (
	"errors"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/the127/osmhistory/internal/args"
	"github.com/the127/osmhistory/internal/logging"
)

func main() {
	parser := args.NewParser()

	_, err := parser.AddCommand("import", "Import a history file", "Reads an OSM history file and writes the validity interval of every version.", &importCommand{})
	if err != nil {
		panic(err)
	}

	_, err = parser.AddCommand("serve", "Serve the status API", "Starts the HTTP API, optionally importing a history file in the background.", &serveCommand{})
	if err != nil {
		panic(err)
	}

	_, err = parser.Parse()
	logging.Sync()
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
}
