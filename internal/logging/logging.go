package logging

import (
	"fmt"

	"github.com/the127/osmhistory/internal/args"

	"go.uber.org/zap"
)

// Logger is a no-op logger until Init is called.
var Logger = zap.NewNop().Sugar()

func Init() {
	if args.IsProduction() {
		logger, err := zap.NewProduction()
		if err != nil {
			panic(fmt.Errorf("failed to initialize production logger: %w", err))
		}
		Logger = logger.Sugar()
	} else {
		logger, err := zap.NewDevelopment()
		if err != nil {
			panic(fmt.Errorf("failed to initialize development logger: %w", err))
		}
		Logger = logger.Sugar()
	}
}

// Sync flushes buffered log entries.
func Sync() {
	_ = Logger.Sync()
}
