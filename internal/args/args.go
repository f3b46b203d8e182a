package args

import (
	"github.com/jessevdk/go-flags"
)

type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)

// Options are the flags shared by every command.
type Options struct {
	ConfigFile  string `long:"config" short:"c" env:"OSMHISTORY_CONFIG" description:"Path to a yaml config file"`
	Environment string `long:"environment" short:"e" env:"OSMHISTORY_ENVIRONMENT" default:"development" choice:"development" choice:"production" description:"Runtime environment"`
}

var options Options

// NewParser returns a parser that fills the global options.
func NewParser() *flags.Parser {
	return flags.NewParser(&options, flags.Default)
}

func ConfigFilePath() string {
	return options.ConfigFile
}

func IsProduction() bool {
	return Environment(options.Environment) == EnvironmentProduction
}
