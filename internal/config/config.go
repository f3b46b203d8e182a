package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/the127/osmhistory/internal/args"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Kv       KvConfig
	Import   ImportConfig
}

type ServerConfig struct {
	Port           int
	Host           string
	AllowedOrigins []string
}

type DatabaseMode string

const (
	DatabaseModeInMemory DatabaseMode = "memory"
	DatabaseModePostgres DatabaseMode = "postgres"
)

type DatabaseConfig struct {
	Mode     DatabaseMode
	Postgres PostgresConfig
}

type PostgresConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SslMode  string
}

type KvMode string

const (
	KvModeInMemory KvMode = "memory"
	KvModeRedis    KvMode = "redis"
)

type KvConfig struct {
	Mode  KvMode
	Redis struct {
		Host     string
		Port     int
		Username string
		Password string
		Database int
	}
}

type ImportConfig struct {
	// Format is one of auto, xml or pbf.
	Format string
	// Workers is the number of pbf decoding goroutines.
	Workers int
	// BatchSize is the number of rows written per database transaction.
	BatchSize int
}

var C Config

var k = koanf.New(".")

func Init() {
	if args.ConfigFilePath() != "" {
		_, err := os.Stat(args.ConfigFilePath())
		if err != nil {
			panic(fmt.Errorf("failed to stat config file: %w", err))
		}

		err = k.Load(file.Provider(args.ConfigFilePath()), yaml.Parser())
		if err != nil {
			panic(fmt.Errorf("failed to load config file: %w", err))
		}
	}

	err := k.Load(env.Provider(".", env.Opt{
		Prefix: "OSMHISTORY_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "OSMHISTORY_")), "_", ".")

			if strings.Contains(v, " ") {
				return k, strings.Split(v, " ")
			}

			return k, v
		},
	}), nil)
	if err != nil {
		panic(fmt.Errorf("failed to load env provider: %w", err))
	}

	err = k.Unmarshal("", &C)
	if err != nil {
		panic(fmt.Errorf("failed to unmarshal config: %w", err))
	}

	setDefaultsOrPanic()
}

func setDefaultsOrPanic() {
	setServerDefaultsOrPanic()
	setDatabaseDefaultsOrPanic()
	setKvDefaultsOrPanic()
	setImportDefaultsOrPanic()
}

func setServerDefaultsOrPanic() {
	if C.Server.Host == "" {
		if args.IsProduction() {
			panic("Server.Host must be set in production.")
		}

		C.Server.Host = "localhost"
	}

	if C.Server.Port == 0 {
		C.Server.Port = 8080
	}
}

func setDatabaseDefaultsOrPanic() {
	if C.Database.Mode == "" {
		if args.IsProduction() {
			panic("Database.Mode must be set in production.")
		}

		C.Database.Mode = DatabaseModeInMemory
	}

	switch C.Database.Mode {
	case DatabaseModeInMemory:
		return

	case DatabaseModePostgres:
		setPostgresDefaultsOrPanic()

	default:
		panic(fmt.Errorf("unsupported database mode: %s", C.Database.Mode))
	}
}

func setPostgresDefaultsOrPanic() {
	if C.Database.Postgres.Host == "" {
		if args.IsProduction() {
			panic("Database.Postgres.Host must be set in production.")
		}

		C.Database.Postgres.Host = "localhost"
	}

	if C.Database.Postgres.Port == 0 {
		C.Database.Postgres.Port = 5432
	}

	if C.Database.Postgres.Database == "" {
		C.Database.Postgres.Database = "osmhistory"
	}

	if C.Database.Postgres.Username == "" {
		panic("Database.Postgres.Username must be set.")
	}

	if C.Database.Postgres.SslMode == "" {
		C.Database.Postgres.SslMode = "disable"
	}
}

func setKvDefaultsOrPanic() {
	if C.Kv.Mode == "" {
		if args.IsProduction() {
			panic("Kv.Mode must be set in production.")
		}

		C.Kv.Mode = KvModeInMemory
	}

	switch C.Kv.Mode {
	case KvModeInMemory:
		return

	case KvModeRedis:
		setKvRedisDefaultsOrPanic()

	default:
		panic(fmt.Errorf("unsupported kv mode: %s", C.Kv.Mode))
	}
}

func setKvRedisDefaultsOrPanic() {
	if C.Kv.Redis.Host == "" {
		if args.IsProduction() {
			panic("Kv.Redis.Host must be set in production.")
		}

		C.Kv.Redis.Host = "localhost"
	}

	if C.Kv.Redis.Port == 0 {
		C.Kv.Redis.Port = 6379
	}
}

func setImportDefaultsOrPanic() {
	switch strings.ToLower(C.Import.Format) {
	case "":
		C.Import.Format = "auto"

	case "auto", "xml", "pbf":
		break

	default:
		panic(fmt.Errorf("unsupported import format: %s", C.Import.Format))
	}

	if C.Import.Workers == 0 {
		C.Import.Workers = 4
	}

	if C.Import.Workers < 0 {
		panic("Import.Workers must not be negative.")
	}

	if C.Import.BatchSize == 0 {
		C.Import.BatchSize = 1000
	}

	if C.Import.BatchSize < 0 {
		panic("Import.BatchSize must not be negative.")
	}
}
