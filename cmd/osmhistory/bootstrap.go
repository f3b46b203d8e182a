package main

import (
	"time"

	"github.com/The127/ioc"
	"github.com/avast/retry-go"
	"github.com/the127/osmhistory/internal/config"
	"github.com/the127/osmhistory/internal/database"
	"github.com/the127/osmhistory/internal/logging"
	"github.com/the127/osmhistory/internal/setup"
)

func bootstrap() (*ioc.DependencyProvider, database.Database) {
	logging.Init()
	config.Init()

	dc := ioc.NewDependencyCollection()

	setup.Clock(dc)
	db := setup.Database(dc, config.C.Database)

	err := retry.Do(
		func() error {
			return db.Migrate()
		},
		retry.Attempts(5),
		retry.Delay(time.Second*5),
		retry.DelayType(retry.FixedDelay),
		retry.OnRetry(func(n uint, err error) {
			logging.Logger.Warnf("failed to migrate database: %s, retrying in 5 seconds", err)
		}),
	)
	if err != nil {
		logging.Logger.Panicf("failed to migrate database: %s", err)
	}

	setup.Kv(dc, config.C.Kv)
	setup.Runs(dc)
	setup.Mediator(dc)

	return dc.BuildProvider(), db
}
