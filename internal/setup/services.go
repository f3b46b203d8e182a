package setup

import (
	"github.com/The127/ioc"
	"github.com/the127/osmhistory/internal/services/clock"
	"github.com/the127/osmhistory/internal/services/kv"
	"github.com/the127/osmhistory/internal/services/runs"
)

func Clock(dc *ioc.DependencyCollection) {
	ioc.RegisterSingleton(dc, func(_ *ioc.DependencyProvider) clock.Service {
		return clock.NewClockService()
	})
}

// Runs registers the import run records, which live in the kv store.
func Runs(dc *ioc.DependencyCollection) {
	ioc.RegisterSingleton(dc, func(dp *ioc.DependencyProvider) runs.Service {
		return runs.NewService(ioc.GetDependency[kv.Store](dp))
	})
}
