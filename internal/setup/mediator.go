package setup

import (
	"github.com/The127/ioc"
	"github.com/The127/mediatr"
	"github.com/the127/osmhistory/internal/commands"
	"github.com/the127/osmhistory/internal/queries"
)

func Mediator(dc *ioc.DependencyCollection) {
	mediator := mediatr.NewMediator()

	mediatr.RegisterHandler(mediator, commands.HandleImportHistory)
	mediatr.RegisterHandler(mediator, queries.HandleGetImportRun)
	mediatr.RegisterHandler(mediator, queries.HandleListEntityVersions)

	ioc.RegisterSingleton(dc, func(_ *ioc.DependencyProvider) mediatr.Mediator {
		return mediator
	})
}
