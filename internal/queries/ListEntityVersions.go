package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/The127/ioc"
	db "github.com/the127/osmhistory/internal/database"
	"github.com/the127/osmhistory/internal/entities"
	"github.com/the127/osmhistory/internal/middlewares"
	"github.com/the127/osmhistory/internal/repositories"
	"github.com/the127/osmhistory/internal/utils/apiError"
)

type EntityType string

const (
	EntityTypeNodes     EntityType = "nodes"
	EntityTypeWays      EntityType = "ways"
	EntityTypeRelations EntityType = "relations"
)

type ListEntityVersions struct {
	Type EntityType
	Id   int64
	// At restricts the result to the version valid at that time.
	At *time.Time
}

type EntityVersion struct {
	Id        int64
	Version   int
	Changeset int64
	Uid       int64
	User      string
	Tags      map[string]string
	ValidFrom time.Time
	ValidTo   *time.Time

	// Geometry is well known text, empty for relations.
	Geometry string
	NodeRefs []int64
	Members  []entities.Member
}

type ListEntityVersionsResponse struct {
	Items []EntityVersion
}

func HandleListEntityVersions(ctx context.Context, query ListEntityVersions) (*ListEntityVersionsResponse, error) {
	scope := middlewares.GetScope(ctx)

	dbFactory := ioc.GetDependency[db.Factory](scope)
	dbContext, err := dbFactory.NewDbContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting database context: %w", err)
	}

	filter := repositories.NewVersionFilter().ById(query.Id)
	if query.At != nil {
		filter = filter.ValidAt(*query.At)
	}

	var items []EntityVersion

	switch query.Type {
	case EntityTypeNodes:
		items, err = listPoints(ctx, dbContext, filter)

	case EntityTypeWays:
		items, err = listLines(ctx, dbContext, filter)

	case EntityTypeRelations:
		items, err = listRelations(ctx, dbContext, filter)

	default:
		return nil, fmt.Errorf("unknown entity type %q: %w", query.Type, apiError.ErrApiBadRequest)
	}
	if err != nil {
		return nil, err
	}

	return &ListEntityVersionsResponse{
		Items: items,
	}, nil
}

func newEntityVersion(base *repositories.VersionBase) EntityVersion {
	return EntityVersion{
		Id:        base.GetId(),
		Version:   base.GetVersion(),
		Changeset: base.GetChangeset(),
		Uid:       base.GetUid(),
		User:      base.GetUser(),
		Tags:      base.GetTags(),
		ValidFrom: base.GetValidFrom(),
		ValidTo:   base.GetValidTo(),
	}
}

func listPoints(ctx context.Context, dbContext db.Context, filter *repositories.VersionFilter) ([]EntityVersion, error) {
	points, count, err := dbContext.Points().List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list points: %w", err)
	}
	if count == 0 {
		return nil, apiError.ErrApiPointNotFound
	}

	items := make([]EntityVersion, 0, count)
	for _, point := range points {
		item := newEntityVersion(point.Base())
		item.Geometry = fmt.Sprintf("POINT(%g %g)", point.GetLon(), point.GetLat())
		items = append(items, item)
	}

	return items, nil
}

func listLines(ctx context.Context, dbContext db.Context, filter *repositories.VersionFilter) ([]EntityVersion, error) {
	lines, count, err := dbContext.Lines().List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list lines: %w", err)
	}
	if count == 0 {
		return nil, apiError.ErrApiLineNotFound
	}

	items := make([]EntityVersion, 0, count)
	for _, line := range lines {
		item := newEntityVersion(line.Base())
		item.Geometry = line.GetWkt()
		item.NodeRefs = line.GetNodeRefs()
		items = append(items, item)
	}

	return items, nil
}

func listRelations(ctx context.Context, dbContext db.Context, filter *repositories.VersionFilter) ([]EntityVersion, error) {
	relations, count, err := dbContext.Relations().List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list relations: %w", err)
	}
	if count == 0 {
		return nil, apiError.ErrApiRelationNotFound
	}

	items := make([]EntityVersion, 0, count)
	for _, relation := range relations {
		item := newEntityVersion(relation.Base())
		item.Members = relation.GetMembers()
		items = append(items, item)
	}

	return items, nil
}
