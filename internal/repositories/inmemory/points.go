package inmemory

import (
	"context"

	"github.com/hashicorp/go-memdb"
	"github.com/the127/osmhistory/internal/change"
	"github.com/the127/osmhistory/internal/repositories"
	"github.com/the127/osmhistory/internal/utils/apiError"
)

type PointRepository struct {
	db            *memdb.MemDB
	changeTracker *change.Tracker
	entityType    int
}

func NewInMemoryPointRepository(db *memdb.MemDB, changeTracker *change.Tracker, entityType int) *PointRepository {
	return &PointRepository{
		db:            db,
		changeTracker: changeTracker,
		entityType:    entityType,
	}
}

func (r *PointRepository) First(_ context.Context, filter *repositories.VersionFilter) (*repositories.Point, error) {
	result, ok, err := firstVersion[*repositories.Point](r.db, PointsTable, filter)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	return result, nil
}

func (r *PointRepository) Single(ctx context.Context, filter *repositories.VersionFilter) (*repositories.Point, error) {
	result, err := r.First(ctx, filter)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, apiError.ErrApiPointNotFound
	}
	return result, nil
}

func (r *PointRepository) List(_ context.Context, filter *repositories.VersionFilter) ([]*repositories.Point, int, error) {
	return listVersions[*repositories.Point](r.db, PointsTable, filter)
}

func (r *PointRepository) Insert(row *repositories.Point) {
	r.changeTracker.Add(change.NewEntry(change.Added, r.entityType, row))
}

func (r *PointRepository) ExecuteInsert(txn *memdb.Txn, row *repositories.Point) error {
	return insertVersion(txn, PointsTable, row)
}
