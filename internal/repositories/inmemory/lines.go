package inmemory

import (
	"context"

	"github.com/hashicorp/go-memdb"
	"github.com/the127/osmhistory/internal/change"
	"github.com/the127/osmhistory/internal/repositories"
	"github.com/the127/osmhistory/internal/utils/apiError"
)

type LineRepository struct {
	db            *memdb.MemDB
	changeTracker *change.Tracker
	entityType    int
}

func NewInMemoryLineRepository(db *memdb.MemDB, changeTracker *change.Tracker, entityType int) *LineRepository {
	return &LineRepository{
		db:            db,
		changeTracker: changeTracker,
		entityType:    entityType,
	}
}

func (r *LineRepository) First(_ context.Context, filter *repositories.VersionFilter) (*repositories.Line, error) {
	result, ok, err := firstVersion[*repositories.Line](r.db, LinesTable, filter)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	return result, nil
}

func (r *LineRepository) Single(ctx context.Context, filter *repositories.VersionFilter) (*repositories.Line, error) {
	result, err := r.First(ctx, filter)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, apiError.ErrApiLineNotFound
	}
	return result, nil
}

func (r *LineRepository) List(_ context.Context, filter *repositories.VersionFilter) ([]*repositories.Line, int, error) {
	return listVersions[*repositories.Line](r.db, LinesTable, filter)
}

func (r *LineRepository) Insert(row *repositories.Line) {
	r.changeTracker.Add(change.NewEntry(change.Added, r.entityType, row))
}

func (r *LineRepository) ExecuteInsert(txn *memdb.Txn, row *repositories.Line) error {
	return insertVersion(txn, LinesTable, row)
}
