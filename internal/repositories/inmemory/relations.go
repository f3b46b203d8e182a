package inmemory

import (
	"context"

	"github.com/hashicorp/go-memdb"
	"github.com/the127/osmhistory/internal/change"
	"github.com/the127/osmhistory/internal/repositories"
	"github.com/the127/osmhistory/internal/utils/apiError"
)

type RelationRepository struct {
	db            *memdb.MemDB
	changeTracker *change.Tracker
	entityType    int
}

func NewInMemoryRelationRepository(db *memdb.MemDB, changeTracker *change.Tracker, entityType int) *RelationRepository {
	return &RelationRepository{
		db:            db,
		changeTracker: changeTracker,
		entityType:    entityType,
	}
}

func (r *RelationRepository) First(_ context.Context, filter *repositories.VersionFilter) (*repositories.Relation, error) {
	result, ok, err := firstVersion[*repositories.Relation](r.db, RelationsTable, filter)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	return result, nil
}

func (r *RelationRepository) Single(ctx context.Context, filter *repositories.VersionFilter) (*repositories.Relation, error) {
	result, err := r.First(ctx, filter)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, apiError.ErrApiRelationNotFound
	}
	return result, nil
}

func (r *RelationRepository) List(_ context.Context, filter *repositories.VersionFilter) ([]*repositories.Relation, int, error) {
	return listVersions[*repositories.Relation](r.db, RelationsTable, filter)
}

func (r *RelationRepository) Insert(row *repositories.Relation) {
	r.changeTracker.Add(change.NewEntry(change.Added, r.entityType, row))
}

func (r *RelationRepository) ExecuteInsert(txn *memdb.Txn, row *repositories.Relation) error {
	return insertVersion(txn, RelationsTable, row)
}
