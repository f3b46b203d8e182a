package inmemory

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-memdb"
	"github.com/the127/osmhistory/internal/change"
	db "github.com/the127/osmhistory/internal/database"
	"github.com/the127/osmhistory/internal/repositories"
	"github.com/the127/osmhistory/internal/repositories/inmemory"
)

type Context struct {
	db            *memdb.MemDB
	changeTracker *change.Tracker

	points    *inmemory.PointRepository
	lines     *inmemory.LineRepository
	relations *inmemory.RelationRepository
}

func newContext(db *memdb.MemDB) *Context {
	return &Context{
		db:            db,
		changeTracker: change.NewTracker(),
	}
}

func (c *Context) Points() repositories.PointRepository {
	if c.points == nil {
		c.points = inmemory.NewInMemoryPointRepository(c.db, c.changeTracker, db.PointType)
	}
	return c.points
}

func (c *Context) Lines() repositories.LineRepository {
	if c.lines == nil {
		c.lines = inmemory.NewInMemoryLineRepository(c.db, c.changeTracker, db.LineType)
	}
	return c.lines
}

func (c *Context) Relations() repositories.RelationRepository {
	if c.relations == nil {
		c.relations = inmemory.NewInMemoryRelationRepository(c.db, c.changeTracker, db.RelationType)
	}
	return c.relations
}

func (c *Context) PendingChanges() int {
	return c.changeTracker.Len()
}

func (c *Context) SaveChanges(_ context.Context) error {
	tx := c.db.Txn(true)
	defer tx.Abort()

	changes := c.changeTracker.GetChanges()
	for _, changeEntry := range changes {
		err := c.applyChange(tx, changeEntry)
		if err != nil {
			return fmt.Errorf("failed to apply change: %w", err)
		}
	}

	tx.Commit()
	c.changeTracker.Clear()
	return nil
}

func (c *Context) applyChange(tx *memdb.Txn, entry *change.Entry) error {
	if entry.GetChangeType() != change.Added {
		return fmt.Errorf("unsupported change type: %d", entry.GetChangeType())
	}

	switch entry.GetItemType() {
	case db.PointType:
		return c.points.ExecuteInsert(tx, entry.GetItem().(*repositories.Point))

	case db.LineType:
		return c.lines.ExecuteInsert(tx, entry.GetItem().(*repositories.Line))

	case db.RelationType:
		return c.relations.ExecuteInsert(tx, entry.GetItem().(*repositories.Relation))

	default:
		return fmt.Errorf("unsupported item type: %d", entry.GetItemType())
	}
}
