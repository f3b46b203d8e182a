package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/the127/osmhistory/internal/change"
	db "github.com/the127/osmhistory/internal/database"
	"github.com/the127/osmhistory/internal/repositories"
	"github.com/the127/osmhistory/internal/repositories/postgres"
	"github.com/the127/osmhistory/internal/utils"
)

type Context struct {
	db            *sql.DB
	changeTracker *change.Tracker

	points    *postgres.PointRepository
	lines     *postgres.LineRepository
	relations *postgres.RelationRepository
}

func newContext(db *sql.DB) *Context {
	return &Context{
		db:            db,
		changeTracker: change.NewTracker(),
	}
}

func (c *Context) Points() repositories.PointRepository {
	if c.points == nil {
		c.points = postgres.NewPostgresPointRepository(c.db, c.changeTracker, db.PointType)
	}

	return c.points
}

func (c *Context) Lines() repositories.LineRepository {
	if c.lines == nil {
		c.lines = postgres.NewPostgresLineRepository(c.db, c.changeTracker, db.LineType)
	}

	return c.lines
}

func (c *Context) Relations() repositories.RelationRepository {
	if c.relations == nil {
		c.relations = postgres.NewPostgresRelationRepository(c.db, c.changeTracker, db.RelationType)
	}

	return c.relations
}

func (c *Context) PendingChanges() int {
	return c.changeTracker.Len()
}

func (c *Context) SaveChanges(ctx context.Context) error {
	tx, err := c.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: 0,
		ReadOnly:  false,
	})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer utils.IgnoreError(tx.Rollback)

	changes := c.changeTracker.GetChanges()
	for _, changeEntry := range changes {
		err := c.applyChange(ctx, tx, changeEntry)
		if err != nil {
			return fmt.Errorf("failed to apply change: %w", err)
		}
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	c.changeTracker.Clear()
	return nil
}

func (c *Context) applyChange(ctx context.Context, tx *sql.Tx, entry *change.Entry) error {
	if entry.GetChangeType() != change.Added {
		return fmt.Errorf("unsupported change type: %d", entry.GetChangeType())
	}

	switch entry.GetItemType() {
	case db.PointType:
		return c.points.ExecuteInsert(ctx, tx, entry.GetItem().(*repositories.Point))

	case db.LineType:
		return c.lines.ExecuteInsert(ctx, tx, entry.GetItem().(*repositories.Line))

	case db.RelationType:
		return c.relations.ExecuteInsert(ctx, tx, entry.GetItem().(*repositories.Relation))

	default:
		return fmt.Errorf("unsupported item type: %d", entry.GetItemType())
	}
}
