package inmemory

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-memdb"
	db "github.com/the127/osmhistory/internal/database"
	"github.com/the127/osmhistory/internal/repositories/inmemory"
)

type database struct {
	memDB *memdb.MemDB
}

var schema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		inmemory.PointsTable:    inmemory.TableSchema(inmemory.PointsTable),
		inmemory.LinesTable:     inmemory.TableSchema(inmemory.LinesTable),
		inmemory.RelationsTable: inmemory.TableSchema(inmemory.RelationsTable),
	},
}

func NewInMemoryDatabase() (db.Database, error) {
	memDb, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory database: %w", err)
	}

	return &database{
		memDB: memDb,
	}, nil
}

// Migrate is a no-op, the schema is created with the database.
func (d *database) Migrate() error {
	return nil
}

func (d *database) NewContext(_ context.Context) (db.Context, error) {
	return newContext(d.memDB), nil
}

func (d *database) Close() error {
	return nil
}
