package nodestore

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-memdb"
	"github.com/the127/osmhistory/internal/entities"
)

const table = "node_positions"

type Position struct {
	Lat float64
	Lon float64
}

type record struct {
	nodeId    int64
	timestamp time.Time
	visible   bool
	position  Position
}

// Store remembers where every node was at any point in time, so way geometries can be
// built for the moment a way version was created.
type Store struct {
	db *memdb.MemDB
}

var schema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		table: {
			Name: table,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: positionIndex{},
				},
			},
		},
	},
}

func New() (*Store, error) {
	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to create node position store: %w", err)
	}

	return &Store{
		db: db,
	}, nil
}

// Record stores the node version's position. Deleted versions are kept as tombstones.
// A later version with the same timestamp replaces the earlier one.
func (s *Store) Record(node *entities.Node) error {
	txn := s.db.Txn(true)
	defer txn.Abort()

	err := txn.Insert(table, &record{
		nodeId:    node.GetId(),
		timestamp: node.GetTimestamp(),
		visible:   node.IsVisible(),
		position: Position{
			Lat: node.GetLat(),
			Lon: node.GetLon(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to record node position: %w", err)
	}

	txn.Commit()
	return nil
}

// PositionAt returns the position of the node at the given time. The bool is false if the
// node did not exist yet or was deleted at that time.
func (s *Store) PositionAt(nodeId int64, at time.Time) (Position, bool, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	iterator, err := txn.ReverseLowerBound(table, "id", nodeId, at)
	if err != nil {
		return Position{}, false, fmt.Errorf("failed to look up node position: %w", err)
	}

	obj := iterator.Next()
	if obj == nil {
		return Position{}, false, nil
	}

	r := obj.(*record)
	if r.nodeId != nodeId || !r.visible {
		return Position{}, false, nil
	}

	return r.position, true, nil
}

// Versions returns the number of recorded versions of a node.
func (s *Store) Versions(nodeId int64) (int, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	iterator, err := txn.Get(table, "id_prefix", nodeId)
	if err != nil {
		return 0, fmt.Errorf("failed to list node positions: %w", err)
	}

	count := 0
	for obj := iterator.Next(); obj != nil; obj = iterator.Next() {
		count++
	}

	return count, nil
}

// Count returns the number of recorded node versions, tombstones included.
func (s *Store) Count() int {
	txn := s.db.Txn(false)
	defer txn.Abort()

	iterator, err := txn.Get(table, "id_prefix")
	if err != nil {
		return 0
	}

	count := 0
	for obj := iterator.Next(); obj != nil; obj = iterator.Next() {
		count++
	}

	return count
}
