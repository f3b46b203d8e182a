package inmemory

import (
	"encoding/binary"
	"fmt"

	"github.com/hashicorp/go-memdb"
	"github.com/the127/osmhistory/internal/repositories"
)

const (
	PointsTable    = "points"
	LinesTable     = "lines"
	RelationsTable = "relations"
)

type versioned interface {
	Base() *repositories.VersionBase
}

// VersionIndex orders history rows by entity id and version. Its id_prefix form selects all versions of one id.
type VersionIndex struct{}

func (VersionIndex) FromObject(raw interface{}) (bool, []byte, error) {
	row, ok := raw.(versioned)
	if !ok {
		return false, nil, fmt.Errorf("unexpected object type %T", raw)
	}

	base := row.Base()
	return true, encodeVersionKey(base.GetId(), base.GetVersion()), nil
}

func (VersionIndex) FromArgs(args ...interface{}) ([]byte, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("expected id and version, got %d args", len(args))
	}

	id, ok := args[0].(int64)
	if !ok {
		return nil, fmt.Errorf("id must be an int64, got %T", args[0])
	}

	version, ok := args[1].(int)
	if !ok {
		return nil, fmt.Errorf("version must be an int, got %T", args[1])
	}

	return encodeVersionKey(id, version), nil
}

func (VersionIndex) PrefixFromArgs(args ...interface{}) ([]byte, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("expected id, got %d args", len(args))
	}

	id, ok := args[0].(int64)
	if !ok {
		return nil, fmt.Errorf("id must be an int64, got %T", args[0])
	}

	return encodeSigned(nil, id), nil
}

func encodeVersionKey(id int64, version int) []byte {
	key := make([]byte, 0, 16)
	key = encodeSigned(key, id)
	return encodeSigned(key, int64(version))
}

func encodeSigned(buf []byte, value int64) []byte {
	return binary.BigEndian.AppendUint64(buf, uint64(value)^(1<<63))
}

// TableSchema returns the memdb schema of one history table.
func TableSchema(name string) *memdb.TableSchema {
	return &memdb.TableSchema{
		Name: name,
		Indexes: map[string]*memdb.IndexSchema{
			"id": {
				Name:    "id",
				Unique:  true,
				Indexer: VersionIndex{},
			},
		},
	}
}

func listVersions[T versioned](db *memdb.MemDB, table string, filter *repositories.VersionFilter) ([]T, int, error) {
	txn := db.Txn(false)
	defer txn.Abort()

	var iterator memdb.ResultIterator
	var err error
	if filter.HasId() {
		iterator, err = txn.Get(table, "id_prefix", filter.GetId())
	} else {
		iterator, err = txn.Get(table, "id")
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get %s: %w", table, err)
	}

	var result []T

	obj := iterator.Next()
	for obj != nil {
		typed := obj.(T)

		if filter.Matches(typed.Base()) {
			result = append(result, typed)
		}

		obj = iterator.Next()
	}

	return result, len(result), nil
}

func firstVersion[T versioned](db *memdb.MemDB, table string, filter *repositories.VersionFilter) (T, bool, error) {
	var zero T

	result, _, err := listVersions[T](db, table, filter)
	if err != nil {
		return zero, false, err
	}

	if len(result) == 0 {
		return zero, false, nil
	}

	return result[0], true, nil
}

func insertVersion(txn *memdb.Txn, table string, row versioned) error {
	err := txn.Insert(table, row)
	if err != nil {
		return fmt.Errorf("failed to insert into %s: %w", table, err)
	}

	return nil
}
