package nodestore

import (
	"encoding/binary"
	"fmt"
	"time"
)

// positionIndex orders records by node id and then timestamp. Keys are big endian with the sign bit
// flipped so byte order equals numeric order, which the reverse lower bound lookups depend on.
type positionIndex struct{}

func (positionIndex) FromObject(raw interface{}) (bool, []byte, error) {
	r, ok := raw.(*record)
	if !ok {
		return false, nil, fmt.Errorf("unexpected object type %T", raw)
	}

	return true, encodeKey(r.nodeId, r.timestamp), nil
}

func (positionIndex) FromArgs(args ...interface{}) ([]byte, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("expected node id and timestamp, got %d args", len(args))
	}

	nodeId, ok := args[0].(int64)
	if !ok {
		return nil, fmt.Errorf("node id must be an int64, got %T", args[0])
	}

	at, ok := args[1].(time.Time)
	if !ok {
		return nil, fmt.Errorf("timestamp must be a time.Time, got %T", args[1])
	}

	return encodeKey(nodeId, at), nil
}

// PrefixFromArgs without arguments matches every record.
func (positionIndex) PrefixFromArgs(args ...interface{}) ([]byte, error) {
	if len(args) == 0 {
		return []byte{}, nil
	}

	if len(args) != 1 {
		return nil, fmt.Errorf("expected node id, got %d args", len(args))
	}

	nodeId, ok := args[0].(int64)
	if !ok {
		return nil, fmt.Errorf("node id must be an int64, got %T", args[0])
	}

	return encodeInt(nil, nodeId), nil
}

func encodeKey(nodeId int64, at time.Time) []byte {
	key := make([]byte, 0, 16)
	key = encodeInt(key, nodeId)
	return encodeInt(key, at.UnixNano())
}

func encodeInt(buf []byte, value int64) []byte {
	return binary.BigEndian.AppendUint64(buf, uint64(value)^(1<<63))
}
