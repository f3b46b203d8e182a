package entities

import "slices"

type Way struct {
	Meta

	nodeRefs []int64
}

func NewWay(meta Meta, nodeRefs []int64) *Way {
	return &Way{
		Meta:     meta,
		nodeRefs: slices.Clone(nodeRefs),
	}
}

// GetNodeRefs returns a copy of the ids of the way's nodes, in order.
func (w *Way) GetNodeRefs() []int64 {
	return slices.Clone(w.nodeRefs)
}

// IsClosed reports whether the first and the last node ref are the same.
func (w *Way) IsClosed() bool {
	return len(w.nodeRefs) > 2 && w.nodeRefs[0] == w.nodeRefs[len(w.nodeRefs)-1]
}
