package importer

// TypeStats counts what happened to the versions of one entity type.
type TypeStats struct {
	Read    int64 `json:"read"`
	Written int64 `json:"written"`
	Deleted int64 `json:"deleted"`
	Skipped int64 `json:"skipped"`
}

type Stats struct {
	Nodes     TypeStats `json:"nodes"`
	Ways      TypeStats `json:"ways"`
	Relations TypeStats `json:"relations"`
}

func (s Stats) Total() TypeStats {
	return TypeStats{
		Read:    s.Nodes.Read + s.Ways.Read + s.Relations.Read,
		Written: s.Nodes.Written + s.Ways.Written + s.Relations.Written,
		Deleted: s.Nodes.Deleted + s.Ways.Deleted + s.Relations.Deleted,
		Skipped: s.Nodes.Skipped + s.Ways.Skipped + s.Relations.Skipped,
	}
}
