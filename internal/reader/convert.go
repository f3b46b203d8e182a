package reader

import (
	"github.com/paulmach/osm"
	"github.com/the127/osmhistory/internal/entities"
)

func convertNode(n *osm.Node) *entities.Node {
	return entities.NewNode(
		entities.NewMeta(
			int64(n.ID),
			n.Version,
			int64(n.ChangesetID),
			int64(n.UserID),
			n.User,
			n.Timestamp,
			n.Visible,
			n.Tags.Map(),
		),
		n.Lat,
		n.Lon,
	)
}

func convertWay(w *osm.Way) *entities.Way {
	nodeRefs := make([]int64, 0, len(w.Nodes))
	for _, wayNode := range w.Nodes {
		nodeRefs = append(nodeRefs, int64(wayNode.ID))
	}

	return entities.NewWay(
		entities.NewMeta(
			int64(w.ID),
			w.Version,
			int64(w.ChangesetID),
			int64(w.UserID),
			w.User,
			w.Timestamp,
			w.Visible,
			w.Tags.Map(),
		),
		nodeRefs,
	)
}

func convertRelation(r *osm.Relation) *entities.Relation {
	members := make([]entities.Member, 0, len(r.Members))
	for _, member := range r.Members {
		members = append(members, entities.Member{
			Type: entities.MemberType(member.Type),
			Ref:  member.Ref,
			Role: member.Role,
		})
	}

	return entities.NewRelation(
		entities.NewMeta(
			int64(r.ID),
			r.Version,
			int64(r.ChangesetID),
			int64(r.UserID),
			r.User,
			r.Timestamp,
			r.Visible,
			r.Tags.Map(),
		),
		members,
	)
}
