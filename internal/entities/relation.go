package entities

import "slices"

type MemberType string

const (
	MemberTypeNode     MemberType = "node"
	MemberTypeWay      MemberType = "way"
	MemberTypeRelation MemberType = "relation"
)

type Member struct {
	Type MemberType `json:"type"`
	Ref  int64      `json:"ref"`
	Role string     `json:"role"`
}

type Relation struct {
	Meta

	members []Member
}

func NewRelation(meta Meta, members []Member) *Relation {
	return &Relation{
		Meta:    meta,
		members: slices.Clone(members),
	}
}

// GetMembers returns a copy of the relation's members, in order.
func (r *Relation) GetMembers() []Member {
	return slices.Clone(r.members)
}
