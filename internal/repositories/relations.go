package repositories

import (
	"context"
	"slices"
	"time"

	"github.com/the127/osmhistory/internal/entities"
)

// Relation is one version of a relation.
type Relation struct {
	VersionBase

	members []entities.Member
}

func NewRelation(relation *entities.Relation, validTo *time.Time) *Relation {
	return &Relation{
		VersionBase: NewVersionBase(&relation.Meta, validTo),
		members:     relation.GetMembers(),
	}
}

func NewRelationFromDB(members []entities.Member, base VersionBase) *Relation {
	return &Relation{
		VersionBase: base,
		members:     members,
	}
}

func (r *Relation) GetMembers() []entities.Member {
	return slices.Clone(r.members)
}

type RelationRepository interface {
	Single(ctx context.Context, filter *VersionFilter) (*Relation, error)
	First(ctx context.Context, filter *VersionFilter) (*Relation, error)
	List(ctx context.Context, filter *VersionFilter) ([]*Relation, int, error)
	Insert(relation *Relation)
}
