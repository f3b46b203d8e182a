package database

import (
	"context"

	"github.com/the127/osmhistory/internal/repositories"
)

const (
	PointType int = iota
	LineType
	RelationType
)

type Context interface {
	Points() repositories.PointRepository
	Lines() repositories.LineRepository
	Relations() repositories.RelationRepository

	// PendingChanges returns the number of inserts not yet saved.
	PendingChanges() int
	SaveChanges(ctx context.Context) error
}
