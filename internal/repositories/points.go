package repositories

import (
	"context"
	"time"

	"github.com/the127/osmhistory/internal/entities"
)

// Point is one version of a node.
type Point struct {
	VersionBase

	lat float64
	lon float64
}

func NewPoint(node *entities.Node, validTo *time.Time) *Point {
	return &Point{
		VersionBase: NewVersionBase(&node.Meta, validTo),
		lat:         node.GetLat(),
		lon:         node.GetLon(),
	}
}

func NewPointFromDB(lat float64, lon float64, base VersionBase) *Point {
	return &Point{
		VersionBase: base,
		lat:         lat,
		lon:         lon,
	}
}

func (p *Point) GetLat() float64 {
	return p.lat
}

func (p *Point) GetLon() float64 {
	return p.lon
}

type PointRepository interface {
	Single(ctx context.Context, filter *VersionFilter) (*Point, error)
	First(ctx context.Context, filter *VersionFilter) (*Point, error)
	List(ctx context.Context, filter *VersionFilter) ([]*Point, int, error)
	Insert(point *Point)
}
