package repositories

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/the127/osmhistory/internal/entities"
)

type Coordinate struct {
	Lat float64
	Lon float64
}

// Line is one version of a way together with the node positions that were valid when it was created.
type Line struct {
	VersionBase

	nodeRefs    []int64
	coordinates []Coordinate
	isArea      bool
}

// NewLine builds the row for a way version. Coordinates forming a closed ring of at least four points
// are an area unless the way is tagged area=no.
func NewLine(way *entities.Way, coordinates []Coordinate, validTo *time.Time) *Line {
	area, _ := way.GetTag("area")

	return &Line{
		VersionBase: NewVersionBase(&way.Meta, validTo),
		nodeRefs:    way.GetNodeRefs(),
		coordinates: slices.Clone(coordinates),
		isArea:      isClosedRing(coordinates) && area != "no",
	}
}

func isClosedRing(coordinates []Coordinate) bool {
	return len(coordinates) >= 4 && coordinates[0] == coordinates[len(coordinates)-1]
}

func NewLineFromDB(nodeRefs []int64, coordinates []Coordinate, isArea bool, base VersionBase) *Line {
	return &Line{
		VersionBase: base,
		nodeRefs:    nodeRefs,
		coordinates: coordinates,
		isArea:      isArea,
	}
}

func (l *Line) GetNodeRefs() []int64 {
	return slices.Clone(l.nodeRefs)
}

func (l *Line) GetCoordinates() []Coordinate {
	return slices.Clone(l.coordinates)
}

func (l *Line) IsArea() bool {
	return l.isArea
}

// GetWkt renders the geometry as well known text, a POLYGON for areas and a LINESTRING otherwise.
func (l *Line) GetWkt() string {
	points := make([]string, 0, len(l.coordinates))
	for _, c := range l.coordinates {
		points = append(points, fmt.Sprintf("%g %g", c.Lon, c.Lat))
	}

	if l.isArea {
		return fmt.Sprintf("POLYGON((%s))", strings.Join(points, ", "))
	}

	return fmt.Sprintf("LINESTRING(%s)", strings.Join(points, ", "))
}

type LineRepository interface {
	Single(ctx context.Context, filter *VersionFilter) (*Line, error)
	First(ctx context.Context, filter *VersionFilter) (*Line, error)
	List(ctx context.Context, filter *VersionFilter) ([]*Line, int, error)
	Insert(line *Line)
}
