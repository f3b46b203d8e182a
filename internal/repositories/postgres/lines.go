package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/huandu/go-sqlbuilder"
	"github.com/lib/pq"
	"github.com/the127/osmhistory/internal/change"
	"github.com/the127/osmhistory/internal/logging"
	"github.com/the127/osmhistory/internal/repositories"
	"github.com/the127/osmhistory/internal/utils"
	"github.com/the127/osmhistory/internal/utils/apiError"
)

const linesTable = "hist_line"

var lineColumns = []string{"node_refs", "coordinates", "is_area", "geom_wkt"}

type postgresLine struct {
	postgresVersionBase
	nodeRefs    []int64
	coordinates []float64
	isArea      bool
	wkt         string
}

func newPostgresLine(line *repositories.Line) *postgresLine {
	coordinates := make([]float64, 0, 2*len(line.GetCoordinates()))
	for _, c := range line.GetCoordinates() {
		coordinates = append(coordinates, c.Lon, c.Lat)
	}

	return &postgresLine{
		postgresVersionBase: newPostgresVersionBase(line.Base()),
		nodeRefs:            line.GetNodeRefs(),
		coordinates:         coordinates,
		isArea:              line.IsArea(),
		wkt:                 line.GetWkt(),
	}
}

// Map turns the flat lon, lat pairs back into coordinates.
func (l *postgresLine) Map() *repositories.Line {
	coordinates := make([]repositories.Coordinate, 0, len(l.coordinates)/2)
	for i := 0; i+1 < len(l.coordinates); i += 2 {
		coordinates = append(coordinates, repositories.Coordinate{
			Lon: l.coordinates[i],
			Lat: l.coordinates[i+1],
		})
	}

	return repositories.NewLineFromDB(l.nodeRefs, coordinates, l.isArea, l.MapBase())
}

func (l *postgresLine) scanTargets() []any {
	return append(l.postgresVersionBase.scanTargets(), pq.Array(&l.nodeRefs), pq.Array(&l.coordinates), &l.isArea, &l.wkt)
}

type LineRepository struct {
	db            *sql.DB
	changeTracker *change.Tracker
	entityType    int
}

func NewPostgresLineRepository(db *sql.DB, changeTracker *change.Tracker, entityType int) *LineRepository {
	return &LineRepository{
		db:            db,
		changeTracker: changeTracker,
		entityType:    entityType,
	}
}

func (r *LineRepository) selectQuery(filter *repositories.VersionFilter) *sqlbuilder.SelectBuilder {
	return selectVersions(linesTable, filter, lineColumns...)
}

func (r *LineRepository) First(ctx context.Context, filter *repositories.VersionFilter) (*repositories.Line, error) {
	s := r.selectQuery(filter)
	s.Limit(1)

	lines, _, err := r.query(ctx, s)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, nil
	}

	return lines[0], nil
}

func (r *LineRepository) Single(ctx context.Context, filter *repositories.VersionFilter) (*repositories.Line, error) {
	result, err := r.First(ctx, filter)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, apiError.ErrApiLineNotFound
	}
	return result, nil
}

func (r *LineRepository) List(ctx context.Context, filter *repositories.VersionFilter) ([]*repositories.Line, int, error) {
	return r.query(ctx, r.selectQuery(filter))
}

func (r *LineRepository) query(ctx context.Context, s *sqlbuilder.SelectBuilder) ([]*repositories.Line, int, error) {
	query, args := s.BuildWithFlavor(sqlbuilder.PostgreSQL)
	logging.Logger.Debugf("query: %s, args: %+v", query, args)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying db: %w", err)
	}
	defer utils.PanicOnError(rows.Close, "closing rows")

	var lines []*repositories.Line
	for rows.Next() {
		var line postgresLine
		err := rows.Scan(line.scanTargets()...)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning row: %w", err)
		}
		lines = append(lines, line.Map())
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating rows: %w", err)
	}

	return lines, len(lines), nil
}

func (r *LineRepository) Insert(line *repositories.Line) {
	r.changeTracker.Add(change.NewEntry(change.Added, r.entityType, line))
}

func (r *LineRepository) ExecuteInsert(ctx context.Context, tx *sql.Tx, line *repositories.Line) error {
	pgLine := newPostgresLine(line)

	s := sqlbuilder.InsertInto(linesTable).
		Cols(slices.Concat(baseColumns, lineColumns)...).
		Values(append(pgLine.values(), pq.Array(pgLine.nodeRefs), pq.Array(pgLine.coordinates), pgLine.isArea, pgLine.wkt)...)

	query, args := s.BuildWithFlavor(sqlbuilder.PostgreSQL)
	logging.Logger.Debugf("query: %s, args: %+v", query, args)
	_, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("inserting line: %w", err)
	}

	return nil
}
