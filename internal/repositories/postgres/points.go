package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/huandu/go-sqlbuilder"
	"github.com/the127/osmhistory/internal/change"
	"github.com/the127/osmhistory/internal/logging"
	"github.com/the127/osmhistory/internal/repositories"
	"github.com/the127/osmhistory/internal/utils"
	"github.com/the127/osmhistory/internal/utils/apiError"
)

const pointsTable = "hist_point"

type postgresPoint struct {
	postgresVersionBase
	lat float64
	lon float64
}

func (p *postgresPoint) Map() *repositories.Point {
	return repositories.NewPointFromDB(p.lat, p.lon, p.MapBase())
}

func (p *postgresPoint) scanTargets() []any {
	return append(p.postgresVersionBase.scanTargets(), &p.lat, &p.lon)
}

type PointRepository struct {
	db            *sql.DB
	changeTracker *change.Tracker
	entityType    int
}

func NewPostgresPointRepository(db *sql.DB, changeTracker *change.Tracker, entityType int) *PointRepository {
	return &PointRepository{
		db:            db,
		changeTracker: changeTracker,
		entityType:    entityType,
	}
}

func (r *PointRepository) selectQuery(filter *repositories.VersionFilter) *sqlbuilder.SelectBuilder {
	return selectVersions(pointsTable, filter, "lat", "lon")
}

func (r *PointRepository) First(ctx context.Context, filter *repositories.VersionFilter) (*repositories.Point, error) {
	s := r.selectQuery(filter)
	s.Limit(1)

	points, _, err := r.query(ctx, s)
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, nil
	}

	return points[0], nil
}

func (r *PointRepository) Single(ctx context.Context, filter *repositories.VersionFilter) (*repositories.Point, error) {
	result, err := r.First(ctx, filter)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, apiError.ErrApiPointNotFound
	}
	return result, nil
}

func (r *PointRepository) List(ctx context.Context, filter *repositories.VersionFilter) ([]*repositories.Point, int, error) {
	return r.query(ctx, r.selectQuery(filter))
}

func (r *PointRepository) query(ctx context.Context, s *sqlbuilder.SelectBuilder) ([]*repositories.Point, int, error) {
	query, args := s.BuildWithFlavor(sqlbuilder.PostgreSQL)
	logging.Logger.Debugf("query: %s, args: %+v", query, args)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying db: %w", err)
	}
	defer utils.PanicOnError(rows.Close, "closing rows")

	var points []*repositories.Point
	for rows.Next() {
		var point postgresPoint
		err := rows.Scan(point.scanTargets()...)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning row: %w", err)
		}
		points = append(points, point.Map())
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating rows: %w", err)
	}

	return points, len(points), nil
}

func (r *PointRepository) Insert(point *repositories.Point) {
	r.changeTracker.Add(change.NewEntry(change.Added, r.entityType, point))
}

func (r *PointRepository) ExecuteInsert(ctx context.Context, tx *sql.Tx, point *repositories.Point) error {
	base := newPostgresVersionBase(point.Base())

	s := sqlbuilder.InsertInto(pointsTable).
		Cols(slices.Concat(baseColumns, []string{"lat", "lon"})...).
		Values(append(base.values(), point.GetLat(), point.GetLon())...)

	query, args := s.BuildWithFlavor(sqlbuilder.PostgreSQL)
	logging.Logger.Debugf("query: %s, args: %+v", query, args)
	_, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("inserting point: %w", err)
	}

	return nil
}
