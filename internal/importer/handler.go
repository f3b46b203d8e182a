package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/the127/osmhistory/internal/database"
	"github.com/the127/osmhistory/internal/entities"
	"github.com/the127/osmhistory/internal/logging"
	"github.com/the127/osmhistory/internal/nodestore"
	"github.com/the127/osmhistory/internal/repositories"
)

type ProgressFunc func(ctx context.Context, stats Stats)

type Options struct {
	// BatchSize is the number of rows buffered before they are saved.
	BatchSize int
	// OnProgress is called after every saved batch, may be nil.
	OnProgress ProgressFunc
}

type kind int

const (
	kindNone kind = iota
	kindNode
	kindWay
	kindRelation
)

// Handler writes the validity intervals of every version it receives into the database.
// It expects the versions of one entity to arrive contiguously and in version order.
// A Handler is driven by a single reader and is not safe for concurrent use.
type Handler struct {
	dbContext database.Context
	positions *nodestore.Store
	options   Options

	active    kind
	nodes     *stream[*entities.Node]
	ways      *stream[*entities.Way]
	relations *stream[*entities.Relation]

	stats Stats
}

func NewHandler(ctx context.Context, dbFactory database.Factory, positions *nodestore.Store, options Options) (*Handler, error) {
	dbContext, err := dbFactory.NewDbContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating database context: %w", err)
	}

	if options.BatchSize < 1 {
		options.BatchSize = 1
	}

	h := &Handler{
		dbContext: dbContext,
		positions: positions,
		options:   options,
	}

	h.nodes = newStream[*entities.Node]("node", &h.stats.Nodes, h.writePoint)
	h.ways = newStream[*entities.Way]("way", &h.stats.Ways, h.writeLine)
	h.relations = newStream[*entities.Relation]("relation", &h.stats.Relations, h.writeRelation)

	return h, nil
}

func (h *Handler) HandleNode(ctx context.Context, node *entities.Node) error {
	err := h.switchTo(ctx, kindNode)
	if err != nil {
		return err
	}

	err = h.positions.Record(node)
	if err != nil {
		return err
	}

	return h.afterPush(ctx, h.nodes.push(ctx, node))
}

func (h *Handler) HandleWay(ctx context.Context, way *entities.Way) error {
	err := h.switchTo(ctx, kindWay)
	if err != nil {
		return err
	}

	return h.afterPush(ctx, h.ways.push(ctx, way))
}

func (h *Handler) HandleRelation(ctx context.Context, relation *entities.Relation) error {
	err := h.switchTo(ctx, kindRelation)
	if err != nil {
		return err
	}

	return h.afterPush(ctx, h.relations.push(ctx, relation))
}

// Finish closes the open stream and saves everything still buffered.
func (h *Handler) Finish(ctx context.Context) error {
	err := h.switchTo(ctx, kindNone)
	if err != nil {
		return err
	}

	err = h.save(ctx)
	if err != nil {
		return err
	}

	total := h.stats.Total()
	logging.Logger.Infof("Import finished: %d versions read, %d rows written, %d deleted, %d skipped",
		total.Read, total.Written, total.Deleted, total.Skipped)
	return nil
}

func (h *Handler) Stats() Stats {
	return h.stats
}

func (h *Handler) switchTo(ctx context.Context, next kind) error {
	if h.active == next {
		return nil
	}

	var err error
	switch h.active {
	case kindNode:
		err = h.nodes.finish(ctx)
		logging.Logger.Infof("Nodes done: %d versions, %d positions recorded", h.stats.Nodes.Read, h.positions.Count())

	case kindWay:
		err = h.ways.finish(ctx)
		logging.Logger.Infof("Ways done: %d versions", h.stats.Ways.Read)

	case kindRelation:
		err = h.relations.finish(ctx)
		logging.Logger.Infof("Relations done: %d versions", h.stats.Relations.Read)
	}

	h.active = next

	if err != nil {
		return err
	}

	return h.saveIfFull(ctx)
}

func (h *Handler) afterPush(ctx context.Context, err error) error {
	if err != nil {
		return err
	}

	return h.saveIfFull(ctx)
}

func (h *Handler) saveIfFull(ctx context.Context) error {
	if h.dbContext.PendingChanges() < h.options.BatchSize {
		return nil
	}

	return h.save(ctx)
}

func (h *Handler) save(ctx context.Context) error {
	pending := h.dbContext.PendingChanges()
	start := time.Now()

	err := h.dbContext.SaveChanges(ctx)
	if err != nil {
		return fmt.Errorf("saving history rows: %w", err)
	}

	batchSaveSeconds.Observe(time.Since(start).Seconds())
	logging.Logger.Debugf("saved %d history rows", pending)

	if h.options.OnProgress != nil {
		h.options.OnProgress(ctx, h.stats)
	}

	return nil
}

func (h *Handler) writePoint(_ context.Context, node *entities.Node, validTo *time.Time) (bool, error) {
	h.dbContext.Points().Insert(repositories.NewPoint(node, validTo))
	return true, nil
}

// writeLine builds the way's geometry from the node positions valid when the version was created.
// Refs that cannot be resolved are dropped; fewer than two positions make no line.
func (h *Handler) writeLine(_ context.Context, way *entities.Way, validTo *time.Time) (bool, error) {
	refs := way.GetNodeRefs()
	coordinates := make([]repositories.Coordinate, 0, len(refs))

	for _, ref := range refs {
		position, ok, err := h.positions.PositionAt(ref, way.GetTimestamp())
		if err != nil {
			return false, fmt.Errorf("resolving node %d of way %d: %w", ref, way.GetId(), err)
		}

		if !ok {
			continue
		}

		coordinates = append(coordinates, repositories.Coordinate{
			Lat: position.Lat,
			Lon: position.Lon,
		})
	}

	if len(coordinates) < 2 {
		logging.Logger.Debugf("skipping way %d version %d: %d of %d nodes resolvable",
			way.GetId(), way.GetVersion(), len(coordinates), len(refs))
		return false, nil
	}

	h.dbContext.Lines().Insert(repositories.NewLine(way, coordinates, validTo))
	return true, nil
}

func (h *Handler) writeRelation(_ context.Context, relation *entities.Relation, validTo *time.Time) (bool, error) {
	h.dbContext.Relations().Insert(repositories.NewRelation(relation, validTo))
	return true, nil
}
