package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/huandu/go-sqlbuilder"
	"github.com/the127/osmhistory/internal/change"
	"github.com/the127/osmhistory/internal/entities"
	"github.com/the127/osmhistory/internal/logging"
	"github.com/the127/osmhistory/internal/repositories"
	"github.com/the127/osmhistory/internal/utils"
	"github.com/the127/osmhistory/internal/utils/apiError"
)

const relationsTable = "hist_relation"

type postgresRelation struct {
	postgresVersionBase
	members []byte
}

func (p *postgresRelation) Map() (*repositories.Relation, error) {
	var members []entities.Member
	err := json.Unmarshal(p.members, &members)
	if err != nil {
		return nil, fmt.Errorf("decoding members of relation %d: %w", p.id, err)
	}

	return repositories.NewRelationFromDB(members, p.MapBase()), nil
}

func (p *postgresRelation) scanTargets() []any {
	return append(p.postgresVersionBase.scanTargets(), &p.members)
}

type RelationRepository struct {
	db            *sql.DB
	changeTracker *change.Tracker
	entityType    int
}

func NewPostgresRelationRepository(db *sql.DB, changeTracker *change.Tracker, entityType int) *RelationRepository {
	return &RelationRepository{
		db:            db,
		changeTracker: changeTracker,
		entityType:    entityType,
	}
}

func (r *RelationRepository) selectQuery(filter *repositories.VersionFilter) *sqlbuilder.SelectBuilder {
	return selectVersions(relationsTable, filter, "members")
}

func (r *RelationRepository) First(ctx context.Context, filter *repositories.VersionFilter) (*repositories.Relation, error) {
	s := r.selectQuery(filter)
	s.Limit(1)

	relations, _, err := r.query(ctx, s)
	if err != nil {
		return nil, err
	}
	if len(relations) == 0 {
		return nil, nil
	}

	return relations[0], nil
}

func (r *RelationRepository) Single(ctx context.Context, filter *repositories.VersionFilter) (*repositories.Relation, error) {
	result, err := r.First(ctx, filter)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, apiError.ErrApiRelationNotFound
	}
	return result, nil
}

func (r *RelationRepository) List(ctx context.Context, filter *repositories.VersionFilter) ([]*repositories.Relation, int, error) {
	return r.query(ctx, r.selectQuery(filter))
}

func (r *RelationRepository) query(ctx context.Context, s *sqlbuilder.SelectBuilder) ([]*repositories.Relation, int, error) {
	query, args := s.BuildWithFlavor(sqlbuilder.PostgreSQL)
	logging.Logger.Debugf("query: %s, args: %+v", query, args)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying db: %w", err)
	}
	defer utils.PanicOnError(rows.Close, "closing rows")

	var relations []*repositories.Relation
	for rows.Next() {
		var row postgresRelation
		err := rows.Scan(row.scanTargets()...)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning row: %w", err)
		}

		relation, err := row.Map()
		if err != nil {
			return nil, 0, err
		}
		relations = append(relations, relation)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating rows: %w", err)
	}

	return relations, len(relations), nil
}

func (r *RelationRepository) Insert(relation *repositories.Relation) {
	r.changeTracker.Add(change.NewEntry(change.Added, r.entityType, relation))
}

func (r *RelationRepository) ExecuteInsert(ctx context.Context, tx *sql.Tx, relation *repositories.Relation) error {
	base := newPostgresVersionBase(relation.Base())

	members := relation.GetMembers()
	if members == nil {
		members = []entities.Member{}
	}

	encoded, err := json.Marshal(members)
	if err != nil {
		return fmt.Errorf("encoding members: %w", err)
	}

	s := sqlbuilder.InsertInto(relationsTable).
		Cols(slices.Concat(baseColumns, []string{"members"})...).
		Values(append(base.values(), string(encoded))...)

	query, args := s.BuildWithFlavor(sqlbuilder.PostgreSQL)
	logging.Logger.Debugf("query: %s, args: %+v", query, args)
	_, err = tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("inserting relation: %w", err)
	}

	return nil
}
