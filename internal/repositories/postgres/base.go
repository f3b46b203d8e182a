package postgres

import (
	"database/sql"
	"slices"
	"time"

	"github.com/huandu/go-sqlbuilder"
	"github.com/lib/pq/hstore"
	"github.com/the127/osmhistory/internal/repositories"
)

var baseColumns = []string{
	"id",
	"version",
	"changeset",
	"uid",
	"username",
	"tags",
	"valid_from",
	"valid_to",
}

type postgresVersionBase struct {
	id        int64
	version   int
	changeset int64
	uid       int64
	username  string
	tags      hstore.Hstore
	validFrom time.Time
	validTo   sql.NullTime
}

func newPostgresVersionBase(base *repositories.VersionBase) postgresVersionBase {
	tags := hstore.Hstore{
		Map: make(map[string]sql.NullString),
	}

	for k, v := range base.GetTags() {
		tags.Map[k] = sql.NullString{String: v, Valid: true}
	}

	var validTo sql.NullTime
	if to := base.GetValidTo(); to != nil {
		validTo = sql.NullTime{Time: *to, Valid: true}
	}

	return postgresVersionBase{
		id:        base.GetId(),
		version:   base.GetVersion(),
		changeset: base.GetChangeset(),
		uid:       base.GetUid(),
		username:  base.GetUser(),
		tags:      tags,
		validFrom: base.GetValidFrom(),
		validTo:   validTo,
	}
}

// scanTargets must stay in the order of baseColumns.
func (b *postgresVersionBase) scanTargets() []any {
	return []any{&b.id, &b.version, &b.changeset, &b.uid, &b.username, &b.tags, &b.validFrom, &b.validTo}
}

func (b *postgresVersionBase) values() []any {
	return []any{b.id, b.version, b.changeset, b.uid, b.username, b.tags, b.validFrom, b.validTo}
}

func (b *postgresVersionBase) MapBase() repositories.VersionBase {
	tags := make(map[string]string)
	for k, v := range b.tags.Map {
		tags[k] = v.String
	}

	var validTo *time.Time
	if b.validTo.Valid {
		validTo = &b.validTo.Time
	}

	return repositories.NewVersionBaseFromDB(b.id, b.version, b.changeset, b.uid, b.username, tags, b.validFrom, validTo)
}

func selectVersions(table string, filter *repositories.VersionFilter, columns ...string) *sqlbuilder.SelectBuilder {
	s := sqlbuilder.Select(slices.Concat(baseColumns, columns)...).From(table)

	if filter.HasId() {
		s.Where(s.Equal("id", filter.GetId()))
	}

	if filter.HasVersion() {
		s.Where(s.Equal("version", filter.GetVersion()))
	}

	if filter.HasValidAt() {
		at := filter.GetValidAt()
		s.Where(
			s.LessEqualThan("valid_from", at),
			s.Or(
				s.IsNull("valid_to"),
				s.GreaterThan("valid_to", at),
			),
		)
	}

	s.OrderBy("id", "version").Asc()
	return s
}
