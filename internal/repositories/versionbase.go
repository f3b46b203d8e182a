package repositories

import (
	"maps"
	"time"

	"github.com/the127/osmhistory/internal/entities"
)

// VersionBase holds what every history row has in common: the version's metadata and its validity interval.
type VersionBase struct {
	id        int64
	version   int
	changeset int64
	uid       int64
	user      string
	tags      map[string]string
	validFrom time.Time
	validTo   *time.Time
}

// NewVersionBase builds the row base for an entity version. validTo is nil while the version is the latest known one.
func NewVersionBase(entity *entities.Meta, validTo *time.Time) VersionBase {
	return VersionBase{
		id:        entity.GetId(),
		version:   entity.GetVersion(),
		changeset: entity.GetChangeset(),
		uid:       entity.GetUid(),
		user:      entity.GetUser(),
		tags:      entity.GetTags(),
		validFrom: entity.GetTimestamp(),
		validTo:   copyTime(validTo),
	}
}

func NewVersionBaseFromDB(id int64, version int, changeset int64, uid int64, user string, tags map[string]string, validFrom time.Time, validTo *time.Time) VersionBase {
	return VersionBase{
		id:        id,
		version:   version,
		changeset: changeset,
		uid:       uid,
		user:      user,
		tags:      tags,
		validFrom: validFrom,
		validTo:   copyTime(validTo),
	}
}

func (b *VersionBase) GetId() int64 {
	return b.id
}

func (b *VersionBase) GetVersion() int {
	return b.version
}

func (b *VersionBase) GetChangeset() int64 {
	return b.changeset
}

func (b *VersionBase) GetUid() int64 {
	return b.uid
}

func (b *VersionBase) GetUser() string {
	return b.user
}

func (b *VersionBase) GetTags() map[string]string {
	return maps.Clone(b.tags)
}

func (b *VersionBase) GetValidFrom() time.Time {
	return b.validFrom
}

// GetValidTo returns nil for versions that are still valid.
func (b *VersionBase) GetValidTo() *time.Time {
	return copyTime(b.validTo)
}

// IsValidAt reports whether at lies in [validFrom, validTo).
func (b *VersionBase) IsValidAt(at time.Time) bool {
	if at.Before(b.validFrom) {
		return false
	}

	return b.validTo == nil || at.Before(*b.validTo)
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	copied := *t
	return &copied
}

// Base gives generic code access to the shared fields of any history row.
func (b *VersionBase) Base() *VersionBase {
	return b
}
