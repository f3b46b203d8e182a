package entities

import (
	"maps"
	"time"
)

// Entity is the common view on node, way and relation snapshots.
type Entity interface {
	GetId() int64
	GetVersion() int
	GetTimestamp() time.Time
	IsVisible() bool
}

type Meta struct {
	id        int64
	version   int
	changeset int64
	uid       int64
	user      string
	timestamp time.Time
	visible   bool
	tags      map[string]string
}

func NewMeta(id int64, version int, changeset int64, uid int64, user string, timestamp time.Time, visible bool, tags map[string]string) Meta {
	return Meta{
		id:        id,
		version:   version,
		changeset: changeset,
		uid:       uid,
		user:      user,
		timestamp: timestamp,
		visible:   visible,
		tags:      maps.Clone(tags),
	}
}

func (m *Meta) GetId() int64 {
	return m.id
}

func (m *Meta) GetVersion() int {
	return m.version
}

func (m *Meta) GetChangeset() int64 {
	return m.changeset
}

func (m *Meta) GetUid() int64 {
	return m.uid
}

func (m *Meta) GetUser() string {
	return m.user
}

func (m *Meta) GetTimestamp() time.Time {
	return m.timestamp
}

// IsVisible is false for versions that delete the entity.
func (m *Meta) IsVisible() bool {
	return m.visible
}

// GetTags returns a copy of the version's tags.
func (m *Meta) GetTags() map[string]string {
	return maps.Clone(m.tags)
}

func (m *Meta) GetTag(key string) (string, bool) {
	value, ok := m.tags[key]
	return value, ok
}
