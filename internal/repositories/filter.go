package repositories

import (
	"time"

	"github.com/the127/osmhistory/internal/utils/pointer"
)

// VersionFilter selects history rows of points, lines and relations.
type VersionFilter struct {
	id      *int64
	version *int
	validAt *time.Time
}

func NewVersionFilter() *VersionFilter {
	return &VersionFilter{}
}

func (f *VersionFilter) clone() *VersionFilter {
	cloned := *f
	return &cloned
}

func (f *VersionFilter) ById(id int64) *VersionFilter {
	cloned := f.clone()
	cloned.id = &id
	return cloned
}

func (f *VersionFilter) HasId() bool {
	return f.id != nil
}

func (f *VersionFilter) GetId() int64 {
	return pointer.Value(f.id)
}

func (f *VersionFilter) ByVersion(version int) *VersionFilter {
	cloned := f.clone()
	cloned.version = &version
	return cloned
}

func (f *VersionFilter) HasVersion() bool {
	return f.version != nil
}

func (f *VersionFilter) GetVersion() int {
	return pointer.Value(f.version)
}

// ValidAt restricts the result to the versions whose validity interval contains the given time.
func (f *VersionFilter) ValidAt(at time.Time) *VersionFilter {
	cloned := f.clone()
	cloned.validAt = &at
	return cloned
}

func (f *VersionFilter) HasValidAt() bool {
	return f.validAt != nil
}

func (f *VersionFilter) GetValidAt() time.Time {
	return pointer.Value(f.validAt)
}

// Matches applies the filter to a row in memory.
func (f *VersionFilter) Matches(row *VersionBase) bool {
	if f.HasId() && row.GetId() != f.GetId() {
		return false
	}

	if f.HasVersion() && row.GetVersion() != f.GetVersion() {
		return false
	}

	if f.HasValidAt() && !row.IsValidAt(f.GetValidAt()) {
		return false
	}

	return true
}
