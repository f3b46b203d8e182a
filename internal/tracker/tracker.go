package tracker

import "reflect"

// Entity is anything that carries a stable identity which can be compared for equality.
type Entity[I comparable] interface {
	GetId() I
}

// Tracker keeps a previous and a current version of an entity while a sorted version stream is scanned.
// One tracker serves a whole stream of one entity type; it is not safe for concurrent use.
//
// Snapshots are shared with the caller and must be treated as read-only by everyone holding them.
type Tracker[I comparable, T Entity[I]] struct {
	previous    T
	current     T
	hasPrevious bool
	hasCurrent  bool
}

func New[I comparable, T Entity[I]]() *Tracker[I, T] {
	return &Tracker[I, T]{}
}

// Previous returns the previous version, false if none is tracked.
func (t *Tracker[I, T]) Previous() (T, bool) {
	return t.previous, t.hasPrevious
}

// Current returns the current version, false if nothing was fed since the last swap.
func (t *Tracker[I, T]) Current() (T, bool) {
	return t.current, t.hasCurrent
}

func (t *Tracker[I, T]) HasPrevious() bool {
	return t.hasPrevious
}

func (t *Tracker[I, T]) HasCurrent() bool {
	return t.hasCurrent
}

// CurrentIsSameEntityAsPrevious reports whether both slots are populated with versions of the same entity.
func (t *Tracker[I, T]) CurrentIsSameEntityAsPrevious() bool {
	return t.hasPrevious && t.hasCurrent && t.previous.GetId() == t.current.GetId()
}

// Feed places a new version into the current slot.
// It panics if the current slot is still populated (the caller has to Swap first) or if the snapshot is nil.
func (t *Tracker[I, T]) Feed(snapshot T) {
	if t.hasCurrent {
		panic("tracker: feed called while a current entity is still tracked, swap first")
	}

	if isNil(snapshot) {
		panic("tracker: feed called with a nil snapshot")
	}

	t.current = snapshot
	t.hasCurrent = true
}

// Swap makes the current version the previous one and empties the current slot.
// Swapping without a current version empties the previous slot as well.
func (t *Tracker[I, T]) Swap() {
	var zero T

	t.previous = t.current
	t.hasPrevious = t.hasCurrent
	t.current = zero
	t.hasCurrent = false
}

// Reset empties both slots.
func (t *Tracker[I, T]) Reset() {
	var zero T

	t.previous = zero
	t.current = zero
	t.hasPrevious = false
	t.hasCurrent = false
}

func isNil[T any](snapshot T) bool {
	value := reflect.ValueOf(any(snapshot))
	if !value.IsValid() {
		return true
	}

	switch value.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return value.IsNil()

	default:
		return false
	}
}
