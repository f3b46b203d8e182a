package importer

import (
	"context"
	"time"

	"github.com/the127/osmhistory/internal/entities"
	"github.com/the127/osmhistory/internal/tracker"
	"github.com/the127/osmhistory/internal/utils/pointer"
)

// writeFunc persists one visible version with its validity end. It reports false when no row was written.
type writeFunc[T entities.Entity] func(ctx context.Context, version T, validTo *time.Time) (bool, error)

// stream turns the contiguous versions of one entity type into history rows.
type stream[T entities.Entity] struct {
	label   string
	tracker *tracker.Tracker[int64, T]
	write   writeFunc[T]
	stats   *TypeStats
}

func newStream[T entities.Entity](label string, stats *TypeStats, write writeFunc[T]) *stream[T] {
	return &stream[T]{
		label:   label,
		tracker: tracker.New[int64, T](),
		write:   write,
		stats:   stats,
	}
}

func (s *stream[T]) push(ctx context.Context, version T) error {
	s.stats.Read++
	versionsRead.WithLabelValues(s.label).Inc()

	s.tracker.Feed(version)
	err := s.flush(ctx)
	s.tracker.Swap()

	return err
}

// finish writes the last version of the stream with an open interval and empties the tracker.
func (s *stream[T]) finish(ctx context.Context) error {
	err := s.flush(ctx)

	s.tracker.Swap()
	s.tracker.Swap()

	return err
}

func (s *stream[T]) flush(ctx context.Context) error {
	previous, ok := s.tracker.Previous()
	if !ok {
		return nil
	}

	if !previous.IsVisible() {
		s.stats.Deleted++
		versionsDeleted.WithLabelValues(s.label).Inc()
		return nil
	}

	var validTo *time.Time
	if s.tracker.CurrentIsSameEntityAsPrevious() {
		current, _ := s.tracker.Current()
		validTo = pointer.To(current.GetTimestamp())
	}

	written, err := s.write(ctx, previous, validTo)
	if err != nil {
		return err
	}

	if written {
		s.stats.Written++
		versionsWritten.WithLabelValues(s.label).Inc()
	} else {
		s.stats.Skipped++
		versionsSkipped.WithLabelValues(s.label).Inc()
	}

	return nil
}
