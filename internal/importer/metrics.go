package importer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	versionsRead = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "osmhistory_versions_read_total",
		Help: "Entity versions read from the input by entity type",
	}, []string{"type"})

	versionsWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "osmhistory_versions_written_total",
		Help: "History rows written by entity type",
	}, []string{"type"})

	versionsDeleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "osmhistory_versions_deleted_total",
		Help: "Deleted versions that closed their predecessor without a row of their own",
	}, []string{"type"})

	versionsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "osmhistory_versions_skipped_total",
		Help: "Versions dropped because no geometry could be built",
	}, []string{"type"})

	batchSaveSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "osmhistory_batch_save_seconds",
		Help:    "Duration of saving one batch of history rows",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms to ~8s
	})
)
