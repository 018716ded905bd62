package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LeasesAcquired counts streams handed out to processing workers.
	LeasesAcquired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "livemap_stream_leases_acquired_total",
		Help: "Number of video stream leases granted to workers",
	})

	// LeaseRequests counts lease attempts by outcome.
	LeaseRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "livemap_stream_lease_requests_total",
		Help: "Number of lease acquisition requests",
	}, []string{"status"})

	// AggregationRuns counts aggregator job runs by outcome.
	AggregationRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "livemap_aggregation_runs_total",
		Help: "Number of occupancy aggregation runs",
	}, []string{"status"})

	// SummariesInserted counts hourly summaries written by the aggregator.
	SummariesInserted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "livemap_occupancy_summaries_inserted_total",
		Help: "Number of hourly occupancy summaries inserted",
	})

	// OccupancyRowsDeleted counts raw occupancy rows pruned by the aggregator.
	OccupancyRowsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "livemap_occupancy_rows_deleted_total",
		Help: "Number of raw occupancy rows deleted after aggregation",
	})
)
