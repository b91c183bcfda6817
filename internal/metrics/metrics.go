// Package metrics defines prometheus metric types and provides convenience
// methods to add accounting to various parts of the pipeline.
//
// When defining new operations or metrics, these are helpful values to track:
//   - things coming into or going out of the system: batches, files, requests.
//   - the success or error status of any of the above.
//   - the distribution of processing latency.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BatchesFlushed counts committed batch-writer transactions, by
	// report kind ("dynamic" or "static").
	BatchesFlushed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aisdb_batches_flushed_total",
			Help: "Number of batch-writer transactions committed, by report kind.",
		}, []string{"kind"})

	// RowsPersisted counts rows committed within flushed batches, by
	// report kind.
	RowsPersisted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aisdb_rows_persisted_total",
			Help: "Number of rows committed within flushed batches, by report kind.",
		}, []string{"kind"})

	// DecodeFailures counts rows or sentences dropped during decode, by
	// the pipeline stage that rejected them ("csv", "csv_e", "nmea").
	DecodeFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aisdb_decode_failures_total",
			Help: "Number of rows or sentences dropped during decode, by pipeline stage.",
		}, []string{"stage"})

	// TrackQueryDuration tracks the wall-clock latency of one
	// track-vectors request, from partition resolution through the
	// final done frame.
	TrackQueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "aisdb_track_query_duration_seconds",
			Help:    "Latency of a track-vectors query, from partition resolution to the done frame.",
			Buckets: prometheus.DefBuckets,
		})

	// TracksReturned counts tracks emitted per track-vectors request.
	TracksReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "aisdb_tracks_returned_histogram",
			Help:    "Number of tracks returned per track-vectors request.",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000, 5000},
		})
)
