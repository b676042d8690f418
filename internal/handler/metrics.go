package handler

import (
	"fmt"
	"net/http"

	"github.com/flightboard/flightboard/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "flightboard_airport_cache_hits_total %d\n", snap.AirportCacheHits)
	writeMetric(w, "flightboard_airport_cache_misses_total %d\n", snap.AirportCacheMisses)
	writeMetric(w, "flightboard_map_build_duration_seconds_count %d\n", snap.MapBuildCount)
	writeMetric(w, "flightboard_map_build_duration_seconds_sum %.6f\n", float64(snap.MapBuildTotalNs)/1e9)

	writeMetric(w, "flightboard_flights_created_total %d\n", snap.FlightsCreated)
	writeMetric(w, "flightboard_flights_deleted_total %d\n", snap.FlightsDeleted)

	writeMetric(w, "flightboard_session_logins_total %d\n", snap.SessionLogins)
	writeMetric(w, "flightboard_session_logouts_total %d\n", snap.SessionLogouts)

	writeMetric(w, "flightboard_activity_events_published_total{status=\"success\"} %d\n", snap.EventsPublished)
	writeMetric(w, "flightboard_activity_events_published_total{status=\"dropped\"} %d\n", snap.EventsDropped)

	writeMetric(w, "flightboard_activity_events_processed_total{status=\"success\"} %d\n", snap.EventsProcessed)
	writeMetric(w, "flightboard_activity_events_processed_total{status=\"failed\"} %d\n", snap.EventsFailed)
	writeMetric(w, "flightboard_activity_events_processed_total{status=\"skipped\"} %d\n", snap.EventsSkipped)

	writeMetric(w, "flightboard_activity_batches_total %d\n", snap.EventBatchCount)
	writeMetric(w, "flightboard_activity_batch_total_size %d\n", snap.EventBatchTotalSize)
	writeMetric(w, "flightboard_activity_batch_duration_seconds_sum %.6f\n", float64(snap.EventBatchTotalNs)/1e9)
	writeMetric(w, "flightboard_activity_queue_depth %d\n", snap.EventQueueDepth)
	writeMetric(w, "flightboard_activity_ingest_lag_seconds %.6f\n", float64(snap.EventIngestLagLastNs)/1e9)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
