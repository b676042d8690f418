// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Airport reference cache metrics
	IncAirportCacheHit()
	IncAirportCacheMiss()

	// Map view metrics
	ObserveMapBuildDuration(duration time.Duration)

	// Flight management metrics
	IncFlightCreated()
	IncFlightDeleted()

	// Session metrics
	IncSessionLogin()
	IncSessionLogout()

	// Event pipeline metrics
	IncEventPublished(status string) // status: "success" or "dropped"
	IncEventProcessed(status string) // status: "success", "failed", "skipped"
	ObserveEventBatchSize(size int)
	ObserveEventBatchDuration(duration time.Duration)
	SetEventQueueDepth(depth int64)
	ObserveEventIngestLag(lag time.Duration)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
