package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncAirportCacheHit is a no-op.
func (n *NoopRecorder) IncAirportCacheHit() {}

// IncAirportCacheMiss is a no-op.
func (n *NoopRecorder) IncAirportCacheMiss() {}

// ObserveMapBuildDuration is a no-op.
func (n *NoopRecorder) ObserveMapBuildDuration(duration time.Duration) {}

// IncFlightCreated is a no-op.
func (n *NoopRecorder) IncFlightCreated() {}

// IncFlightDeleted is a no-op.
func (n *NoopRecorder) IncFlightDeleted() {}

// IncSessionLogin is a no-op.
func (n *NoopRecorder) IncSessionLogin() {}

// IncSessionLogout is a no-op.
func (n *NoopRecorder) IncSessionLogout() {}

// IncEventPublished is a no-op.
func (n *NoopRecorder) IncEventPublished(status string) {}

// IncEventProcessed is a no-op.
func (n *NoopRecorder) IncEventProcessed(status string) {}

// ObserveEventBatchSize is a no-op.
func (n *NoopRecorder) ObserveEventBatchSize(size int) {}

// ObserveEventBatchDuration is a no-op.
func (n *NoopRecorder) ObserveEventBatchDuration(duration time.Duration) {}

// SetEventQueueDepth is a no-op.
func (n *NoopRecorder) SetEventQueueDepth(depth int64) {}

// ObserveEventIngestLag is a no-op.
func (n *NoopRecorder) ObserveEventIngestLag(lag time.Duration) {}
