package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	AirportCacheHits        uint64
	AirportCacheMisses      uint64
	MapBuildCount           uint64
	MapBuildTotalNs         int64
	FlightsCreated          uint64
	FlightsDeleted          uint64
	SessionLogins           uint64
	SessionLogouts          uint64
	EventsPublished         uint64
	EventsDropped           uint64
	EventsProcessed         uint64
	EventsFailed            uint64
	EventsSkipped           uint64
	EventBatchCount         uint64
	EventBatchTotalSize     uint64
	EventBatchTotalNs       int64
	EventQueueDepth         int64
	EventIngestLagLastNs    int64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	airportCacheHits     uint64
	airportCacheMisses   uint64
	mapBuildCount        uint64
	mapBuildTotalNs      int64
	flightsCreated       uint64
	flightsDeleted       uint64
	sessionLogins        uint64
	sessionLogouts       uint64
	eventsPublished      uint64
	eventsDropped        uint64
	eventsProcessed      uint64
	eventsFailed         uint64
	eventsSkipped        uint64
	eventBatchCount      uint64
	eventBatchTotalSize  uint64
	eventBatchTotalNs    int64
	eventQueueDepth      int64
	eventIngestLagLastNs int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		AirportCacheHits:     atomic.LoadUint64(&m.airportCacheHits),
		AirportCacheMisses:   atomic.LoadUint64(&m.airportCacheMisses),
		MapBuildCount:        atomic.LoadUint64(&m.mapBuildCount),
		MapBuildTotalNs:      atomic.LoadInt64(&m.mapBuildTotalNs),
		FlightsCreated:       atomic.LoadUint64(&m.flightsCreated),
		FlightsDeleted:       atomic.LoadUint64(&m.flightsDeleted),
		SessionLogins:        atomic.LoadUint64(&m.sessionLogins),
		SessionLogouts:       atomic.LoadUint64(&m.sessionLogouts),
		EventsPublished:      atomic.LoadUint64(&m.eventsPublished),
		EventsDropped:        atomic.LoadUint64(&m.eventsDropped),
		EventsProcessed:      atomic.LoadUint64(&m.eventsProcessed),
		EventsFailed:         atomic.LoadUint64(&m.eventsFailed),
		EventsSkipped:        atomic.LoadUint64(&m.eventsSkipped),
		EventBatchCount:      atomic.LoadUint64(&m.eventBatchCount),
		EventBatchTotalSize:  atomic.LoadUint64(&m.eventBatchTotalSize),
		EventBatchTotalNs:    atomic.LoadInt64(&m.eventBatchTotalNs),
		EventQueueDepth:      atomic.LoadInt64(&m.eventQueueDepth),
		EventIngestLagLastNs: atomic.LoadInt64(&m.eventIngestLagLastNs),
	}
}

// IncAirportCacheHit increments the cache hit counter.
func (m *InMemoryRecorder) IncAirportCacheHit() {
	atomic.AddUint64(&m.airportCacheHits, 1)
}

// IncAirportCacheMiss increments the cache miss counter.
func (m *InMemoryRecorder) IncAirportCacheMiss() {
	atomic.AddUint64(&m.airportCacheMisses, 1)
}

// ObserveMapBuildDuration records how long a merged map list took to build.
func (m *InMemoryRecorder) ObserveMapBuildDuration(duration time.Duration) {
	atomic.AddUint64(&m.mapBuildCount, 1)
	atomic.AddInt64(&m.mapBuildTotalNs, duration.Nanoseconds())
}

// IncFlightCreated increments the flight created counter.
func (m *InMemoryRecorder) IncFlightCreated() {
	atomic.AddUint64(&m.flightsCreated, 1)
}

// IncFlightDeleted increments the flight deleted counter.
func (m *InMemoryRecorder) IncFlightDeleted() {
	atomic.AddUint64(&m.flightsDeleted, 1)
}

// IncSessionLogin increments the login counter.
func (m *InMemoryRecorder) IncSessionLogin() {
	atomic.AddUint64(&m.sessionLogins, 1)
}

// IncSessionLogout increments the logout counter.
func (m *InMemoryRecorder) IncSessionLogout() {
	atomic.AddUint64(&m.sessionLogouts, 1)
}

// IncEventPublished increments the published or dropped counter.
func (m *InMemoryRecorder) IncEventPublished(status string) {
	if status == "success" {
		atomic.AddUint64(&m.eventsPublished, 1)
	} else {
		atomic.AddUint64(&m.eventsDropped, 1)
	}
}

// IncEventProcessed increments the matching processing counter.
func (m *InMemoryRecorder) IncEventProcessed(status string) {
	switch status {
	case "success":
		atomic.AddUint64(&m.eventsProcessed, 1)
	case "failed":
		atomic.AddUint64(&m.eventsFailed, 1)
	case "skipped":
		atomic.AddUint64(&m.eventsSkipped, 1)
	}
}

// ObserveEventBatchSize records a processed batch size.
func (m *InMemoryRecorder) ObserveEventBatchSize(size int) {
	atomic.AddUint64(&m.eventBatchCount, 1)
	atomic.AddUint64(&m.eventBatchTotalSize, uint64(size))
}

// ObserveEventBatchDuration records batch processing time.
func (m *InMemoryRecorder) ObserveEventBatchDuration(duration time.Duration) {
	atomic.AddInt64(&m.eventBatchTotalNs, duration.Nanoseconds())
}

// SetEventQueueDepth records the current stream backlog.
func (m *InMemoryRecorder) SetEventQueueDepth(depth int64) {
	atomic.StoreInt64(&m.eventQueueDepth, depth)
}

// ObserveEventIngestLag records the most recent publish-to-process lag.
func (m *InMemoryRecorder) ObserveEventIngestLag(lag time.Duration) {
	atomic.StoreInt64(&m.eventIngestLagLastNs, lag.Nanoseconds())
}
