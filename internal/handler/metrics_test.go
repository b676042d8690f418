package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/flightboard/flightboard/internal/metrics"
)

func TestMetricsHandler_Metrics(t *testing.T) {
	recorder := metrics.NewInMemory()
	recorder.IncAirportCacheHit()
	recorder.IncAirportCacheHit()
	recorder.IncAirportCacheMiss()
	recorder.IncFlightCreated()
	recorder.IncSessionLogin()
	recorder.ObserveMapBuildDuration(250 * time.Millisecond)
	recorder.IncEventPublished("success")
	recorder.IncEventPublished("dropped")
	recorder.SetEventQueueDepth(7)

	h := NewMetricsHandler(recorder)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()

	h.Metrics(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("expected text/plain content type, got %q", ct)
	}

	body := rec.Body.String()
	wantLines := []string{
		"flightboard_airport_cache_hits_total 2",
		"flightboard_airport_cache_misses_total 1",
		"flightboard_flights_created_total 1",
		"flightboard_session_logins_total 1",
		"flightboard_map_build_duration_seconds_count 1",
		"flightboard_map_build_duration_seconds_sum 0.250000",
		"flightboard_activity_events_published_total{status=\"success\"} 1",
		"flightboard_activity_events_published_total{status=\"dropped\"} 1",
		"flightboard_activity_queue_depth 7",
	}
	for _, line := range wantLines {
		if !strings.Contains(body, line) {
			t.Errorf("expected body to contain %q\nbody:\n%s", line, body)
		}
	}
}

func TestMetricsHandler_NoSnapshotter(t *testing.T) {
	h := NewMetricsHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()

	h.Metrics(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", rec.Code)
	}
}
