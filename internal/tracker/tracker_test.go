package tracker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/flightboard/flightboard/internal/model"
)

// stubResolver serves airports from a fixed map and fails for
// everything else.
type stubResolver struct {
	airports map[string]*model.Airport
}

func (s *stubResolver) ResolveAirport(_ context.Context, code string) (*model.Airport, error) {
	if a, ok := s.airports[code]; ok {
		return a, nil
	}
	return nil, errors.New("airport not found")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testResolver() *stubResolver {
	return &stubResolver{airports: map[string]*model.Airport{
		"SFO": {IATA: "SFO", Name: "San Francisco International", Latitude: 37.6213, Longitude: -122.3790},
		"JFK": {IATA: "JFK", Name: "John F. Kennedy International", Latitude: 40.6413, Longitude: -73.7781},
		"SEA": {IATA: "SEA", Name: "Seattle-Tacoma International", Latitude: 47.4502, Longitude: -122.3088},
	}}
}

func writeFeed(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "active.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write feed fixture: %v", err)
	}
	return path
}

const feedFixture = `{
	"data": [
		{
			"flight_status": "active",
			"departure": {"airport": "San Francisco International", "iata": "SFO"},
			"arrival": {"airport": "John F. Kennedy International", "iata": "JFK"},
			"airline": {"name": "United Airlines", "iata": "UA"},
			"flight": {"number": "1234", "iata": "UA1234"},
			"live": {
				"updated": "2026-08-28T12:00:00+00:00",
				"latitude": 39.5,
				"longitude": -98.2,
				"altitude": 11000,
				"direction": 85,
				"speed_horizontal": 870,
				"is_ground": false
			}
		},
		{
			"flight_status": "active",
			"departure": {"airport": "Somewhere", "iata": "XXX"},
			"arrival": {"airport": "Elsewhere", "iata": "YYY"},
			"airline": {"name": "Ghost Air", "iata": "GA"},
			"flight": {"number": "1", "iata": "GA1"},
			"live": {
				"updated": "2026-08-28T12:00:00+00:00",
				"latitude": null,
				"longitude": -98.2
			}
		},
		{
			"flight_status": "landed",
			"departure": {"airport": "Somewhere", "iata": "XXX"},
			"arrival": {"airport": "Elsewhere", "iata": "YYY"},
			"airline": {"name": "Ghost Air", "iata": "GA"},
			"flight": {"number": "2", "iata": "GA2"},
			"live": null
		}
	]
}`

func TestMapFlightsExcludesRecordsWithoutPosition(t *testing.T) {
	loader := NewFeedLoader(writeFeed(t, feedFixture), "", time.Second)
	tr := New(loader, testResolver(), testLogger(), 8)

	got, err := tr.MapFlights(context.Background(), nil)
	if err != nil {
		t.Fatalf("MapFlights failed: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("expected 1 tracked flight, got %d", len(got))
	}
	if got[0].FlightLabel != "UA1234" {
		t.Errorf("expected UA1234, got %s", got[0].FlightLabel)
	}
	if got[0].Source != model.SourceActive {
		t.Errorf("expected source active, got %s", got[0].Source)
	}
	if got[0].Telemetry.Latitude != 39.5 {
		t.Errorf("expected live latitude 39.5, got %v", got[0].Telemetry.Latitude)
	}
	if got[0].Telemetry.IsGround {
		t.Error("active airborne flight should not be marked on ground")
	}
}

func TestMapFlightsNormalizesUpcoming(t *testing.T) {
	loader := NewFeedLoader(writeFeed(t, `{"data": []}`), "", time.Second)
	tr := New(loader, testResolver(), testLogger(), 8)

	dep := time.Now().Add(6 * time.Hour)
	flights := []model.Flight{
		{
			ID:            "fl1",
			PassengerName: "Alice Johnson",
			FlightNumber:  88,
			AirlineName:   "United Airlines",
			DepartureCode: "SFO",
			ArrivalCode:   "JFK",
			DepartureTime: dep,
			ArrivalTime:   dep.Add(5 * time.Hour),
		},
	}

	got, err := tr.MapFlights(context.Background(), flights)
	if err != nil {
		t.Fatalf("MapFlights failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 tracked flight, got %d", len(got))
	}

	tf := got[0]
	if tf.Source != model.SourceUpcoming {
		t.Errorf("expected source upcoming, got %s", tf.Source)
	}
	if tf.Status != StatusScheduled {
		t.Errorf("expected status %s, got %s", StatusScheduled, tf.Status)
	}
	if !tf.Telemetry.IsGround {
		t.Error("upcoming flight should be on the ground")
	}
	if tf.Telemetry.Latitude != 37.6213 || tf.Telemetry.Longitude != -122.3790 {
		t.Errorf("telemetry should sit at the departure coordinate, got %v,%v",
			tf.Telemetry.Latitude, tf.Telemetry.Longitude)
	}
	if !tf.Telemetry.UpdatedAt.Equal(dep) {
		t.Errorf("last update should be the departure time, got %v", tf.Telemetry.UpdatedAt)
	}
	if len(tf.Arc) != 9 {
		t.Errorf("expected 9 arc waypoints for 8 segments, got %d", len(tf.Arc))
	}
}

func TestMapFlightsDropsUnresolvedWithoutAbortingSiblings(t *testing.T) {
	loader := NewFeedLoader(writeFeed(t, `{"data": []}`), "", time.Second)
	tr := New(loader, testResolver(), testLogger(), 4)

	dep := time.Now().Add(2 * time.Hour)
	flights := []model.Flight{
		{ID: "bad", DepartureCode: "ZZZ", ArrivalCode: "JFK", DepartureTime: dep, ArrivalTime: dep.Add(time.Hour)},
		{ID: "good", PassengerName: "Bob", DepartureCode: "SEA", ArrivalCode: "SFO", DepartureTime: dep.Add(time.Hour), ArrivalTime: dep.Add(3 * time.Hour)},
	}

	got, err := tr.MapFlights(context.Background(), flights)
	if err != nil {
		t.Fatalf("MapFlights failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected the resolvable flight to survive, got %d flights", len(got))
	}
	if got[0].PassengerName != "Bob" {
		t.Errorf("wrong surviving flight: %+v", got[0])
	}
}

func TestMapFlightsSkipsPastAndSortsUpcoming(t *testing.T) {
	loader := NewFeedLoader(writeFeed(t, `{"data": []}`), "", time.Second)
	tr := New(loader, testResolver(), testLogger(), 4)

	now := time.Now()
	flights := []model.Flight{
		{ID: "later", PassengerName: "Later", DepartureCode: "SEA", ArrivalCode: "JFK", DepartureTime: now.Add(48 * time.Hour), ArrivalTime: now.Add(53 * time.Hour)},
		{ID: "past", PassengerName: "Past", DepartureCode: "SFO", ArrivalCode: "JFK", DepartureTime: now.Add(-2 * time.Hour), ArrivalTime: now.Add(3 * time.Hour)},
		{ID: "soon", PassengerName: "Soon", DepartureCode: "SFO", ArrivalCode: "SEA", DepartureTime: now.Add(time.Hour), ArrivalTime: now.Add(3 * time.Hour)},
	}

	got, err := tr.MapFlights(context.Background(), flights)
	if err != nil {
		t.Fatalf("MapFlights failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 upcoming flights, got %d", len(got))
	}
	if got[0].PassengerName != "Soon" || got[1].PassengerName != "Later" {
		t.Errorf("upcoming flights out of order: %s, %s", got[0].PassengerName, got[1].PassengerName)
	}
}

func TestFeedLoaderRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": [{"flight_status": "active", "airline": {"name": "Test"}}]}`)
	}))
	defer srv.Close()

	loader := NewFeedLoader("", srv.URL, time.Second)
	records, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Airline.Name != "Test" {
		t.Errorf("unexpected airline: %s", records[0].Airline.Name)
	}
}

func TestFeedLoaderErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		loader := NewFeedLoader("/nonexistent/active.json", "", time.Second)
		if _, err := loader.Load(context.Background()); !errors.Is(err, ErrFeedUnavailable) {
			t.Errorf("expected ErrFeedUnavailable, got %v", err)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		loader := NewFeedLoader(writeFeed(t, "not json"), "", time.Second)
		if _, err := loader.Load(context.Background()); !errors.Is(err, ErrFeedMalformed) {
			t.Errorf("expected ErrFeedMalformed, got %v", err)
		}
	})

	t.Run("remote non-200", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		loader := NewFeedLoader("", srv.URL, time.Second)
		if _, err := loader.Load(context.Background()); !errors.Is(err, ErrFeedUnavailable) {
			t.Errorf("expected ErrFeedUnavailable, got %v", err)
		}
	})

	t.Run("no source configured yields empty feed", func(t *testing.T) {
		loader := NewFeedLoader("", "", time.Second)
		records, err := loader.Load(context.Background())
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if len(records) != 0 {
			t.Errorf("expected empty feed, got %d records", len(records))
		}
	})
}

func TestMapFlightsWithoutFeedServesUpcoming(t *testing.T) {
	loader := NewFeedLoader("", "", time.Second)
	tr := New(loader, testResolver(), testLogger(), 4)

	dep := time.Now().Add(3 * time.Hour)
	flights := []model.Flight{
		{ID: "fl1", PassengerName: "Alice", DepartureCode: "SFO", ArrivalCode: "JFK", DepartureTime: dep, ArrivalTime: dep.Add(5 * time.Hour)},
	}

	got, err := tr.MapFlights(context.Background(), flights)
	if err != nil {
		t.Fatalf("MapFlights failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected the upcoming flight to render, got %d flights", len(got))
	}
	if got[0].Source != model.SourceUpcoming {
		t.Errorf("expected source upcoming, got %s", got[0].Source)
	}
}
