package tracker

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/flightboard/flightboard/internal/model"
)

// AirportResolver looks up airport reference data by IATA code.
type AirportResolver interface {
	ResolveAirport(ctx context.Context, code string) (*model.Airport, error)
}

// Tracker builds the merged map-view flight list.
type Tracker struct {
	feed        *FeedLoader
	airports    AirportResolver
	logger      *slog.Logger
	arcSegments int
}

// New creates a Tracker.
func New(feed *FeedLoader, airports AirportResolver, logger *slog.Logger, arcSegments int) *Tracker {
	if arcSegments <= 0 {
		arcSegments = DefaultArcSegments
	}
	return &Tracker{
		feed:        feed,
		airports:    airports,
		logger:      logger,
		arcSegments: arcSegments,
	}
}

// MapFlights returns the merged display list: active-feed flights with
// a plottable position, followed by the given flights whose departure
// is still in the future, soonest first. An upcoming flight whose
// airport coordinates cannot be resolved is dropped from this pass
// without affecting the rest.
func (t *Tracker) MapFlights(ctx context.Context, flights []model.Flight) ([]TrackedFlight, error) {
	records, err := t.feed.Load(ctx)
	if err != nil {
		return nil, err
	}

	upcoming := upcomingSorted(flights, time.Now())
	airports := t.resolveAirports(ctx, airportCodes(records, upcoming))

	merged := make([]TrackedFlight, 0, len(records)+len(upcoming))

	excluded := 0
	for _, rec := range records {
		tf, ok := NormalizeActive(rec)
		if !ok {
			excluded++
			continue
		}
		t.attachRoute(&tf, airports)
		merged = append(merged, tf)
	}
	if excluded > 0 {
		t.logger.Debug("excluded active records without position", "count", excluded)
	}

	for _, fl := range upcoming {
		dep, depOK := airports[normalizeCode(fl.DepartureCode)]
		arr, arrOK := airports[normalizeCode(fl.ArrivalCode)]
		if !depOK || !arrOK {
			t.logger.Warn("dropping flight with unresolved airport",
				"flight_id", fl.ID,
				"departure", fl.DepartureCode,
				"arrival", fl.ArrivalCode,
			)
			continue
		}

		tf := NormalizeUpcoming(fl, dep, arr)
		tf.Arc = GreatCircleArc(dep.Coordinate(), arr.Coordinate(), t.arcSegments)
		merged = append(merged, tf)
	}

	return merged, nil
}

// attachRoute fills in endpoint coordinates and the display arc for an
// active record when both airports resolved. Active records stay in
// the list either way since they carry their own position.
func (t *Tracker) attachRoute(tf *TrackedFlight, airports map[string]*model.Airport) {
	dep, depOK := airports[normalizeCode(tf.Departure.Code)]
	arr, arrOK := airports[normalizeCode(tf.Arrival.Code)]
	if !depOK || !arrOK {
		return
	}

	tf.Departure.Coordinate = dep.Coordinate()
	tf.Arrival.Coordinate = arr.Coordinate()
	tf.Arc = GreatCircleArc(dep.Coordinate(), arr.Coordinate(), t.arcSegments)
}

// resolveAirports looks up every distinct code concurrently, one
// lookup per code. Failures are logged and omitted from the result.
func (t *Tracker) resolveAirports(ctx context.Context, codes []string) map[string]*model.Airport {
	resolved := make(map[string]*model.Airport, len(codes))

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for _, code := range codes {
		wg.Add(1)
		go func(code string) {
			defer wg.Done()

			airport, err := t.airports.ResolveAirport(ctx, code)
			if err != nil {
				t.logger.Debug("airport lookup failed", "code", code, "error", err)
				return
			}

			mu.Lock()
			resolved[code] = airport
			mu.Unlock()
		}(code)
	}

	wg.Wait()
	return resolved
}

// upcomingSorted returns the flights departing after now, soonest
// first. The input is not mutated.
func upcomingSorted(flights []model.Flight, now time.Time) []model.Flight {
	out := make([]model.Flight, 0, len(flights))
	for _, fl := range flights {
		if fl.IsUpcoming(now) {
			out = append(out, fl)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DepartureTime.Before(out[j].DepartureTime)
	})

	return out
}

// airportCodes collects the distinct airport codes referenced by the
// feed records and upcoming flights.
func airportCodes(records []ActiveRecord, upcoming []model.Flight) []string {
	seen := make(map[string]struct{})

	add := func(code string) {
		code = normalizeCode(code)
		if code == "" {
			return
		}
		seen[code] = struct{}{}
	}

	for _, rec := range records {
		add(rec.Departure.IATA)
		add(rec.Arrival.IATA)
	}
	for _, fl := range upcoming {
		add(fl.DepartureCode)
		add(fl.ArrivalCode)
	}

	codes := make([]string, 0, len(seen))
	for code := range seen {
		codes = append(codes, code)
	}
	return codes
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
