// Package query implements sorting, filtering, and search over flight
// lists. All functions are pure: they never mutate their input slice
// and are safe to call from concurrent request handlers.
package query

import (
	"sort"
	"strings"
	"time"

	"github.com/flightboard/flightboard/internal/model"
)

// SortKey identifies a flight attribute to sort by.
type SortKey string

// Supported sort keys.
const (
	SortByDeparture SortKey = "departure"
	SortByArrival   SortKey = "arrival"
	SortByDuration  SortKey = "duration"
)

// Order is a sort direction.
type Order string

// Supported sort orders.
const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// ParseSortKey validates a sort key string. Empty input defaults to
// departure time.
func ParseSortKey(s string) (SortKey, bool) {
	switch SortKey(s) {
	case "":
		return SortByDeparture, true
	case SortByDeparture, SortByArrival, SortByDuration:
		return SortKey(s), true
	default:
		return "", false
	}
}

// ParseOrder validates a sort order string. Empty input defaults to
// ascending.
func ParseOrder(s string) (Order, bool) {
	switch Order(s) {
	case "":
		return OrderAsc, true
	case OrderAsc, OrderDesc:
		return Order(s), true
	default:
		return "", false
	}
}

// Sort returns a new slice sorted by the given key and order. The sort
// is stable: flights that compare equal keep their relative order from
// the input.
func Sort(flights []model.Flight, key SortKey, order Order) []model.Flight {
	out := make([]model.Flight, len(flights))
	copy(out, flights)

	less := lessFunc(key)
	if order == OrderDesc {
		asc := less
		less = func(a, b model.Flight) bool { return asc(b, a) }
	}

	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j])
	})

	return out
}

func lessFunc(key SortKey) func(a, b model.Flight) bool {
	switch key {
	case SortByArrival:
		return func(a, b model.Flight) bool {
			return a.ArrivalTime.Before(b.ArrivalTime)
		}
	case SortByDuration:
		return func(a, b model.Flight) bool {
			return a.Duration() < b.Duration()
		}
	default:
		return func(a, b model.Flight) bool {
			return a.DepartureTime.Before(b.DepartureTime)
		}
	}
}

// Filter holds filter criteria. Zero-value fields match everything, so
// an empty Filter passes all flights through unchanged. Non-empty
// fields combine with AND.
type Filter struct {
	// Passenger matches the passenger name exactly, case-insensitive.
	// Partial-name lookups go through Search instead.
	Passenger string

	// Airline matches the airline name exactly, case-insensitive.
	Airline string

	// From and To match airport IATA codes exactly, case-insensitive.
	From string
	To   string

	// DepartureDate and ArrivalDate match the UTC calendar date of the
	// respective timestamp. Zero values match everything.
	DepartureDate time.Time
	ArrivalDate   time.Time
}

// IsZero reports whether no filter criteria are set.
func (f Filter) IsZero() bool {
	return f.Passenger == "" && f.Airline == "" && f.From == "" && f.To == "" &&
		f.DepartureDate.IsZero() && f.ArrivalDate.IsZero()
}

// Apply returns the flights matching all set criteria, preserving the
// input order.
func (f Filter) Apply(flights []model.Flight) []model.Flight {
	if f.IsZero() {
		out := make([]model.Flight, len(flights))
		copy(out, flights)
		return out
	}

	out := make([]model.Flight, 0, len(flights))
	for _, fl := range flights {
		if f.matches(fl) {
			out = append(out, fl)
		}
	}
	return out
}

func (f Filter) matches(fl model.Flight) bool {
	if f.Passenger != "" && !strings.EqualFold(fl.PassengerName, f.Passenger) {
		return false
	}
	if f.Airline != "" && !strings.EqualFold(fl.AirlineName, f.Airline) {
		return false
	}
	if f.From != "" && !strings.EqualFold(fl.DepartureCode, f.From) {
		return false
	}
	if f.To != "" && !strings.EqualFold(fl.ArrivalCode, f.To) {
		return false
	}
	if !f.DepartureDate.IsZero() && !sameUTCDate(fl.DepartureTime, f.DepartureDate) {
		return false
	}
	if !f.ArrivalDate.IsZero() && !sameUTCDate(fl.ArrivalTime, f.ArrivalDate) {
		return false
	}
	return true
}

// Search returns flights whose passenger name contains the term,
// case-insensitively. An empty term matches everything. Airline and
// airport lookups are the exact-match Filter fields, not Search.
func Search(flights []model.Flight, term string) []model.Flight {
	if term == "" {
		out := make([]model.Flight, len(flights))
		copy(out, flights)
		return out
	}

	out := make([]model.Flight, 0, len(flights))
	for _, fl := range flights {
		if containsFold(fl.PassengerName, term) {
			out = append(out, fl)
		}
	}
	return out
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// sameUTCDate reports whether two instants fall on the same calendar
// day in UTC.
func sameUTCDate(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
