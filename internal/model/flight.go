// Package model defines domain entities for the application.
package model

import (
	"strconv"
	"time"
)

// FlightSource tags where a flight record came from.
type FlightSource string

const (
	// SourceActive marks flights taken from the live-position feed.
	SourceActive FlightSource = "active"
	// SourceUpcoming marks user-submitted scheduled flights.
	SourceUpcoming FlightSource = "upcoming"
)

// Flight represents a user-submitted flight record.
// Departure and arrival timestamps are mandatory; sort-by-duration is
// undefined otherwise.
type Flight struct {
	ID            string    `json:"id"`
	PassengerName string    `json:"passenger_name"`
	FlightNumber  int       `json:"flight_number"`
	AirlineID     string    `json:"airline_id"`
	AirlineName   string    `json:"airline_name"`
	DepartureCode string    `json:"departure_airport_code"`
	ArrivalCode   string    `json:"arrival_airport_code"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	OwnerID       string    `json:"owner_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FlightLabel returns the display label for the flight, e.g. "UA 1234".
func (f *Flight) FlightLabel() string {
	return f.AirlineName + " " + strconv.Itoa(f.FlightNumber)
}

// Duration computes the scheduled flight duration.
func (f *Flight) Duration() time.Duration {
	return f.ArrivalTime.Sub(f.DepartureTime)
}

// IsUpcoming reports whether the flight departs after the given instant.
func (f *Flight) IsUpcoming(now time.Time) bool {
	return f.DepartureTime.After(now)
}
