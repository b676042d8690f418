package tracker

import (
	"time"

	"github.com/flightboard/flightboard/internal/model"
)

// StatusScheduled is the synthesized status label for upcoming flights.
const StatusScheduled = "Scheduled"

// Endpoint is one end of a tracked flight's route.
type Endpoint struct {
	Code       string           `json:"code"`
	Name       string           `json:"name,omitempty"`
	Coordinate model.Coordinate `json:"coordinate"`
}

// Telemetry is the live-position block of a tracked flight. For
// upcoming flights it is synthesized: on the ground at the departure
// coordinate, zero speed and altitude.
type Telemetry struct {
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	Altitude        float64   `json:"altitude"`
	Direction       float64   `json:"direction"`
	SpeedHorizontal float64   `json:"speed_horizontal"`
	IsGround        bool      `json:"is_ground"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TrackedFlight is the common display shape for the map view.
type TrackedFlight struct {
	Source        model.FlightSource `json:"source"`
	Status        string             `json:"status"`
	FlightLabel   string             `json:"flight_label"`
	AirlineName   string             `json:"airline_name"`
	PassengerName string             `json:"passenger_name,omitempty"`
	Departure     Endpoint           `json:"departure"`
	Arrival       Endpoint           `json:"arrival"`
	Telemetry     Telemetry          `json:"telemetry"`
	Arc           []model.Coordinate `json:"arc,omitempty"`
}

// NormalizeActive converts a raw feed record into the common shape.
// Records without a plottable position are excluded; ok is false for
// those.
func NormalizeActive(rec ActiveRecord) (TrackedFlight, bool) {
	if !rec.HasPosition() {
		return TrackedFlight{}, false
	}

	live := rec.Live
	updated, _ := time.Parse(time.RFC3339, live.Updated)

	label := rec.Flight.IATA
	if label == "" {
		label = rec.Airline.IATA + rec.Flight.Number
	}

	return TrackedFlight{
		Source:      model.SourceActive,
		Status:      rec.FlightStatus,
		FlightLabel: label,
		AirlineName: rec.Airline.Name,
		Departure: Endpoint{
			Code: rec.Departure.IATA,
			Name: rec.Departure.Airport,
		},
		Arrival: Endpoint{
			Code: rec.Arrival.IATA,
			Name: rec.Arrival.Airport,
		},
		Telemetry: Telemetry{
			Latitude:        *live.Latitude,
			Longitude:       *live.Longitude,
			Altitude:        live.Altitude,
			Direction:       live.Direction,
			SpeedHorizontal: live.SpeedHorizontal,
			IsGround:        live.IsGround,
			UpdatedAt:       updated,
		},
	}, true
}

// NormalizeUpcoming converts a user-submitted flight and its resolved
// airports into the common shape. Telemetry is a placeholder: on the
// ground at the departure coordinate with the departure time as the
// last update.
func NormalizeUpcoming(flight model.Flight, departure, arrival *model.Airport) TrackedFlight {
	return TrackedFlight{
		Source:        model.SourceUpcoming,
		Status:        StatusScheduled,
		FlightLabel:   flight.FlightLabel(),
		AirlineName:   flight.AirlineName,
		PassengerName: flight.PassengerName,
		Departure: Endpoint{
			Code:       flight.DepartureCode,
			Name:       departure.Name,
			Coordinate: departure.Coordinate(),
		},
		Arrival: Endpoint{
			Code:       flight.ArrivalCode,
			Name:       arrival.Name,
			Coordinate: arrival.Coordinate(),
		},
		Telemetry: Telemetry{
			Latitude:  departure.Latitude,
			Longitude: departure.Longitude,
			IsGround:  true,
			UpdatedAt: flight.DepartureTime,
		},
	}
}
