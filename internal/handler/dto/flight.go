package dto

import (
	"time"

	"github.com/flightboard/flightboard/internal/model"
)

// CreateFlightRequest represents the request body for creating a flight.
type CreateFlightRequest struct {
	PassengerName        string    `json:"passenger_name"`
	FlightNumber         int       `json:"flight_number"`
	AirlineID            string    `json:"airline_id"`
	DepartureAirportCode string    `json:"departure_airport_code"`
	ArrivalAirportCode   string    `json:"arrival_airport_code"`
	DepartureTime        time.Time `json:"departure_time"`
	ArrivalTime          time.Time `json:"arrival_time"`
}

// FlightResponse represents a flight record in API responses.
type FlightResponse struct {
	ID                   string    `json:"id"`
	PassengerName        string    `json:"passenger_name"`
	FlightNumber         int       `json:"flight_number"`
	AirlineID            string    `json:"airline_id"`
	AirlineName          string    `json:"airline_name"`
	DepartureAirportCode string    `json:"departure_airport_code"`
	ArrivalAirportCode   string    `json:"arrival_airport_code"`
	DepartureTime        time.Time `json:"departure_time"`
	ArrivalTime          time.Time `json:"arrival_time"`
	DurationMinutes      int       `json:"duration_minutes"`
	OwnerID              string    `json:"owner_id"`
	CreatedAt            time.Time `json:"created_at"`
}

// FlightListResponse represents a list of flights.
type FlightListResponse struct {
	Data  []FlightResponse `json:"data"`
	Count int              `json:"count"`
}

// ToFlightResponse converts a Flight model to FlightResponse DTO.
func ToFlightResponse(flight *model.Flight) FlightResponse {
	return FlightResponse{
		ID:                   flight.ID,
		PassengerName:        flight.PassengerName,
		FlightNumber:         flight.FlightNumber,
		AirlineID:            flight.AirlineID,
		AirlineName:          flight.AirlineName,
		DepartureAirportCode: flight.DepartureCode,
		ArrivalAirportCode:   flight.ArrivalCode,
		DepartureTime:        flight.DepartureTime,
		ArrivalTime:          flight.ArrivalTime,
		DurationMinutes:      int(flight.Duration().Minutes()),
		OwnerID:              flight.OwnerID,
		CreatedAt:            flight.CreatedAt,
	}
}

// ToFlightListResponse converts flight models to a FlightListResponse.
func ToFlightListResponse(flights []model.Flight) *FlightListResponse {
	responses := make([]FlightResponse, len(flights))
	for i := range flights {
		responses[i] = ToFlightResponse(&flights[i])
	}
	return &FlightListResponse{
		Data:  responses,
		Count: len(responses),
	}
}
