package dto

import "github.com/flightboard/flightboard/internal/model"

// AirlineResponse represents an airline in API responses.
type AirlineResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AirlineListResponse represents a list of airlines.
type AirlineListResponse struct {
	Data []AirlineResponse `json:"data"`
}

// AirportResponse represents an airport in API responses.
type AirportResponse struct {
	IATA      string  `json:"iata"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// AirportListResponse represents a list of airports.
type AirportListResponse struct {
	Data []AirportResponse `json:"data"`
}

// LocationResponse represents an airport coordinate lookup.
type LocationResponse struct {
	IATA      string  `json:"iata"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ToAirlineListResponse converts airline models to an AirlineListResponse.
func ToAirlineListResponse(airlines []*model.Airline) *AirlineListResponse {
	responses := make([]AirlineResponse, len(airlines))
	for i, a := range airlines {
		responses[i] = AirlineResponse{ID: a.ID, Name: a.Name}
	}
	return &AirlineListResponse{Data: responses}
}

// ToAirportListResponse converts airport models to an AirportListResponse.
func ToAirportListResponse(airports []*model.Airport) *AirportListResponse {
	responses := make([]AirportResponse, len(airports))
	for i, a := range airports {
		responses[i] = AirportResponse{
			IATA:      a.IATA,
			Name:      a.Name,
			Latitude:  a.Latitude,
			Longitude: a.Longitude,
		}
	}
	return &AirportListResponse{Data: responses}
}
