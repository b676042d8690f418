// Package model defines domain entities for the application.
package model

import "strconv"

// Airport is a reference record looked up by IATA code or name prefix.
type Airport struct {
	IATA      string  `json:"iata"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Coordinate is a latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Coordinate returns the airport's position.
func (a *Airport) Coordinate() Coordinate {
	return Coordinate{Latitude: a.Latitude, Longitude: a.Longitude}
}

// CachedAirport represents airport data stored in Redis.
// Uses string types for Redis hash compatibility.
type CachedAirport struct {
	Name      string `redis:"name"`
	Latitude  string `redis:"latitude"`
	Longitude string `redis:"longitude"`
}

// ToAirport converts CachedAirport to the Airport domain model.
func (c *CachedAirport) ToAirport(iata string) (*Airport, error) {
	lat, err := strconv.ParseFloat(c.Latitude, 64)
	if err != nil {
		return nil, err
	}
	lon, err := strconv.ParseFloat(c.Longitude, 64)
	if err != nil {
		return nil, err
	}
	return &Airport{
		IATA:      iata,
		Name:      c.Name,
		Latitude:  lat,
		Longitude: lon,
	}, nil
}

// ToCachedAirport converts an Airport to its Redis hash form.
func (a *Airport) ToCachedAirport() *CachedAirport {
	return &CachedAirport{
		Name:      a.Name,
		Latitude:  strconv.FormatFloat(a.Latitude, 'f', -1, 64),
		Longitude: strconv.FormatFloat(a.Longitude, 'f', -1, 64),
	}
}
