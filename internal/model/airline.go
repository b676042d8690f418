// Package model defines domain entities for the application.
package model

// Airline is a reference record resolved by listing or name-prefix search.
type Airline struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
