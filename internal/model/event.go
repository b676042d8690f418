// Package model defines domain entities for the application.
package model

import "time"

// Event types recorded by the activity pipeline.
const (
	EventFlightCreated = "flight_created"
	EventFlightDeleted = "flight_deleted"
	EventUserLogin     = "user_login"
)

// FlightEvent is a single row in the activity log.
type FlightEvent struct {
	ID      string `json:"id"`       // ULID (time-sortable)
	EventID string `json:"event_id"` // Idempotency key (Redis stream ID)

	Type     string `json:"type"`
	FlightID string `json:"flight_id,omitempty"`
	UserID   string `json:"user_id"`

	OccurredAt time.Time `json:"occurred_at"`
	CreatedAt  time.Time `json:"created_at"` // DB insertion time
}
