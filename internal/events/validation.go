// Package events provides activity event capture and processing.
package events

import (
	"fmt"

	"github.com/flightboard/flightboard/internal/model"
)

// ValidateFlightEventPayload validates activity event payload fields.
func ValidateFlightEventPayload(payload FlightEventPayload) error {
	switch payload.Type {
	case model.EventFlightCreated, model.EventFlightDeleted:
		if payload.FlightID == "" {
			return fmt.Errorf("flight_id is required for %s", payload.Type)
		}
	case model.EventUserLogin:
		// Session events carry no flight reference.
	default:
		return fmt.Errorf("unknown event type %q", payload.Type)
	}

	if payload.UserID == "" {
		return fmt.Errorf("user_id is required")
	}
	if payload.OccurredAt <= 0 {
		return fmt.Errorf("occurred_at must be set")
	}
	return nil
}
