package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func validFlightInput() CreateFlightInput {
	dep := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	return CreateFlightInput{
		PassengerName: "Alice Johnson",
		FlightNumber:  1234,
		AirlineID:     "airline-1",
		DepartureCode: "SFO",
		ArrivalCode:   "JFK",
		DepartureTime: dep,
		ArrivalTime:   dep.Add(5 * time.Hour),
		OwnerID:       "user-1",
	}
}

func TestCreateFlightValidationErrors(t *testing.T) {
	// A nil repository proves validation rejects bad input before any
	// database call: a test reaching the repository would panic.
	svc := NewFlightService(nil, nil, nil)

	tests := []struct {
		name    string
		mutate  func(*CreateFlightInput)
		wantErr error
	}{
		{
			name:    "missing_passenger",
			mutate:  func(in *CreateFlightInput) { in.PassengerName = "   " },
			wantErr: ErrPassengerRequired,
		},
		{
			name:    "passenger_too_long",
			mutate:  func(in *CreateFlightInput) { in.PassengerName = strings.Repeat("a", maxPassengerNameLength+1) },
			wantErr: ErrPassengerNameTooLong,
		},
		{
			name:    "zero_flight_number",
			mutate:  func(in *CreateFlightInput) { in.FlightNumber = 0 },
			wantErr: ErrInvalidFlightNumber,
		},
		{
			name:    "negative_flight_number",
			mutate:  func(in *CreateFlightInput) { in.FlightNumber = -5 },
			wantErr: ErrInvalidFlightNumber,
		},
		{
			name:    "short_departure_code",
			mutate:  func(in *CreateFlightInput) { in.DepartureCode = "SF" },
			wantErr: ErrInvalidAirportCode,
		},
		{
			name:    "numeric_arrival_code",
			mutate:  func(in *CreateFlightInput) { in.ArrivalCode = "J1K" },
			wantErr: ErrInvalidAirportCode,
		},
		{
			name:    "same_airports",
			mutate:  func(in *CreateFlightInput) { in.ArrivalCode = "SFO" },
			wantErr: ErrSameAirports,
		},
		{
			name:    "missing_departure_time",
			mutate:  func(in *CreateFlightInput) { in.DepartureTime = time.Time{} },
			wantErr: ErrTimestampsRequired,
		},
		{
			name:    "missing_arrival_time",
			mutate:  func(in *CreateFlightInput) { in.ArrivalTime = time.Time{} },
			wantErr: ErrTimestampsRequired,
		},
		{
			name:    "arrival_before_departure",
			mutate:  func(in *CreateFlightInput) { in.ArrivalTime = in.DepartureTime.Add(-time.Hour) },
			wantErr: ErrArrivalNotAfter,
		},
		{
			name:    "arrival_equals_departure",
			mutate:  func(in *CreateFlightInput) { in.ArrivalTime = in.DepartureTime },
			wantErr: ErrArrivalNotAfter,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			input := validFlightInput()
			test.mutate(&input)

			_, err := svc.CreateFlight(context.Background(), input)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("expected %v, got %v", test.wantErr, err)
			}
		})
	}
}

func TestCreateFlightInputNormalization(t *testing.T) {
	input := validFlightInput()
	input.DepartureCode = " sfo "
	input.ArrivalCode = "jfk"

	// Lowercase codes normalize to uppercase before validation, so
	// validate() on the normalized copy must pass.
	input.DepartureCode = strings.ToUpper(strings.TrimSpace(input.DepartureCode))
	input.ArrivalCode = strings.ToUpper(strings.TrimSpace(input.ArrivalCode))

	if err := input.validate(); err != nil {
		t.Fatalf("normalized input should validate, got %v", err)
	}
}
