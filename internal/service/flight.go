package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/flightboard/flightboard/internal/events"
	"github.com/flightboard/flightboard/internal/metrics"
	"github.com/flightboard/flightboard/internal/model"
	"github.com/flightboard/flightboard/internal/repository"
)

// Flight service errors.
var (
	ErrPassengerRequired    = errors.New("passenger name is required")
	ErrInvalidFlightNumber  = errors.New("flight number must be a positive integer")
	ErrInvalidAirportCode   = errors.New("airport codes must be 3 letters")
	ErrSameAirports         = errors.New("departure and arrival airports must differ")
	ErrTimestampsRequired   = errors.New("departure and arrival times are required")
	ErrArrivalNotAfter      = errors.New("arrival time must be after departure time")
	ErrUnknownAirline       = errors.New("unknown airline")
	ErrFlightNotFound       = errors.New("flight not found")
	ErrNotFlightOwner       = errors.New("flight belongs to another user")
	ErrPassengerNameTooLong = errors.New("passenger name too long")
)

var airportCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

const maxPassengerNameLength = 200

// FlightService handles flight record business logic.
type FlightService struct {
	repo      *repository.Repository
	publisher *events.Publisher
	metrics   metrics.Recorder
}

// NewFlightService creates a new FlightService. publisher may be nil
// when the activity pipeline is disabled.
func NewFlightService(repo *repository.Repository, publisher *events.Publisher, recorder metrics.Recorder) *FlightService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &FlightService{
		repo:      repo,
		publisher: publisher,
		metrics:   recorder,
	}
}

// CreateFlightInput defines input for creating a flight record.
type CreateFlightInput struct {
	PassengerName string
	FlightNumber  int
	AirlineID     string
	DepartureCode string
	ArrivalCode   string
	DepartureTime time.Time
	ArrivalTime   time.Time
	OwnerID       string
}

// validate checks the input before anything touches the database.
// Invalid records are rejected without a single remote call.
func (input *CreateFlightInput) validate() error {
	if strings.TrimSpace(input.PassengerName) == "" {
		return ErrPassengerRequired
	}
	if len(input.PassengerName) > maxPassengerNameLength {
		return ErrPassengerNameTooLong
	}
	if input.FlightNumber <= 0 {
		return ErrInvalidFlightNumber
	}
	if !airportCodeRegex.MatchString(input.DepartureCode) || !airportCodeRegex.MatchString(input.ArrivalCode) {
		return ErrInvalidAirportCode
	}
	if input.DepartureCode == input.ArrivalCode {
		return ErrSameAirports
	}
	if input.DepartureTime.IsZero() || input.ArrivalTime.IsZero() {
		return ErrTimestampsRequired
	}
	if !input.ArrivalTime.After(input.DepartureTime) {
		return ErrArrivalNotAfter
	}
	return nil
}

// CreateFlight validates and persists a new flight record. The airline
// name is denormalized onto the record at creation time.
func (s *FlightService) CreateFlight(ctx context.Context, input CreateFlightInput) (*model.Flight, error) {
	input.PassengerName = strings.TrimSpace(input.PassengerName)
	input.DepartureCode = strings.ToUpper(strings.TrimSpace(input.DepartureCode))
	input.ArrivalCode = strings.ToUpper(strings.TrimSpace(input.ArrivalCode))

	if err := input.validate(); err != nil {
		return nil, err
	}

	airline, err := s.repo.GetAirlineByID(ctx, input.AirlineID)
	if err != nil {
		if errors.Is(err, repository.ErrAirlineNotFound) {
			return nil, ErrUnknownAirline
		}
		return nil, fmt.Errorf("resolve airline: %w", err)
	}

	now := time.Now().UTC()
	flight := &model.Flight{
		ID:            ulid.Make().String(),
		PassengerName: input.PassengerName,
		FlightNumber:  input.FlightNumber,
		AirlineID:     airline.ID,
		AirlineName:   airline.Name,
		DepartureCode: input.DepartureCode,
		ArrivalCode:   input.ArrivalCode,
		DepartureTime: input.DepartureTime.UTC(),
		ArrivalTime:   input.ArrivalTime.UTC(),
		OwnerID:       input.OwnerID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.CreateFlight(ctx, flight); err != nil {
		return nil, fmt.Errorf("create flight: %w", err)
	}

	s.metrics.IncFlightCreated()
	if s.publisher != nil {
		s.publisher.PublishAsync(events.FlightEventPayload{
			Type:       model.EventFlightCreated,
			FlightID:   flight.ID,
			UserID:     input.OwnerID,
			OccurredAt: now.UnixMilli(),
		})
	}

	return flight, nil
}

// ListFlights returns all flight records.
func (s *FlightService) ListFlights(ctx context.Context) ([]*model.Flight, error) {
	flights, err := s.repo.ListFlights(ctx)
	if err != nil {
		return nil, fmt.Errorf("list flights: %w", err)
	}
	return flights, nil
}

// ListFlightsForUser returns the flights owned by the given user.
func (s *FlightService) ListFlightsForUser(ctx context.Context, ownerID string) ([]*model.Flight, error) {
	flights, err := s.repo.ListFlightsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list flights for user: %w", err)
	}
	return flights, nil
}

// DeleteFlight removes a flight owned by the given user.
func (s *FlightService) DeleteFlight(ctx context.Context, id, ownerID string) error {
	if err := s.repo.DeleteFlight(ctx, id, ownerID); err != nil {
		switch {
		case errors.Is(err, repository.ErrFlightNotFound):
			return ErrFlightNotFound
		case errors.Is(err, repository.ErrNotFlightOwner):
			return ErrNotFlightOwner
		}
		return fmt.Errorf("delete flight: %w", err)
	}

	s.metrics.IncFlightDeleted()
	if s.publisher != nil {
		s.publisher.PublishAsync(events.FlightEventPayload{
			Type:       model.EventFlightDeleted,
			FlightID:   id,
			UserID:     ownerID,
			OccurredAt: time.Now().UnixMilli(),
		})
	}

	return nil
}
