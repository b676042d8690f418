package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/flightboard/flightboard/internal/model"
)

// Common errors for flight repository operations.
var (
	ErrFlightNotFound = errors.New("flight not found")
	ErrNotFlightOwner = errors.New("flight owned by another user")
)

// flightColumns is the select list shared by all flight queries.
// airline_name is denormalized via an explicit join, never a lazy
// dereference of the airline reference.
const flightColumns = `
	f.id, f.passenger_name, f.flight_number, f.airline_id, a.name,
	f.departure_airport_code, f.arrival_airport_code,
	f.departure_time, f.arrival_time, f.owner_id, f.created_at, f.updated_at
`

// CreateFlight inserts a new flight into the database.
// The persisted row (with backend-assigned timestamps) is what callers
// must treat as authoritative.
func (r *Repository) CreateFlight(ctx context.Context, flight *model.Flight) error {
	query := `
		INSERT INTO flights (
			id, passenger_name, flight_number, airline_id,
			departure_airport_code, arrival_airport_code,
			departure_time, arrival_time, owner_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		flight.ID,
		flight.PassengerName,
		flight.FlightNumber,
		flight.AirlineID,
		flight.DepartureCode,
		flight.ArrivalCode,
		flight.DepartureTime,
		flight.ArrivalTime,
		flight.OwnerID,
		flight.CreatedAt,
		flight.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create flight: %w", err)
	}

	return nil
}

// GetFlightByID retrieves a flight by its ID.
func (r *Repository) GetFlightByID(ctx context.Context, id string) (*model.Flight, error) {
	query := `
		SELECT ` + flightColumns + `
		FROM flights f
		JOIN airlines a ON a.id = f.airline_id
		WHERE f.id = $1
	`

	flight, err := r.scanFlight(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFlightNotFound
		}
		return nil, fmt.Errorf("failed to get flight by ID: %w", err)
	}

	return flight, nil
}

// ListFlights retrieves all flight records ordered by departure time.
func (r *Repository) ListFlights(ctx context.Context) ([]*model.Flight, error) {
	query := `
		SELECT ` + flightColumns + `
		FROM flights f
		JOIN airlines a ON a.id = f.airline_id
		ORDER BY f.departure_time, f.id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list flights: %w", err)
	}
	defer rows.Close()

	return r.collectFlights(rows)
}

// ListFlightsByOwner retrieves the flight records owned by a user.
func (r *Repository) ListFlightsByOwner(ctx context.Context, ownerID string) ([]*model.Flight, error) {
	query := `
		SELECT ` + flightColumns + `
		FROM flights f
		JOIN airlines a ON a.id = f.airline_id
		WHERE f.owner_id = $1
		ORDER BY f.departure_time, f.id
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list flights for owner: %w", err)
	}
	defer rows.Close()

	return r.collectFlights(rows)
}

// DeleteFlight removes a flight owned by the given user.
// Returns ErrFlightNotFound if no row matches the ID, and
// ErrNotFlightOwner if the row exists but belongs to someone else.
func (r *Repository) DeleteFlight(ctx context.Context, id, ownerID string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM flights WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete flight: %w", err)
	}

	if result.RowsAffected() == 0 {
		var exists bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM flights WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check flight existence: %w", err)
		}
		if exists {
			return ErrNotFlightOwner
		}
		return ErrFlightNotFound
	}

	return nil
}

// collectFlights drains a result set into flight models.
func (r *Repository) collectFlights(rows pgx.Rows) ([]*model.Flight, error) {
	flights := make([]*model.Flight, 0)
	for rows.Next() {
		flight, err := r.scanFlight(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan flight: %w", err)
		}
		flights = append(flights, flight)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating flights: %w", err)
	}

	return flights, nil
}

// scanFlight scans a single flight row.
func (r *Repository) scanFlight(row pgx.Row) (*model.Flight, error) {
	var flight model.Flight
	err := row.Scan(
		&flight.ID,
		&flight.PassengerName,
		&flight.FlightNumber,
		&flight.AirlineID,
		&flight.AirlineName,
		&flight.DepartureCode,
		&flight.ArrivalCode,
		&flight.DepartureTime,
		&flight.ArrivalTime,
		&flight.OwnerID,
		&flight.CreatedAt,
		&flight.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &flight, nil
}
