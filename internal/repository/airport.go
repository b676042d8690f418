package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/flightboard/flightboard/internal/model"
)

// ErrAirportNotFound indicates no airport matched the lookup.
var ErrAirportNotFound = errors.New("airport not found")

// GetAirportByCode retrieves an airport by its exact IATA code.
// This is the hot path for map coordinate resolution.
func (r *Repository) GetAirportByCode(ctx context.Context, code string) (*model.Airport, error) {
	query := `
		SELECT iata, name, latitude, longitude
		FROM airports
		WHERE iata = $1
	`

	var airport model.Airport
	err := r.pool.QueryRow(ctx, query, strings.ToUpper(code)).Scan(
		&airport.IATA,
		&airport.Name,
		&airport.Latitude,
		&airport.Longitude,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAirportNotFound
		}
		return nil, fmt.Errorf("failed to get airport by code: %w", err)
	}

	return &airport, nil
}

// SearchAirports retrieves airports matching a name prefix or an exact
// IATA code, case-insensitively.
func (r *Repository) SearchAirports(ctx context.Context, q string, limit int) ([]*model.Airport, error) {
	if limit <= 0 {
		limit = 5
	}

	query := `
		SELECT iata, name, latitude, longitude
		FROM airports
		WHERE name ILIKE $1 OR iata = $2
		ORDER BY iata
		LIMIT $3
	`

	rows, err := r.pool.Query(ctx, query, escapeLikePattern(q)+"%", strings.ToUpper(q), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search airports: %w", err)
	}
	defer rows.Close()

	airports := make([]*model.Airport, 0)
	for rows.Next() {
		var airport model.Airport
		if err := rows.Scan(&airport.IATA, &airport.Name, &airport.Latitude, &airport.Longitude); err != nil {
			return nil, fmt.Errorf("failed to scan airport: %w", err)
		}
		airports = append(airports, &airport)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating airports: %w", err)
	}

	return airports, nil
}
