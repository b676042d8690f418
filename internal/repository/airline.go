package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/flightboard/flightboard/internal/model"
)

// ErrAirlineNotFound indicates no airline matched the lookup.
var ErrAirlineNotFound = errors.New("airline not found")

// ListAirlines retrieves the full airline reference listing.
func (r *Repository) ListAirlines(ctx context.Context) ([]*model.Airline, error) {
	query := `SELECT id, name FROM airlines ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list airlines: %w", err)
	}
	defer rows.Close()

	return collectAirlines(rows)
}

// SearchAirlinesByName retrieves airlines whose name starts with the
// given prefix, case-insensitively. Used for form autocomplete.
func (r *Repository) SearchAirlinesByName(ctx context.Context, prefix string, limit int) ([]*model.Airline, error) {
	if limit <= 0 {
		limit = 5
	}

	query := `
		SELECT id, name
		FROM airlines
		WHERE name ILIKE $1
		ORDER BY name
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, escapeLikePattern(prefix)+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search airlines: %w", err)
	}
	defer rows.Close()

	return collectAirlines(rows)
}

// GetAirlineByID retrieves an airline by its identifier.
// This is the explicit foreign-key resolution used when creating flights.
func (r *Repository) GetAirlineByID(ctx context.Context, id string) (*model.Airline, error) {
	query := `SELECT id, name FROM airlines WHERE id = $1`

	var airline model.Airline
	err := r.pool.QueryRow(ctx, query, id).Scan(&airline.ID, &airline.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAirlineNotFound
		}
		return nil, fmt.Errorf("failed to get airline by ID: %w", err)
	}

	return &airline, nil
}

// collectAirlines drains a result set into airline models.
func collectAirlines(rows pgx.Rows) ([]*model.Airline, error) {
	airlines := make([]*model.Airline, 0)
	for rows.Next() {
		var airline model.Airline
		if err := rows.Scan(&airline.ID, &airline.Name); err != nil {
			return nil, fmt.Errorf("failed to scan airline: %w", err)
		}
		airlines = append(airlines, &airline)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating airlines: %w", err)
	}

	return airlines, nil
}

// escapeLikePattern neutralizes LIKE wildcards in user input.
func escapeLikePattern(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
