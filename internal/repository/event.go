package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/flightboard/flightboard/internal/model"
)

// FlightEventRepository provides database access for activity events.
type FlightEventRepository struct {
	repo *Repository
}

// NewFlightEventRepository creates a new FlightEventRepository.
func NewFlightEventRepository(repo *Repository) *FlightEventRepository {
	return &FlightEventRepository{repo: repo}
}

// BulkInsert inserts multiple events with idempotency via ON CONFLICT DO NOTHING.
// The Redis stream ID is the idempotency key, so redelivered batches are safe.
func (r *FlightEventRepository) BulkInsert(ctx context.Context, events []*model.FlightEvent) error {
	if len(events) == 0 {
		return nil
	}

	batch := &pgx.Batch{}

	query := `
		INSERT INTO flight_events (
			id, event_id, type, flight_id, user_id, occurred_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (event_id) DO NOTHING
	`

	for _, event := range events {
		batch.Queue(query,
			event.ID,
			event.EventID,
			event.Type,
			nullableString(event.FlightID),
			event.UserID,
			event.OccurredAt,
		)
	}

	results := r.repo.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(events); i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("batch insert event %d: %w", i, err)
		}
	}

	return nil
}

// CountEventsByType returns the number of recorded events per type.
// Used by readiness dashboards and tests.
func (r *FlightEventRepository) CountEventsByType(ctx context.Context) (map[string]int64, error) {
	rows, err := r.repo.pool.Query(ctx, `SELECT type, COUNT(*) FROM flight_events GROUP BY type`)
	if err != nil {
		return nil, fmt.Errorf("failed to count events: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var (
			eventType string
			count     int64
		)
		if err := rows.Scan(&eventType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan event count: %w", err)
		}
		counts[eventType] = count
	}

	return counts, rows.Err()
}

// nullableString converts empty strings to nil for nullable columns.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
