//go:build integration

package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/flightboard/flightboard/internal/testutil"
)

// ============================================================================
// Flight Repository Integration Tests
// ============================================================================

func TestIntegrationFlightRepository_CreateFlight(t *testing.T) {
	ctx, repo, ownerID := newFlightTestEnv(t)

	flight := testutil.NewTestFlight(t, ownerID)

	if err := repo.CreateFlight(ctx, flight); err != nil {
		t.Fatalf("CreateFlight failed: %v", err)
	}

	// Verify flight exists in DB with the airline name joined in
	retrieved, err := repo.GetFlightByID(ctx, flight.ID)
	if err != nil {
		t.Fatalf("GetFlightByID failed: %v", err)
	}

	if retrieved.PassengerName != flight.PassengerName {
		t.Errorf("PassengerName mismatch: got %q, want %q", retrieved.PassengerName, flight.PassengerName)
	}
	if retrieved.AirlineName == "" {
		t.Error("AirlineName should be resolved from the airlines table")
	}
	if retrieved.DepartureCode != "SFO" || retrieved.ArrivalCode != "JFK" {
		t.Errorf("route mismatch: got %s-%s", retrieved.DepartureCode, retrieved.ArrivalCode)
	}
	if retrieved.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestIntegrationFlightRepository_GetByID_NotFound(t *testing.T) {
	ctx, repo, _ := newFlightTestEnv(t)

	_, err := repo.GetFlightByID(ctx, "nonexistent-id")
	if !errors.Is(err, ErrFlightNotFound) {
		t.Errorf("Expected ErrFlightNotFound, got: %v", err)
	}
}

func TestIntegrationFlightRepository_ListFlightsByOwner(t *testing.T) {
	ctx, repo, ownerID := newFlightTestEnv(t)

	// Two flights for the owner, one for somebody else
	for i := 0; i < 2; i++ {
		flight := testutil.NewTestFlight(t, ownerID)
		flight.ID = testutil.UniqueID("flight")
		if err := repo.CreateFlight(ctx, flight); err != nil {
			t.Fatalf("CreateFlight failed: %v", err)
		}
	}

	other := testutil.NewTestUser(t, testutil.UniqueEmail("other"))
	if err := repo.CreateUser(ctx, other); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	stranger := testutil.NewTestFlight(t, other.ID)
	stranger.ID = testutil.UniqueID("flight")
	if err := repo.CreateFlight(ctx, stranger); err != nil {
		t.Fatalf("CreateFlight failed: %v", err)
	}

	flights, err := repo.ListFlightsByOwner(ctx, ownerID)
	if err != nil {
		t.Fatalf("ListFlightsByOwner failed: %v", err)
	}

	if len(flights) != 2 {
		t.Fatalf("Expected 2 flights for owner, got %d", len(flights))
	}
	for _, f := range flights {
		if f.OwnerID != ownerID {
			t.Errorf("Flight %s owned by %s, want %s", f.ID, f.OwnerID, ownerID)
		}
	}

	all, err := repo.ListFlights(ctx)
	if err != nil {
		t.Fatalf("ListFlights failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 flights total, got %d", len(all))
	}
}

func TestIntegrationFlightRepository_ListFlights_OrderedByDeparture(t *testing.T) {
	ctx, repo, ownerID := newFlightTestEnv(t)

	late := testutil.NewTestFlight(t, ownerID)
	late.ID = testutil.UniqueID("late")
	late.DepartureTime = late.DepartureTime.Add(72 * time.Hour)
	late.ArrivalTime = late.ArrivalTime.Add(72 * time.Hour)

	early := testutil.NewTestFlight(t, ownerID)
	early.ID = testutil.UniqueID("early")

	// Insert out of order
	if err := repo.CreateFlight(ctx, late); err != nil {
		t.Fatalf("CreateFlight failed: %v", err)
	}
	if err := repo.CreateFlight(ctx, early); err != nil {
		t.Fatalf("CreateFlight failed: %v", err)
	}

	flights, err := repo.ListFlights(ctx)
	if err != nil {
		t.Fatalf("ListFlights failed: %v", err)
	}

	if len(flights) != 2 {
		t.Fatalf("Expected 2 flights, got %d", len(flights))
	}
	if flights[0].ID != early.ID {
		t.Errorf("Expected earliest departure first, got %s", flights[0].ID)
	}
}

func TestIntegrationFlightRepository_DeleteFlight(t *testing.T) {
	ctx, repo, ownerID := newFlightTestEnv(t)

	flight := testutil.NewTestFlight(t, ownerID)
	if err := repo.CreateFlight(ctx, flight); err != nil {
		t.Fatalf("CreateFlight failed: %v", err)
	}

	if err := repo.DeleteFlight(ctx, flight.ID, ownerID); err != nil {
		t.Fatalf("DeleteFlight failed: %v", err)
	}

	_, err := repo.GetFlightByID(ctx, flight.ID)
	if !errors.Is(err, ErrFlightNotFound) {
		t.Errorf("Expected ErrFlightNotFound after delete, got: %v", err)
	}
}

func TestIntegrationFlightRepository_DeleteFlight_NotFound(t *testing.T) {
	ctx, repo, ownerID := newFlightTestEnv(t)

	err := repo.DeleteFlight(ctx, "nonexistent-id", ownerID)
	if !errors.Is(err, ErrFlightNotFound) {
		t.Errorf("Expected ErrFlightNotFound, got: %v", err)
	}
}

func TestIntegrationFlightRepository_DeleteFlight_WrongOwner(t *testing.T) {
	ctx, repo, ownerID := newFlightTestEnv(t)

	flight := testutil.NewTestFlight(t, ownerID)
	if err := repo.CreateFlight(ctx, flight); err != nil {
		t.Fatalf("CreateFlight failed: %v", err)
	}

	other := testutil.NewTestUser(t, testutil.UniqueEmail("intruder"))
	if err := repo.CreateUser(ctx, other); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	err := repo.DeleteFlight(ctx, flight.ID, other.ID)
	if !errors.Is(err, ErrNotFlightOwner) {
		t.Errorf("Expected ErrNotFlightOwner, got: %v", err)
	}

	// Flight must survive the failed delete
	if _, err := repo.GetFlightByID(ctx, flight.ID); err != nil {
		t.Errorf("Flight should still exist after failed delete: %v", err)
	}
}

// ============================================================================
// Reference Data Integration Tests
// ============================================================================

func TestIntegrationReference_AirlinesSeeded(t *testing.T) {
	ctx, repo, _ := newFlightTestEnv(t)

	airlines, err := repo.ListAirlines(ctx)
	if err != nil {
		t.Fatalf("ListAirlines failed: %v", err)
	}
	if len(airlines) == 0 {
		t.Fatal("Expected seeded airlines, got none")
	}

	airline, err := repo.GetAirlineByID(ctx, "AL011")
	if err != nil {
		t.Fatalf("GetAirlineByID failed: %v", err)
	}
	if airline.Name == "" {
		t.Error("Airline name should be set")
	}
}

func TestIntegrationReference_AirportLookup(t *testing.T) {
	ctx, repo, _ := newFlightTestEnv(t)

	airport, err := repo.GetAirportByCode(ctx, "SFO")
	if err != nil {
		t.Fatalf("GetAirportByCode failed: %v", err)
	}
	if airport.Latitude == 0 || airport.Longitude == 0 {
		t.Error("Airport coordinates should be set")
	}

	_, err = repo.GetAirportByCode(ctx, "ZZZ")
	if !errors.Is(err, ErrAirportNotFound) {
		t.Errorf("Expected ErrAirportNotFound, got: %v", err)
	}
}

// ============================================================================
// Test Environment Setup
// ============================================================================

func newFlightTestEnv(t *testing.T) (context.Context, *Repository, string) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	dbURL := testutil.RequireEnv(t, "DATABASE_URL")

	repo, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		_ = unlock()
	})

	// flights references users and airlines, so rebuild bottom-up
	if err := testutil.ResetUsersSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset users schema: %v", err)
	}
	if err := testutil.ResetReferenceSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset reference schema: %v", err)
	}
	if err := testutil.ResetFlightsSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset flights schema: %v", err)
	}

	owner := testutil.NewTestUser(t, testutil.UniqueEmail("owner"))
	if err := repo.CreateUser(ctx, owner); err != nil {
		t.Fatalf("create owner: %v", err)
	}

	return ctx, repo, owner.ID
}
