package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/flightboard/flightboard/internal/cache"
	"github.com/flightboard/flightboard/internal/metrics"
	"github.com/flightboard/flightboard/internal/model"
	"github.com/flightboard/flightboard/internal/repository"
)

// Reference service errors.
var (
	ErrAirportNotFound = errors.New("airport not found")
)

var iataCodeRegex = regexp.MustCompile(`^[A-Za-z]{3}$`)

// DefaultSearchLimit caps prefix-search result sets.
const DefaultSearchLimit = 5

// ReferenceService serves airline and airport lookups. Airport reads
// go through a Redis cache since the map view hits them in bursts.
type ReferenceService struct {
	repo    *repository.Repository
	cache   *cache.Cache
	metrics metrics.Recorder
}

// NewReferenceService creates a new ReferenceService.
func NewReferenceService(repo *repository.Repository, cache *cache.Cache, recorder metrics.Recorder) *ReferenceService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ReferenceService{
		repo:    repo,
		cache:   cache,
		metrics: recorder,
	}
}

// ListAirlines returns the full airline reference list.
func (s *ReferenceService) ListAirlines(ctx context.Context) ([]*model.Airline, error) {
	airlines, err := s.repo.ListAirlines(ctx)
	if err != nil {
		return nil, fmt.Errorf("list airlines: %w", err)
	}
	return airlines, nil
}

// SearchAirlines returns airlines whose name starts with the prefix.
// An empty prefix returns the full listing.
func (s *ReferenceService) SearchAirlines(ctx context.Context, prefix string) ([]*model.Airline, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return s.ListAirlines(ctx)
	}

	airlines, err := s.repo.SearchAirlinesByName(ctx, prefix, DefaultSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("search airlines: %w", err)
	}
	return airlines, nil
}

// SearchAirports returns airports matching a name prefix or exact code.
func (s *ReferenceService) SearchAirports(ctx context.Context, q string) ([]*model.Airport, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, nil
	}

	airports, err := s.repo.SearchAirports(ctx, q, DefaultSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("search airports: %w", err)
	}
	return airports, nil
}

// ResolveAirport looks up one airport by exact IATA code, cache first.
func (s *ReferenceService) ResolveAirport(ctx context.Context, code string) (*model.Airport, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !iataCodeRegex.MatchString(code) {
		return nil, ErrAirportNotFound
	}

	cached, err := s.cache.GetAirport(ctx, code)
	if err == nil {
		airport, convErr := cached.ToAirport(code)
		if convErr == nil {
			s.metrics.IncAirportCacheHit()
			return airport, nil
		}
		// Corrupt entry, fall through to the database.
	}

	// Known-missing codes short-circuit before hitting Postgres.
	if negative, negErr := s.cache.IsAirportNegative(ctx, code); negErr == nil && negative {
		s.metrics.IncAirportCacheHit()
		return nil, ErrAirportNotFound
	}

	s.metrics.IncAirportCacheMiss()

	airport, err := s.repo.GetAirportByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrAirportNotFound) {
			// Cache failures here only cost a future lookup.
			_ = s.cache.SetAirportNegative(ctx, code)
			return nil, ErrAirportNotFound
		}
		return nil, fmt.Errorf("lookup airport: %w", err)
	}

	_ = s.cache.SetAirport(ctx, code, airport.ToCachedAirport())
	return airport, nil
}
