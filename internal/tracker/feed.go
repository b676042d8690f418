// Package tracker merges the live flight feed with user-submitted
// upcoming flights into one display-ready list for the map view.
package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Feed loading errors.
var (
	ErrFeedUnavailable = errors.New("flight feed unavailable")
	ErrFeedMalformed   = errors.New("flight feed malformed")
)

// maxFeedBytes caps how much feed data we read from a remote source.
const maxFeedBytes = 32 << 20 // 32 MB

// feedEnvelope is the top-level feed document.
type feedEnvelope struct {
	Data []ActiveRecord `json:"data"`
}

// ActiveRecord is one raw record from the live-position feed.
type ActiveRecord struct {
	FlightDate   string       `json:"flight_date"`
	FlightStatus string       `json:"flight_status"`
	Departure    FeedEndpoint `json:"departure"`
	Arrival      FeedEndpoint `json:"arrival"`
	Airline      FeedAirline  `json:"airline"`
	Flight       FeedFlight   `json:"flight"`
	Live         *FeedLive    `json:"live"`
}

// FeedEndpoint is the departure or arrival block of a feed record.
type FeedEndpoint struct {
	Airport   string `json:"airport"`
	IATA      string `json:"iata"`
	Scheduled string `json:"scheduled"`
}

// FeedAirline is the airline block of a feed record.
type FeedAirline struct {
	Name string `json:"name"`
	IATA string `json:"iata"`
}

// FeedFlight is the flight-identity block of a feed record.
type FeedFlight struct {
	Number string `json:"number"`
	IATA   string `json:"iata"`
}

// FeedLive carries live-position telemetry. Pointers distinguish a
// present-but-null field from zero.
type FeedLive struct {
	Updated         string   `json:"updated"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	Altitude        float64  `json:"altitude"`
	Direction       float64  `json:"direction"`
	SpeedHorizontal float64  `json:"speed_horizontal"`
	SpeedVertical   float64  `json:"speed_vertical"`
	IsGround        bool     `json:"is_ground"`
}

// HasPosition reports whether the record carries a plottable position.
func (r *ActiveRecord) HasPosition() bool {
	return r.Live != nil && r.Live.Latitude != nil && r.Live.Longitude != nil
}

// FeedLoader reads the active-flight dataset from a local file or a
// remote URL. Exactly one of path and url should be set; path wins if
// both are.
type FeedLoader struct {
	path   string
	url    string
	client *http.Client
}

// NewFeedLoader creates a feed loader. fetchTimeout applies to remote
// fetches only.
func NewFeedLoader(path, url string, fetchTimeout time.Duration) *FeedLoader {
	return &FeedLoader{
		path: path,
		url:  url,
		client: &http.Client{
			Timeout: fetchTimeout,
		},
	}
}

// Load reads and decodes the feed. A loader with no source configured
// yields an empty feed rather than an error, so a deployment without a
// live feed still serves the user-submitted flights on the map.
func (l *FeedLoader) Load(ctx context.Context) ([]ActiveRecord, error) {
	if l.path == "" && l.url == "" {
		return nil, nil
	}

	raw, err := l.read(ctx)
	if err != nil {
		return nil, err
	}

	var envelope feedEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedMalformed, err)
	}

	return envelope.Data, nil
}

func (l *FeedLoader) read(ctx context.Context) ([]byte, error) {
	if l.path != "" {
		raw, err := os.ReadFile(l.path)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrFeedUnavailable, l.path, err)
		}
		return raw, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrFeedUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %v", ErrFeedUnavailable, l.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: fetch %s: status %d", ErrFeedUnavailable, l.url, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrFeedUnavailable, err)
	}

	return raw, nil
}
