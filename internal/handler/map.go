package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/flightboard/flightboard/internal/handler/dto"
	"github.com/flightboard/flightboard/internal/metrics"
	"github.com/flightboard/flightboard/internal/model"
	"github.com/flightboard/flightboard/internal/service"
	"github.com/flightboard/flightboard/internal/tracker"
)

// MapHandler serves the merged map-view flight list.
type MapHandler struct {
	tracker *tracker.Tracker
	flights *service.FlightService
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewMapHandler creates a new MapHandler.
func NewMapHandler(tr *tracker.Tracker, flights *service.FlightService, logger *slog.Logger, recorder metrics.Recorder) *MapHandler {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &MapHandler{
		tracker: tr,
		flights: flights,
		logger:  logger,
		metrics: recorder,
	}
}

// MapListResponse is the merged map-view list.
type MapListResponse struct {
	Data  []tracker.TrackedFlight `json:"data"`
	Count int                     `json:"count"`
}

// Flights handles GET /api/v1/map/flights.
// Merges live-feed flights with every user-submitted upcoming flight.
func (h *MapHandler) Flights(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	stored, err := h.flights.ListFlights(r.Context())
	if err != nil {
		h.logger.Error("internal_error", "error", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	list := make([]model.Flight, len(stored))
	for i, fl := range stored {
		list[i] = *fl
	}

	tracked, err := h.tracker.MapFlights(r.Context(), list)
	if err != nil {
		if errors.Is(err, tracker.ErrFeedUnavailable) || errors.Is(err, tracker.ErrFeedMalformed) {
			h.logger.Error("feed_error", "error", err)
			h.writeError(w, http.StatusServiceUnavailable, "FEED_UNAVAILABLE", "Flight feed is currently unavailable")
			return
		}
		h.logger.Error("internal_error", "error", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	h.metrics.ObserveMapBuildDuration(time.Since(start))

	writeJSON(w, http.StatusOK, MapListResponse{
		Data:  tracked,
		Count: len(tracked),
	})
}

// writeError writes an error response.
func (h *MapHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
