package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/flightboard/flightboard/internal/handler/dto"
	"github.com/flightboard/flightboard/internal/service"
)

// ReferenceHandler handles HTTP requests for airline and airport lookups.
type ReferenceHandler struct {
	svc    *service.ReferenceService
	logger *slog.Logger
}

// NewReferenceHandler creates a new ReferenceHandler.
func NewReferenceHandler(svc *service.ReferenceService, logger *slog.Logger) *ReferenceHandler {
	return &ReferenceHandler{
		svc:    svc,
		logger: logger,
	}
}

// Airlines handles GET /api/v1/airlines.
// Without ?q= it returns the full listing; with ?q= a name-prefix search.
func (h *ReferenceHandler) Airlines(w http.ResponseWriter, r *http.Request) {
	airlines, err := h.svc.SearchAirlines(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToAirlineListResponse(airlines))
}

// Airports handles GET /api/v1/airports.
// Matches a name prefix or an exact IATA code.
func (h *ReferenceHandler) Airports(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_QUERY", "Query parameter q is required")
		return
	}

	airports, err := h.svc.SearchAirports(r.Context(), q)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToAirportListResponse(airports))
}

// AirportLocation handles GET /api/v1/airports/{code}/location.
func (h *ReferenceHandler) AirportLocation(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	airport, err := h.svc.ResolveAirport(r.Context(), code)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.LocationResponse{
		IATA:      airport.IATA,
		Latitude:  airport.Latitude,
		Longitude: airport.Longitude,
	})
}

// handleServiceError maps service errors to HTTP responses.
func (h *ReferenceHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrAirportNotFound):
		h.writeError(w, http.StatusNotFound, "AIRPORT_NOT_FOUND", "Airport not found")
	default:
		h.logger.Error("internal_error", "error", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// writeError writes an error response.
func (h *ReferenceHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
