package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/flightboard/flightboard/internal/auth"
	"github.com/flightboard/flightboard/internal/handler/dto"
	"github.com/flightboard/flightboard/internal/model"
	"github.com/flightboard/flightboard/internal/query"
	"github.com/flightboard/flightboard/internal/service"
)

// FlightHandler handles HTTP requests for flight operations.
type FlightHandler struct {
	svc    *service.FlightService
	logger *slog.Logger
}

// NewFlightHandler creates a new FlightHandler.
func NewFlightHandler(svc *service.FlightService, logger *slog.Logger) *FlightHandler {
	return &FlightHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /api/v1/flights.
func (h *FlightHandler) Create(w http.ResponseWriter, r *http.Request) {
	session := auth.MustSessionFromContext(r.Context())

	var req dto.CreateFlightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	flight, err := h.svc.CreateFlight(r.Context(), service.CreateFlightInput{
		PassengerName: req.PassengerName,
		FlightNumber:  req.FlightNumber,
		AirlineID:     req.AirlineID,
		DepartureCode: req.DepartureAirportCode,
		ArrivalCode:   req.ArrivalAirportCode,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
		OwnerID:       session.UserID,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("flight_created",
		"flight_id", flight.ID,
		"owner_id", flight.OwnerID,
		"route", flight.DepartureCode+"-"+flight.ArrivalCode,
	)

	writeJSON(w, http.StatusCreated, dto.ToFlightResponse(flight))
}

// List handles GET /api/v1/flights.
// Sorting, filtering, and search run over the full list on every
// request; the parameters mirror the client's view state.
func (h *FlightHandler) List(w http.ResponseWriter, r *http.Request) {
	flights, err := h.svc.ListFlights(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.writeFlightList(w, r, flights)
}

// ListMine handles GET /api/v1/flights/mine.
func (h *FlightHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	session := auth.MustSessionFromContext(r.Context())

	flights, err := h.svc.ListFlightsForUser(r.Context(), session.UserID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.writeFlightList(w, r, flights)
}

// Delete handles DELETE /api/v1/flights/{id}.
func (h *FlightHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session := auth.MustSessionFromContext(r.Context())

	id := chi.URLParam(r, "id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "MISSING_ID", "Flight ID is required")
		return
	}

	if err := h.svc.DeleteFlight(r.Context(), id, session.UserID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("flight_deleted", "flight_id", id, "owner_id", session.UserID)

	w.WriteHeader(http.StatusNoContent)
}

// writeFlightList applies the view parameters and writes the result.
func (h *FlightHandler) writeFlightList(w http.ResponseWriter, r *http.Request, flights []*model.Flight) {
	params := r.URL.Query()

	sortKey, ok := query.ParseSortKey(params.Get("sort"))
	if !ok {
		h.writeError(w, http.StatusBadRequest, "INVALID_SORT", "Sort must be departure, arrival, or duration")
		return
	}
	order, ok := query.ParseOrder(params.Get("order"))
	if !ok {
		h.writeError(w, http.StatusBadRequest, "INVALID_ORDER", "Order must be asc or desc")
		return
	}

	filter := query.Filter{
		Passenger: params.Get("passenger"),
		Airline:   params.Get("airline"),
		From:      params.Get("from"),
		To:        params.Get("to"),
	}

	if d := params.Get("departure_date"); d != "" {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "INVALID_DATE", "Dates must be YYYY-MM-DD")
			return
		}
		filter.DepartureDate = t
	}
	if d := params.Get("arrival_date"); d != "" {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "INVALID_DATE", "Dates must be YYYY-MM-DD")
			return
		}
		filter.ArrivalDate = t
	}

	// Filter, search, then sort. All three are pure, so view state
	// differences never leak between requests.
	list := make([]model.Flight, len(flights))
	for i, fl := range flights {
		list[i] = *fl
	}

	list = filter.Apply(list)
	list = query.Search(list, params.Get("search"))
	list = query.Sort(list, sortKey, order)

	writeJSON(w, http.StatusOK, dto.ToFlightListResponse(list))
}

// handleServiceError maps service errors to HTTP responses.
func (h *FlightHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrPassengerRequired):
		h.writeError(w, http.StatusBadRequest, "PASSENGER_REQUIRED", "Passenger name is required")
	case errors.Is(err, service.ErrPassengerNameTooLong):
		h.writeError(w, http.StatusBadRequest, "PASSENGER_NAME_TOO_LONG", "Passenger name exceeds maximum length")
	case errors.Is(err, service.ErrInvalidFlightNumber):
		h.writeError(w, http.StatusBadRequest, "INVALID_FLIGHT_NUMBER", "Flight number must be a positive integer")
	case errors.Is(err, service.ErrInvalidAirportCode):
		h.writeError(w, http.StatusBadRequest, "INVALID_AIRPORT_CODE", "Airport codes must be 3 letters")
	case errors.Is(err, service.ErrSameAirports):
		h.writeError(w, http.StatusBadRequest, "SAME_AIRPORTS", "Departure and arrival airports must differ")
	case errors.Is(err, service.ErrTimestampsRequired):
		h.writeError(w, http.StatusBadRequest, "TIMESTAMPS_REQUIRED", "Departure and arrival times are required")
	case errors.Is(err, service.ErrArrivalNotAfter):
		h.writeError(w, http.StatusUnprocessableEntity, "ARRIVAL_NOT_AFTER_DEPARTURE", "Arrival time must be after departure time")
	case errors.Is(err, service.ErrUnknownAirline):
		h.writeError(w, http.StatusUnprocessableEntity, "UNKNOWN_AIRLINE", "Airline not found")
	case errors.Is(err, service.ErrFlightNotFound):
		h.writeError(w, http.StatusNotFound, "FLIGHT_NOT_FOUND", "Flight not found")
	case errors.Is(err, service.ErrNotFlightOwner):
		h.writeError(w, http.StatusForbidden, "NOT_FLIGHT_OWNER", "Flight belongs to another user")
	default:
		h.logger.Error("internal_error", "error", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// writeError writes an error response.
func (h *FlightHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
