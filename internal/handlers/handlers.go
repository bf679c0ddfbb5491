package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/elson2121/Airline-Management-System/internal/booking"
	"github.com/elson2121/Airline-Management-System/internal/service"
	"github.com/elson2121/Airline-Management-System/shared/models"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const (
	AdminPasswordHeader = "X-Admin-Password"
	PersistErrorHeader  = "X-Persist-Error"
)

// Handler contains HTTP handlers for the API
type Handler struct {
	bookingService service.BookingService
	log            *logrus.Entry
}

// NewHandler creates a new Handler instance
func NewHandler(bookingService service.BookingService, log *logrus.Entry) *Handler {
	return &Handler{
		bookingService: bookingService,
		log:            log.WithField("component", "http"),
	}
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, models.ErrorResponse{Error: message, Code: "bad_request"})
}

func (h *Handler) respondErr(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.WithError(err).WithField("path", r.URL.Path).Error("Request failed")
	}
	respondJSON(w, status, models.ErrorResponse{Error: err.Error(), Code: models.ErrorCode(err)})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrVerificationFailed):
		return http.StatusForbidden
	case errors.Is(err, models.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, models.ErrBookingNotFound),
		errors.Is(err, models.ErrFlightNotFound),
		errors.Is(err, models.ErrAircraftNotFound),
		errors.Is(err, models.ErrHoldNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrDuplicateIdentity),
		errors.Is(err, models.ErrSeatUnavailable),
		errors.Is(err, models.ErrFlightUnavailable),
		errors.Is(err, models.ErrFlightExists),
		errors.Is(err, models.ErrAircraftExists),
		errors.Is(err, models.ErrAircraftInUse),
		errors.Is(err, models.ErrUserCancelled):
		return http.StatusConflict
	case errors.Is(err, models.ErrInvalidPassenger),
		errors.Is(err, models.ErrInvalidInput),
		errors.Is(err, models.ErrInvalidSeatFormat),
		errors.Is(err, models.ErrSeatUnknown),
		errors.Is(err, models.ErrNoSeatCandidates):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrHoldsDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// failed writes the error response for a mutation and reports whether the
// request failed. A mutation that succeeded but could not be saved is not a
// failure; the save error is passed back in a header instead.
func (h *Handler) failed(w http.ResponseWriter, r *http.Request, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, service.ErrPersist) {
		w.Header().Set(PersistErrorHeader, err.Error())
		return false
	}
	h.respondErr(w, r, err)
	return true
}

// RequireAdmin rejects requests without the admin password header.
func (h *Handler) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.bookingService.Authorize(r.Header.Get(AdminPasswordHeader)); err != nil {
			h.respondErr(w, r, err)
			return
		}
		next(w, r)
	}
}

// GetFlights handles GET /api/flights
func (h *Handler) GetFlights(w http.ResponseWriter, r *http.Request) {
	flights := h.bookingService.Flights(r.Context(), r.URL.Query().Get("destination"))
	if flights == nil {
		flights = []models.Flight{}
	}
	respondJSON(w, http.StatusOK, flights)
}

// GetFlight handles GET /api/flights/{flightNo}
func (h *Handler) GetFlight(w http.ResponseWriter, r *http.Request) {
	flight, err := h.bookingService.Flight(r.Context(), mux.Vars(r)["flightNo"])
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, flight)
}

// GetFlightSeats handles GET /api/flights/{flightNo}/seats
func (h *Handler) GetFlightSeats(w http.ResponseWriter, r *http.Request) {
	seats, err := h.bookingService.SeatMap(r.Context(), mux.Vars(r)["flightNo"])
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, seats)
}

// CreateFlight handles POST /api/flights
func (h *Handler) CreateFlight(w http.ResponseWriter, r *http.Request) {
	var req models.Flight
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	flight, err := h.bookingService.AddFlight(r.Context(), req)
	if h.failed(w, r, err) {
		return
	}
	respondJSON(w, http.StatusCreated, flight)
}

// DeleteFlight handles DELETE /api/flights/{flightNo}
func (h *Handler) DeleteFlight(w http.ResponseWriter, r *http.Request) {
	flightNo := mux.Vars(r)["flightNo"]
	removed, err := h.bookingService.DeleteFlight(r.Context(), flightNo)
	if h.failed(w, r, err) {
		return
	}
	if removed == nil {
		removed = []models.Booking{}
	}
	respondJSON(w, http.StatusOK, models.DeleteFlightResponse{FlightNo: flightNo, CancelledBookings: removed})
}

// GetAircraft handles GET /api/aircraft
func (h *Handler) GetAircraft(w http.ResponseWriter, r *http.Request) {
	aircraft := h.bookingService.Aircraft(r.Context())
	if aircraft == nil {
		aircraft = []models.Aircraft{}
	}
	respondJSON(w, http.StatusOK, aircraft)
}

// CreateAircraft handles POST /api/aircraft
func (h *Handler) CreateAircraft(w http.ResponseWriter, r *http.Request) {
	var req models.Aircraft
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.bookingService.AddAircraft(r.Context(), req); err != nil {
		h.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, req)
}

// DeleteAircraft handles DELETE /api/aircraft/{model}
func (h *Handler) DeleteAircraft(w http.ResponseWriter, r *http.Request) {
	if err := h.bookingService.DeleteAircraft(r.Context(), mux.Vars(r)["model"]); err != nil {
		h.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Aircraft deleted"})
}

// CreateBooking handles POST /api/bookings
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FlightNo == "" {
		respondError(w, http.StatusBadRequest, "Flight number is required")
		return
	}
	if len(req.Seats) == 0 {
		respondError(w, http.StatusBadRequest, "At least one seat must be requested")
		return
	}

	res, err := h.bookingService.Book(r.Context(), booking.BookRequest{
		FlightNo:  req.FlightNo,
		Passenger: req.Passenger,
		Seats:     booking.Candidates(req.Seats...),
		Confirm:   booking.AutoConfirm(req.Confirm),
	})
	if h.failed(w, r, err) {
		return
	}
	respondJSON(w, http.StatusCreated, res)
}

// GetBookings handles GET /api/bookings
func (h *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	bookings := h.bookingService.Bookings(r.Context())
	if bookings == nil {
		bookings = []models.Booking{}
	}
	respondJSON(w, http.StatusOK, bookings)
}

// GetPassengerBookings handles GET /api/passengers/{id}/bookings
func (h *Handler) GetPassengerBookings(w http.ResponseWriter, r *http.Request) {
	views := h.bookingService.PassengerBookings(r.Context(), mux.Vars(r)["id"])
	if views == nil {
		views = []models.BookingView{}
	}
	respondJSON(w, http.StatusOK, views)
}

// CancelBooking handles DELETE /api/bookings/{bookingId}
func (h *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	b, err := h.bookingService.Cancel(r.Context(), mux.Vars(r)["bookingId"])
	if h.failed(w, r, err) {
		return
	}
	respondJSON(w, http.StatusOK, b)
}

// PostponeBooking handles POST /api/bookings/{bookingId}/postpone
func (h *Handler) PostponeBooking(w http.ResponseWriter, r *http.Request) {
	var req models.PostponeBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Seats) == 0 {
		respondError(w, http.StatusBadRequest, "At least one seat must be requested")
		return
	}

	b, err := h.bookingService.Postpone(r.Context(), booking.PostponeRequest{
		BookingID:         mux.Vars(r)["bookingId"],
		VerifyPassengerID: req.VerifyPassengerID,
		Passenger:         req.Passenger,
		Seats:             booking.Candidates(req.Seats...),
	})
	if h.failed(w, r, err) {
		return
	}
	respondJSON(w, http.StatusOK, b)
}

// CreateHold handles POST /api/holds
func (h *Handler) CreateHold(w http.ResponseWriter, r *http.Request) {
	var req models.BookingWorkflowInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FlightNo == "" || len(req.Seats) == 0 {
		respondError(w, http.StatusBadRequest, "Flight number and seats are required")
		return
	}

	id, err := h.bookingService.StartHold(r.Context(), req)
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusAccepted, models.HoldResponse{WorkflowID: id})
}

// ConfirmHold handles POST /api/holds/{workflowId}/confirm
func (h *Handler) ConfirmHold(w http.ResponseWriter, r *http.Request) {
	var req models.ConfirmHoldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	workflowID := mux.Vars(r)["workflowId"]
	if err := h.bookingService.ConfirmHold(r.Context(), workflowID, req.Confirmed); err != nil {
		h.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusAccepted, models.HoldResponse{WorkflowID: workflowID})
}

// GetHold handles GET /api/holds/{workflowId}
func (h *Handler) GetHold(w http.ResponseWriter, r *http.Request) {
	state, err := h.bookingService.HoldState(r.Context(), mux.Vars(r)["workflowId"])
	if err != nil {
		h.respondErr(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

// GetAccounts handles GET /api/accounts
func (h *Handler) GetAccounts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.bookingService.Accounts(r.Context()))
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}
