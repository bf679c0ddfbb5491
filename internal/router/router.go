package router

import (
	"net/http"

	"github.com/elson2121/Airline-Management-System/internal/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter creates and configures the HTTP router. ws serves the seat
// update feed; middlewares wrap every API route.
func SetupRouter(h *handlers.Handler, ws http.HandlerFunc, middlewares ...mux.MiddlewareFunc) *mux.Router {
	r := mux.NewRouter()

	// CORS middleware
	r.Use(corsMiddleware)

	// API routes
	api := r.PathPrefix("/api").Subrouter()
	for _, mw := range middlewares {
		api.Use(mw)
	}

	// Flights
	api.HandleFunc("/flights", h.GetFlights).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/flights", h.RequireAdmin(h.CreateFlight)).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/flights/{flightNo}", h.GetFlight).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/flights/{flightNo}", h.RequireAdmin(h.DeleteFlight)).Methods(http.MethodDelete, http.MethodOptions)
	api.HandleFunc("/flights/{flightNo}/seats", h.GetFlightSeats).Methods(http.MethodGet, http.MethodOptions)

	// Aircraft
	api.HandleFunc("/aircraft", h.GetAircraft).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/aircraft", h.RequireAdmin(h.CreateAircraft)).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/aircraft/{model}", h.RequireAdmin(h.DeleteAircraft)).Methods(http.MethodDelete, http.MethodOptions)

	// Bookings
	api.HandleFunc("/bookings", h.CreateBooking).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/bookings", h.RequireAdmin(h.GetBookings)).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/bookings/{bookingId}", h.CancelBooking).Methods(http.MethodDelete, http.MethodOptions)
	api.HandleFunc("/bookings/{bookingId}/postpone", h.PostponeBooking).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/passengers/{id}/bookings", h.GetPassengerBookings).Methods(http.MethodGet, http.MethodOptions)

	// Seat holds
	api.HandleFunc("/holds", h.CreateHold).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/holds/{workflowId}", h.GetHold).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/holds/{workflowId}/confirm", h.ConfirmHold).Methods(http.MethodPost, http.MethodOptions)

	api.HandleFunc("/accounts", h.GetAccounts).Methods(http.MethodGet, http.MethodOptions)

	// WebSocket for real-time updates
	api.HandleFunc("/flights/{flightNo}/ws", ws)

	// Health check and metrics
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Idempotency-Key, X-Admin-Password")
		w.Header().Set("Access-Control-Expose-Headers", "X-Persist-Error")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
