package models

// CreateBookingRequest is the body of POST /api/bookings. Seats are tried in
// order until one can be reserved.
type CreateBookingRequest struct {
	FlightNo  string         `json:"flightNo"`
	Passenger PassengerDraft `json:"passenger"`
	Seats     []string       `json:"seats"`
	Confirm   bool           `json:"confirm"`
}

// PostponeBookingRequest is the body of POST /api/bookings/{bookingId}/postpone
type PostponeBookingRequest struct {
	VerifyPassengerID string         `json:"verifyPassengerId"`
	Passenger         PassengerDraft `json:"passenger"`
	Seats             []string       `json:"seats"`
}

type ConfirmHoldRequest struct {
	Confirmed bool `json:"confirmed"`
}

type HoldResponse struct {
	WorkflowID string `json:"workflowId"`
}

// DeleteFlightResponse lists the bookings erased with the flight
type DeleteFlightResponse struct {
	FlightNo          string    `json:"flightNo"`
	CancelledBookings []Booking `json:"cancelledBookings"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
