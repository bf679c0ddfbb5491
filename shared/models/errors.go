package models

import "errors"

var (
	ErrFlightUnavailable  = errors.New("flight unavailable")
	ErrDuplicateIdentity  = errors.New("passenger already booked on this flight")
	ErrSeatUnknown        = errors.New("seat does not exist on this aircraft")
	ErrSeatUnavailable    = errors.New("seat already booked")
	ErrInvalidSeatFormat  = errors.New("invalid seat format")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrUserCancelled      = errors.New("booking cancelled by user")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrVerificationFailed = errors.New("passenger verification failed")

	ErrInvalidPassenger = errors.New("invalid passenger details")
	ErrInvalidInput     = errors.New("invalid input")
	ErrFlightNotFound   = errors.New("flight not found")
	ErrFlightExists     = errors.New("flight already exists")
	ErrAircraftNotFound = errors.New("aircraft not found")
	ErrAircraftExists   = errors.New("aircraft already exists")
	ErrAircraftInUse    = errors.New("aircraft is in use by flights")
	ErrHoldNotFound     = errors.New("seat hold not found")
	ErrNoSeatCandidates = errors.New("no seat candidates left")
	ErrUnauthorized     = errors.New("unauthorized")
)

var errorCodes = []struct {
	err  error
	code string
}{
	{ErrFlightUnavailable, "flight_unavailable"},
	{ErrDuplicateIdentity, "duplicate_identity"},
	{ErrSeatUnknown, "seat_unknown"},
	{ErrSeatUnavailable, "seat_unavailable"},
	{ErrInvalidSeatFormat, "invalid_seat_format"},
	{ErrInsufficientFunds, "insufficient_funds"},
	{ErrUserCancelled, "user_cancelled"},
	{ErrBookingNotFound, "booking_not_found"},
	{ErrVerificationFailed, "verification_failed"},
	{ErrInvalidPassenger, "invalid_passenger"},
	{ErrInvalidInput, "invalid_input"},
	{ErrFlightNotFound, "flight_not_found"},
	{ErrFlightExists, "flight_exists"},
	{ErrAircraftNotFound, "aircraft_not_found"},
	{ErrAircraftExists, "aircraft_exists"},
	{ErrAircraftInUse, "aircraft_in_use"},
	{ErrHoldNotFound, "hold_not_found"},
	{ErrNoSeatCandidates, "no_seat_candidates"},
	{ErrUnauthorized, "unauthorized"},
}

// ErrorCode maps an error to a stable machine-readable code.
// Unknown errors map to "internal".
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return "internal"
}
