package models

import "time"

// Passenger is a traveller holding a seat under exactly one booking
type Passenger struct {
	Name         string    `json:"name"`
	Passport     string    `json:"passport"`
	ID           string    `json:"id"`
	Contact      string    `json:"contact"`
	Seat         string    `json:"seat"`
	Destination  string    `json:"destination"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// PassengerDraft holds the identity fields collected before a seat is chosen
type PassengerDraft struct {
	Name     string `json:"name"`
	Passport string `json:"passport"`
	ID       string `json:"id"`
	Contact  string `json:"contact"`
}

// Booking links a flight, a passenger identity and a seat
type Booking struct {
	ID          string    `json:"id"`
	FlightNo    string    `json:"flightNo"`
	PassengerID string    `json:"passengerId"`
	Seat        string    `json:"seat"`
	BookedAt    time.Time `json:"bookedAt"`
	Paid        bool      `json:"paid"`
}

// BankAccount is a named prepaid balance
type BankAccount struct {
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
}

// BookResult is returned by a committed booking
type BookResult struct {
	BookingID  string  `json:"bookingId"`
	FlightNo   string  `json:"flightNo"`
	Seat       string  `json:"seat"`
	Paid       bool    `json:"paid"`
	Amount     float64 `json:"amount"`
	HasAccount bool    `json:"hasAccount"`

	// Balance is the account balance after the debit, zero for pay-on-confirm bookings.
	Balance float64 `json:"balance"`
}

// BookingView is a booking joined with its passenger record
type BookingView struct {
	Booking   Booking   `json:"booking"`
	Passenger Passenger `json:"passenger"`
	Flight    Flight    `json:"flight"`
}

// Snapshot is the full persisted state: what gets rewritten on every save
type Snapshot struct {
	Flights    []Flight    `json:"flights"`
	Passengers []Passenger `json:"passengers"`
	Bookings   []Booking   `json:"bookings"`
}
