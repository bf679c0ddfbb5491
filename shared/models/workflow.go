package models

import "time"

// BookingWorkflowInput represents input for the booking workflow
type BookingWorkflowInput struct {
	FlightNo  string         `json:"flightNo"`
	Passenger PassengerDraft `json:"passenger"`
	Seats     []string       `json:"seats"`
}

// BookingWorkflowState represents the current state of the booking workflow
type BookingWorkflowState struct {
	Status        HoldStatus `json:"status"`
	HoldID        string     `json:"holdId,omitempty"`
	FlightNo      string     `json:"flightNo"`
	Seat          string     `json:"seat,omitempty"`
	Amount        float64    `json:"amount"`
	BookingID     string     `json:"bookingId,omitempty"`
	FailureReason string     `json:"failureReason,omitempty"`
	HoldExpiry    time.Time  `json:"holdExpiry,omitempty"`
	LastUpdated   time.Time  `json:"lastUpdated"`
}

type HoldStatus string

const (
	HoldStatusPending              HoldStatus = "pending"
	HoldStatusAwaitingConfirmation HoldStatus = "awaiting_confirmation"
	HoldStatusConfirmed            HoldStatus = "confirmed"
	HoldStatusFailed               HoldStatus = "failed"
	HoldStatusExpired              HoldStatus = "expired"
)

// BookingWorkflowName is the registered name of the hold workflow
const BookingWorkflowName = "BookingWorkflow"

// Signals for workflow communication
const (
	SignalConfirmPayment = "confirm-payment"
)

// ConfirmPaymentSignal carries the pay-on-confirm answer
type ConfirmPaymentSignal struct {
	Confirmed bool `json:"confirmed"`
}

// Queries for workflow state
const (
	QueryGetState = "get_state"
)

// Hold is a seat reserved by a booking attempt that has not been settled yet
type Hold struct {
	ID                   string         `json:"id"`
	FlightNo             string         `json:"flightNo"`
	Seat                 string         `json:"seat"`
	Passenger            PassengerDraft `json:"passenger"`
	Amount               float64        `json:"amount"`
	RequiresConfirmation bool           `json:"requiresConfirmation"`
	CreatedAt            time.Time      `json:"createdAt"`
}
