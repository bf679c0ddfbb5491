package activities

import (
	"context"
	"errors"

	"github.com/elson2121/Airline-Management-System/internal/booking"
	"github.com/elson2121/Airline-Management-System/internal/service"
	"github.com/elson2121/Airline-Management-System/shared/models"
	"go.temporal.io/sdk/activity"
)

// Registered activity names
const (
	HoldSeatActivity    = "HoldSeat"
	SettleHoldActivity  = "SettleHold"
	ReleaseHoldActivity = "ReleaseHold"
)

// Bookings is the part of the booking service the activities drive.
type Bookings interface {
	HoldSeat(ctx context.Context, req booking.HoldRequest) (models.Hold, error)
	SettleHold(ctx context.Context, holdID string, confirmed bool) (models.BookResult, error)
	ReleaseHold(ctx context.Context, holdID, reason string) error
}

type HoldSeatInput struct {
	FlightNo  string                `json:"flightNo"`
	Passenger models.PassengerDraft `json:"passenger"`
	Seats     []string              `json:"seats"`
}

// HoldSeatOutput reports business failures in Error rather than as an
// activity error, so they are never retried.
type HoldSeatOutput struct {
	Success bool        `json:"success"`
	Hold    models.Hold `json:"hold"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

type SettleHoldInput struct {
	HoldID    string `json:"holdId"`
	Confirmed bool   `json:"confirmed"`
}

type SettleHoldOutput struct {
	Success bool              `json:"success"`
	Result  models.BookResult `json:"result"`
	Error   string            `json:"error,omitempty"`
	Message string            `json:"message,omitempty"`
}

type ReleaseHoldInput struct {
	HoldID string `json:"holdId"`
	Reason string `json:"reason"`
}

type Activities struct {
	bookings Bookings
}

func NewActivities(bookings Bookings) *Activities {
	return &Activities{bookings: bookings}
}

// businessFailure reports whether err is one of the engine's own rejections
// as opposed to an infrastructure problem worth retrying.
func businessFailure(err error) bool {
	return models.ErrorCode(err) != "internal"
}

// HoldSeat activity - reserves the first acceptable seat for the passenger
func (a *Activities) HoldSeat(ctx context.Context, input HoldSeatInput) (*HoldSeatOutput, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Holding seat", "flightNo", input.FlightNo, "seats", input.Seats)

	hold, err := a.bookings.HoldSeat(ctx, booking.HoldRequest{
		FlightNo:  input.FlightNo,
		Passenger: input.Passenger,
		Seats:     booking.Candidates(input.Seats...),
	})
	if err != nil {
		if !businessFailure(err) {
			return nil, err
		}
		logger.Info("Seat hold rejected", "error", err)
		return &HoldSeatOutput{Error: models.ErrorCode(err), Message: err.Error()}, nil
	}

	logger.Info("Seat held", "holdId", hold.ID, "seat", hold.Seat)
	return &HoldSeatOutput{Success: true, Hold: hold}, nil
}

// SettleHold activity - resolves payment for a hold and commits the booking
func (a *Activities) SettleHold(ctx context.Context, input SettleHoldInput) (*SettleHoldOutput, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Settling hold", "holdId", input.HoldID, "confirmed", input.Confirmed)

	res, err := a.bookings.SettleHold(ctx, input.HoldID, input.Confirmed)
	switch {
	case errors.Is(err, service.ErrPersist):
		logger.Warn("Booking committed but not saved", "error", err)
	case err != nil:
		if !businessFailure(err) {
			return nil, err
		}
		logger.Info("Hold settled without booking", "error", err)
		return &SettleHoldOutput{Error: models.ErrorCode(err), Message: err.Error()}, nil
	}

	logger.Info("Booking committed", "bookingId", res.BookingID)
	return &SettleHoldOutput{Success: true, Result: res}, nil
}

// ReleaseHold activity - gives the seat back. A hold that is already gone
// counts as released.
func (a *Activities) ReleaseHold(ctx context.Context, input ReleaseHoldInput) error {
	logger := activity.GetLogger(ctx)
	logger.Info("Releasing hold", "holdId", input.HoldID, "reason", input.Reason)

	err := a.bookings.ReleaseHold(ctx, input.HoldID, input.Reason)
	if errors.Is(err, models.ErrHoldNotFound) {
		return nil
	}
	return err
}
