package booking

import (
	"context"
	"fmt"

	"github.com/elson2121/Airline-Management-System/internal/metrics"
	"github.com/elson2121/Airline-Management-System/internal/validate"
	"github.com/elson2121/Airline-Management-System/shared/models"
	"github.com/sirupsen/logrus"
)

// Cancel removes the passenger from the flight roster, frees the seat and
// erases the booking, in that order. Payments are not refunded.
func (e *Engine) Cancel(ctx context.Context, bookingID string) (models.Booking, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, ok := e.ledger.FindByBookingID(bookingID)
	if !ok {
		return models.Booking{}, fmt.Errorf("booking %s: %w", bookingID, models.ErrBookingNotFound)
	}

	if fs, ok := e.flights[b.FlightNo]; ok {
		fs.roster.RemoveByIdentity(b.PassengerID)
		fs.seats.Release(b.Seat)
		e.notify(fs)
	}
	e.ledger.Cancel(b.ID)
	metrics.Cancellations.Inc()

	e.log.WithFields(logrus.Fields{
		"booking": b.ID,
		"flight":  b.FlightNo,
		"seat":    b.Seat,
	}).Info("Booking cancelled")
	return b, nil
}

// PostponeRequest moves BookingID to a new seat. VerifyPassengerID must
// match the id the booking was made under.
type PostponeRequest struct {
	BookingID         string
	VerifyPassengerID string
	Passenger         models.PassengerDraft
	Seats             SeatSource
}

// Postpone moves a booking to a new seat on the same flight and replaces the
// passenger details, keeping the booking id. The old seat is freed before
// the new one is chosen, so it can be picked again. That release is undone
// when no candidate can be reserved: the old seat is reserved again and the
// booking is left as it was.
func (e *Engine) Postpone(ctx context.Context, req PostponeRequest) (models.Booking, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, err := e.postpone(ctx, req)
	metrics.Postponements.WithLabelValues(metrics.Outcome(models.ErrorCode(err))).Inc()
	return b, err
}

func (e *Engine) postpone(ctx context.Context, req PostponeRequest) (models.Booking, error) {
	b, ok := e.ledger.FindByBookingID(req.BookingID)
	if !ok {
		return models.Booking{}, fmt.Errorf("booking %s: %w", req.BookingID, models.ErrBookingNotFound)
	}
	if req.VerifyPassengerID != b.PassengerID {
		return models.Booking{}, fmt.Errorf("booking %s: %w", b.ID, models.ErrVerificationFailed)
	}
	if err := validate.Draft(req.Passenger); err != nil {
		return models.Booking{}, err
	}
	fs, err := e.flightState(b.FlightNo)
	if err != nil {
		return models.Booking{}, err
	}
	if req.Passenger.ID != b.PassengerID && e.identityTaken(fs, req.Passenger.ID) {
		return models.Booking{}, fmt.Errorf("passenger %s on flight %s: %w", req.Passenger.ID, b.FlightNo, models.ErrDuplicateIdentity)
	}

	oldSeat := b.Seat
	fs.seats.Release(oldSeat)

	seat, err := e.pickSeat(ctx, fs, req.Seats)
	if err != nil {
		if _, rerr := fs.seats.Reserve(oldSeat); rerr != nil {
			e.log.WithError(rerr).WithField("seat", oldSeat).Error("Could not restore seat after failed postpone")
		}
		return models.Booking{}, err
	}

	now := e.clock.Now()
	p := models.Passenger{
		Name:         req.Passenger.Name,
		Passport:     req.Passenger.Passport,
		ID:           req.Passenger.ID,
		Contact:      req.Passenger.Contact,
		Seat:         seat,
		Destination:  fs.flight.Destination,
		RegisteredAt: now,
	}
	if err := fs.roster.Replace(b.PassengerID, p); err != nil {
		fs.seats.Release(seat)
		if _, rerr := fs.seats.Reserve(oldSeat); rerr != nil {
			e.log.WithError(rerr).WithField("seat", oldSeat).Error("Could not restore seat after failed postpone")
		}
		return models.Booking{}, fmt.Errorf("updating roster: %w", err)
	}

	b.PassengerID = p.ID
	b.Seat = seat
	b.BookedAt = now
	if err := e.ledger.Update(b); err != nil {
		return models.Booking{}, fmt.Errorf("updating ledger: %w", err)
	}
	e.notify(fs)

	e.log.WithFields(logrus.Fields{
		"booking":  b.ID,
		"flight":   b.FlightNo,
		"old_seat": oldSeat,
		"seat":     seat,
	}).Info("Booking postponed")
	return b, nil
}
