package booking

import (
	"context"
	"fmt"

	"github.com/elson2121/Airline-Management-System/internal/metrics"
	"github.com/elson2121/Airline-Management-System/internal/validate"
	"github.com/elson2121/Airline-Management-System/shared/models"
	"github.com/sirupsen/logrus"
)

type BookRequest struct {
	FlightNo  string
	Passenger models.PassengerDraft
	Seats     SeatSource

	// Confirm is asked only when the passenger has no prepaid account.
	// A nil Confirm declines.
	Confirm Confirmer
}

type HoldRequest struct {
	FlightNo  string
	Passenger models.PassengerDraft
	Seats     SeatSource
}

// Book runs a whole booking in one critical section: validate, hold a seat,
// resolve payment, commit. Any failure after the seat is held releases it
// again and leaves the ledger, the roster and the bank untouched.
func (e *Engine) Book(ctx context.Context, req BookRequest) (models.BookResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	res, err := e.book(ctx, req)
	metrics.Bookings.WithLabelValues(metrics.Outcome(models.ErrorCode(err))).Inc()
	return res, err
}

func (e *Engine) book(ctx context.Context, req BookRequest) (models.BookResult, error) {
	hold, err := e.holdSeat(ctx, HoldRequest{
		FlightNo:  req.FlightNo,
		Passenger: req.Passenger,
		Seats:     req.Seats,
	})
	if err != nil {
		return models.BookResult{}, err
	}

	confirmed := true
	if hold.RequiresConfirmation {
		fs := e.flights[hold.FlightNo]
		confirmed = req.Confirm != nil && req.Confirm.Confirm(ctx, fs.view(), hold.Amount)
	}
	return e.settleHold(hold.ID, confirmed)
}

// HoldSeat validates the request and reserves a seat without resolving
// payment. The seat stays taken until SettleHold or ReleaseHold.
func (e *Engine) HoldSeat(ctx context.Context, req HoldRequest) (models.Hold, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	hold, err := e.holdSeat(ctx, req)
	if err != nil {
		metrics.Bookings.WithLabelValues(metrics.Outcome(models.ErrorCode(err))).Inc()
	}
	return hold, err
}

func (e *Engine) holdSeat(ctx context.Context, req HoldRequest) (models.Hold, error) {
	fs, ok := e.flights[req.FlightNo]
	if !ok || fs.view().AvailableSeats <= 0 {
		return models.Hold{}, fmt.Errorf("flight %s: %w", req.FlightNo, models.ErrFlightUnavailable)
	}
	if err := validate.Draft(req.Passenger); err != nil {
		return models.Hold{}, err
	}
	if e.identityTaken(fs, req.Passenger.ID) {
		return models.Hold{}, fmt.Errorf("passenger %s on flight %s: %w", req.Passenger.ID, req.FlightNo, models.ErrDuplicateIdentity)
	}

	seat, err := e.pickSeat(ctx, fs, req.Seats)
	if err != nil {
		return models.Hold{}, err
	}

	hold := models.Hold{
		ID:                   e.newID(),
		FlightNo:             fs.flight.FlightNo,
		Seat:                 seat,
		Passenger:            req.Passenger,
		Amount:               fs.flight.Price,
		RequiresConfirmation: !e.bank.HasAccount(req.Passenger.Name),
		CreatedAt:            e.clock.Now(),
	}
	e.holds[hold.ID] = hold
	e.notify(fs)

	e.log.WithFields(logrus.Fields{
		"hold":   hold.ID,
		"flight": hold.FlightNo,
		"seat":   hold.Seat,
	}).Debug("Seat held")
	return hold, nil
}

// SettleHold resolves payment for a held seat and commits the booking.
// confirmed is the pay-on-confirm answer and is ignored for account holders,
// who are debited instead.
func (e *Engine) SettleHold(ctx context.Context, holdID string, confirmed bool) (models.BookResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	res, err := e.settleHold(holdID, confirmed)
	metrics.Bookings.WithLabelValues(metrics.Outcome(models.ErrorCode(err))).Inc()
	return res, err
}

func (e *Engine) settleHold(holdID string, confirmed bool) (models.BookResult, error) {
	hold, ok := e.holds[holdID]
	if !ok {
		return models.BookResult{}, fmt.Errorf("hold %s: %w", holdID, models.ErrHoldNotFound)
	}
	delete(e.holds, holdID)
	fs := e.flights[hold.FlightNo]
	metrics.HoldDuration.Observe(e.clock.Now().Sub(hold.CreatedAt).Seconds())

	name := hold.Passenger.Name
	switch {
	case !hold.RequiresConfirmation:
		if !e.bank.Debit(name, hold.Amount) {
			e.rollback(fs, hold, "insufficient_funds")
			return models.BookResult{}, fmt.Errorf("balance %.2f below fare %.2f: %w",
				e.bank.BalanceOf(name), hold.Amount, models.ErrInsufficientFunds)
		}
	case !confirmed:
		e.rollback(fs, hold, "user_cancelled")
		return models.BookResult{}, fmt.Errorf("hold %s: %w", holdID, models.ErrUserCancelled)
	}

	return e.commit(fs, hold)
}

func (e *Engine) commit(fs *flightState, hold models.Hold) (models.BookResult, error) {
	now := e.clock.Now()
	p := models.Passenger{
		Name:         hold.Passenger.Name,
		Passport:     hold.Passenger.Passport,
		ID:           hold.Passenger.ID,
		Contact:      hold.Passenger.Contact,
		Seat:         hold.Seat,
		Destination:  fs.flight.Destination,
		RegisteredAt: now,
	}
	if err := fs.roster.Add(p); err != nil {
		e.rollback(fs, hold, "roster")
		return models.BookResult{}, fmt.Errorf("adding passenger to roster: %w", err)
	}
	b := e.ledger.Create(fs.flight.FlightNo, p.ID, hold.Seat, true, now)

	res := models.BookResult{
		BookingID:  b.ID,
		FlightNo:   b.FlightNo,
		Seat:       b.Seat,
		Paid:       b.Paid,
		Amount:     hold.Amount,
		HasAccount: !hold.RequiresConfirmation,
	}
	if res.HasAccount {
		res.Balance = e.bank.BalanceOf(p.Name)
	}

	e.log.WithFields(logrus.Fields{
		"booking": b.ID,
		"flight":  b.FlightNo,
		"seat":    b.Seat,
	}).Info("Booking committed")
	return res, nil
}

// ReleaseHold gives a held seat back without booking it. reason labels the
// rollback; empty means "released".
func (e *Engine) ReleaseHold(holdID, reason string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if reason == "" {
		reason = "released"
	}

	hold, ok := e.holds[holdID]
	if !ok {
		return fmt.Errorf("hold %s: %w", holdID, models.ErrHoldNotFound)
	}
	delete(e.holds, holdID)
	e.rollback(e.flights[hold.FlightNo], hold, reason)
	return nil
}

func (e *Engine) rollback(fs *flightState, hold models.Hold, reason string) {
	fs.seats.Release(hold.Seat)
	metrics.Rollbacks.WithLabelValues(reason).Inc()
	e.notify(fs)

	e.log.WithFields(logrus.Fields{
		"flight": hold.FlightNo,
		"seat":   hold.Seat,
		"reason": reason,
	}).Info("Seat hold rolled back")
}
