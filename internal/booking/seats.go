package booking

import (
	"context"

	"github.com/elson2121/Airline-Management-System/internal/metrics"
	"github.com/elson2121/Airline-Management-System/shared/models"
	"github.com/sirupsen/logrus"
)

// SeatSource supplies seat choices one at a time, the way a passenger
// re-enters a seat after a rejection. Next returns false once the source
// has nothing more to offer.
type SeatSource interface {
	Next(ctx context.Context) (string, bool)
	Rejected(seat string, err error)
}

type candidateList struct {
	seats []string
	pos   int
}

// Candidates returns a SeatSource that offers seats in order and ignores
// rejections.
func Candidates(seats ...string) SeatSource {
	return &candidateList{seats: seats}
}

func (c *candidateList) Next(context.Context) (string, bool) {
	if c.pos >= len(c.seats) {
		return "", false
	}
	seat := c.seats[c.pos]
	c.pos++
	return seat, true
}

func (c *candidateList) Rejected(string, error) {}

// Confirmer answers the pay-on-confirm question for passengers without a
// prepaid account.
type Confirmer interface {
	Confirm(ctx context.Context, flight models.Flight, amount float64) bool
}

type ConfirmFunc func(ctx context.Context, flight models.Flight, amount float64) bool

func (f ConfirmFunc) Confirm(ctx context.Context, flight models.Flight, amount float64) bool {
	return f(ctx, flight, amount)
}

// AutoConfirm is a Confirmer that always gives the same answer.
type AutoConfirm bool

func (a AutoConfirm) Confirm(context.Context, models.Flight, float64) bool {
	return bool(a)
}

// pickSeat pulls candidates from src until one can be reserved. When the
// source runs dry the last rejection is returned and nothing is reserved.
func (e *Engine) pickSeat(ctx context.Context, fs *flightState, src SeatSource) (string, error) {
	if src == nil {
		return "", models.ErrNoSeatCandidates
	}
	last := models.ErrNoSeatCandidates
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		candidate, ok := src.Next(ctx)
		if !ok {
			return "", last
		}
		seat, err := fs.seats.Reserve(candidate)
		if err == nil {
			return seat, nil
		}
		metrics.SeatRejections.WithLabelValues(models.ErrorCode(err)).Inc()
		e.log.WithFields(logrus.Fields{
			"flight": fs.flight.FlightNo,
			"seat":   candidate,
		}).WithError(err).Debug("Seat rejected")
		src.Rejected(candidate, err)
		last = err
	}
}
