package booking

import (
	"errors"
	"fmt"

	"github.com/elson2121/Airline-Management-System/internal/ledger"
	"github.com/elson2121/Airline-Management-System/shared/models"
	"github.com/sirupsen/logrus"
)

// SkippedBooking is a saved booking that could not be replayed onto the
// seat maps.
type SkippedBooking struct {
	Booking models.Booking
	Reason  error
}

// RebuildSeatStateFromBookings replaces the engine's flights, rosters and
// ledger with previously saved state. Every flight starts from an empty grid
// and each booking is replayed in order; bookings for unknown flights,
// unknown or malformed seats, seats already taken, full flights or a
// passenger already on the flight are dropped and returned. Passenger
// records are matched to bookings by id and destination; a booking without
// one gets a record carrying only the id. A booking whose id repeats an
// earlier kept booking is kept under a fresh id and returned in reissued.
// Pending holds are discarded.
func (e *Engine) RebuildSeatStateFromBookings(flights []models.Flight, bookings []models.Booking, passengers []models.Passenger) (skipped []SkippedBooking, reissued []ledger.Reissued) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.flights = make(map[string]*flightState, len(flights))
	e.flightOrder = nil
	e.holds = make(map[string]models.Hold)

	for _, f := range flights {
		if _, dup := e.flights[f.FlightNo]; dup {
			e.log.WithField("flight", f.FlightNo).Warn("Duplicate flight in saved state, keeping the first")
			continue
		}
		if _, ok := e.aircraft[f.Plane]; !ok && f.Plane != "" {
			e.putAircraft(models.Aircraft{Model: f.Plane, TotalSeats: f.Capacity})
		}
		e.putFlight(f)
	}

	pool := make(map[string][]models.Passenger)
	for _, p := range passengers {
		pool[p.ID] = append(pool[p.ID], p)
	}
	take := func(id, destination string) (models.Passenger, bool) {
		for i, p := range pool[id] {
			if p.Destination == destination {
				pool[id] = append(pool[id][:i], pool[id][i+1:]...)
				return p, true
			}
		}
		return models.Passenger{}, false
	}

	var kept []models.Booking
	skip := func(b models.Booking, reason error) {
		skipped = append(skipped, SkippedBooking{Booking: b, Reason: reason})
		e.log.WithFields(logrus.Fields{
			"booking": b.ID,
			"flight":  b.FlightNo,
			"seat":    b.Seat,
		}).WithError(reason).Warn("Skipping saved booking")
	}

	for _, b := range bookings {
		fs, ok := e.flights[b.FlightNo]
		if !ok {
			skip(b, fmt.Errorf("flight %s: %w", b.FlightNo, models.ErrFlightNotFound))
			continue
		}
		if fs.seats.Occupied() >= fs.flight.Capacity {
			skip(b, fmt.Errorf("flight %s: %w", b.FlightNo, models.ErrFlightUnavailable))
			continue
		}
		seat, err := fs.seats.Reserve(b.Seat)
		if err != nil {
			skip(b, err)
			continue
		}

		p, ok := take(b.PassengerID, fs.flight.Destination)
		if !ok {
			p = models.Passenger{ID: b.PassengerID, RegisteredAt: b.BookedAt}
		}
		p.Seat = seat
		p.Destination = fs.flight.Destination
		if err := fs.roster.Add(p); err != nil {
			fs.seats.Release(seat)
			skip(b, err)
			continue
		}

		b.Seat = seat
		kept = append(kept, b)
	}
	reissued = e.ledger.Restore(kept)
	for _, r := range reissued {
		e.log.WithFields(logrus.Fields{
			"booking": r.OldID,
			"newId":   r.Booking.ID,
			"flight":  r.Booking.FlightNo,
			"seat":    r.Booking.Seat,
		}).Warn("Saved booking id already in use, reissued")
	}

	for _, no := range e.flightOrder {
		e.notify(e.flights[no])
	}
	e.log.WithFields(logrus.Fields{
		"flights":  len(e.flightOrder),
		"bookings": len(kept),
		"skipped":  len(skipped),
		"reissued": len(reissued),
	}).Info("Rebuilt seat state")
	return skipped, reissued
}

// SerializeState extracts everything that is persisted: flights in
// scheduling order, and bookings with their passengers in ledger order.
func (e *Engine) SerializeState() models.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := models.Snapshot{
		Flights:    make([]models.Flight, 0, len(e.flightOrder)),
		Passengers: e.passengersInLedgerOrder(),
		Bookings:   e.ledger.All(),
	}
	for _, no := range e.flightOrder {
		snap.Flights = append(snap.Flights, e.flights[no].view())
	}
	return snap
}

// CheckConsistency verifies that seat maps, rosters and the ledger agree:
// every occupied seat belongs to exactly one booking or pending hold, and
// every booking has a roster entry holding the same seat.
func (e *Engine) CheckConsistency() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var errs []error
	for _, no := range e.flightOrder {
		fs := e.flights[no]
		bookings := e.ledger.FindByFlightNo(no)
		held := e.pendingHolds(no)

		if got, want := fs.seats.Occupied(), fs.roster.Len()+held; got != want {
			errs = append(errs, fmt.Errorf("flight %s: %d seats occupied, %d passengers and %d holds", no, got, fs.roster.Len(), held))
		}
		if fs.roster.Len() != len(bookings) {
			errs = append(errs, fmt.Errorf("flight %s: %d passengers but %d bookings", no, fs.roster.Len(), len(bookings)))
		}
		if avail := fs.view().AvailableSeats; avail < 0 || avail > fs.flight.Capacity {
			errs = append(errs, fmt.Errorf("flight %s: available seats %d outside 0..%d", no, avail, fs.flight.Capacity))
		}

		seen := make(map[string]string, len(bookings))
		for _, b := range bookings {
			if other, dup := seen[b.Seat]; dup {
				errs = append(errs, fmt.Errorf("flight %s: seat %s booked by %s and %s", no, b.Seat, other, b.ID))
			}
			seen[b.Seat] = b.ID
			if fs.seats.IsFree(b.Seat) || !fs.seats.Exists(b.Seat) {
				errs = append(errs, fmt.Errorf("flight %s: booking %s holds free or unknown seat %s", no, b.ID, b.Seat))
			}
			p, ok := fs.roster.Get(b.PassengerID)
			if !ok {
				errs = append(errs, fmt.Errorf("flight %s: booking %s has no roster entry for %s", no, b.ID, b.PassengerID))
			} else if p.Seat != b.Seat {
				errs = append(errs, fmt.Errorf("flight %s: booking %s on %s but passenger %s on %s", no, b.ID, b.Seat, p.ID, p.Seat))
			}
		}
	}
	for _, b := range e.ledger.All() {
		if _, ok := e.flights[b.FlightNo]; !ok {
			errs = append(errs, fmt.Errorf("booking %s references unknown flight %s", b.ID, b.FlightNo))
		}
	}
	for id, h := range e.holds {
		fs, ok := e.flights[h.FlightNo]
		if !ok || fs.seats.IsFree(h.Seat) {
			errs = append(errs, fmt.Errorf("hold %s on %s/%s does not own its seat", id, h.FlightNo, h.Seat))
		}
	}
	return errors.Join(errs...)
}

