// Package ledger is the global, ordered record of active bookings.
package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/elson2121/Airline-Management-System/shared/models"
)

const (
	idPrefix = "B"
	idBase   = 1000
)

// Ledger never touches seat maps or rosters; keeping those in step is the
// booking engine's job. Not safe for concurrent use.
type Ledger struct {
	bookings []models.Booking
	next     int
}

func New() *Ledger {
	return &Ledger{next: idBase}
}

// Create appends a booking under the next id in the sequence.
// Ids are never handed out twice by the same ledger, even after a cancel.
func (l *Ledger) Create(flightNo, passengerID, seat string, paid bool, at time.Time) models.Booking {
	if n := len(l.bookings) + idBase; n > l.next {
		l.next = n
	}
	b := models.Booking{
		ID:          idPrefix + strconv.Itoa(l.next),
		FlightNo:    flightNo,
		PassengerID: passengerID,
		Seat:        seat,
		BookedAt:    at,
		Paid:        paid,
	}
	l.next++
	l.bookings = append(l.bookings, b)
	return b
}

func (l *Ledger) FindByBookingID(id string) (models.Booking, bool) {
	if i := l.indexOf(id); i >= 0 {
		return l.bookings[i], true
	}
	return models.Booking{}, false
}

// FindByPassengerID returns every booking held by the given government id,
// across all flights.
func (l *Ledger) FindByPassengerID(passengerID string) []models.Booking {
	return l.filter(func(b models.Booking) bool { return b.PassengerID == passengerID })
}

func (l *Ledger) FindByFlightNo(flightNo string) []models.Booking {
	return l.filter(func(b models.Booking) bool { return b.FlightNo == flightNo })
}

// FindBySeat returns the booking holding seat on flightNo, if any.
func (l *Ledger) FindBySeat(flightNo, seat string) (models.Booking, bool) {
	for _, b := range l.bookings {
		if b.FlightNo == flightNo && b.Seat == seat {
			return b, true
		}
	}
	return models.Booking{}, false
}

// Update overwrites the booking with the same id, keeping its position.
func (l *Ledger) Update(b models.Booking) error {
	i := l.indexOf(b.ID)
	if i < 0 {
		return fmt.Errorf("booking %s: %w", b.ID, models.ErrBookingNotFound)
	}
	l.bookings[i] = b
	return nil
}

// Cancel erases the booking. It reports false when the id is unknown.
func (l *Ledger) Cancel(id string) bool {
	i := l.indexOf(id)
	if i < 0 {
		return false
	}
	l.bookings = append(l.bookings[:i], l.bookings[i+1:]...)
	return true
}

// RemoveByFlight erases every booking on flightNo and returns them.
func (l *Ledger) RemoveByFlight(flightNo string) []models.Booking {
	var removed []models.Booking
	kept := l.bookings[:0]
	for _, b := range l.bookings {
		if b.FlightNo == flightNo {
			removed = append(removed, b)
			continue
		}
		kept = append(kept, b)
	}
	l.bookings = kept
	return removed
}

// All returns a copy of the ledger in creation order.
func (l *Ledger) All() []models.Booking {
	out := make([]models.Booking, len(l.bookings))
	copy(out, l.bookings)
	return out
}

func (l *Ledger) Len() int {
	return len(l.bookings)
}

// Reissued is a restored booking whose id repeated an earlier entry and was
// given the next free id instead.
type Reissued struct {
	OldID   string
	Booking models.Booking
}

// Restore replaces the ledger contents with previously saved bookings and
// moves the id sequence past every restored id. Booking ids stay unique: a
// repeated id keeps its first holder and every later holder is reissued
// under a new id, in order.
func (l *Ledger) Restore(bookings []models.Booking) []Reissued {
	l.bookings = make([]models.Booking, len(bookings))
	copy(l.bookings, bookings)

	next := len(bookings) + idBase
	for _, b := range bookings {
		if n, ok := parseID(b.ID); ok && n >= next {
			next = n + 1
		}
	}
	if next > l.next {
		l.next = next
	}

	var reissued []Reissued
	seen := make(map[string]bool, len(l.bookings))
	for i := range l.bookings {
		b := &l.bookings[i]
		if !seen[b.ID] {
			seen[b.ID] = true
			continue
		}
		old := b.ID
		b.ID = idPrefix + strconv.Itoa(l.next)
		l.next++
		seen[b.ID] = true
		reissued = append(reissued, Reissued{OldID: old, Booking: *b})
	}
	return reissued
}

func (l *Ledger) indexOf(id string) int {
	for i, b := range l.bookings {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func (l *Ledger) filter(keep func(models.Booking) bool) []models.Booking {
	var out []models.Booking
	for _, b := range l.bookings {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

func parseID(id string) (int, bool) {
	if !strings.HasPrefix(id, idPrefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(id, idPrefix))
	if err != nil {
		return 0, false
	}
	return n, true
}
