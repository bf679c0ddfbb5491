package booking

import (
	"fmt"
	"strings"

	"github.com/elson2121/Airline-Management-System/shared/models"
)

// Flights returns every flight in scheduling order.
func (e *Engine) Flights() []models.Flight {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]models.Flight, 0, len(e.flightOrder))
	for _, no := range e.flightOrder {
		out = append(out, e.flights[no].view())
	}
	return out
}

func (e *Engine) Flight(flightNo string) (models.Flight, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	fs, err := e.flightState(flightNo)
	if err != nil {
		return models.Flight{}, err
	}
	return fs.view(), nil
}

// SearchByDestination matches a case-insensitive substring of the destination.
func (e *Engine) SearchByDestination(query string) []models.Flight {
	q := strings.ToLower(strings.TrimSpace(query))

	e.mu.Lock()
	defer e.mu.Unlock()

	var out []models.Flight
	for _, no := range e.flightOrder {
		fs := e.flights[no]
		if strings.Contains(strings.ToLower(fs.flight.Destination), q) {
			out = append(out, fs.view())
		}
	}
	return out
}

func (e *Engine) SeatMap(flightNo string) ([]models.SeatState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	fs, err := e.flightState(flightNo)
	if err != nil {
		return nil, err
	}
	return fs.seats.Seats(), nil
}

// Passengers returns the roster of one flight in booking order.
func (e *Engine) Passengers(flightNo string) ([]models.Passenger, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	fs, err := e.flightState(flightNo)
	if err != nil {
		return nil, err
	}
	return fs.roster.Passengers(), nil
}

// AllPassengers returns the passenger of every booking in ledger order.
func (e *Engine) AllPassengers() []models.Passenger {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.passengersInLedgerOrder()
}

func (e *Engine) passengersInLedgerOrder() []models.Passenger {
	var out []models.Passenger
	for _, b := range e.ledger.All() {
		fs, ok := e.flights[b.FlightNo]
		if !ok {
			continue
		}
		if p, ok := fs.roster.Get(b.PassengerID); ok {
			out = append(out, p)
		}
	}
	return out
}

func (e *Engine) Bookings() []models.Booking {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.ledger.All()
}

func (e *Engine) Booking(bookingID string) (models.BookingView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, ok := e.ledger.FindByBookingID(bookingID)
	if !ok {
		return models.BookingView{}, fmt.Errorf("booking %s: %w", bookingID, models.ErrBookingNotFound)
	}
	return e.bookingView(b), nil
}

// BookingsForPassenger returns every booking held by a government id, joined
// with the passenger and flight records.
func (e *Engine) BookingsForPassenger(passengerID string) []models.BookingView {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []models.BookingView
	for _, b := range e.ledger.FindByPassengerID(passengerID) {
		out = append(out, e.bookingView(b))
	}
	return out
}

func (e *Engine) bookingView(b models.Booking) models.BookingView {
	v := models.BookingView{Booking: b}
	if fs, ok := e.flights[b.FlightNo]; ok {
		v.Flight = fs.view()
		v.Passenger, _ = fs.roster.Get(b.PassengerID)
	}
	return v
}

func (e *Engine) Hold(holdID string) (models.Hold, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	h, ok := e.holds[holdID]
	if !ok {
		return models.Hold{}, fmt.Errorf("hold %s: %w", holdID, models.ErrHoldNotFound)
	}
	return h, nil
}

func (e *Engine) Accounts() []models.BankAccount {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.bank.Accounts()
}

func (e *Engine) Balance(name string) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.bank.BalanceOf(name)
}

func (e *Engine) HasAccount(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.bank.HasAccount(name)
}
