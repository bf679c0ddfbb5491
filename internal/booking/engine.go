// Package booking is the transactional core of the reservation system. It
// owns every flight's seat map and roster, the global booking ledger and the
// prepaid bank, and keeps them consistent with each other.
//
// All exported methods serialise on one mutex. Seat sources and confirmers
// passed into an operation run while that mutex is held.
package booking

import (
	"fmt"
	"sync"

	"github.com/elson2121/Airline-Management-System/internal/bank"
	"github.com/elson2121/Airline-Management-System/internal/clock"
	"github.com/elson2121/Airline-Management-System/internal/ledger"
	"github.com/elson2121/Airline-Management-System/internal/roster"
	"github.com/elson2121/Airline-Management-System/internal/seatmap"
	"github.com/elson2121/Airline-Management-System/shared/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Notifier is told about every change to a flight's seat grid. It is called
// with the engine lock held and must not block or call back into the engine.
type Notifier interface {
	SeatsChanged(flightNo string, seats []models.SeatState)
}

type flightState struct {
	flight models.Flight
	seats  *seatmap.SeatMap
	roster *roster.Roster
}

func newFlightState(f models.Flight) *flightState {
	return &flightState{
		flight: f,
		seats:  seatmap.New(),
		roster: roster.New(),
	}
}

// view returns the flight with AvailableSeats derived from the seat map.
func (fs *flightState) view() models.Flight {
	f := fs.flight
	f.AvailableSeats = f.Capacity - fs.seats.Occupied()
	return f
}

type Engine struct {
	mu sync.Mutex

	flights     map[string]*flightState
	flightOrder []string
	aircraft    map[string]models.Aircraft
	planeOrder  []string
	ledger      *ledger.Ledger
	bank        *bank.Bank
	holds       map[string]models.Hold

	clock    clock.Clock
	log      *logrus.Entry
	notifier Notifier
	newID    func() string
}

type Option func(*Engine)

func WithClock(c clock.Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

func WithLogger(l *logrus.Entry) Option {
	return func(e *Engine) {
		e.log = l
	}
}

func WithNotifier(n Notifier) Option {
	return func(e *Engine) {
		e.notifier = n
	}
}

// WithAccounts replaces the default bank balances.
func WithAccounts(accounts []models.BankAccount) Option {
	return func(e *Engine) {
		e.bank = bank.New(accounts)
	}
}

// WithHoldIDs overrides how hold ids are generated.
func WithHoldIDs(gen func() string) Option {
	return func(e *Engine) {
		e.newID = gen
	}
}

// New returns an empty engine. Call Seed or RebuildSeatStateFromBookings to
// give it flights.
func New(opts ...Option) *Engine {
	e := &Engine{
		flights:  make(map[string]*flightState),
		aircraft: make(map[string]models.Aircraft),
		ledger:   ledger.New(),
		bank:     bank.New(bank.DefaultAccounts),
		holds:    make(map[string]models.Hold),
		clock:    clock.System(),
		log:      logrus.NewEntry(logrus.StandardLogger()),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.WithField("component", "booking")
	return e
}

func (e *Engine) flightState(flightNo string) (*flightState, error) {
	fs, ok := e.flights[flightNo]
	if !ok {
		return nil, fmt.Errorf("flight %s: %w", flightNo, models.ErrFlightNotFound)
	}
	return fs, nil
}

// identityTaken reports whether id already holds a booking or a pending hold
// on the flight.
func (e *Engine) identityTaken(fs *flightState, id string) bool {
	if fs.roster.Contains(id) {
		return true
	}
	for _, h := range e.holds {
		if h.FlightNo == fs.flight.FlightNo && h.Passenger.ID == id {
			return true
		}
	}
	return false
}

func (e *Engine) pendingHolds(flightNo string) int {
	n := 0
	for _, h := range e.holds {
		if h.FlightNo == flightNo {
			n++
		}
	}
	return n
}

func (e *Engine) notify(fs *flightState) {
	if e.notifier == nil {
		return
	}
	e.notifier.SeatsChanged(fs.flight.FlightNo, fs.seats.Seats())
}
