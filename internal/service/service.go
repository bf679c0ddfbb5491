// Package service is the boundary the HTTP handlers, the console and the
// Temporal activities go through. It owns the engine, saves the full state
// after every mutation and starts hold workflows.
package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/elson2121/Airline-Management-System/internal/booking"
	"github.com/elson2121/Airline-Management-System/internal/store"
	"github.com/elson2121/Airline-Management-System/shared/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.temporal.io/sdk/client"
)

const holdWorkflowPrefix = "hold-"

var (
	// ErrPersist marks a mutation that was applied in memory but not saved.
	// Memory is never rolled back when this is returned.
	ErrPersist = errors.New("state not persisted")

	ErrHoldsDisabled = errors.New("hold workflows are not configured")
)

// BookingService is what the HTTP handlers depend on.
type BookingService interface {
	Flights(ctx context.Context, destination string) []models.Flight
	Flight(ctx context.Context, flightNo string) (models.Flight, error)
	SeatMap(ctx context.Context, flightNo string) ([]models.SeatState, error)
	AddFlight(ctx context.Context, f models.Flight) (models.Flight, error)
	DeleteFlight(ctx context.Context, flightNo string) ([]models.Booking, error)

	Aircraft(ctx context.Context) []models.Aircraft
	AddAircraft(ctx context.Context, a models.Aircraft) error
	DeleteAircraft(ctx context.Context, model string) error

	Book(ctx context.Context, req booking.BookRequest) (models.BookResult, error)
	Bookings(ctx context.Context) []models.Booking
	PassengerBookings(ctx context.Context, passengerID string) []models.BookingView
	Cancel(ctx context.Context, bookingID string) (models.Booking, error)
	Postpone(ctx context.Context, req booking.PostponeRequest) (models.Booking, error)

	StartHold(ctx context.Context, input models.BookingWorkflowInput) (string, error)
	ConfirmHold(ctx context.Context, workflowID string, confirmed bool) error
	HoldState(ctx context.Context, workflowID string) (models.BookingWorkflowState, error)

	Accounts(ctx context.Context) []models.BankAccount
	Authorize(password string) error
}

type Service struct {
	engine *booking.Engine
	store  store.Store
	log    *logrus.Entry

	temporal      client.Client
	taskQueue     string
	adminPassword string

	saveMu sync.Mutex
}

type Option func(*Service)

// WithTemporal enables hold workflows on the given task queue.
func WithTemporal(c client.Client, taskQueue string) Option {
	return func(s *Service) {
		s.temporal = c
		s.taskQueue = taskQueue
	}
}

func WithAdminPassword(password string) Option {
	return func(s *Service) {
		s.adminPassword = password
	}
}

func WithLogger(l *logrus.Entry) Option {
	return func(s *Service) {
		s.log = l
	}
}

func New(engine *booking.Engine, st store.Store, opts ...Option) *Service {
	s := &Service{
		engine: engine,
		store:  st,
		log:    logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithField("component", "service")
	return s
}

// Load restores the saved snapshot into the engine and seeds the default
// schedule when nothing was saved. Bookings that could not be replayed are
// returned; the cleaned-up state is saved back when anything changed,
// including bookings reissued under a fresh id.
func (s *Service) Load(ctx context.Context) ([]booking.SkippedBooking, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading state: %w", err)
	}

	skipped, reissued := s.engine.RebuildSeatStateFromBookings(snap.Flights, snap.Bookings, snap.Passengers)
	for _, sk := range skipped {
		s.log.WithFields(logrus.Fields{
			"booking": sk.Booking.ID,
			"flight":  sk.Booking.FlightNo,
			"seat":    sk.Booking.Seat,
		}).WithError(sk.Reason).Warn("Dropped saved booking")
	}

	seeded := s.engine.Seed()
	s.log.WithFields(logrus.Fields{
		"flights":  len(snap.Flights),
		"bookings": len(snap.Bookings) - len(skipped),
	}).Info("State loaded")

	if seeded || len(skipped) > 0 || len(reissued) > 0 {
		return skipped, s.Save(ctx)
	}
	return skipped, nil
}

// Save writes the engine's current state. Saves are serialised so that a
// slower save never overwrites a newer snapshot.
func (s *Service) Save(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	if err := s.store.Save(ctx, s.engine.SerializeState()); err != nil {
		s.log.WithError(err).Error("Failed to save state")
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

func (s *Service) Close() error {
	return s.store.Close()
}

func (s *Service) Engine() *booking.Engine {
	return s.engine
}

func (s *Service) Flights(ctx context.Context, destination string) []models.Flight {
	if strings.TrimSpace(destination) == "" {
		return s.engine.Flights()
	}
	return s.engine.SearchByDestination(destination)
}

func (s *Service) Flight(ctx context.Context, flightNo string) (models.Flight, error) {
	return s.engine.Flight(flightNo)
}

func (s *Service) SeatMap(ctx context.Context, flightNo string) ([]models.SeatState, error) {
	return s.engine.SeatMap(flightNo)
}

func (s *Service) AddFlight(ctx context.Context, f models.Flight) (models.Flight, error) {
	added, err := s.engine.AddFlight(f)
	if err != nil {
		return models.Flight{}, err
	}
	return added, s.Save(ctx)
}

func (s *Service) DeleteFlight(ctx context.Context, flightNo string) ([]models.Booking, error) {
	removed, err := s.engine.DeleteFlight(flightNo)
	if err != nil {
		return nil, err
	}
	return removed, s.Save(ctx)
}

func (s *Service) Aircraft(ctx context.Context) []models.Aircraft {
	return s.engine.Aircraft()
}

// AddAircraft and DeleteAircraft only touch the in-memory catalog, which is
// not part of the saved snapshot.
func (s *Service) AddAircraft(ctx context.Context, a models.Aircraft) error {
	return s.engine.AddAircraft(a)
}

func (s *Service) DeleteAircraft(ctx context.Context, model string) error {
	return s.engine.DeleteAircraft(model)
}

func (s *Service) Book(ctx context.Context, req booking.BookRequest) (models.BookResult, error) {
	res, err := s.engine.Book(ctx, req)
	if err != nil {
		return models.BookResult{}, err
	}
	return res, s.Save(ctx)
}

func (s *Service) Bookings(ctx context.Context) []models.Booking {
	return s.engine.Bookings()
}

func (s *Service) PassengerBookings(ctx context.Context, passengerID string) []models.BookingView {
	return s.engine.BookingsForPassenger(passengerID)
}

func (s *Service) Cancel(ctx context.Context, bookingID string) (models.Booking, error) {
	b, err := s.engine.Cancel(ctx, bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	return b, s.Save(ctx)
}

func (s *Service) Postpone(ctx context.Context, req booking.PostponeRequest) (models.Booking, error) {
	b, err := s.engine.Postpone(ctx, req)
	if err != nil {
		return models.Booking{}, err
	}
	return b, s.Save(ctx)
}

// HoldSeat, SettleHold and ReleaseHold back the hold workflow's activities.
func (s *Service) HoldSeat(ctx context.Context, req booking.HoldRequest) (models.Hold, error) {
	return s.engine.HoldSeat(ctx, req)
}

func (s *Service) SettleHold(ctx context.Context, holdID string, confirmed bool) (models.BookResult, error) {
	res, err := s.engine.SettleHold(ctx, holdID, confirmed)
	if err != nil {
		return models.BookResult{}, err
	}
	return res, s.Save(ctx)
}

func (s *Service) ReleaseHold(ctx context.Context, holdID, reason string) error {
	return s.engine.ReleaseHold(holdID, reason)
}

// StartHold starts a booking workflow that holds a seat until the passenger
// confirms payment or the hold expires.
func (s *Service) StartHold(ctx context.Context, input models.BookingWorkflowInput) (string, error) {
	if s.temporal == nil {
		return "", ErrHoldsDisabled
	}

	opts := client.StartWorkflowOptions{
		ID:        holdWorkflowPrefix + uuid.New().String()[:8],
		TaskQueue: s.taskQueue,
	}
	run, err := s.temporal.ExecuteWorkflow(ctx, opts, models.BookingWorkflowName, input)
	if err != nil {
		return "", fmt.Errorf("failed to start workflow: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"workflow": run.GetID(),
		"flight":   input.FlightNo,
	}).Info("Hold workflow started")
	return run.GetID(), nil
}

func (s *Service) ConfirmHold(ctx context.Context, workflowID string, confirmed bool) error {
	if s.temporal == nil {
		return ErrHoldsDisabled
	}
	signal := models.ConfirmPaymentSignal{Confirmed: confirmed}
	if err := s.temporal.SignalWorkflow(ctx, workflowID, "", models.SignalConfirmPayment, signal); err != nil {
		return fmt.Errorf("failed to signal workflow %s: %w", workflowID, err)
	}
	return nil
}

func (s *Service) HoldState(ctx context.Context, workflowID string) (models.BookingWorkflowState, error) {
	if s.temporal == nil {
		return models.BookingWorkflowState{}, ErrHoldsDisabled
	}
	resp, err := s.temporal.QueryWorkflow(ctx, workflowID, "", models.QueryGetState)
	if err != nil {
		return models.BookingWorkflowState{}, fmt.Errorf("failed to query workflow %s: %w", workflowID, err)
	}

	var state models.BookingWorkflowState
	if err := resp.Get(&state); err != nil {
		return models.BookingWorkflowState{}, fmt.Errorf("failed to decode workflow state: %w", err)
	}
	return state, nil
}

func (s *Service) Accounts(ctx context.Context) []models.BankAccount {
	return s.engine.Accounts()
}

// Authorize checks an admin password. An unset password locks admin
// operations entirely.
func (s *Service) Authorize(password string) error {
	if s.adminPassword == "" || subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword)) != 1 {
		return models.ErrUnauthorized
	}
	return nil
}
