package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/elson2121/Airline-Management-System/internal/booking"
	"github.com/elson2121/Airline-Management-System/internal/clock"
	"github.com/elson2121/Airline-Management-System/shared/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/client"
	temporalmocks "go.temporal.io/sdk/mocks"
)

type memStore struct {
	snap    models.Snapshot
	saves   int
	saveErr error
}

func (m *memStore) Load(context.Context) (models.Snapshot, error) {
	return m.snap, nil
}

func (m *memStore) Save(_ context.Context, snap models.Snapshot) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.snap = snap
	return nil
}

func (m *memStore) Close() error { return nil }

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func newTestService(t *testing.T, st *memStore, opts ...Option) *Service {
	t.Helper()
	engine := booking.New(
		booking.WithClock(clock.Fixed(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))),
		booking.WithLogger(quietLogger()),
	)
	s := New(engine, st, append([]Option{WithLogger(quietLogger()), WithAdminPassword("ela2121")}, opts...)...)
	_, err := s.Load(context.Background())
	require.NoError(t, err)
	return s
}

func bookRequest(flightNo, name, id string, seats ...string) booking.BookRequest {
	return booking.BookRequest{
		FlightNo:  flightNo,
		Passenger: models.PassengerDraft{Name: name, Passport: "EP" + id, ID: id, Contact: "0911000000"},
		Seats:     booking.Candidates(seats...),
		Confirm:   booking.AutoConfirm(true),
	}
}

func TestLoad_SeedsEmptyStore(t *testing.T) {
	st := &memStore{}
	s := newTestService(t, st)

	assert.Equal(t, 1, st.saves)
	require.Len(t, st.snap.Flights, 2)
	assert.Equal(t, "AF101", st.snap.Flights[0].FlightNo)
	assert.Len(t, s.Flights(context.Background(), ""), 2)
}

func TestLoad_DropsUnreplayableBookings(t *testing.T) {
	at := time.Unix(1714554000, 0)
	st := &memStore{snap: models.Snapshot{
		Flights: []models.Flight{
			{FlightNo: "ET500", Destination: "Gondar", Plane: "Dash 8", Capacity: 70, Price: 1800},
		},
		Passengers: []models.Passenger{
			{Name: "Selam", ID: "42", Destination: "Gondar", RegisteredAt: at},
		},
		Bookings: []models.Booking{
			{ID: "B1000", FlightNo: "ET500", PassengerID: "42", Seat: "C4", BookedAt: at, Paid: true},
			{ID: "B1001", FlightNo: "XX999", PassengerID: "43", Seat: "A1", BookedAt: at},
		},
	}}
	engine := booking.New(booking.WithLogger(quietLogger()))
	s := New(engine, st, WithLogger(quietLogger()))

	skipped, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, skipped, 1)
	assert.Equal(t, "B1001", skipped[0].Booking.ID)

	assert.Equal(t, 1, st.saves, "cleaned state is written back")
	assert.Len(t, st.snap.Bookings, 1)
	assert.Len(t, st.snap.Flights, 1, "saved flights prevent seeding")
}

func TestLoad_WritesBackReissuedBookingIDs(t *testing.T) {
	at := time.Unix(1714554000, 0)
	st := &memStore{snap: models.Snapshot{
		Flights: []models.Flight{
			{FlightNo: "ET500", Destination: "Gondar", Plane: "Dash 8", Capacity: 70, Price: 1800},
		},
		Bookings: []models.Booking{
			{ID: "B1001", FlightNo: "ET500", PassengerID: "111", Seat: "A2", BookedAt: at, Paid: true},
			{ID: "B1001", FlightNo: "ET500", PassengerID: "222", Seat: "A3", BookedAt: at, Paid: true},
		},
	}}
	engine := booking.New(booking.WithLogger(quietLogger()))
	s := New(engine, st, WithLogger(quietLogger()))

	skipped, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, skipped)

	assert.Equal(t, 1, st.saves, "reissued ids are written back")
	require.Len(t, st.snap.Bookings, 2)
	assert.Equal(t, "B1001", st.snap.Bookings[0].ID)
	assert.NotEqual(t, "B1001", st.snap.Bookings[1].ID)
	assert.Equal(t, "222", st.snap.Bookings[1].PassengerID)
}

func TestBook_SavesAfterCommit(t *testing.T) {
	st := &memStore{}
	s := newTestService(t, st)
	ctx := context.Background()

	res, err := s.Book(ctx, bookRequest("AF101", "Abebe Bikila", "1001", "A1"))
	require.NoError(t, err)
	assert.Equal(t, "B1000", res.BookingID)
	assert.Equal(t, 2, st.saves)
	require.Len(t, st.snap.Bookings, 1)

	_, err = s.Book(ctx, bookRequest("AF101", "Someone Else", "2002", "A1"))
	assert.ErrorIs(t, err, models.ErrSeatUnavailable)
	assert.Equal(t, 2, st.saves, "failed bookings are not saved")
}

func TestBook_PersistFailureKeepsMemory(t *testing.T) {
	st := &memStore{}
	s := newTestService(t, st)
	st.saveErr = errors.New("disk full")

	res, err := s.Book(context.Background(), bookRequest("AF101", "Abebe Bikila", "1001", "A1"))
	assert.ErrorIs(t, err, ErrPersist)
	assert.Equal(t, "B1000", res.BookingID)
	assert.Len(t, s.Bookings(context.Background()), 1)
	assert.NoError(t, s.Engine().CheckConsistency())
}

func TestCancelAndPostpone(t *testing.T) {
	st := &memStore{}
	s := newTestService(t, st)
	ctx := context.Background()

	res, err := s.Book(ctx, bookRequest("AF202", "Haile Gebre", "3003", "D5"))
	require.NoError(t, err)

	b, err := s.Postpone(ctx, booking.PostponeRequest{
		BookingID:         res.BookingID,
		VerifyPassengerID: "3003",
		Passenger:         models.PassengerDraft{Name: "Haile Gebre", Passport: "EP3003", ID: "3003", Contact: "0911000000"},
		Seats:             booking.Candidates("E6"),
	})
	require.NoError(t, err)
	assert.Equal(t, "E6", b.Seat)

	_, err = s.Cancel(ctx, res.BookingID)
	require.NoError(t, err)
	assert.Empty(t, st.snap.Bookings)

	_, err = s.Cancel(ctx, res.BookingID)
	assert.ErrorIs(t, err, models.ErrBookingNotFound)
}

func TestFlights_SearchByDestination(t *testing.T) {
	s := newTestService(t, &memStore{})

	found := s.Flights(context.Background(), "nai")
	require.Len(t, found, 1)
	assert.Equal(t, "AF202", found[0].FlightNo)
}

func TestAuthorize(t *testing.T) {
	s := newTestService(t, &memStore{})
	assert.NoError(t, s.Authorize("ela2121"))
	assert.ErrorIs(t, s.Authorize("wrong"), models.ErrUnauthorized)

	locked := New(booking.New(), &memStore{})
	assert.ErrorIs(t, locked.Authorize(""), models.ErrUnauthorized)
}

func TestHolds_Disabled(t *testing.T) {
	s := newTestService(t, &memStore{})
	ctx := context.Background()

	_, err := s.StartHold(ctx, models.BookingWorkflowInput{FlightNo: "AF101"})
	assert.ErrorIs(t, err, ErrHoldsDisabled)
	assert.ErrorIs(t, s.ConfirmHold(ctx, "hold-1", true), ErrHoldsDisabled)
	_, err = s.HoldState(ctx, "hold-1")
	assert.ErrorIs(t, err, ErrHoldsDisabled)
}

func TestHolds_Temporal(t *testing.T) {
	tc := &temporalmocks.Client{}
	run := &temporalmocks.WorkflowRun{}
	s := newTestService(t, &memStore{}, WithTemporal(tc, "flight-booking-queue"))
	ctx := context.Background()

	input := models.BookingWorkflowInput{
		FlightNo:  "AF101",
		Passenger: models.PassengerDraft{Name: "Selam", Passport: "EP1", ID: "1", Contact: "0911"},
		Seats:     []string{"A1"},
	}
	matchOpts := mock.MatchedBy(func(o client.StartWorkflowOptions) bool {
		return o.TaskQueue == "flight-booking-queue" && len(o.ID) == len("hold-")+8
	})
	tc.On("ExecuteWorkflow", mock.Anything, matchOpts, models.BookingWorkflowName, input).Return(run, nil)
	run.On("GetID").Return("hold-abcd1234")

	id, err := s.StartHold(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, "hold-abcd1234", id)

	tc.On("SignalWorkflow", mock.Anything, "hold-abcd1234", "", models.SignalConfirmPayment,
		models.ConfirmPaymentSignal{Confirmed: true}).Return(nil)
	require.NoError(t, s.ConfirmHold(ctx, "hold-abcd1234", true))

	tc.AssertExpectations(t)
	run.AssertExpectations(t)
}
