package booking

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/elson2121/Airline-Management-System/internal/clock"
	"github.com/elson2121/Airline-Management-System/shared/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	base := []Option{WithClock(clock.Fixed(testNow)), WithLogger(quietLogger())}
	e := New(append(base, opts...)...)
	require.True(t, e.Seed())
	return e
}

func draft(name, id string) models.PassengerDraft {
	return models.PassengerDraft{Name: name, Passport: "EP" + id, ID: id, Contact: "0911000000"}
}

func book(t *testing.T, e *Engine, flightNo string, d models.PassengerDraft, seats ...string) models.BookResult {
	t.Helper()
	res, err := e.Book(context.Background(), BookRequest{
		FlightNo:  flightNo,
		Passenger: d,
		Seats:     Candidates(seats...),
		Confirm:   AutoConfirm(true),
	})
	require.NoError(t, err)
	return res
}

func seatStatus(t *testing.T, e *Engine, flightNo, seat string) models.SeatStatus {
	t.Helper()
	seats, err := e.SeatMap(flightNo)
	require.NoError(t, err)
	for _, s := range seats {
		if s.Seat == seat {
			return s.Status
		}
	}
	t.Fatalf("seat %s not on grid", seat)
	return ""
}

func available(t *testing.T, e *Engine, flightNo string) int {
	t.Helper()
	f, err := e.Flight(flightNo)
	require.NoError(t, err)
	return f.AvailableSeats
}

type recordingSource struct {
	seats    []string
	pos      int
	rejected []error
}

func (r *recordingSource) Next(context.Context) (string, bool) {
	if r.pos >= len(r.seats) {
		return "", false
	}
	r.pos++
	return r.seats[r.pos-1], true
}

func (r *recordingSource) Rejected(_ string, err error) {
	r.rejected = append(r.rejected, err)
}

type countingNotifier struct {
	calls map[string]int
}

func (n *countingNotifier) SeatsChanged(flightNo string, seats []models.SeatState) {
	if n.calls == nil {
		n.calls = make(map[string]int)
	}
	n.calls[flightNo]++
}

func TestSeed(t *testing.T) {
	e := newTestEngine(t)

	flights := e.Flights()
	require.Len(t, flights, 2)
	assert.Equal(t, "AF101", flights[0].FlightNo)
	assert.Equal(t, "Cairo", flights[0].Destination)
	assert.Equal(t, 2500.0, flights[0].Price)
	assert.Equal(t, 100, flights[0].AvailableSeats)
	assert.Equal(t, "AF202", flights[1].FlightNo)
	assert.Len(t, e.Aircraft(), 2)

	assert.False(t, e.Seed(), "seeding twice must not add flights")
	assert.Len(t, e.Flights(), 2)
}

func TestBook_AccountHolderIsDebited(t *testing.T) {
	e := newTestEngine(t)

	res := book(t, e, "AF101", draft("Abebe Bikila", "1001"), "a1")

	assert.Equal(t, "B1000", res.BookingID)
	assert.Equal(t, "A1", res.Seat)
	assert.True(t, res.Paid)
	assert.True(t, res.HasAccount)
	assert.Equal(t, 6000.0, res.Balance)
	assert.Equal(t, 6000.0, e.Balance("Abebe Bikila"))

	assert.Equal(t, models.SeatStatusBooked, seatStatus(t, e, "AF101", "A1"))
	assert.Equal(t, 99, available(t, e, "AF101"))

	bookings := e.Bookings()
	require.Len(t, bookings, 1)
	assert.Equal(t, "1001", bookings[0].PassengerID)
	assert.Equal(t, testNow, bookings[0].BookedAt)

	roster, err := e.Passengers("AF101")
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, "A1", roster[0].Seat)
	assert.Equal(t, "Cairo", roster[0].Destination)
	assert.Equal(t, testNow, roster[0].RegisteredAt)

	require.NoError(t, e.CheckConsistency())
}

func TestBook_PayOnConfirm(t *testing.T) {
	e := newTestEngine(t)

	var asked float64
	confirm := ConfirmFunc(func(_ context.Context, _ models.Flight, amount float64) bool {
		asked = amount
		return true
	})
	res, err := e.Book(context.Background(), BookRequest{
		FlightNo:  "AF202",
		Passenger: draft("Selam Alemu", "2002"),
		Seats:     Candidates("C4"),
		Confirm:   confirm,
	})

	require.NoError(t, err)
	assert.Equal(t, 3000.0, asked)
	assert.True(t, res.Paid)
	assert.False(t, res.HasAccount)
	assert.Zero(t, res.Balance)
	assert.Equal(t, models.SeatStatusBooked, seatStatus(t, e, "AF202", "C4"))
	require.NoError(t, e.CheckConsistency())
}

func TestBook_PayOnConfirmDeclinedRollsBack(t *testing.T) {
	tests := []struct {
		name    string
		confirm Confirmer
	}{
		{"declined", AutoConfirm(false)},
		{"no confirmer", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t)

			_, err := e.Book(context.Background(), BookRequest{
				FlightNo:  "AF101",
				Passenger: draft("Selam Alemu", "2002"),
				Seats:     Candidates("D5"),
				Confirm:   tt.confirm,
			})

			assert.ErrorIs(t, err, models.ErrUserCancelled)
			assert.Equal(t, models.SeatStatusAvailable, seatStatus(t, e, "AF101", "D5"))
			assert.Empty(t, e.Bookings())
			assert.Equal(t, 100, available(t, e, "AF101"))
			require.NoError(t, e.CheckConsistency())
		})
	}
}

func TestBook_InsufficientFundsRollsBack(t *testing.T) {
	e := newTestEngine(t)
	book(t, e, "AF202", draft("Abiy Yosi", "3003"), "A1")
	require.Equal(t, 2000.0, e.Balance("Abiy Yosi"))

	_, err := e.Book(context.Background(), BookRequest{
		FlightNo:  "AF101",
		Passenger: draft("Abiy Yosi", "3003"),
		Seats:     Candidates("E6"),
	})

	assert.ErrorIs(t, err, models.ErrInsufficientFunds)
	assert.Equal(t, models.SeatStatusAvailable, seatStatus(t, e, "AF101", "E6"))
	assert.Equal(t, 2000.0, e.Balance("Abiy Yosi"))
	assert.Len(t, e.Bookings(), 1)
	roster, err := e.Passengers("AF101")
	require.NoError(t, err)
	assert.Empty(t, roster)
	require.NoError(t, e.CheckConsistency())
}

func TestBook_DuplicateIdentity(t *testing.T) {
	e := newTestEngine(t)
	book(t, e, "AF101", draft("Haile Gebre", "4004"), "A1")

	src := &recordingSource{seats: []string{"A2"}}
	_, err := e.Book(context.Background(), BookRequest{
		FlightNo:  "AF101",
		Passenger: draft("Haile Gebre", "4004"),
		Seats:     src,
	})
	assert.ErrorIs(t, err, models.ErrDuplicateIdentity)
	assert.Zero(t, src.pos, "no seat may be asked for before the identity check passes")
	assert.Equal(t, models.SeatStatusAvailable, seatStatus(t, e, "AF101", "A2"))
	assert.Equal(t, 12500.0, e.Balance("Haile Gebre"))

	res := book(t, e, "AF202", draft("Haile Gebre", "4004"), "A1")
	assert.Equal(t, "AF202", res.FlightNo)
	assert.Len(t, e.BookingsForPassenger("4004"), 2)
	require.NoError(t, e.CheckConsistency())
}

func TestBook_SeatRetryLoop(t *testing.T) {
	e := newTestEngine(t)
	book(t, e, "AF101", draft("Abe Kebe", "5005"), "B2")

	src := &recordingSource{seats: []string{"1A", "K1", "b2", "c3"}}
	res, err := e.Book(context.Background(), BookRequest{
		FlightNo:  "AF101",
		Passenger: draft("Meseret Yimer", "6006"),
		Seats:     src,
	})

	require.NoError(t, err)
	assert.Equal(t, "C3", res.Seat)
	require.Len(t, src.rejected, 3)
	assert.ErrorIs(t, src.rejected[0], models.ErrInvalidSeatFormat)
	assert.ErrorIs(t, src.rejected[1], models.ErrSeatUnknown)
	assert.ErrorIs(t, src.rejected[2], models.ErrSeatUnavailable)
	require.NoError(t, e.CheckConsistency())
}

func TestBook_SeatSourceExhausted(t *testing.T) {
	tests := []struct {
		name  string
		seats SeatSource
		want  error
	}{
		{"last rejection wins", Candidates("1A", "Z9"), models.ErrSeatUnknown},
		{"empty source", Candidates(), models.ErrNoSeatCandidates},
		{"nil source", nil, models.ErrNoSeatCandidates},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t)

			_, err := e.Book(context.Background(), BookRequest{
				FlightNo:  "AF101",
				Passenger: draft("Hanan Daye", "7007"),
				Seats:     tt.seats,
			})

			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 100, available(t, e, "AF101"))
			assert.Equal(t, 6000.0, e.Balance("Hanan Daye"))
		})
	}
}

func TestBook_Validation(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.Book(context.Background(), BookRequest{FlightNo: "XX999", Passenger: draft("Abe Kebe", "1"), Seats: Candidates("A1")})
	assert.ErrorIs(t, err, models.ErrFlightUnavailable)

	bad := draft("Abe Kebe", "12ab")
	_, err = e.Book(context.Background(), BookRequest{FlightNo: "AF101", Passenger: bad, Seats: Candidates("A1")})
	assert.ErrorIs(t, err, models.ErrInvalidPassenger)

	assert.Equal(t, 100, available(t, e, "AF101"))
	assert.Empty(t, e.Bookings())
}

func TestBook_FullFlight(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.AddAircraft(models.Aircraft{Model: "Cessna 172", TotalSeats: 1}))
	f, err := e.AddFlight(models.Flight{FlightNo: "ET1", Destination: "Gondar", Plane: "Cessna 172", Price: 100})
	require.NoError(t, err)
	assert.Equal(t, 1, f.Capacity)

	book(t, e, "ET1", draft("Abe Kebe", "1"), "A1")

	_, err = e.Book(context.Background(), BookRequest{FlightNo: "ET1", Passenger: draft("Hanan Daye", "2"), Seats: Candidates("A2")})
	assert.ErrorIs(t, err, models.ErrFlightUnavailable)
	assert.Equal(t, 0, available(t, e, "ET1"))
}

func TestCancel(t *testing.T) {
	e := newTestEngine(t)
	res := book(t, e, "AF101", draft("Tirunesh Dibaba", "8008"), "F7")
	require.Equal(t, 99, available(t, e, "AF101"))

	b, err := e.Cancel(context.Background(), res.BookingID)
	require.NoError(t, err)
	assert.Equal(t, "F7", b.Seat)

	assert.Equal(t, models.SeatStatusAvailable, seatStatus(t, e, "AF101", "F7"))
	assert.Equal(t, 100, available(t, e, "AF101"))
	assert.Empty(t, e.Bookings())
	roster, err := e.Passengers("AF101")
	require.NoError(t, err)
	assert.Empty(t, roster)
	assert.Equal(t, 6500.0, e.Balance("Tirunesh Dibaba"), "cancellations are not refunded")

	_, err = e.Cancel(context.Background(), res.BookingID)
	assert.ErrorIs(t, err, models.ErrBookingNotFound)
	require.NoError(t, e.CheckConsistency())
}

func TestCancel_NewBookingGetsFreshID(t *testing.T) {
	e := newTestEngine(t)
	first := book(t, e, "AF101", draft("Abe Kebe", "1"), "A1")
	second := book(t, e, "AF101", draft("Hanan Daye", "2"), "A2")

	_, err := e.Cancel(context.Background(), first.BookingID)
	require.NoError(t, err)
	third := book(t, e, "AF101", draft("Abel Tesfaye", "3"), "A3")

	assert.NotEqual(t, first.BookingID, third.BookingID)
	assert.NotEqual(t, second.BookingID, third.BookingID)
}

func TestScenario_AF101(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	first := book(t, e, "AF101", draft("Abebe Bikila", "1001"), "A1")
	assert.True(t, first.Paid)
	assert.Equal(t, 6000.0, first.Balance)
	assert.Equal(t, models.SeatStatusBooked, seatStatus(t, e, "AF101", "A1"))

	before := e.SerializeState()
	_, err := e.Book(ctx, BookRequest{
		FlightNo:  "AF101",
		Passenger: draft("Unknown Traveller", "2002"),
		Seats:     Candidates("A1"),
		Confirm:   AutoConfirm(true),
	})
	assert.ErrorIs(t, err, models.ErrSeatUnavailable)
	assert.Equal(t, before, e.SerializeState())

	_, err = e.Cancel(ctx, first.BookingID)
	require.NoError(t, err)
	assert.Equal(t, models.SeatStatusAvailable, seatStatus(t, e, "AF101", "A1"))
	assert.Equal(t, 6000.0, e.Balance("Abebe Bikila"))

	second := book(t, e, "AF101", draft("Abel Tesfaye", "3003"), "C3")
	src := &recordingSource{seats: []string{"1A", "K1", "B2"}}
	moved, err := e.Postpone(ctx, PostponeRequest{
		BookingID:         second.BookingID,
		VerifyPassengerID: "3003",
		Passenger:         draft("Abel Tesfaye", "3003"),
		Seats:             src,
	})
	require.NoError(t, err)
	assert.Equal(t, "B2", moved.Seat)
	require.Len(t, src.rejected, 2)
	assert.ErrorIs(t, src.rejected[0], models.ErrInvalidSeatFormat)
	assert.ErrorIs(t, src.rejected[1], models.ErrSeatUnknown)
	require.NoError(t, e.CheckConsistency())
}

func TestPostpone(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	res := book(t, e, "AF101", draft("Abebe Bikila", "1001"), "A1")

	moved, err := e.Postpone(ctx, PostponeRequest{
		BookingID:         res.BookingID,
		VerifyPassengerID: "1001",
		Passenger:         models.PassengerDraft{Name: "Abebe B", Passport: "EP777", ID: "1009", Contact: "0922"},
		Seats:             Candidates("J10"),
	})
	require.NoError(t, err)

	assert.Equal(t, res.BookingID, moved.ID)
	assert.Equal(t, "J10", moved.Seat)
	assert.Equal(t, "1009", moved.PassengerID)
	assert.Equal(t, models.SeatStatusAvailable, seatStatus(t, e, "AF101", "A1"))
	assert.Equal(t, models.SeatStatusBooked, seatStatus(t, e, "AF101", "J10"))
	assert.Equal(t, 99, available(t, e, "AF101"))

	roster, err := e.Passengers("AF101")
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, "Abebe B", roster[0].Name)
	assert.Equal(t, "J10", roster[0].Seat)
	assert.Equal(t, 6000.0, e.Balance("Abebe Bikila"), "postponing does not charge again")
	require.NoError(t, e.CheckConsistency())
}

func TestPostpone_OldSeatCanBeChosenAgain(t *testing.T) {
	e := newTestEngine(t)
	res := book(t, e, "AF101", draft("Abebe Bikila", "1001"), "A1")

	moved, err := e.Postpone(context.Background(), PostponeRequest{
		BookingID:         res.BookingID,
		VerifyPassengerID: "1001",
		Passenger:         draft("Abebe Bikila", "1001"),
		Seats:             Candidates("a1"),
	})

	require.NoError(t, err)
	assert.Equal(t, "A1", moved.Seat)
	require.NoError(t, e.CheckConsistency())
}

func TestPostpone_Rejections(t *testing.T) {
	e := newTestEngine(t)
	res := book(t, e, "AF101", draft("Abebe Bikila", "1001"), "A1")
	book(t, e, "AF101", draft("Abe Kebe", "5005"), "A2")

	tests := []struct {
		name string
		req  PostponeRequest
		want error
	}{
		{
			name: "unknown booking",
			req:  PostponeRequest{BookingID: "B1", VerifyPassengerID: "1001", Passenger: draft("Abebe Bikila", "1001"), Seats: Candidates("B1")},
			want: models.ErrBookingNotFound,
		},
		{
			name: "wrong verification id",
			req:  PostponeRequest{BookingID: res.BookingID, VerifyPassengerID: "9999", Passenger: draft("Abebe Bikila", "1001"), Seats: Candidates("B1")},
			want: models.ErrVerificationFailed,
		},
		{
			name: "invalid details",
			req:  PostponeRequest{BookingID: res.BookingID, VerifyPassengerID: "1001", Passenger: draft("", "1001"), Seats: Candidates("B1")},
			want: models.ErrInvalidPassenger,
		},
		{
			name: "new id already on flight",
			req:  PostponeRequest{BookingID: res.BookingID, VerifyPassengerID: "1001", Passenger: draft("Abe Kebe", "5005"), Seats: Candidates("B1")},
			want: models.ErrDuplicateIdentity,
		},
		{
			name: "no seat accepted",
			req:  PostponeRequest{BookingID: res.BookingID, VerifyPassengerID: "1001", Passenger: draft("Abebe Bikila", "1001"), Seats: Candidates("A2")},
			want: models.ErrSeatUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := e.SerializeState()

			_, err := e.Postpone(context.Background(), tt.req)

			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, before, e.SerializeState())
			assert.Equal(t, models.SeatStatusBooked, seatStatus(t, e, "AF101", "A1"))
			require.NoError(t, e.CheckConsistency())
		})
	}
}

func TestHoldAndSettle(t *testing.T) {
	e := newTestEngine(t, WithHoldIDs(func() string { return "hold-1" }))
	ctx := context.Background()

	hold, err := e.HoldSeat(ctx, HoldRequest{FlightNo: "AF101", Passenger: draft("Selam Alemu", "2002"), Seats: Candidates("G8")})
	require.NoError(t, err)
	assert.Equal(t, "hold-1", hold.ID)
	assert.True(t, hold.RequiresConfirmation)
	assert.Equal(t, 2500.0, hold.Amount)
	assert.Equal(t, models.SeatStatusBooked, seatStatus(t, e, "AF101", "G8"))
	assert.Equal(t, 99, available(t, e, "AF101"))
	require.NoError(t, e.CheckConsistency())

	_, err = e.HoldSeat(ctx, HoldRequest{FlightNo: "AF101", Passenger: draft("Selam Alemu", "2002"), Seats: Candidates("G9")})
	assert.ErrorIs(t, err, models.ErrDuplicateIdentity, "a pending hold counts as a booking for the identity check")

	got, err := e.Hold("hold-1")
	require.NoError(t, err)
	assert.Equal(t, "G8", got.Seat)

	res, err := e.SettleHold(ctx, "hold-1", true)
	require.NoError(t, err)
	assert.Equal(t, "G8", res.Seat)
	assert.Len(t, e.Bookings(), 1)

	_, err = e.SettleHold(ctx, "hold-1", true)
	assert.ErrorIs(t, err, models.ErrHoldNotFound)
	require.NoError(t, e.CheckConsistency())
}

func TestHold_ExpiredOrReleased(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	hold, err := e.HoldSeat(ctx, HoldRequest{FlightNo: "AF101", Passenger: draft("Selam Alemu", "2002"), Seats: Candidates("H1")})
	require.NoError(t, err)
	_, err = e.SettleHold(ctx, hold.ID, false)
	assert.ErrorIs(t, err, models.ErrUserCancelled)
	assert.Equal(t, models.SeatStatusAvailable, seatStatus(t, e, "AF101", "H1"))

	hold, err = e.HoldSeat(ctx, HoldRequest{FlightNo: "AF101", Passenger: draft("Selam Alemu", "2002"), Seats: Candidates("H2")})
	require.NoError(t, err)
	require.NoError(t, e.ReleaseHold(hold.ID, "hold_expired"))
	assert.Equal(t, models.SeatStatusAvailable, seatStatus(t, e, "AF101", "H2"))
	assert.ErrorIs(t, e.ReleaseHold(hold.ID, ""), models.ErrHoldNotFound)

	assert.Empty(t, e.Bookings())
	require.NoError(t, e.CheckConsistency())
}

func TestHold_AccountHolderSettlesByDebit(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	hold, err := e.HoldSeat(ctx, HoldRequest{FlightNo: "AF202", Passenger: draft("Abel Tesfaye", "3003"), Seats: Candidates("A1")})
	require.NoError(t, err)
	assert.False(t, hold.RequiresConfirmation)

	res, err := e.SettleHold(ctx, hold.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 9000.0, res.Balance)
}

func TestCatalog(t *testing.T) {
	e := newTestEngine(t)

	assert.ErrorIs(t, e.AddAircraft(models.Aircraft{Model: "Boeing 737", TotalSeats: 100}), models.ErrAircraftExists)
	assert.ErrorIs(t, e.AddAircraft(models.Aircraft{Model: "", TotalSeats: 10}), models.ErrInvalidInput)
	assert.ErrorIs(t, e.DeleteAircraft("Boeing 737"), models.ErrAircraftInUse)
	assert.ErrorIs(t, e.DeleteAircraft("Concorde"), models.ErrAircraftNotFound)

	_, err := e.AddFlight(models.Flight{FlightNo: "AF101", Plane: "Boeing 737"})
	assert.ErrorIs(t, err, models.ErrFlightExists)
	_, err = e.AddFlight(models.Flight{FlightNo: "AF303", Plane: "Concorde"})
	assert.ErrorIs(t, err, models.ErrAircraftNotFound)

	require.NoError(t, e.AddAircraft(models.Aircraft{Model: "Dash 8", TotalSeats: 70, Features: []string{"propeller"}}))
	f, err := e.AddFlight(models.Flight{FlightNo: "ET404", Destination: "Bahir Dar", Plane: "Dash 8", Capacity: 999, Price: 900})
	require.NoError(t, err)
	assert.Equal(t, 70, f.Capacity)
	assert.Equal(t, 70, f.AvailableSeats)

	assert.Len(t, e.SearchByDestination("bahir"), 1)
	assert.Len(t, e.SearchByDestination("AIR"), 2)
	assert.Empty(t, e.SearchByDestination("Lagos"))
}

func TestDeleteFlight_Cascades(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	book(t, e, "AF101", draft("Abe Kebe", "1"), "A1")
	book(t, e, "AF101", draft("Hanan Daye", "2"), "A2")
	kept := book(t, e, "AF202", draft("Abe Kebe", "1"), "A1")
	_, err := e.HoldSeat(ctx, HoldRequest{FlightNo: "AF101", Passenger: draft("Selam Alemu", "3"), Seats: Candidates("A3")})
	require.NoError(t, err)

	removed, err := e.DeleteFlight("AF101")
	require.NoError(t, err)
	assert.Len(t, removed, 2)

	bookings := e.Bookings()
	require.Len(t, bookings, 1)
	assert.Equal(t, kept.BookingID, bookings[0].ID)
	_, err = e.Flight("AF101")
	assert.ErrorIs(t, err, models.ErrFlightNotFound)
	_, err = e.DeleteFlight("AF101")
	assert.ErrorIs(t, err, models.ErrFlightNotFound)

	require.NoError(t, e.DeleteAircraft("Boeing 737"))
	require.NoError(t, e.CheckConsistency())
}

func TestNotifier(t *testing.T) {
	n := &countingNotifier{}
	e := newTestEngine(t, WithNotifier(n))

	res := book(t, e, "AF101", draft("Abe Kebe", "1"), "A1")
	_, err := e.Cancel(context.Background(), res.BookingID)
	require.NoError(t, err)

	assert.Equal(t, 2, n.calls["AF101"])
	assert.Zero(t, n.calls["AF202"])
}

func TestBookingsForPassenger(t *testing.T) {
	e := newTestEngine(t)
	book(t, e, "AF101", draft("Abe Kebe", "1"), "A1")
	book(t, e, "AF202", draft("Abe Kebe", "1"), "B1")

	views := e.BookingsForPassenger("1")
	require.Len(t, views, 2)
	assert.Equal(t, "Cairo", views[0].Flight.Destination)
	assert.Equal(t, "Abe Kebe", views[0].Passenger.Name)
	assert.Equal(t, "Nairobi", views[1].Flight.Destination)
	assert.Empty(t, e.BookingsForPassenger("404"))

	v, err := e.Booking(views[1].Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, "B1", v.Passenger.Seat)
}
