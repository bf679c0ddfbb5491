// Package postgres keeps the snapshot in three tables. Save replaces their
// contents in one transaction, so a failed save leaves the previous
// snapshot intact.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/elson2121/Airline-Management-System/internal/store"
	"github.com/elson2121/Airline-Management-System/shared/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

var _ store.Store = (*Store)(nil)

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Open connects to url, checks the connection and applies migrations.
func Open(ctx context.Context, url string) (*Store, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	if err := Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return New(pool), nil
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func (s *Store) Load(ctx context.Context) (models.Snapshot, error) {
	var snap models.Snapshot

	rows, err := s.pool.Query(ctx, `
		SELECT flight_no, destination, day_time, distance, plane, duration, total_seats, price
		FROM flights
		ORDER BY position
	`)
	if err != nil {
		return snap, fmt.Errorf("failed to query flights: %w", err)
	}
	snap.Flights, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Flight, error) {
		var f models.Flight
		err := row.Scan(&f.FlightNo, &f.Destination, &f.DayTime, &f.Distance, &f.Plane, &f.Duration, &f.Capacity, &f.Price)
		return f, err
	})
	if err != nil {
		return snap, fmt.Errorf("failed to scan flight: %w", err)
	}

	rows, err = s.pool.Query(ctx, `
		SELECT name, passport, passenger_id, contact, destination, registered_at
		FROM passengers
		ORDER BY position
	`)
	if err != nil {
		return snap, fmt.Errorf("failed to query passengers: %w", err)
	}
	snap.Passengers, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Passenger, error) {
		var p models.Passenger
		err := row.Scan(&p.Name, &p.Passport, &p.ID, &p.Contact, &p.Destination, &p.RegisteredAt)
		return p, err
	})
	if err != nil {
		return snap, fmt.Errorf("failed to scan passenger: %w", err)
	}

	rows, err = s.pool.Query(ctx, `
		SELECT booking_id, flight_no, passenger_id, seat, booked_at, paid
		FROM bookings
		ORDER BY position
	`)
	if err != nil {
		return snap, fmt.Errorf("failed to query bookings: %w", err)
	}
	snap.Bookings, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Booking, error) {
		var b models.Booking
		err := row.Scan(&b.ID, &b.FlightNo, &b.PassengerID, &b.Seat, &b.BookedAt, &b.Paid)
		return b, err
	})
	if err != nil {
		return snap, fmt.Errorf("failed to scan booking: %w", err)
	}

	return snap, nil
}

func (s *Store) Save(ctx context.Context, snap models.Snapshot) (err error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, rollback(ctx, tx))
		}
	}()

	if _, err = tx.Exec(ctx, `TRUNCATE flights, passengers, bookings`); err != nil {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}

	flights := make([][]any, len(snap.Flights))
	for i, f := range snap.Flights {
		flights[i] = []any{i, f.FlightNo, f.Destination, f.DayTime, f.Distance, f.Plane, f.Duration, f.Capacity, f.Price}
	}
	if _, err = tx.CopyFrom(ctx, pgx.Identifier{"flights"},
		[]string{"position", "flight_no", "destination", "day_time", "distance", "plane", "duration", "total_seats", "price"},
		pgx.CopyFromRows(flights)); err != nil {
		return fmt.Errorf("failed to write flights: %w", err)
	}

	passengers := make([][]any, len(snap.Passengers))
	for i, p := range snap.Passengers {
		passengers[i] = []any{i, p.Name, p.Passport, p.ID, p.Contact, p.Destination, p.RegisteredAt}
	}
	if _, err = tx.CopyFrom(ctx, pgx.Identifier{"passengers"},
		[]string{"position", "name", "passport", "passenger_id", "contact", "destination", "registered_at"},
		pgx.CopyFromRows(passengers)); err != nil {
		return fmt.Errorf("failed to write passengers: %w", err)
	}

	bookings := make([][]any, len(snap.Bookings))
	for i, b := range snap.Bookings {
		bookings[i] = []any{i, b.ID, b.FlightNo, b.PassengerID, b.Seat, b.BookedAt, b.Paid}
	}
	if _, err = tx.CopyFrom(ctx, pgx.Identifier{"bookings"},
		[]string{"position", "booking_id", "flight_no", "passenger_id", "seat", "booked_at", "paid"},
		pgx.CopyFromRows(bookings)); err != nil {
		return fmt.Errorf("failed to write bookings: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

func rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to roll back: %w", err)
	}
	return nil
}
