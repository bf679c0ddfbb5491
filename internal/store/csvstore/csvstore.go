// Package csvstore keeps the snapshot in three comma-separated text files:
// flights.txt, passengers.txt and bookings.txt.
package csvstore

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/elson2121/Airline-Management-System/internal/store"
	"github.com/elson2121/Airline-Management-System/shared/models"
	"github.com/sirupsen/logrus"
)

const (
	FlightsFile    = "flights.txt"
	PassengersFile = "passengers.txt"
	BookingsFile   = "bookings.txt"
)

type Store struct {
	dir string
	log *logrus.Entry
}

var _ store.Store = (*Store)(nil)

func New(dir string, log *logrus.Entry) *Store {
	return &Store{dir: dir, log: log.WithField("component", "csvstore")}
}

func (s *Store) Load(ctx context.Context) (models.Snapshot, error) {
	var snap models.Snapshot

	err := s.readFile(FlightsFile, 8, func(rec []string) error {
		f, err := parseFlight(rec)
		if err == nil {
			snap.Flights = append(snap.Flights, f)
		}
		return err
	})
	if err != nil {
		return models.Snapshot{}, err
	}

	err = s.readFile(PassengersFile, 6, func(rec []string) error {
		p, err := parsePassenger(rec)
		if err == nil {
			snap.Passengers = append(snap.Passengers, p)
		}
		return err
	})
	if err != nil {
		return models.Snapshot{}, err
	}

	err = s.readFile(BookingsFile, 6, func(rec []string) error {
		b, err := parseBooking(rec)
		if err == nil {
			snap.Bookings = append(snap.Bookings, b)
		}
		return err
	})
	if err != nil {
		return models.Snapshot{}, err
	}

	return snap, nil
}

// readFile feeds every record with the expected field count to fn. Missing
// files read as empty; malformed lines are logged and skipped.
func (s *Store) readFile(name string, fields int, fn func([]string) error) error {
	path := filepath.Join(s.dir, name)
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			s.log.WithError(err).WithField("file", name).Warn("Skipping unreadable line")
			continue
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		line, _ := r.FieldPos(0)
		if len(rec) != fields {
			s.log.WithFields(logrus.Fields{"file": name, "line": line, "fields": len(rec)}).Warn("Skipping line with wrong field count")
			continue
		}
		if err := fn(rec); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{"file": name, "line": line}).Warn("Skipping malformed line")
		}
	}
}

func (s *Store) Save(ctx context.Context, snap models.Snapshot) error {
	flights := make([][]string, 0, len(snap.Flights))
	for _, f := range snap.Flights {
		flights = append(flights, formatFlight(f))
	}
	passengers := make([][]string, 0, len(snap.Passengers))
	for _, p := range snap.Passengers {
		passengers = append(passengers, formatPassenger(p))
	}
	bookings := make([][]string, 0, len(snap.Bookings))
	for _, b := range snap.Bookings {
		bookings = append(bookings, formatBooking(b))
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	files := []struct {
		name    string
		records [][]string
	}{
		{FlightsFile, flights},
		{PassengersFile, passengers},
		{BookingsFile, bookings},
	}
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.writeFile(file.name, file.records); err != nil {
			return err
		}
	}
	return nil
}

// writeFile replaces the file atomically by writing a sibling .tmp first.
func (s *Store) writeFile(name string, records [][]string) error {
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating %s: %w", tmp, err)
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		return errors.Join(fmt.Errorf("writing %s: %w", tmp, err), f.Close(), os.Remove(tmp))
	}
	if err := f.Close(); err != nil {
		return errors.Join(fmt.Errorf("closing %s: %w", tmp, err), os.Remove(tmp))
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

func (s *Store) Close() error {
	return nil
}

func formatFlight(f models.Flight) []string {
	return []string{
		f.FlightNo,
		f.Destination,
		f.DayTime,
		f.Distance,
		f.Plane,
		f.Duration,
		strconv.Itoa(f.Capacity),
		strconv.FormatFloat(f.Price, 'f', -1, 64),
	}
}

func parseFlight(rec []string) (models.Flight, error) {
	capacity, err := strconv.Atoi(rec[6])
	if err != nil {
		return models.Flight{}, fmt.Errorf("total seats: %w", err)
	}
	price, err := strconv.ParseFloat(rec[7], 64)
	if err != nil {
		return models.Flight{}, fmt.Errorf("price: %w", err)
	}
	return models.Flight{
		FlightNo:    rec[0],
		Destination: rec[1],
		DayTime:     rec[2],
		Distance:    rec[3],
		Plane:       rec[4],
		Duration:    rec[5],
		Capacity:    capacity,
		Price:       price,
	}, nil
}

func formatPassenger(p models.Passenger) []string {
	return []string{
		p.Name,
		p.Passport,
		p.ID,
		p.Contact,
		p.Destination,
		strconv.FormatInt(p.RegisteredAt.Unix(), 10),
	}
}

func parsePassenger(rec []string) (models.Passenger, error) {
	registered, err := parseEpoch(rec[5])
	if err != nil {
		return models.Passenger{}, fmt.Errorf("registration time: %w", err)
	}
	return models.Passenger{
		Name:         rec[0],
		Passport:     rec[1],
		ID:           rec[2],
		Contact:      rec[3],
		Destination:  rec[4],
		RegisteredAt: registered,
	}, nil
}

func formatBooking(b models.Booking) []string {
	paid := "0"
	if b.Paid {
		paid = "1"
	}
	return []string{
		b.ID,
		b.FlightNo,
		b.PassengerID,
		b.Seat,
		strconv.FormatInt(b.BookedAt.Unix(), 10),
		paid,
	}
}

func parseBooking(rec []string) (models.Booking, error) {
	booked, err := parseEpoch(rec[4])
	if err != nil {
		return models.Booking{}, fmt.Errorf("booking time: %w", err)
	}
	paid, err := strconv.ParseBool(rec[5])
	if err != nil {
		return models.Booking{}, fmt.Errorf("paid flag: %w", err)
	}
	return models.Booking{
		ID:          rec[0],
		FlightNo:    rec[1],
		PassengerID: rec[2],
		Seat:        rec[3],
		BookedAt:    booked,
		Paid:        paid,
	}, nil
}

func parseEpoch(s string) (time.Time, error) {
	secs, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(secs, 0), nil
}
