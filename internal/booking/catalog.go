package booking

import (
	"fmt"
	"strings"

	"github.com/elson2121/Airline-Management-System/shared/models"
	"github.com/sirupsen/logrus"
)

var DefaultAircraft = []models.Aircraft{
	{Model: "Boeing 737", TotalSeats: 100},
	{Model: "Airbus A320", TotalSeats: 100},
}

var DefaultFlights = []models.Flight{
	{FlightNo: "AF101", Destination: "Cairo", DayTime: "Mon 08:00 AM", Distance: "1200 km", Plane: "Boeing 737", Duration: "2h", Capacity: 100, Price: 2500},
	{FlightNo: "AF202", Destination: "Nairobi", DayTime: "Tue 10:30 AM", Distance: "1800 km", Plane: "Airbus A320", Duration: "3h", Capacity: 100, Price: 3000},
}

// Seed registers the default aircraft that are missing and, when the engine
// has no flights at all, the default schedule. It reports whether flights
// were added.
func (e *Engine) Seed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, a := range DefaultAircraft {
		if _, ok := e.aircraft[a.Model]; !ok {
			e.putAircraft(a)
		}
	}
	if len(e.flights) > 0 {
		return false
	}
	for _, f := range DefaultFlights {
		e.putFlight(f)
	}
	e.log.WithField("flights", len(DefaultFlights)).Info("Seeded default schedule")
	return true
}

func (e *Engine) AddAircraft(a models.Aircraft) error {
	a.Model = strings.TrimSpace(a.Model)
	if a.Model == "" || a.TotalSeats <= 0 {
		return fmt.Errorf("aircraft needs a model and a positive seat count: %w", models.ErrInvalidInput)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.aircraft[a.Model]; ok {
		return fmt.Errorf("aircraft %s: %w", a.Model, models.ErrAircraftExists)
	}
	e.putAircraft(a)
	e.log.WithField("model", a.Model).Info("Aircraft added")
	return nil
}

func (e *Engine) putAircraft(a models.Aircraft) {
	if _, ok := e.aircraft[a.Model]; !ok {
		e.planeOrder = append(e.planeOrder, a.Model)
	}
	e.aircraft[a.Model] = a
}

// DeleteAircraft refuses to remove a model that any flight is scheduled on.
func (e *Engine) DeleteAircraft(model string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.aircraft[model]; !ok {
		return fmt.Errorf("aircraft %s: %w", model, models.ErrAircraftNotFound)
	}
	for _, no := range e.flightOrder {
		if e.flights[no].flight.Plane == model {
			return fmt.Errorf("aircraft %s used by flight %s: %w", model, no, models.ErrAircraftInUse)
		}
	}
	delete(e.aircraft, model)
	e.planeOrder = remove(e.planeOrder, model)
	e.log.WithField("model", model).Info("Aircraft deleted")
	return nil
}

func (e *Engine) Aircraft() []models.Aircraft {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]models.Aircraft, 0, len(e.planeOrder))
	for _, m := range e.planeOrder {
		out = append(out, e.aircraft[m])
	}
	return out
}

// AddFlight schedules f on a known aircraft. Capacity is taken from the
// aircraft, whatever f carries.
func (e *Engine) AddFlight(f models.Flight) (models.Flight, error) {
	f.FlightNo = strings.TrimSpace(f.FlightNo)
	if f.FlightNo == "" || f.Price < 0 {
		return models.Flight{}, fmt.Errorf("flight needs a number and a non-negative price: %w", models.ErrInvalidInput)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.flights[f.FlightNo]; ok {
		return models.Flight{}, fmt.Errorf("flight %s: %w", f.FlightNo, models.ErrFlightExists)
	}
	plane, ok := e.aircraft[f.Plane]
	if !ok {
		return models.Flight{}, fmt.Errorf("aircraft %s: %w", f.Plane, models.ErrAircraftNotFound)
	}
	f.Capacity = plane.TotalSeats

	fs := e.putFlight(f)
	e.log.WithFields(logrus.Fields{
		"flight": f.FlightNo,
		"plane":  f.Plane,
	}).Info("Flight added")
	return fs.view(), nil
}

func (e *Engine) putFlight(f models.Flight) *flightState {
	fs := newFlightState(f)
	e.flights[f.FlightNo] = fs
	e.flightOrder = append(e.flightOrder, f.FlightNo)
	return fs
}

// DeleteFlight removes a flight together with every booking, roster entry
// and pending hold on it. The removed bookings are returned.
func (e *Engine) DeleteFlight(flightNo string) ([]models.Booking, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	fs, err := e.flightState(flightNo)
	if err != nil {
		return nil, err
	}
	for id, h := range e.holds {
		if h.FlightNo == flightNo {
			delete(e.holds, id)
		}
	}
	fs.roster.Clear()
	removed := e.ledger.RemoveByFlight(flightNo)
	delete(e.flights, flightNo)
	e.flightOrder = remove(e.flightOrder, flightNo)

	e.log.WithFields(logrus.Fields{
		"flight":   flightNo,
		"bookings": len(removed),
	}).Info("Flight deleted")
	return removed, nil
}

func remove(list []string, v string) []string {
	out := list[:0]
	for _, s := range list {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}
