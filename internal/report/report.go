// Package report renders engine state as plain-text tables for the console.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/elson2121/Airline-Management-System/internal/seatmap"
	"github.com/elson2121/Airline-Management-System/shared/models"
)

const timeLayout = "2006-01-02 15:04:05"

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func price(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

func Flights(w io.Writer, flights []models.Flight) error {
	fmt.Fprintln(w, "===== AVAILABLE FLIGHTS =====")
	if len(flights) == 0 {
		fmt.Fprintln(w, "No flights scheduled.")
		return nil
	}
	tw := table(w)
	fmt.Fprintln(tw, "Code\tDestination\tDeparture\tDistance\tDuration\tAircraft\tSeats\tPrice")
	for _, f := range flights {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%d\t%s ETB\n",
			f.FlightNo, f.Destination, f.DayTime, f.Distance, f.Duration, f.Plane, f.AvailableSeats, price(f.Price))
	}
	return tw.Flush()
}

func SearchResults(w io.Writer, flights []models.Flight) {
	fmt.Fprintln(w, "===== SEARCH RESULTS =====")
	if len(flights) == 0 {
		fmt.Fprintln(w, "No flights found!")
		return
	}
	for _, f := range flights {
		fmt.Fprintf(w, "Flight: %s | %s | %s | %s | Seats: %d | Price: %s ETB\n",
			f.FlightNo, f.Destination, f.DayTime, f.Duration, f.AvailableSeats, price(f.Price))
	}
}

// SeatMap draws the 10x10 grid with [X] for booked seats.
func SeatMap(w io.Writer, flightNo string, seats []models.SeatState) {
	fmt.Fprintf(w, "===== SEAT MAP FOR FLIGHT %s =====\n\n", flightNo)
	booked := make(map[string]bool, len(seats))
	for _, s := range seats {
		booked[s.Seat] = s.Status == models.SeatStatusBooked
	}

	var b strings.Builder
	b.WriteString("  ")
	for _, col := range seatmap.Columns {
		fmt.Fprintf(&b, "%4c", col)
	}
	b.WriteByte('\n')
	for row := 1; row <= seatmap.Rows; row++ {
		fmt.Fprintf(&b, "%2d", row)
		for _, col := range seatmap.Columns {
			cell := "[ ]"
			if booked[string(col)+strconv.Itoa(row)] {
				cell = "[X]"
			}
			fmt.Fprintf(&b, "%4s", cell)
		}
		b.WriteByte('\n')
	}
	b.WriteString("\n[X] = Booked\t[ ] = Available\n")
	io.WriteString(w, b.String())
}

func BankStatement(w io.Writer, accounts []models.BankAccount) error {
	fmt.Fprintln(w, "===== BANK STATEMENT =====")
	tw := table(w)
	fmt.Fprintln(tw, "Name\tBalance (ETB)")
	for _, a := range accounts {
		fmt.Fprintf(tw, "%s\t%s\n", a.Name, price(a.Balance))
	}
	return tw.Flush()
}

func Passengers(w io.Writer, passengers []models.Passenger) error {
	if len(passengers) == 0 {
		fmt.Fprintln(w, "No passengers registered yet.")
		return nil
	}
	fmt.Fprintln(w, "===== ALL PASSENGERS =====")
	tw := table(w)
	fmt.Fprintln(tw, "Name\tDestination\tPassport\tID\tSeat\tRegistration Date")
	for _, p := range passengers {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.Name, p.Destination, p.Passport, p.ID, p.Seat, formatTime(p.RegisteredAt))
	}
	return tw.Flush()
}

func Bookings(w io.Writer, bookings []models.Booking) error {
	if len(bookings) == 0 {
		fmt.Fprintln(w, "No bookings found in the system.")
		return nil
	}
	fmt.Fprintln(w, "===== ALL BOOKINGS =====")
	tw := table(w)
	fmt.Fprintln(tw, "Booking ID\tFlight\tPassenger ID\tSeat\tBooking Time\tStatus")
	for _, b := range bookings {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			b.ID, b.FlightNo, b.PassengerID, b.Seat, formatTime(b.BookedAt), paidStatus(b.Paid))
	}
	return tw.Flush()
}

// CurrentBookings shows every booking a passenger holds with their details.
func CurrentBookings(w io.Writer, views []models.BookingView) {
	if len(views) == 0 {
		fmt.Fprintln(w, "No booking found for this ID!")
		return
	}
	for _, v := range views {
		fmt.Fprintln(w, "===== YOUR BOOKING =====")
		fmt.Fprintf(w, "Booking ID: %s\n", v.Booking.ID)
		fmt.Fprintf(w, "Flight: %s to %s (%s)\n", v.Booking.FlightNo, v.Flight.Destination, v.Flight.DayTime)
		fmt.Fprintf(w, "Seat: %s\n", v.Booking.Seat)
		fmt.Fprintf(w, "Booking Time: %s\n", formatTime(v.Booking.BookedAt))
		fmt.Fprintf(w, "Status: %s\n", paidStatus(v.Booking.Paid))
		if v.Passenger.Name != "" {
			fmt.Fprintln(w, "Passenger Details:")
			fmt.Fprintf(w, "Name: %s\nPassport: %s\nContact: %s\n", v.Passenger.Name, v.Passenger.Passport, v.Passenger.Contact)
		}
	}
}

func CurrentState(w io.Writer, aircraft []models.Aircraft, flights []models.Flight) {
	fmt.Fprintln(w, "===== CURRENT SYSTEM STATE =====")
	fmt.Fprintln(w, "AIRCRAFT:")
	if len(aircraft) == 0 {
		fmt.Fprintln(w, "No aircraft available.")
	}
	for _, a := range aircraft {
		fmt.Fprintf(w, "- %s (%d seats)", a.Model, a.TotalSeats)
		if len(a.Features) > 0 {
			fmt.Fprintf(w, " [%s]", strings.Join(a.Features, ", "))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, "FLIGHTS:")
	if len(flights) == 0 {
		fmt.Fprintln(w, "No flights scheduled.")
	}
	for _, f := range flights {
		fmt.Fprintf(w, "%s to %s (%s) - %d seats available\n", f.FlightNo, f.Destination, f.Plane, f.AvailableSeats)
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(timeLayout)
}

func paidStatus(paid bool) string {
	if paid {
		return "Paid"
	}
	return "Unpaid"
}
