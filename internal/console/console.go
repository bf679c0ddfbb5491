// Package console is the interactive operator front end: a passenger menu,
// an admin menu behind a password and the bank statement.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/elson2121/Airline-Management-System/internal/booking"
	"github.com/elson2121/Airline-Management-System/internal/report"
	"github.com/elson2121/Airline-Management-System/internal/service"
	"github.com/elson2121/Airline-Management-System/internal/validate"
	"github.com/elson2121/Airline-Management-System/shared/models"
	"github.com/sirupsen/logrus"
)

const maxLoginAttempts = 3

var errInputClosed = errors.New("input closed")

type Console struct {
	svc *service.Service
	in  *bufio.Scanner
	eof bool
	out io.Writer
	log *logrus.Entry
}

func New(svc *service.Service, in io.Reader, out io.Writer, log *logrus.Entry) *Console {
	return &Console{
		svc: svc,
		in:  bufio.NewScanner(in),
		out: out,
		log: log.WithField("component", "console"),
	}
}

// Run shows the main menu until the operator exits or input ends, then
// saves the state one last time.
func (c *Console) Run(ctx context.Context) error {
	c.println("===== AIRLINE RESERVATION SYSTEM =====")

	err := c.mainMenu(ctx)
	if err != nil && !errors.Is(err, errInputClosed) {
		return err
	}
	if err := c.svc.Save(ctx); err != nil {
		c.printf("Warning: could not save data: %v\n", err)
		return err
	}
	c.println("Thank you for using the Airline Reservation System. Goodbye!")
	return nil
}

func (c *Console) mainMenu(ctx context.Context) error {
	for {
		c.println("\n===== MAIN MENU =====")
		c.println("1. Admin Login")
		c.println("2. Passenger Menu")
		c.println("3. Bank Statement")
		c.println("4. Exit")

		choice, err := c.readLine("Enter your choice: ")
		if err != nil {
			return err
		}
		switch choice {
		case "1":
			err = c.adminLogin(ctx)
		case "2":
			err = c.passengerMenu(ctx)
		case "3":
			err = report.BankStatement(c.out, c.svc.Accounts(ctx))
		case "4":
			return nil
		default:
			c.println("Invalid choice! Please try again.")
		}
		if err != nil {
			return err
		}
	}
}

func (c *Console) passengerMenu(ctx context.Context) error {
	for {
		c.println("\n===== PASSENGER MENU =====")
		c.println("1. View Available Flights")
		c.println("2. Search Flights by Destination")
		c.println("3. Book a Flight")
		c.println("4. View Current Booking")
		c.println("5. Postpone Booking")
		c.println("6. Cancel Booking")
		c.println("7. Back to Main Menu")

		choice, err := c.readLine("Enter your choice: ")
		if err != nil {
			return err
		}
		switch choice {
		case "1":
			err = report.Flights(c.out, c.svc.Flights(ctx, ""))
		case "2":
			err = c.searchFlights(ctx)
		case "3":
			err = c.bookFlight(ctx)
		case "4":
			err = c.viewBooking(ctx)
		case "5":
			err = c.postponeBooking(ctx)
		case "6":
			err = c.cancelBooking(ctx, true)
		case "7":
			return nil
		default:
			c.println("Invalid choice! Please try again.")
		}
		if err != nil {
			return err
		}
	}
}

func (c *Console) adminLogin(ctx context.Context) error {
	for attempt := 1; attempt <= maxLoginAttempts; attempt++ {
		password, err := c.readLine("Enter admin password: ")
		if err != nil {
			return err
		}
		if c.svc.Authorize(password) == nil {
			c.println("Login successful!")
			return c.adminMenu(ctx)
		}
		c.printf("Incorrect password! %d attempt(s) left.\n", maxLoginAttempts-attempt)
	}
	c.log.Warn("Admin login locked out after failed attempts")
	return nil
}

func (c *Console) adminMenu(ctx context.Context) error {
	for {
		c.println("\n===== ADMIN MENU =====")
		c.println("1. Add Aircraft")
		c.println("2. Add Flight")
		c.println("3. Delete Aircraft")
		c.println("4. Delete Flight")
		c.println("5. View Current State")
		c.println("6. View All Passengers")
		c.println("7. View All Bookings")
		c.println("8. Cancel a Booking")
		c.println("9. Logout")

		choice, err := c.readLine("Enter your choice: ")
		if err != nil {
			return err
		}
		switch choice {
		case "1":
			err = c.addAircraft(ctx)
		case "2":
			err = c.addFlight(ctx)
		case "3":
			err = c.deleteAircraft(ctx)
		case "4":
			err = c.deleteFlight(ctx)
		case "5":
			report.CurrentState(c.out, c.svc.Aircraft(ctx), c.svc.Flights(ctx, ""))
		case "6":
			err = c.listPassengers(ctx)
		case "7":
			err = report.Bookings(c.out, c.svc.Bookings(ctx))
		case "8":
			err = c.cancelBooking(ctx, false)
		case "9":
			c.println("Logged out.")
			return nil
		default:
			c.println("Invalid choice! Please try again.")
		}
		if err != nil {
			return err
		}
	}
}

func (c *Console) searchFlights(ctx context.Context) error {
	dest, err := c.readLine("Enter destination: ")
	if err != nil {
		return err
	}
	report.SearchResults(c.out, c.svc.Flights(ctx, dest))
	return nil
}

func (c *Console) bookFlight(ctx context.Context) error {
	if err := report.Flights(c.out, c.svc.Flights(ctx, "")); err != nil {
		return err
	}
	flightNo, err := c.readLine("Enter flight code: ")
	if err != nil {
		return err
	}
	flight, err := c.svc.Flight(ctx, strings.ToUpper(flightNo))
	if err != nil || flight.AvailableSeats <= 0 {
		c.println("Flight not available!")
		return nil
	}

	draft, err := c.readDraft()
	if err != nil {
		return err
	}

	c.showSeatMap(ctx, flight.FlightNo)
	res, err := c.svc.Book(ctx, booking.BookRequest{
		FlightNo:  flight.FlightNo,
		Passenger: draft,
		Seats:     &seatPrompt{c: c},
		Confirm:   booking.ConfirmFunc(c.confirmPayment),
	})
	if !c.report(err) {
		return c.inputErr()
	}

	c.println("\nBooking successful!")
	c.printf("Booking ID: %s\nFlight: %s\nSeat: %s\n", res.BookingID, res.FlightNo, res.Seat)
	if res.HasAccount {
		c.printf("Payment of %.2f ETB deducted. Remaining balance: %.2f ETB\n", res.Amount, res.Balance)
	} else {
		c.printf("Payment of %.2f ETB confirmed.\n", res.Amount)
	}
	return nil
}

func (c *Console) viewBooking(ctx context.Context) error {
	id, err := c.readLine("Enter your ID number: ")
	if err != nil {
		return err
	}
	report.CurrentBookings(c.out, c.svc.PassengerBookings(ctx, id))
	return nil
}

func (c *Console) postponeBooking(ctx context.Context) error {
	bookingID, err := c.readLine("Enter booking ID: ")
	if err != nil {
		return err
	}
	verify, err := c.readLine("Enter your ID number for verification: ")
	if err != nil {
		return err
	}

	views := c.svc.PassengerBookings(ctx, verify)
	var current *models.BookingView
	for i := range views {
		if views[i].Booking.ID == bookingID {
			current = &views[i]
		}
	}
	if current == nil {
		c.println("Booking not found or verification failed!")
		return nil
	}
	report.CurrentBookings(c.out, []models.BookingView{*current})

	c.println("\nEnter the new passenger details.")
	draft, err := c.readDraft()
	if err != nil {
		return err
	}

	c.showSeatMap(ctx, current.Booking.FlightNo)
	b, err := c.svc.Postpone(ctx, booking.PostponeRequest{
		BookingID:         bookingID,
		VerifyPassengerID: verify,
		Passenger:         draft,
		Seats:             &seatPrompt{c: c},
	})
	if !c.report(err) {
		return c.inputErr()
	}
	c.printf("Booking %s updated. New seat: %s\n", b.ID, b.Seat)
	return nil
}

// cancelBooking asks for the booking id and, for passengers, a confirmation.
func (c *Console) cancelBooking(ctx context.Context, ask bool) error {
	bookingID, err := c.readLine("Enter booking ID to cancel: ")
	if err != nil {
		return err
	}
	if ask {
		ok, err := c.readYesNo("Are you sure you want to cancel this booking? (y/n): ")
		if err != nil {
			return err
		}
		if !ok {
			c.println("Cancellation aborted.")
			return nil
		}
	}

	b, err := c.svc.Cancel(ctx, bookingID)
	if !c.report(err) {
		return c.inputErr()
	}
	c.printf("Booking %s cancelled. Seat %s on flight %s is now available.\n", b.ID, b.Seat, b.FlightNo)
	return nil
}

func (c *Console) addAircraft(ctx context.Context) error {
	model, err := c.readLine("Enter aircraft model: ")
	if err != nil {
		return err
	}
	seats, err := c.readInt("Enter total seats: ")
	if err != nil {
		return err
	}
	features, err := c.readLine("Enter features (comma separated, optional): ")
	if err != nil {
		return err
	}

	a := models.Aircraft{Model: model, TotalSeats: seats}
	for _, f := range strings.Split(features, ",") {
		if f = strings.TrimSpace(f); f != "" {
			a.Features = append(a.Features, f)
		}
	}
	if c.report(c.svc.AddAircraft(ctx, a)) {
		c.println("Aircraft added successfully!")
	}
	return nil
}

func (c *Console) addFlight(ctx context.Context) error {
	report.CurrentState(c.out, c.svc.Aircraft(ctx), nil)

	var f models.Flight
	fields := []struct {
		label string
		dst   *string
	}{
		{"Enter flight code: ", &f.FlightNo},
		{"Enter destination: ", &f.Destination},
		{"Enter departure day and time: ", &f.DayTime},
		{"Enter distance: ", &f.Distance},
		{"Enter aircraft model: ", &f.Plane},
		{"Enter duration: ", &f.Duration},
	}
	for _, field := range fields {
		v, err := c.readLine(field.label)
		if err != nil {
			return err
		}
		*field.dst = v
	}
	price, err := c.readFloat("Enter ticket price: ")
	if err != nil {
		return err
	}
	f.FlightNo = strings.ToUpper(f.FlightNo)
	f.Price = price

	added, err := c.svc.AddFlight(ctx, f)
	if c.report(err) {
		c.printf("Flight %s added with %d seats.\n", added.FlightNo, added.Capacity)
	}
	return nil
}

func (c *Console) deleteAircraft(ctx context.Context) error {
	model, err := c.readLine("Enter aircraft model to delete: ")
	if err != nil {
		return err
	}
	if c.report(c.svc.DeleteAircraft(ctx, model)) {
		c.println("Aircraft deleted successfully!")
	}
	return nil
}

func (c *Console) deleteFlight(ctx context.Context) error {
	flightNo, err := c.readLine("Enter flight code to delete: ")
	if err != nil {
		return err
	}
	removed, err := c.svc.DeleteFlight(ctx, strings.ToUpper(flightNo))
	if c.report(err) {
		c.printf("Flight deleted. %d booking(s) cancelled.\n", len(removed))
	}
	return nil
}

func (c *Console) listPassengers(ctx context.Context) error {
	return report.Passengers(c.out, c.svc.Engine().AllPassengers())
}

// readDraft asks for each passenger field until it passes validation.
func (c *Console) readDraft() (models.PassengerDraft, error) {
	var d models.PassengerDraft
	fields := []struct {
		label string
		valid func(string) bool
		hint  string
		dst   *string
	}{
		{"Enter passenger name: ", validate.Name, "Name must be 1-20 characters.", &d.Name},
		{"Enter passport number: ", validate.Passport, "Passport must be up to 10 letters or digits.", &d.Passport},
		{"Enter ID number: ", validate.ID, "ID must be up to 10 digits.", &d.ID},
		{"Enter phone number: ", validate.Phone, "Phone must be up to 15 digits.", &d.Contact},
	}
	for _, field := range fields {
		for {
			v, err := c.readLine(field.label)
			if err != nil {
				return d, err
			}
			if field.valid(v) {
				*field.dst = v
				break
			}
			c.println("Invalid input! " + field.hint)
		}
	}
	return d, nil
}

func (c *Console) showSeatMap(ctx context.Context, flightNo string) {
	if seats, err := c.svc.SeatMap(ctx, flightNo); err == nil {
		report.SeatMap(c.out, flightNo, seats)
	}
}

// confirmPayment runs inside the engine's critical section.
func (c *Console) confirmPayment(_ context.Context, flight models.Flight, amount float64) bool {
	c.println("You don't have a bank account with us.")
	ok, err := c.readYesNo(fmt.Sprintf("Confirm payment of %.2f ETB for flight %s? (y/n): ", amount, flight.FlightNo))
	return err == nil && ok
}

// report prints err for the operator and reports whether the operation
// went through. A save failure is shown as a warning only.
func (c *Console) report(err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, service.ErrPersist):
		c.printf("Warning: changes could not be saved: %v\n", err)
		return true
	default:
		c.printf("Error: %s\n", message(err))
		return false
	}
}

// inputErr lets the menus unwind once an operation failed because input
// ran out partway through it.
func (c *Console) inputErr() error {
	if c.eof {
		return errInputClosed
	}
	return nil
}

func message(err error) string {
	switch {
	case errors.Is(err, models.ErrFlightUnavailable):
		return "Flight not available!"
	case errors.Is(err, models.ErrDuplicateIdentity):
		return "This ID already has a booking on this flight!"
	case errors.Is(err, models.ErrInsufficientFunds):
		return "Insufficient balance! Booking cancelled."
	case errors.Is(err, models.ErrUserCancelled):
		return "Booking cancelled."
	case errors.Is(err, models.ErrBookingNotFound):
		return "No booking found with this ID!"
	case errors.Is(err, models.ErrVerificationFailed):
		return "Verification failed! ID does not match the booking."
	default:
		return err.Error()
	}
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *Console) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}
