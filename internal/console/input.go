package console

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/elson2121/Airline-Management-System/internal/seatmap"
	"github.com/elson2121/Airline-Management-System/shared/models"
)

func (c *Console) readLine(prompt string) (string, error) {
	c.printf("%s", prompt)
	if !c.in.Scan() {
		c.eof = true
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func (c *Console) readInt(prompt string) (int, error) {
	for {
		s, err := c.readLine(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(s)
		if err == nil && n > 0 {
			return n, nil
		}
		c.println("Please enter a positive whole number.")
	}
}

func (c *Console) readFloat(prompt string) (float64, error) {
	for {
		s, err := c.readLine(prompt)
		if err != nil {
			return 0, err
		}
		f, err := strconv.ParseFloat(s, 64)
		if err == nil && f >= 0 {
			return f, nil
		}
		c.println("Please enter a valid amount.")
	}
}

func (c *Console) readYesNo(prompt string) (bool, error) {
	for {
		s, err := c.readLine(prompt)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(s) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		c.println("Please answer y or n.")
	}
}

// seatPrompt is a SeatSource that asks the operator for a seat until one is
// accepted or input ends. It runs inside the engine's critical section and
// must not call back into the engine.
type seatPrompt struct {
	c *Console
}

func (p *seatPrompt) Next(context.Context) (string, bool) {
	seat, err := p.c.readLine("Enter seat number (e.g. A1): ")
	if err != nil {
		return "", false
	}
	return seat, true
}

func (p *seatPrompt) Rejected(seat string, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidSeatFormat):
		p.c.println("Invalid seat format! Please use a letter followed by a row number, like A1.")
	case errors.Is(err, models.ErrSeatUnknown):
		p.c.printf("Seat %s does not exist! Rows run 1-%d and columns %c-%c.\n",
			seatmap.Normalize(seat), seatmap.Rows, seatmap.Columns[0], seatmap.Columns[len(seatmap.Columns)-1])
	case errors.Is(err, models.ErrSeatUnavailable):
		p.c.println("Seat already booked! Please choose another seat.")
	default:
		p.c.printf("Seat rejected: %v\n", err)
	}
}
