// Package seatmap tracks which seats of one flight are occupied.
//
// Every flight gets the same 10x10 grid, columns A..J and rows 1..10,
// regardless of the capacity its aircraft declares.
package seatmap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/elson2121/Airline-Management-System/shared/models"
)

const (
	Rows    = 10
	Columns = "ABCDEFGHIJ"
	Size    = Rows * len(Columns)
)

// SeatMap is not safe for concurrent use; the booking engine serialises access.
type SeatMap struct {
	occupied map[string]bool
	taken    int
}

// New returns a grid with every seat free.
func New() *SeatMap {
	m := &SeatMap{occupied: make(map[string]bool, Size)}
	for row := 1; row <= Rows; row++ {
		for _, col := range Columns {
			m.occupied[seatID(col, row)] = false
		}
	}
	return m
}

func seatID(col rune, row int) string {
	return string(col) + strconv.Itoa(row)
}

// Normalize upper-cases a seat id and strips surrounding whitespace.
func Normalize(seat string) string {
	return strings.ToUpper(strings.TrimSpace(seat))
}

// IsValidFormat reports whether seat looks like a seat id: at least two
// characters, a letter followed by a digit. It says nothing about existence.
func IsValidFormat(seat string) bool {
	s := Normalize(seat)
	if len(s) < 2 {
		return false
	}
	return s[0] >= 'A' && s[0] <= 'Z' && s[1] >= '0' && s[1] <= '9'
}

// Exists reports whether seat is on the grid.
func (m *SeatMap) Exists(seat string) bool {
	_, ok := m.occupied[Normalize(seat)]
	return ok
}

// IsFree reports whether seat exists and is unoccupied.
func (m *SeatMap) IsFree(seat string) bool {
	taken, ok := m.occupied[Normalize(seat)]
	return ok && !taken
}

// Check runs the same validation as Reserve without mutating anything.
func (m *SeatMap) Check(seat string) error {
	s := Normalize(seat)
	if !IsValidFormat(s) {
		return fmt.Errorf("seat %q: %w", seat, models.ErrInvalidSeatFormat)
	}
	taken, ok := m.occupied[s]
	if !ok {
		return fmt.Errorf("seat %s: %w", s, models.ErrSeatUnknown)
	}
	if taken {
		return fmt.Errorf("seat %s: %w", s, models.ErrSeatUnavailable)
	}
	return nil
}

// Reserve marks seat occupied and returns its normalised id.
func (m *SeatMap) Reserve(seat string) (string, error) {
	if err := m.Check(seat); err != nil {
		return "", err
	}
	s := Normalize(seat)
	m.occupied[s] = true
	m.taken++
	return s, nil
}

// Release frees seat. Unknown or already free seats are ignored.
func (m *SeatMap) Release(seat string) {
	s := Normalize(seat)
	if taken, ok := m.occupied[s]; ok && taken {
		m.occupied[s] = false
		m.taken--
	}
}

// Occupied returns the number of taken seats.
func (m *SeatMap) Occupied() int {
	return m.taken
}

// Seats returns the grid in row-major order.
func (m *SeatMap) Seats() []models.SeatState {
	out := make([]models.SeatState, 0, Size)
	for row := 1; row <= Rows; row++ {
		for _, col := range Columns {
			id := seatID(col, row)
			status := models.SeatStatusAvailable
			if m.occupied[id] {
				status = models.SeatStatusBooked
			}
			out = append(out, models.SeatState{
				Seat:   id,
				Row:    row,
				Column: string(col),
				Status: status,
			})
		}
	}
	return out
}
