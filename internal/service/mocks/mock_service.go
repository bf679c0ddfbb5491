package mocks

import (
	"context"

	"github.com/elson2121/Airline-Management-System/internal/booking"
	"github.com/elson2121/Airline-Management-System/shared/models"
	"github.com/stretchr/testify/mock"
)

// MockService is a mock implementation of service.BookingService
type MockService struct {
	mock.Mock
}

func (m *MockService) Flights(ctx context.Context, destination string) []models.Flight {
	args := m.Called(ctx, destination)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.Flight)
}

func (m *MockService) Flight(ctx context.Context, flightNo string) (models.Flight, error) {
	args := m.Called(ctx, flightNo)
	return args.Get(0).(models.Flight), args.Error(1)
}

func (m *MockService) SeatMap(ctx context.Context, flightNo string) ([]models.SeatState, error) {
	args := m.Called(ctx, flightNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SeatState), args.Error(1)
}

func (m *MockService) AddFlight(ctx context.Context, f models.Flight) (models.Flight, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(models.Flight), args.Error(1)
}

func (m *MockService) DeleteFlight(ctx context.Context, flightNo string) ([]models.Booking, error) {
	args := m.Called(ctx, flightNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockService) Aircraft(ctx context.Context) []models.Aircraft {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.Aircraft)
}

func (m *MockService) AddAircraft(ctx context.Context, a models.Aircraft) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockService) DeleteAircraft(ctx context.Context, model string) error {
	args := m.Called(ctx, model)
	return args.Error(0)
}

func (m *MockService) Book(ctx context.Context, req booking.BookRequest) (models.BookResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.BookResult), args.Error(1)
}

func (m *MockService) Bookings(ctx context.Context) []models.Booking {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.Booking)
}

func (m *MockService) PassengerBookings(ctx context.Context, passengerID string) []models.BookingView {
	args := m.Called(ctx, passengerID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.BookingView)
}

func (m *MockService) Cancel(ctx context.Context, bookingID string) (models.Booking, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).(models.Booking), args.Error(1)
}

func (m *MockService) Postpone(ctx context.Context, req booking.PostponeRequest) (models.Booking, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(models.Booking), args.Error(1)
}

func (m *MockService) StartHold(ctx context.Context, input models.BookingWorkflowInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func (m *MockService) ConfirmHold(ctx context.Context, workflowID string, confirmed bool) error {
	args := m.Called(ctx, workflowID, confirmed)
	return args.Error(0)
}

func (m *MockService) HoldState(ctx context.Context, workflowID string) (models.BookingWorkflowState, error) {
	args := m.Called(ctx, workflowID)
	return args.Get(0).(models.BookingWorkflowState), args.Error(1)
}

func (m *MockService) Accounts(ctx context.Context) []models.BankAccount {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.BankAccount)
}

func (m *MockService) Authorize(password string) error {
	args := m.Called(password)
	return args.Error(0)
}
