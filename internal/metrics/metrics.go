// Package metrics exposes booking engine outcomes to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Bookings = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_engine_bookings_total",
		Help: "Booking attempts by outcome code",
	}, []string{"outcome"})
	Cancellations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "booking_engine_cancellations_total",
		Help: "Bookings cancelled",
	})
	Postponements = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_engine_postponements_total",
		Help: "Postpone attempts by outcome code",
	}, []string{"outcome"})
	Rollbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_engine_rollbacks_total",
		Help: "Held seats released because a booking could not complete",
	}, []string{"reason"})
	SeatRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_engine_seat_rejections_total",
		Help: "Seat choices rejected during selection",
	}, []string{"reason"})
	HoldDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "booking_engine_hold_duration_seconds",
		Help:    "Time between a seat hold and its settlement",
		Buckets: []float64{1, 10, 60, 300, 900},
	})
)

// Outcome is the label recorded for a finished operation: "ok" on success,
// otherwise the error code.
func Outcome(code string) string {
	if code == "" {
		return "ok"
	}
	return code
}
