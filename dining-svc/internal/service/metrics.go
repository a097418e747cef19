package service

import (
	"errors"

	"tableside/dining-svc/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tableside",
		Subsystem: "dining",
		Name:      "orders_total",
		Help:      "Order lifecycle operations by outcome.",
	}, []string{"outcome"})

	reservationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tableside",
		Subsystem: "dining",
		Name:      "reservations_total",
		Help:      "Reservation lifecycle operations by outcome.",
	}, []string{"outcome"})

	reconciliationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tableside",
		Subsystem: "dining",
		Name:      "table_reconciliations_total",
		Help:      "Table state reconciliations by trigger.",
	}, []string{"trigger"})

	publishFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tableside",
		Subsystem: "dining",
		Name:      "event_publish_failures_total",
		Help:      "Events that could not be handed to kafka.",
	})
)

// outcome labels a failed operation for the counters above.
func outcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, domain.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	default:
		return "error"
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
