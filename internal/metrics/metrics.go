// Package metrics exposes Prometheus counters for the booking service.
// All recording methods are safe on a nil *Metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hyno"

type Metrics struct {
	registry *prometheus.Registry

	bookingsCreated   *prometheus.CounterVec
	bookingRejections *prometheus.CounterVec
	wizardTransitions *prometheus.CounterVec
	notifications     *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		bookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_created_total",
			Help:      "Appointments created, by subject type.",
		}, []string{"type"}),
		bookingRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_rejections_total",
			Help:      "Wizard submissions that did not create an appointment, by reason.",
		}, []string{"reason"}),
		wizardTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wizard_transitions_total",
			Help:      "Wizard step changes, by action and resulting step.",
		}, []string{"action", "step"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Best-effort notification attempts, by channel and outcome.",
		}, []string{"channel", "outcome"}),
	}
	reg.MustRegister(
		m.bookingsCreated,
		m.bookingRejections,
		m.wizardTransitions,
		m.notifications,
		collectors.NewGoCollector(),
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) BookingCreated(kind string) {
	if m == nil {
		return
	}
	m.bookingsCreated.WithLabelValues(kind).Inc()
}

func (m *Metrics) BookingRejected(reason string) {
	if m == nil {
		return
	}
	m.bookingRejections.WithLabelValues(reason).Inc()
}

func (m *Metrics) WizardTransition(action, step string) {
	if m == nil {
		return
	}
	m.wizardTransitions.WithLabelValues(action, step).Inc()
}

func (m *Metrics) Notification(channel string, err error) {
	if m == nil {
		return
	}
	outcome := "sent"
	if err != nil {
		outcome = "failed"
	}
	m.notifications.WithLabelValues(channel, outcome).Inc()
}
