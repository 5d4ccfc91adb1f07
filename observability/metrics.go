// Package observability exposes client side metrics.
// A nil *Metrics is valid and records nothing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "messenger"

type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

type Metrics struct {
	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	notifications *prometheus.CounterVec
	droppedEvents prometheus.Counter
}

// NewMetrics registers the client collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "API calls by action and outcome.",
		}, []string{"action", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "API call latency by action.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"action"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "User notifications raised by failure category.",
		}, []string{"category"}),
		droppedEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dropped_events_total",
			Help:      "Store events dropped because the fanout buffer was full.",
		}),
	}
	reg.MustRegister(m.requests, m.duration, m.notifications, m.droppedEvents)
	return m
}

func (m *Metrics) ObserveRequest(action string, start time.Time, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	m.requests.WithLabelValues(action, string(outcome)).Inc()
	m.duration.WithLabelValues(action).Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncNotification(category string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(category).Inc()
}

func (m *Metrics) IncDroppedEvent() {
	if m == nil {
		return
	}
	m.droppedEvents.Inc()
}
