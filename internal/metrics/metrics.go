// Package metrics holds the Prometheus collectors of the API.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics groups the API collectors. Each instance owns its registry so
// tests can build as many as they need.
type Metrics struct {
	Registry *prometheus.Registry

	ResetRequests      *prometheus.CounterVec
	ResetConfirmations *prometheus.CounterVec
	AuthzDenials       *prometheus.CounterVec
	HTTPRequests       *prometheus.CounterVec
}

// New creates and registers every collector.
func New(namespace string) *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		ResetRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "password_reset_requests_total",
			Help:      "Password reset requests by outcome.",
		}, []string{"outcome"}),
		ResetConfirmations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "password_reset_confirmations_total",
			Help:      "Password reset confirmations by outcome.",
		}, []string{"outcome"}),
		AuthzDenials: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "authorization_denials_total",
			Help:      "Requests denied by the permission policy.",
		}, []string{"action", "status"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
	}
	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		m.ResetRequests,
		m.ResetConfirmations,
		m.AuthzDenials,
		m.HTTPRequests,
	)
	return m
}

// ResetRequested counts a password reset request.
func (m *Metrics) ResetRequested(outcome string) {
	if m == nil {
		return
	}
	m.ResetRequests.WithLabelValues(outcome).Inc()
}

// ResetConfirmed counts a password reset confirmation.
func (m *Metrics) ResetConfirmed(outcome string) {
	if m == nil {
		return
	}
	m.ResetConfirmations.WithLabelValues(outcome).Inc()
}

// Denied counts a policy denial.
func (m *Metrics) Denied(action string, status int) {
	if m == nil {
		return
	}
	m.AuthzDenials.WithLabelValues(action, strconv.Itoa(status)).Inc()
}

// Request counts a served HTTP request.
func (m *Metrics) Request(method, route string, status int) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
