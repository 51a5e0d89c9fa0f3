package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the marketplace collectors. A nil *Metrics is a no-op.
type Metrics struct {
	Logins          *prometheus.CounterVec
	AccessDenied    *prometheus.CounterVec
	OrdersCreated   prometheus.Counter
	OrderTransition *prometheus.CounterVec
	Certifications  *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "marketplace_logins_total",
			Help: "Login attempts by role and outcome",
		}, []string{"role", "outcome"}),
		AccessDenied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "marketplace_access_denied_total",
			Help: "Requests rejected by the access guard, by reason",
		}, []string{"reason"}),
		OrdersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "marketplace_orders_created_total",
			Help: "Orders placed by buyers",
		}),
		OrderTransition: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "marketplace_order_status_changes_total",
			Help: "Order status changes by target status",
		}, []string{"status"}),
		Certifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "marketplace_certifications_total",
			Help: "Producer certification runs by outcome",
		}, []string{"outcome"}),
	}
	if reg != nil {
		reg.MustRegister(m.Logins, m.AccessDenied, m.OrdersCreated, m.OrderTransition, m.Certifications)
	}
	return m
}

func (m *Metrics) IncLogin(role, outcome string) {
	if m != nil {
		m.Logins.WithLabelValues(role, outcome).Inc()
	}
}

func (m *Metrics) IncAccessDenied(reason string) {
	if m != nil {
		m.AccessDenied.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) IncOrdersCreated() {
	if m != nil {
		m.OrdersCreated.Inc()
	}
}

func (m *Metrics) IncOrderTransition(status string) {
	if m != nil {
		m.OrderTransition.WithLabelValues(status).Inc()
	}
}

func (m *Metrics) IncCertification(outcome string) {
	if m != nil {
		m.Certifications.WithLabelValues(outcome).Inc()
	}
}
