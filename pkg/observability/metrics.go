package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Guard decisions.
const (
	DecisionOverwrite = "overwrite"
	DecisionPreserve  = "preserve"
)

// Order lookup outcomes.
const (
	LookupFound = "found"
	LookupEmpty = "empty"
	LookupError = "error"
)

// Metrics groups the collectors of the authoring helper.
type Metrics struct {
	templatesApplied *prometheus.CounterVec
	guardDecisions   *prometheus.CounterVec
	formatAttempts   *prometheus.CounterVec
	orderLookups     *prometheus.CounterVec
	quickSteps       *prometheus.CounterVec
	notifications    *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves the collectors unregistered (useful in tests).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		templatesApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scenarist_templates_applied_total",
			Help: "Step data fields seeded from a template",
		}, []string{"step_type"}),
		guardDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scenarist_guard_decisions_total",
			Help: "Template guard decisions on non-empty data fields",
		}, []string{"decision"}),
		formatAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scenarist_json_format_total",
			Help: "JSON field format attempts",
		}, []string{"outcome"}),
		orderLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scenarist_order_lookups_total",
			Help: "Scenario-level next order lookups",
		}, []string{"outcome"}),
		quickSteps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scenarist_quick_steps_total",
			Help: "Steps created through the quick creation bar",
		}, []string{"step_type"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scenarist_notifications_total",
			Help: "Notifications shown to authors",
		}, []string{"severity"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.templatesApplied,
			m.guardDecisions,
			m.formatAttempts,
			m.orderLookups,
			m.quickSteps,
			m.notifications,
		)
	}
	return m
}

// TemplateApplied records a data field seeded with the template of stepType.
func (m *Metrics) TemplateApplied(stepType string) {
	if m == nil {
		return
	}
	m.templatesApplied.WithLabelValues(stepType).Inc()
}

// GuardDecision records whether existing data was overwritten or preserved.
func (m *Metrics) GuardDecision(overwrite bool) {
	if m == nil {
		return
	}
	decision := DecisionPreserve
	if overwrite {
		decision = DecisionOverwrite
	}
	m.guardDecisions.WithLabelValues(decision).Inc()
}

// FormatAttempt records a format request.
func (m *Metrics) FormatAttempt(ok bool) {
	if m == nil {
		return
	}
	outcome := "ok"
	if !ok {
		outcome = "parse_error"
	}
	m.formatAttempts.WithLabelValues(outcome).Inc()
}

// OrderLookup records the outcome of a scenario-level order lookup.
func (m *Metrics) OrderLookup(outcome string) {
	if m == nil {
		return
	}
	m.orderLookups.WithLabelValues(outcome).Inc()
}

// QuickStep records a step added through the quick creation bar.
func (m *Metrics) QuickStep(stepType string) {
	if m == nil {
		return
	}
	m.quickSteps.WithLabelValues(stepType).Inc()
}

// Notification records a notification shown with the given severity.
func (m *Metrics) Notification(severity string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(severity).Inc()
}
