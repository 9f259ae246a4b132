// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// VisitTransitions counts visit status transitions by target state.
	VisitTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clinic_visit_transitions_total",
		Help: "Number of visit status transitions",
	}, []string{"to_status"})

	// Payments counts settled billings by payment method.
	Payments = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clinic_payments_total",
		Help: "Number of billing payments",
	}, []string{"method"})

	// PaymentAmount accumulates settled billing amounts by payment method.
	PaymentAmount = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clinic_payment_amount_total",
		Help: "Total amount of settled billings",
	}, []string{"method"})

	// Conflicts counts optimistic-guard failures by entity type.
	Conflicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clinic_conflict_errors_total",
		Help: "Number of guarded status updates that found a stale precondition",
	}, []string{"entity"})

	// ResultsSubmitted counts order results by category.
	ResultsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clinic_results_submitted_total",
		Help: "Number of order results recorded",
	}, []string{"category"})
)
