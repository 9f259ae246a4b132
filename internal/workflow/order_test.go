package workflow

import (
	"testing"

	"github.com/hayder75/clinic-core/internal/models"
)

func TestOrderTransitions(t *testing.T) {
	cases := []struct {
		from, to models.OrderStatus
		ok       bool
	}{
		{models.OrderStatusUnpaid, models.OrderStatusPaid, true},
		{models.OrderStatusUnpaid, models.OrderStatusCancelled, true},
		{models.OrderStatusUnpaid, models.OrderStatusInProgress, false},
		{models.OrderStatusUnpaid, models.OrderStatusCompleted, false},
		{models.OrderStatusPaid, models.OrderStatusInProgress, true},
		{models.OrderStatusPaid, models.OrderStatusCompleted, true},
		{models.OrderStatusInProgress, models.OrderStatusCompleted, true},
		{models.OrderStatusInProgress, models.OrderStatusUnpaid, false},
		{models.OrderStatusCompleted, models.OrderStatusInProgress, false},
		{models.OrderStatusCancelled, models.OrderStatusPaid, false},
	}

	for _, c := range cases {
		if got := CanTransitionOrder(c.from, c.to); got != c.ok {
			t.Errorf("CanTransitionOrder(%s, %s) = %v, want %v", c.from, c.to, got, c.ok)
		}
	}
}

func TestResultsLockedUntilPaid(t *testing.T) {
	if ResultsAllowed(models.OrderStatusUnpaid) {
		t.Error("results must be locked while an order is UNPAID")
	}
	if !ResultsAllowed(models.OrderStatusPaid) {
		t.Error("results must unlock once an order is PAID")
	}
	if !ResultsAllowed(models.OrderStatusInProgress) {
		t.Error("results must stay open while an order is IN_PROGRESS")
	}
	if ResultsAllowed(models.OrderStatusCompleted) {
		t.Error("results must close once an order is COMPLETED")
	}
}

func TestOrderResolved(t *testing.T) {
	resolved := map[models.OrderStatus]bool{
		models.OrderStatusUnpaid:     false,
		models.OrderStatusPaid:       false,
		models.OrderStatusInProgress: false,
		models.OrderStatusCompleted:  true,
		models.OrderStatusCancelled:  true,
	}
	for s, want := range resolved {
		if got := OrderResolved(s); got != want {
			t.Errorf("OrderResolved(%s) = %v, want %v", s, got, want)
		}
	}
}
