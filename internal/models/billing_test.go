package models

import "testing"

func TestBillingLineTotal(t *testing.T) {
	b := &Billing{
		Lines: []BillingLine{
			{Description: "Consultation", UnitPrice: 300},
			{Description: "CBC", UnitPrice: 120.50},
			{Description: "Chest X-Ray", UnitPrice: 450},
		},
	}
	if got, want := b.LineTotal(), 870.50; got != want {
		t.Errorf("LineTotal() = %v, want %v", got, want)
	}
}

func TestBillingLineTotalEmpty(t *testing.T) {
	b := &Billing{}
	if got := b.LineTotal(); got != 0 {
		t.Errorf("LineTotal() on empty billing = %v, want 0", got)
	}
}

func TestVisitTerminal(t *testing.T) {
	cases := []struct {
		status VisitStatus
		want   bool
	}{
		{VisitStatusWaiting, false},
		{VisitStatusTriaged, false},
		{VisitStatusWaitingForDoctor, false},
		{VisitStatusInProgress, false},
		{VisitStatusAwaitingReview, false},
		{VisitStatusCompleted, true},
		{VisitStatusCancelled, true},
	}
	for _, c := range cases {
		v := &Visit{Status: c.status}
		if got := v.Terminal(); got != c.want {
			t.Errorf("Terminal() with status %s = %v, want %v", c.status, got, c.want)
		}
	}
}
