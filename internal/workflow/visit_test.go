package workflow

import (
	"testing"

	"github.com/hayder75/clinic-core/internal/models"
)

func TestVisitHappyPath(t *testing.T) {
	path := []models.VisitStatus{
		models.VisitStatusWaiting,
		models.VisitStatusTriaged,
		models.VisitStatusWaitingForDoctor,
		models.VisitStatusInProgress,
		models.VisitStatusAwaitingReview,
		models.VisitStatusCompleted,
	}

	for i := 0; i < len(path)-1; i++ {
		if !CanTransitionVisit(path[i], path[i+1]) {
			t.Fatalf("expected %s -> %s to be legal", path[i], path[i+1])
		}
	}
}

func TestVisitNoBackwardTransitions(t *testing.T) {
	ordered := []models.VisitStatus{
		models.VisitStatusWaiting,
		models.VisitStatusTriaged,
		models.VisitStatusWaitingForDoctor,
		models.VisitStatusInProgress,
		models.VisitStatusAwaitingReview,
		models.VisitStatusCompleted,
	}

	for i, from := range ordered {
		for j, to := range ordered {
			if j >= i {
				continue
			}
			if CanTransitionVisit(from, to) {
				t.Errorf("backward transition %s -> %s must not be legal", from, to)
			}
			if !VisitRegresses(from, to) {
				t.Errorf("expected %s -> %s to count as regression", from, to)
			}
		}
	}
}

func TestVisitTerminalStates(t *testing.T) {
	for _, terminal := range []models.VisitStatus{models.VisitStatusCompleted, models.VisitStatusCancelled} {
		for to := range visitRank {
			if CanTransitionVisit(terminal, to) {
				t.Errorf("terminal state %s must have no outgoing edge to %s", terminal, to)
			}
		}
	}
}

func TestVisitCancellableFromAnyActiveState(t *testing.T) {
	active := []models.VisitStatus{
		models.VisitStatusWaiting,
		models.VisitStatusTriaged,
		models.VisitStatusWaitingForDoctor,
		models.VisitStatusInProgress,
		models.VisitStatusAwaitingReview,
	}
	for _, from := range active {
		if !CanTransitionVisit(from, models.VisitStatusCancelled) {
			t.Errorf("expected %s -> CANCELLED to be legal", from)
		}
		if VisitRegresses(from, models.VisitStatusCancelled) {
			t.Errorf("cancellation from %s must not count as regression", from)
		}
	}
}

func TestVisitSkippingStatesRejected(t *testing.T) {
	cases := []struct {
		from, to models.VisitStatus
	}{
		{models.VisitStatusWaiting, models.VisitStatusWaitingForDoctor},
		{models.VisitStatusWaiting, models.VisitStatusCompleted},
		{models.VisitStatusTriaged, models.VisitStatusInProgress},
		{models.VisitStatusWaitingForDoctor, models.VisitStatusCompleted},
	}
	for _, c := range cases {
		if err := CheckVisitTransition(c.from, c.to); err == nil {
			t.Errorf("expected %s -> %s to be rejected", c.from, c.to)
		}
	}
}

func TestCheckVisitTransitionError(t *testing.T) {
	err := CheckVisitTransition(models.VisitStatusCompleted, models.VisitStatusTriaged)
	if err == nil {
		t.Fatal("expected error for transition out of terminal state")
	}
	transition, ok := err.(*ErrTransition)
	if !ok {
		t.Fatalf("expected *ErrTransition, got %T", err)
	}
	if transition.Entity != "visit" || transition.From != "COMPLETED" || transition.To != "TRIAGED" {
		t.Errorf("unexpected error detail: %+v", transition)
	}
}

func TestValidVisitStatus(t *testing.T) {
	for _, s := range []models.VisitStatus{
		models.VisitStatusWaiting,
		models.VisitStatusCompleted,
		models.VisitStatusCancelled,
	} {
		if !ValidVisitStatus(s) {
			t.Errorf("expected %s to be a valid status", s)
		}
	}
	if ValidVisitStatus("DISCHARGED") {
		t.Error("unknown status must not validate")
	}
}
