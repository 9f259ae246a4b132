// Package workflow holds the pure state machines that drive patient flow:
// visit lifecycle, order lifecycle, loan lifecycle, account request approval,
// and the role capability table. Everything here is in-memory rule checking;
// the guarded database writes live in the repositories.
package workflow

import (
	"fmt"

	"github.com/hayder75/clinic-core/internal/models"
)

// visitRank orders the forward-only visit states. Terminal states have no
// outgoing edges except WAITING..AWAITING_RESULTS_REVIEW -> CANCELLED.
var visitRank = map[models.VisitStatus]int{
	models.VisitStatusWaiting:          0,
	models.VisitStatusTriaged:          1,
	models.VisitStatusWaitingForDoctor: 2,
	models.VisitStatusInProgress:       3,
	models.VisitStatusAwaitingReview:   4,
	models.VisitStatusCompleted:        5,
}

// visitEdges enumerates the legal visit transitions.
var visitEdges = map[models.VisitStatus][]models.VisitStatus{
	models.VisitStatusWaiting:          {models.VisitStatusTriaged, models.VisitStatusCancelled},
	models.VisitStatusTriaged:          {models.VisitStatusWaitingForDoctor, models.VisitStatusCancelled},
	models.VisitStatusWaitingForDoctor: {models.VisitStatusInProgress, models.VisitStatusCancelled},
	models.VisitStatusInProgress:       {models.VisitStatusAwaitingReview, models.VisitStatusCompleted, models.VisitStatusCancelled},
	models.VisitStatusAwaitingReview:   {models.VisitStatusCompleted, models.VisitStatusCancelled},
	models.VisitStatusCompleted:        {},
	models.VisitStatusCancelled:        {},
}

// ErrTransition is returned when a requested transition is not an edge of the
// state machine.
type ErrTransition struct {
	Entity string
	From   string
	To     string
}

func (e *ErrTransition) Error() string {
	return fmt.Sprintf("%s cannot move from %s to %s", e.Entity, e.From, e.To)
}

// ValidVisitStatus reports whether s is a member of the visit status enum.
func ValidVisitStatus(s models.VisitStatus) bool {
	if s == models.VisitStatusCancelled {
		return true
	}
	_, ok := visitRank[s]
	return ok
}

// CanTransitionVisit reports whether from -> to is a legal visit transition.
func CanTransitionVisit(from, to models.VisitStatus) bool {
	for _, next := range visitEdges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CheckVisitTransition returns an ErrTransition if from -> to is illegal.
func CheckVisitTransition(from, to models.VisitStatus) error {
	if !CanTransitionVisit(from, to) {
		return &ErrTransition{Entity: "visit", From: string(from), To: string(to)}
	}
	return nil
}

// VisitRegresses reports whether moving from -> to would go backwards in the
// forward-only ordering. Cancellation is terminal, never a regression.
func VisitRegresses(from, to models.VisitStatus) bool {
	if to == models.VisitStatusCancelled {
		return false
	}
	rf, okf := visitRank[from]
	rt, okt := visitRank[to]
	return okf && okt && rt < rf
}
