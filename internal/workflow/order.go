package workflow

import "github.com/hayder75/clinic-core/internal/models"

var orderEdges = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusUnpaid:     {models.OrderStatusPaid, models.OrderStatusCancelled},
	models.OrderStatusPaid:       {models.OrderStatusInProgress, models.OrderStatusCompleted, models.OrderStatusCancelled},
	models.OrderStatusInProgress: {models.OrderStatusCompleted, models.OrderStatusCancelled},
	models.OrderStatusCompleted:  {},
	models.OrderStatusCancelled:  {},
}

// CanTransitionOrder reports whether from -> to is a legal order transition.
func CanTransitionOrder(from, to models.OrderStatus) bool {
	for _, next := range orderEdges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CheckOrderTransition returns an ErrTransition if from -> to is illegal.
func CheckOrderTransition(from, to models.OrderStatus) error {
	if !CanTransitionOrder(from, to) {
		return &ErrTransition{Entity: "order", From: string(from), To: string(to)}
	}
	return nil
}

// OrderResolved reports whether an order no longer blocks visit completion.
func OrderResolved(s models.OrderStatus) bool {
	return s == models.OrderStatusCompleted || s == models.OrderStatusCancelled
}

// ResultsAllowed reports whether a technician may record results against an
// order. Unpaid orders are locked until billing settles.
func ResultsAllowed(s models.OrderStatus) bool {
	return s == models.OrderStatusPaid || s == models.OrderStatusInProgress
}
