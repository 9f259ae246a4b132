package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hayder75/clinic-core/internal/metrics"
	"github.com/hayder75/clinic-core/internal/models"
	"github.com/hayder75/clinic-core/internal/repository"
	"github.com/hayder75/clinic-core/internal/workflow"
	"github.com/hayder75/clinic-core/pkg/formschema"
	"github.com/rs/zerolog/log"
)

// OrderService handles batch order creation and result submission
type OrderService struct {
	orderRepo   *repository.OrderRepository
	catalogRepo *repository.CatalogRepository
	billingRepo *repository.BillingRepository
	visitRepo   *repository.VisitRepository
	templates   *TemplateService
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo *repository.OrderRepository,
	catalogRepo *repository.CatalogRepository,
	billingRepo *repository.BillingRepository,
	visitRepo *repository.VisitRepository,
	templates *TemplateService,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		catalogRepo: catalogRepo,
		billingRepo: billingRepo,
		visitRepo:   visitRepo,
		templates:   templates,
	}
}

// BatchResult reports the outcome of a batch order creation
type BatchResult struct {
	Order   *models.BatchOrder       `json:"order,omitempty"`
	Billing *models.Billing          `json:"billing,omitempty"`
	Items   []models.OrderItemResult `json:"items"`
}

// CreateBatch orders services against a visit. Items commit independently:
// a failing item is reported in the per-item result list and never rolls back
// its siblings. The batch billing covers the items that made it in.
func (s *OrderService) CreateBatch(ctx context.Context, visitID uuid.UUID, req *models.OrderRequest, actorID uuid.UUID) (*BatchResult, error) {
	if len(req.ServiceIDs) == 0 {
		return nil, invalid("at least one service is required")
	}

	visit, err := s.visitRepo.GetByID(ctx, visitID)
	if err != nil {
		return nil, err
	}
	if visit.Terminal() || visit.Status == models.VisitStatusWaiting {
		return nil, invalid("visit %s does not accept orders in status %s", visit.VisitUID, visit.Status)
	}

	order := &models.BatchOrder{
		VisitID:   visitID,
		Category:  req.Category,
		Status:    models.OrderStatusUnpaid,
		OrderedBy: actorID,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	result := &BatchResult{Order: order}
	var lines []models.BillingLine

	for _, serviceID := range req.ServiceIDs {
		itemResult := models.OrderItemResult{ServiceID: serviceID}

		service, err := s.catalogRepo.GetByID(ctx, serviceID)
		switch {
		case err != nil:
			itemResult.Error = "service not found"
		case service.Category != req.Category:
			itemResult.Error = fmt.Sprintf("service belongs to %s, not %s", service.Category, req.Category)
		default:
			item := &models.OrderItem{
				OrderID:   order.ID,
				ServiceID: service.ID,
				Name:      service.Name,
				UnitPrice: service.Price,
			}
			if err := s.orderRepo.AddItem(ctx, item); err != nil {
				log.Error().Err(err).Str("service", service.Name).Msg("Failed to add order item")
				itemResult.Error = "failed to add item"
			} else {
				itemResult.OK = true
				order.Items = append(order.Items, *item)
				lines = append(lines, models.BillingLine{
					Description: service.Name,
					UnitPrice:   service.Price,
				})
			}
		}
		result.Items = append(result.Items, itemResult)
	}

	if len(lines) == 0 {
		return result, invalid("no orderable services in batch")
	}

	billing := &models.Billing{
		VisitID: visitID,
		Status:  models.BillingStatusPending,
		Lines:   lines,
	}
	if err := s.billingRepo.CreateWithLines(ctx, billing); err != nil {
		return nil, err
	}
	result.Billing = billing

	if err := s.orderRepo.LinkBilling(ctx, order.ID, billing.ID); err != nil {
		return nil, err
	}
	order.BillingID = &billing.ID

	return result, nil
}

// Get retrieves a batch order
func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*models.BatchOrder, error) {
	return s.orderRepo.GetByID(ctx, id)
}

// List retrieves orders for a technician queue
func (s *OrderService) List(ctx context.Context, category models.OrderCategory, status models.OrderStatus, limit, offset int) ([]models.BatchOrder, error) {
	return s.orderRepo.List(ctx, category, status, limit, offset)
}

// ListByVisit retrieves a visit's orders
func (s *OrderService) ListByVisit(ctx context.Context, visitID uuid.UUID) ([]models.BatchOrder, error) {
	return s.orderRepo.ListByVisit(ctx, visitID)
}

// SubmitResult records a technician's result for one order item. Unpaid
// orders are locked; required-field violations reject; out-of-range numeric
// values only warn and go through once the submitter acknowledges them. When
// the last item of the last order completes, the visit moves to
// AWAITING_RESULTS_REVIEW.
func (s *OrderService) SubmitResult(ctx context.Context, orderID uuid.UUID, sub *models.ResultSubmission, actor *models.AuthClaims) (*models.BatchOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !workflow.ResultRole(actor.Role, order.Category) {
		return nil, ErrForbidden
	}
	if !workflow.ResultsAllowed(order.Status) {
		metrics.Conflicts.WithLabelValues("order").Inc()
		return nil, &workflow.ErrTransition{Entity: "order", From: string(order.Status), To: string(models.OrderStatusCompleted)}
	}

	var item *models.OrderItem
	for i := range order.Items {
		if order.Items[i].ID == sub.ItemID {
			item = &order.Items[i]
			break
		}
	}
	if item == nil {
		return nil, invalid("item %s does not belong to order %s", sub.ItemID, orderID)
	}
	if item.Result != nil {
		return nil, ErrConflict
	}

	fields, err := s.templateFields(ctx, item.ServiceID)
	if err != nil {
		return nil, err
	}

	validation := formschema.Validate(fields, sub.Values)
	if !validation.OK() {
		return nil, &ValidationError{Result: validation}
	}
	if len(validation.Warnings) > 0 && !sub.AcknowledgeWarnings {
		return nil, &ValidationError{Result: validation}
	}

	if err := s.orderRepo.SaveItemResult(ctx, item.ID, sub.Values); err != nil {
		return nil, err
	}
	item.Result = sub.Values

	metrics.ResultsSubmitted.WithLabelValues(string(order.Category)).Inc()

	if allItemsResulted(order) {
		if err := s.orderRepo.Transition(ctx, order.ID, order.VisitID, order.Status, models.OrderStatusCompleted, actor.UserID, "all results recorded"); err != nil {
			return nil, err
		}
		if err := s.maybeMoveVisitToReview(ctx, order.VisitID, actor.UserID); err != nil {
			return nil, err
		}
	} else if order.Status == models.OrderStatusPaid {
		if err := s.orderRepo.Transition(ctx, order.ID, order.VisitID, models.OrderStatusPaid, models.OrderStatusInProgress, actor.UserID, "first result recorded"); err != nil {
			return nil, err
		}
	}

	return s.orderRepo.GetByID(ctx, orderID)
}

// templateFields resolves the result template behind a catalog service. A
// service without a template accepts free-form values.
func (s *OrderService) templateFields(ctx context.Context, serviceID uuid.UUID) ([]models.TemplateField, error) {
	service, err := s.catalogRepo.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if service.TemplateID == nil {
		return nil, nil
	}
	template, err := s.templates.Get(ctx, *service.TemplateID)
	if err != nil {
		return nil, err
	}
	return template.Fields, nil
}

// maybeMoveVisitToReview advances an in-progress visit once its orders are
// all resolved. A conflict here means the doctor already moved the visit;
// that is fine.
func (s *OrderService) maybeMoveVisitToReview(ctx context.Context, visitID uuid.UUID, actorID uuid.UUID) error {
	unresolved, err := s.orderRepo.CountUnresolved(ctx, visitID)
	if err != nil {
		return err
	}
	if unresolved > 0 {
		return nil
	}

	err = s.visitRepo.Transition(ctx, visitID, models.VisitStatusInProgress, models.VisitStatusAwaitingReview, actorID, "all order results in", nil)
	if err == repository.ErrConflict {
		return nil
	}
	if err == nil {
		metrics.VisitTransitions.WithLabelValues(string(models.VisitStatusAwaitingReview)).Inc()
	}
	return err
}

func allItemsResulted(order *models.BatchOrder) bool {
	for _, item := range order.Items {
		if item.Result == nil {
			return false
		}
	}
	return len(order.Items) > 0
}
