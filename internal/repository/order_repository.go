package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hayder75/clinic-core/internal/database"
	"github.com/hayder75/clinic-core/internal/models"
	"gorm.io/gorm"
)

// OrderRepository handles batch order and catalog database operations
type OrderRepository struct{}

// NewOrderRepository creates a new order repository
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Create stores a batch order shell (items are committed one by one by the
// service, per the best-effort batch policy).
func (r *OrderRepository) Create(ctx context.Context, order *models.BatchOrder) error {
	if err := database.DB.WithContext(ctx).Omit("Items").Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// AddItem commits one item of a batch independently of its siblings
func (r *OrderRepository) AddItem(ctx context.Context, item *models.OrderItem) error {
	if err := database.DB.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to add order item: %w", err)
	}
	return nil
}

// LinkBilling attaches the batch's invoice once it has been created
func (r *OrderRepository) LinkBilling(ctx context.Context, orderID, billingID uuid.UUID) error {
	res := database.DB.WithContext(ctx).
		Model(&models.BatchOrder{}).
		Where("id = ?", orderID).
		Update("billing_id", billingID)
	if res.Error != nil {
		return fmt.Errorf("failed to link billing: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID retrieves a batch order with its items
func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.BatchOrder, error) {
	var order models.BatchOrder
	if err := database.DB.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

// List retrieves orders filtered by category and status
func (r *OrderRepository) List(ctx context.Context, category models.OrderCategory, status models.OrderStatus, limit, offset int) ([]models.BatchOrder, error) {
	var orders []models.BatchOrder
	query := database.DB.WithContext(ctx).Preload("Items").Order("created_at ASC")

	if category != "" {
		query = query.Where("category = ?", category)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ListByVisit retrieves all orders of a visit
func (r *OrderRepository) ListByVisit(ctx context.Context, visitID uuid.UUID) ([]models.BatchOrder, error) {
	var orders []models.BatchOrder
	if err := database.DB.WithContext(ctx).
		Preload("Items").
		Where("visit_id = ?", visitID).
		Order("created_at ASC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list visit orders: %w", err)
	}
	return orders, nil
}

// Transition performs the guarded order status move with an audit event
func (r *OrderRepository) Transition(ctx context.Context, id uuid.UUID, visitID uuid.UUID, from, to models.OrderStatus, actorID uuid.UUID, note string) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.BatchOrder{}).
			Where("id = ? AND status = ?", id, from).
			Update("status", to)
		if res.Error != nil {
			return fmt.Errorf("failed to transition order: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}

		event := &models.VisitEvent{
			VisitID:    &visitID,
			EntityType: "order",
			EntityID:   id,
			FromStatus: string(from),
			ToStatus:   string(to),
			ActorID:    actorID,
			Note:       note,
		}
		if err := tx.Create(event).Error; err != nil {
			return fmt.Errorf("failed to record order event: %w", err)
		}
		return nil
	})
}

// UnlockByBilling moves every order gated on the given billing from UNPAID to
// PAID. Called after the billing settles.
func (r *OrderRepository) UnlockByBilling(ctx context.Context, billingID uuid.UUID) (int64, error) {
	res := database.DB.WithContext(ctx).
		Model(&models.BatchOrder{}).
		Where("billing_id = ? AND status = ?", billingID, models.OrderStatusUnpaid).
		Update("status", models.OrderStatusPaid)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to unlock orders: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// SaveItemResult stores a validated result payload on an order item
func (r *OrderRepository) SaveItemResult(ctx context.Context, itemID uuid.UUID, result map[string]any) error {
	res := database.DB.WithContext(ctx).
		Model(&models.OrderItem{}).
		Where("id = ?", itemID).
		Update("result", result)
	if res.Error != nil {
		return fmt.Errorf("failed to save item result: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountUnresolved counts orders of a visit still blocking completion
func (r *OrderRepository) CountUnresolved(ctx context.Context, visitID uuid.UUID) (int64, error) {
	var count int64
	if err := database.DB.WithContext(ctx).
		Model(&models.BatchOrder{}).
		Where("visit_id = ? AND status NOT IN ?", visitID,
			[]models.OrderStatus{models.OrderStatusCompleted, models.OrderStatusCancelled}).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count unresolved orders: %w", err)
	}
	return count, nil
}
