package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderCategory represents the kind of service an order belongs to
type OrderCategory string

const (
	OrderCategoryLab       OrderCategory = "LAB"
	OrderCategoryRadiology OrderCategory = "RADIOLOGY"
	OrderCategoryDental    OrderCategory = "DENTAL"
)

// OrderStatus represents an order's own lifecycle, independent of its visit
type OrderStatus string

const (
	OrderStatusUnpaid     OrderStatus = "UNPAID"
	OrderStatusPaid       OrderStatus = "PAID"
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// ServiceCatalog is the orderable price list. Item prices are snapshot onto
// order items at creation time, so later catalog edits never drift old orders.
type ServiceCatalog struct {
	ID         uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name       string        `gorm:"type:varchar(255);not null" json:"name"`
	Category   OrderCategory `gorm:"type:varchar(20);not null;index" json:"category"`
	Price      float64       `gorm:"not null" json:"price"`
	TemplateID *uuid.UUID    `gorm:"type:uuid" json:"template_id,omitempty"`
	IsActive   bool          `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (ServiceCatalog) TableName() string {
	return "service_catalog"
}

// BeforeCreate hook
func (s *ServiceCatalog) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// BatchOrder groups one doctor's batch of service requests against a visit.
// Results cannot be recorded until the owning billing is paid.
type BatchOrder struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	VisitID   uuid.UUID     `gorm:"type:uuid;not null;index" json:"visit_id"`
	Category  OrderCategory `gorm:"type:varchar(20);not null;index" json:"category"`
	Status    OrderStatus   `gorm:"type:varchar(20);not null;index;default:'UNPAID'" json:"status"`
	BillingID *uuid.UUID    `gorm:"type:uuid;index" json:"billing_id,omitempty"`
	OrderedBy uuid.UUID     `gorm:"type:uuid;not null" json:"ordered_by"`
	Items     []OrderItem   `gorm:"foreignKey:OrderID" json:"items,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (BatchOrder) TableName() string {
	return "batch_orders"
}

// BeforeCreate hook
func (o *BatchOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrderItem is one requested service inside a batch order. Result holds the
// template-validated key/value payload once the technician submits.
type OrderItem struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	OrderID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	ServiceID uuid.UUID      `gorm:"type:uuid;not null" json:"service_id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	UnitPrice float64        `gorm:"not null" json:"unit_price"`
	Result    map[string]any `gorm:"serializer:json" json:"result,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (OrderItem) TableName() string {
	return "order_items"
}

// BeforeCreate hook
func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// OrderRequest represents a batch order creation request
type OrderRequest struct {
	Category   OrderCategory `json:"category"`
	ServiceIDs []uuid.UUID   `json:"service_ids"`
}

// OrderItemResult reports the outcome of one item in a batch creation.
// Batches commit per-item; a failing item never rolls back its siblings.
type OrderItemResult struct {
	ServiceID uuid.UUID `json:"service_id"`
	OK        bool      `json:"ok"`
	Error     string    `json:"error,omitempty"`
}

// ResultSubmission carries a technician's result payload for one order item
type ResultSubmission struct {
	ItemID              uuid.UUID      `json:"item_id"`
	Values              map[string]any `json:"values"`
	AcknowledgeWarnings bool           `json:"acknowledge_warnings"`
}
