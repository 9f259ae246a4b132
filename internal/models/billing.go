package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BillingStatus represents an invoice's payment state
type BillingStatus string

const (
	BillingStatusPending          BillingStatus = "PENDING"
	BillingStatusPaid             BillingStatus = "PAID"
	BillingStatusPendingInsurance BillingStatus = "PENDING_INSURANCE"
	BillingStatusEmergencyPending BillingStatus = "EMERGENCY_PENDING"
)

// PaymentMethod represents how a billing or account transaction was settled
type PaymentMethod string

const (
	PaymentMethodCash      PaymentMethod = "CASH"
	PaymentMethodBank      PaymentMethod = "BANK"
	PaymentMethodInsurance PaymentMethod = "INSURANCE"
	PaymentMethodCharity   PaymentMethod = "CHARITY"
	PaymentMethodAccount   PaymentMethod = "ACCOUNT"

	// PaymentMethodAdjustment marks verified account-request applications in
	// the ledger. Not accepted as a billing payment method.
	PaymentMethodAdjustment PaymentMethod = "ACCOUNT_ADJUSTMENT"
)

// Billing is the payable invoice tied to a visit. TotalAmount is computed from
// its lines at creation and lines are immutable afterwards, so the total never
// drifts from the line sum.
type Billing struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	VisitID     uuid.UUID     `gorm:"type:uuid;not null;index" json:"visit_id"`
	Status      BillingStatus `gorm:"type:varchar(30);not null;index;default:'PENDING'" json:"status"`
	TotalAmount float64       `gorm:"not null" json:"total_amount"`
	Lines       []BillingLine `gorm:"foreignKey:BillingID" json:"lines,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Billing) TableName() string {
	return "billings"
}

// BeforeCreate hook
func (b *Billing) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// LineTotal sums the billing's lines.
func (b *Billing) LineTotal() float64 {
	var sum float64
	for _, l := range b.Lines {
		sum += l.UnitPrice
	}
	return sum
}

// BillingLine is one charge on an invoice (consultation fee or ordered service)
type BillingLine struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BillingID   uuid.UUID `gorm:"type:uuid;not null;index" json:"billing_id"`
	Description string    `gorm:"type:varchar(255);not null" json:"description"`
	UnitPrice   float64   `gorm:"not null" json:"unit_price"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name
func (BillingLine) TableName() string {
	return "billing_lines"
}

// BeforeCreate hook
func (l *BillingLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// Transaction records money movement: a billing payment or an account
// request application.
type Transaction struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BillingID *uuid.UUID    `gorm:"type:uuid;index" json:"billing_id,omitempty"`
	AccountID *uuid.UUID    `gorm:"type:uuid;index" json:"account_id,omitempty"`
	Method    PaymentMethod `gorm:"type:varchar(20);not null" json:"method"`
	Amount    float64       `gorm:"not null" json:"amount"`
	ActorID   uuid.UUID     `gorm:"type:uuid;not null" json:"actor_id"`
	Reference string        `gorm:"type:varchar(255)" json:"reference,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName overrides the table name
func (Transaction) TableName() string {
	return "transactions"
}

// BeforeCreate hook
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// PayRequest settles a pending billing
type PayRequest struct {
	Method    PaymentMethod `json:"method"`
	AccountID *uuid.UUID    `json:"account_id,omitempty"` // required for ACCOUNT method
	Reference string        `json:"reference,omitempty"`
}
