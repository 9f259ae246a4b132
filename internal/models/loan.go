package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LoanStatus represents a staff loan's lifecycle state
type LoanStatus string

const (
	LoanStatusPending  LoanStatus = "PENDING"
	LoanStatusApproved LoanStatus = "APPROVED"
	LoanStatusDenied   LoanStatus = "DENIED"
	LoanStatusGiven    LoanStatus = "GIVEN"
)

// Loan is a staff loan request, independent of patient workflows. The
// reviewer may adjust the amount at approval time; ApprovedAmount is what
// gets disbursed.
type Loan struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	StaffID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"staff_id"`
	Amount         float64    `gorm:"not null" json:"amount"`
	ApprovedAmount float64    `json:"approved_amount"`
	Reason         string     `gorm:"type:text" json:"reason"`
	Status         LoanStatus `gorm:"type:varchar(20);not null;index;default:'PENDING'" json:"status"`
	ReviewedBy     *uuid.UUID `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	DisbursedBy    *uuid.UUID `gorm:"type:uuid" json:"disbursed_by,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Loan) TableName() string {
	return "loans"
}

// BeforeCreate hook
func (l *Loan) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// LoanRequest files a new loan
type LoanRequest struct {
	Amount float64 `json:"amount"`
	Reason string  `json:"reason"`
}

// LoanReviewRequest approves or denies a pending loan
type LoanReviewRequest struct {
	Approve bool    `json:"approve"`
	Amount  float64 `json:"amount,omitempty"` // optional adjustment; 0 keeps requested amount
}
