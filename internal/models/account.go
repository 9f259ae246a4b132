package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccountType distinguishes pre-funded advance accounts from credit accounts
type AccountType string

const (
	AccountTypeCredit  AccountType = "CREDIT"
	AccountTypeAdvance AccountType = "ADVANCE"
)

// AccountRequestType represents the kind of two-phase account mutation
type AccountRequestType string

const (
	AccountRequestAddDeposit  AccountRequestType = "ADD_DEPOSIT"
	AccountRequestAddCredit   AccountRequestType = "ADD_CREDIT"
	AccountRequestReturnMoney AccountRequestType = "RETURN_MONEY"
)

// AccountRequestStatus represents the approval state of an account request
type AccountRequestStatus string

const (
	AccountRequestPending  AccountRequestStatus = "PENDING"
	AccountRequestVerified AccountRequestStatus = "VERIFIED"
	AccountRequestRejected AccountRequestStatus = "REJECTED"
)

// Account is a patient-level running balance independent of any single visit.
// Advance accounts hold a spendable Balance; credit accounts track DebtOwed.
type Account struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID uuid.UUID   `gorm:"type:uuid;not null;index" json:"patient_id"`
	Type      AccountType `gorm:"type:varchar(20);not null" json:"type"`
	Balance   float64     `gorm:"default:0" json:"balance"`
	DebtOwed  float64     `gorm:"default:0" json:"debt_owed"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Account) TableName() string {
	return "accounts"
}

// BeforeCreate hook
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// AccountRequest is the pending half of an account mutation. Balance is only
// touched when an admin verifies the request.
type AccountRequest struct {
	ID          uuid.UUID            `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AccountID   uuid.UUID            `gorm:"type:uuid;not null;index" json:"account_id"`
	Type        AccountRequestType   `gorm:"type:varchar(20);not null" json:"type"`
	Amount      float64              `gorm:"not null" json:"amount"`
	Status      AccountRequestStatus `gorm:"type:varchar(20);not null;index;default:'PENDING'" json:"status"`
	RequestedBy uuid.UUID            `gorm:"type:uuid;not null" json:"requested_by"`
	ReviewedBy  *uuid.UUID           `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	Note        string               `gorm:"type:text" json:"note,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (AccountRequest) TableName() string {
	return "account_requests"
}

// BeforeCreate hook
func (r *AccountRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// OpenAccountRequest opens an account for a patient
type OpenAccountRequest struct {
	Type AccountType `json:"type"`
}

// AccountMutationRequest files a pending deposit/credit/return request
type AccountMutationRequest struct {
	Type   AccountRequestType `json:"type"`
	Amount float64            `json:"amount"`
	Note   string             `json:"note,omitempty"`
}
