package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CardStatus represents the state of a patient's registration card
type CardStatus string

const (
	CardStatusActive  CardStatus = "ACTIVE"
	CardStatusExpired CardStatus = "EXPIRED"
	CardStatusNone    CardStatus = "NONE"
)

// Patient represents a registered patient. Patients are never hard-deleted;
// visits keep referencing them after discharge.
type Patient struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientUID  string     `gorm:"type:varchar(30);not null;uniqueIndex" json:"patient_uid"`
	Name        string     `gorm:"type:varchar(255);not null" json:"name"`
	DateOfBirth time.Time  `json:"date_of_birth"`
	Gender      string     `gorm:"type:varchar(10)" json:"gender"`
	Mobile      string     `gorm:"type:varchar(30)" json:"mobile"`
	CardStatus  CardStatus `gorm:"type:varchar(20);default:'ACTIVE'" json:"card_status"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Patient) TableName() string {
	return "patients"
}

// BeforeCreate hook
func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PatientRequest represents a patient registration request
type PatientRequest struct {
	Name        string `json:"name"`
	DateOfBirth string `json:"date_of_birth"` // YYYY-MM-DD
	Gender      string `json:"gender"`
	Mobile      string `json:"mobile"`
}
