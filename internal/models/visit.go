package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VisitStatus represents where a visit is in its lifecycle
type VisitStatus string

const (
	VisitStatusWaiting          VisitStatus = "WAITING"
	VisitStatusTriaged          VisitStatus = "TRIAGED"
	VisitStatusWaitingForDoctor VisitStatus = "WAITING_FOR_DOCTOR"
	VisitStatusInProgress       VisitStatus = "IN_PROGRESS"
	VisitStatusAwaitingReview   VisitStatus = "AWAITING_RESULTS_REVIEW"
	VisitStatusCompleted        VisitStatus = "COMPLETED"
	VisitStatusCancelled        VisitStatus = "CANCELLED"
)

// Visit represents one hospital encounter for a patient, from arrival to
// completion. Status is always an explicit stored field; queue membership is
// never inferred from joins.
type Visit struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	VisitUID     string      `gorm:"type:varchar(30);not null;uniqueIndex" json:"visit_uid"`
	PatientID    uuid.UUID   `gorm:"type:uuid;not null;index" json:"patient_id"`
	Patient      *Patient    `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Status       VisitStatus `gorm:"type:varchar(30);not null;index;default:'WAITING'" json:"status"`
	DoctorID     *uuid.UUID  `gorm:"type:uuid;index" json:"doctor_id,omitempty"`
	CancelReason string      `gorm:"type:text" json:"cancel_reason,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Visit) TableName() string {
	return "visits"
}

// BeforeCreate hook
func (v *Visit) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// Terminal reports whether the visit can no longer change state.
func (v *Visit) Terminal() bool {
	return v.Status == VisitStatusCompleted || v.Status == VisitStatusCancelled
}

// Vitals represents a nurse-recorded vitals reading. The triage reading is the
// first one; later readings are continuous-monitoring entries, time-ordered.
type Vitals struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	VisitID     uuid.UUID `gorm:"type:uuid;not null;index" json:"visit_id"`
	Temperature float64   `json:"temperature"`
	Pulse       int       `json:"pulse"`
	Systolic    int       `json:"systolic"`
	Diastolic   int       `json:"diastolic"`
	Respiration int       `json:"respiration"`
	SpO2        int       `gorm:"column:spo2" json:"spo2"`
	WeightKg    float64   `json:"weight_kg"`
	HeightCm    float64   `json:"height_cm"`
	Complaint   string    `gorm:"type:text" json:"complaint"`
	RecordedBy  uuid.UUID `gorm:"type:uuid" json:"recorded_by"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName overrides the table name
func (Vitals) TableName() string {
	return "vitals"
}

// BeforeCreate hook
func (v *Vitals) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// VisitEvent is the audit trail of status transitions across visits, orders,
// billings, loans and account requests.
type VisitEvent struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	VisitID    *uuid.UUID `gorm:"type:uuid;index" json:"visit_id,omitempty"`
	EntityType string     `gorm:"type:varchar(30);not null;index" json:"entity_type"` // visit, order, billing, loan, account_request
	EntityID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"entity_id"`
	FromStatus string     `gorm:"type:varchar(30)" json:"from_status"`
	ToStatus   string     `gorm:"type:varchar(30);not null" json:"to_status"`
	ActorID    uuid.UUID  `gorm:"type:uuid;index" json:"actor_id"`
	Note       string     `gorm:"type:text" json:"note,omitempty"`
	CreatedAt  time.Time  `gorm:"index" json:"timestamp"`
}

// TableName overrides the table name
func (VisitEvent) TableName() string {
	return "visit_events"
}

// BeforeCreate hook
func (e *VisitEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// VisitRequest represents a request to open a visit
type VisitRequest struct {
	PatientID uuid.UUID `json:"patient_id"`
}

// VitalsRequest represents a vitals payload
type VitalsRequest struct {
	Temperature float64 `json:"temperature"`
	Pulse       int     `json:"pulse"`
	Systolic    int     `json:"systolic"`
	Diastolic   int     `json:"diastolic"`
	Respiration int     `json:"respiration"`
	SpO2        int     `json:"spo2"`
	WeightKg    float64 `json:"weight_kg"`
	HeightCm    float64 `json:"height_cm"`
	Complaint   string  `json:"complaint"`
}

// AssignRequest assigns a doctor to a triaged visit
type AssignRequest struct {
	DoctorID        uuid.UUID `json:"doctor_id"`
	ConsultationFee float64   `json:"consultation_fee"`
}

// CancelRequest cancels a visit with a mandatory reason
type CancelRequest struct {
	Reason string `json:"reason"`
}
