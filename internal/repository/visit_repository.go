package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hayder75/clinic-core/internal/database"
	"github.com/hayder75/clinic-core/internal/models"
	"github.com/hayder75/clinic-core/pkg/uid"
	"gorm.io/gorm"
)

// VisitRepository handles visit, vitals and transition-event database
// operations.
type VisitRepository struct{}

// NewVisitRepository creates a new visit repository
func NewVisitRepository() *VisitRepository {
	return &VisitRepository{}
}

// activeStatuses are the non-terminal visit states. A patient may hold at
// most one visit in any of them.
var activeStatuses = []models.VisitStatus{
	models.VisitStatusWaiting,
	models.VisitStatusTriaged,
	models.VisitStatusWaitingForDoctor,
	models.VisitStatusInProgress,
	models.VisitStatusAwaitingReview,
}

// Create opens a visit, allocating its VISIT uid and rejecting a second
// active visit for the same patient inside one transaction.
func (r *VisitRepository) Create(ctx context.Context, visit *models.Visit) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var active int64
		if err := tx.Model(&models.Visit{}).
			Where("patient_id = ? AND status IN ?", visit.PatientID, activeStatuses).
			Count(&active).Error; err != nil {
			return fmt.Errorf("failed to check active visits: %w", err)
		}
		if active > 0 {
			return ErrConflict
		}

		year := time.Now().UTC().Year()
		seq, err := nextSequence(tx, uid.PrefixVisit, year)
		if err != nil {
			return err
		}
		visit.VisitUID = uid.Format(uid.PrefixVisit, year, seq)
		visit.Status = models.VisitStatusWaiting

		if err := tx.Create(visit).Error; err != nil {
			return fmt.Errorf("failed to create visit: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a visit with its patient
func (r *VisitRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Visit, error) {
	var visit models.Visit
	if err := database.DB.WithContext(ctx).Preload("Patient").Where("id = ?", id).First(&visit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get visit: %w", err)
	}
	return &visit, nil
}

// List retrieves visits filtered by status and/or assigned doctor
func (r *VisitRepository) List(ctx context.Context, status models.VisitStatus, doctorID *uuid.UUID, limit, offset int) ([]models.Visit, error) {
	var visits []models.Visit
	query := database.DB.WithContext(ctx).Preload("Patient").Order("created_at ASC")

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if doctorID != nil {
		query = query.Where("doctor_id = ?", *doctorID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&visits).Error; err != nil {
		return nil, fmt.Errorf("failed to list visits: %w", err)
	}
	return visits, nil
}

// Transition performs the guarded status move from -> to, applying extra
// column updates and writing the audit event in the same transaction. The
// WHERE clause carries the precondition so a racing writer loses cleanly with
// ErrConflict instead of double-applying.
func (r *VisitRepository) Transition(ctx context.Context, id uuid.UUID, from, to models.VisitStatus, actorID uuid.UUID, note string, extra map[string]interface{}) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"status": to}
		for k, v := range extra {
			updates[k] = v
		}

		res := tx.Model(&models.Visit{}).
			Where("id = ? AND status = ?", id, from).
			Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("failed to transition visit: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}

		event := &models.VisitEvent{
			VisitID:    &id,
			EntityType: "visit",
			EntityID:   id,
			FromStatus: string(from),
			ToStatus:   string(to),
			ActorID:    actorID,
			Note:       note,
		}
		if err := tx.Create(event).Error; err != nil {
			return fmt.Errorf("failed to record visit event: %w", err)
		}
		return nil
	})
}

// AssignDoctor performs the TRIAGED -> WAITING_FOR_DOCTOR transition, stores
// the doctor reference and creates the consultation billing, all in one
// transaction so a failed billing never leaves a half-assigned visit.
func (r *VisitRepository) AssignDoctor(ctx context.Context, visit *models.Visit, doctorID uuid.UUID, fee float64, actorID uuid.UUID) (*models.Billing, error) {
	var billing *models.Billing

	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Visit{}).
			Where("id = ? AND status = ?", visit.ID, models.VisitStatusTriaged).
			Updates(map[string]interface{}{
				"status":    models.VisitStatusWaitingForDoctor,
				"doctor_id": doctorID,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to assign doctor: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}

		billing = &models.Billing{
			VisitID:     visit.ID,
			Status:      models.BillingStatusPending,
			TotalAmount: fee,
			Lines: []models.BillingLine{
				{Description: "Consultation", UnitPrice: fee},
			},
		}
		if err := tx.Create(billing).Error; err != nil {
			return fmt.Errorf("failed to create consultation billing: %w", err)
		}

		event := &models.VisitEvent{
			VisitID:    &visit.ID,
			EntityType: "visit",
			EntityID:   visit.ID,
			FromStatus: string(models.VisitStatusTriaged),
			ToStatus:   string(models.VisitStatusWaitingForDoctor),
			ActorID:    actorID,
			Note:       "doctor assigned",
		}
		if err := tx.Create(event).Error; err != nil {
			return fmt.Errorf("failed to record visit event: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return billing, nil
}

// CreateVitals stores a vitals reading for a visit
func (r *VisitRepository) CreateVitals(ctx context.Context, vitals *models.Vitals) error {
	if err := database.DB.WithContext(ctx).Create(vitals).Error; err != nil {
		return fmt.Errorf("failed to create vitals: %w", err)
	}
	return nil
}

// GetVitals retrieves a visit's vitals readings, newest first
func (r *VisitRepository) GetVitals(ctx context.Context, visitID uuid.UUID) ([]models.Vitals, error) {
	var vitals []models.Vitals
	if err := database.DB.WithContext(ctx).
		Where("visit_id = ?", visitID).
		Order("created_at DESC").
		Find(&vitals).Error; err != nil {
		return nil, fmt.Errorf("failed to get vitals: %w", err)
	}
	return vitals, nil
}

// CreateEvent writes a transition event outside a visit transaction, for
// entities whose guarded update lives in another repository.
func (r *VisitRepository) CreateEvent(ctx context.Context, event *models.VisitEvent) error {
	if err := database.DB.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

// GetEvents retrieves the transition audit trail of a visit
func (r *VisitRepository) GetEvents(ctx context.Context, visitID uuid.UUID) ([]models.VisitEvent, error) {
	var events []models.VisitEvent
	if err := database.DB.WithContext(ctx).
		Where("visit_id = ?", visitID).
		Order("created_at ASC").
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to get visit events: %w", err)
	}
	return events, nil
}
