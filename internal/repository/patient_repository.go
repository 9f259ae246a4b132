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

// PatientRepository handles patient database operations
type PatientRepository struct{}

// NewPatientRepository creates a new patient repository
func NewPatientRepository() *PatientRepository {
	return &PatientRepository{}
}

// Create registers a patient, allocating its PAT-<year>-<seq> identifier in
// the same transaction.
func (r *PatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		year := time.Now().UTC().Year()
		seq, err := nextSequence(tx, uid.PrefixPatient, year)
		if err != nil {
			return err
		}
		patient.PatientUID = uid.Format(uid.PrefixPatient, year, seq)

		if err := tx.Create(patient).Error; err != nil {
			return fmt.Errorf("failed to create patient: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a patient by surrogate key
func (r *PatientRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Patient, error) {
	var patient models.Patient
	if err := database.DB.WithContext(ctx).Where("id = ?", id).First(&patient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

// GetByUID retrieves a patient by its external PAT identifier
func (r *PatientRepository) GetByUID(ctx context.Context, patientUID string) (*models.Patient, error) {
	var patient models.Patient
	if err := database.DB.WithContext(ctx).Where("patient_uid = ?", patientUID).First(&patient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

// List retrieves patients, optionally filtered by a name/mobile search term
func (r *PatientRepository) List(ctx context.Context, search string, limit, offset int) ([]models.Patient, error) {
	var patients []models.Patient
	query := database.DB.WithContext(ctx).Order("created_at DESC")

	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name ILIKE ? OR mobile LIKE ? OR patient_uid LIKE ?", like, like, like)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}
