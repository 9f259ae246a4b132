package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hayder75/clinic-core/internal/models"
	"github.com/hayder75/clinic-core/internal/repository"
)

// PatientService handles patient registration and lookup
type PatientService struct {
	patientRepo *repository.PatientRepository
}

// NewPatientService creates a new patient service
func NewPatientService(patientRepo *repository.PatientRepository) *PatientService {
	return &PatientService{patientRepo: patientRepo}
}

// Register creates a patient record with a formatted PAT identifier
func (s *PatientService) Register(ctx context.Context, req *models.PatientRequest) (*models.Patient, error) {
	if req.Name == "" {
		return nil, invalid("patient name is required")
	}

	patient := &models.Patient{
		Name:       req.Name,
		Gender:     req.Gender,
		Mobile:     req.Mobile,
		CardStatus: models.CardStatusActive,
	}

	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, invalid("date_of_birth must be YYYY-MM-DD")
		}
		patient.DateOfBirth = dob
	}

	if err := s.patientRepo.Create(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

// Get retrieves a patient by surrogate id
func (s *PatientService) Get(ctx context.Context, id uuid.UUID) (*models.Patient, error) {
	return s.patientRepo.GetByID(ctx, id)
}

// GetByUID retrieves a patient by external PAT identifier
func (s *PatientService) GetByUID(ctx context.Context, patientUID string) (*models.Patient, error) {
	return s.patientRepo.GetByUID(ctx, patientUID)
}

// List searches patients
func (s *PatientService) List(ctx context.Context, search string, limit, offset int) ([]models.Patient, error) {
	return s.patientRepo.List(ctx, search, limit, offset)
}
