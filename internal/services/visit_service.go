package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/hayder75/clinic-core/internal/metrics"
	"github.com/hayder75/clinic-core/internal/models"
	"github.com/hayder75/clinic-core/internal/repository"
	"github.com/hayder75/clinic-core/internal/workflow"
	"github.com/rs/zerolog/log"
)

// VisitService drives the visit lifecycle: triage, doctor assignment,
// consultation and completion. Every transition goes through a guarded
// database update; a stale precondition surfaces as ErrConflict.
type VisitService struct {
	visitRepo   *repository.VisitRepository
	patientRepo *repository.PatientRepository
	orderRepo   *repository.OrderRepository
	staffRepo   *repository.StaffRepository
}

// NewVisitService creates a new visit service
func NewVisitService(
	visitRepo *repository.VisitRepository,
	patientRepo *repository.PatientRepository,
	orderRepo *repository.OrderRepository,
	staffRepo *repository.StaffRepository,
) *VisitService {
	return &VisitService{
		visitRepo:   visitRepo,
		patientRepo: patientRepo,
		orderRepo:   orderRepo,
		staffRepo:   staffRepo,
	}
}

// Open creates a visit for a patient. A patient with an active visit is
// rejected with ErrConflict.
func (s *VisitService) Open(ctx context.Context, req *models.VisitRequest) (*models.Visit, error) {
	if _, err := s.patientRepo.GetByID(ctx, req.PatientID); err != nil {
		return nil, err
	}

	visit := &models.Visit{PatientID: req.PatientID}
	if err := s.visitRepo.Create(ctx, visit); err != nil {
		return nil, err
	}

	metrics.VisitTransitions.WithLabelValues(string(models.VisitStatusWaiting)).Inc()
	return visit, nil
}

// Get retrieves a visit
func (s *VisitService) Get(ctx context.Context, id uuid.UUID) (*models.Visit, error) {
	return s.visitRepo.GetByID(ctx, id)
}

// List retrieves visits by explicit stored status and/or doctor
func (s *VisitService) List(ctx context.Context, status models.VisitStatus, doctorID *uuid.UUID, limit, offset int) ([]models.Visit, error) {
	if status != "" && !workflow.ValidVisitStatus(status) {
		return nil, invalid("unknown visit status %q", status)
	}
	return s.visitRepo.List(ctx, status, doctorID, limit, offset)
}

// RecordVitals stores the triage reading and moves the visit to TRIAGED
func (s *VisitService) RecordVitals(ctx context.Context, visitID uuid.UUID, req *models.VitalsRequest, actorID uuid.UUID) (*models.Vitals, error) {
	visit, err := s.visitRepo.GetByID(ctx, visitID)
	if err != nil {
		return nil, err
	}
	if err := workflow.CheckVisitTransition(visit.Status, models.VisitStatusTriaged); err != nil {
		return nil, conflictFrom(err, "visit")
	}

	vitals := vitalsFromRequest(visitID, req, actorID)
	if err := s.visitRepo.CreateVitals(ctx, vitals); err != nil {
		return nil, err
	}

	if err := s.visitRepo.Transition(ctx, visitID, visit.Status, models.VisitStatusTriaged, actorID, "triage vitals recorded", nil); err != nil {
		return nil, err
	}

	metrics.VisitTransitions.WithLabelValues(string(models.VisitStatusTriaged)).Inc()
	return vitals, nil
}

// RecordContinuousVitals appends a monitoring reading without any status
// effect. Allowed on any non-terminal visit past triage.
func (s *VisitService) RecordContinuousVitals(ctx context.Context, visitID uuid.UUID, req *models.VitalsRequest, actorID uuid.UUID) (*models.Vitals, error) {
	visit, err := s.visitRepo.GetByID(ctx, visitID)
	if err != nil {
		return nil, err
	}
	if visit.Terminal() || visit.Status == models.VisitStatusWaiting {
		return nil, invalid("visit %s does not accept monitoring vitals in status %s", visit.VisitUID, visit.Status)
	}

	vitals := vitalsFromRequest(visitID, req, actorID)
	if err := s.visitRepo.CreateVitals(ctx, vitals); err != nil {
		return nil, err
	}
	return vitals, nil
}

// GetVitals retrieves a visit's vitals history
func (s *VisitService) GetVitals(ctx context.Context, visitID uuid.UUID) ([]models.Vitals, error) {
	if _, err := s.visitRepo.GetByID(ctx, visitID); err != nil {
		return nil, err
	}
	return s.visitRepo.GetVitals(ctx, visitID)
}

// AssignDoctor moves a triaged visit to the doctor queue and bills the
// consultation fee in the same transaction
func (s *VisitService) AssignDoctor(ctx context.Context, visitID uuid.UUID, req *models.AssignRequest, actorID uuid.UUID) (*models.Billing, error) {
	visit, err := s.visitRepo.GetByID(ctx, visitID)
	if err != nil {
		return nil, err
	}
	if req.ConsultationFee < 0 {
		return nil, invalid("consultation fee cannot be negative")
	}

	doctor, err := s.staffRepo.GetByID(ctx, req.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor.Role != models.RoleDoctor {
		return nil, invalid("staff member %s is not a doctor", doctor.Username)
	}

	billing, err := s.visitRepo.AssignDoctor(ctx, visit, req.DoctorID, req.ConsultationFee, actorID)
	if err != nil {
		return nil, err
	}

	metrics.VisitTransitions.WithLabelValues(string(models.VisitStatusWaitingForDoctor)).Inc()
	log.Info().
		Str("visit_uid", visit.VisitUID).
		Str("doctor", doctor.Username).
		Msg("Doctor assigned")
	return billing, nil
}

// Start moves a visit from the doctor queue into consultation. The acting
// doctor must be the assigned one.
func (s *VisitService) Start(ctx context.Context, visitID uuid.UUID, actor *models.AuthClaims) (*models.Visit, error) {
	visit, err := s.visitRepo.GetByID(ctx, visitID)
	if err != nil {
		return nil, err
	}
	if actor.Role == models.RoleDoctor && (visit.DoctorID == nil || *visit.DoctorID != actor.UserID) {
		return nil, ErrForbidden
	}

	if err := s.visitRepo.Transition(ctx, visitID, models.VisitStatusWaitingForDoctor, models.VisitStatusInProgress, actor.UserID, "consultation started", nil); err != nil {
		return nil, err
	}

	metrics.VisitTransitions.WithLabelValues(string(models.VisitStatusInProgress)).Inc()
	return s.visitRepo.GetByID(ctx, visitID)
}

// Complete closes a visit once every order is resolved. Terminal and
// irreversible.
func (s *VisitService) Complete(ctx context.Context, visitID uuid.UUID, actorID uuid.UUID) (*models.Visit, error) {
	visit, err := s.visitRepo.GetByID(ctx, visitID)
	if err != nil {
		return nil, err
	}
	if err := workflow.CheckVisitTransition(visit.Status, models.VisitStatusCompleted); err != nil {
		return nil, conflictFrom(err, "visit")
	}

	unresolved, err := s.orderRepo.CountUnresolved(ctx, visitID)
	if err != nil {
		return nil, err
	}
	if unresolved > 0 {
		return nil, invalid("visit %s still has %d pending orders", visit.VisitUID, unresolved)
	}

	if err := s.visitRepo.Transition(ctx, visitID, visit.Status, models.VisitStatusCompleted, actorID, "visit completed", nil); err != nil {
		return nil, err
	}

	metrics.VisitTransitions.WithLabelValues(string(models.VisitStatusCompleted)).Inc()
	return s.visitRepo.GetByID(ctx, visitID)
}

// Cancel terminates a visit with a mandatory reason. Replaces the old
// delete-and-recreate workaround; history stays queryable.
func (s *VisitService) Cancel(ctx context.Context, visitID uuid.UUID, req *models.CancelRequest, actorID uuid.UUID) (*models.Visit, error) {
	if req.Reason == "" {
		return nil, invalid("cancellation reason is required")
	}

	visit, err := s.visitRepo.GetByID(ctx, visitID)
	if err != nil {
		return nil, err
	}
	if err := workflow.CheckVisitTransition(visit.Status, models.VisitStatusCancelled); err != nil {
		return nil, conflictFrom(err, "visit")
	}

	extra := map[string]interface{}{"cancel_reason": req.Reason}
	if err := s.visitRepo.Transition(ctx, visitID, visit.Status, models.VisitStatusCancelled, actorID, req.Reason, extra); err != nil {
		return nil, err
	}

	metrics.VisitTransitions.WithLabelValues(string(models.VisitStatusCancelled)).Inc()
	return s.visitRepo.GetByID(ctx, visitID)
}

// Events retrieves a visit's transition audit trail
func (s *VisitService) Events(ctx context.Context, visitID uuid.UUID) ([]models.VisitEvent, error) {
	if _, err := s.visitRepo.GetByID(ctx, visitID); err != nil {
		return nil, err
	}
	return s.visitRepo.GetEvents(ctx, visitID)
}

func vitalsFromRequest(visitID uuid.UUID, req *models.VitalsRequest, actorID uuid.UUID) *models.Vitals {
	return &models.Vitals{
		VisitID:     visitID,
		Temperature: req.Temperature,
		Pulse:       req.Pulse,
		Systolic:    req.Systolic,
		Diastolic:   req.Diastolic,
		Respiration: req.Respiration,
		SpO2:        req.SpO2,
		WeightKg:    req.WeightKg,
		HeightCm:    req.HeightCm,
		Complaint:   req.Complaint,
		RecordedBy:  actorID,
	}
}

// conflictFrom maps an illegal-transition error to the conflict sentinel
// while keeping the transition detail in the chain.
func conflictFrom(err error, entity string) error {
	metrics.Conflicts.WithLabelValues(entity).Inc()
	return err
}
