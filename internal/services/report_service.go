package services

import (
	"context"
	"time"

	"github.com/hayder75/clinic-core/internal/repository"
)

// ReportService runs the read-only admin aggregations
type ReportService struct {
	reportRepo *repository.ReportRepository
}

// NewReportService creates a new report service
func NewReportService(reportRepo *repository.ReportRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo}
}

// DoctorPerformance aggregates visit counts per doctor in [from, to)
func (s *ReportService) DoctorPerformance(ctx context.Context, from, to time.Time) ([]repository.DoctorPerformance, error) {
	if !to.After(from) {
		return nil, invalid("report range must have to after from")
	}
	return s.reportRepo.DoctorPerformanceReport(ctx, from, to)
}

// Revenue aggregates settled billing amounts per method in [from, to)
func (s *ReportService) Revenue(ctx context.Context, from, to time.Time) ([]repository.RevenueLine, error) {
	if !to.After(from) {
		return nil, invalid("report range must have to after from")
	}
	return s.reportRepo.RevenueReport(ctx, from, to)
}
