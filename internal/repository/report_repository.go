package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hayder75/clinic-core/internal/database"
)

// ReportRepository runs the read-only admin aggregations
type ReportRepository struct{}

// NewReportRepository creates a new report repository
func NewReportRepository() *ReportRepository {
	return &ReportRepository{}
}

// DoctorPerformance summarizes visits handled per doctor
type DoctorPerformance struct {
	DoctorID    uuid.UUID `json:"doctor_id"`
	FullName    string    `json:"fullname"`
	TotalVisits int64     `json:"total_visits"`
	Completed   int64     `json:"completed"`
	Cancelled   int64     `json:"cancelled"`
}

// DoctorPerformanceReport aggregates visit counts per assigned doctor in a
// time range
func (r *ReportRepository) DoctorPerformanceReport(ctx context.Context, from, to time.Time) ([]DoctorPerformance, error) {
	var rows []DoctorPerformance
	err := database.DB.WithContext(ctx).Raw(
		`SELECT v.doctor_id,
		        s.full_name,
		        COUNT(*) AS total_visits,
		        COUNT(*) FILTER (WHERE v.status = 'COMPLETED') AS completed,
		        COUNT(*) FILTER (WHERE v.status = 'CANCELLED') AS cancelled
		 FROM visits v
		 JOIN staff s ON s.id = v.doctor_id
		 WHERE v.doctor_id IS NOT NULL
		   AND v.created_at >= ? AND v.created_at < ?
		 GROUP BY v.doctor_id, s.full_name
		 ORDER BY total_visits DESC`,
		from, to,
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to build doctor performance report: %w", err)
	}
	return rows, nil
}

// RevenueLine summarizes settled amounts per payment method
type RevenueLine struct {
	Method string  `json:"method"`
	Count  int64   `json:"count"`
	Total  float64 `json:"total"`
}

// RevenueReport aggregates billing transactions per payment method in a time
// range
func (r *ReportRepository) RevenueReport(ctx context.Context, from, to time.Time) ([]RevenueLine, error) {
	var rows []RevenueLine
	err := database.DB.WithContext(ctx).Raw(
		`SELECT method, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total
		 FROM transactions
		 WHERE billing_id IS NOT NULL
		   AND created_at >= ? AND created_at < ?
		 GROUP BY method
		 ORDER BY total DESC`,
		from, to,
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to build revenue report: %w", err)
	}
	return rows, nil
}
