package repository

import (
	"path/filepath"
	"testing"

	"github.com/hayder75/clinic-core/internal/database"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the shared database handle at a throwaway sqlite file.
// The schema is created by hand because the model tags carry postgres
// defaults; IDs are assigned by the BeforeCreate hooks either way.
func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "clinic.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	ddl := []string{
		`CREATE TABLE billings (
			id TEXT PRIMARY KEY,
			visit_id TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'PENDING',
			total_amount REAL NOT NULL,
			created_at DATETIME,
			updated_at DATETIME,
			deleted_at DATETIME
		)`,
		`CREATE TABLE billing_lines (
			id TEXT PRIMARY KEY,
			billing_id TEXT NOT NULL,
			description TEXT NOT NULL,
			unit_price REAL NOT NULL,
			created_at DATETIME
		)`,
		`CREATE TABLE transactions (
			id TEXT PRIMARY KEY,
			billing_id TEXT,
			account_id TEXT,
			method TEXT NOT NULL,
			amount REAL NOT NULL,
			actor_id TEXT NOT NULL,
			reference TEXT,
			created_at DATETIME
		)`,
		`CREATE TABLE visit_events (
			id TEXT PRIMARY KEY,
			visit_id TEXT,
			entity_type TEXT NOT NULL,
			entity_id TEXT NOT NULL,
			from_status TEXT,
			to_status TEXT NOT NULL,
			actor_id TEXT,
			note TEXT,
			created_at DATETIME
		)`,
		`CREATE TABLE accounts (
			id TEXT PRIMARY KEY,
			patient_id TEXT NOT NULL,
			type TEXT NOT NULL,
			balance REAL DEFAULT 0,
			debt_owed REAL DEFAULT 0,
			created_at DATETIME,
			updated_at DATETIME,
			deleted_at DATETIME
		)`,
		`CREATE TABLE account_requests (
			id TEXT PRIMARY KEY,
			account_id TEXT NOT NULL,
			type TEXT NOT NULL,
			amount REAL NOT NULL,
			status TEXT NOT NULL DEFAULT 'PENDING',
			requested_by TEXT NOT NULL,
			reviewed_by TEXT,
			note TEXT,
			created_at DATETIME,
			updated_at DATETIME
		)`,
	}
	for _, stmt := range ddl {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("failed to create test schema: %v", err)
		}
	}

	database.DB = db
}
