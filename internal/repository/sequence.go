package repository

import (
	"fmt"

	"gorm.io/gorm"
)

// nextSequence atomically bumps and returns the counter for name+year. The
// upsert keeps concurrent allocations from handing out the same value.
func nextSequence(tx *gorm.DB, name string, year int) (int64, error) {
	var value int64
	err := tx.Raw(
		`INSERT INTO sequences (name, year, value) VALUES (?, ?, 1)
		 ON CONFLICT (name, year) DO UPDATE SET value = sequences.value + 1
		 RETURNING value`,
		name, year,
	).Scan(&value).Error
	if err != nil {
		return 0, fmt.Errorf("failed to advance sequence %s/%d: %w", name, year, err)
	}
	return value, nil
}
