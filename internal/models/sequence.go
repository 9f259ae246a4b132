package models

// Sequence backs the human-readable UID counters (PAT-<year>-<n>,
// VISIT-<year>-<n>). One row per name+year, bumped atomically.
type Sequence struct {
	Name  string `gorm:"type:varchar(30);primaryKey"`
	Year  int    `gorm:"primaryKey"`
	Value int64  `gorm:"not null;default:0"`
}

// TableName overrides the table name
func (Sequence) TableName() string {
	return "sequences"
}
