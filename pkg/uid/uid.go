// Package uid formats the human-readable identifiers used on the wire
// (PAT-2025-01, VISIT-2025-14). The sequence values behind them are allocated
// by the repositories.
package uid

import "fmt"

const (
	PrefixPatient = "PAT"
	PrefixVisit   = "VISIT"
)

// Format builds an external identifier from prefix, year and sequence value.
// Sequence values below 100 keep a leading zero to match historical IDs.
func Format(prefix string, year int, seq int64) string {
	if seq < 100 {
		return fmt.Sprintf("%s-%d-%02d", prefix, year, seq)
	}
	return fmt.Sprintf("%s-%d-%d", prefix, year, seq)
}
