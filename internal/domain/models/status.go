// internal/domain/models/status.go
package models

import "strings"

// Shared status values used by several entities.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusDisabled = "disabled"
	StatusBlocked  = "blocked"
)

// Key folds a status, role or audience value for comparison. The backend
// is not consistent about case.
func Key(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
