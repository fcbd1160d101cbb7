// internal/domain/models/auditlog.go
package models

import (
	"encoding/json"
	"time"
)

// AuditLog is an entry from the backend's audit trail.
type AuditLog struct {
	ID        string    `json:"_id"`
	Actor     string    `json:"actor"`
	ActorRole string    `json:"actorRole,omitempty"`
	Action    string    `json:"action"`
	Entity    string    `json:"entity"`
	EntityID  string    `json:"entityId,omitempty"`
	Details   string    `json:"details,omitempty"`
	IP        string    `json:"ip,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// UnmarshalJSON reads the date fields leniently (see Time).
func (a *AuditLog) UnmarshalJSON(data []byte) error {
	type plain AuditLog
	aux := struct {
		*plain
		CreatedAt Time `json:"createdAt"`
	}{plain: (*plain)(a)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	a.CreatedAt = aux.CreatedAt.Time
	return nil
}
