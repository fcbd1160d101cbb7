// internal/domain/models/tanker.go
package models

import (
	"encoding/json"
	"time"
)

// Tanker statuses.
const (
	TankerActive      = "active"
	TankerMaintenance = "maintenance"
	TankerInactive    = "inactive"
)

// TankerStatuses lists the selectable tanker statuses.
var TankerStatuses = []string{TankerActive, TankerMaintenance, TankerInactive}

// Tanker is a water delivery vehicle.
type Tanker struct {
	ID             string    `json:"_id"`
	PlateNumber    string    `json:"plateNumber"`
	CapacityLiters int       `json:"capacity"`
	Model          string    `json:"model,omitempty"`
	Status         string    `json:"status"`
	DriverID       string    `json:"driverId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// IsActive reports whether the tanker is in service.
func (t Tanker) IsActive() bool { return Key(t.Status) == TankerActive }

// UnmarshalJSON reads the date fields leniently (see Time) and folds
// the case of enumerated values.
func (t *Tanker) UnmarshalJSON(data []byte) error {
	type plain Tanker
	aux := struct {
		*plain
		CreatedAt Time `json:"createdAt"`
	}{plain: (*plain)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t.CreatedAt = aux.CreatedAt.Time
	t.Status = Key(t.Status)
	return nil
}
