// internal/domain/models/driver.go
package models

import (
	"encoding/json"
	"time"
)

// Driver operates tankers and is assigned to bookings.
type Driver struct {
	ID            string    `json:"_id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email,omitempty"`
	LicenseNumber string    `json:"licenseNumber"`
	Available     bool      `json:"isAvailable"`
	Status        string    `json:"status,omitempty"` // active | inactive
	CreatedAt     time.Time `json:"createdAt"`
}

// Availability returns the label used for filtering and display.
func (d Driver) Availability() string {
	if d.Available {
		return "available"
	}
	return "unavailable"
}

// CanDispatch reports whether the driver may be assigned to a booking.
func (d Driver) CanDispatch() bool {
	return d.Available && Key(d.Status) != StatusInactive
}

// UnmarshalJSON reads the date fields leniently (see Time) and folds
// the case of enumerated values.
func (d *Driver) UnmarshalJSON(data []byte) error {
	type plain Driver
	aux := struct {
		*plain
		CreatedAt Time `json:"createdAt"`
	}{plain: (*plain)(d)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	d.CreatedAt = aux.CreatedAt.Time
	d.Status = Key(d.Status)
	return nil
}
