// internal/domain/models/customer.go
package models

import (
	"encoding/json"
	"time"
)

// Customer is a household or business that orders water deliveries.
type Customer struct {
	ID            string    `json:"_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address,omitempty"`
	City          string    `json:"city,omitempty"`
	Status        string    `json:"status"` // active | blocked
	TotalBookings int       `json:"totalBookings,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// UnmarshalJSON reads the date fields leniently (see Time) and folds
// the case of enumerated values.
func (c *Customer) UnmarshalJSON(data []byte) error {
	type plain Customer
	aux := struct {
		*plain
		CreatedAt Time `json:"createdAt"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.CreatedAt = aux.CreatedAt.Time
	c.Status = Key(c.Status)
	return nil
}
