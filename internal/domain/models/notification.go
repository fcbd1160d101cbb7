// internal/domain/models/notification.go
package models

import (
	"encoding/json"
	"time"
)

// Notification audiences.
const (
	AudienceAll       = "all"
	AudienceCustomers = "customers"
	AudienceDrivers   = "drivers"
	AudienceCustomer  = "customer"
)

// Audiences lists the selectable notification audiences.
var Audiences = []string{AudienceAll, AudienceCustomers, AudienceDrivers, AudienceCustomer}

// Notification is a message pushed to customers and/or drivers.
type Notification struct {
	ID         string    `json:"_id"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Audience   string    `json:"audience"`
	CustomerID string    `json:"customerId,omitempty"`
	Read       bool      `json:"isRead"`
	CreatedAt  time.Time `json:"createdAt"`
}

// UnmarshalJSON reads the date fields leniently (see Time) and folds
// the case of enumerated values.
func (n *Notification) UnmarshalJSON(data []byte) error {
	type plain Notification
	aux := struct {
		*plain
		CreatedAt Time `json:"createdAt"`
	}{plain: (*plain)(n)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	n.CreatedAt = aux.CreatedAt.Time
	n.Audience = Key(n.Audience)
	return nil
}
