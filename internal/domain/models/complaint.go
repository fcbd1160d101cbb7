// internal/domain/models/complaint.go
package models

import (
	"encoding/json"
	"time"
)

// Complaint statuses.
const (
	ComplaintOpen       = "open"
	ComplaintInProgress = "in_progress"
	ComplaintResolved   = "resolved"
	ComplaintRejected   = "rejected"
)

// ComplaintStatuses lists complaint statuses in workflow order.
var ComplaintStatuses = []string{ComplaintOpen, ComplaintInProgress, ComplaintResolved, ComplaintRejected}

var complaintNext = map[string][]string{
	ComplaintOpen:       {ComplaintInProgress, ComplaintResolved, ComplaintRejected},
	ComplaintInProgress: {ComplaintResolved, ComplaintRejected},
}

// Complaint is a customer-raised issue.
type Complaint struct {
	ID           string    `json:"_id"`
	CustomerID   string    `json:"customerId"`
	CustomerName string    `json:"customerName"`
	BookingID    string    `json:"bookingId,omitempty"`
	Subject      string    `json:"subject"`
	Description  string    `json:"description"`
	Status       string    `json:"status"`
	Response     string    `json:"response,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NextComplaintStatuses returns the statuses a complaint may move to.
func NextComplaintStatuses(from string) []string {
	return complaintNext[Key(from)]
}

// CanTransitionComplaint reports whether from -> to is allowed.
func CanTransitionComplaint(from, to string) bool {
	to = Key(to)
	for _, s := range complaintNext[Key(from)] {
		if s == to {
			return true
		}
	}
	return false
}

// IsClosed reports whether the complaint reached a terminal status.
func (c Complaint) IsClosed() bool {
	s := Key(c.Status)
	return s == ComplaintResolved || s == ComplaintRejected
}

// UnmarshalJSON reads the date fields leniently (see Time) and folds
// the case of enumerated values.
func (c *Complaint) UnmarshalJSON(data []byte) error {
	type plain Complaint
	aux := struct {
		*plain
		CreatedAt Time `json:"createdAt"`
		UpdatedAt Time `json:"updatedAt"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.CreatedAt = aux.CreatedAt.Time
	c.UpdatedAt = aux.UpdatedAt.Time
	c.Status = Key(c.Status)
	return nil
}
