// internal/domain/models/booking.go
package models

import (
	"encoding/json"
	"time"
)

// Booking statuses.
const (
	BookingPending    = "pending"
	BookingConfirmed  = "confirmed"
	BookingDispatched = "dispatched"
	BookingDelivered  = "delivered"
	BookingCancelled  = "cancelled"
)

// BookingStatuses lists statuses in lifecycle order.
var BookingStatuses = []string{
	BookingPending,
	BookingConfirmed,
	BookingDispatched,
	BookingDelivered,
	BookingCancelled,
}

var bookingNext = map[string][]string{
	BookingPending:    {BookingConfirmed, BookingCancelled},
	BookingConfirmed:  {BookingDispatched, BookingCancelled},
	BookingDispatched: {BookingDelivered, BookingCancelled},
}

// Booking is a scheduled water delivery.
type Booking struct {
	ID           string    `json:"_id"`
	CustomerID   string    `json:"customerId"`
	CustomerName string    `json:"customerName"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address"`
	Liters       int       `json:"quantity"`
	Price        float64   `json:"price"`
	Status       string    `json:"status"`
	ScheduledAt  time.Time `json:"scheduledAt"`
	DriverID     string    `json:"driverId,omitempty"`
	DriverName   string    `json:"driverName,omitempty"`
	TankerID     string    `json:"tankerId,omitempty"`
	TankerPlate  string    `json:"tankerPlate,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NextBookingStatuses returns the statuses a booking may move to from
// the given status. Delivered and cancelled are terminal.
func NextBookingStatuses(from string) []string {
	return bookingNext[Key(from)]
}

// CanTransitionBooking reports whether from -> to is an allowed move.
func CanTransitionBooking(from, to string) bool {
	to = Key(to)
	for _, s := range bookingNext[Key(from)] {
		if s == to {
			return true
		}
	}
	return false
}

// IsAssignable reports whether a driver and tanker may still be
// (re)assigned to the booking.
func (b Booking) IsAssignable() bool {
	s := Key(b.Status)
	return s == BookingPending || s == BookingConfirmed
}

// UnmarshalJSON reads the date fields leniently (see Time) and folds
// the case of enumerated values.
func (b *Booking) UnmarshalJSON(data []byte) error {
	type plain Booking
	aux := struct {
		*plain
		ScheduledAt Time `json:"scheduledAt"`
		CreatedAt   Time `json:"createdAt"`
	}{plain: (*plain)(b)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	b.ScheduledAt = aux.ScheduledAt.Time
	b.CreatedAt = aux.CreatedAt.Time
	b.Status = Key(b.Status)
	return nil
}
