// internal/app/features/bookings/types.go
package bookings

import (
	"time"

	"github.com/dalemusser/tankerhub/internal/app/system/formutil"
	"github.com/dalemusser/tankerhub/internal/app/system/listing"
	"github.com/dalemusser/tankerhub/internal/app/system/viewdata"
	"github.com/dalemusser/tankerhub/internal/domain/models"
)

const tableID = "bookings-table-wrap"

type listData struct {
	viewdata.BaseVM
	listing.View[models.Booking]

	CustomerID string // set when the list is narrowed to one customer
}

// viewData is the view model for the booking detail page, which also
// hosts the status and assignment forms.
type viewData struct {
	viewdata.BaseVM

	Booking      models.Booking
	NextStatuses []string
	Assignable   bool
	Drivers      []models.Driver // dispatchable only
	Tankers      []models.Tanker // active only
}

type formData struct {
	formutil.Base

	ID          string
	Action      string
	CustomerID  string
	Address     string
	Phone       string
	Liters      string
	Price       string
	ScheduledAt string // datetime-local value
	Notes       string
	Customers   []models.Customer
}

// bookingInput defines validation rules for creating or editing a booking.
type bookingInput struct {
	CustomerID  string    `validate:"required" label:"Customer"`
	Address     string    `validate:"required,max=300" label:"Delivery address"`
	Phone       string    `validate:"omitempty,phone" label:"Phone"`
	Liters      int       `validate:"gt=0" label:"Quantity (liters)"`
	Price       float64   `validate:"gte=0" label:"Price"`
	ScheduledAt time.Time `validate:"required" label:"Scheduled time"`
	Notes       string    `validate:"max=500" label:"Notes"`
}

const datetimeLocal = "2006-01-02T15:04"

var bookingSpec = listing.Spec[models.Booking]{
	Text: func(b models.Booking) []string {
		return []string{b.CustomerName, b.Address, b.Phone, b.DriverName, b.TankerPlate, b.ID}
	},
	Status: func(b models.Booking) string { return b.Status },
	Date:   func(b models.Booking) time.Time { return b.ScheduledAt },
	Sorts: map[string]func(a, b models.Booking) int{
		"customer":  listing.ByString(func(b models.Booking) string { return b.CustomerName }),
		"liters":    listing.ByNumber(func(b models.Booking) int { return b.Liters }),
		"price":     listing.ByNumber(func(b models.Booking) float64 { return b.Price }),
		"scheduled": listing.ByTime(func(b models.Booking) time.Time { return b.ScheduledAt }),
		"status":    listing.ByString(func(b models.Booking) string { return b.Status }),
	},
	DefaultSort: "scheduled",
	DefaultDesc: true,
}
