// internal/app/features/customers/types.go
package customers

import (
	"time"

	"github.com/dalemusser/tankerhub/internal/app/system/formutil"
	"github.com/dalemusser/tankerhub/internal/app/system/listing"
	"github.com/dalemusser/tankerhub/internal/app/system/viewdata"
	"github.com/dalemusser/tankerhub/internal/domain/models"
)

const tableID = "customers-table-wrap"

var statuses = []string{models.StatusActive, models.StatusBlocked}

type listData struct {
	viewdata.BaseVM
	listing.View[models.Customer]
}

// viewData is the view model for the customer detail page.
type viewData struct {
	viewdata.BaseVM

	Customer       models.Customer
	Blocked        bool
	RecentBookings []models.Booking
	BookingCount   int
	BookingsURL    string
}

type editData struct {
	formutil.Base

	ID      string
	Name    string
	Email   string
	Phone   string
	Address string
	City    string
}

type customerInput struct {
	Name    string `validate:"required,max=100" label:"Name"`
	Email   string `validate:"required,email" label:"Email"`
	Phone   string `validate:"required,phone" label:"Phone"`
	Address string `validate:"max=300" label:"Address"`
	City    string `validate:"max=100" label:"City"`
}

// recentBookings is how many bookings the detail page lists.
const recentBookings = 10

var customerSpec = listing.Spec[models.Customer]{
	Text: func(c models.Customer) []string {
		return []string{c.Name, c.Email, c.Phone, c.City, c.Address}
	},
	Status: func(c models.Customer) string {
		if c.Status == "" {
			return models.StatusActive
		}
		return c.Status
	},
	Date: func(c models.Customer) time.Time { return c.CreatedAt },
	Sorts: map[string]func(a, b models.Customer) int{
		"name":     listing.ByString(func(c models.Customer) string { return c.Name }),
		"city":     listing.ByString(func(c models.Customer) string { return c.City }),
		"bookings": listing.ByNumber(func(c models.Customer) int { return c.TotalBookings }),
		"joined":   listing.ByTime(func(c models.Customer) time.Time { return c.CreatedAt }),
	},
	DefaultSort: "joined",
	DefaultDesc: true,
}
