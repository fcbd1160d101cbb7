// internal/app/features/drivers/types.go
package drivers

import (
	"time"

	"github.com/dalemusser/tankerhub/internal/app/system/formutil"
	"github.com/dalemusser/tankerhub/internal/app/system/listing"
	"github.com/dalemusser/tankerhub/internal/app/system/viewdata"
	"github.com/dalemusser/tankerhub/internal/domain/models"
)

const tableID = "drivers-table-wrap"

// availability tabs
var availabilities = []string{"available", "unavailable"}

type listData struct {
	viewdata.BaseVM
	listing.View[models.Driver]
}

type formData struct {
	formutil.Base

	ID            string
	Action        string
	Name          string
	Phone         string
	Email         string
	LicenseNumber string
	Available     bool
}

// driverInput defines validation rules for creating or editing a driver.
type driverInput struct {
	Name          string `validate:"required,max=100" label:"Name"`
	Phone         string `validate:"required,phone" label:"Phone"`
	Email         string `validate:"omitempty,email" label:"Email"`
	LicenseNumber string `validate:"required,max=40" label:"License number"`
}

var driverSpec = listing.Spec[models.Driver]{
	Text: func(d models.Driver) []string {
		return []string{d.Name, d.Phone, d.Email, d.LicenseNumber}
	},
	Status: models.Driver.Availability,
	Sorts: map[string]func(a, b models.Driver) int{
		"name":    listing.ByString(func(d models.Driver) string { return d.Name }),
		"license": listing.ByString(func(d models.Driver) string { return d.LicenseNumber }),
		"created": listing.ByTime(func(d models.Driver) time.Time { return d.CreatedAt }),
	},
	DefaultSort: "name",
}
