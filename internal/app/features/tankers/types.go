// internal/app/features/tankers/types.go
package tankers

import (
	"time"

	"github.com/dalemusser/tankerhub/internal/app/system/formutil"
	"github.com/dalemusser/tankerhub/internal/app/system/listing"
	"github.com/dalemusser/tankerhub/internal/app/system/viewdata"
	"github.com/dalemusser/tankerhub/internal/domain/models"
)

const tableID = "tankers-table-wrap"

// listData is the view model for the tankers list page.
type listData struct {
	viewdata.BaseVM
	listing.View[models.Tanker]
}

// formData is the view model for the new and edit forms.
type formData struct {
	formutil.Base

	ID          string // empty for new
	Action      string
	PlateNumber string
	Capacity    string
	Model       string
	Status      string
	Statuses    []string
}

// tankerInput defines validation rules for creating or editing a tanker.
type tankerInput struct {
	PlateNumber string `validate:"required,max=20,plate" label:"Plate number"`
	Capacity    int    `validate:"gt=0" label:"Capacity (liters)"`
	Model       string `validate:"max=100" label:"Model"`
	Status      string `validate:"required,oneof=active maintenance inactive" label:"Status"`
}

var tankerSpec = listing.Spec[models.Tanker]{
	Text:   func(t models.Tanker) []string { return []string{t.PlateNumber, t.Model, t.Status} },
	Status: func(t models.Tanker) string { return t.Status },
	Sorts: map[string]func(a, b models.Tanker) int{
		"plate":    listing.ByString(func(t models.Tanker) string { return t.PlateNumber }),
		"capacity": listing.ByNumber(func(t models.Tanker) int { return t.CapacityLiters }),
		"status":   listing.ByString(func(t models.Tanker) string { return t.Status }),
		"created":  listing.ByTime(func(t models.Tanker) time.Time { return t.CreatedAt }),
	},
	DefaultSort: "plate",
}
