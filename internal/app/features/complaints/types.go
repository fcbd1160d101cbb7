// internal/app/features/complaints/types.go
package complaints

import (
	"html/template"
	"time"

	"github.com/dalemusser/tankerhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/tankerhub/internal/app/system/listing"
	"github.com/dalemusser/tankerhub/internal/app/system/viewdata"
	"github.com/dalemusser/tankerhub/internal/domain/models"
)

const tableID = "complaints-table-wrap"

// excerptLen is the description preview length in the table.
const excerptLen = 90

type row struct {
	models.Complaint
	Excerpt string
}

type listData struct {
	viewdata.BaseVM
	listing.View[row]
}

type viewData struct {
	viewdata.BaseVM

	Complaint    models.Complaint
	Description  template.HTML
	Response     template.HTML
	NextStatuses []string
}

// statusInput validates the status form. A response is required when
// the complaint is closed.
type statusInput struct {
	Status   string `validate:"required,oneof=open in_progress resolved rejected" label:"Status"`
	Response string `validate:"max=2000" label:"Response"`
}

func rows(cs []models.Complaint) []row {
	out := make([]row, len(cs))
	for i, c := range cs {
		out[i] = row{Complaint: c, Excerpt: htmlsanitize.Excerpt(c.Description, excerptLen)}
	}
	return out
}

var complaintSpec = listing.Spec[row]{
	Text: func(c row) []string {
		return []string{c.Subject, c.CustomerName, c.BookingID, c.Excerpt}
	},
	Status: func(c row) string { return c.Status },
	Date:   func(c row) time.Time { return c.CreatedAt },
	Sorts: map[string]func(a, b row) int{
		"subject":  listing.ByString(func(c row) string { return c.Subject }),
		"customer": listing.ByString(func(c row) string { return c.CustomerName }),
		"status":   listing.ByString(func(c row) string { return c.Status }),
		"created":  listing.ByTime(func(c row) time.Time { return c.CreatedAt }),
	},
	DefaultSort: "created",
	DefaultDesc: true,
}
