// internal/app/features/notifications/types.go
package notifications

import (
	"html/template"
	"time"

	"github.com/dalemusser/tankerhub/internal/app/system/formutil"
	"github.com/dalemusser/tankerhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/tankerhub/internal/app/system/listing"
	"github.com/dalemusser/tankerhub/internal/app/system/viewdata"
	"github.com/dalemusser/tankerhub/internal/domain/models"
)

const tableID = "notifications-table-wrap"

// row is a notification with its message made safe for rendering.
type row struct {
	models.Notification
	Body template.HTML
}

func rows(ns []models.Notification) []row {
	out := make([]row, len(ns))
	for i, n := range ns {
		out[i] = row{Notification: n, Body: htmlsanitize.HTML(n.Message)}
	}
	return out
}

type listData struct {
	viewdata.BaseVM
	listing.View[row]
}

type formData struct {
	formutil.Base

	Heading    string // notification title; Title is the page title
	Message    string
	Audience   string
	CustomerID string
	Audiences  []string
	Customers  []models.Customer
}

// notificationInput defines validation rules for sending a notification.
// CustomerID is required only for the single-customer audience.
type notificationInput struct {
	Title      string `validate:"required,max=120" label:"Title"`
	Message    string `validate:"required,max=2000" label:"Message"`
	Audience   string `validate:"required,oneof=all customers drivers customer" label:"Audience"`
	CustomerID string `validate:"required_if=Audience customer" label:"Customer"`
}

var notificationSpec = listing.Spec[row]{
	Text: func(n row) []string {
		return []string{n.Title, htmlsanitize.PlainText(n.Message)}
	},
	Status: func(n row) string { return n.Audience },
	Date:   func(n row) time.Time { return n.CreatedAt },
	Sorts: map[string]func(a, b row) int{
		"title":   listing.ByString(func(n row) string { return n.Title }),
		"created": listing.ByTime(func(n row) time.Time { return n.CreatedAt }),
	},
	DefaultSort: "created",
	DefaultDesc: true,
}
