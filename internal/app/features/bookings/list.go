// internal/app/features/bookings/list.go
package bookings

import (
	"net/http"
	"net/url"

	"github.com/dalemusser/tankerhub/internal/app/system/listing"
	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/tankerhub/internal/app/system/viewdata"
	"github.com/dalemusser/tankerhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
)

// ServeList handles GET /bookings (optional ?customer= narrows to one
// customer). It supports HTMX partial refresh of the table when
// HX-Target="bookings-table-wrap".
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "bookings list")
	defer cancel()

	all, err := h.Bookings.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list bookings failed", err, "Unable to load bookings.", "/dashboard")
		return
	}

	q := listing.Parse(r)
	customerID := query.Get(r, "customer")
	if customerID != "" {
		all = forCustomer(all, customerID)
		q.Extra = url.Values{"customer": {customerID}}
	}

	page := listing.Apply(all, q, bookingSpec)
	view := listing.NewView(page, "/bookings", tableID, models.BookingStatuses...)
	view.ShowDates = true
	data := listData{
		BaseVM:     viewdata.NewBaseVM(w, r, "Bookings", "/dashboard"),
		View:       view,
		CustomerID: customerID,
	}

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == tableID {
		templates.RenderSnippet(w, "bookings_table", data)
		return
	}
	templates.Render(w, r, "bookings_list", data)
}

func forCustomer(all []models.Booking, customerID string) []models.Booking {
	out := make([]models.Booking, 0, len(all))
	for _, b := range all {
		if b.CustomerID == customerID {
			out = append(out, b)
		}
	}
	return out
}
