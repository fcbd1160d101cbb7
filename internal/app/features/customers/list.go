// internal/app/features/customers/list.go
package customers

import (
	"net/http"

	"github.com/dalemusser/tankerhub/internal/app/system/listing"
	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/tankerhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

// ServeList handles GET /customers.
// It supports HTMX partial refresh of the table when HX-Target="customers-table-wrap".
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "customers list")
	defer cancel()

	all, err := h.Customers.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list customers failed", err, "Unable to load customers.", "/dashboard")
		return
	}

	page := listing.Apply(all, listing.Parse(r), customerSpec)
	view := listing.NewView(page, "/customers", tableID, statuses...)
	view.ShowDates = true
	data := listData{
		BaseVM: viewdata.NewBaseVM(w, r, "Customers", "/dashboard"),
		View:   view,
	}

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == tableID {
		templates.RenderSnippet(w, "customers_table", data)
		return
	}
	templates.Render(w, r, "customers_list", data)
}
