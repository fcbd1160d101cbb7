// internal/app/features/complaints/list.go
package complaints

import (
	"net/http"

	"github.com/dalemusser/tankerhub/internal/app/system/listing"
	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/tankerhub/internal/app/system/viewdata"
	"github.com/dalemusser/tankerhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

// ServeList handles GET /complaints.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "complaints list")
	defer cancel()

	all, err := h.Complaints.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list complaints failed", err, "Unable to load complaints.", "/dashboard")
		return
	}

	page := listing.Apply(rows(all), listing.Parse(r), complaintSpec)
	view := listing.NewView(page, "/complaints", tableID, models.ComplaintStatuses...)
	view.ShowDates = true
	data := listData{
		BaseVM: viewdata.NewBaseVM(w, r, "Complaints", "/dashboard"),
		View:   view,
	}

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == tableID {
		templates.RenderSnippet(w, "complaints_table", data)
		return
	}
	templates.Render(w, r, "complaints_list", data)
}
