// internal/app/features/drivers/list.go
package drivers

import (
	"net/http"

	"github.com/dalemusser/tankerhub/internal/app/system/listing"
	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/tankerhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

// ServeList handles GET /drivers. The status tabs filter on availability.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "drivers list")
	defer cancel()

	all, err := h.Drivers.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list drivers failed", err, "Unable to load drivers.", "/dashboard")
		return
	}

	page := listing.Apply(all, listing.Parse(r), driverSpec)
	data := listData{
		BaseVM: viewdata.NewBaseVM(w, r, "Drivers", "/dashboard"),
		View:   listing.NewView(page, "/drivers", tableID, availabilities...),
	}

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == tableID {
		templates.RenderSnippet(w, "drivers_table", data)
		return
	}
	templates.Render(w, r, "drivers_list", data)
}
