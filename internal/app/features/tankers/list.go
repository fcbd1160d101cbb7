// internal/app/features/tankers/list.go
package tankers

import (
	"net/http"

	"github.com/dalemusser/tankerhub/internal/app/system/listing"
	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/tankerhub/internal/app/system/viewdata"
	"github.com/dalemusser/tankerhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

// ServeList handles GET /tankers.
// It supports HTMX partial refresh of the table when HX-Target="tankers-table-wrap".
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "tankers list")
	defer cancel()

	all, err := h.Tankers.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list tankers failed", err, "Unable to load tankers.", "/dashboard")
		return
	}

	page := listing.Apply(all, listing.Parse(r), tankerSpec)
	data := listData{
		BaseVM: viewdata.NewBaseVM(w, r, "Tankers", "/dashboard"),
		View:   listing.NewView(page, "/tankers", tableID, models.TankerStatuses...),
	}

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == tableID {
		templates.RenderSnippet(w, "tankers_table", data)
		return
	}
	templates.Render(w, r, "tankers_list", data)
}
