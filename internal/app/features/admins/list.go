// internal/app/features/admins/list.go
package admins

import (
	"net/http"

	"github.com/dalemusser/tankerhub/internal/app/system/listing"
	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/tankerhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

// ServeList handles GET /admins.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "admins list")
	defer cancel()

	all, err := h.Admins.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list admins failed", err, "Unable to load admins.", "/dashboard")
		return
	}

	page := listing.Apply(all, listing.Parse(r), adminSpec)
	data := listData{
		BaseVM: viewdata.NewBaseVM(w, r, "Admins", "/dashboard"),
		View:   listing.NewView(page, "/admins", tableID, adminStatuses...),
		SelfID: actorID(r),
	}

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == tableID {
		templates.RenderSnippet(w, "admins_table", data)
		return
	}
	templates.Render(w, r, "admins_list", data)
}
