// internal/app/features/auditlogs/list.go
package auditlogs

import (
	"net/http"

	auditlogstore "github.com/dalemusser/tankerhub/internal/app/store/auditlogs"
	"github.com/dalemusser/tankerhub/internal/app/system/listing"
	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/tankerhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

// ServeList handles GET /audit-logs. Tabs are the distinct actions
// present in the trail.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "audit logs list")
	defer cancel()

	all, err := h.Logs.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list audit logs failed", err, "Unable to load the audit trail.", "/dashboard")
		return
	}

	q := listing.Parse(r)
	page := listing.Apply(all, q, logSpec)
	view := listing.NewView(page, "/audit-logs", tableID, auditlogstore.Actions(all)...)
	view.ShowDates = true

	export := q
	export.Page, export.PerPage = 0, 0
	data := listData{
		BaseVM:      viewdata.NewBaseVM(w, r, "Audit Logs", "/dashboard"),
		View:        view,
		ExportQuery: export.Values().Encode(),
	}

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == tableID {
		templates.RenderSnippet(w, "auditlogs_table", data)
		return
	}
	templates.Render(w, r, "auditlogs_list", data)
}
