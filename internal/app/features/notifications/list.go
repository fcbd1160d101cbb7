// internal/app/features/notifications/list.go
package notifications

import (
	"net/http"

	"github.com/dalemusser/tankerhub/internal/app/system/listing"
	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/tankerhub/internal/app/system/viewdata"
	"github.com/dalemusser/tankerhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

// ServeList handles GET /notifications. Tabs filter on audience.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "notifications list")
	defer cancel()

	all, err := h.Notifications.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list notifications failed", err, "Unable to load notifications.", "/dashboard")
		return
	}

	page := listing.Apply(rows(all), listing.Parse(r), notificationSpec)
	view := listing.NewView(page, "/notifications", tableID, models.Audiences...)
	view.ShowDates = true
	data := listData{
		BaseVM: viewdata.NewBaseVM(w, r, "Notifications", "/dashboard"),
		View:   view,
	}

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == tableID {
		templates.RenderSnippet(w, "notifications_table", data)
		return
	}
	templates.Render(w, r, "notifications_list", data)
}
