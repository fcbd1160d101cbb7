// internal/app/features/sensors/list.go
package sensors

import (
	"net/http"

	"github.com/dalemusser/tankerhub/internal/app/system/listing"
	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/tankerhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

// ServeList handles GET /sensors. Tabs bucket sensors into low, normal
// and offline using the configured threshold; lowest levels sort first.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "sensors list")
	defer cancel()

	all, err := h.Sensors.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list sensors failed", err, "Unable to load sensors.", "/dashboard")
		return
	}

	page := listing.Apply(all, listing.Parse(r), sensorSpec(h.Threshold))
	data := listData{
		BaseVM:    viewdata.NewBaseVM(w, r, "Sensors", "/dashboard"),
		View:      listing.NewView(page, "/sensors", tableID, levels...),
		Threshold: h.Threshold,
		Live:      h.Hub != nil,
	}

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == tableID {
		templates.RenderSnippet(w, "sensors_table", data)
		return
	}
	templates.Render(w, r, "sensors_list", data)
}
