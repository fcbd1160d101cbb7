// internal/app/features/activity/online.go
package activity

import (
	"context"
	"net/http"

	"github.com/dalemusser/tankerhub/internal/app/system/listing"
	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/tankerhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

// ServeOnline renders who is signed in to the dashboard.
// GET /activity
func (h *Handler) ServeOnline(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "activity online")
	defer cancel()

	rows, err := h.onlineRows(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list online sessions failed", err, "Unable to load dashboard activity.", "/dashboard")
		return
	}

	page := listing.Apply(rows, listing.Parse(r), onlineSpec)
	data := onlineData{
		BaseVM: viewdata.NewBaseVM(w, r, "Admin Activity", "/dashboard"),
		View:   listing.NewView(page, "/activity", tableID, presenceStatuses...),
		Window: formatDuration(int64(h.Window.Seconds())),
	}

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == tableID {
		templates.RenderSnippet(w, "activity_online_table", data)
		return
	}
	templates.Render(w, r, "activity_online", data)
}

func (h *Handler) onlineRows(ctx context.Context) ([]sessionRow, error) {
	now := h.now()
	sessions, err := h.Sessions.Online(ctx, now.Add(-h.Window))
	if err != nil {
		return nil, err
	}
	rows := make([]sessionRow, len(sessions))
	for i, s := range sessions {
		rows[i] = row(s, now, h.IdleAfter)
	}
	return rows, nil
}
