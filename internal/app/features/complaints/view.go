// internal/app/features/complaints/view.go
package complaints

import (
	"net/http"

	"github.com/dalemusser/tankerhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/tankerhub/internal/app/system/viewdata"
	"github.com/dalemusser/tankerhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
)

// ServeView shows one complaint with the status/response form while it
// is still open.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "complaint view")
	defer cancel()

	c, err := h.Complaints.Get(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "get complaint failed", err, "Unable to load the complaint.", "/complaints")
		return
	}

	data := viewData{
		BaseVM:       viewdata.NewBaseVM(w, r, c.Subject, "/complaints"),
		Complaint:    c,
		Description:  htmlsanitize.HTML(c.Description),
		Response:     htmlsanitize.HTML(c.Response),
		NextStatuses: models.NextComplaintStatuses(c.Status),
	}
	templates.Render(w, r, "complaint_view", data)
}
