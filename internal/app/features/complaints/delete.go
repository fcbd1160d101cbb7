// internal/app/features/complaints/delete.go
package complaints

import (
	"net/http"

	uierrors "github.com/dalemusser/tankerhub/internal/app/features/errors"
	"github.com/dalemusser/tankerhub/internal/app/store/audit"
	"github.com/dalemusser/tankerhub/internal/app/system/navigation"
	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/tankerhub/internal/app/system/toast"
	"github.com/go-chi/chi/v5"
)

// HandleDelete deletes a complaint.
//
// Route: POST /complaints/{id}/delete
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ret := navigation.SafeBackURL(r, navigation.ComplaintsBackURL)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "complaint delete")
	defer cancel()

	if err := h.Complaints.Delete(ctx, id); err != nil {
		h.ErrLog.Upstream(w, r, "delete complaint failed", err, "Could not delete the complaint.", ret)
		return
	}
	h.Audit.EntityDeleted(ctx, r, audit.EntityComplaint, id, r.FormValue("label"))

	toast.Success(w, r, "Complaint deleted.")
	uierrors.Redirect(w, r, ret)
}
