// internal/app/features/complaints/status.go
package complaints

import (
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/tankerhub/internal/app/features/errors"
	"github.com/dalemusser/tankerhub/internal/app/store/audit"
	complaintstore "github.com/dalemusser/tankerhub/internal/app/store/complaints"
	"github.com/dalemusser/tankerhub/internal/app/system/formutil"
	"github.com/dalemusser/tankerhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/tankerhub/internal/app/system/inputval"
	"github.com/dalemusser/tankerhub/internal/app/system/listing"
	"github.com/dalemusser/tankerhub/internal/app/system/navigation"
	"github.com/dalemusser/tankerhub/internal/app/system/normalize"
	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/tankerhub/internal/app/system/toast"
	"github.com/dalemusser/tankerhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// HandleStatus moves a complaint along its workflow and records the
// admin's response. Resolving or rejecting requires a response.
//
// Route: POST /complaints/{id}/status (status, response)
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ret := navigation.SafeBackURL(r, navigation.ComplaintsBackURL)

	up := complaintstore.StatusUpdate{
		Status:   normalize.Status(r.FormValue("status")),
		Response: htmlsanitize.Sanitize(formutil.Trimmed(r, "response")),
	}
	if res := inputval.Validate(statusInput{Status: up.Status, Response: up.Response}); res.HasErrors() {
		toast.Error(w, r, res.First())
		uierrors.Redirect(w, r, ret)
		return
	}
	closing := up.Status == models.ComplaintResolved || up.Status == models.ComplaintRejected
	if closing && htmlsanitize.PlainText(up.Response) == "" {
		toast.Error(w, r, "Add a response before closing the complaint.")
		uierrors.Redirect(w, r, ret)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "complaint status")
	defer cancel()

	c, err := h.Complaints.Get(ctx, id)
	if err != nil {
		h.ErrLog.Upstream(w, r, "get complaint failed", err, "Could not load the complaint.", ret)
		return
	}

	if _, err := h.Complaints.SetStatus(ctx, c, up); err != nil {
		if errors.Is(err, complaintstore.ErrInvalidTransition) {
			toast.Error(w, r, "Cannot change a complaint from "+listing.Label(c.Status)+" to "+listing.Label(up.Status)+".")
			uierrors.Redirect(w, r, ret)
			return
		}
		h.ErrLog.Upstream(w, r, "set complaint status failed", err, "Could not update the complaint.", ret)
		return
	}
	h.Audit.StatusChanged(ctx, r, audit.EntityComplaint, id, c.Status, up.Status)

	toast.Success(w, r, "Complaint marked "+listing.Label(up.Status)+".")
	uierrors.Redirect(w, r, ret)
}
